package create_booking

import (
	"time"

	"github.com/m04kA/FSP-BookingService/internal/domain"
	createBooking "github.com/m04kA/FSP-BookingService/internal/usecase/create_booking"
	"github.com/m04kA/FSP-BookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ServiceCode  string  `json:"serviceCode"`
	DurationCode string  `json:"durationCode"`
	PackageCode  *string `json:"packageCode,omitempty"`
	Combo        bool    `json:"combo,omitempty"`
	DealCode     *string `json:"dealCode,omitempty"`

	Adults   int `json:"adults"`
	Children int `json:"children"`
	Babies   int `json:"babies"`
	Animals  int `json:"animals"`

	Date      string `json:"date"`      // "2025-10-15"
	StartTime string `json:"startTime"` // "10:00"

	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail"`
	CustomerPhone *string `json:"customerPhone,omitempty"`
	Notes         *string `json:"notes,omitempty"`

	ModelRelease  bool    `json:"modelRelease,omitempty"`
	CreateAccount bool    `json:"createAccount,omitempty"`
	CouponCode    *string `json:"couponCode,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// (с парсингом даты и времени)
func (r *CreateBookingRequest) ToUseCaseRequest(userID *int64) (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		UserID:        userID,
		ServiceCode:   r.ServiceCode,
		DurationCode:  r.DurationCode,
		PackageCode:   r.PackageCode,
		Combo:         r.Combo,
		DealCode:      r.DealCode,
		Adults:        r.Adults,
		Children:      r.Children,
		Babies:        r.Babies,
		Animals:       r.Animals,
		Date:          date,
		StartTime:     startTime,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		CustomerPhone: r.CustomerPhone,
		Notes:         r.Notes,
		ModelRelease:  r.ModelRelease,
		CreateAccount: r.CreateAccount,
		CouponCode:    r.CouponCode,
	}, nil
}

// BookingLineItem позиция расчета в HTTP ответе
type BookingLineItem struct {
	Code   string `json:"code"`
	Label  string `json:"label"`
	Amount string `json:"amount"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	ID        int64  `json:"id"`
	Reference string `json:"reference"`
	UserID    *int64 `json:"userId,omitempty"`
	Status    string `json:"status"`

	Date            string `json:"date"`
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`

	ServiceCode  string  `json:"serviceCode"`
	DurationCode string  `json:"durationCode"`
	PackageCode  string  `json:"packageCode"`
	Combo        bool    `json:"combo,omitempty"`
	DealCode     *string `json:"dealCode,omitempty"`

	LineItems  []BookingLineItem `json:"lineItems"`
	TotalPrice string            `json:"totalPrice"`

	CreatedAt time.Time `json:"createdAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	items := make([]BookingLineItem, len(resp.LineItems))
	for i, item := range resp.LineItems {
		items[i] = BookingLineItem{
			Code:   item.Code,
			Label:  item.Label,
			Amount: item.Amount.StringFixed(2),
		}
	}
	return &CreateBookingResponse{
		ID:              resp.ID,
		Reference:       resp.Reference.String(),
		UserID:          resp.UserID,
		Status:          resp.Status,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.Minutes,
		ServiceCode:     resp.ServiceCode,
		DurationCode:    resp.DurationCode,
		PackageCode:     resp.PackageCode,
		Combo:           resp.Combo,
		DealCode:        resp.DealCode,
		LineItems:       items,
		TotalPrice:      resp.TotalPrice.StringFixed(2),
		CreatedAt:       resp.CreatedAt,
	}
}
