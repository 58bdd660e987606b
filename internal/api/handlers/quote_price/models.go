package quote_price

import (
	quotePrice "github.com/m04kA/FSP-BookingService/internal/usecase/quote_price"
)

// QuoteRequest HTTP request model
type QuoteRequest struct {
	ServiceCode  string  `json:"serviceCode"`
	DurationCode string  `json:"durationCode"`
	PackageCode  *string `json:"packageCode,omitempty"`
	Combo        bool    `json:"combo,omitempty"`
	DealCode     *string `json:"dealCode,omitempty"`

	Adults   int `json:"adults"`
	Children int `json:"children"`
	Babies   int `json:"babies"`
	Animals  int `json:"animals"`

	ModelRelease  bool    `json:"modelRelease,omitempty"`
	CreateAccount bool    `json:"createAccount,omitempty"`
	CouponCode    *string `json:"couponCode,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *QuoteRequest) ToUseCaseRequest(userID *int64) *quotePrice.Request {
	return &quotePrice.Request{
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
		ModelRelease:  r.ModelRelease,
		CreateAccount: r.CreateAccount,
		CouponCode:    r.CouponCode,
	}
}

// QuoteLineItem позиция расчета в HTTP ответе
type QuoteLineItem struct {
	Code   string `json:"code"`
	Label  string `json:"label"`
	Amount string `json:"amount"` // "249.99", скидки со знаком минус
}

// QuoteResponse HTTP response model
type QuoteResponse struct {
	LineItems []QuoteLineItem `json:"lineItems"`
	Total     string          `json:"total"`

	CouponApplied   bool    `json:"couponApplied"`
	CouponCode      *string `json:"couponCode,omitempty"`
	CouponRejection *string `json:"couponRejection,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *quotePrice.Response) *QuoteResponse {
	items := make([]QuoteLineItem, len(resp.LineItems))
	for i, item := range resp.LineItems {
		items[i] = QuoteLineItem{
			Code:   item.Code,
			Label:  item.Label,
			Amount: item.Amount.StringFixed(2),
		}
	}
	return &QuoteResponse{
		LineItems:       items,
		Total:           resp.Total.StringFixed(2),
		CouponApplied:   resp.CouponApplied,
		CouponCode:      resp.CouponCode,
		CouponRejection: resp.CouponRejection,
	}
}
