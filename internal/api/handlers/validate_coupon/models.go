package validate_coupon

import (
	validateCoupon "github.com/m04kA/FSP-BookingService/internal/usecase/validate_coupon"
)

// ValidateCouponRequest HTTP request model
type ValidateCouponRequest struct {
	Code string `json:"code"`
}

// ValidateCouponResponse HTTP response model.
// Отказ возвращается с HTTP 200: для мастера бронирования это штатный
// ответ, который отображается рядом с полем ввода.
type ValidateCouponResponse struct {
	Valid     bool    `json:"valid"`
	Code      string  `json:"code"`
	Rejection *string `json:"rejection,omitempty"`

	DiscountPercent *string `json:"discountPercent,omitempty"`
	DiscountAmount  *string `json:"discountAmount,omitempty"`
	Scope           *string `json:"scope,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *validateCoupon.Response) *ValidateCouponResponse {
	out := &ValidateCouponResponse{
		Valid:     resp.Valid,
		Code:      resp.Code,
		Rejection: resp.Rejection,
		Scope:     resp.Scope,
	}
	if resp.DiscountPercent != nil {
		s := resp.DiscountPercent.StringFixed(2)
		out.DiscountPercent = &s
	}
	if resp.DiscountAmount != nil {
		s := resp.DiscountAmount.StringFixed(2)
		out.DiscountAmount = &s
	}
	return out
}
