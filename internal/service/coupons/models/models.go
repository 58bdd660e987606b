package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/FSP-BookingService/internal/discount"
	"github.com/m04kA/FSP-BookingService/internal/domain"
)

// Request модели

// CreateCouponRequest запрос на выпуск купона (админка)
// Код не принимается снаружи - он всегда генерируется сервером
type CreateCouponRequest struct {
	DiscountPercent *decimal.Decimal `json:"discountPercent,omitempty"`
	DiscountAmount  *decimal.Decimal `json:"discountAmount,omitempty"`
	Scope           string           `json:"scope"` // whole_order | package_only
	SingleUse       bool             `json:"singleUse"`
	TargetUserID    *int64           `json:"targetUserId,omitempty"`
	ValidUntil      *time.Time       `json:"validUntil,omitempty"`
}

// Response модели

// CouponResponse ответ с данными купона
type CouponResponse struct {
	ID              int64           `json:"id"`
	Code            string          `json:"code"` // XXXX-XXXX-XXXX-XXXX
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	DiscountAmount  decimal.Decimal `json:"discountAmount"`
	Scope           string          `json:"scope"`
	SingleUse       bool            `json:"singleUse"`
	UsedAt          *time.Time      `json:"usedAt,omitempty"`
	TargetUserID    *int64          `json:"targetUserId,omitempty"`
	ValidUntil      *time.Time      `json:"validUntil,omitempty"`
	IsActive        bool            `json:"isActive"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// CouponListResponse ответ со списком купонов
type CouponListResponse struct {
	Coupons []CouponResponse `json:"coupons"`
}

// Методы конвертации

// FromDomainCoupon конвертирует domain модель в DTO
func FromDomainCoupon(c *domain.Coupon) *CouponResponse {
	if c == nil {
		return nil
	}
	return &CouponResponse{
		ID:              c.ID,
		Code:            discount.FormatCode(c.Code),
		DiscountPercent: c.DiscountPercent,
		DiscountAmount:  c.DiscountAmount,
		Scope:           string(c.Scope),
		SingleUse:       c.SingleUse,
		UsedAt:          c.UsedAt,
		TargetUserID:    c.TargetUserID,
		ValidUntil:      c.ValidUntil,
		IsActive:        c.IsActive,
		CreatedAt:       c.CreatedAt,
	}
}

// FromDomainCouponList конвертирует список domain моделей в DTO
func FromDomainCouponList(coupons []*domain.Coupon) *CouponListResponse {
	resp := &CouponListResponse{
		Coupons: make([]CouponResponse, 0, len(coupons)),
	}
	for _, c := range coupons {
		if couponResp := FromDomainCoupon(c); couponResp != nil {
			resp.Coupons = append(resp.Coupons, *couponResp)
		}
	}
	return resp
}
