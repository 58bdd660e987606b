package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CouponScope defines which price component a coupon discounts
type CouponScope string

const (
	// ScopeWholeOrder discounts the full running subtotal
	ScopeWholeOrder CouponScope = "whole_order"
	// ScopePackageOnly discounts only the photo-package component
	ScopePackageOnly CouponScope = "package_only"
)

// Coupon is an admin- or system-issued discount code.
// Percent and fixed amount may both be set on one coupon; the fixed amount
// is applied after the percent. A single-use coupon becomes permanently
// inert once UsedAt is set; only the server ever writes UsedAt.
type Coupon struct {
	ID              int64
	Code            string // 16 alphanumeric chars, uppercase, rendered 4x4
	DiscountPercent decimal.Decimal
	DiscountAmount  decimal.Decimal
	Scope           CouponScope
	SingleUse       bool
	UsedAt          *time.Time
	TargetUserID    *int64 // nil = anyone may redeem
	ValidUntil      *time.Time
	IsActive        bool
	CreatedAt       time.Time
}

// IsExpired returns true if the coupon's validity window has passed
func (c *Coupon) IsExpired(now time.Time) bool {
	return c.ValidUntil != nil && c.ValidUntil.Before(now)
}

// IsRedeemed returns true if a single-use coupon has already been consumed
func (c *Coupon) IsRedeemed() bool {
	return c.SingleUse && c.UsedAt != nil
}

// IsForUser returns true if the coupon may be redeemed by the given user.
// Untargeted coupons are redeemable by anyone, including guests.
func (c *Coupon) IsForUser(userID *int64) bool {
	if c.TargetUserID == nil {
		return true
	}
	return userID != nil && *userID == *c.TargetUserID
}
