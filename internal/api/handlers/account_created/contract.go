package account_created

import (
	"context"

	"github.com/m04kA/FSP-BookingService/internal/service/coupons/models"
)

type CouponService interface {
	IssueWelcomeCoupon(ctx context.Context, userID int64) (*models.CouponResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
