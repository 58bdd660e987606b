package manage_coupons

import (
	"context"

	"github.com/m04kA/FSP-BookingService/internal/service/coupons/models"
)

type CouponService interface {
	Create(ctx context.Context, req *models.CreateCouponRequest) (*models.CouponResponse, error)
	List(ctx context.Context) (*models.CouponListResponse, error)
	Deactivate(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
