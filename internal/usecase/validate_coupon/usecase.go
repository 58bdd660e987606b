package validate_coupon

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/FSP-BookingService/internal/discount"
	couponRepo "github.com/m04kA/FSP-BookingService/internal/infra/storage/coupon"
	"github.com/m04kA/FSP-BookingService/pkg/ptr"
)

// UseCase use case проверки купона без погашения
type UseCase struct {
	couponRepo   CouponRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(couponRepo CouponRepository, logger Logger) *UseCase {
	return &UseCase{
		couponRepo:   couponRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case проверки купона.
// Деактивированный, истекший и чужой купон дают отказ, а не ошибку;
// единственная ошибка клиента - код неверного формата.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	code, err := discount.NormalizeCode(req.Code)
	if err != nil {
		uc.logger.Warn("ValidateCoupon: malformed code: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrMalformedCode, err)
	}

	formatted := discount.FormatCode(code)

	coupon, err := uc.couponRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, couponRepo.ErrCouponNotFound) {
			uc.logger.Info("ValidateCoupon: code not found")
			return rejected(formatted, discount.RejectionNotFound), nil
		}
		uc.logger.Error("ValidateCoupon: failed to get coupon: %v", err)
		return nil, fmt.Errorf("%w: failed to get coupon: %v", ErrInternal, err)
	}

	result := discount.ValidateCoupon(coupon, req.UserID, uc.timeProvider.Now())
	if !result.Applied() {
		uc.logger.Info("ValidateCoupon: coupon id=%d rejected: %s", coupon.ID, result.Rejection)
		return rejected(formatted, result.Rejection), nil
	}

	uc.logger.Info("ValidateCoupon: coupon id=%d valid", coupon.ID)

	return &Response{
		Valid:           true,
		Code:            formatted,
		DiscountPercent: ptr.Ptr(coupon.DiscountPercent),
		DiscountAmount:  ptr.Ptr(coupon.DiscountAmount),
		Scope:           ptr.Ptr(string(coupon.Scope)),
	}, nil
}

func rejected(code string, reason discount.RejectionReason) *Response {
	return &Response{
		Valid:     false,
		Code:      code,
		Rejection: ptr.Ptr(string(reason)),
	}
}
