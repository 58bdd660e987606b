package quote_price

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/FSP-BookingService/internal/catalog"
	"github.com/m04kA/FSP-BookingService/internal/discount"
	"github.com/m04kA/FSP-BookingService/internal/pricing"
	couponRepo "github.com/m04kA/FSP-BookingService/internal/infra/storage/coupon"
	"github.com/m04kA/FSP-BookingService/pkg/ptr"
)

// UseCase use case предварительного расчета цены.
// Никогда не пишет в БД: купон проверяется, но не погашается.
type UseCase struct {
	catalog      *catalog.Catalog
	couponRepo   CouponRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(cat *catalog.Catalog, couponRepo CouponRepository, logger Logger) *UseCase {
	return &UseCase{
		catalog:      cat,
		couponRepo:   couponRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case расчета цены
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("QuotePrice: service=%s, duration=%s, deal=%v, coupon=%v",
		req.ServiceCode, req.DurationCode, req.DealCode != nil, req.CouponCode != nil)

	// 1. Собираем нормализованный выбор по каталогу
	sel, err := uc.catalog.BuildSelection(rawSelection(req))
	if err != nil {
		uc.logger.Warn("QuotePrice: invalid selection: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidSelection, err)
	}

	// 2. Ищем и проверяем купон (отказ - не ошибка, только неверный формат)
	couponResult, normalizedCode, err := uc.lookupCoupon(ctx, req)
	if err != nil {
		return nil, err
	}

	// 3. Разрешаем скидки и считаем итог
	dctx := discount.Resolve(sel, couponResult)
	quote := pricing.ComputeTotal(sel, dctx)

	resp := &Response{
		LineItems: make([]QuoteLineItem, 0, len(quote.LineItems)),
		Total:     quote.Total,
	}
	for _, item := range quote.LineItems {
		resp.LineItems = append(resp.LineItems, QuoteLineItem{
			Code:   item.Code,
			Label:  item.Label,
			Amount: item.Amount,
		})
	}

	if normalizedCode != "" {
		resp.CouponCode = ptr.Ptr(discount.FormatCode(normalizedCode))
	}
	resp.CouponApplied = couponResult.Applied()
	if couponResult.Rejection != "" {
		resp.CouponRejection = ptr.Ptr(string(couponResult.Rejection))
	}

	uc.logger.Info("QuotePrice: total=%s, items=%d, couponApplied=%v",
		resp.Total.StringFixed(2), len(resp.LineItems), resp.CouponApplied)

	return resp, nil
}

// lookupCoupon нормализует код, находит купон и проверяет применимость.
// Возвращает пустой результат, если код не передан.
func (uc *UseCase) lookupCoupon(ctx context.Context, req *Request) (discount.CouponResult, string, error) {
	if req.CouponCode == nil || *req.CouponCode == "" {
		return discount.CouponResult{}, "", nil
	}

	code, err := discount.NormalizeCode(*req.CouponCode)
	if err != nil {
		uc.logger.Warn("QuotePrice: malformed coupon code: %v", err)
		return discount.CouponResult{}, "", fmt.Errorf("%w: %v", ErrMalformedCoupon, err)
	}

	coupon, err := uc.couponRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, couponRepo.ErrCouponNotFound) {
			uc.logger.Info("QuotePrice: coupon not found")
			return discount.Rejected(discount.RejectionNotFound), code, nil
		}
		uc.logger.Error("QuotePrice: failed to get coupon: %v", err)
		return discount.CouponResult{}, "", fmt.Errorf("%w: failed to get coupon: %v", ErrInternal, err)
	}

	result := discount.ValidateCoupon(coupon, req.UserID, uc.timeProvider.Now())
	if result.Rejection != "" {
		uc.logger.Info("QuotePrice: coupon rejected: %s", result.Rejection)
	}
	return result, code, nil
}

func rawSelection(req *Request) catalog.RawSelection {
	raw := catalog.RawSelection{
		ServiceCode:   req.ServiceCode,
		DurationCode:  req.DurationCode,
		Combo:         req.Combo,
		Adults:        req.Adults,
		Children:      req.Children,
		Babies:        req.Babies,
		Animals:       req.Animals,
		ModelRelease:  req.ModelRelease,
		CreateAccount: req.CreateAccount,
	}
	if req.PackageCode != nil {
		raw.PackageCode = *req.PackageCode
	}
	if req.DealCode != nil {
		raw.DealCode = *req.DealCode
	}
	if req.CouponCode != nil {
		raw.CouponCode = *req.CouponCode
	}
	return raw
}
