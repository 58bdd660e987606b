package quote_price

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FSP-BookingService/internal/catalog"
	"github.com/m04kA/FSP-BookingService/internal/discount"
	"github.com/m04kA/FSP-BookingService/internal/domain"
	couponRepo "github.com/m04kA/FSP-BookingService/internal/infra/storage/coupon"
	"github.com/m04kA/FSP-BookingService/pkg/ptr"
)

type fakeCouponRepo struct {
	coupons map[string]*domain.Coupon
}

func (f *fakeCouponRepo) GetByCode(_ context.Context, code string) (*domain.Coupon, error) {
	c, ok := f.coupons[code]
	if !ok {
		return nil, couponRepo.ErrCouponNotFound
	}
	return c, nil
}

type fakeTimeProvider struct {
	now time.Time
}

func (f *fakeTimeProvider) Now() time.Time { return f.now }

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newUseCase(coupons map[string]*domain.Coupon) *UseCase {
	if coupons == nil {
		coupons = map[string]*domain.Coupon{}
	}
	uc := NewUseCase(catalog.Default(), &fakeCouponRepo{coupons: coupons}, noopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: fixedNow}
	return uc
}

func TestExecute_BasicQuote(t *testing.T) {
	uc := newUseCase(nil)

	resp, err := uc.Execute(context.Background(), &Request{
		ServiceCode:  "portrait",
		DurationCode: "1h",
		PackageCode:  ptr.Ptr("25"),
	})
	require.NoError(t, err)

	assert.True(t, resp.Total.Equal(decimal.RequireFromString("349.98")), "got %s", resp.Total)
	assert.Len(t, resp.LineItems, 2)
	assert.False(t, resp.CouponApplied)
	assert.Nil(t, resp.CouponCode)
	assert.Nil(t, resp.CouponRejection)
}

func TestExecute_InvalidSelection(t *testing.T) {
	uc := newUseCase(nil)

	_, err := uc.Execute(context.Background(), &Request{
		ServiceCode:  "portrait",
		DurationCode: "8h", // нет в сетке портретной съемки
	})

	assert.ErrorIs(t, err, ErrInvalidSelection)
}

func TestExecute_MalformedCoupon(t *testing.T) {
	uc := newUseCase(nil)

	_, err := uc.Execute(context.Background(), &Request{
		ServiceCode:  "portrait",
		DurationCode: "1h",
		CouponCode:   ptr.Ptr("???"),
	})

	assert.ErrorIs(t, err, ErrMalformedCoupon)
}

func TestExecute_CouponNotFoundIsRejectionNotError(t *testing.T) {
	uc := newUseCase(nil)

	resp, err := uc.Execute(context.Background(), &Request{
		ServiceCode:  "portrait",
		DurationCode: "1h",
		PackageCode:  ptr.Ptr("25"),
		CouponCode:   ptr.Ptr("ABCD1234EFGH5678"),
	})
	require.NoError(t, err)

	// Отказ купона не прерывает расчет: UI показывает причину рядом с полем
	assert.False(t, resp.CouponApplied)
	require.NotNil(t, resp.CouponRejection)
	assert.Equal(t, string(discount.RejectionNotFound), *resp.CouponRejection)
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("349.98")))
}

func TestExecute_CouponApplied(t *testing.T) {
	uc := newUseCase(map[string]*domain.Coupon{
		"ABCD1234EFGH5678": {
			ID:              1,
			Code:            "ABCD1234EFGH5678",
			DiscountPercent: decimal.NewFromInt(20),
			Scope:           domain.ScopeWholeOrder,
			IsActive:        true,
		},
	})

	resp, err := uc.Execute(context.Background(), &Request{
		ServiceCode:  "portrait",
		DurationCode: "1h",
		PackageCode:  ptr.Ptr("25"),
		CouponCode:   ptr.Ptr("abcd 1234 efgh 5678"),
	})
	require.NoError(t, err)

	assert.True(t, resp.CouponApplied)
	require.NotNil(t, resp.CouponCode)
	assert.Equal(t, "ABCD-1234-EFGH-5678", *resp.CouponCode)
	// 349.98 - 70.00 (20%)
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("279.98")), "got %s", resp.Total)
}

func TestExecute_ExpiredCouponRejection(t *testing.T) {
	uc := newUseCase(map[string]*domain.Coupon{
		"ABCD1234EFGH5678": {
			ID:              1,
			Code:            "ABCD1234EFGH5678",
			DiscountPercent: decimal.NewFromInt(20),
			Scope:           domain.ScopeWholeOrder,
			IsActive:        true,
			ValidUntil:      ptr.Ptr(fixedNow.Add(-time.Hour)),
		},
	})

	resp, err := uc.Execute(context.Background(), &Request{
		ServiceCode:  "portrait",
		DurationCode: "1h",
		PackageCode:  ptr.Ptr("25"),
		CouponCode:   ptr.Ptr("ABCD1234EFGH5678"),
	})
	require.NoError(t, err)

	assert.False(t, resp.CouponApplied)
	require.NotNil(t, resp.CouponRejection)
	assert.Equal(t, string(discount.RejectionExpired), *resp.CouponRejection)
}

func TestExecute_WelcomeDiscount(t *testing.T) {
	uc := newUseCase(nil)

	resp, err := uc.Execute(context.Background(), &Request{
		ServiceCode:   "portrait",
		DurationCode:  "1h",
		PackageCode:   ptr.Ptr("25"),
		CreateAccount: true,
	})
	require.NoError(t, err)

	// 349.98 - 25.00 (10% от пакета)
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("324.98")), "got %s", resp.Total)
}

func TestExecute_RejectedCouponFallsBackToWelcome(t *testing.T) {
	uc := newUseCase(nil)

	// Купон не найден, но клиент создает аккаунт: действует welcome-скидка
	resp, err := uc.Execute(context.Background(), &Request{
		ServiceCode:   "portrait",
		DurationCode:  "1h",
		PackageCode:   ptr.Ptr("25"),
		CreateAccount: true,
		CouponCode:    ptr.Ptr("ABCD1234EFGH5678"),
	})
	require.NoError(t, err)

	assert.False(t, resp.CouponApplied)
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("324.98")), "got %s", resp.Total)
}

func TestExecute_DealQuote(t *testing.T) {
	uc := newUseCase(nil)

	resp, err := uc.Execute(context.Background(), &Request{
		DealCode: ptr.Ptr("family-sunday"),
	})
	require.NoError(t, err)

	require.Len(t, resp.LineItems, 1)
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("199.99")))
}
