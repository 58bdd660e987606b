package coupons

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FSP-BookingService/internal/discount"
	"github.com/m04kA/FSP-BookingService/internal/domain"
	couponRepo "github.com/m04kA/FSP-BookingService/internal/infra/storage/coupon"
	"github.com/m04kA/FSP-BookingService/internal/service/coupons/models"
	"github.com/m04kA/FSP-BookingService/pkg/ptr"
)

type fakeCouponRepo struct {
	byID   map[int64]*domain.Coupon
	nextID int64
}

func newFakeCouponRepo() *fakeCouponRepo {
	return &fakeCouponRepo{byID: map[int64]*domain.Coupon{}, nextID: 1}
}

func (f *fakeCouponRepo) Create(_ context.Context, c *domain.Coupon) (*domain.Coupon, error) {
	copied := *c
	copied.ID = f.nextID
	copied.CreatedAt = time.Now()
	f.byID[copied.ID] = &copied
	f.nextID++
	return &copied, nil
}

func (f *fakeCouponRepo) GetByID(_ context.Context, id int64) (*domain.Coupon, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, couponRepo.ErrCouponNotFound
	}
	return c, nil
}

func (f *fakeCouponRepo) List(_ context.Context) ([]*domain.Coupon, error) {
	result := make([]*domain.Coupon, 0, len(f.byID))
	for _, c := range f.byID {
		result = append(result, c)
	}
	return result, nil
}

func (f *fakeCouponRepo) Deactivate(_ context.Context, id int64) error {
	c, ok := f.byID[id]
	if !ok {
		return couponRepo.ErrCouponNotFound
	}
	c.IsActive = false
	return nil
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

func newService(repo *fakeCouponRepo) *Service {
	svc := NewService(repo, noopLogger{})
	svc.timeProvider = &fakeTimeProvider{now: fixedNow}
	return svc
}

func TestCreate(t *testing.T) {
	repo := newFakeCouponRepo()
	svc := newService(repo)

	resp, err := svc.Create(context.Background(), &models.CreateCouponRequest{
		DiscountPercent: ptr.Ptr(decimal.NewFromInt(15)),
		Scope:           "whole_order",
		SingleUse:       true,
	})
	require.NoError(t, err)

	assert.True(t, resp.IsActive)
	assert.True(t, resp.SingleUse)

	// Код сгенерирован сервером: канонические 16 символов, отображается 4x4
	stored := repo.byID[resp.ID]
	assert.Len(t, stored.Code, domain.CouponCodeLength)
	assert.Equal(t, discount.FormatCode(stored.Code), resp.Code)

	normalized, err := discount.NormalizeCode(resp.Code)
	require.NoError(t, err)
	assert.Equal(t, stored.Code, normalized)
}

func TestCreate_InvalidScope(t *testing.T) {
	svc := newService(newFakeCouponRepo())

	_, err := svc.Create(context.Background(), &models.CreateCouponRequest{
		DiscountPercent: ptr.Ptr(decimal.NewFromInt(15)),
		Scope:           "everything",
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreate_DiscountValidation(t *testing.T) {
	tests := []struct {
		name    string
		percent *decimal.Decimal
		amount  *decimal.Decimal
	}{
		{name: "no discount at all"},
		{name: "negative percent", percent: ptr.Ptr(decimal.NewFromInt(-5))},
		{name: "negative amount", amount: ptr.Ptr(decimal.RequireFromString("-1.00"))},
		{name: "percent above 100", percent: ptr.Ptr(decimal.NewFromInt(101))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newService(newFakeCouponRepo())

			_, err := svc.Create(context.Background(), &models.CreateCouponRequest{
				DiscountPercent: tt.percent,
				DiscountAmount:  tt.amount,
				Scope:           "whole_order",
			})

			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestIssueWelcomeCoupon(t *testing.T) {
	repo := newFakeCouponRepo()
	svc := newService(repo)

	resp, err := svc.IssueWelcomeCoupon(context.Background(), 42)
	require.NoError(t, err)

	stored := repo.byID[resp.ID]
	assert.True(t, stored.DiscountPercent.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, domain.ScopePackageOnly, stored.Scope)
	assert.True(t, stored.SingleUse)
	require.NotNil(t, stored.TargetUserID)
	assert.Equal(t, int64(42), *stored.TargetUserID)
	require.NotNil(t, stored.ValidUntil)
	assert.Equal(t, fixedNow.AddDate(0, 0, welcomeValidityDays), *stored.ValidUntil)
}

func TestIssueWelcomeCoupon_InvalidUser(t *testing.T) {
	svc := newService(newFakeCouponRepo())

	_, err := svc.IssueWelcomeCoupon(context.Background(), 0)

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDeactivate(t *testing.T) {
	repo := newFakeCouponRepo()
	svc := newService(repo)

	resp, err := svc.Create(context.Background(), &models.CreateCouponRequest{
		DiscountPercent: ptr.Ptr(decimal.NewFromInt(15)),
		Scope:           "whole_order",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(context.Background(), resp.ID))
	assert.False(t, repo.byID[resp.ID].IsActive)

	assert.ErrorIs(t, svc.Deactivate(context.Background(), 999), ErrCouponNotFound)
}

func TestList(t *testing.T) {
	repo := newFakeCouponRepo()
	svc := newService(repo)

	for i := 0; i < 3; i++ {
		_, err := svc.Create(context.Background(), &models.CreateCouponRequest{
			DiscountAmount: ptr.Ptr(decimal.RequireFromString("5.00")),
			Scope:          "package_only",
		})
		require.NoError(t, err)
	}

	resp, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, resp.Coupons, 3)
}

func TestGenerateCode_Unique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		code, err := generateCode()
		require.NoError(t, err)
		require.Len(t, code, domain.CouponCodeLength)

		_, dup := seen[code]
		require.False(t, dup, "generated duplicate code %s", code)
		seen[code] = struct{}{}
	}
}
