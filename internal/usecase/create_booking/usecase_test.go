package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FSP-BookingService/internal/catalog"
	"github.com/m04kA/FSP-BookingService/internal/domain"
	couponRepo "github.com/m04kA/FSP-BookingService/internal/infra/storage/coupon"
	"github.com/m04kA/FSP-BookingService/internal/integrations/identity"
	"github.com/m04kA/FSP-BookingService/pkg/ptr"
	"github.com/m04kA/FSP-BookingService/pkg/types"
)

// --- Фейки зависимостей ---

type fakeBookingRepo struct {
	existing []*domain.Booking
	created  *domain.Booking
}

func (f *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	copied := *b
	copied.ID = 101
	copied.CreatedAt = time.Now()
	f.created = &copied
	return &copied, nil
}

func (f *fakeBookingRepo) GetWithFilter(_ context.Context, _ domain.BookingsFilter) ([]*domain.Booking, error) {
	return f.existing, nil
}

type fakeCouponRepo struct {
	coupons     map[string]*domain.Coupon
	redeemErr   error
	redeemedIDs []int64
}

func (f *fakeCouponRepo) GetByCode(_ context.Context, code string) (*domain.Coupon, error) {
	c, ok := f.coupons[code]
	if !ok {
		return nil, couponRepo.ErrCouponNotFound
	}
	return c, nil
}

func (f *fakeCouponRepo) Redeem(_ context.Context, id int64) error {
	if f.redeemErr != nil {
		return f.redeemErr
	}
	f.redeemedIDs = append(f.redeemedIDs, id)
	return nil
}

type fakeBlockedSlotRepo struct {
	blocked []*domain.BlockedSlot
}

func (f *fakeBlockedSlotRepo) GetByDate(_ context.Context, _ time.Time) ([]*domain.BlockedSlot, error) {
	return f.blocked, nil
}

type fakeIdentityClient struct {
	users map[int64]*identity.User
}

func (f *fakeIdentityClient) GetUser(_ context.Context, userID int64) (*identity.User, error) {
	u, ok := f.users[userID]
	if !ok {
		return nil, identity.ErrUserNotFound
	}
	return u, nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeTimeProvider struct {
	now time.Time
}

func (f *fakeTimeProvider) Now() time.Time { return f.now }

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// --- Сборка окружения ---

type env struct {
	uc       *UseCase
	bookings *fakeBookingRepo
	coupons  *fakeCouponRepo
	blocked  *fakeBlockedSlotRepo
	identity *fakeIdentityClient
}

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newEnv(t *testing.T) *env {
	t.Helper()

	e := &env{
		bookings: &fakeBookingRepo{},
		coupons:  &fakeCouponRepo{coupons: map[string]*domain.Coupon{}},
		blocked:  &fakeBlockedSlotRepo{},
		identity: &fakeIdentityClient{users: map[int64]*identity.User{}},
	}

	e.uc = NewUseCase(
		catalog.Default(),
		e.bookings,
		e.coupons,
		e.blocked,
		e.identity,
		&fakeTxManager{},
		noopLogger{},
	)
	e.uc.timeProvider = &fakeTimeProvider{now: fixedNow}

	return e
}

func validRequest() *Request {
	return &Request{
		ServiceCode:   "portrait",
		DurationCode:  "1h",
		PackageCode:   ptr.Ptr("25"),
		Adults:        2,
		Date:          time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		StartTime:     "10:00",
		CustomerName:  "Анна Шмидт",
		CustomerEmail: "anna@example.com",
	}
}

// --- Тесты ---

func TestExecute_Success(t *testing.T) {
	e := newEnv(t)

	resp, err := e.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(101), resp.ID)
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", resp.Reference.String())
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, 60, resp.Minutes)
	assert.True(t, resp.TotalPrice.Equal(decimal.RequireFromString("349.98")), "got %s", resp.TotalPrice)
	require.NotEmpty(t, resp.LineItems)

	// Снапшот цен зафиксирован в бронировании
	require.NotNil(t, e.bookings.created)
	assert.True(t, e.bookings.created.DurationPrice.Equal(decimal.RequireFromString("99.99")))
	assert.True(t, e.bookings.created.PackagePrice.Equal(decimal.RequireFromString("249.99")))
}

func TestExecute_GuestBookingSkipsIdentityLookup(t *testing.T) {
	e := newEnv(t)
	// Платформа аккаунтов никого не знает - гостя это не касается
	req := validRequest()
	req.UserID = nil

	resp, err := e.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Nil(t, resp.UserID)
}

func TestExecute_UnknownUser(t *testing.T) {
	e := newEnv(t)
	req := validRequest()
	req.UserID = ptr.Ptr(int64(42))

	_, err := e.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Nil(t, e.bookings.created)
}

func TestExecute_PastDate(t *testing.T) {
	e := newEnv(t)
	req := validRequest()
	req.Date = fixedNow.AddDate(0, 0, -1)

	_, err := e.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_SameDayIsAllowed(t *testing.T) {
	e := newEnv(t)
	req := validRequest()
	req.Date = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	_, err := e.uc.Execute(context.Background(), req)

	require.NoError(t, err)
}

func TestExecute_SlotTimeValidation(t *testing.T) {
	tests := []struct {
		name  string
		start types.TimeString
	}{
		{name: "before working hours", start: "07:30"},
		{name: "at closing time", start: "20:00"},
		{name: "off-grid time", start: "10:15"},
		{name: "does not fit before closing", start: "19:30"}, // часовая съемка до 20:30
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t)
			req := validRequest()
			req.StartTime = tt.start

			_, err := e.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidTimeSlot)
		})
	}
}

func TestExecute_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{name: "missing name", mutate: func(r *Request) { r.CustomerName = "  " }},
		{name: "missing email", mutate: func(r *Request) { r.CustomerEmail = "" }},
		{name: "bad email", mutate: func(r *Request) { r.CustomerEmail = "nope" }},
		{name: "missing start time", mutate: func(r *Request) { r.StartTime = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t)
			req := validRequest()
			tt.mutate(req)

			_, err := e.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_InvalidSelection(t *testing.T) {
	e := newEnv(t)
	req := validRequest()
	req.ServiceCode = "astro"

	_, err := e.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidSelection)
}

func TestExecute_SlotConflict(t *testing.T) {
	e := newEnv(t)
	e.bookings.existing = []*domain.Booking{{
		ID:              7,
		BookingDate:     time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		StartTime:       "10:30",
		DurationCode:    "1h",
		DurationMinutes: 60,
		Status:          domain.StatusConfirmed,
	}}

	_, err := e.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Nil(t, e.bookings.created)
}

func TestExecute_BlockedDay(t *testing.T) {
	e := newEnv(t)
	e.blocked.blocked = []*domain.BlockedSlot{{
		ID:   1,
		Date: time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
	}}

	_, err := e.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_MalformedCoupon(t *testing.T) {
	e := newEnv(t)
	req := validRequest()
	req.CouponCode = ptr.Ptr("not-a-coupon")

	_, err := e.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrMalformedCoupon)
}

func TestExecute_CouponNotFound(t *testing.T) {
	e := newEnv(t)
	req := validRequest()
	req.CouponCode = ptr.Ptr("ABCD1234EFGH5678")

	_, err := e.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrCouponNotFound)
}

func TestExecute_CouponApplied(t *testing.T) {
	e := newEnv(t)
	e.coupons.coupons["ABCD1234EFGH5678"] = &domain.Coupon{
		ID:              5,
		Code:            "ABCD1234EFGH5678",
		DiscountPercent: decimal.NewFromInt(10),
		Scope:           domain.ScopeWholeOrder,
		SingleUse:       true,
		IsActive:        true,
	}

	req := validRequest()
	// Пользователи вводят код в отображаемом формате 4x4
	req.CouponCode = ptr.Ptr("abcd-1234-efgh-5678")

	resp, err := e.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// 349.98 - 10% = 314.98
	assert.True(t, resp.TotalPrice.Equal(decimal.RequireFromString("314.98")), "got %s", resp.TotalPrice)
	require.NotNil(t, e.bookings.created.CouponID)
	assert.Equal(t, int64(5), *e.bookings.created.CouponID)
	assert.Equal(t, []int64{5}, e.coupons.redeemedIDs, "одноразовый купон погашен в той же транзакции")
}

func TestExecute_ReusableCouponIsNotRedeemed(t *testing.T) {
	e := newEnv(t)
	e.coupons.coupons["ABCD1234EFGH5678"] = &domain.Coupon{
		ID:              6,
		Code:            "ABCD1234EFGH5678",
		DiscountPercent: decimal.NewFromInt(10),
		Scope:           domain.ScopeWholeOrder,
		SingleUse:       false,
		IsActive:        true,
	}

	req := validRequest()
	req.CouponCode = ptr.Ptr("ABCD1234EFGH5678")

	_, err := e.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Empty(t, e.coupons.redeemedIDs)
}

func TestExecute_CouponRejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.Coupon)
		userID  *int64
		wantErr error
	}{
		{
			name:    "expired",
			mutate:  func(c *domain.Coupon) { c.ValidUntil = ptr.Ptr(fixedNow.Add(-time.Hour)) },
			wantErr: ErrCouponExpired,
		},
		{
			name: "already used",
			mutate: func(c *domain.Coupon) {
				c.SingleUse = true
				c.UsedAt = ptr.Ptr(fixedNow.Add(-time.Hour))
			},
			wantErr: ErrCouponAlreadyUsed,
		},
		{
			name:    "wrong user",
			mutate:  func(c *domain.Coupon) { c.TargetUserID = ptr.Ptr(int64(99)) },
			wantErr: ErrCouponWrongUser,
		},
		{
			name:    "deactivated",
			mutate:  func(c *domain.Coupon) { c.IsActive = false },
			wantErr: ErrCouponNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t)
			c := &domain.Coupon{
				ID:              5,
				Code:            "ABCD1234EFGH5678",
				DiscountPercent: decimal.NewFromInt(10),
				Scope:           domain.ScopeWholeOrder,
				IsActive:        true,
			}
			tt.mutate(c)
			e.coupons.coupons[c.Code] = c

			req := validRequest()
			req.UserID = tt.userID
			req.CouponCode = ptr.Ptr(c.Code)

			_, err := e.uc.Execute(context.Background(), req)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, e.bookings.created, "отказ купона фатален: клиент рассчитывает на скидку")
		})
	}
}

func TestExecute_CouponRedeemRace(t *testing.T) {
	e := newEnv(t)
	e.coupons.coupons["ABCD1234EFGH5678"] = &domain.Coupon{
		ID:              5,
		Code:            "ABCD1234EFGH5678",
		DiscountPercent: decimal.NewFromInt(10),
		Scope:           domain.ScopeWholeOrder,
		SingleUse:       true,
		IsActive:        true,
	}
	// Конкурирующая транзакция успела погасить купон первой
	e.coupons.redeemErr = couponRepo.ErrAlreadyRedeemed

	req := validRequest()
	req.CouponCode = ptr.Ptr("ABCD1234EFGH5678")

	_, err := e.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrCouponAlreadyUsed)
}

func TestExecute_WelcomeDiscountSnapshot(t *testing.T) {
	e := newEnv(t)
	req := validRequest()
	req.CreateAccount = true

	resp, err := e.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// 349.98 - 25.00 (10% от пакета 249.99, half-up)
	assert.True(t, resp.TotalPrice.Equal(decimal.RequireFromString("324.98")), "got %s", resp.TotalPrice)
	assert.True(t, e.bookings.created.WelcomeDiscount)
}

func TestExecute_DealBooking(t *testing.T) {
	e := newEnv(t)
	req := validRequest()
	req.ServiceCode = ""
	req.DurationCode = ""
	req.PackageCode = nil
	req.DealCode = ptr.Ptr("winter-mini")

	resp, err := e.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, resp.TotalPrice.Equal(decimal.RequireFromString("79.99")), "got %s", resp.TotalPrice)
	assert.Equal(t, 30, resp.Minutes)
	require.NotNil(t, e.bookings.created.DealCode)
	assert.Equal(t, "winter-mini", *e.bookings.created.DealCode)
}
