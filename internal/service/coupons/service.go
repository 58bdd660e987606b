package coupons

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/m04kA/FSP-BookingService/internal/domain"
	couponRepo "github.com/m04kA/FSP-BookingService/internal/infra/storage/coupon"
	"github.com/m04kA/FSP-BookingService/internal/service/coupons/models"
)

// codeAlphabet символы генерируемых кодов: без строчных, код хранится
// нормализованным в верхнем регистре
const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// welcomeValidityDays срок действия приветственного купона
const welcomeValidityDays = 180

// welcomePercent скидка приветственного купона на фотопакет
var welcomePercent = decimal.NewFromInt(10)

// Service сервис управления купонами
type Service struct {
	couponRepo   CouponRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса купонов
func NewService(couponRepo CouponRepository, logger Logger) *Service {
	return &Service{
		couponRepo:   couponRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Create выпускает новый купон со сгенерированным кодом (админка)
func (s *Service) Create(ctx context.Context, req *models.CreateCouponRequest) (*models.CouponResponse, error) {
	s.logger.Info("Create: issuing coupon, scope=%s, singleUse=%v, target=%v",
		req.Scope, req.SingleUse, req.TargetUserID)

	scope, err := parseScope(req.Scope)
	if err != nil {
		s.logger.Warn("Create: invalid scope=%q", req.Scope)
		return nil, err
	}

	percent := decimal.Zero
	if req.DiscountPercent != nil {
		percent = *req.DiscountPercent
	}
	amount := decimal.Zero
	if req.DiscountAmount != nil {
		amount = *req.DiscountAmount
	}
	if err := validateDiscount(percent, amount); err != nil {
		s.logger.Warn("Create: invalid discount: %v", err)
		return nil, err
	}

	code, err := generateCode()
	if err != nil {
		s.logger.Error("Create: failed to generate code: %v", err)
		return nil, fmt.Errorf("%w: failed to generate code: %v", ErrInternal, err)
	}

	coupon := &domain.Coupon{
		Code:            code,
		DiscountPercent: percent,
		DiscountAmount:  amount,
		Scope:           scope,
		SingleUse:       req.SingleUse,
		TargetUserID:    req.TargetUserID,
		ValidUntil:      req.ValidUntil,
		IsActive:        true,
	}

	created, err := s.couponRepo.Create(ctx, coupon)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully issued coupon id=%d", created.ID)
	return models.FromDomainCoupon(created), nil
}

// IssueWelcomeCoupon выпускает приветственный купон для нового аккаунта:
// 10% на фотопакет, одноразовый, привязан к пользователю.
// Вызывается webhook-ом платформы аккаунтов после регистрации.
func (s *Service) IssueWelcomeCoupon(ctx context.Context, userID int64) (*models.CouponResponse, error) {
	s.logger.Info("IssueWelcomeCoupon: issuing welcome coupon for user=%d", userID)

	if userID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	code, err := generateCode()
	if err != nil {
		s.logger.Error("IssueWelcomeCoupon: failed to generate code: %v", err)
		return nil, fmt.Errorf("%w: failed to generate code: %v", ErrInternal, err)
	}

	validUntil := s.timeProvider.Now().AddDate(0, 0, welcomeValidityDays)

	coupon := &domain.Coupon{
		Code:            code,
		DiscountPercent: welcomePercent,
		Scope:           domain.ScopePackageOnly,
		SingleUse:       true,
		TargetUserID:    &userID,
		ValidUntil:      &validUntil,
		IsActive:        true,
	}

	created, err := s.couponRepo.Create(ctx, coupon)
	if err != nil {
		s.logger.Error("IssueWelcomeCoupon: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: IssueWelcomeCoupon - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("IssueWelcomeCoupon: successfully issued coupon id=%d for user=%d", created.ID, userID)
	return models.FromDomainCoupon(created), nil
}

// List возвращает все купоны (админка)
func (s *Service) List(ctx context.Context) (*models.CouponListResponse, error) {
	coupons, err := s.couponRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d coupons", len(coupons))
	return models.FromDomainCouponList(coupons), nil
}

// Deactivate деактивирует купон (админка).
// Деактивированный купон при проверке неотличим от несуществующего.
func (s *Service) Deactivate(ctx context.Context, id int64) error {
	s.logger.Info("Deactivate: deactivating coupon id=%d", id)

	if err := s.couponRepo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, couponRepo.ErrCouponNotFound) {
			s.logger.Warn("Deactivate: coupon id=%d not found", id)
			return ErrCouponNotFound
		}
		s.logger.Error("Deactivate: repository error for coupon id=%d: %v", id, err)
		return fmt.Errorf("%w: Deactivate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Deactivate: successfully deactivated coupon id=%d", id)
	return nil
}

// generateCode генерирует криптографически случайный 16-символьный код
func generateCode() (string, error) {
	max := big.NewInt(int64(len(codeAlphabet)))
	buf := make([]byte, domain.CouponCodeLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = codeAlphabet[n.Int64()]
	}
	return string(buf), nil
}

func parseScope(s string) (domain.CouponScope, error) {
	switch domain.CouponScope(s) {
	case domain.ScopeWholeOrder, domain.ScopePackageOnly:
		return domain.CouponScope(s), nil
	default:
		return "", fmt.Errorf("%w: unknown scope %q", ErrInvalidInput, s)
	}
}

// validateDiscount проверяет, что купон дает хоть какую-то скидку
// и что параметры в допустимых пределах
func validateDiscount(percent, amount decimal.Decimal) error {
	if percent.IsZero() && amount.IsZero() {
		return fmt.Errorf("%w: coupon must carry a percent or a fixed amount", ErrInvalidInput)
	}
	if percent.IsNegative() || amount.IsNegative() {
		return fmt.Errorf("%w: discount values must be non-negative", ErrInvalidInput)
	}
	if percent.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("%w: discountPercent must not exceed 100", ErrInvalidInput)
	}
	return nil
}
