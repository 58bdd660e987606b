package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/FSP-BookingService/internal/availability"
	"github.com/m04kA/FSP-BookingService/internal/catalog"
	"github.com/m04kA/FSP-BookingService/internal/discount"
	"github.com/m04kA/FSP-BookingService/internal/domain"
	"github.com/m04kA/FSP-BookingService/internal/pricing"
	couponRepo "github.com/m04kA/FSP-BookingService/internal/infra/storage/coupon"
	identityClient "github.com/m04kA/FSP-BookingService/internal/integrations/identity"
	"github.com/m04kA/FSP-BookingService/pkg/ptr"
)

// UseCase use case для создания бронирования
type UseCase struct {
	catalog         *catalog.Catalog
	bookingRepo     BookingRepository
	couponRepo      CouponRepository
	blockedSlotRepo BlockedSlotRepository
	identityClient  IdentityClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	cat *catalog.Catalog,
	bookingRepo BookingRepository,
	couponRepo CouponRepository,
	blockedSlotRepo BlockedSlotRepository,
	identityClient IdentityClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		catalog:         cat,
		bookingRepo:     bookingRepo,
		couponRepo:      couponRepo,
		blockedSlotRepo: blockedSlotRepo,
		identityClient:  identityClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования.
// Использует сериализуемую транзакцию для предотвращения гонки данных:
// проверка слота, создание бронирования и погашение купона атомарны.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: service=%s, duration=%s, date=%s, time=%s",
		req.ServiceCode, req.DurationCode, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Проверяем дату
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	// 4. Собираем нормализованный выбор по каталогу (цены - снапшоты каталога,
	// клиентская цена никогда не принимается на веру)
	sel, err := uc.catalog.BuildSelection(rawSelection(req))
	if err != nil {
		uc.logger.Warn("CreateBooking: invalid selection: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidSelection, err)
	}

	// 5. Длительность выбора в минутах и проверка попадания в сетку слотов
	slotMinutes, err := uc.catalog.SlotMinutesFor(sel)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to resolve slot minutes: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if err := validateSlotTime(req.StartTime, slotMinutes); err != nil {
		uc.logger.Warn("CreateBooking: slot time validation failed: %v", err)
		return nil, err
	}

	// 6. Нормализуем код купона до транзакции: неверный формат - ошибка сразу
	var couponCode string
	if req.CouponCode != nil && *req.CouponCode != "" {
		couponCode, err = discount.NormalizeCode(*req.CouponCode)
		if err != nil {
			uc.logger.Warn("CreateBooking: malformed coupon code: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrMalformedCoupon, err)
		}
	}

	// 7. Для авторизованного клиента подтверждаем существование аккаунта
	if req.UserID != nil {
		if _, err := uc.identityClient.GetUser(ctx, *req.UserID); err != nil {
			if errors.Is(err, identityClient.ErrUserNotFound) {
				uc.logger.Warn("CreateBooking: user id=%d not found", *req.UserID)
				return nil, ErrUserNotFound
			}
			uc.logger.Error("CreateBooking: failed to get user id=%d: %v", *req.UserID, err)
			return nil, fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
		}
	}

	// Переменные для хранения результата
	var (
		result *domain.Booking
		quote  pricing.Quote
	)

	// 8. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 8.1. Ищем купон с блокировкой строки (FOR UPDATE) и проверяем применимость.
		// На создании отказ купона фатален: клиент рассчитывает на скидку
		couponResult, err := uc.resolveCoupon(txCtx, couponCode, req.UserID, now)
		if err != nil {
			return err
		}

		// 8.2. Разрешаем скидки и считаем итоговую цену
		dctx := discount.Resolve(sel, couponResult)
		quote = pricing.ComputeTotal(sel, dctx)

		// 8.3. Получаем активные бронирования на дату с блокировкой (FOR UPDATE)
		bookings, err := uc.bookingRepo.GetWithFilter(txCtx, domain.BookingsFilter{
			StartDate: ptr.Ptr(req.Date),
			EndDate:   ptr.Ptr(req.Date),
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 8.4. Получаем заблокированные админом слоты на дату
		blocked, err := uc.blockedSlotRepo.GetByDate(txCtx, req.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get blocked slots: %v", err)
			return fmt.Errorf("%w: failed to get blocked slots: %v", ErrInternal, err)
		}

		// 8.5. Проверяем доступность слота
		conflict, warnings := availability.HasConflict(req.Date, req.StartTime, slotMinutes, bookings, blocked)
		for _, w := range warnings {
			uc.logger.Warn("CreateBooking: booking id=%d has unknown duration code %q, treated as blocking the rest of the day",
				w.BookingID, w.DurationCode)
		}
		if conflict {
			uc.logger.Warn("CreateBooking: slot %s %s is not available",
				req.Date.Format(domain.DateFormat), req.StartTime)
			return ErrSlotNotAvailable
		}

		// 8.6. Собираем бронирование со снапшотом выбора и расчета
		booking := &domain.Booking{
			Reference:       uuid.New(),
			UserID:          req.UserID,
			ServiceCode:     sel.ServiceCode,
			DurationCode:    sel.DurationCode,
			DurationPrice:   sel.DurationPrice,
			PackageCode:     sel.PackageCode,
			PackagePrice:    sel.PackagePrice,
			ComboSelected:   sel.ComboSelected,
			Participants:    sel.Participants,
			BookingDate:     req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: slotMinutes,
			CustomerName:    req.CustomerName,
			CustomerEmail:   req.CustomerEmail,
			CustomerPhone:   req.CustomerPhone,
			Notes:           req.Notes,
			WelcomeDiscount: dctx.WelcomeEligible,
			ModelRelease:    sel.ModelRelease,
			TotalPrice:      quote.Total,
			Status:          domain.StatusPending,
		}
		if sel.IsDeal() {
			booking.DealCode = ptr.Ptr(sel.DealCode)
		}
		if couponResult.Applied() {
			booking.CouponID = ptr.Ptr(couponResult.Coupon.ID)
		}

		// 8.7. Сохраняем бронирование
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		// 8.8. Погашаем одноразовый купон атомарно: проигрыш гонки за купон
		// откатывает и само бронирование
		if couponResult.Applied() && couponResult.Coupon.SingleUse {
			if err := uc.couponRepo.Redeem(txCtx, couponResult.Coupon.ID); err != nil {
				if errors.Is(err, couponRepo.ErrAlreadyRedeemed) {
					uc.logger.Warn("CreateBooking: coupon id=%d lost redeem race", couponResult.Coupon.ID)
					return ErrCouponAlreadyUsed
				}
				uc.logger.Error("CreateBooking: failed to redeem coupon id=%d: %v", couponResult.Coupon.ID, err)
				return fmt.Errorf("%w: failed to redeem coupon: %v", ErrInternal, err)
			}
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, reference=%s, total=%s",
		result.ID, result.Reference, result.TotalPrice.StringFixed(2))

	return toResponse(result, quote), nil
}

// resolveCoupon ищет купон по нормализованному коду и превращает отказ
// в типизированную ошибку. Пустой код - пустой результат без ошибки.
func (uc *UseCase) resolveCoupon(ctx context.Context, code string, userID *int64, now time.Time) (discount.CouponResult, error) {
	if code == "" {
		return discount.CouponResult{}, nil
	}

	coupon, err := uc.couponRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, couponRepo.ErrCouponNotFound) {
			return discount.CouponResult{}, ErrCouponNotFound
		}
		uc.logger.Error("CreateBooking: failed to get coupon: %v", err)
		return discount.CouponResult{}, fmt.Errorf("%w: failed to get coupon: %v", ErrInternal, err)
	}

	result := discount.ValidateCoupon(coupon, userID, now)
	if result.Rejection != "" {
		return discount.CouponResult{}, rejectionError(result.Rejection)
	}
	return result, nil
}

// rejectionError переводит причину отказа купона в sentinel-ошибку usecase
func rejectionError(reason discount.RejectionReason) error {
	switch reason {
	case discount.RejectionExpired:
		return ErrCouponExpired
	case discount.RejectionAlreadyUsed:
		return ErrCouponAlreadyUsed
	case discount.RejectionWrongUser:
		return ErrCouponWrongUser
	default:
		return ErrCouponNotFound
	}
}

func toResponse(b *domain.Booking, quote pricing.Quote) *Response {
	resp := &Response{
		ID:           b.ID,
		Reference:    b.Reference,
		UserID:       b.UserID,
		Status:       string(b.Status),
		Date:         b.BookingDate,
		StartTime:    b.StartTime,
		Minutes:      b.DurationMinutes,
		ServiceCode:  b.ServiceCode,
		DurationCode: b.DurationCode,
		PackageCode:  b.PackageCode,
		Combo:        b.ComboSelected,
		DealCode:     b.DealCode,
		TotalPrice:   b.TotalPrice,
		CreatedAt:    b.CreatedAt,
	}
	resp.LineItems = make([]BookingLineItem, 0, len(quote.LineItems))
	for _, item := range quote.LineItems {
		resp.LineItems = append(resp.LineItems, BookingLineItem{
			Code:   item.Code,
			Label:  item.Label,
			Amount: item.Amount,
		})
	}
	return resp
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
		Date:          req.Date,
		StartTime:     req.StartTime,
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
