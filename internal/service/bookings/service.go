package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/FSP-BookingService/internal/availability"
	"github.com/m04kA/FSP-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/FSP-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/FSP-BookingService/internal/service/bookings/models"
	"github.com/m04kA/FSP-BookingService/pkg/ptr"
	"github.com/m04kA/FSP-BookingService/pkg/types"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo     BookingRepository
	blockedSlotRepo BlockedSlotRepository
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	blockedSlotRepo BlockedSlotRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:     bookingRepo,
		blockedSlotRepo: blockedSlotRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// GetByID получает бронирование по внутреннему ID
// Пользователь видит только свое бронирование, администратор - любое
func (s *Service) GetByID(ctx context.Context, id int64, requesterID *int64, isAdmin bool) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.getBooking(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}

	if !canRead(booking, requesterID, isAdmin) {
		s.logger.Warn("GetByID: access denied to booking id=%d", id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// GetByReference получает бронирование по публичной ссылке.
// Ссылка - неугадываемый UUID, поэтому доступна и гостевым бронированиям
// без аккаунта (подтверждение из письма).
func (s *Service) GetByReference(ctx context.Context, reference uuid.UUID) (*models.BookingResponse, error) {
	s.logger.Info("GetByReference: fetching booking reference=%s", reference)

	booking, err := s.bookingRepo.GetByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByReference: booking reference=%s not found", reference)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByReference: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetByReference - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// List получает бронирования с гибкой фильтрацией (админка)
//
// Примеры использования:
// - Все активные бронирования: List(ctx, &ListBookingsRequest{})
// - Бронирования на дату: StartDate и EndDate указывают на одну дату
// - Бронирования клиента: указать UserID
// - Включая отмененные: IncludeInactive = true
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("List: fetching bookings, userID=%v, status=%v, includeInactive=%v",
		req.UserID, req.Status, req.IncludeInactive)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование
// Пользователь может отменить только свое бронирование (cancelled_by_user)
// Администратор может отменить любое бронирование (cancelled_by_admin)
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d, admin=%v", bookingID, req.IsAdmin)

	booking, err := s.getBooking(ctx, bookingID, "Cancel")
	if err != nil {
		return err
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	// Определяем статус отмены в зависимости от инициатора
	var cancelStatus domain.BookingStatus
	switch {
	case req.IsAdmin:
		cancelStatus = domain.StatusCancelledByAdmin
	case isOwner(booking, req.RequesterID):
		cancelStatus = domain.StatusCancelledByUser
	default:
		s.logger.Warn("Cancel: access denied to cancel booking id=%d", bookingID)
		return ErrAccessDenied
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID, cancelStatus, req.CancellationReason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found during cancellation", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d with status=%s", bookingID, cancelStatus)
	return nil
}

// UpdateStatus обновляет статус бронирования (админка)
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s", bookingID, req.Status)

	if _, err := s.getBooking(ctx, bookingID, "UpdateStatus"); err != nil {
		return err
	}

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, newStatus); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%d not found during update", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated booking id=%d to status=%s", bookingID, newStatus)
	return nil
}

// Reschedule переносит бронирование на другой слот (админка).
// Выполняется в сериализуемой транзакции: проверка занятости целевого слота
// и сам перенос атомарны, та же защита от гонки, что и при создании.
func (s *Service) Reschedule(ctx context.Context, bookingID int64, req *models.RescheduleRequest) error {
	s.logger.Info("Reschedule: moving booking id=%d to %s %s",
		bookingID, req.Date.Format(domain.DateFormat), req.StartTime)

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.getBooking(txCtx, bookingID, "Reschedule")
		if err != nil {
			return err
		}

		if !booking.CanBeRescheduled() {
			s.logger.Warn("Reschedule: booking id=%d cannot be rescheduled, status=%s", bookingID, booking.Status)
			return ErrCannotReschedule
		}

		if err := validateSlotWindow(req.StartTime, booking.DurationMinutes); err != nil {
			s.logger.Warn("Reschedule: target slot invalid for booking id=%d: %v", bookingID, err)
			return err
		}

		// Активные бронирования на целевую дату с блокировкой (FOR UPDATE),
		// само переносимое бронирование исключаем из проверки
		others, err := s.bookingRepo.GetWithFilter(txCtx, domain.BookingsFilter{
			StartDate: ptr.Ptr(req.Date),
			EndDate:   ptr.Ptr(req.Date),
		})
		if err != nil {
			s.logger.Error("Reschedule: failed to get bookings: %v", err)
			return fmt.Errorf("%w: Reschedule - repository error: %v", ErrInternal, err)
		}
		filtered := others[:0]
		for _, b := range others {
			if b.ID != bookingID {
				filtered = append(filtered, b)
			}
		}

		blocked, err := s.blockedSlotRepo.GetByDate(txCtx, req.Date)
		if err != nil {
			s.logger.Error("Reschedule: failed to get blocked slots: %v", err)
			return fmt.Errorf("%w: Reschedule - repository error: %v", ErrInternal, err)
		}

		conflict, warnings := availability.HasConflict(req.Date, req.StartTime, booking.DurationMinutes, filtered, blocked)
		for _, w := range warnings {
			s.logger.Warn("Reschedule: booking id=%d has unknown duration code %q, treated as blocking the rest of the day",
				w.BookingID, w.DurationCode)
		}
		if conflict {
			s.logger.Warn("Reschedule: target slot %s %s is not available",
				req.Date.Format(domain.DateFormat), req.StartTime)
			return ErrSlotNotAvailable
		}

		if err := s.bookingRepo.Reschedule(txCtx, bookingID, req.Date, req.StartTime); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			s.logger.Error("Reschedule: repository error for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: Reschedule - repository error: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Reschedule: successfully moved booking id=%d", bookingID)
	return nil
}

// Delete безвозвратно удаляет бронирование (админка, GDPR-запросы клиентов)
func (s *Service) Delete(ctx context.Context, bookingID int64) error {
	s.logger.Info("Delete: deleting booking id=%d", bookingID)

	if err := s.bookingRepo.Delete(ctx, bookingID); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Delete: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Delete: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted booking id=%d", bookingID)
	return nil
}

// Вспомогательные методы

func (s *Service) getBooking(ctx context.Context, id int64, op string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

// canRead проверяет, что инициатор имеет доступ к бронированию
func canRead(booking *domain.Booking, requesterID *int64, isAdmin bool) bool {
	if isAdmin {
		return true
	}
	return isOwner(booking, requesterID)
}

func isOwner(booking *domain.Booking, requesterID *int64) bool {
	return booking.UserID != nil && requesterID != nil && *booking.UserID == *requesterID
}

// validateSlotWindow проверяет попадание целевого времени в 30-минутную
// сетку рабочего дня с учетом длительности съемки
func validateSlotWindow(start types.TimeString, minutes int) error {
	startMin, err := start.Minutes()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimeSlot, err)
	}

	dayStart, _ := types.TimeString(domain.DayStartTime).Minutes()
	dayEnd, _ := types.TimeString(domain.DayEndTime).Minutes()

	if startMin < dayStart || startMin >= dayEnd || startMin%domain.SlotMinutes != 0 {
		return fmt.Errorf("%w: %s", ErrInvalidTimeSlot, start)
	}
	if startMin+minutes > dayEnd {
		return fmt.Errorf("%w: session does not fit into the working day", ErrInvalidTimeSlot)
	}
	return nil
}
