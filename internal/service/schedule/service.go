package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/FSP-BookingService/internal/domain"
	blockedSlotRepo "github.com/m04kA/FSP-BookingService/internal/infra/storage/blockedslot"
	"github.com/m04kA/FSP-BookingService/internal/service/schedule/models"
	"github.com/m04kA/FSP-BookingService/pkg/ptr"
	"github.com/m04kA/FSP-BookingService/pkg/types"
)

// maxAvailabilityRangeDays ограничение на ширину запрашиваемого периода
const maxAvailabilityRangeDays = 92

// Service сервис расписания: публичная занятость и блокировки слотов
type Service struct {
	bookingRepo     BookingRepository
	blockedSlotRepo BlockedSlotRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(bookingRepo BookingRepository, blockedSlotRepo BlockedSlotRepository, logger Logger) *Service {
	return &Service{
		bookingRepo:     bookingRepo,
		blockedSlotRepo: blockedSlotRepo,
		logger:          logger,
	}
}

// GetAvailability возвращает занятость календаря за период.
// Ответ полностью анонимен: публичная страница календаря не должна
// раскрывать ни клиентов, ни услуги, ни причины блокировок.
func (s *Service) GetAvailability(ctx context.Context, req *models.GetAvailabilityRequest) (*models.AvailabilityResponse, error) {
	s.logger.Info("GetAvailability: period %s to %s",
		req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))

	if req.From.IsZero() || req.To.IsZero() {
		return nil, fmt.Errorf("%w: from and to are required", ErrInvalidInput)
	}
	if req.To.Before(req.From) {
		return nil, fmt.Errorf("%w: to is before from", ErrInvalidTimeRange)
	}
	if req.To.Sub(req.From).Hours() > 24*maxAvailabilityRangeDays {
		return nil, fmt.Errorf("%w: period must not exceed %d days", ErrInvalidTimeRange, maxAvailabilityRangeDays)
	}

	bookings, err := s.bookingRepo.GetWithFilter(ctx, domain.BookingsFilter{
		StartDate: ptr.Ptr(req.From),
		EndDate:   ptr.Ptr(req.To),
	})
	if err != nil {
		s.logger.Error("GetAvailability: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: GetAvailability - repository error: %v", ErrInternal, err)
	}

	blocked, err := s.blockedSlotRepo.GetByDateRange(ctx, req.From, req.To)
	if err != nil {
		s.logger.Error("GetAvailability: failed to get blocked slots: %v", err)
		return nil, fmt.Errorf("%w: GetAvailability - repository error: %v", ErrInternal, err)
	}

	resp := &models.AvailabilityResponse{
		Busy:    make([]models.BusySlotResponse, 0, len(bookings)),
		Blocked: make([]models.BlockedSlotResponse, 0, len(blocked)),
	}
	for _, b := range bookings {
		resp.Busy = append(resp.Busy, models.BusySlotResponse{
			Date:            b.BookingDate.Format(domain.DateFormat),
			Time:            b.StartTime.String(),
			DurationMinutes: b.DurationMinutes,
		})
	}
	for _, slot := range blocked {
		entry := models.BlockedSlotResponse{
			Date: slot.Date.Format(domain.DateFormat),
		}
		if slot.Time != nil {
			t := slot.Time.String()
			entry.Time = &t
		}
		resp.Blocked = append(resp.Blocked, entry)
	}

	s.logger.Info("GetAvailability: %d busy, %d blocked", len(resp.Busy), len(resp.Blocked))
	return resp, nil
}

// CreateBlockedSlot блокирует слот или весь день (админка)
func (s *Service) CreateBlockedSlot(ctx context.Context, req *models.CreateBlockedSlotRequest) (*models.AdminBlockedSlotResponse, error) {
	s.logger.Info("CreateBlockedSlot: date=%s, time=%v", req.Date.Format(domain.DateFormat), req.Time)

	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	slot := &domain.BlockedSlot{
		Date:   req.Date,
		Reason: req.Reason,
	}
	if req.Time != nil && *req.Time != "" {
		t, err := types.NewTimeStringFromString(*req.Time)
		if err != nil {
			s.logger.Warn("CreateBlockedSlot: invalid time %q: %v", *req.Time, err)
			return nil, fmt.Errorf("%w: invalid time: %v", ErrInvalidInput, err)
		}
		slot.Time = &t
	}

	created, err := s.blockedSlotRepo.Create(ctx, slot)
	if err != nil {
		s.logger.Error("CreateBlockedSlot: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateBlockedSlot - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateBlockedSlot: successfully created blocked slot id=%d", created.ID)
	return models.FromDomainBlockedSlot(created), nil
}

// ListBlockedSlots возвращает блокировки за период (админка)
func (s *Service) ListBlockedSlots(ctx context.Context, from, to time.Time) (*models.BlockedSlotListResponse, error) {
	if from.IsZero() || to.IsZero() {
		return nil, fmt.Errorf("%w: from and to are required", ErrInvalidInput)
	}
	if to.Before(from) {
		return nil, fmt.Errorf("%w: to is before from", ErrInvalidTimeRange)
	}

	slots, err := s.blockedSlotRepo.GetByDateRange(ctx, from, to)
	if err != nil {
		s.logger.Error("ListBlockedSlots: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListBlockedSlots - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListBlockedSlots: fetched %d blocked slots", len(slots))
	return models.FromDomainBlockedSlotList(slots), nil
}

// DeleteBlockedSlot снимает блокировку (админка)
func (s *Service) DeleteBlockedSlot(ctx context.Context, id int64) error {
	s.logger.Info("DeleteBlockedSlot: deleting blocked slot id=%d", id)

	if err := s.blockedSlotRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, blockedSlotRepo.ErrBlockedSlotNotFound) {
			s.logger.Warn("DeleteBlockedSlot: blocked slot id=%d not found", id)
			return ErrBlockedSlotNotFound
		}
		s.logger.Error("DeleteBlockedSlot: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteBlockedSlot - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteBlockedSlot: successfully deleted blocked slot id=%d", id)
	return nil
}
