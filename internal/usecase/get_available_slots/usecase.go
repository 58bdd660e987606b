package get_available_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/FSP-BookingService/internal/availability"
	"github.com/m04kA/FSP-BookingService/internal/domain"
	"github.com/m04kA/FSP-BookingService/pkg/ptr"
	"github.com/m04kA/FSP-BookingService/pkg/types"
)

// UseCase use case получения свободных слотов на дату
type UseCase struct {
	bookingRepo     BookingRepository
	blockedSlotRepo BlockedSlotRepository
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, blockedSlotRepo BlockedSlotRepository, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo:     bookingRepo,
		blockedSlotRepo: blockedSlotRepo,
		logger:          logger,
	}
}

// Execute выполняет use case получения свободных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: date=%s", req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	var slotMinutes int
	if req.DurationCode != nil && *req.DurationCode != "" {
		minutes, ok := availability.DurationMinutes(*req.DurationCode)
		if !ok {
			uc.logger.Warn("GetAvailableSlots: unknown duration code %q", *req.DurationCode)
			return nil, fmt.Errorf("%w: %q", ErrUnknownDuration, *req.DurationCode)
		}
		slotMinutes = minutes
	}

	// 2. Получаем активные бронирования на дату
	bookings, err := uc.bookingRepo.GetWithFilter(ctx, domain.BookingsFilter{
		StartDate: ptr.Ptr(req.Date),
		EndDate:   ptr.Ptr(req.Date),
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 3. Получаем заблокированные админом слоты
	blocked, err := uc.blockedSlotRepo.GetByDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get blocked slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get blocked slots: %v", ErrInternal, err)
	}

	// 4. Считаем свободные слоты
	var slots []types.TimeString
	if slotMinutes > 0 {
		// Для известной длительности оставляем только времена начала,
		// в которые съемка умещается без пересечений
		slots = uc.fittingSlots(req.Date, slotMinutes, bookings, blocked)
	} else {
		free, warnings := availability.FreeSlots(req.Date, bookings, blocked)
		uc.logWarnings(warnings)
		slots = free
	}

	uc.logger.Info("GetAvailableSlots: date=%s, free=%d", req.Date.Format(domain.DateFormat), len(slots))

	return &Response{
		Date:  req.Date,
		Slots: slots,
	}, nil
}

// fittingSlots возвращает времена начала, в которые сессия длительности
// slotMinutes умещается целиком: без конфликтов и до конца рабочего дня
func (uc *UseCase) fittingSlots(date time.Time, slotMinutes int, bookings []*domain.Booking, blocked []*domain.BlockedSlot) []types.TimeString {
	dayEnd, _ := types.TimeString(domain.DayEndTime).Minutes()

	result := make([]types.TimeString, 0)
	for _, start := range availability.SlotUniverse() {
		startMin, err := start.Minutes()
		if err != nil {
			continue
		}
		if startMin+slotMinutes > dayEnd {
			break
		}
		conflict, warnings := availability.HasConflict(date, start, slotMinutes, bookings, blocked)
		uc.logWarnings(warnings)
		if !conflict {
			result = append(result, start)
		}
	}
	return result
}

func (uc *UseCase) logWarnings(warnings []availability.Warning) {
	for _, w := range warnings {
		uc.logger.Warn("GetAvailableSlots: booking id=%d has unknown duration code %q, treated as blocking the rest of the day",
			w.BookingID, w.DurationCode)
	}
}
