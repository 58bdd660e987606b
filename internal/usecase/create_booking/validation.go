package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/FSP-BookingService/internal/domain"
	"github.com/m04kA/FSP-BookingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID != nil && *req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if strings.TrimSpace(req.CustomerName) == "" {
		return fmt.Errorf("%w: customerName is required", ErrInvalidInput)
	}

	email := strings.TrimSpace(req.CustomerEmail)
	if email == "" {
		return fmt.Errorf("%w: customerEmail is required", ErrInvalidInput)
	}
	if !strings.Contains(email, "@") || strings.HasPrefix(email, "@") || strings.HasSuffix(email, "@") {
		return fmt.Errorf("%w: customerEmail is not a valid email", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Проверяем, что время начала указано
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	// Валидируем формат времени
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	return nil
}

// validateDate проверяет, что дата съемки не в прошлом
func validateDate(bookingDate time.Time, now time.Time) error {
	dateOnly := time.Date(bookingDate.Year(), bookingDate.Month(), bookingDate.Day(), 0, 0, 0, 0, bookingDate.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if dateOnly.Before(nowOnly) {
		return ErrInvalidDate
	}
	return nil
}

// validateSlotTime проверяет, что время начала попадает в 30-минутную сетку
// рабочего дня и что съемка целиком умещается до конца дня
func validateSlotTime(start types.TimeString, slotMinutes int) error {
	startMin, err := start.Minutes()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimeSlot, err)
	}

	dayStart, _ := types.TimeString(domain.DayStartTime).Minutes()
	dayEnd, _ := types.TimeString(domain.DayEndTime).Minutes()

	if startMin < dayStart || startMin >= dayEnd {
		return fmt.Errorf("%w: start time %s is outside working hours %s-%s",
			ErrInvalidTimeSlot, start, domain.DayStartTime, domain.DayEndTime)
	}

	if startMin%domain.SlotMinutes != 0 {
		return fmt.Errorf("%w: start time %s is not aligned to the %d-minute grid",
			ErrInvalidTimeSlot, start, domain.SlotMinutes)
	}

	if startMin+slotMinutes > dayEnd {
		return fmt.Errorf("%w: session of %d minutes starting at %s does not fit into the working day",
			ErrInvalidTimeSlot, slotMinutes, start)
	}

	return nil
}
