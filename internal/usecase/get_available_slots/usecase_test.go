package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FSP-BookingService/internal/domain"
	"github.com/m04kA/FSP-BookingService/pkg/ptr"
	"github.com/m04kA/FSP-BookingService/pkg/types"
)

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) GetWithFilter(_ context.Context, _ domain.BookingsFilter) ([]*domain.Booking, error) {
	return f.bookings, nil
}

type fakeBlockedSlotRepo struct {
	blocked []*domain.BlockedSlot
}

func (f *fakeBlockedSlotRepo) GetByDate(_ context.Context, _ time.Time) ([]*domain.BlockedSlot, error) {
	return f.blocked, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

var testDate = time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

func newUseCase(bookings []*domain.Booking, blocked []*domain.BlockedSlot) *UseCase {
	return NewUseCase(&fakeBookingRepo{bookings: bookings}, &fakeBlockedSlotRepo{blocked: blocked}, noopLogger{})
}

func TestExecute_EmptyDay(t *testing.T) {
	uc := newUseCase(nil, nil)

	resp, err := uc.Execute(context.Background(), &Request{Date: testDate})
	require.NoError(t, err)

	assert.Len(t, resp.Slots, 24)
	assert.Equal(t, types.TimeString("08:00"), resp.Slots[0])
}

func TestExecute_MissingDate(t *testing.T) {
	uc := newUseCase(nil, nil)

	_, err := uc.Execute(context.Background(), &Request{})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_UnknownDuration(t *testing.T) {
	uc := newUseCase(nil, nil)

	_, err := uc.Execute(context.Background(), &Request{
		Date:         testDate,
		DurationCode: ptr.Ptr("3h"),
	})

	assert.ErrorIs(t, err, ErrUnknownDuration)
}

func TestExecute_BookingOccupiesSlots(t *testing.T) {
	bookings := []*domain.Booking{{
		ID:              1,
		BookingDate:     testDate,
		StartTime:       "10:00",
		DurationCode:    "1h",
		DurationMinutes: 60,
		Status:          domain.StatusConfirmed,
	}}
	uc := newUseCase(bookings, nil)

	resp, err := uc.Execute(context.Background(), &Request{Date: testDate})
	require.NoError(t, err)

	assert.Len(t, resp.Slots, 22)
	assert.NotContains(t, resp.Slots, types.TimeString("10:00"))
	assert.NotContains(t, resp.Slots, types.TimeString("10:30"))
	assert.Contains(t, resp.Slots, types.TimeString("11:00"))
}

func TestExecute_FullDayBlock(t *testing.T) {
	blocked := []*domain.BlockedSlot{{ID: 1, Date: testDate}}
	uc := newUseCase(nil, blocked)

	resp, err := uc.Execute(context.Background(), &Request{Date: testDate})
	require.NoError(t, err)

	assert.Empty(t, resp.Slots)
}

func TestExecute_WithDurationFiltersFittingStarts(t *testing.T) {
	// Бронирование 10:00-11:00: двухчасовая съемка не начнется в 08:30-09:30
	bookings := []*domain.Booking{{
		ID:              1,
		BookingDate:     testDate,
		StartTime:       "10:00",
		DurationCode:    "1h",
		DurationMinutes: 60,
		Status:          domain.StatusConfirmed,
	}}
	uc := newUseCase(bookings, nil)

	resp, err := uc.Execute(context.Background(), &Request{
		Date:         testDate,
		DurationCode: ptr.Ptr("2h"),
	})
	require.NoError(t, err)

	assert.Contains(t, resp.Slots, types.TimeString("08:00"))
	assert.NotContains(t, resp.Slots, types.TimeString("08:30"))
	assert.NotContains(t, resp.Slots, types.TimeString("09:30"))
	assert.Contains(t, resp.Slots, types.TimeString("11:00"))

	// Последнее подходящее начало двухчасовой съемки - 18:00
	assert.Contains(t, resp.Slots, types.TimeString("18:00"))
	assert.NotContains(t, resp.Slots, types.TimeString("18:30"))
	assert.NotContains(t, resp.Slots, types.TimeString("19:30"))
}

func TestExecute_LongSessionEndOfDayCutoff(t *testing.T) {
	uc := newUseCase(nil, nil)

	resp, err := uc.Execute(context.Background(), &Request{
		Date:         testDate,
		DurationCode: ptr.Ptr("8h"),
	})
	require.NoError(t, err)

	// Восьмичасовая съемка умещается только при старте 08:00-12:00
	require.NotEmpty(t, resp.Slots)
	assert.Equal(t, types.TimeString("08:00"), resp.Slots[0])
	assert.Equal(t, types.TimeString("12:00"), resp.Slots[len(resp.Slots)-1])
	assert.Len(t, resp.Slots, 9)
}
