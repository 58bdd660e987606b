package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FSP-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/FSP-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/FSP-BookingService/internal/service/bookings/models"
	"github.com/m04kA/FSP-BookingService/pkg/ptr"
	"github.com/m04kA/FSP-BookingService/pkg/types"
)

// --- Фейки зависимостей ---

type fakeBookingRepo struct {
	byID map[int64]*domain.Booking

	cancelled     map[int64]domain.BookingStatus
	updatedStatus map[int64]domain.BookingStatus
	rescheduled   map[int64][2]string // date, time
	deleted       []int64
}

func newFakeBookingRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	f := &fakeBookingRepo{
		byID:          map[int64]*domain.Booking{},
		cancelled:     map[int64]domain.BookingStatus{},
		updatedStatus: map[int64]domain.BookingStatus{},
		rescheduled:   map[int64][2]string{},
	}
	for _, b := range bookings {
		f.byID[b.ID] = b
	}
	return f
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.byID[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeBookingRepo) GetByReference(_ context.Context, reference uuid.UUID) (*domain.Booking, error) {
	for _, b := range f.byID {
		if b.Reference == reference {
			return b, nil
		}
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (f *fakeBookingRepo) GetByUserID(_ context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, b := range f.byID {
		if b.UserID == nil || *b.UserID != userID {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (f *fakeBookingRepo) GetWithFilter(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, b := range f.byID {
		if !filter.IncludeInactive && !b.IsActive() {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	if _, ok := f.byID[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	f.updatedStatus[id] = status
	return nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id int64, status domain.BookingStatus, _ string) error {
	if _, ok := f.byID[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	f.cancelled[id] = status
	return nil
}

func (f *fakeBookingRepo) Reschedule(_ context.Context, id int64, date time.Time, startTime types.TimeString) error {
	if _, ok := f.byID[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	f.rescheduled[id] = [2]string{date.Format(domain.DateFormat), string(startTime)}
	return nil
}

func (f *fakeBookingRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	f.deleted = append(f.deleted, id)
	delete(f.byID, id)
	return nil
}

type fakeBlockedSlotRepo struct {
	blocked []*domain.BlockedSlot
}

func (f *fakeBlockedSlotRepo) GetByDate(_ context.Context, _ time.Time) ([]*domain.BlockedSlot, error) {
	return f.blocked, nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

var testDate = time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

func testBooking(id int64, userID *int64) *domain.Booking {
	return &domain.Booking{
		ID:              id,
		Reference:       uuid.New(),
		UserID:          userID,
		ServiceCode:     "portrait",
		DurationCode:    "1h",
		PackageCode:     "25",
		BookingDate:     testDate,
		StartTime:       "10:00",
		DurationMinutes: 60,
		CustomerName:    "Анна Шмидт",
		CustomerEmail:   "anna@example.com",
		Status:          domain.StatusConfirmed,
	}
}

func newService(repo *fakeBookingRepo, blocked *fakeBlockedSlotRepo) *Service {
	if blocked == nil {
		blocked = &fakeBlockedSlotRepo{}
	}
	return NewService(repo, blocked, &fakeTxManager{}, noopLogger{})
}

// --- Тесты ---

func TestGetByID_Owner(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(1, ptr.Ptr(int64(42))))
	svc := newService(repo, nil)

	resp, err := svc.GetByID(context.Background(), 1, ptr.Ptr(int64(42)), false)
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "portrait", resp.ServiceCode)
}

func TestGetByID_ForeignBookingDenied(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(1, ptr.Ptr(int64(42))))
	svc := newService(repo, nil)

	_, err := svc.GetByID(context.Background(), 1, ptr.Ptr(int64(7)), false)

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_GuestBookingDeniedForUser(t *testing.T) {
	// Гостевое бронирование не принадлежит никому: доступ только по reference
	repo := newFakeBookingRepo(testBooking(1, nil))
	svc := newService(repo, nil)

	_, err := svc.GetByID(context.Background(), 1, ptr.Ptr(int64(42)), false)

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_AdminSeesAll(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(1, ptr.Ptr(int64(42))))
	svc := newService(repo, nil)

	_, err := svc.GetByID(context.Background(), 1, nil, true)

	require.NoError(t, err)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newService(newFakeBookingRepo(), nil)

	_, err := svc.GetByID(context.Background(), 999, nil, true)

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetByReference(t *testing.T) {
	b := testBooking(1, nil)
	repo := newFakeBookingRepo(b)
	svc := newService(repo, nil)

	resp, err := svc.GetByReference(context.Background(), b.Reference)
	require.NoError(t, err)
	assert.Equal(t, b.Reference.String(), resp.Reference)

	_, err = svc.GetByReference(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancel_ByOwner(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(1, ptr.Ptr(int64(42))))
	svc := newService(repo, nil)

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		RequesterID:        ptr.Ptr(int64(42)),
		CancellationReason: "передумала",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCancelledByUser, repo.cancelled[1])
}

func TestCancel_ByAdmin(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(1, ptr.Ptr(int64(42))))
	svc := newService(repo, nil)

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		IsAdmin:            true,
		CancellationReason: "болезнь фотографа",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCancelledByAdmin, repo.cancelled[1])
}

func TestCancel_ForeignBookingDenied(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(1, ptr.Ptr(int64(42))))
	svc := newService(repo, nil)

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		RequesterID: ptr.Ptr(int64(7)),
	})

	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, repo.cancelled)
}

func TestCancel_CompletedBooking(t *testing.T) {
	b := testBooking(1, ptr.Ptr(int64(42)))
	b.Status = domain.StatusCompleted
	svc := newService(newFakeBookingRepo(b), nil)

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		RequesterID: ptr.Ptr(int64(42)),
	})

	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	b := testBooking(1, ptr.Ptr(int64(42)))
	b.Status = domain.StatusCancelledByUser
	svc := newService(newFakeBookingRepo(b), nil)

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{IsAdmin: true})

	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestUpdateStatus(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(1, nil))
	svc := newService(repo, nil)

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "completed"})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCompleted, repo.updatedStatus[1])
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(1, nil))
	svc := newService(repo, nil)

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "teleported"})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestReschedule_Success(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(1, nil))
	svc := newService(repo, nil)

	err := svc.Reschedule(context.Background(), 1, &models.RescheduleRequest{
		Date:      testDate.AddDate(0, 0, 1),
		StartTime: "14:00",
	})
	require.NoError(t, err)

	assert.Equal(t, [2]string{"2026-03-15", "14:00"}, repo.rescheduled[1])
}

func TestReschedule_ExcludesItselfFromConflictCheck(t *testing.T) {
	// Перенос на слот, занятый самим же бронированием, конфликтом не считается
	repo := newFakeBookingRepo(testBooking(1, nil))
	svc := newService(repo, nil)

	err := svc.Reschedule(context.Background(), 1, &models.RescheduleRequest{
		Date:      testDate,
		StartTime: "10:30",
	})

	require.NoError(t, err)
}

func TestReschedule_TargetSlotOccupied(t *testing.T) {
	other := testBooking(2, nil)
	other.StartTime = "14:00"
	repo := newFakeBookingRepo(testBooking(1, nil), other)
	svc := newService(repo, nil)

	err := svc.Reschedule(context.Background(), 1, &models.RescheduleRequest{
		Date:      testDate,
		StartTime: "14:30",
	})

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Empty(t, repo.rescheduled)
}

func TestReschedule_BlockedDay(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(1, nil))
	blocked := &fakeBlockedSlotRepo{blocked: []*domain.BlockedSlot{{ID: 1, Date: testDate.AddDate(0, 0, 1)}}}
	svc := newService(repo, blocked)

	err := svc.Reschedule(context.Background(), 1, &models.RescheduleRequest{
		Date:      testDate.AddDate(0, 0, 1),
		StartTime: "10:00",
	})

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestReschedule_InvalidTargetSlot(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(1, nil))
	svc := newService(repo, nil)

	tests := []struct {
		name  string
		start types.TimeString
	}{
		{name: "off grid", start: "14:10"},
		{name: "before working hours", start: "07:00"},
		{name: "does not fit", start: "19:30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Reschedule(context.Background(), 1, &models.RescheduleRequest{
				Date:      testDate,
				StartTime: tt.start,
			})
			assert.ErrorIs(t, err, ErrInvalidTimeSlot)
		})
	}
}

func TestReschedule_CancelledBooking(t *testing.T) {
	b := testBooking(1, nil)
	b.Status = domain.StatusCancelledByAdmin
	svc := newService(newFakeBookingRepo(b), nil)

	err := svc.Reschedule(context.Background(), 1, &models.RescheduleRequest{
		Date:      testDate,
		StartTime: "14:00",
	})

	assert.ErrorIs(t, err, ErrCannotReschedule)
}

func TestDelete(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(1, nil))
	svc := newService(repo, nil)

	require.NoError(t, svc.Delete(context.Background(), 1))
	assert.Equal(t, []int64{1}, repo.deleted)

	assert.ErrorIs(t, svc.Delete(context.Background(), 1), ErrBookingNotFound)
}

func TestGetUserBookings_StatusFilter(t *testing.T) {
	confirmed := testBooking(1, ptr.Ptr(int64(42)))
	completed := testBooking(2, ptr.Ptr(int64(42)))
	completed.Status = domain.StatusCompleted
	repo := newFakeBookingRepo(confirmed, completed)
	svc := newService(repo, nil)

	resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: 42,
		Status: ptr.Ptr("completed"),
	})
	require.NoError(t, err)

	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, int64(2), resp.Bookings[0].ID)
}

func TestGetUserBookings_InvalidStatus(t *testing.T) {
	svc := newService(newFakeBookingRepo(), nil)

	_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: 42,
		Status: ptr.Ptr("teleported"),
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}
