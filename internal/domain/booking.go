package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/FSP-BookingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending          BookingStatus = "pending"
	StatusConfirmed        BookingStatus = "confirmed"
	StatusCompleted        BookingStatus = "completed"
	StatusCancelledByUser  BookingStatus = "cancelled_by_user"
	StatusCancelledByAdmin BookingStatus = "cancelled_by_admin"
)

// Booking represents a confirmed photo session booking.
// It is an immutable snapshot of the customer's selection plus the
// server-computed total price. A client-supplied price estimate is never
// stored - TotalPrice is always recomputed by the pricing engine.
type Booking struct {
	ID        int64
	Reference uuid.UUID // public reference, safe to expose to customers
	UserID    *int64    // nil for guest bookings

	// Selection snapshot
	ServiceCode   string
	DurationCode  string
	DurationPrice decimal.Decimal
	PackageCode   string
	PackagePrice  decimal.Decimal
	ComboSelected bool
	DealCode      *string
	Participants  ParticipantCount

	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int

	// Customer contact (denormalized, the identity platform owns the profile)
	CustomerName  string
	CustomerEmail string
	CustomerPhone *string
	Notes         *string

	// Discount snapshot
	CouponID        *int64
	WelcomeDiscount bool
	ModelRelease    bool

	// Authoritative server-computed total, fixed-point decimal
	TotalPrice decimal.Decimal

	Status BookingStatus

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies its slot
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelledByUser && b.Status != StatusCancelledByAdmin
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeRescheduled returns true if the booking can be moved to another slot
func (b *Booking) CanBeRescheduled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelledByUser || b.Status == StatusCancelledByAdmin
}

// BookingsFilter фильтр для выборки бронирований (админка и расчет занятости)
type BookingsFilter struct {
	UserID          *int64         // Фильтр по пользователю (опционально)
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отмененные бронирования
}
