package get_booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/FSP-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	GetByID(ctx context.Context, id int64, requesterID *int64, isAdmin bool) (*models.BookingResponse, error)
	GetByReference(ctx context.Context, reference uuid.UUID) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
