package manage_blocked_slots

import (
	"context"
	"time"

	"github.com/m04kA/FSP-BookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	CreateBlockedSlot(ctx context.Context, req *models.CreateBlockedSlotRequest) (*models.AdminBlockedSlotResponse, error)
	ListBlockedSlots(ctx context.Context, from, to time.Time) (*models.BlockedSlotListResponse, error)
	DeleteBlockedSlot(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
