package domain

import (
	"time"

	"github.com/m04kA/FSP-BookingService/pkg/types"
)

// BlockedSlot is an admin-created hold on the calendar.
// Time == nil blocks the entire date; a full-day block dominates any
// per-slot state for that date.
type BlockedSlot struct {
	ID        int64
	Date      time.Time
	Time      *types.TimeString
	Reason    *string
	CreatedAt time.Time
}

// IsFullDay returns true if the block covers the whole date
func (b *BlockedSlot) IsFullDay() bool {
	return b.Time == nil
}
