package domain

// Slot grid constants. The booking day is a fixed window split into
// 30-minute slots; every start time on the grid is a potential slot.
const (
	SlotMinutes  = 30
	DayStartTime = "08:00"
	DayEndTime   = "20:00"
)

// Business validation constants
const (
	MaxParticipantsPerKind      = 20
	MaxNotesLength              = 500
	MaxNameLength               = 120
	MaxCancellationReasonLength = 500

	// Купон: ровно 16 алфавитно-цифровых символов, отображается группами 4x4
	CouponCodeLength = 16
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Well-known catalog codes the pricing rules refer to
const (
	PackageNone = "none" // "без пакета" - только время съемки
	PackageAll  = "all"  // максимальный пакет, его принудительно выбирают combo и full-package услуги
)

// InactiveStatuses список статусов, не занимающих слот
// Используется при фильтрации для подсчета занятости
var InactiveStatuses = []BookingStatus{
	StatusCancelledByUser,
	StatusCancelledByAdmin,
}

// ActiveStatuses список статусов активных бронирований
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}
