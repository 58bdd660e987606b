package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/FSP-BookingService/pkg/types"
)

// ParticipantCount who is in front of the camera.
// Counts are clamped to [0, MaxParticipantsPerKind] on every transition,
// so a selection can never carry a negative or absurd count.
type ParticipantCount struct {
	Adults   int
	Children int
	Babies   int
	Animals  int
}

// Total returns the total number of participants
func (p ParticipantCount) Total() int {
	return p.Adults + p.Children + p.Babies + p.Animals
}

// IsValid returns true if every count is within the allowed range
func (p ParticipantCount) IsValid() bool {
	for _, n := range []int{p.Adults, p.Children, p.Babies, p.Animals} {
		if n < 0 || n > MaxParticipantsPerKind {
			return false
		}
	}
	return true
}

func clampCount(n int) int {
	if n < 0 {
		return 0
	}
	if n > MaxParticipantsPerKind {
		return MaxParticipantsPerKind
	}
	return n
}

// Clamped returns a copy with every count forced into the allowed range
func (p ParticipantCount) Clamped() ParticipantCount {
	return ParticipantCount{
		Adults:   clampCount(p.Adults),
		Children: clampCount(p.Children),
		Babies:   clampCount(p.Babies),
		Animals:  clampCount(p.Animals),
	}
}

// BookingSelection is the resolved draft of the booking wizard.
// It is an immutable value: every step transition produces a new selection
// via a With* method instead of mutating in place, so any intermediate state
// is inspectable and replayable in tests.
//
// Price fields are snapshots taken from the catalog at normalization time.
// The pricing engine only reads them; it never looks up the catalog itself.
type BookingSelection struct {
	ServiceCode   string
	DurationCode  string
	DurationPrice decimal.Decimal
	PackageCode   string
	PackagePrice  decimal.Decimal

	ComboSelected bool
	ComboEligible bool
	ComboPrice    decimal.Decimal

	// Deal mode: fixed pre-bundled price, regular composition is skipped
	DealCode  string
	DealPrice decimal.Decimal

	Participants ParticipantCount

	Date      time.Time
	StartTime types.TimeString

	ModelRelease  bool
	CreateAccount bool
	CouponCode    string
}

// IsDeal returns true if the selection is a fixed-price deal
func (s BookingSelection) IsDeal() bool {
	return s.DealCode != ""
}

// HasPackage returns true if a real photo package is selected
func (s BookingSelection) HasPackage() bool {
	return s.PackageCode != "" && s.PackageCode != PackageNone
}

// WithPackage returns a copy with the package replaced.
// Switching to "no package" drops the model-release opt-in: the discount
// requires a package, and stale opt-ins must not survive the transition.
func (s BookingSelection) WithPackage(code string, price decimal.Decimal) BookingSelection {
	s.PackageCode = code
	s.PackagePrice = price
	if !s.HasPackage() {
		s.ModelRelease = false
	}
	return s
}

// WithDuration returns a copy with the duration replaced
func (s BookingSelection) WithDuration(code string, price decimal.Decimal) BookingSelection {
	s.DurationCode = code
	s.DurationPrice = price
	return s
}

// WithCombo returns a copy with the combo flag set
func (s BookingSelection) WithCombo(selected bool, price decimal.Decimal) BookingSelection {
	s.ComboSelected = selected
	s.ComboPrice = price
	return s
}

// WithModelRelease returns a copy with the model-release opt-in set.
// The opt-in only sticks when a package is selected.
func (s BookingSelection) WithModelRelease(optIn bool) BookingSelection {
	s.ModelRelease = optIn && s.HasPackage()
	return s
}

// WithParticipants returns a copy with clamped participant counts
func (s BookingSelection) WithParticipants(p ParticipantCount) BookingSelection {
	s.Participants = p.Clamped()
	return s
}

// WithCoupon returns a copy with the coupon code set
func (s BookingSelection) WithCoupon(code string) BookingSelection {
	s.CouponCode = code
	return s
}
