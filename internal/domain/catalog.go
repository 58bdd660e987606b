package domain

import "github.com/shopspring/decimal"

// DurationOption is a bookable time block with a flat price
type DurationOption struct {
	Code    string
	Label   string
	Minutes int
	Price   decimal.Decimal
}

// PackageOption is a delivered-images tier with a flat price.
// The "none" package has price zero and means time-only shooting.
type PackageOption struct {
	Code  string
	Label string
	Price decimal.Decimal
}

// ComboOffer is a bundled secondary session (e.g. maternity + newborn) sold
// at a combined add-on price. Selecting it forces the full photo package.
type ComboOffer struct {
	Code  string
	Label string
	Price decimal.Decimal
}

// Deal is a fixed-price special offer. Deal bookings skip the regular
// duration/package price composition entirely.
type Deal struct {
	Code         string
	Label        string
	ServiceCode  string
	DurationCode string
	Price        decimal.Decimal
}

// ServiceCatalogEntry describes one photography service and its restrictions.
// Behavior differences between services are expressed as capability flags
// looked up once from the catalog, never as service-name comparisons in
// pricing or discount code.
type ServiceCatalogEntry struct {
	Code      string
	Name      string
	Durations []DurationOption
	Packages  []PackageOption

	// AllowsNoPackage and RequiresFullPackage are mutually exclusive
	AllowsNoPackage     bool
	RequiresFullPackage bool

	Combo *ComboOffer // nil if the service has no combo add-on
}

// IsComboEligible returns true if the service offers a combo add-on
func (e *ServiceCatalogEntry) IsComboEligible() bool {
	return e.Combo != nil
}

// DurationByCode returns the duration option with the given code
func (e *ServiceCatalogEntry) DurationByCode(code string) (DurationOption, bool) {
	for _, d := range e.Durations {
		if d.Code == code {
			return d, true
		}
	}
	return DurationOption{}, false
}

// PackageByCode returns the package option with the given code
func (e *ServiceCatalogEntry) PackageByCode(code string) (PackageOption, bool) {
	for _, p := range e.Packages {
		if p.Code == code {
			return p, true
		}
	}
	return PackageOption{}, false
}

// FullPackage returns the highest package tier of the service
func (e *ServiceCatalogEntry) FullPackage() (PackageOption, bool) {
	return e.PackageByCode(PackageAll)
}
