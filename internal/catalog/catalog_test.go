package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FSP-BookingService/internal/domain"
)

func TestDefault(t *testing.T) {
	c := Default()

	assert.Len(t, c.Services(), 8)
	assert.Len(t, c.Deals(), 2)
}

func TestNew_ValidatesInvariants(t *testing.T) {
	durations := []domain.DurationOption{
		{Code: "1h", Label: "1 час", Minutes: 60, Price: decimal.RequireFromString("99.99")},
	}

	tests := []struct {
		name    string
		entries []*domain.ServiceCatalogEntry
		deals   []*domain.Deal
	}{
		{
			name:    "empty service code",
			entries: []*domain.ServiceCatalogEntry{{Durations: durations}},
		},
		{
			name: "duplicate service code",
			entries: []*domain.ServiceCatalogEntry{
				{Code: "a", Durations: durations},
				{Code: "a", Durations: durations},
			},
		},
		{
			name:    "no durations",
			entries: []*domain.ServiceCatalogEntry{{Code: "a"}},
		},
		{
			name: "conflicting package flags",
			entries: []*domain.ServiceCatalogEntry{
				{Code: "a", Durations: durations, RequiresFullPackage: true, AllowsNoPackage: true},
			},
		},
		{
			name: "full package required without all tier",
			entries: []*domain.ServiceCatalogEntry{
				{Code: "a", Durations: durations, RequiresFullPackage: true},
			},
		},
		{
			name:    "deal references unknown service",
			entries: []*domain.ServiceCatalogEntry{{Code: "a", Durations: durations}},
			deals:   []*domain.Deal{{Code: "d", ServiceCode: "nope", DurationCode: "1h"}},
		},
		{
			name:    "deal references unknown duration",
			entries: []*domain.ServiceCatalogEntry{{Code: "a", Durations: durations}},
			deals:   []*domain.Deal{{Code: "d", ServiceCode: "a", DurationCode: "8h"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.entries, tt.deals)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidCatalog)
		})
	}
}

func TestCatalog_PackagesForFullPackageService(t *testing.T) {
	c := Default()

	packages, err := c.PackagesFor("wedding")
	require.NoError(t, err)

	// Шаг выбора пакета пропускается: доступен только максимальный tier
	require.Len(t, packages, 1)
	assert.Equal(t, domain.PackageAll, packages[0].Code)
}

func TestBuildSelection_Basic(t *testing.T) {
	c := Default()

	sel, err := c.BuildSelection(RawSelection{
		ServiceCode:  "portrait",
		DurationCode: "1h",
		PackageCode:  "25",
		Adults:       2,
	})
	require.NoError(t, err)

	assert.Equal(t, "portrait", sel.ServiceCode)
	assert.Equal(t, "1h", sel.DurationCode)
	assert.True(t, sel.DurationPrice.Equal(decimal.RequireFromString("99.99")))
	assert.Equal(t, "25", sel.PackageCode)
	assert.True(t, sel.PackagePrice.Equal(decimal.RequireFromString("249.99")))
	assert.Equal(t, 2, sel.Participants.Adults)
	assert.False(t, sel.IsDeal())
}

func TestBuildSelection_UnknownService(t *testing.T) {
	c := Default()

	_, err := c.BuildSelection(RawSelection{ServiceCode: "astro", DurationCode: "1h"})

	assert.ErrorIs(t, err, ErrUnknownService)
}

func TestBuildSelection_DurationNotAvailableForService(t *testing.T) {
	c := Default()

	// Репортажные услуги бронируются только длинными блоками
	_, err := c.BuildSelection(RawSelection{ServiceCode: "wedding", DurationCode: "30min"})

	assert.ErrorIs(t, err, ErrUnknownDuration)
}

func TestBuildSelection_NoPackageAllowed(t *testing.T) {
	c := Default()

	sel, err := c.BuildSelection(RawSelection{
		ServiceCode:  "portrait",
		DurationCode: "1h",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.PackageNone, sel.PackageCode)
	assert.False(t, sel.HasPackage())
}

func TestBuildSelection_PackageRequired(t *testing.T) {
	c := Default()

	// У съемки новорожденных фотографии обязательны
	_, err := c.BuildSelection(RawSelection{
		ServiceCode:  "newborn",
		DurationCode: "1h",
	})

	assert.ErrorIs(t, err, ErrPackageRequired)
}

func TestBuildSelection_FullPackageForced(t *testing.T) {
	c := Default()

	// Выбор клиента игнорируется: свадьба всегда с максимальным пакетом
	sel, err := c.BuildSelection(RawSelection{
		ServiceCode:  "wedding",
		DurationCode: "8h",
		PackageCode:  "10",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.PackageAll, sel.PackageCode)
}

func TestBuildSelection_ComboForcesFullPackage(t *testing.T) {
	c := Default()

	sel, err := c.BuildSelection(RawSelection{
		ServiceCode:  "babybauch",
		DurationCode: "1h",
		PackageCode:  "10",
		Combo:        true,
	})
	require.NoError(t, err)

	assert.True(t, sel.ComboSelected)
	assert.Equal(t, domain.PackageAll, sel.PackageCode)
	assert.True(t, sel.ComboPrice.Equal(decimal.RequireFromString("249.99")))
}

func TestBuildSelection_ComboNotEligible(t *testing.T) {
	c := Default()

	_, err := c.BuildSelection(RawSelection{
		ServiceCode:  "portrait",
		DurationCode: "1h",
		Combo:        true,
	})

	assert.ErrorIs(t, err, ErrComboNotEligible)
}

func TestBuildSelection_ModelReleaseDroppedWithoutPackage(t *testing.T) {
	c := Default()

	sel, err := c.BuildSelection(RawSelection{
		ServiceCode:  "portrait",
		DurationCode: "1h",
		ModelRelease: true,
	})
	require.NoError(t, err)

	assert.False(t, sel.ModelRelease)
}

func TestBuildSelection_InvalidParticipants(t *testing.T) {
	c := Default()

	_, err := c.BuildSelection(RawSelection{
		ServiceCode:  "portrait",
		DurationCode: "1h",
		Adults:       domain.MaxParticipantsPerKind + 1,
	})

	assert.ErrorIs(t, err, ErrInvalidParticipants)
}

func TestBuildSelection_Deal(t *testing.T) {
	c := Default()

	sel, err := c.BuildSelection(RawSelection{
		DealCode: "winter-mini",
		Adults:   1,
	})
	require.NoError(t, err)

	assert.True(t, sel.IsDeal())
	assert.Equal(t, "mini", sel.ServiceCode)
	assert.Equal(t, "30min", sel.DurationCode)
	assert.True(t, sel.DealPrice.Equal(decimal.RequireFromString("79.99")))
	assert.False(t, sel.HasPackage())
}

func TestBuildSelection_UnknownDeal(t *testing.T) {
	c := Default()

	_, err := c.BuildSelection(RawSelection{DealCode: "nope"})

	assert.ErrorIs(t, err, ErrUnknownDeal)
}

func TestSlotMinutesFor(t *testing.T) {
	c := Default()

	sel, err := c.BuildSelection(RawSelection{ServiceCode: "portrait", DurationCode: "90min"})
	require.NoError(t, err)

	minutes, err := c.SlotMinutesFor(sel)
	require.NoError(t, err)
	assert.Equal(t, 90, minutes)
}

func TestSlotMinutesFor_Deal(t *testing.T) {
	c := Default()

	sel, err := c.BuildSelection(RawSelection{DealCode: "family-sunday"})
	require.NoError(t, err)

	minutes, err := c.SlotMinutesFor(sel)
	require.NoError(t, err)
	assert.Equal(t, 60, minutes)
}
