package catalog

import (
	"fmt"
	"time"

	"github.com/m04kA/FSP-BookingService/internal/domain"
	"github.com/m04kA/FSP-BookingService/pkg/types"
)

// RawSelection сырые поля выбора, как они приходят от клиента.
// Цена клиента сюда не входит принципиально - сервер пересчитывает сам.
type RawSelection struct {
	ServiceCode  string
	DurationCode string
	PackageCode  string
	Combo        bool
	DealCode     string

	Adults   int
	Children int
	Babies   int
	Animals  int

	Date      time.Time
	StartTime types.TimeString

	ModelRelease  bool
	CreateAccount bool
	CouponCode    string
}

// BuildSelection валидирует сырой выбор по каталогу и собирает
// нормализованный domain.BookingSelection со снапшотами цен.
//
// Принудительные правила применяются здесь, а не внутри pricing, чтобы
// итоговый выбор оставался аудируемым:
//   - услуга с RequiresFullPackage получает максимальный пакет
//   - combo принудительно переключает пакет на максимальный tier
//   - опция model-release сбрасывается, если пакет не выбран
func (c *Catalog) BuildSelection(raw RawSelection) (domain.BookingSelection, error) {
	if raw.DealCode != "" {
		return c.buildDealSelection(raw)
	}

	entry, err := c.Service(raw.ServiceCode)
	if err != nil {
		return domain.BookingSelection{}, err
	}

	duration, ok := entry.DurationByCode(raw.DurationCode)
	if !ok {
		return domain.BookingSelection{}, fmt.Errorf("%w: service %q, duration %q",
			ErrUnknownDuration, raw.ServiceCode, raw.DurationCode)
	}

	participants := domain.ParticipantCount{
		Adults:   raw.Adults,
		Children: raw.Children,
		Babies:   raw.Babies,
		Animals:  raw.Animals,
	}
	if !participants.IsValid() {
		return domain.BookingSelection{}, fmt.Errorf("%w: counts must be in [0, %d]",
			ErrInvalidParticipants, domain.MaxParticipantsPerKind)
	}

	sel := domain.BookingSelection{
		ServiceCode:   entry.Code,
		Participants:  participants,
		Date:          raw.Date,
		StartTime:     raw.StartTime,
		CreateAccount: raw.CreateAccount,
		CouponCode:    raw.CouponCode,
		ComboEligible: entry.IsComboEligible(),
	}
	sel = sel.WithDuration(duration.Code, duration.Price)

	pkg, err := resolvePackage(entry, raw.PackageCode)
	if err != nil {
		return domain.BookingSelection{}, err
	}
	sel = sel.WithPackage(pkg.Code, pkg.Price)

	if raw.Combo {
		if !entry.IsComboEligible() {
			return domain.BookingSelection{}, fmt.Errorf("%w: %q", ErrComboNotEligible, entry.Code)
		}
		sel = sel.WithCombo(true, entry.Combo.Price)
		// Combo всегда продается с максимальным пакетом
		full, _ := entry.FullPackage()
		sel = sel.WithPackage(full.Code, full.Price)
	}

	sel = sel.WithModelRelease(raw.ModelRelease)

	return sel, nil
}

// buildDealSelection собирает выбор для спецпредложения с фиксированной ценой
// Обычная композиция длительность+пакет и скидки welcome/model-release
// к deal не применяются
func (c *Catalog) buildDealSelection(raw RawSelection) (domain.BookingSelection, error) {
	deal, err := c.DealByCode(raw.DealCode)
	if err != nil {
		return domain.BookingSelection{}, err
	}

	entry, err := c.Service(deal.ServiceCode)
	if err != nil {
		return domain.BookingSelection{}, err
	}

	duration, ok := entry.DurationByCode(deal.DurationCode)
	if !ok {
		return domain.BookingSelection{}, fmt.Errorf("%w: deal %q, duration %q",
			ErrUnknownDuration, deal.Code, deal.DurationCode)
	}

	participants := domain.ParticipantCount{
		Adults:   raw.Adults,
		Children: raw.Children,
		Babies:   raw.Babies,
		Animals:  raw.Animals,
	}
	if !participants.IsValid() {
		return domain.BookingSelection{}, fmt.Errorf("%w: counts must be in [0, %d]",
			ErrInvalidParticipants, domain.MaxParticipantsPerKind)
	}

	sel := domain.BookingSelection{
		ServiceCode:   entry.Code,
		DealCode:      deal.Code,
		DealPrice:     deal.Price,
		PackageCode:   domain.PackageNone,
		Participants:  participants,
		Date:          raw.Date,
		StartTime:     raw.StartTime,
		CreateAccount: raw.CreateAccount,
		CouponCode:    raw.CouponCode,
	}
	// Длительность нужна для расчета занятости слотов, цена в deal не участвует
	sel.DurationCode = duration.Code

	return sel, nil
}

// SlotMinutesFor возвращает длительность выбора в минутах для расчета занятости
func (c *Catalog) SlotMinutesFor(sel domain.BookingSelection) (int, error) {
	entry, err := c.Service(sel.ServiceCode)
	if err != nil {
		return 0, err
	}
	duration, ok := entry.DurationByCode(sel.DurationCode)
	if !ok {
		return 0, fmt.Errorf("%w: service %q, duration %q", ErrUnknownDuration, sel.ServiceCode, sel.DurationCode)
	}
	return duration.Minutes, nil
}

func resolvePackage(entry *domain.ServiceCatalogEntry, code string) (domain.PackageOption, error) {
	// Услуга с обязательным полным пакетом: выбор клиента игнорируется,
	// мастер пропускает этот шаг
	if entry.RequiresFullPackage {
		full, _ := entry.FullPackage()
		return full, nil
	}

	if code == "" || code == domain.PackageNone {
		if !entry.AllowsNoPackage {
			return domain.PackageOption{}, fmt.Errorf("%w: %q", ErrPackageRequired, entry.Code)
		}
		return domain.PackageOption{Code: domain.PackageNone, Label: "Без пакета"}, nil
	}

	pkg, ok := entry.PackageByCode(code)
	if !ok {
		return domain.PackageOption{}, fmt.Errorf("%w: service %q, package %q", ErrUnknownPackage, entry.Code, code)
	}
	return pkg, nil
}
