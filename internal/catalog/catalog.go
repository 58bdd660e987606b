package catalog

import (
	"fmt"
	"sort"

	"github.com/m04kA/FSP-BookingService/internal/domain"
)

// Catalog статический справочник услуг, длительностей, фотопакетов и
// спецпредложений. Загружается один раз при старте и не меняется.
//
// Все различия в поведении услуг (только длинные длительности, только полный
// пакет, наличие combo) выражены флагами ServiceCatalogEntry - снаружи
// каталога сравнение по имени услуги не допускается.
type Catalog struct {
	services map[string]*domain.ServiceCatalogEntry
	deals    map[string]*domain.Deal
}

// New создает каталог и проверяет его инварианты
func New(entries []*domain.ServiceCatalogEntry, deals []*domain.Deal) (*Catalog, error) {
	services := make(map[string]*domain.ServiceCatalogEntry, len(entries))

	for _, entry := range entries {
		if err := validateEntry(entry); err != nil {
			return nil, err
		}
		if _, exists := services[entry.Code]; exists {
			return nil, fmt.Errorf("%w: duplicate service code %q", ErrInvalidCatalog, entry.Code)
		}
		services[entry.Code] = entry
	}

	dealIndex := make(map[string]*domain.Deal, len(deals))
	for _, deal := range deals {
		service, ok := services[deal.ServiceCode]
		if !ok {
			return nil, fmt.Errorf("%w: deal %q references unknown service %q", ErrInvalidCatalog, deal.Code, deal.ServiceCode)
		}
		if _, ok := service.DurationByCode(deal.DurationCode); !ok {
			return nil, fmt.Errorf("%w: deal %q references unknown duration %q", ErrInvalidCatalog, deal.Code, deal.DurationCode)
		}
		if _, exists := dealIndex[deal.Code]; exists {
			return nil, fmt.Errorf("%w: duplicate deal code %q", ErrInvalidCatalog, deal.Code)
		}
		dealIndex[deal.Code] = deal
	}

	return &Catalog{services: services, deals: dealIndex}, nil
}

func validateEntry(entry *domain.ServiceCatalogEntry) error {
	if entry.Code == "" {
		return fmt.Errorf("%w: service with empty code", ErrInvalidCatalog)
	}

	// Взаимоисключающие флаги: услуга не может одновременно требовать полный
	// пакет и допускать вариант "без пакета"
	if entry.RequiresFullPackage && entry.AllowsNoPackage {
		return fmt.Errorf("%w: service %q requires full package and allows no package", ErrInvalidCatalog, entry.Code)
	}

	if len(entry.Durations) == 0 {
		return fmt.Errorf("%w: service %q has no durations", ErrInvalidCatalog, entry.Code)
	}

	seen := make(map[string]struct{}, len(entry.Durations))
	for _, d := range entry.Durations {
		if _, dup := seen[d.Code]; dup {
			return fmt.Errorf("%w: service %q has duplicate duration %q", ErrInvalidCatalog, entry.Code, d.Code)
		}
		seen[d.Code] = struct{}{}
		if d.Minutes <= 0 {
			return fmt.Errorf("%w: service %q duration %q has non-positive minutes", ErrInvalidCatalog, entry.Code, d.Code)
		}
	}

	if entry.RequiresFullPackage || entry.IsComboEligible() {
		if _, ok := entry.FullPackage(); !ok {
			return fmt.Errorf("%w: service %q needs the %q package tier", ErrInvalidCatalog, entry.Code, domain.PackageAll)
		}
	}

	return nil
}

// Service возвращает запись каталога по коду услуги
func (c *Catalog) Service(code string) (*domain.ServiceCatalogEntry, error) {
	entry, ok := c.services[code]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownService, code)
	}
	return entry, nil
}

// Services возвращает все услуги, отсортированные по коду
func (c *Catalog) Services() []*domain.ServiceCatalogEntry {
	entries := make([]*domain.ServiceCatalogEntry, 0, len(c.services))
	for _, entry := range c.services {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Code < entries[j].Code })
	return entries
}

// DurationsFor возвращает доступные длительности услуги
func (c *Catalog) DurationsFor(serviceCode string) ([]domain.DurationOption, error) {
	entry, err := c.Service(serviceCode)
	if err != nil {
		return nil, err
	}
	return entry.Durations, nil
}

// PackagesFor возвращает доступные фотопакеты услуги
// Для услуг с RequiresFullPackage выбор пакета пропускается - возвращается
// только максимальный tier
func (c *Catalog) PackagesFor(serviceCode string) ([]domain.PackageOption, error) {
	entry, err := c.Service(serviceCode)
	if err != nil {
		return nil, err
	}
	if entry.RequiresFullPackage {
		full, _ := entry.FullPackage()
		return []domain.PackageOption{full}, nil
	}
	return entry.Packages, nil
}

// IsComboEligible возвращает true, если у услуги есть combo-предложение
func (c *Catalog) IsComboEligible(serviceCode string) (bool, error) {
	entry, err := c.Service(serviceCode)
	if err != nil {
		return false, err
	}
	return entry.IsComboEligible(), nil
}

// DealByCode возвращает спецпредложение по коду
func (c *Catalog) DealByCode(code string) (*domain.Deal, error) {
	deal, ok := c.deals[code]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDeal, code)
	}
	return deal, nil
}

// Deals возвращает все спецпредложения, отсортированные по коду
func (c *Catalog) Deals() []*domain.Deal {
	deals := make([]*domain.Deal, 0, len(c.deals))
	for _, deal := range c.deals {
		deals = append(deals, deal)
	}
	sort.Slice(deals, func(i, j int) bool { return deals[i].Code < deals[j].Code })
	return deals
}
