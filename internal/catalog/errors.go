package catalog

import "errors"

var (
	// ErrUnknownService возвращается при запросе услуги, которой нет в каталоге
	ErrUnknownService = errors.New("catalog: unknown service")

	// ErrUnknownDuration возвращается, когда длительность недоступна для услуги
	ErrUnknownDuration = errors.New("catalog: unknown duration for service")

	// ErrUnknownPackage возвращается, когда фотопакет недоступен для услуги
	ErrUnknownPackage = errors.New("catalog: unknown package for service")

	// ErrUnknownDeal возвращается при запросе несуществующего спецпредложения
	ErrUnknownDeal = errors.New("catalog: unknown deal")

	// ErrPackageRequired возвращается, когда услуга не допускает вариант "без пакета"
	ErrPackageRequired = errors.New("catalog: service does not allow the no-package option")

	// ErrComboNotEligible возвращается, когда combo выбран для услуги без combo-предложения
	ErrComboNotEligible = errors.New("catalog: service has no combo offer")

	// ErrInvalidParticipants возвращается при недопустимом количестве участников
	ErrInvalidParticipants = errors.New("catalog: invalid participant count")

	// ErrInvalidCatalog возвращается при нарушении инвариантов справочника
	ErrInvalidCatalog = errors.New("catalog: invalid catalog data")
)
