package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/FSP-BookingService/internal/domain"
)

// Справочник по умолчанию. Цены фиксированные, в евро.
// Структура повторяет прайс студии: короткие съемки, "длинные" репортажные
// услуги (только 2h/4h/8h), мини-формат с собственной сеткой длительностей
// и спецпредложения с фиксированной ценой.

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var (
	standardDurations = []domain.DurationOption{
		{Code: "30min", Label: "30 минут", Minutes: 30, Price: price("59.99")},
		{Code: "1h", Label: "1 час", Minutes: 60, Price: price("99.99")},
		{Code: "90min", Label: "1.5 часа", Minutes: 90, Price: price("144.99")},
		{Code: "2h", Label: "2 часа", Minutes: 120, Price: price("189.99")},
	}

	// Репортажные услуги бронируются только длинными блоками
	longDurations = []domain.DurationOption{
		{Code: "2h", Label: "2 часа", Minutes: 120, Price: price("299.99")},
		{Code: "4h", Label: "4 часа", Minutes: 240, Price: price("549.99")},
		{Code: "8h", Label: "8 часов", Minutes: 480, Price: price("999.99")},
	}

	miniDurations = []domain.DurationOption{
		{Code: "15min", Label: "15 минут", Minutes: 15, Price: price("29.99")},
		{Code: "20min", Label: "20 минут", Minutes: 20, Price: price("39.99")},
		{Code: "30min", Label: "30 минут", Minutes: 30, Price: price("49.99")},
	}

	standardPackages = []domain.PackageOption{
		{Code: domain.PackageNone, Label: "Без пакета", Price: decimal.Zero},
		{Code: "10", Label: "10 фотографий", Price: price("169.99")},
		{Code: "25", Label: "25 фотографий", Price: price("249.99")},
		{Code: domain.PackageAll, Label: "Все фотографии", Price: price("329.99")},
	}

	// Пакеты без варианта "none" - для услуг, где фотографии обязательны
	requiredPackages = []domain.PackageOption{
		{Code: "10", Label: "10 фотографий", Price: price("169.99")},
		{Code: "25", Label: "25 фотографий", Price: price("249.99")},
		{Code: domain.PackageAll, Label: "Все фотографии", Price: price("329.99")},
	}

	miniPackages = []domain.PackageOption{
		{Code: "10", Label: "10 фотографий", Price: price("99.99")},
		{Code: domain.PackageAll, Label: "Все фотографии", Price: price("149.99")},
	}
)

var defaultServices = []*domain.ServiceCatalogEntry{
	{
		Code:            "portrait",
		Name:            "Портретная съемка",
		Durations:       standardDurations,
		Packages:        standardPackages,
		AllowsNoPackage: true,
	},
	{
		Code:            "family",
		Name:            "Семейная съемка",
		Durations:       standardDurations,
		Packages:        standardPackages,
		AllowsNoPackage: true,
	},
	{
		Code:            "babybauch",
		Name:            "Съемка беременности",
		Durations:       standardDurations,
		Packages:        standardPackages,
		AllowsNoPackage: true,
		Combo: &domain.ComboOffer{
			Code:  "babybauch-newborn",
			Label: "Комбо: беременность + новорожденный",
			Price: price("249.99"),
		},
	},
	{
		Code:      "newborn",
		Name:      "Съемка новорожденных",
		Durations: standardDurations,
		Packages:  requiredPackages,
	},
	{
		Code:      "business",
		Name:      "Бизнес и выставки",
		Durations: longDurations,
		Packages:  requiredPackages,
	},
	{
		Code:                "event",
		Name:                "Съемка мероприятий",
		Durations:           longDurations,
		Packages:            requiredPackages,
		RequiresFullPackage: true,
	},
	{
		Code:                "wedding",
		Name:                "Свадебная съемка",
		Durations:           longDurations,
		Packages:            requiredPackages,
		RequiresFullPackage: true,
	},
	{
		Code:      "mini",
		Name:      "Мини-съемка",
		Durations: miniDurations,
		Packages:  miniPackages,
	},
}

var defaultDeals = []*domain.Deal{
	{
		Code:         "winter-mini",
		Label:        "Зимняя мини-съемка",
		ServiceCode:  "mini",
		DurationCode: "30min",
		Price:        price("79.99"),
	},
	{
		Code:         "family-sunday",
		Label:        "Семейное воскресенье",
		ServiceCode:  "family",
		DurationCode: "1h",
		Price:        price("199.99"),
	},
}

// Default возвращает встроенный каталог
// Инварианты встроенных данных проверены тестами, поэтому ошибка здесь
// означает программную ошибку и роняет процесс на старте
func Default() *Catalog {
	c, err := New(defaultServices, defaultDeals)
	if err != nil {
		panic(err)
	}
	return c
}
