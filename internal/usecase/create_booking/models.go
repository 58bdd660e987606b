package create_booking

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/FSP-BookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID *int64 // ID пользователя (nil для гостевого бронирования)

	// Выбор услуги
	ServiceCode  string  // Код услуги
	DurationCode string  // Код длительности съемки
	PackageCode  *string // Код фотопакета (nil или "none" = без пакета)
	Combo        bool    // Комбо-предложение
	DealCode     *string // Код спецпредложения

	Adults   int // Количество взрослых
	Children int // Количество детей
	Babies   int // Количество младенцев
	Animals  int // Количество животных

	Date      time.Time        // Дата съемки (без времени)
	StartTime types.TimeString // Время начала слота (например, "10:00")

	// Контактные данные
	CustomerName  string  // Имя клиента
	CustomerEmail string  // Email клиента
	CustomerPhone *string // Телефон (опционально)
	Notes         *string // Пожелания к съемке (опционально)

	// Скидки
	ModelRelease  bool    // Согласие на использование фотографий
	CreateAccount bool    // Клиент создает аккаунт (welcome-скидка)
	CouponCode    *string // Код купона (опционально)
}

// BookingLineItem одна позиция расчета в ответе
type BookingLineItem struct {
	Code   string
	Label  string
	Amount decimal.Decimal
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID        int64            // Внутренний ID бронирования
	Reference uuid.UUID        // Публичная ссылка для клиента
	UserID    *int64           // ID пользователя (nil для гостя)
	Status    string           // Статус бронирования
	Date      time.Time        // Дата съемки
	StartTime types.TimeString // Время начала
	Minutes   int              // Длительность в минутах

	// Снапшот выбора
	ServiceCode  string
	DurationCode string
	PackageCode  string
	Combo        bool
	DealCode     *string

	// Расчет цены, зафиксированный в момент бронирования
	LineItems  []BookingLineItem
	TotalPrice decimal.Decimal

	CreatedAt time.Time
}
