package quote_price

import (
	"github.com/shopspring/decimal"
)

// Request модель запроса на предварительный расчет цены
type Request struct {
	UserID *int64 // ID пользователя (nil для анонимного расчета)

	ServiceCode  string  // Код услуги
	DurationCode string  // Код длительности съемки
	PackageCode  *string // Код фотопакета (nil или "none" = без пакета)
	Combo        bool    // Комбо-предложение (babybauch + newborn)
	DealCode     *string // Код спецпредложения (взаимоисключим с выбором выше)

	Adults   int // Количество взрослых
	Children int // Количество детей
	Babies   int // Количество младенцев
	Animals  int // Количество животных

	ModelRelease  bool    // Согласие на использование фотографий (model-release)
	CreateAccount bool    // Клиент создает аккаунт (welcome-скидка)
	CouponCode    *string // Код купона (опционально)
}

// QuoteLineItem одна позиция расчета в ответе
type QuoteLineItem struct {
	Code   string          // Машиночитаемый код позиции
	Label  string          // Человекочитаемое название
	Amount decimal.Decimal // Сумма (скидки отрицательные)
}

// Response модель ответа с расчетом цены
type Response struct {
	LineItems []QuoteLineItem // Позиции расчета
	Total     decimal.Decimal // Итоговая сумма (неотрицательная)

	// Статус купона
	CouponApplied   bool    // Купон применен
	CouponCode      *string // Нормализованный код купона (формат XXXX-XXXX-XXXX-XXXX)
	CouponRejection *string // Причина отказа (not_found, expired, already_used, wrong_user)
}
