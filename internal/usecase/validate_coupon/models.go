package validate_coupon

import (
	"github.com/shopspring/decimal"
)

// Request модель запроса проверки купона
type Request struct {
	Code   string // Код купона в любом написании (пробелы и дефисы игнорируются)
	UserID *int64 // ID пользователя (nil для анонимной проверки)
}

// Response модель ответа с результатом проверки.
// Отказ (Rejection) - это штатный результат, не ошибка.
type Response struct {
	Valid     bool    // Купон применим
	Code      string  // Нормализованный код в формате XXXX-XXXX-XXXX-XXXX
	Rejection *string // Причина отказа (not_found, expired, already_used, wrong_user)

	// Параметры скидки (заполнены только при Valid = true)
	DiscountPercent *decimal.Decimal
	DiscountAmount  *decimal.Decimal
	Scope           *string
}
