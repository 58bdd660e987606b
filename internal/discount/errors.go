package discount

import "errors"

var (
	// ErrMalformedCode возвращается при коде купона неправильной длины или
	// с недопустимыми символами. Это единственная "жесткая" ошибка пакета:
	// все бизнес-отказы (не найден, истек и т.д.) возвращаются как данные.
	ErrMalformedCode = errors.New("discount: malformed coupon code")
)
