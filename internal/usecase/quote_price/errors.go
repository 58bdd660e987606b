package quote_price

import "errors"

var (
	// ErrInvalidSelection возвращается при некорректном выборе услуги/длительности/пакета
	ErrInvalidSelection = errors.New("quote_price: invalid selection")

	// ErrMalformedCoupon возвращается, когда код купона имеет неверный формат
	ErrMalformedCoupon = errors.New("quote_price: malformed coupon code")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("quote_price: internal error")
)
