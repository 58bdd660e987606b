package validate_coupon

import "errors"

var (
	// ErrMalformedCode возвращается, когда код купона имеет неверный формат
	ErrMalformedCode = errors.New("validate_coupon: malformed coupon code")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("validate_coupon: internal error")
)
