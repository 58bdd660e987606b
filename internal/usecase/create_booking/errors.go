package create_booking

import "errors"

var (
	// ErrInvalidSelection возвращается при некорректном выборе услуги/длительности/пакета
	ErrInvalidSelection = errors.New("create_booking: invalid selection")

	// ErrInvalidDate возвращается, когда дата бронирования в прошлом
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrInvalidTimeSlot возвращается, когда время не попадает в 30-минутную сетку
	// рабочего дня или съемка не умещается до конца дня
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrSlotNotAvailable возвращается, когда выбранный слот уже занят или заблокирован
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrMalformedCoupon возвращается, когда код купона имеет неверный формат
	ErrMalformedCoupon = errors.New("create_booking: malformed coupon code")

	// ErrCouponNotFound возвращается, когда купон не существует или деактивирован
	ErrCouponNotFound = errors.New("create_booking: coupon not found")

	// ErrCouponExpired возвращается, когда срок действия купона истек
	ErrCouponExpired = errors.New("create_booking: coupon expired")

	// ErrCouponAlreadyUsed возвращается, когда одноразовый купон уже погашен
	ErrCouponAlreadyUsed = errors.New("create_booking: coupon already used")

	// ErrCouponWrongUser возвращается, когда купон выписан другому пользователю
	ErrCouponWrongUser = errors.New("create_booking: coupon belongs to another user")

	// ErrUserNotFound возвращается, когда пользователь не найден на платформе аккаунтов
	ErrUserNotFound = errors.New("create_booking: user not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
