package availability

import (
	"time"

	"github.com/m04kA/FSP-BookingService/internal/domain"
	"github.com/m04kA/FSP-BookingService/pkg/types"
)

// Пакет availability - чистый расчет занятости слотов на день.
// Работает над снапшотом бронирований и блокировок; защита от гонки
// двойного бронирования обеспечивается не здесь, а сериализуемой
// транзакцией в create_booking (клиентская проверка - только UX).

// durationMinutes таблица соответствия кода длительности минутам
// Используется для старых записей, у которых не заполнен duration_minutes
var durationMinutes = map[string]int{
	"15min": 15,
	"20min": 20,
	"30min": 30,
	"45min": 45,
	"1h":    60,
	"90min": 90,
	"2h":    120,
	"4h":    240,
	"8h":    480,
}

// DurationMinutes возвращает длительность кода в минутах
func DurationMinutes(code string) (int, bool) {
	m, ok := durationMinutes[code]
	return m, ok
}

// Warning нераспознанный код длительности в данных
// Такое бронирование консервативно занимает время до конца дня, чтобы
// никогда не предложить клиенту занятый слот; вызывающая сторона логирует
type Warning struct {
	BookingID    int64
	DurationCode string
}

// SlotUniverse возвращает все возможные начала слотов дня:
// сетка с шагом 30 минут в окне 08:00-20:00
func SlotUniverse() []types.TimeString {
	slots := make([]types.TimeString, 0, 24)

	current := types.TimeString(domain.DayStartTime)
	end := types.TimeString(domain.DayEndTime)

	for current.IsBefore(end) {
		slots = append(slots, current)
		next, err := current.AddMinutes(domain.SlotMinutes)
		if err != nil {
			break
		}
		current = next
	}

	return slots
}

// OccupiedSlots вычисляет множество занятых слотов на дату.
//
// Алгоритм:
//  1. Блокировка всего дня (time == nil) доминирует: занята вся сетка
//  2. Иначе объединение: явно заблокированные времена + каждый слот, чье
//     начало попадает в интервал [start, start+duration) активного
//     бронирования
//
// Списки bookings и blocked могут содержать записи других дат - они
// отфильтровываются по date.
func OccupiedSlots(date time.Time, bookings []*domain.Booking, blocked []*domain.BlockedSlot) (map[types.TimeString]struct{}, []Warning) {
	occupied := make(map[types.TimeString]struct{})

	// 1. Полная блокировка даты
	for _, b := range blocked {
		if isSameDay(b.Date, date) && b.IsFullDay() {
			for _, slot := range SlotUniverse() {
				occupied[slot] = struct{}{}
			}
			return occupied, nil
		}
	}

	// 2a. Точечные блокировки
	for _, b := range blocked {
		if isSameDay(b.Date, date) && b.Time != nil {
			occupied[*b.Time] = struct{}{}
		}
	}

	// 2b. Активные бронирования
	var warnings []Warning
	for _, booking := range bookings {
		if !booking.IsActive() || !isSameDay(booking.BookingDate, date) {
			continue
		}

		minutes, known := bookingMinutes(booking)
		if !known {
			warnings = append(warnings, Warning{BookingID: booking.ID, DurationCode: booking.DurationCode})
		}

		end, err := booking.StartTime.AddMinutes(minutes)
		if err != nil {
			// Интервал выходит за сутки - занимаем до конца дня
			end = types.TimeString("24:00")
		}

		for _, slot := range SlotUniverse() {
			if !slot.IsBefore(booking.StartTime) && slot.IsBefore(end) {
				occupied[slot] = struct{}{}
			}
		}
	}

	return occupied, warnings
}

// FreeSlots возвращает свободные слоты на дату в порядке сетки
func FreeSlots(date time.Time, bookings []*domain.Booking, blocked []*domain.BlockedSlot) ([]types.TimeString, []Warning) {
	occupied, warnings := OccupiedSlots(date, bookings, blocked)

	free := make([]types.TimeString, 0)
	for _, slot := range SlotUniverse() {
		if _, taken := occupied[slot]; !taken {
			free = append(free, slot)
		}
	}

	return free, warnings
}

// HasConflict проверяет, пересекается ли кандидат [start, start+minutes)
// с существующими бронированиями и блокировками на дату.
// Используется авторитетной проверкой при создании и переносе бронирования.
func HasConflict(date time.Time, start types.TimeString, minutes int, bookings []*domain.Booking, blocked []*domain.BlockedSlot) (bool, []Warning) {
	candidateEnd, err := start.AddMinutes(minutes)
	if err != nil {
		candidateEnd = types.TimeString("24:00")
	}

	for _, b := range blocked {
		if !isSameDay(b.Date, date) {
			continue
		}
		if b.IsFullDay() {
			return true, nil
		}
		blockEnd, err := b.Time.AddMinutes(domain.SlotMinutes)
		if err != nil {
			blockEnd = types.TimeString("24:00")
		}
		if intervalsOverlap(start, candidateEnd, *b.Time, blockEnd) {
			return true, nil
		}
	}

	var warnings []Warning
	for _, booking := range bookings {
		if !booking.IsActive() || !isSameDay(booking.BookingDate, date) {
			continue
		}

		bookingMin, known := bookingMinutes(booking)
		if !known {
			warnings = append(warnings, Warning{BookingID: booking.ID, DurationCode: booking.DurationCode})
		}

		bookingEnd, err := booking.StartTime.AddMinutes(bookingMin)
		if err != nil {
			bookingEnd = types.TimeString("24:00")
		}

		if intervalsOverlap(start, candidateEnd, booking.StartTime, bookingEnd) {
			return true, warnings
		}
	}

	return false, warnings
}

// bookingMinutes возвращает длительность бронирования в минутах.
// Если минуты не денормализованы и код не распознан, бронирование
// консервативно считается занимающим остаток дня (second return false).
// Молчаливый fallback на один час здесь недопустим: он занижал бы занятость
// при битых данных.
func bookingMinutes(b *domain.Booking) (int, bool) {
	if b.DurationMinutes > 0 {
		return b.DurationMinutes, true
	}
	if m, ok := DurationMinutes(b.DurationCode); ok {
		return m, true
	}
	return 24 * 60, false
}

// intervalsOverlap строгая проверка пересечения интервалов:
// граничные случаи (конец одного == начало другого) пересечением не считаются
func intervalsOverlap(aStart, aEnd, bStart, bEnd types.TimeString) bool {
	return bStart.IsBefore(aEnd) && bEnd.IsAfter(aStart)
}

func isSameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
