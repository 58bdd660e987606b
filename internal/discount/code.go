package discount

import (
	"fmt"
	"strings"

	"github.com/m04kA/FSP-BookingService/internal/domain"
)

// NormalizeCode приводит введенный код купона к каноническому виду:
// верхний регистр, без пробелов и дефисов (код отображается группами 4x4,
// пользователи вводят его и так, и так).
//
// Возвращает ErrMalformedCode, если после нормализации код не состоит ровно
// из 16 алфавитно-цифровых символов.
func NormalizeCode(raw string) (string, error) {
	var b strings.Builder
	for _, r := range strings.ToUpper(raw) {
		switch {
		case r == ' ' || r == '-':
			continue
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			return "", fmt.Errorf("%w: invalid character %q", ErrMalformedCode, r)
		}
	}

	code := b.String()
	if len(code) != domain.CouponCodeLength {
		return "", fmt.Errorf("%w: expected %d characters, got %d", ErrMalformedCode, domain.CouponCodeLength, len(code))
	}

	return code, nil
}

// FormatCode форматирует канонический код для отображения: 4 группы по 4
func FormatCode(code string) string {
	if len(code) != domain.CouponCodeLength {
		return code
	}
	return strings.Join([]string{code[0:4], code[4:8], code[8:12], code[12:16]}, "-")
}
