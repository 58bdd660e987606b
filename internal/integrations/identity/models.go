package identity

import "time"

// User профиль пользователя из платформы идентификации
// Ядру нужен только стабильный ID и контактные данные; сессиями,
// паролями и токенами управляет сама платформа
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// ErrorResponse модель ошибки от платформы идентификации
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
