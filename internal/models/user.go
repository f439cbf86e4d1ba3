package models

import "time"

// User представляет пользователя в системе
type User struct {
	ID           string    `json:"id"`         // UUID пользователя
	Email        string    `json:"email"`      // уникальный email
	Username     string    `json:"username"`   // отображаемое имя (не уникальное)
	PasswordHash string    `json:"-"`          // bcrypt хеш пароля, наружу не отдается
	CreatedAt    time.Time `json:"created_at"` // время создания
	UpdatedAt    time.Time `json:"updated_at"` // время последнего обновления
}

// RefreshToken представляет действующий refresh token пользователя.
// Сам токен — подписанный JWT; строка дополнительно хранится в storage как
// allowlist: refresh принимается только пока токен числится за пользователем.
type RefreshToken struct {
	Token     string    `json:"token"`      // строка подписанного JWT
	UserID    string    `json:"user_id"`    // ID пользователя-владельца
	ExpiresAt time.Time `json:"expires_at"` // время истечения
	CreatedAt time.Time `json:"created_at"` // время создания
}
