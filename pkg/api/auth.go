package api

// RegisterRequest представляет запрос на регистрацию нового пользователя
type RegisterRequest struct {
	Email    string `json:"email"`    // email пользователя, должен быть уникальным
	Username string `json:"username"` // отображаемое имя
	Password string `json:"password"` // пароль в открытом виде, хешируется на сервере
}

// RegisterResponse представляет ответ на успешную регистрацию
type RegisterResponse struct {
	ID       string `json:"id"`       // UUID пользователя
	Email    string `json:"email"`    // email пользователя
	Username string `json:"username"` // отображаемое имя
}

// LoginRequest представляет запрос на аутентификацию
type LoginRequest struct {
	Email    string `json:"email"`    // email пользователя
	Password string `json:"password"` // пароль в открытом виде
}

// LoginResponse представляет ответ с токенами и ID пользователя
type LoginResponse struct {
	AccessToken  string `json:"accessToken"`  // JWT access token
	RefreshToken string `json:"refreshToken"` // JWT refresh token
	UserID       string `json:"userId"`       // UUID пользователя
}

// RefreshRequest представляет запрос на ротацию refresh token
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"` // действующий refresh token
}

// TokenResponse представляет ответ с новой парой токенов
type TokenResponse struct {
	AccessToken  string `json:"accessToken"`  // новый JWT access token
	RefreshToken string `json:"refreshToken"` // новый JWT refresh token
}

// LogoutRequest представляет запрос на завершение сессии
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken"` // refresh token завершаемой сессии
}

// MessageResponse представляет ответ-подтверждение без полезной нагрузки
type MessageResponse struct {
	Message string `json:"message"` // текст подтверждения
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`             // описание ошибки
	Message string `json:"message,omitempty"` // дополнительное сообщение
}
