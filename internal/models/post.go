package models

import "time"

// Post представляет публикацию пользователя
type Post struct {
	ID        string    `json:"id"`         // UUID публикации
	Title     string    `json:"title"`      // заголовок, обязательное поле
	Content   string    `json:"content"`    // текст публикации
	Sender    string    `json:"sender"`     // ID автора, берется из access token
	CreatedAt time.Time `json:"created_at"` // время создания
	UpdatedAt time.Time `json:"updated_at"` // время последнего обновления
}
