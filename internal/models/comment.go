package models

import "time"

// Comment представляет комментарий к публикации
type Comment struct {
	ID        string    `json:"id"`         // UUID комментария
	Content   string    `json:"content"`    // текст комментария, обязательное поле
	Sender    string    `json:"sender"`     // ID автора, берется из access token
	PostID    string    `json:"post_id"`    // ID публикации, к которой оставлен комментарий
	CreatedAt time.Time `json:"created_at"` // время создания
	UpdatedAt time.Time `json:"updated_at"` // время последнего обновления
}
