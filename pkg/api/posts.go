package api

// CreatePostRequest представляет запрос на создание публикации
type CreatePostRequest struct {
	Title   string `json:"title"`   // заголовок, обязательное поле
	Content string `json:"content"` // текст публикации
}

// UpdatePostRequest представляет запрос на изменение публикации
type UpdatePostRequest struct {
	Title   string `json:"title"`   // новый заголовок
	Content string `json:"content"` // новый текст
}

// CreateCommentRequest представляет запрос на создание комментария
type CreateCommentRequest struct {
	Content string `json:"content"` // текст комментария, обязательное поле
	PostID  string `json:"post_id"` // ID комментируемой публикации
}

// UpdateCommentRequest представляет запрос на изменение комментария
type UpdateCommentRequest struct {
	Content string `json:"content"` // новый текст комментария
}
