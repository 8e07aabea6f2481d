package db

import (
	"time"
)

// User представляет пользователя в системе
type User struct {
	ID           int64     `json:"id"`
	Login        string    `json:"login"`
	PasswordHash string    `json:"-"` // Не включается в JSON сериализацию
	CreatedAt    time.Time `json:"created_at"`
}

// Calculation - запись истории: исходная строка и результат или ошибка
type Calculation struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	Input        string    `json:"expression"`
	Status       string    `json:"status"`
	Result       *string   `json:"result,omitempty"`
	ErrorMessage *string   `json:"error,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Статусы вычислений
const (
	StatusCompleted = "completed"
	StatusError     = "error"
)
