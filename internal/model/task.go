package model

import "time"

const DefaultTaskColor = "#3182ce"

type Task struct {
	ID               int64     `json:"id"`
	UserID           int64     `json:"user_id"`
	DueDate          time.Time `json:"due_date"`
	Title            string    `json:"title"`
	Detail           string    `json:"detail"`
	Priority         int       `json:"priority"`
	IsCompleted      bool      `json:"is_completed"`
	Color            string    `json:"color"`
	IsNotify         bool      `json:"is_notify"`
	NotifyDaysBefore int       `json:"notify_days_before"`
	CreatedAt        time.Time `json:"created_at"`
}
