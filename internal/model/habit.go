package model

import "time"

const DefaultHabitColor = "#38a169"

type Habit struct {
	ID               int64        `json:"id"`
	UserID           int64        `json:"user_id"`
	Weekday          time.Weekday `json:"weekday"`
	Title            string       `json:"title"`
	Detail           string       `json:"detail"`
	Color            string       `json:"color"`
	StreakCount      int          `json:"streak_count"`
	LastAchievedDate *time.Time   `json:"last_achieved_date"`
	CreatedAt        time.Time    `json:"created_at"`
}
