package model

import "time"

type FavoriteColor struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	HexCode   string    `json:"hex_code"`
	CreatedAt time.Time `json:"created_at"`
}
