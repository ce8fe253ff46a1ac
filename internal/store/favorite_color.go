package store

import (
	"database/sql"
	"fmt"

	"github.com/dukerupert/habitual/internal/model"
)

type FavoriteColorStore struct {
	db *sql.DB
}

func NewFavoriteColorStore(db *sql.DB) *FavoriteColorStore {
	return &FavoriteColorStore{db: db}
}

func (s *FavoriteColorStore) Create(userID int64, hexCode string) (*model.FavoriteColor, error) {
	result, err := s.db.Exec(
		`INSERT INTO favorite_colors (user_id, hex_code) VALUES (?, ?)`,
		userID, hexCode,
	)
	if err != nil {
		return nil, fmt.Errorf("insert favorite color: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	var c model.FavoriteColor
	err = s.db.QueryRow(
		`SELECT id, user_id, hex_code, created_at FROM favorite_colors WHERE id = ?`, id,
	).Scan(&c.ID, &c.UserID, &c.HexCode, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("query favorite color: %w", err)
	}
	return &c, nil
}

func (s *FavoriteColorStore) ListByUser(userID int64) ([]model.FavoriteColor, error) {
	rows, err := s.db.Query(
		`SELECT id, user_id, hex_code, created_at FROM favorite_colors WHERE user_id = ? ORDER BY id ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query favorite colors: %w", err)
	}
	defer rows.Close()

	var colors []model.FavoriteColor
	for rows.Next() {
		var c model.FavoriteColor
		if err := rows.Scan(&c.ID, &c.UserID, &c.HexCode, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan favorite color: %w", err)
		}
		colors = append(colors, c)
	}
	return colors, rows.Err()
}

func (s *FavoriteColorStore) Delete(userID, id int64) error {
	result, err := s.db.Exec(`DELETE FROM favorite_colors WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete favorite color: %w", err)
	}
	return checkAffected(result)
}
