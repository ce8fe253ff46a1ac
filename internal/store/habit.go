package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/dukerupert/habitual/internal/day"
	"github.com/dukerupert/habitual/internal/model"
)

type HabitStore struct {
	db *sql.DB
}

func NewHabitStore(db *sql.DB) *HabitStore {
	return &HabitStore{db: db}
}

// q picks the transaction when one is given.
func (s *HabitStore) q(uow *UnitOfWork) querier {
	if uow != nil {
		return uow.tx
	}
	return s.db
}

const habitCols = `id, user_id, weekday, title, detail, color, streak_count, last_achieved_date, created_at`

func scanHabit(scanner interface{ Scan(...any) error }) (*model.Habit, error) {
	var h model.Habit
	var weekday int
	var lastAchieved sql.NullString
	err := scanner.Scan(&h.ID, &h.UserID, &weekday, &h.Title, &h.Detail, &h.Color, &h.StreakCount, &lastAchieved, &h.CreatedAt)
	if err != nil {
		return nil, err
	}
	h.Weekday = time.Weekday(weekday)
	if lastAchieved.Valid && lastAchieved.String != "" {
		d, err := parseDate(lastAchieved.String)
		if err != nil {
			return nil, err
		}
		h.LastAchievedDate = &d
	}
	return &h, nil
}

func (s *HabitStore) Create(h model.Habit) (*model.Habit, error) {
	result, err := s.db.Exec(
		`INSERT INTO habits (user_id, weekday, title, detail, color) VALUES (?, ?, ?, ?, ?)`,
		h.UserID, int(h.Weekday), h.Title, h.Detail, h.Color,
	)
	if err != nil {
		return nil, fmt.Errorf("insert habit: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(nil, h.UserID, id)
}

// GetByID loads a habit owned by userID, optionally inside a unit of work.
// It returns nil, nil when no such habit exists.
func (s *HabitStore) GetByID(uow *UnitOfWork, userID, id int64) (*model.Habit, error) {
	row := s.q(uow).QueryRow(`SELECT `+habitCols+` FROM habits WHERE id = ? AND user_id = ?`, id, userID)
	h, err := scanHabit(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get habit: %w", err)
	}
	return h, nil
}

func (s *HabitStore) ListByUser(userID int64) ([]model.Habit, error) {
	rows, err := s.db.Query(
		`SELECT `+habitCols+` FROM habits WHERE user_id = ? ORDER BY weekday ASC, id ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query habits: %w", err)
	}
	defer rows.Close()

	var habits []model.Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, fmt.Errorf("scan habit: %w", err)
		}
		habits = append(habits, *h)
	}
	return habits, rows.Err()
}

// SaveStreak writes the streak counter and last achievement date.
func (s *HabitStore) SaveStreak(uow *UnitOfWork, userID, id int64, streak int, lastAchieved time.Time) error {
	result, err := s.q(uow).Exec(
		`UPDATE habits SET streak_count = ?, last_achieved_date = ? WHERE id = ? AND user_id = ?`,
		streak, day.Format(lastAchieved), id, userID,
	)
	if err != nil {
		return fmt.Errorf("save streak: %w", err)
	}
	return checkAffected(result)
}

func (s *HabitStore) Delete(userID, id int64) error {
	result, err := s.db.Exec(`DELETE FROM habits WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete habit: %w", err)
	}
	return checkAffected(result)
}
