package habit

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/dukerupert/habitual/internal/model"
	"github.com/dukerupert/habitual/internal/store"
)

// Tracker is the only writer of habit streaks.
type Tracker struct {
	db     *sql.DB
	habits *store.HabitStore
	policy StreakPolicy
	logger *slog.Logger
}

// NewTracker returns a Tracker that advances streaks under policy.
func NewTracker(db *sql.DB, hs *store.HabitStore, policy StreakPolicy, logger *slog.Logger) *Tracker {
	return &Tracker{db: db, habits: hs, policy: policy, logger: logger}
}

// MarkAchieved records an achievement of the user's habit on today. The read
// and the write share one unit of work; the same-day check in Advance is
// what keeps repeated clicks from counting twice. It returns the stored
// habit and whether the streak changed, or store.ErrNotFound.
func (t *Tracker) MarkAchieved(userID, habitID int64, today time.Time) (*model.Habit, bool, error) {
	var result model.Habit
	var changed bool

	err := store.RunInTx(t.db, func(uow *store.UnitOfWork) error {
		h, err := t.habits.GetByID(uow, userID, habitID)
		if err != nil {
			return err
		}
		if h == nil {
			return store.ErrNotFound
		}

		result, changed = Advance(*h, today, t.policy)
		if !changed {
			return nil
		}
		return t.habits.SaveStreak(uow, userID, habitID, result.StreakCount, *result.LastAchievedDate)
	})
	if err != nil {
		return nil, false, fmt.Errorf("mark achieved: %w", err)
	}

	if changed {
		t.logger.Debug("habit achieved", "habit_id", habitID, "user_id", userID, "streak", result.StreakCount)
	}
	return &result, changed, nil
}
