package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dukerupert/habitual/internal/day"
)

// ErrNotFound is returned by user-scoped mutations when the row does not
// exist or belongs to another user.
var ErrNotFound = errors.New("not found")

type querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// UnitOfWork is a single database transaction shared by several store calls.
type UnitOfWork struct {
	tx *sql.Tx
}

// Begin starts a unit of work.
func Begin(db *sql.DB) (*UnitOfWork, error) {
	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	return &UnitOfWork{tx: tx}, nil
}

func (u *UnitOfWork) Commit() error {
	if err := u.tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (u *UnitOfWork) Rollback() error {
	if err := u.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("rollback tx: %w", err)
	}
	return nil
}

// RunInTx runs fn inside a unit of work, committing on success and rolling
// back when fn returns an error.
func RunInTx(db *sql.DB, fn func(*UnitOfWork) error) error {
	uow, err := Begin(db)
	if err != nil {
		return err
	}
	if err := fn(uow); err != nil {
		uow.Rollback()
		return err
	}
	return uow.Commit()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func checkAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func parseDate(s string) (time.Time, error) {
	return day.Parse(s)
}
