package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// ErrNoUnitOfWork is returned when a write is staged on a context that was
// not started with UnitOfWork.Begin
var ErrNoUnitOfWork = errors.New("no unit of work in context")

// change is one staged write, replayed inside the commit transaction
type change func(ctx context.Context, tx *sqlx.Tx) error

type changeSet struct {
	changes []change
}

type changeSetKey struct{}

// UnitOfWork implements domain.UnitOfWork on top of a sqlx pool
type UnitOfWork struct {
	db *sqlx.DB
}

// NewUnitOfWork creates a new PostgreSQL unit of work
func NewUnitOfWork(db *sqlx.DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

// Begin returns a context carrying an empty change set
func (u *UnitOfWork) Begin(ctx context.Context) context.Context {
	return context.WithValue(ctx, changeSetKey{}, &changeSet{})
}

// Commit applies the staged changes in order inside one transaction. Nothing
// is persisted if any change fails. The change set is emptied on success.
func (u *UnitOfWork) Commit(ctx context.Context) error {
	cs, ok := ctx.Value(changeSetKey{}).(*changeSet)
	if !ok {
		return ErrNoUnitOfWork
	}
	if len(cs.changes) == 0 {
		return nil
	}

	tx, err := u.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, apply := range cs.changes {
		if err := apply(ctx, tx); err != nil {
			return translateError(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", translateError(err))
	}

	cs.changes = nil
	return nil
}

func stage(ctx context.Context, c change) error {
	cs, ok := ctx.Value(changeSetKey{}).(*changeSet)
	if !ok {
		return ErrNoUnitOfWork
	}
	cs.changes = append(cs.changes, c)
	return nil
}

// stageExec stages a single statement
func stageExec(ctx context.Context, query string, args ...interface{}) error {
	return stage(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, query, args...)
		return err
	})
}
