package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"

	"github.com/alexanderramin/archivio/internal/db"
)

// FailOnNthExecUoW returns Err from the Nth ExecContext issued inside its
// transaction (counting from 1). Reads are passed through. Seed imports and
// notification scans use it to prove a failed write rolls back everything
// written before it.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int32
	Err    error

	// Calls counts every ExecContext seen across transactions.
	Calls atomic.Int32
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	wrapped := &failOnNthExec{DBTX: tx, uow: u}
	if fnErr := fn(ctx, wrapped); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}

type failOnNthExec struct {
	db.DBTX
	uow *FailOnNthExecUoW
}

func (f *failOnNthExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f.uow.Calls.Add(1) == f.uow.FailOn {
		return nil, f.uow.Err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
