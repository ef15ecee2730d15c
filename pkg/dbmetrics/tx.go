package dbmetrics

import (
	"context"
	"database/sql"
	"sync/atomic"
	"time"
)

// SqlTxWrapper адаптирует *sql.Tx к TxExecutor
type SqlTxWrapper struct {
	Tx *sql.Tx

	recorder    Recorder
	serviceName string
	conflicted  atomic.Bool
}

func (w *SqlTxWrapper) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := w.Tx.ExecContext(ctx, query, args...)
	w.observe(query, start, err)
	return res, err
}

func (w *SqlTxWrapper) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := w.Tx.QueryContext(ctx, query, args...)
	w.observe(query, start, err)
	return rows, err
}

func (w *SqlTxWrapper) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := w.Tx.QueryRowContext(ctx, query, args...)
	w.observe(query, start, row.Err())
	return row
}

func (w *SqlTxWrapper) Commit() error {
	err := w.Tx.Commit()
	if IsConflict(err) {
		w.conflicted.Store(true)
	}
	return err
}

func (w *SqlTxWrapper) Rollback() error {
	return w.Tx.Rollback()
}

// Conflicted true, если внутри транзакции была ошибка 40001 или 40P01
func (w *SqlTxWrapper) Conflicted() bool {
	return w.conflicted.Load()
}

func (w *SqlTxWrapper) observe(query string, start time.Time, err error) {
	if IsConflict(err) {
		w.conflicted.Store(true)
	}
	if w.recorder != nil {
		w.recorder.ObserveDBQuery(w.serviceName, operation(query), time.Since(start), err)
	}
}
