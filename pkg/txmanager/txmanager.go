package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/m04kA/GovAppointmentService/pkg/dbmetrics"
)

const (
	DefaultTimeout    = 60 * time.Second
	DefaultMaxRetries = 3

	DefaultRetryInitialInterval = 10 * time.Millisecond
	DefaultRetryMaxInterval     = 500 * time.Millisecond
)

// TxBeginner источник транзакций, например *dbmetrics.DB
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Manager выполняет функции в транзакции, кладя её в контекст.
// Репозитории подхватывают транзакцию через dbmetrics.GetExecutor.
type Manager struct {
	db           TxBeginner
	timeout      time.Duration
	maxRetries   int
	retryInitial time.Duration
	retryMax     time.Duration
	logger       Logger
}

// Option настройка Manager
type Option func(*Manager)

// WithTimeout ограничивает время одной попытки транзакции
func WithTimeout(timeout time.Duration) Option {
	return func(m *Manager) {
		if timeout > 0 {
			m.timeout = timeout
		}
	}
}

// WithMaxRetries количество повторов при конфликте сериализации
func WithMaxRetries(n int) Option {
	return func(m *Manager) {
		if n >= 0 {
			m.maxRetries = n
		}
	}
}

// WithRetryBackoff пауза перед повтором: экспоненциальная со случайным разбросом,
// от initial до max
func WithRetryBackoff(initial, max time.Duration) Option {
	return func(m *Manager) {
		if initial > 0 && max >= initial {
			m.retryInitial = initial
			m.retryMax = max
		}
	}
}

// WithLogger логгер для повторов и hook'ов
func WithLogger(logger Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewTransactionManager создает менеджер транзакций
func NewTransactionManager(db TxBeginner, opts ...Option) *Manager {
	m := &Manager{
		db:           db,
		timeout:      DefaultTimeout,
		maxRetries:   DefaultMaxRetries,
		retryInitial: DefaultRetryInitialInterval,
		retryMax:     DefaultRetryMaxInterval,
		logger:       nopLogger{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Do выполняет fn в транзакции READ COMMITTED.
// Подходит для потоков, которые сами блокируют строки (SELECT ... FOR UPDATE):
// ожидающая транзакция после снятия блокировки видит зафиксированные данные.
func (m *Manager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted}, fn)
}

// DoSerializable выполняет fn в транзакции SERIALIZABLE
// и повторяет её при конфликте сериализации или дедлоке
func (m *Manager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, fn)
}

// DoReadOnly выполняет fn в транзакции только для чтения
func (m *Manager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}, fn)
}

func (m *Manager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	// Вложенный вызов присоединяется к внешней транзакции
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	attempt := 0
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		attempt++
		conflicted, err := m.attempt(ctx, opts, fn)
		if err != nil && !conflicted {
			return struct{}{}, backoff.Permanent(err)
		}
		return struct{}{}, err
	},
		backoff.WithBackOff(m.newBackOff()),
		backoff.WithMaxTries(uint(m.maxRetries+1)),
		backoff.WithNotify(func(err error, wait time.Duration) {
			m.logger.Warn("txmanager: serialization conflict, retrying in %s (attempt %d/%d): %v",
				wait, attempt, m.maxRetries, err)
		}),
	)
	return err
}

func (m *Manager) newBackOff() backoff.BackOff {
	b := &backoff.ExponentialBackOff{
		InitialInterval:     m.retryInitial,
		RandomizationFactor: 0.5,
		Multiplier:          2,
		MaxInterval:         m.retryMax,
	}
	b.Reset()
	return b
}

func (m *Manager) attempt(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) (conflicted bool, err error) {
	attemptCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	tx, err := m.db.BeginTx(attemptCtx, opts)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrBeginTx, err)
	}

	hooks := &hookSet{}
	txCtx := withHooks(dbmetrics.WithTx(attemptCtx, tx), hooks)

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			hooks.runRollback(ctx, m.logger)
			panic(p)
		}
	}()

	if fnErr := fn(txCtx); fnErr != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			m.logger.Error("txmanager: rollback failed: %v", rbErr)
		}
		hooks.runRollback(ctx, m.logger)
		if errors.Is(attemptCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			return false, fmt.Errorf("%w: %v", ErrTimeout, fnErr)
		}
		return isConflict(tx, fnErr), fnErr
	}

	if commitErr := tx.Commit(); commitErr != nil {
		hooks.runRollback(ctx, m.logger)
		return isConflict(tx, commitErr), fmt.Errorf("%w: %v", ErrCommit, commitErr)
	}

	hooks.runCommit(ctx, m.logger)
	return false, nil
}

func isConflict(tx dbmetrics.TxExecutor, err error) bool {
	if dbmetrics.IsConflict(err) {
		return true
	}
	if cr, ok := tx.(dbmetrics.ConflictReporter); ok {
		return cr.Conflicted()
	}
	return false
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
