package txmanager

import (
	"context"
	"sync"
)

// Hook действие, которое выполняется после commit или rollback транзакции
type Hook func(ctx context.Context) error

type hookSet struct {
	mu         sync.Mutex
	onCommit   []namedHook
	onRollback []namedHook
}

type namedHook struct {
	name string
	fn   Hook
}

type hooksKey struct{}

func withHooks(ctx context.Context, hs *hookSet) context.Context {
	return context.WithValue(ctx, hooksKey{}, hs)
}

func hooksFrom(ctx context.Context) (*hookSet, bool) {
	hs, ok := ctx.Value(hooksKey{}).(*hookSet)
	return hs, ok
}

// OnCommit регистрирует hook, который выполнится после успешного commit.
// Вне транзакции hook выполняется сразу. Ошибки hook'ов не влияют на результат транзакции.
func OnCommit(ctx context.Context, name string, fn Hook) {
	hs, ok := hooksFrom(ctx)
	if !ok {
		_ = fn(ctx)
		return
	}
	hs.mu.Lock()
	hs.onCommit = append(hs.onCommit, namedHook{name: name, fn: fn})
	hs.mu.Unlock()
}

// OnRollback регистрирует hook, который выполнится после отката попытки транзакции.
// Вне транзакции hook игнорируется.
func OnRollback(ctx context.Context, name string, fn Hook) {
	hs, ok := hooksFrom(ctx)
	if !ok {
		return
	}
	hs.mu.Lock()
	hs.onRollback = append(hs.onRollback, namedHook{name: name, fn: fn})
	hs.mu.Unlock()
}

func (hs *hookSet) runCommit(ctx context.Context, logger Logger) {
	hs.mu.Lock()
	hooks := hs.onCommit
	hs.mu.Unlock()
	runAll(ctx, "commit", hooks, logger)
}

func (hs *hookSet) runRollback(ctx context.Context, logger Logger) {
	hs.mu.Lock()
	hooks := hs.onRollback
	hs.mu.Unlock()
	runAll(ctx, "rollback", hooks, logger)
}

// runAll каждый hook изолирован: паника или ошибка одного не мешает остальным
func runAll(ctx context.Context, phase string, hooks []namedHook, logger Logger) {
	for _, h := range hooks {
		func() {
			defer func() {
				if p := recover(); p != nil {
					logger.Error("txmanager: %s hook %q panicked: %v", phase, h.name, p)
				}
			}()
			if err := h.fn(ctx); err != nil {
				logger.Warn("txmanager: %s hook %q failed: %v", phase, h.name, err)
			}
		}()
	}
}
