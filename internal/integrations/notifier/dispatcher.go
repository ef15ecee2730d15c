package notifier

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/GovAppointmentService/internal/domain"
)

// Sink канал доставки уведомлений
type Sink interface {
	Send(ctx context.Context, n domain.Notification) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// FailureRecorder учёт неуспешных доставок (метрики)
type FailureRecorder interface {
	RecordNotificationFailure(sink string)
}

type namedSink struct {
	name string
	sink Sink
}

// Dispatcher рассылает уведомление во все каналы.
// Каналы изолированы: ошибка или паника одного не мешает остальным.
type Dispatcher struct {
	sinks    []namedSink
	logger   Logger
	recorder FailureRecorder
}

// NewDispatcher создает диспетчер; recorder может быть nil
func NewDispatcher(logger Logger, recorder FailureRecorder) *Dispatcher {
	return &Dispatcher{logger: logger, recorder: recorder}
}

// Register добавляет канал доставки
func (d *Dispatcher) Register(name string, sink Sink) *Dispatcher {
	d.sinks = append(d.sinks, namedSink{name: name, sink: sink})
	return d
}

// Send доставляет уведомление во все каналы и возвращает ErrDelivery,
// если хотя бы один из них не справился
func (d *Dispatcher) Send(ctx context.Context, n domain.Notification) error {
	var errs []error
	for _, s := range d.sinks {
		if err := d.sendOne(ctx, s, n); err != nil {
			d.logger.Warn("notifier: sink %s failed for user_id=%d: %v", s.name, n.UserID, err)
			if d.recorder != nil {
				d.recorder.RecordNotificationFailure(s.name)
			}
			errs = append(errs, fmt.Errorf("%s: %w", s.name, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrDelivery, errors.Join(errs...))
	}
	return nil
}

func (d *Dispatcher) sendOne(ctx context.Context, s namedSink, n domain.Notification) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return s.sink.Send(ctx, n)
}
