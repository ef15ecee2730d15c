package domain

import (
	"fmt"
	"strings"
)

// transitions допустимые переходы; терминальные статусы не имеют исходящих переходов
var transitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentPending:    {AppointmentConfirmed, AppointmentCancelled},
	AppointmentConfirmed:  {AppointmentInProgress, AppointmentCancelled},
	AppointmentInProgress: {AppointmentCompleted, AppointmentCancelled},
	AppointmentCompleted:  {},
	AppointmentCancelled:  {},
	AppointmentNoShow:     {},
}

// AllAppointmentStatuses все известные статусы
var AllAppointmentStatuses = []AppointmentStatus{
	AppointmentPending,
	AppointmentConfirmed,
	AppointmentInProgress,
	AppointmentCompleted,
	AppointmentCancelled,
	AppointmentNoShow,
}

// ParseAppointmentStatus разбирает статус без учёта регистра
func ParseAppointmentStatus(s string) (AppointmentStatus, error) {
	status := AppointmentStatus(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := transitions[status]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
	return status, nil
}

// CanTransition сообщает, разрешён ли переход from -> to
func CanTransition(from, to AppointmentStatus) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ValidateTransition возвращает ErrInvalidTransition для запрещённого перехода
func ValidateTransition(from, to AppointmentStatus) error {
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: cannot transition from %s to %s", ErrInvalidTransition, from, to)
	}
	return nil
}

// IsTerminal true для статусов без исходящих переходов
func (s AppointmentStatus) IsTerminal() bool {
	return len(transitions[s]) == 0
}
