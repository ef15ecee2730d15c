package types

import (
	"errors"
	"fmt"
	"time"
)

const (
	timeLayout = "15:04"
	endOfDay   = TimeString("24:00")
)

// ErrInvalidTimeString некорректный формат времени
var ErrInvalidTimeString = errors.New("invalid time string format")

// TimeString время суток в формате HH:MM
type TimeString string

// NewTimeString берёт часы и минуты из t
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString парсит и валидирует строку HH:MM
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// Validate проверяет формат HH:MM, допускается 24:00 как конец суток
func (t TimeString) Validate() error {
	_, err := t.Minutes()
	return err
}

func (t TimeString) IsZero() bool {
	return t == ""
}

func (t TimeString) String() string {
	return string(t)
}

// Minutes количество минут от начала суток
func (t TimeString) Minutes() (int, error) {
	if t == endOfDay {
		return 24 * 60, nil
	}
	if len(t) != len(timeLayout) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	parsed, err := time.Parse(timeLayout, string(t))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// AddMinutes сдвигает время; результат должен остаться в пределах суток
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	m, err := t.Minutes()
	if err != nil {
		return "", err
	}
	total := m + minutes
	if total < 0 || total > 24*60 {
		return "", fmt.Errorf("%w: %s%+d minutes is out of day", ErrInvalidTimeString, t, minutes)
	}
	if total == 24*60 {
		return endOfDay, nil
	}
	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

func (t TimeString) IsBefore(other TimeString) bool {
	a, errA := t.Minutes()
	b, errB := other.Minutes()
	return errA == nil && errB == nil && a < b
}

func (t TimeString) IsAfter(other TimeString) bool {
	return other.IsBefore(t)
}

// On возвращает момент времени t в день date (в локации date)
func (t TimeString) On(date time.Time) (time.Time, error) {
	m, err := t.Minutes()
	if err != nil {
		return time.Time{}, err
	}
	y, mo, d := date.Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, date.Location()).Add(time.Duration(m) * time.Minute), nil
}
