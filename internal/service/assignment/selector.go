package assignment

import (
	"time"

	"github.com/m04kA/GovAppointmentService/internal/domain"
)

// Candidate офицер и его занятость на день приёма
type Candidate struct {
	Officer  *domain.Officer
	DayLoad  int
	Conflict bool
}

// BuildCandidates считает нагрузку и конфликты офицеров относительно target.
// Нагрузка: неотменённые приёмы в календарный день target в его часовом поясе.
// Конфликт: незавершённый приём в окне [target-30m, target+30m).
func BuildCandidates(officers []*domain.Officer, appointments []*domain.Appointment, target time.Time) []Candidate {
	dayStart, dayEnd := dayBounds(target)
	windowStart := target.Add(-domain.OfficerConflictWindow)
	windowEnd := target.Add(domain.OfficerConflictWindow)

	index := make(map[int64]int, len(officers))
	candidates := make([]Candidate, len(officers))
	for i, o := range officers {
		candidates[i] = Candidate{Officer: o}
		index[o.ID] = i
	}

	for _, a := range appointments {
		if a.OfficerID == nil {
			continue
		}
		i, ok := index[*a.OfficerID]
		if !ok {
			continue
		}

		at := a.AppointmentDate
		if a.CountsTowardLoad() && !at.Before(dayStart) && at.Before(dayEnd) {
			candidates[i].DayLoad++
		}
		if a.BlocksOfficer() && !at.Before(windowStart) && at.Before(windowEnd) {
			candidates[i].Conflict = true
		}
	}

	return candidates
}

// SelectOfficer выбирает наименее загруженного офицера без конфликта.
// Если свободных нет, выбирает наименее загруженного среди всех (допускается наложение).
// При равной нагрузке побеждает меньший ID. nil, если кандидатов нет.
func SelectOfficer(candidates []Candidate) *domain.Officer {
	var free, fallback *Candidate
	for i := range candidates {
		c := &candidates[i]
		if !c.Conflict && better(c, free) {
			free = c
		}
		if better(c, fallback) {
			fallback = c
		}
	}

	switch {
	case free != nil:
		return free.Officer
	case fallback != nil:
		return fallback.Officer
	default:
		return nil
	}
}

func better(c, best *Candidate) bool {
	if best == nil {
		return true
	}
	if c.DayLoad != best.DayLoad {
		return c.DayLoad < best.DayLoad
	}
	return c.Officer.ID < best.Officer.ID
}

func dayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}
