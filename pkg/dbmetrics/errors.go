package dbmetrics

import (
	"errors"

	"github.com/lib/pq"
)

const (
	pgUniqueViolation      pq.ErrorCode = "23505"
	pgCheckViolation       pq.ErrorCode = "23514"
	pgSerializationFailure pq.ErrorCode = "40001"
	pgDeadlockDetected     pq.ErrorCode = "40P01"
)

// IsConflict сообщает, является ли ошибка конфликтом сериализации или дедлоком
func IsConflict(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pgSerializationFailure || pqErr.Code == pgDeadlockDetected
	}
	return false
}

// IsUniqueViolation сообщает о нарушении уникальности; пустой constraint совпадает с любым
func IsUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pgUniqueViolation && (constraint == "" || pqErr.Constraint == constraint)
	}
	return false
}

// IsCheckViolation сообщает о нарушении CHECK-ограничения
func IsCheckViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pgCheckViolation && (constraint == "" || pqErr.Constraint == constraint)
	}
	return false
}
