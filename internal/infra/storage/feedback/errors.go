package feedback

import "errors"

var (
	// ErrFeedbackExists возвращается, когда пользователь уже оставил отзыв по приёму
	ErrFeedbackExists = errors.New("feedback.repository: feedback already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("feedback.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("feedback.repository: failed to execute query")
)
