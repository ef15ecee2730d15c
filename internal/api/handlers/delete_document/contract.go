package delete_document

import "context"

type DocumentService interface {
	Delete(ctx context.Context, documentID, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
