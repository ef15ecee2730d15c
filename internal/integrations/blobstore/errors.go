package blobstore

import "errors"

var (
	// ErrInvalidPath возвращается, когда папка или public ID выходят за пределы хранилища
	ErrInvalidPath = errors.New("blobstore: invalid path")

	// ErrBlobNotFound возвращается, когда файла нет в хранилище
	ErrBlobNotFound = errors.New("blobstore: blob not found")

	// ErrWrite возвращается при ошибке записи файла
	ErrWrite = errors.New("blobstore: failed to write blob")

	// ErrDelete возвращается при ошибке удаления файла
	ErrDelete = errors.New("blobstore: failed to delete blob")
)
