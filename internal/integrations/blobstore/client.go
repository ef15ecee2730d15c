package blobstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// LocalStore хранит файлы на локальном диске и отдаёт их по baseURL
type LocalStore struct {
	dir     string
	baseURL string
	log     Logger
}

// NewLocalStore создает хранилище в каталоге dir
func NewLocalStore(dir, baseURL string, log Logger) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create root %s: %v", ErrWrite, dir, err)
	}
	return &LocalStore{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
		log:     log,
	}, nil
}

// Upload сохраняет файл под случайным именем с расширением исходного файла
func (s *LocalStore) Upload(ctx context.Context, data []byte, originalName, folder string) (*UploadResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	folder = strings.Trim(path.Clean("/"+filepath.ToSlash(folder)), "/")
	if strings.Contains(folder, "..") {
		return nil, fmt.Errorf("%w: folder %q", ErrInvalidPath, folder)
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	publicID := path.Join(folder, uuid.NewString()+ext)

	target, err := s.resolve(publicID)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return nil, fmt.Errorf("%w: mkdir: %v", ErrWrite, err)
	}

	tmp := target + ".part"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrWrite, publicID, err)
	}
	if err := os.Rename(tmp, target); err != nil {
		_ = os.Remove(tmp)
		return nil, fmt.Errorf("%w: rename %s: %v", ErrWrite, publicID, err)
	}

	s.log.Info("blobstore: stored %s (%d bytes)", publicID, len(data))

	return &UploadResult{
		PublicID: publicID,
		URL:      s.URL(publicID),
		Size:     int64(len(data)),
	}, nil
}

// Delete удаляет файл по public ID
func (s *LocalStore) Delete(ctx context.Context, publicID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	target, err := s.resolve(publicID)
	if err != nil {
		return err
	}

	if err := os.Remove(target); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrBlobNotFound, publicID)
		}
		return fmt.Errorf("%w: %s: %v", ErrDelete, publicID, err)
	}

	s.log.Info("blobstore: deleted %s", publicID)
	return nil
}

// URL публичный адрес файла
func (s *LocalStore) URL(publicID string) string {
	return s.baseURL + "/" + strings.TrimLeft(publicID, "/")
}

// resolve путь на диске; не даёт выйти за пределы корня хранилища
func (s *LocalStore) resolve(publicID string) (string, error) {
	clean := path.Clean("/" + filepath.ToSlash(publicID))
	if clean == "/" {
		return "", fmt.Errorf("%w: empty public id", ErrInvalidPath)
	}
	return filepath.Join(s.dir, filepath.FromSlash(clean)), nil
}
