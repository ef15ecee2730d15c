package notifier

import (
	"context"
	"fmt"

	"github.com/m04kA/GovAppointmentService/internal/domain"
)

// NotificationRepository хранилище in-app уведомлений
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
}

// InAppStore сохраняет уведомление в ленту пользователя
type InAppStore struct {
	repo NotificationRepository
}

func NewInAppStore(repo NotificationRepository) *InAppStore {
	return &InAppStore{repo: repo}
}

func (s *InAppStore) Send(ctx context.Context, n domain.Notification) error {
	n.Channel = domain.ChannelInApp
	if _, err := s.repo.Create(ctx, &n); err != nil {
		return fmt.Errorf("%w: %v", ErrStore, err)
	}
	return nil
}
