package notifier

import "errors"

var (
	// ErrPublish возвращается, когда событие не удалось записать в Kafka
	ErrPublish = errors.New("notifier: failed to publish event")

	// ErrMarshal возвращается при ошибке сериализации события
	ErrMarshal = errors.New("notifier: failed to marshal event")

	// ErrStore возвращается, когда in-app уведомление не удалось сохранить
	ErrStore = errors.New("notifier: failed to store in-app notification")

	// ErrDelivery возвращается диспетчером, если хотя бы один канал не доставил уведомление
	ErrDelivery = errors.New("notifier: delivery failed")
)
