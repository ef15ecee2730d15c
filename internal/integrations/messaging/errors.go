package messaging

import "errors"

var (
	// ErrRecipientRejected возвращается, когда шлюз отклонил адресата (нет email/телефона)
	ErrRecipientRejected = errors.New("messaging client: recipient rejected")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("messaging client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от шлюза
	ErrInvalidResponse = errors.New("messaging client: invalid response")
)
