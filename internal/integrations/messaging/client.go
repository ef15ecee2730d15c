package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/GovAppointmentService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент шлюза email/SMS рассылок
type Client struct {
	baseURL    string
	channel    domain.NotificationChannel
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента шлюза.
// transport может быть nil, тогда используется http.DefaultTransport.
func NewClient(baseURL string, channel domain.NotificationChannel, timeout time.Duration, transport http.RoundTripper, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		channel: channel,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		log: log,
	}
}

// Send отправляет уведомление через шлюз
func (c *Client) Send(ctx context.Context, n domain.Notification) error {
	msg := Message{
		UserID:        n.UserID,
		AppointmentID: n.AppointmentID,
		Channel:       string(c.channel),
		Subject:       n.Title,
		Body:          n.Message,
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal message: %v", ErrInternal, err)
	}

	url := fmt.Sprintf("%s/internal/messages", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK, http.StatusAccepted, http.StatusCreated:
		// Продолжаем обработку
	case http.StatusUnprocessableEntity, http.StatusNotFound:
		return fmt.Errorf("%w: user_id=%d channel=%s", ErrRecipientRejected, n.UserID, c.channel)
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	var sent SendResponse
	if err := json.NewDecoder(resp.Body).Decode(&sent); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	c.log.Info("messaging: %s sent to user_id=%d, message_id=%s", c.channel, n.UserID, sent.MessageID)
	return nil
}
