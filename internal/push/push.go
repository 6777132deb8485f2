package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/altynbek8/ServiceApp/internal/model"
	"github.com/altynbek8/ServiceApp/pkg/logger"
	"github.com/altynbek8/ServiceApp/pkg/messaging"
)

// Sender delivers one push notification to a device.
type Sender interface {
	Send(ctx context.Context, payload *model.PushPayload) error
}

// Consumer subscribes to the push channel and forwards payloads to the
// sender. Payloads without a device token are dropped; the in-app
// notification row already covers those users.
type Consumer struct {
	broker messaging.Broker
	sender Sender
	logger *logger.Logger
}

func NewConsumer(broker messaging.Broker, sender Sender, logger *logger.Logger) *Consumer {
	return &Consumer{broker: broker, sender: sender, logger: logger}
}

func (c *Consumer) Start(ctx context.Context) error {
	events, err := c.broker.Subscribe(ctx, model.EventTypePush)
	if err != nil {
		return fmt.Errorf("failed to subscribe to push channel: %w", err)
	}
	c.logger.Info("push consumer started")

	for {
		select {
		case <-ctx.Done():
			return nil
		case raw, ok := <-events:
			if !ok {
				return nil
			}
			c.handle(ctx, raw)
		}
	}
}

func (c *Consumer) handle(ctx context.Context, raw []byte) {
	var payload model.PushPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		c.logger.Error(err, "failed to decode push payload")
		return
	}
	if payload.PushToken == nil || *payload.PushToken == "" {
		return
	}

	if err := c.sender.Send(ctx, &payload); err != nil {
		c.logger.Error(err, "failed to deliver push", map[string]interface{}{
			"recipient_id": payload.RecipientID,
		})
	}
}

const expoPushURL = "https://exp.host/--/api/v2/push/send"

// ExpoSender posts to the Expo push gateway the mobile clients register
// their tokens with.
type ExpoSender struct {
	client *http.Client
	logger *logger.Logger
}

func NewExpoSender(logger *logger.Logger) *ExpoSender {
	return &ExpoSender{
		client: &http.Client{Timeout: 10 * time.Second},
		logger: logger,
	}
}

type expoMessage struct {
	To    string `json:"to"`
	Title string `json:"title"`
	Body  string `json:"body"`
	Sound string `json:"sound"`
}

func (s *ExpoSender) Send(ctx context.Context, payload *model.PushPayload) error {
	body, err := json.Marshal(expoMessage{
		To:    *payload.PushToken,
		Title: payload.Title,
		Body:  payload.Body,
		Sound: "default",
	})
	if err != nil {
		return fmt.Errorf("failed to encode expo message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, expoPushURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build expo request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call expo push api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("expo push api returned status %d", resp.StatusCode)
	}
	return nil
}
