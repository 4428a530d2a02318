package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ishitasahu1112-gif/PrettyYou-Website/models"
)

// decisionPayload is the webhook body contract; field names match what the
// email automation on the other end expects.
type decisionPayload struct {
	OrderID       string  `json:"orderId"`
	Status        string  `json:"status"`
	CustomerEmail string  `json:"customerEmail"`
	CustomerName  string  `json:"customerName"`
	AdminComment  string  `json:"adminComment"`
	TotalAmount   float64 `json:"totalAmount"`
}

// EmailWebhook posts decided orders to an external automation that sends
// the customer email. Calls are bounded by the configured timeout and their
// failure is swallowed by the caller; nothing here touches system state.
type EmailWebhook struct {
	url     string
	client  *http.Client
	timeout time.Duration
	logger  *zap.Logger
}

func NewEmailWebhook(url string, timeout time.Duration, logger *zap.Logger) *EmailWebhook {
	return &EmailWebhook{
		url:     url,
		client:  &http.Client{Timeout: timeout},
		timeout: timeout,
		logger:  logger,
	}
}

// SendDecision posts the decision payload. A missing URL disables email
// dispatch entirely.
func (w *EmailWebhook) SendDecision(ctx context.Context, order *models.Order) error {
	if w.url == "" {
		return nil
	}

	name := order.CustomerName
	if name == "" {
		name = "Customer"
	}

	body, err := json.Marshal(decisionPayload{
		OrderID:       order.ID,
		Status:        order.Status,
		CustomerEmail: order.CustomerEmail,
		CustomerName:  name,
		AdminComment:  order.AdminComment,
		TotalAmount:   order.TotalAmount,
	})
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook call: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	w.logger.Info("email webhook triggered",
		zap.String("order_id", order.ID),
		zap.String("status", order.Status),
	)
	return nil
}
