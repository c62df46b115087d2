package cloud

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// ErrNoWebhookURL means the webhook sink was selected without a URL.
var ErrNoWebhookURL = errors.New("webhook sink URL missing")

// WebhookSink POSTs the observation document to an ingestion endpoint
// (e.g. a spreadsheet webhook). The endpoint gives no readable response;
// the response body is never inspected.
type WebhookSink struct {
	httpClient *resty.Client
	url        string
	logger     *zap.Logger
}

func NewWebhookSink(url string, logger *zap.Logger) *WebhookSink {
	client := resty.New().
		SetTimeout(15 * time.Second).
		SetHeader("Content-Type", "application/json")

	return &WebhookSink{
		httpClient: client,
		url:        url,
		logger:     logger,
	}
}

// Send delivers one payload. Only transport-level failures count as errors;
// the sink is opaque, so any completed exchange is success regardless of
// response content.
func (s *WebhookSink) Send(ctx context.Context, payload ObservationPayload) error {
	if s.url == "" {
		return ErrNoWebhookURL
	}

	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetBody(payload).
		Post(s.url)
	if err != nil {
		return fmt.Errorf("failed to post observation: %w", err)
	}

	s.logger.Debug("observation posted",
		zap.String("badge", payload.Badge),
		zap.Int("status_code", resp.StatusCode()),
	)
	return nil
}
