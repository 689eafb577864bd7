package summary

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"review-explorer/api"
	"review-explorer/apperrors"
	"review-explorer/models"
	"review-explorer/normalizer"
)

// WebhookClient posts review summary requests to an external workflow webhook
type WebhookClient struct {
	*api.HTTPClient
	logger *slog.Logger
}

// NewWebhookClient creates a client whose base URL is the full webhook URL.
func NewWebhookClient(httpClient *api.HTTPClient, log *slog.Logger) *WebhookClient {
	if log == nil {
		log = slog.Default()
	}
	return &WebhookClient{HTTPClient: httpClient, logger: log}
}

// Summarize posts the place and its reviews and extracts the first text output.
func (c *WebhookClient) Summarize(ctx context.Context, request models.SummaryWebhookRequest) (string, error) {
	if request.Reviews == nil {
		request.Reviews = []models.WebhookReview{}
	}

	body, err := c.RequestRaw(ctx, http.MethodPost, "", nil, request)
	if err != nil {
		c.logger.WarnContext(ctx, "summary webhook failed",
			slog.String("place_id", request.PlaceID),
			slog.String("error", err.Error()),
		)
		return "", fmt.Errorf("summary webhook: %w: %w", apperrors.ErrProviderFailure, err)
	}

	return normalizer.DecodeWebhookText(body)
}
