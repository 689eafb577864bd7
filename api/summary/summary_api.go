package summary

import (
	"context"

	"review-explorer/models"
)

// SummaryAPI generates AI review summaries for a place
type SummaryAPI interface {
	// Summarize returns the raw AI text for the request.
	Summarize(ctx context.Context, request models.SummaryWebhookRequest) (string, error)
}
