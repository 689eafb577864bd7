package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"review-explorer/api/places"
	"review-explorer/api/summary"
	"review-explorer/apperrors"
	"review-explorer/metrics"
	"review-explorer/models"
	"review-explorer/normalizer"
)

// SummaryUnavailableMessage explains why no summary is shown.
const SummaryUnavailableMessage = "AI summary is not available for this location. This feature is currently supported only in the United States, United Kingdom, Japan, Brazil, India, and select Latin American countries."

// ErrSummaryUnavailable marks a place without any AI summary source.
var ErrSummaryUnavailable = fmt.Errorf("AI summary not available for this place: %w", apperrors.ErrUnavailable)

// SummaryService picks the AI summary for a place: Google's native summary,
// then the webhook, then the demo summary for catalog places.
type SummaryService struct {
	webhook      summary.SummaryAPI
	demo         *places.PlacesApiClientMock
	languageCode string
	logger       *slog.Logger
}

// NewSummaryService constructs a SummaryService. A nil webhook or demo
// catalog disables that source.
func NewSummaryService(webhook summary.SummaryAPI, demo *places.PlacesApiClientMock, languageCode string, log *slog.Logger) *SummaryService {
	if log == nil {
		log = slog.Default()
	}
	return &SummaryService{
		webhook:      webhook,
		demo:         demo,
		languageCode: languageCode,
		logger:       log,
	}
}

// Summarize returns the summary for place or an error wrapping ErrSummaryUnavailable.
func (s *SummaryService) Summarize(ctx context.Context, place *models.Place) (*models.ReviewSummary, error) {
	if place == nil {
		return nil, apperrors.InvalidInput("no place selected")
	}

	if native, err := normalizer.NormalizeGoogleSummary(place); err == nil {
		metrics.SummaryOutcomesTotal.WithLabelValues(models.SummarySourceGoogle).Inc()
		return native, nil
	}

	if s.webhook != nil {
		generated, err := s.fromWebhook(ctx, place)
		if err == nil {
			metrics.SummaryOutcomesTotal.WithLabelValues(models.SummarySourceWebhook).Inc()
			return generated, nil
		}
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		s.logger.WarnContext(ctx, "webhook summary unavailable",
			slog.String("place_id", place.ID),
			slog.String("error", err.Error()),
		)
	}

	if s.demo != nil && s.demo.HasPlace(place.ID) {
		demo := s.demo.ReviewSummary()
		metrics.SummaryOutcomesTotal.WithLabelValues(models.SummarySourceDemo).Inc()
		return &demo, nil
	}

	metrics.SummaryOutcomesTotal.WithLabelValues("unavailable").Inc()
	return nil, ErrSummaryUnavailable
}

func (s *SummaryService) fromWebhook(ctx context.Context, place *models.Place) (*models.ReviewSummary, error) {
	text, err := s.webhook.Summarize(ctx, models.NewSummaryWebhookRequest(place, s.languageCode))
	if err != nil {
		return nil, err
	}
	return normalizer.NormalizeAIText(place, text)
}
