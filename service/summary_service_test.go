package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"review-explorer/api/places"
	"review-explorer/apperrors"
	"review-explorer/logger"
	"review-explorer/models"
)

type fakeSummaryAPI struct {
	text     string
	err      error
	requests []models.SummaryWebhookRequest
}

func (f *fakeSummaryAPI) Summarize(ctx context.Context, request models.SummaryWebhookRequest) (string, error) {
	f.requests = append(f.requests, request)
	return f.text, f.err
}

func intPtr(v int) *int { return &v }

func googlePlace() *models.Place {
	return &models.Place{
		ID:              "g1",
		Name:            "Luigi's",
		Rating:          4.6,
		UserRatingCount: intPtr(321),
		GoogleReviewSummary: &models.GoogleReviewSummary{
			Text:           "People love the pasta.",
			LanguageCode:   "en",
			DisclosureText: "Summarized with Gemini",
			ReviewsURI:     "https://maps.google.com/reviews",
			FlagContentURI: "https://maps.google.com/flag",
		},
	}
}

func TestSummarize_PrefersGoogleNativeSummary(t *testing.T) {
	webhook := &fakeSummaryAPI{text: "webhook text"}
	svc := NewSummaryService(webhook, nil, "en", logger.Discard())

	summary, err := svc.Summarize(context.Background(), googlePlace())

	require.NoError(t, err)
	assert.Equal(t, models.SummarySourceGoogle, summary.Source)
	assert.Equal(t, "People love the pasta.", summary.SentimentSummary)
	assert.Equal(t, 321, summary.TotalReviews)
	require.NotNil(t, summary.Attribution)
	assert.Equal(t, "Summarized with Gemini", summary.Attribution.DisclosureText)
	assert.Empty(t, webhook.requests)
}

func TestSummarize_WebhookTextIsCleaned(t *testing.T) {
	webhook := &fakeSummaryAPI{text: "**Great** food\n\n\n\nFriendly staff"}
	svc := NewSummaryService(webhook, nil, "en", logger.Discard())
	ratingCount := 140
	place := &models.Place{
		ID: "w1", Name: "Diner", Address: "1 Main St", Rating: 4.1,
		UserRatingCount: &ratingCount,
		Reviews:         []models.Review{{ID: "r1", AuthorName: "Ann"}, {ID: "r2"}},
	}

	summary, err := svc.Summarize(context.Background(), place)

	require.NoError(t, err)
	assert.Equal(t, models.SummarySourceWebhook, summary.Source)
	assert.Equal(t, "Great food\n\nFriendly staff", summary.SentimentSummary)
	assert.Equal(t, 4.1, summary.OverallRating)
	assert.Equal(t, 140, summary.TotalReviews)

	require.Len(t, webhook.requests, 1)
	req := webhook.requests[0]
	assert.Equal(t, "w1", req.PlaceID)
	assert.Equal(t, "1 Main St", req.PlaceAddress)
	// The webhook is told how many reviews it received.
	assert.Equal(t, 2, req.ReviewCount)
	require.Len(t, req.Reviews, 2)
	assert.Equal(t, "Ann", req.Reviews[0].AuthorName)
	assert.Equal(t, "en", req.Language)
}

func TestSummarize_DemoSummaryForCatalogPlaces(t *testing.T) {
	mock, err := places.NewPlacesApiClientMock()
	require.NoError(t, err)
	svc := NewSummaryService(nil, mock, "en", logger.Discard())

	summary, err := svc.Summarize(context.Background(), &models.Place{ID: "1", Name: "Ristorante Italiano"})

	require.NoError(t, err)
	assert.Equal(t, models.SummarySourceDemo, summary.Source)
	assert.NotEmpty(t, summary.Recommendation)
}

func TestSummarize_Unavailable(t *testing.T) {
	mock, err := places.NewPlacesApiClientMock()
	require.NoError(t, err)

	tests := []struct {
		name    string
		webhook *fakeSummaryAPI
	}{
		{"no sources", nil},
		{"webhook failure", &fakeSummaryAPI{err: errors.New("bad gateway")}},
		{"webhook empty text", &fakeSummaryAPI{text: " ** "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var svc *SummaryService
			if tt.webhook == nil {
				svc = NewSummaryService(nil, mock, "en", logger.Discard())
			} else {
				svc = NewSummaryService(tt.webhook, mock, "en", logger.Discard())
			}

			summary, err := svc.Summarize(context.Background(), &models.Place{ID: "not-in-catalog"})

			assert.Nil(t, summary)
			assert.ErrorIs(t, err, ErrSummaryUnavailable)
			assert.ErrorIs(t, err, apperrors.ErrUnavailable)
		})
	}
}
