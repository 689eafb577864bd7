package places

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"review-explorer/api"
	"review-explorer/apperrors"
	"review-explorer/config"
	"review-explorer/logger"
	"review-explorer/metrics"
	"review-explorer/models"
	"review-explorer/models/google"
	"review-explorer/normalizer"
)

const (
	autocompletePath = "/places:autocomplete"
	placeDetailsPath = "/places/"

	apiKeyHeader    = "X-Goog-Api-Key"
	fieldMaskHeader = "X-Goog-FieldMask"
)

// PlacesApiClient talks to the Google Places API (v1)
type PlacesApiClient struct {
	*api.HTTPClient
	apiKey       string
	languageCode string
	logger       *slog.Logger
}

// NewPlacesApiClient creates a new instance of PlacesApiClient
func NewPlacesApiClient(httpClient *api.HTTPClient, apiKey, languageCode string, log *slog.Logger) *PlacesApiClient {
	if log == nil {
		log = slog.Default()
	}
	return &PlacesApiClient{
		HTTPClient:   httpClient,
		apiKey:       apiKey,
		languageCode: languageCode,
		logger:       log,
	}
}

// Autocomplete requests suggestions restricted to the configured primary types.
func (c *PlacesApiClient) Autocomplete(ctx context.Context, query, sessionToken string) ([]models.Place, error) {
	if c.apiKey == "" {
		return nil, apperrors.ErrMissingAPIKey
	}

	body := google.AutocompleteRequest{
		Input:                query,
		SessionToken:         sessionToken,
		LanguageCode:         c.languageCode,
		IncludedPrimaryTypes: config.IncludedPrimaryTypes,
	}
	headers := map[string]string{apiKeyHeader: c.apiKey}

	var response google.AutocompleteResponse
	if err := c.call(ctx, "autocomplete", http.MethodPost, autocompletePath, headers, body, &response); err != nil {
		return nil, err
	}
	return normalizer.NormalizeAutocomplete(&response), nil
}

// GetPlaceDetails fetches one place with the details field mask.
func (c *PlacesApiClient) GetPlaceDetails(ctx context.Context, placeID string) (*models.Place, error) {
	if c.apiKey == "" {
		return nil, apperrors.ErrMissingAPIKey
	}
	if placeID == "" {
		return nil, apperrors.InvalidInput("place id is required")
	}

	endpoint := placeDetailsPath + url.PathEscape(placeID)
	if c.languageCode != "" {
		endpoint += "?languageCode=" + url.QueryEscape(c.languageCode)
	}
	headers := map[string]string{
		apiKeyHeader:    c.apiKey,
		fieldMaskHeader: config.GOOGLE_PLACES_DETAILS_FIELD_MASK,
	}

	var response google.PlaceDetails
	if err := c.call(ctx, "details", http.MethodGet, endpoint, headers, nil, &response); err != nil {
		return nil, err
	}
	return normalizer.NormalizePlaceDetails(&response)
}

func (c *PlacesApiClient) call(ctx context.Context, operation, method, endpoint string, headers map[string]string, body, response interface{}) error {
	start := time.Now()
	err := c.Request(ctx, method, endpoint, headers, body, response)
	metrics.ProviderDurationMs.WithLabelValues(operation).Observe(float64(time.Since(start).Milliseconds()))

	if err == nil {
		metrics.ProviderRequestsTotal.WithLabelValues(operation, "ok").Inc()
		return nil
	}

	outcome := "error"
	var statusErr *api.StatusError
	if errors.As(err, &statusErr) {
		outcome = strconv.Itoa(statusErr.StatusCode)
	}
	metrics.ProviderRequestsTotal.WithLabelValues(operation, outcome).Inc()

	c.logger.WarnContext(ctx, "google places request failed",
		slog.String("operation", operation),
		slog.String("api_key", logger.RedactKey(c.apiKey)),
		slog.String("error", err.Error()),
	)
	return fmt.Errorf("google places %s: %w: %w", operation, apperrors.ErrProviderFailure, err)
}
