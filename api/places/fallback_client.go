package places

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"

	"review-explorer/apperrors"
	"review-explorer/metrics"
	"review-explorer/models"
	"review-explorer/normalizer"
)

// BreakerConfig holds configuration for the provider circuit breakers.
type BreakerConfig struct {
	// Name prefixes both breakers (used in metrics and logs).
	Name string

	// MaxRequests is the number of requests allowed in the half-open state.
	MaxRequests uint32

	// Interval is the cyclic period of the closed state for clearing counts.
	Interval time.Duration

	// Timeout is how long a breaker stays open before moving to half-open.
	Timeout time.Duration

	// FailureRatio trips the breaker once MinRequests have been seen.
	FailureRatio float64
	MinRequests  uint32
}

// DefaultBreakerConfig returns the defaults used in production.
func DefaultBreakerConfig(name string) BreakerConfig {
	return BreakerConfig{
		Name:         name,
		MaxRequests:  1,
		Interval:     60 * time.Second,
		Timeout:      30 * time.Second,
		FailureRatio: 0.5,
		MinRequests:  5,
	}
}

// FallbackPlacesClient answers from the demo catalog whenever the primary
// provider fails or its circuit is open.
type FallbackPlacesClient struct {
	primary             PlacesAPI
	mock                *PlacesApiClientMock
	autocompleteBreaker *gobreaker.CircuitBreaker[[]models.Place]
	detailsBreaker      *gobreaker.CircuitBreaker[*models.Place]
	logger              *slog.Logger
}

// NewFallbackPlacesClient wraps primary with circuit breakers and a mock fallback.
func NewFallbackPlacesClient(primary PlacesAPI, mock *PlacesApiClientMock, cfg BreakerConfig, log *slog.Logger) *FallbackPlacesClient {
	if log == nil {
		log = slog.Default()
	}
	return &FallbackPlacesClient{
		primary:             primary,
		mock:                mock,
		autocompleteBreaker: gobreaker.NewCircuitBreaker[[]models.Place](breakerSettings(cfg, cfg.Name+"-autocomplete", log)),
		detailsBreaker:      gobreaker.NewCircuitBreaker[*models.Place](breakerSettings(cfg, cfg.Name+"-details", log)),
		logger:              log,
	}
}

func breakerSettings(cfg BreakerConfig, name string, log *slog.Logger) gobreaker.Settings {
	metrics.BreakerState.WithLabelValues(name).Set(0)
	return gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= cfg.FailureRatio
		},
		// A payload without a usable place is the provider working correctly.
		IsSuccessful: func(err error) bool {
			return err == nil || normalizer.IsUnavailable(err) || errors.Is(err, apperrors.ErrInvalidInput)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warn("circuit breaker state change",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
			metrics.BreakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
	}
}

// stateToFloat maps gobreaker states to prometheus gauge values.
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// Autocomplete asks the primary provider and falls back to the catalog on any failure.
func (c *FallbackPlacesClient) Autocomplete(ctx context.Context, query, sessionToken string) ([]models.Place, error) {
	places, err := c.autocompleteBreaker.Execute(func() ([]models.Place, error) {
		return c.primary.Autocomplete(ctx, query, sessionToken)
	})
	if err == nil {
		return places, nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	c.fallingBack(ctx, "autocomplete", err)
	return c.mock.Autocomplete(ctx, query, sessionToken)
}

// GetPlaceDetails asks the primary provider and falls back to the catalog on failure.
// An unavailable payload is returned as is so the caller can keep the suggestion.
func (c *FallbackPlacesClient) GetPlaceDetails(ctx context.Context, placeID string) (*models.Place, error) {
	place, err := c.detailsBreaker.Execute(func() (*models.Place, error) {
		return c.primary.GetPlaceDetails(ctx, placeID)
	})
	if err == nil {
		return place, nil
	}
	if normalizer.IsUnavailable(err) || errors.Is(err, apperrors.ErrInvalidInput) {
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	c.fallingBack(ctx, "details", err)
	return c.mock.GetPlaceDetails(ctx, placeID)
}

// State returns the state of the named breaker ("autocomplete" or "details").
func (c *FallbackPlacesClient) State(operation string) gobreaker.State {
	if operation == "details" {
		return c.detailsBreaker.State()
	}
	return c.autocompleteBreaker.State()
}

func (c *FallbackPlacesClient) fallingBack(ctx context.Context, operation string, err error) {
	metrics.FallbackTotal.WithLabelValues(operation).Inc()
	attrs := []any{
		slog.String("operation", operation),
		slog.String("error", err.Error()),
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		attrs = append(attrs, slog.Bool("circuit_open", true))
	}
	c.logger.WarnContext(ctx, "google places unavailable, serving demo catalog", attrs...)
}
