package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"review-explorer/api/places"
	"review-explorer/apperrors"
	"review-explorer/config"
	"review-explorer/metrics"
	"review-explorer/models"
	"review-explorer/normalizer"
)

// ErrStaleResponse is returned when a newer search superseded this one.
var ErrStaleResponse = errors.New("autocomplete response superseded by a newer query")

// DetailsUnavailableNotice is shown when a selection falls back to the suggestion.
const DetailsUnavailableNotice = "Detailed information is not available for this place right now. Showing basic information."

// SelectResult is the outcome of selecting a search result.
type SelectResult struct {
	Place  models.Place `json:"place"`
	Notice string       `json:"notice,omitempty"`
}

// ResultsHandler receives results of debounced searches.
type ResultsHandler func(places []models.Place, err error)

// ControllerOptions configures a SearchController.
type ControllerOptions struct {
	DebounceInterval time.Duration
	DispatchTimeout  time.Duration
	Logger           *slog.Logger
	OnResults        ResultsHandler
}

// SearchController runs the search pipeline for a single client: session
// token, debounced autocomplete, quota gated selection and the current
// navigation place.
type SearchController struct {
	clientID  string
	placesAPI places.PlacesAPI
	limiter   *RateLimiter
	sessions  *SessionManager
	debouncer *Debouncer
	logger    *slog.Logger
	timeout   time.Duration
	onResults ResultsHandler

	mu         sync.Mutex
	results    []models.Place
	generation uint64
	current    *models.Place
}

// NewSearchController constructs a controller. A nil limiter disables the
// daily quota.
func NewSearchController(clientID string, placesAPI places.PlacesAPI, limiter *RateLimiter, opts ControllerOptions) *SearchController {
	if opts.DebounceInterval <= 0 {
		opts.DebounceInterval = 500 * time.Millisecond
	}
	if opts.DispatchTimeout <= 0 {
		opts.DispatchTimeout = 10 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	c := &SearchController{
		clientID:  clientID,
		placesAPI: placesAPI,
		limiter:   limiter,
		sessions:  NewSessionManager(),
		logger:    opts.Logger.With(slog.String("client_id", clientID)),
		timeout:   opts.DispatchTimeout,
		onResults: opts.OnResults,
		results:   []models.Place{},
	}
	c.debouncer = NewDebouncer(opts.DebounceInterval, config.SEARCH_MIN_QUERY_LENGTH, c.dispatch, c.clearFromTyping)
	return c
}

// ClientID returns the id of the client this controller serves.
func (c *SearchController) ClientID() string {
	return c.clientID
}

// Sessions exposes the session manager.
func (c *SearchController) Sessions() *SessionManager {
	return c.sessions
}

// QuotaEnforced reports whether selections count against the daily quota.
func (c *SearchController) QuotaEnforced() bool {
	return c.limiter != nil
}

// SetResultsHandler replaces the callback used by Type.
func (c *SearchController) SetResultsHandler(fn ResultsHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onResults = fn
}

// Search runs one autocomplete request for query. Queries shorter than the
// minimum length clear the results without a request.
func (c *SearchController) Search(ctx context.Context, query string) ([]models.Place, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < config.SEARCH_MIN_QUERY_LENGTH {
		c.clearResults()
		return []models.Place{}, nil
	}

	token := c.sessions.StartOrReuse()

	c.mu.Lock()
	c.generation++
	generation := c.generation
	c.mu.Unlock()

	results, err := c.placesAPI.Autocomplete(ctx, query, token)

	c.mu.Lock()
	defer c.mu.Unlock()
	if generation != c.generation {
		metrics.StaleResponsesTotal.Inc()
		return nil, ErrStaleResponse
	}
	if err != nil {
		return nil, fmt.Errorf("autocomplete %q: %w", query, err)
	}
	if results == nil {
		results = []models.Place{}
	}
	c.results = results
	return cloneResults(results), nil
}

// Type feeds one input change into the debouncer. Results arrive through
// the results handler.
func (c *SearchController) Type(query string) {
	// Results of a search started for earlier input are no longer wanted.
	c.mu.Lock()
	c.generation++
	c.mu.Unlock()
	c.debouncer.Update(query)
}

func (c *SearchController) dispatch(generation uint64, query string) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	results, err := c.Search(ctx, query)
	if errors.Is(err, ErrStaleResponse) || !c.debouncer.IsCurrent(generation) {
		return
	}
	c.deliver(results, err)
}

func (c *SearchController) clearFromTyping() {
	c.clearResults()
	c.deliver([]models.Place{}, nil)
}

func (c *SearchController) deliver(results []models.Place, err error) {
	c.mu.Lock()
	fn := c.onResults
	c.mu.Unlock()
	if fn != nil {
		fn(results, err)
	}
}

// Results returns the latest search results.
func (c *SearchController) Results() []models.Place {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneResults(c.results)
}

// Select ends the autocomplete session, spends one unit of quota and
// loads the full place. When details cannot be loaded the suggestion is
// used instead, with a notice.
func (c *SearchController) Select(ctx context.Context, placeID string) (SelectResult, error) {
	c.sessions.End()

	suggestion, hasSuggestion := c.findResult(placeID)

	if c.limiter != nil {
		if err := c.limiter.Acquire(ctx, c.clientID); err != nil {
			return SelectResult{}, err
		}
	}

	result := SelectResult{}
	place, err := c.placesAPI.GetPlaceDetails(ctx, placeID)
	switch {
	case err == nil:
		result.Place = *place
	case hasSuggestion && ctx.Err() == nil:
		c.logger.WarnContext(ctx, "place details unavailable, using suggestion",
			slog.String("place_id", placeID),
			slog.String("error", err.Error()),
		)
		result.Place = suggestion
		result.Notice = DetailsUnavailableNotice
	case normalizer.IsUnavailable(err):
		return SelectResult{}, apperrors.NotFound("place", placeID)
	default:
		return SelectResult{}, fmt.Errorf("place details %s: %w", placeID, err)
	}

	c.mu.Lock()
	current := result.Place
	c.current = &current
	c.mu.Unlock()

	return result, nil
}

// Current returns the place being viewed, if any.
func (c *SearchController) Current() (models.Place, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return models.Place{}, false
	}
	return *c.current, true
}

// Leave discards the current place.
func (c *SearchController) Leave() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = nil
}

// Clear cancels pending input, clears the results and ends the session.
func (c *SearchController) Clear() {
	c.debouncer.Stop()
	c.clearResults()
	c.sessions.End()
}

// Close stops background work.
func (c *SearchController) Close() {
	c.debouncer.Stop()
}

func (c *SearchController) clearResults() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.results = []models.Place{}
}

func (c *SearchController) findResult(placeID string) (models.Place, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range c.results {
		if p.ID == placeID {
			return p, true
		}
	}
	return models.Place{}, false
}

func cloneResults(results []models.Place) []models.Place {
	return append([]models.Place{}, results...)
}
