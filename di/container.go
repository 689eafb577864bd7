package di

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"

	"review-explorer/api"
	"review-explorer/api/places"
	"review-explorer/api/summary"
	"review-explorer/config"
	"review-explorer/dao"
	"review-explorer/db"
	"review-explorer/server"
	"review-explorer/server/handlers"
	services "review-explorer/service"
)

// Container holds all application dependencies.
type Container struct {
	Config             *config.Config
	Logger             *slog.Logger
	StateClient        db.StateClient
	ClientStateDAO     *dao.ClientStateDAO
	PlacesMock         *places.PlacesApiClientMock
	PlacesAPI          places.PlacesAPI
	SummaryAPI         summary.SummaryAPI
	RateLimiter        *services.RateLimiter
	QuotaEnforced      bool
	SummaryService     *services.SummaryService
	ChatService        *services.ChatService
	ControllerRegistry *services.ControllerRegistry
	PlaceHandler       *handlers.PlaceHandler
	ChatHandler        *handlers.ChatHandler
	ClientHandler      *handlers.ClientHandler
	MuxRouter          *mux.Router
	Router             *server.Router
	HttpServer         *server.ReviewExplorerHttpServer

	memoryStore *db.MemoryStateClient
	closers     []func() error
}

// NewContainer initializes and wires up all dependencies.
func NewContainer(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Container, error) {
	log.Info("initializing container",
		slog.String("env", cfg.Environment),
		slog.String("state_store", cfg.StateStore),
		slog.Bool("places_configured", cfg.PlacesConfigured()),
		slog.Bool("summary_webhook_configured", cfg.SummaryWebhookConfigured()),
	)
	c := &Container{Config: cfg, Logger: log}

	// Initialize state client
	switch cfg.StateStore {
	case config.STATE_STORE_REDIS:
		redisInternalClient := goredis.NewClient(&goredis.Options{
			Addr:     cfg.RedisAddress,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		redisClient, err := db.NewRedisStateClient(ctx, redisInternalClient, log)
		if err != nil {
			_ = redisInternalClient.Close()
			return nil, err
		}
		c.StateClient = redisClient
		c.closers = append(c.closers, redisClient.Close)
	default:
		c.memoryStore = db.NewMemoryStateClient()
		c.StateClient = c.memoryStore
	}
	c.ClientStateDAO = dao.NewClientStateDAO(c.StateClient)

	// Initialize places api - mock catalog when no key is configured
	mock, err := places.NewPlacesApiClientMock()
	if err != nil {
		return nil, fmt.Errorf("load demo catalog: %w", err)
	}
	c.PlacesMock = mock
	c.RateLimiter = services.NewRateLimiter(c.ClientStateDAO, cfg.DailyDetailsLimit)

	if cfg.PlacesConfigured() {
		log.Info("using google places api")
		httpClient := api.NewHTTPClientWithTimeout(cfg.GooglePlacesURL, cfg.HTTPTimeout)
		googleClient := places.NewPlacesApiClient(httpClient, cfg.GoogleAPIKey, cfg.LanguageCode, log)

		breakerCfg := places.DefaultBreakerConfig("google-places")
		breakerCfg.Timeout = cfg.BreakerTimeout
		breakerCfg.MinRequests = cfg.BreakerMinRequests
		c.PlacesAPI = places.NewFallbackPlacesClient(googleClient, mock, breakerCfg, log)
		c.QuotaEnforced = true
	} else {
		log.Info("google places api key not configured, using demo catalog")
		c.PlacesAPI = mock
	}

	// Initialize summary sources
	if cfg.SummaryWebhookConfigured() {
		c.SummaryAPI = summary.NewWebhookClient(api.NewHTTPClientWithTimeout(cfg.SummaryWebhookURL, cfg.HTTPTimeout), log)
	}
	var demo *places.PlacesApiClientMock
	if !cfg.PlacesConfigured() {
		demo = mock
	}
	c.SummaryService = services.NewSummaryService(c.SummaryAPI, demo, cfg.LanguageCode, log)
	c.ChatService = services.NewChatService()

	c.ControllerRegistry = services.NewControllerRegistry(c.NewController, config.CONTROLLER_IDLE_TTL_MINUTES*time.Minute, log)

	// Initialize handlers
	c.PlaceHandler = handlers.NewPlaceHandler(c.ControllerRegistry, c.SummaryService)
	c.ChatHandler = handlers.NewChatHandler(c.ControllerRegistry, c.ChatService)
	c.ClientHandler = handlers.NewClientHandler(c.RateLimiter, c.QuotaEnforced, c.ClientStateDAO)

	// Initialize mux router
	c.MuxRouter = mux.NewRouter()
	c.Router = server.NewRouter(c.PlaceHandler, c.ChatHandler, c.ClientHandler, c.MuxRouter,
		server.Throttle(cfg.InboundRateLimit),
		server.ClientID(log),
		server.RequestLogger,
	)

	c.HttpServer = server.NewReviewExplorerHttpServer(c.Router, c.MuxRouter, cfg.HTTPAddress, cfg.ShutdownTimeout, log)

	return c, nil
}

// NewController builds the search controller for one client.
func (c *Container) NewController(clientID string) *services.SearchController {
	var limiter *services.RateLimiter
	if c.QuotaEnforced {
		limiter = c.RateLimiter
	}
	return services.NewSearchController(clientID, c.PlacesAPI, limiter, services.ControllerOptions{
		DebounceInterval: c.Config.DebounceInterval,
		DispatchTimeout:  c.Config.HTTPTimeout,
		Logger:           c.Logger,
	})
}

// StartBackground launches the idle controller janitor and, with the memory
// store, the sweeper for expired client state.
func (c *Container) StartBackground(ctx context.Context) {
	c.ControllerRegistry.StartJanitor(ctx, config.CONTROLLER_JANITOR_SCHEDULE_MINUTES*time.Minute)
	if c.memoryStore != nil {
		c.memoryStore.StartSweeper(ctx, config.STATE_SWEEP_SCHEDULE_MINUTES*time.Minute, c.Logger)
	}
}

// Close releases external connections.
func (c *Container) Close() error {
	var firstErr error
	for _, closeFn := range c.closers {
		if err := closeFn(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
