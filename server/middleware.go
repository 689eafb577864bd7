package server

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"review-explorer/logger"
	"review-explorer/metrics"
	"review-explorer/server/handlers"
)

const (
	CLIENT_ID_HEADER = "X-Client-ID"
	CLIENT_ID_COOKIE = "client_id"

	// One year, like the consent flag it backs.
	clientIDCookieMaxAge = 365 * 24 * 60 * 60
)

// ClientID identifies the caller by header or cookie and issues a new
// cookie when neither is present. The id and a request scoped logger are
// stored in the request context.
func ClientID(base *slog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientID := r.Header.Get(CLIENT_ID_HEADER)
			if clientID == "" {
				if cookie, err := r.Cookie(CLIENT_ID_COOKIE); err == nil {
					clientID = cookie.Value
				}
			}
			if clientID == "" {
				clientID = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     CLIENT_ID_COOKIE,
					Value:    clientID,
					Path:     "/",
					MaxAge:   clientIDCookieMaxAge,
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := logger.WithClientID(r.Context(), clientID)
			ctx = logger.NewContext(ctx, base.With(slog.String("client_id", clientID)))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Throttle rejects requests above qps with 429.
func Throttle(qps float64) mux.MiddlewareFunc {
	burst := int(qps)
	if burst < 1 {
		burst = 1
	}
	limiter := rate.NewLimiter(rate.Limit(qps), burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				metrics.ThrottledTotal.Inc()
				handlers.WriteError(w, r, errThrottled)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// RequestLogger logs every request and counts it by route template.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		route := r.URL.Path
		if current := mux.CurrentRoute(r); current != nil {
			if tpl, err := current.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		metrics.HTTPRequestsTotal.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()

		logger.FromContext(r.Context()).InfoContext(r.Context(), "http request",
			slog.String("method", r.Method),
			slog.String("route", route),
			slog.Int("status", rec.status),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
	})
}
