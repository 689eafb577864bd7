package server

import (
	"net/http"

	"github.com/gorilla/mux"

	"review-explorer/apperrors"
	"review-explorer/metrics"
)

var errThrottled = &apperrors.AppError{
	Code:    "RATE_LIMITED",
	Message: "too many requests",
	Status:  http.StatusTooManyRequests,
}

type PlaceHandler interface {
	Autocomplete(w http.ResponseWriter, r *http.Request)
	ClearSearch(w http.ResponseWriter, r *http.Request)
	Select(w http.ResponseWriter, r *http.Request)
	GetCurrent(w http.ResponseWriter, r *http.Request)
	LeaveCurrent(w http.ResponseWriter, r *http.Request)
	GetSummary(w http.ResponseWriter, r *http.Request)
	GetChart(w http.ResponseWriter, r *http.Request)
}

type ChatHandler interface {
	GetGreeting(w http.ResponseWriter, r *http.Request)
	PostMessage(w http.ResponseWriter, r *http.Request)
}

type ClientHandler interface {
	Ping(w http.ResponseWriter, r *http.Request)
	GetQuota(w http.ResponseWriter, r *http.Request)
	GetConsent(w http.ResponseWriter, r *http.Request)
	PostConsent(w http.ResponseWriter, r *http.Request)
}

type Router struct {
	placeHandler  PlaceHandler
	chatHandler   ChatHandler
	clientHandler ClientHandler
	router        *mux.Router
	middlewares   []mux.MiddlewareFunc
}

// NewRouter creates a router with the app’s routes.
func NewRouter(
	placeHandler PlaceHandler,
	chatHandler ChatHandler,
	clientHandler ClientHandler,
	router *mux.Router,
	middlewares ...mux.MiddlewareFunc) *Router {
	return &Router{
		placeHandler:  placeHandler,
		chatHandler:   chatHandler,
		clientHandler: clientHandler,
		router:        router,
		middlewares:   middlewares,
	}
}

func (r *Router) RegisterRoutes() {
	r.router.Handle("/metrics", metrics.Handler()).Methods("GET")
	r.router.HandleFunc("/ping", r.clientHandler.Ping).Methods("GET")

	api := r.router.PathPrefix("/v1").Subrouter()
	api.Use(r.middlewares...)

	// expects ?q={query}
	api.HandleFunc("/places/autocomplete", r.placeHandler.Autocomplete).Methods("GET")
	api.HandleFunc("/places/autocomplete", r.placeHandler.ClearSearch).Methods("DELETE")

	api.HandleFunc("/places/current", r.placeHandler.GetCurrent).Methods("GET")
	api.HandleFunc("/places/current", r.placeHandler.LeaveCurrent).Methods("DELETE")
	api.HandleFunc("/places/current/summary", r.placeHandler.GetSummary).Methods("GET")
	api.HandleFunc("/places/current/chart", r.placeHandler.GetChart).Methods("GET")
	api.HandleFunc("/places/current/chat", r.chatHandler.GetGreeting).Methods("GET")
	api.HandleFunc("/places/current/chat", r.chatHandler.PostMessage).Methods("POST")

	api.HandleFunc("/places/{id}/select", r.placeHandler.Select).Methods("POST")

	api.HandleFunc("/quota", r.clientHandler.GetQuota).Methods("GET")
	api.HandleFunc("/consent", r.clientHandler.GetConsent).Methods("GET")
	api.HandleFunc("/consent", r.clientHandler.PostConsent).Methods("POST")
}
