package handlers

import (
	"context"
	"net/http"

	"review-explorer/logger"
	services "review-explorer/service"
)

// ConsentStore persists the cookie notice acknowledgement.
type ConsentStore interface {
	HasConsent(ctx context.Context, clientID string) (bool, error)
	SetConsent(ctx context.Context, clientID string) error
}

// QuotaResponse is the remaining searches readout.
type QuotaResponse struct {
	Enforced  bool `json:"enforced"`
	Limit     int  `json:"limit"`
	Remaining int  `json:"remaining"`
}

// ConsentResponse reports the client's consent state.
type ConsentResponse struct {
	Accepted bool `json:"accepted"`
}

type ClientHandler struct {
	limiter  *services.RateLimiter
	enforced bool
	consent  ConsentStore
}

// NewClientHandler creates the handler. When enforced is false the quota
// readout reports the full limit.
func NewClientHandler(limiter *services.RateLimiter, enforced bool, consent ConsentStore) *ClientHandler {
	return &ClientHandler{limiter: limiter, enforced: enforced, consent: consent}
}

func (h *ClientHandler) Ping(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *ClientHandler) GetQuota(w http.ResponseWriter, r *http.Request) {
	limit := h.limiter.Limit()
	resp := QuotaResponse{Enforced: h.enforced, Limit: limit, Remaining: limit}

	if h.enforced {
		remaining, err := h.limiter.Remaining(r.Context(), logger.ClientIDFromContext(r.Context()))
		if err != nil {
			WriteError(w, r, err)
			return
		}
		resp.Remaining = remaining
	}
	WriteJSON(w, http.StatusOK, resp)
}

func (h *ClientHandler) GetConsent(w http.ResponseWriter, r *http.Request) {
	accepted, err := h.consent.HasConsent(r.Context(), logger.ClientIDFromContext(r.Context()))
	if err != nil {
		WriteError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, ConsentResponse{Accepted: accepted})
}

// PostConsent records that the client accepted the cookie notice.
func (h *ClientHandler) PostConsent(w http.ResponseWriter, r *http.Request) {
	if err := h.consent.SetConsent(r.Context(), logger.ClientIDFromContext(r.Context())); err != nil {
		WriteError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, ConsentResponse{Accepted: true})
}
