package handlers

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"review-explorer/apperrors"
	services "review-explorer/service"
	"review-explorer/util"
)

const (
	QUERY_ARG    = "q"
	PLACE_ID_VAR = "id"
)

// SummaryResponse tells renderers whether to show a summary or a message.
type SummaryResponse struct {
	Available bool        `json:"available"`
	Summary   interface{} `json:"summary,omitempty"`
	Message   string      `json:"message,omitempty"`
}

type PlaceHandler struct {
	controllers ControllerSource
	summaries   *services.SummaryService
}

func NewPlaceHandler(controllers ControllerSource, summaries *services.SummaryService) *PlaceHandler {
	return &PlaceHandler{controllers: controllers, summaries: summaries}
}

// Autocomplete expects ?q={query}. Short queries return an empty list.
func (h *PlaceHandler) Autocomplete(w http.ResponseWriter, r *http.Request) {
	results, err := controllerFor(h.controllers, r).Search(r.Context(), r.URL.Query().Get(QUERY_ARG))
	if errors.Is(err, services.ErrStaleResponse) {
		WriteError(w, r, errStale)
		return
	}
	if err != nil {
		WriteError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, results)
}

// ClearSearch drops the results and ends the autocomplete session.
func (h *PlaceHandler) ClearSearch(w http.ResponseWriter, r *http.Request) {
	controllerFor(h.controllers, r).Clear()
	w.WriteHeader(http.StatusNoContent)
}

// Select loads the details of a search result and makes it the current place.
func (h *PlaceHandler) Select(w http.ResponseWriter, r *http.Request) {
	placeID := mux.Vars(r)[PLACE_ID_VAR]
	if placeID == "" {
		WriteError(w, r, apperrors.InvalidInput("place id is required"))
		return
	}

	result, err := controllerFor(h.controllers, r).Select(r.Context(), placeID)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, result)
}

func (h *PlaceHandler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	place, err := currentPlace(h.controllers, r)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, place)
}

// LeaveCurrent discards the current place.
func (h *PlaceHandler) LeaveCurrent(w http.ResponseWriter, r *http.Request) {
	controllerFor(h.controllers, r).Leave()
	w.WriteHeader(http.StatusNoContent)
}

// GetSummary answers 200 in both cases; a missing summary is not an error.
func (h *PlaceHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	place, err := currentPlace(h.controllers, r)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	summary, err := h.summaries.Summarize(r.Context(), &place)
	if errors.Is(err, apperrors.ErrUnavailable) {
		WriteJSON(w, http.StatusOK, SummaryResponse{Available: false, Message: services.SummaryUnavailableMessage})
		return
	}
	if err != nil {
		WriteError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, SummaryResponse{Available: true, Summary: summary})
}

// GetChart renders the star rating histogram of the current place.
func (h *PlaceHandler) GetChart(w http.ResponseWriter, r *http.Request) {
	place, err := currentPlace(h.controllers, r)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := util.PlotRatingHistogram(&buf, place); err != nil {
		WriteError(w, r, apperrors.Internal(err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
