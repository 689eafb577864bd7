package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"review-explorer/apperrors"
	"review-explorer/logger"
)

// ErrorBody is the error member of an error response.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type dataEnvelope struct {
	Data interface{} `json:"data"`
}

type errorEnvelope struct {
	Error ErrorBody `json:"error"`
}

// WriteJSON writes data wrapped in {"data": ...}.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(dataEnvelope{Data: data}); err != nil {
		slog.Error("error encoding response", slog.String("error", err.Error()))
	}
}

// WriteError maps err to a status code and writes {"error": {...}}.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperrors.HTTPStatus(err)
	body := ErrorBody{Code: "INTERNAL_ERROR", Message: "an internal error occurred"}
	if status < http.StatusInternalServerError {
		body = ErrorBody{Code: statusCode(status), Message: err.Error()}
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		body = ErrorBody{Code: appErr.Code, Message: appErr.Message}
	}

	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.ErrorContext(r.Context(), "request failed", slog.String("error", err.Error()))
	} else {
		log.InfoContext(r.Context(), "request rejected", slog.Int("status", status), slog.String("error", err.Error()))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorEnvelope{Error: body})
}

// statusCode turns "Not Found" into "NOT_FOUND".
func statusCode(status int) string {
	return strings.ToUpper(strings.ReplaceAll(http.StatusText(status), " ", "_"))
}

// decodeJSON reads a JSON request body into dst and validates it.
func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.InvalidInput("malformed JSON body")
	}
	if err := validate.Struct(dst); err != nil {
		return apperrors.InvalidInput(err.Error())
	}
	return nil
}
