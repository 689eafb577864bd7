// Package handlers implements the HTTP endpoints of the review explorer.
package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"review-explorer/apperrors"
	"review-explorer/logger"
	"review-explorer/models"
	services "review-explorer/service"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

var errNoCurrentPlace = &apperrors.AppError{
	Code:    "NO_PLACE_SELECTED",
	Message: "no place selected",
	Status:  http.StatusNotFound,
	Err:     apperrors.ErrNotFound,
}

var errStale = &apperrors.AppError{
	Code:    "STALE_RESPONSE",
	Message: "a newer search superseded this one",
	Status:  http.StatusConflict,
	Err:     services.ErrStaleResponse,
}

// ControllerSource hands out the per client search controller.
type ControllerSource interface {
	Get(clientID string) *services.SearchController
}

func controllerFor(source ControllerSource, r *http.Request) *services.SearchController {
	return source.Get(logger.ClientIDFromContext(r.Context()))
}

func currentPlace(source ControllerSource, r *http.Request) (models.Place, error) {
	place, ok := controllerFor(source, r).Current()
	if !ok {
		return models.Place{}, errNoCurrentPlace
	}
	return place, nil
}
