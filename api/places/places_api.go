package places

import (
	"context"

	"review-explorer/models"
)

// PlacesAPI defines the interface for looking up places and their reviews
type PlacesAPI interface {
	// Autocomplete returns normalized suggestions for a partial query.
	// The session token groups keystrokes into one billable session.
	Autocomplete(ctx context.Context, query, sessionToken string) ([]models.Place, error)
	// GetPlaceDetails returns the full place, including reviews.
	GetPlaceDetails(ctx context.Context, placeID string) (*models.Place, error)
}
