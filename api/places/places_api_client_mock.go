package places

import (
	"context"
	"strings"

	"review-explorer/apperrors"
	"review-explorer/models"
	"review-explorer/util"
)

// PlacesApiClientMock serves the bundled demo catalog
type PlacesApiClientMock struct {
	catalog *models.MockCatalog
}

// NewPlacesApiClientMock creates a mock backed by the embedded catalog.
func NewPlacesApiClientMock() (*PlacesApiClientMock, error) {
	catalog, err := util.ReadMockCatalog()
	if err != nil {
		return nil, err
	}
	return NewPlacesApiClientMockWithCatalog(catalog), nil
}

// NewPlacesApiClientMockWithCatalog creates a mock backed by the given catalog.
func NewPlacesApiClientMockWithCatalog(catalog *models.MockCatalog) *PlacesApiClientMock {
	return &PlacesApiClientMock{catalog: catalog}
}

// Autocomplete matches the query case-insensitively against name, type and address.
func (c *PlacesApiClientMock) Autocomplete(ctx context.Context, query, sessionToken string) ([]models.Place, error) {
	needle := strings.ToLower(strings.TrimSpace(query))

	results := make([]models.Place, 0, len(c.catalog.Places))
	for _, place := range c.catalog.Places {
		if strings.Contains(strings.ToLower(place.Name), needle) ||
			strings.Contains(strings.ToLower(place.Type), needle) ||
			strings.Contains(strings.ToLower(place.Address), needle) {
			results = append(results, clonePlace(place))
		}
	}
	return results, nil
}

// GetPlaceDetails returns the catalog place with the given id.
func (c *PlacesApiClientMock) GetPlaceDetails(ctx context.Context, placeID string) (*models.Place, error) {
	for _, place := range c.catalog.Places {
		if place.ID == placeID {
			p := clonePlace(place)
			return &p, nil
		}
	}
	return nil, apperrors.NotFound("place", placeID)
}

// HasPlace reports whether the id belongs to the demo catalog.
func (c *PlacesApiClientMock) HasPlace(placeID string) bool {
	for _, place := range c.catalog.Places {
		if place.ID == placeID {
			return true
		}
	}
	return false
}

// ReviewSummary returns the demo summary shown for catalog places.
func (c *PlacesApiClientMock) ReviewSummary() models.ReviewSummary {
	summary := c.catalog.ReviewSummary
	summary.Pros = append([]string(nil), summary.Pros...)
	summary.Cons = append([]string(nil), summary.Cons...)
	summary.KeyThemes = append([]string(nil), summary.KeyThemes...)
	summary.Source = models.SummarySourceDemo
	return summary
}

// clonePlace copies the review slice so callers cannot mutate the catalog.
func clonePlace(place models.Place) models.Place {
	place.Reviews = append([]models.Review{}, place.Reviews...)
	return place
}
