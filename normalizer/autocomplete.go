package normalizer

import (
	"review-explorer/models"
	"review-explorer/models/google"
)

// UnknownPlaceName labels a prediction without any display text.
const UnknownPlaceName = "Unknown"

// NormalizeAutocomplete converts autocomplete suggestions into places.
// Query predictions and predictions without a place id are skipped.
// Everything the autocomplete endpoint does not know is left at its
// explicit "unknown" value.
func NormalizeAutocomplete(resp *google.AutocompleteResponse) []models.Place {
	if resp == nil {
		return []models.Place{}
	}

	places := make([]models.Place, 0, len(resp.Suggestions))
	for _, suggestion := range resp.Suggestions {
		place, err := NormalizePrediction(suggestion.PlacePrediction)
		if err != nil {
			continue
		}
		places = append(places, place)
	}
	return places
}

// NormalizePrediction converts a single place prediction.
func NormalizePrediction(prediction *google.PlacePrediction) (models.Place, error) {
	if prediction == nil {
		return models.Place{}, unavailable("autocomplete", "suggestion has no place prediction")
	}
	if err := validate.Struct(prediction); err != nil {
		return models.Place{}, unavailable("autocomplete", "prediction has no place id")
	}

	name := UnknownPlaceName
	address := ""
	if sf := prediction.StructuredFormat; sf != nil {
		if sf.MainText != nil && sf.MainText.Text != "" {
			name = sf.MainText.Text
		}
		if sf.SecondaryText != nil {
			address = sf.SecondaryText.Text
		}
	}
	if name == UnknownPlaceName && prediction.Text != nil && prediction.Text.Text != "" {
		name = prediction.Text.Text
	}

	return models.Place{
		ID:         prediction.PlaceID,
		Name:       name,
		Address:    address,
		Type:       ClassifyTypes(prediction.Types),
		Rating:     0,
		PriceLevel: PriceLevelUnknown,
		Location:   models.Location{},
		IsOpen:     true,
		Reviews:    []models.Review{},
	}, nil
}
