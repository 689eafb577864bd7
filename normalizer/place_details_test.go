package normalizer

import (
	"encoding/json"
	"testing"

	"review-explorer/models/google"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeDetails(t *testing.T, payload string) *google.PlaceDetails {
	t.Helper()
	var details google.PlaceDetails
	require.NoError(t, json.Unmarshal([]byte(payload), &details))
	return &details
}

func TestNormalizePlaceDetails_FullPayload(t *testing.T) {
	details := decodeDetails(t, `{
		"id": "ChIJ123",
		"displayName": {"text": "Ristorante Italiano", "languageCode": "en"},
		"formattedAddress": "123 Main Street, New York, NY",
		"types": ["point_of_interest", "food", "restaurant"],
		"rating": 4.3,
		"priceLevel": "PRICE_LEVEL_EXPENSIVE",
		"userRatingCount": 127,
		"location": {"latitude": 40.7128, "longitude": -74.006},
		"currentOpeningHours": {"openNow": false},
		"reviews": [{
			"name": "places/ChIJ123/reviews/r1",
			"relativePublishTimeDescription": "2 weeks ago",
			"rating": 5,
			"text": {"text": "Amazing food", "languageCode": "en"},
			"authorAttribution": {"displayName": "John Smith"},
			"publishTime": "2024-01-15T10:00:00Z"
		}],
		"reviewSummary": {
			"text": {"text": "People love the pasta.", "languageCode": "en-US"},
			"disclosureText": {"text": "Summarized with Gemini"},
			"reviewsUri": "https://maps.google.com/reviews",
			"flagContentUri": "https://maps.google.com/flag"
		}
	}`)

	place, err := NormalizePlaceDetails(details)
	require.NoError(t, err)

	assert.Equal(t, "ChIJ123", place.ID)
	assert.Equal(t, "Ristorante Italiano", place.Name)
	assert.Equal(t, "restaurant", place.Type)
	assert.Equal(t, 4.3, place.Rating)
	assert.Equal(t, 4, place.PriceLevel)
	assert.Equal(t, 40.7128, place.Location.Latitude)
	assert.False(t, place.IsOpen)
	require.NotNil(t, place.UserRatingCount)
	assert.Equal(t, 127, *place.UserRatingCount)

	require.Len(t, place.Reviews, 1)
	review := place.Reviews[0]
	assert.Equal(t, "places/ChIJ123/reviews/r1", review.ID)
	assert.Equal(t, "John Smith", review.AuthorName)
	assert.Equal(t, 5.0, review.Rating)
	assert.Equal(t, "Amazing food", review.Text)
	assert.Equal(t, "2024-01-15T10:00:00Z", review.Time)
	assert.Equal(t, "2 weeks ago", review.RelativeTimeDescription)

	require.NotNil(t, place.GoogleReviewSummary)
	assert.Equal(t, "People love the pasta.", place.GoogleReviewSummary.Text)
	assert.Equal(t, "en-US", place.GoogleReviewSummary.LanguageCode)
	assert.Equal(t, "Summarized with Gemini", place.GoogleReviewSummary.DisclosureText)
}

func TestNormalizePlaceDetails_Defaults(t *testing.T) {
	details := decodeDetails(t, `{"id": "abc", "displayName": {"text": "Somewhere"}}`)

	place, err := NormalizePlaceDetails(details)
	require.NoError(t, err)

	assert.Equal(t, DefaultPriceLevel, place.PriceLevel)
	assert.Equal(t, 2, place.PriceLevel)
	assert.True(t, place.IsOpen)
	assert.Equal(t, 0.0, place.Rating)
	assert.False(t, place.Location.IsKnown())
	assert.Equal(t, DefaultPlaceType, place.Type)
	assert.NotNil(t, place.Reviews)
	assert.Empty(t, place.Reviews)
	assert.Nil(t, place.UserRatingCount)
	assert.Nil(t, place.GoogleReviewSummary)
}

func TestNormalizePlaceDetails_OpeningHoursWithoutFlag(t *testing.T) {
	details := decodeDetails(t, `{"id": "abc", "displayName": {"text": "X"}, "currentOpeningHours": {}}`)

	place, err := NormalizePlaceDetails(details)
	require.NoError(t, err)
	assert.True(t, place.IsOpen)
}

func TestNormalizePlaceDetails_Unavailable(t *testing.T) {
	tests := []struct {
		name    string
		details *google.PlaceDetails
	}{
		{"nil payload", nil},
		{"missing id", &google.PlaceDetails{DisplayName: &google.LocalizedText{Text: "X"}}},
		{"missing display name", &google.PlaceDetails{ID: "abc"}},
		{"empty display name", &google.PlaceDetails{ID: "abc", DisplayName: &google.LocalizedText{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			place, err := NormalizePlaceDetails(tt.details)
			assert.Nil(t, place)
			assert.True(t, IsUnavailable(err), "expected unavailable, got %v", err)
		})
	}
}

func TestNormalizeGoogleReviewSummary_RequiresEveryMember(t *testing.T) {
	full := google.ReviewSummary{
		Text:           &google.LocalizedText{Text: "Great"},
		DisclosureText: &google.LocalizedText{Text: "Summarized with Gemini"},
		ReviewsURI:     "https://r",
		FlagContentURI: "https://f",
	}
	assert.NotNil(t, NormalizeGoogleReviewSummary(&full))

	noFlag := full
	noFlag.FlagContentURI = ""
	assert.Nil(t, NormalizeGoogleReviewSummary(&noFlag))

	noDisclosure := full
	noDisclosure.DisclosureText = nil
	assert.Nil(t, NormalizeGoogleReviewSummary(&noDisclosure))

	assert.Nil(t, NormalizeGoogleReviewSummary(nil))
}

func TestConvertPriceLevel(t *testing.T) {
	tests := map[string]int{
		google.PriceLevelFree:          1,
		google.PriceLevelInexpensive:   2,
		google.PriceLevelModerate:      3,
		google.PriceLevelExpensive:     4,
		google.PriceLevelVeryExpensive: 5,
		"":                             2,
		"PRICE_LEVEL_UNSPECIFIED":      2,
	}
	for level, want := range tests {
		assert.Equal(t, want, ConvertPriceLevel(level), level)
	}
}

func TestClassifyTypes(t *testing.T) {
	tests := []struct {
		types []string
		want  string
	}{
		{[]string{"point_of_interest", "lodging"}, "hotel"},
		{[]string{"meal_takeaway", "cafe"}, "restaurant"},
		{[]string{"cafe", "store"}, "cafe"},
		{[]string{"shopping_mall"}, "shopping"},
		{[]string{"museum", "point_of_interest"}, "museum"},
		{nil, "place"},
		{[]string{""}, "place"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyTypes(tt.types), "%v", tt.types)
	}
}
