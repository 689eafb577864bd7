package normalizer

import (
	"review-explorer/models"
	"review-explorer/models/google"
)

// NormalizePlaceDetails converts a place details payload into a Place.
// The id and display name are required; everything else has a documented default.
func NormalizePlaceDetails(details *google.PlaceDetails) (*models.Place, error) {
	if details == nil {
		return nil, unavailable("place details", "empty payload")
	}
	if err := validate.Struct(details); err != nil {
		return nil, unavailable("place details", "missing id or display name")
	}
	if details.DisplayName.Text == "" {
		return nil, unavailable("place details", "empty display name")
	}

	place := &models.Place{
		ID:              details.ID,
		Name:            details.DisplayName.Text,
		Address:         details.FormattedAddress,
		Type:            ClassifyTypes(details.Types),
		PriceLevel:      ConvertPriceLevel(details.PriceLevel),
		IsOpen:          true,
		Reviews:         NormalizeReviews(details.Reviews),
		UserRatingCount: details.UserRatingCount,
	}
	if details.Rating != nil {
		place.Rating = *details.Rating
	}
	if details.Location != nil {
		place.Location = models.Location{
			Latitude:  details.Location.Latitude,
			Longitude: details.Location.Longitude,
		}
	}
	// Fail open: a place is shown as open unless the provider says otherwise.
	if details.CurrentOpeningHours != nil && details.CurrentOpeningHours.OpenNow != nil {
		place.IsOpen = *details.CurrentOpeningHours.OpenNow
	}
	place.GoogleReviewSummary = NormalizeGoogleReviewSummary(details.ReviewSummary)

	return place, nil
}

// NormalizeReviews maps provider reviews 1:1.
func NormalizeReviews(reviews []google.Review) []models.Review {
	out := make([]models.Review, 0, len(reviews))
	for _, r := range reviews {
		review := models.Review{
			ID:                      r.Name,
			Rating:                  r.Rating,
			Time:                    r.PublishTime,
			RelativeTimeDescription: r.RelativePublishTimeDescription,
		}
		if r.AuthorAttribution != nil {
			review.AuthorName = r.AuthorAttribution.DisplayName
		}
		if r.Text != nil {
			review.Text = r.Text.Text
		}
		out = append(out, review)
	}
	return out
}

// NormalizeGoogleReviewSummary returns nil unless every mandatory member is present.
func NormalizeGoogleReviewSummary(summary *google.ReviewSummary) *models.GoogleReviewSummary {
	if summary == nil || summary.Text == nil || summary.DisclosureText == nil {
		return nil
	}
	out := &models.GoogleReviewSummary{
		Text:           summary.Text.Text,
		LanguageCode:   summary.Text.LanguageCode,
		DisclosureText: summary.DisclosureText.Text,
		ReviewsURI:     summary.ReviewsURI,
		FlagContentURI: summary.FlagContentURI,
	}
	if !out.Complete() {
		return nil
	}
	return out
}
