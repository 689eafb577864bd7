package models

// SummaryWebhookRequest is the payload sent to the AI summary webhook.
type SummaryWebhookRequest struct {
	PlaceID      string          `json:"placeId"`
	PlaceName    string          `json:"placeName"`
	PlaceAddress string          `json:"placeAddress"`
	Rating       float64         `json:"rating"`
	Reviews      []WebhookReview `json:"reviews"`
	ReviewCount  int             `json:"reviewCount"`
	Language     string          `json:"language"`
}

// WebhookReview is a review in the camelCase shape the summary workflow reads.
type WebhookReview struct {
	ID                      string  `json:"id"`
	AuthorName              string  `json:"authorName"`
	Rating                  float64 `json:"rating"`
	Text                    string  `json:"text"`
	Time                    string  `json:"time"`
	RelativeTimeDescription string  `json:"relativeTimeDescription"`
}

// NewSummaryWebhookRequest builds the webhook payload for place.
// reviewCount is the number of reviews sent, not the provider's rating count.
func NewSummaryWebhookRequest(place *Place, language string) SummaryWebhookRequest {
	reviews := make([]WebhookReview, 0, len(place.Reviews))
	for _, r := range place.Reviews {
		reviews = append(reviews, WebhookReview{
			ID:                      r.ID,
			AuthorName:              r.AuthorName,
			Rating:                  r.Rating,
			Text:                    r.Text,
			Time:                    r.Time,
			RelativeTimeDescription: r.RelativeTimeDescription,
		})
	}
	return SummaryWebhookRequest{
		PlaceID:      place.ID,
		PlaceName:    place.Name,
		PlaceAddress: place.Address,
		Rating:       place.Rating,
		Reviews:      reviews,
		ReviewCount:  len(reviews),
		Language:     language,
	}
}

// SummaryWebhookOutput is one element of the webhook response array.
type SummaryWebhookOutput struct {
	Text string `json:"text"`
}
