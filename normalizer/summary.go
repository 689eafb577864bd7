package normalizer

import (
	"encoding/json"
	"regexp"
	"strings"

	"review-explorer/models"
)

var (
	emphasisMarkers = strings.NewReplacer("*", "")
	blankLineRuns   = regexp.MustCompile(`\n[ \t]*\n(?:[ \t]*\n)+`)
)

// CleanAIText strips markdown emphasis asterisks and collapses runs of
// blank lines into a single blank line.
func CleanAIText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = emphasisMarkers.Replace(text)
	text = blankLineRuns.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// NormalizeAIText wraps cleaned AI text as a summary. Rating and review
// count come from the place, never from the text.
func NormalizeAIText(place *models.Place, text string) (*models.ReviewSummary, error) {
	if place == nil {
		return nil, unavailable("ai summary", "no place")
	}
	cleaned := CleanAIText(text)
	if cleaned == "" {
		return nil, unavailable("ai summary", "empty text")
	}
	return &models.ReviewSummary{
		OverallRating:    place.Rating,
		TotalReviews:     place.TotalReviews(),
		SentimentSummary: cleaned,
		Source:           models.SummarySourceWebhook,
	}, nil
}

// DecodeWebhookText extracts the first non-empty text from a webhook
// response, which must be a JSON array of outputs.
func DecodeWebhookText(body []byte) (string, error) {
	var outputs []models.SummaryWebhookOutput
	if err := json.Unmarshal(body, &outputs); err != nil {
		return "", unavailable("ai summary", "webhook response is not an array of outputs")
	}
	for _, output := range outputs {
		if strings.TrimSpace(output.Text) != "" {
			return output.Text, nil
		}
	}
	return "", unavailable("ai summary", "webhook returned no text")
}

// NormalizeGoogleSummary wraps Google's native summary. The attribution is
// attached as one block so renderers show disclosure and links together.
func NormalizeGoogleSummary(place *models.Place) (*models.ReviewSummary, error) {
	if place == nil || !place.GoogleReviewSummary.Complete() {
		return nil, unavailable("google summary", "place has no complete native summary")
	}
	native := *place.GoogleReviewSummary
	return &models.ReviewSummary{
		OverallRating:    place.Rating,
		TotalReviews:     place.TotalReviews(),
		SentimentSummary: native.Text,
		Source:           models.SummarySourceGoogle,
		Attribution:      &native,
	}, nil
}
