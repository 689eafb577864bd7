package models

// Summary sources.
const (
	SummarySourceGoogle  = "google"
	SummarySourceWebhook = "webhook"
	SummarySourceDemo    = "demo"
)

// ReviewSummary is the display structure for an AI review summary.
type ReviewSummary struct {
	OverallRating    float64  `json:"overall_rating"`
	TotalReviews     int      `json:"total_reviews"`
	SentimentSummary string   `json:"sentiment_summary"`
	Pros             []string `json:"pros,omitempty"`
	Cons             []string `json:"cons,omitempty"`
	KeyThemes        []string `json:"key_themes,omitempty"`
	Recommendation   string   `json:"recommendation,omitempty"`
	Source           string   `json:"source"`

	// Attribution carries Google's disclosure and links as a single unit.
	Attribution *GoogleReviewSummary `json:"attribution,omitempty"`
}
