package models

// Location is a geographic coordinate. The zero value means "unknown".
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// IsKnown reports whether the coordinate is something other than the {0,0} sentinel.
func (l Location) IsKnown() bool {
	return l.Latitude != 0 || l.Longitude != 0
}

// Place is a normalized point of interest.
type Place struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Address    string   `json:"address"`
	Type       string   `json:"type"`
	Rating     float64  `json:"rating"`
	PriceLevel int      `json:"price_level"`
	Location   Location `json:"location"`
	IsOpen     bool     `json:"is_open"`
	Reviews    []Review `json:"reviews"`

	// Present only when the provider reported them.
	UserRatingCount     *int                 `json:"user_rating_count,omitempty"`
	GoogleReviewSummary *GoogleReviewSummary `json:"google_review_summary,omitempty"`
}

// TotalReviews returns the provider review count, falling back to the number of loaded reviews.
func (p *Place) TotalReviews() int {
	if p.UserRatingCount != nil {
		return *p.UserRatingCount
	}
	return len(p.Reviews)
}

// Review is a single customer review, always nested under a Place.
type Review struct {
	ID                      string  `json:"id"`
	AuthorName              string  `json:"author_name"`
	Rating                  float64 `json:"rating"`
	Text                    string  `json:"text"`
	Time                    string  `json:"time"`
	RelativeTimeDescription string  `json:"relative_time_description"`
}

// GoogleReviewSummary is Google's native AI review summary. The disclosure
// text and both links are mandatory and must be rendered together with the text.
type GoogleReviewSummary struct {
	Text           string `json:"text"`
	LanguageCode   string `json:"language_code"`
	DisclosureText string `json:"disclosure_text"`
	ReviewsURI     string `json:"reviews_uri"`
	FlagContentURI string `json:"flag_content_uri"`
}

// Complete reports whether every mandatory member is present.
func (s *GoogleReviewSummary) Complete() bool {
	return s != nil && s.Text != "" && s.DisclosureText != "" && s.ReviewsURI != "" && s.FlagContentURI != ""
}
