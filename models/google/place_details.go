package google

// Price levels reported by the Places API v1.
const (
	PriceLevelFree          = "PRICE_LEVEL_FREE"
	PriceLevelInexpensive   = "PRICE_LEVEL_INEXPENSIVE"
	PriceLevelModerate      = "PRICE_LEVEL_MODERATE"
	PriceLevelExpensive     = "PRICE_LEVEL_EXPENSIVE"
	PriceLevelVeryExpensive = "PRICE_LEVEL_VERY_EXPENSIVE"
)

// PlaceDetails is the response of GET /places/{id}. Optional members are
// pointers so that "absent" can be told apart from a zero value.
type PlaceDetails struct {
	ID                  string         `json:"id" validate:"required"`
	DisplayName         *LocalizedText `json:"displayName" validate:"required"`
	FormattedAddress    string         `json:"formattedAddress,omitempty"`
	Types               []string       `json:"types,omitempty"`
	Rating              *float64       `json:"rating,omitempty"`
	PriceLevel          string         `json:"priceLevel,omitempty"`
	UserRatingCount     *int           `json:"userRatingCount,omitempty"`
	Location            *LatLng        `json:"location,omitempty"`
	CurrentOpeningHours *OpeningHours  `json:"currentOpeningHours,omitempty"`
	Reviews             []Review       `json:"reviews,omitempty"`
	ReviewSummary       *ReviewSummary `json:"reviewSummary,omitempty"`
}

// LatLng is a coordinate pair.
type LatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// OpeningHours carries the open-now flag.
type OpeningHours struct {
	OpenNow *bool `json:"openNow,omitempty"`
}

// Review is a provider review.
type Review struct {
	Name                           string             `json:"name"`
	RelativePublishTimeDescription string             `json:"relativePublishTimeDescription,omitempty"`
	Rating                         float64            `json:"rating"`
	Text                           *LocalizedText     `json:"text,omitempty"`
	AuthorAttribution              *AuthorAttribution `json:"authorAttribution,omitempty"`
	PublishTime                    string             `json:"publishTime,omitempty"`
}

// AuthorAttribution identifies a review author.
type AuthorAttribution struct {
	DisplayName string `json:"displayName"`
	URI         string `json:"uri,omitempty"`
	PhotoURI    string `json:"photoUri,omitempty"`
}

// ReviewSummary is Google's AI-powered review summary.
type ReviewSummary struct {
	Text           *LocalizedText `json:"text,omitempty"`
	FlagContentURI string         `json:"flagContentUri,omitempty"`
	DisclosureText *LocalizedText `json:"disclosureText,omitempty"`
	ReviewsURI     string         `json:"reviewsUri,omitempty"`
}
