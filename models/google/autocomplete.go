package google

// AutocompleteRequest is the body of POST /places:autocomplete.
type AutocompleteRequest struct {
	Input                string   `json:"input"`
	SessionToken         string   `json:"sessionToken,omitempty"`
	LanguageCode         string   `json:"languageCode,omitempty"`
	IncludedPrimaryTypes []string `json:"includedPrimaryTypes,omitempty"`
}

// AutocompleteResponse is the response of POST /places:autocomplete.
type AutocompleteResponse struct {
	Suggestions []Suggestion `json:"suggestions"`
}

// Suggestion holds either a place prediction or a query prediction.
type Suggestion struct {
	PlacePrediction *PlacePrediction `json:"placePrediction,omitempty"`
	QueryPrediction *QueryPrediction `json:"queryPrediction,omitempty"`
}

// PlacePrediction is a predicted place.
type PlacePrediction struct {
	Place            string            `json:"place,omitempty"`
	PlaceID          string            `json:"placeId" validate:"required"`
	Text             *LocalizedText    `json:"text,omitempty"`
	StructuredFormat *StructuredFormat `json:"structuredFormat,omitempty"`
	Types            []string          `json:"types,omitempty"`
}

// StructuredFormat splits a prediction into main and secondary text.
type StructuredFormat struct {
	MainText      *LocalizedText `json:"mainText,omitempty"`
	SecondaryText *LocalizedText `json:"secondaryText,omitempty"`
}

// QueryPrediction is a predicted query string. It carries no place.
type QueryPrediction struct {
	Text *LocalizedText `json:"text,omitempty"`
}
