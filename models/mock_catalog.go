package models

// MockCatalog is the fixed demo data set served when the provider is unavailable.
type MockCatalog struct {
	Places        []Place       `json:"places"`
	ReviewSummary ReviewSummary `json:"review_summary"`
}
