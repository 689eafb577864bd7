package util

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"review-explorer/models"
)

//go:embed resources/mock_catalog.json
var mockCatalogJSON []byte

// ReadMockCatalog decodes the demo catalog bundled with the binary.
func ReadMockCatalog() (*models.MockCatalog, error) {
	return decodeMockCatalog(mockCatalogJSON)
}

// ReadMockCatalogFromJSON loads a demo catalog from JSON on disk.
func ReadMockCatalogFromJSON(filePath string) (*models.MockCatalog, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	return decodeMockCatalog(data)
}

func decodeMockCatalog(data []byte) (*models.MockCatalog, error) {
	var catalog models.MockCatalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to unmarshal MockCatalog: %w", err)
	}
	for i := range catalog.Places {
		if catalog.Places[i].Reviews == nil {
			catalog.Places[i].Reviews = []models.Review{}
		}
	}
	return &catalog, nil
}
