package normalizer

import "review-explorer/models/google"

// DefaultPriceLevel is the "inexpensive" tier. Places whose provider omits
// or garbles the price level are shown as inexpensive rather than unknown.
const DefaultPriceLevel = 2

// PriceLevelUnknown is used for records that have not been through details yet.
const PriceLevelUnknown = 0

var priceLevels = map[string]int{
	google.PriceLevelFree:          1,
	google.PriceLevelInexpensive:   2,
	google.PriceLevelModerate:      3,
	google.PriceLevelExpensive:     4,
	google.PriceLevelVeryExpensive: 5,
}

// ConvertPriceLevel maps a provider price tier to an ordinal 1..5.
func ConvertPriceLevel(level string) int {
	if ordinal, ok := priceLevels[level]; ok {
		return ordinal
	}
	return DefaultPriceLevel
}
