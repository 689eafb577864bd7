package normalizer

// DefaultPlaceType is used when the provider reports no type at all.
const DefaultPlaceType = "place"

type categoryRule struct {
	providerType string
	category     string
}

// categoryTable is ordered; ClassifyTypes scans the provider types in order
// and the first one found here wins.
var categoryTable = []categoryRule{
	{"restaurant", "restaurant"},
	{"food", "restaurant"},
	{"meal_takeaway", "restaurant"},
	{"lodging", "hotel"},
	{"tourist_attraction", "attraction"},
	{"cafe", "cafe"},
	{"store", "shop"},
	{"electronics_store", "electronics_store"},
	{"shopping_mall", "shopping"},
}

func lookupCategory(providerType string) (string, bool) {
	for _, rule := range categoryTable {
		if rule.providerType == providerType {
			return rule.category, true
		}
	}
	return "", false
}

// ClassifyTypes maps raw provider types to a category tag: the first
// recognized type wins, then the first raw type, then DefaultPlaceType.
func ClassifyTypes(types []string) string {
	for _, t := range types {
		if category, ok := lookupCategory(t); ok {
			return category
		}
	}
	if len(types) > 0 && types[0] != "" {
		return types[0]
	}
	return DefaultPlaceType
}
