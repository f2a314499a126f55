package quote

// Estimate returns (base + sum of feature prices) * timeline multiplier.
// It is total: unknown keys contribute nothing and an unknown timeline is
// treated as standard. Features are a set, so repeated keys count once.
func Estimate(serviceType string, features []string, timeline string) float64 {
	subtotal := BasePrice(serviceType)
	for _, f := range uniq(features) {
		subtotal += FeaturePrice(f)
	}
	return float64(subtotal) * Multiplier(timeline)
}

// Line is one priced feature in a breakdown.
type Line struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int    `json:"price"`
}

// Breakdown is the estimate with its parts, for display.
type Breakdown struct {
	ServiceType string  `json:"service_type"`
	BasePrice   int     `json:"base_price"`
	Features    []Line  `json:"features"`
	Subtotal    int     `json:"subtotal"`
	Timeline    string  `json:"timeline"`
	Multiplier  float64 `json:"multiplier"`
	Total       float64 `json:"total"`
}

// Explain computes the same value as Estimate together with its parts.
// Unknown features are left out of the lines.
func Explain(serviceType string, features []string, timeline string) Breakdown {
	b := Breakdown{
		ServiceType: serviceType,
		BasePrice:   BasePrice(serviceType),
		Features:    []Line{},
		Timeline:    timeline,
		Multiplier:  Multiplier(timeline),
	}
	b.Subtotal = b.BasePrice
	for _, id := range uniq(features) {
		f, ok := findFeature(id)
		if !ok {
			continue
		}
		b.Features = append(b.Features, Line{ID: f.ID, Name: f.Name, Price: f.Price})
		b.Subtotal += f.Price
	}
	b.Total = float64(b.Subtotal) * b.Multiplier
	return b
}

func findFeature(id string) (Feature, bool) {
	for _, f := range features {
		if f.ID == id {
			return f, true
		}
	}
	return Feature{}, false
}

// uniq drops repeated keys, keeping first-seen order.
func uniq(keys []string) []string {
	if len(keys) < 2 {
		return keys
	}
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
