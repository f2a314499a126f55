// Package quote holds the price catalog, the estimator and the stepped
// quote form state.
package quote

// Service is a billable base service.
type Service struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	BasePrice int    `json:"base_price"`
}

// Feature is an optional add-on.
type Feature struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int    `json:"price"`
}

// Timeline is a delivery speed tier.
type Timeline struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Multiplier float64 `json:"multiplier"`
}

// BudgetBand is a display-only budget range.
type BudgetBand struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Catalog is everything a client needs to render the quote form.
type Catalog struct {
	Services  []Service    `json:"services"`
	Features  []Feature    `json:"features"`
	Timelines []Timeline   `json:"timelines"`
	Budgets   []BudgetBand `json:"budgets"`
}

const (
	TimelineStandard = "standard"
	TimelineFast     = "fast"
	TimelineUrgent   = "urgent"
)

var services = []Service{
	{ID: "web-design", Name: "Website Design", BasePrice: 200},
	{ID: "ui-ux", Name: "UI/UX Design", BasePrice: 200},
	{ID: "web-dev", Name: "Web Development", BasePrice: 300},
	{ID: "graphic-design", Name: "Graphic Design", BasePrice: 150},
	{ID: "full-stack", Name: "Full Stack Solution", BasePrice: 500},
}

var features = []Feature{
	{ID: "responsive", Name: "Responsive Design", Price: 0},
	{ID: "cms", Name: "Content Management System", Price: 800},
	{ID: "ecommerce", Name: "E-commerce Functionality", Price: 1000},
	{ID: "seo", Name: "SEO Optimization", Price: 600},
	{ID: "analytics", Name: "Analytics Integration", Price: 300},
	{ID: "social", Name: "Social Media Integration", Price: 400},
	{ID: "blog", Name: "Blog System", Price: 200},
	{ID: "booking", Name: "Booking/Appointment System", Price: 1200},
	{ID: "payment", Name: "Payment Gateway", Price: 800},
	{ID: "multilingual", Name: "Multi-language Support", Price: 700},
}

var timelines = []Timeline{
	{ID: TimelineStandard, Name: "Standard", Multiplier: 1.0},
	{ID: TimelineFast, Name: "Fast", Multiplier: 1.2},
	{ID: TimelineUrgent, Name: "Urgent", Multiplier: 1.5},
}

var budgets = []BudgetBand{
	{ID: "under-5k", Label: "Under $200"},
	{ID: "5k-10k", Label: "$300 - $500"},
	{ID: "10k-25k", Label: "$600 - $1,000"},
	{ID: "25k-50k", Label: "$1100 - $2,000"},
	{ID: "over-50k", Label: "Over $3,000"},
}

var (
	basePrices   = map[string]int{}
	featurePrice = map[string]int{}
	multipliers  = map[string]float64{}
)

func init() {
	for _, s := range services {
		basePrices[s.ID] = s.BasePrice
	}
	for _, f := range features {
		featurePrice[f.ID] = f.Price
	}
	for _, t := range timelines {
		multipliers[t.ID] = t.Multiplier
	}
}

// DefaultCatalog returns a copy of the static catalog.
func DefaultCatalog() Catalog {
	return Catalog{
		Services:  append([]Service(nil), services...),
		Features:  append([]Feature(nil), features...),
		Timelines: append([]Timeline(nil), timelines...),
		Budgets:   append([]BudgetBand(nil), budgets...),
	}
}

// IsService reports whether id is a known service key.
func IsService(id string) bool {
	_, ok := basePrices[id]
	return ok
}

// IsFeature reports whether id is a known feature key.
func IsFeature(id string) bool {
	_, ok := featurePrice[id]
	return ok
}

// IsTimeline reports whether id is a known timeline tier.
func IsTimeline(id string) bool {
	_, ok := multipliers[id]
	return ok
}

// IsBudget reports whether id is a known budget band.
func IsBudget(id string) bool {
	for _, b := range budgets {
		if b.ID == id {
			return true
		}
	}
	return false
}

// BasePrice returns the base price of a service, 0 when unknown.
func BasePrice(serviceType string) int {
	return basePrices[serviceType]
}

// FeaturePrice returns the add-on price of a feature, 0 when unknown.
func FeaturePrice(feature string) int {
	return featurePrice[feature]
}

// Multiplier returns the timeline multiplier, 1.0 for anything unknown.
func Multiplier(timeline string) float64 {
	if m, ok := multipliers[timeline]; ok {
		return m
	}
	return 1.0
}
