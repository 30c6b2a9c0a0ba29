// Package types - Subject product input
package types

// ProductInput describes the subject product under analysis.
// Supplied once per run by the caller and never mutated.
type ProductInput struct {
	// Name is the product name
	Name string `json:"name"`

	// URL is the product URL
	URL string `json:"url"`

	// CurrentPrice is the current price as a free-text string (e.g. "$99/month")
	CurrentPrice string `json:"current_price"`

	// CompetitorURLs is an optional list of competitor URLs to check
	CompetitorURLs []string `json:"competitor_urls,omitempty"`

	// Category is the product category (e.g. "Project Management", "Design Tool")
	Category string `json:"category,omitempty"`

	// TargetCustomer is the target customer segment (e.g. "Small Business")
	TargetCustomer string `json:"target_customer,omitempty"`

	// KeyFeatures lists key features or capabilities of the product
	KeyFeatures []string `json:"key_features,omitempty"`

	// ProblemStatement is the specific problem the product solves
	ProblemStatement string `json:"problem_statement,omitempty"`

	// DecisionContext describes who decides, when, and why
	// (e.g. "Marketing teams choosing tools for content creation")
	DecisionContext string `json:"decision_context,omitempty"`

	// PaymentModel is the payment model (e.g. "subscription", "one-time",
	// "per-seat", "usage-based", "freemium")
	PaymentModel string `json:"payment_model,omitempty"`
}

// HasCompetitiveGroupFields reports whether the product supplies any of the
// fields used by competitive-group similarity scoring. When none are present
// the comparability filter falls back to legacy-only scoring.
func (p ProductInput) HasCompetitiveGroupFields() bool {
	return p.ProblemStatement != "" || p.DecisionContext != "" || p.PaymentModel != ""
}
