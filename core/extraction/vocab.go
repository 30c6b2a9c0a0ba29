// Package extraction - Heuristic vocabularies
package extraction

// PaymentModelRule maps phrase cues to a canonical payment model label.
// Rules are evaluated in order; the first cue hit wins.
type PaymentModelRule struct {
	// Model is the canonical label (e.g. "per-seat", "subscription")
	Model string `json:"model"`

	// Cues are the phrases that select this model
	Cues []string `json:"cues"`
}

// Vocabulary holds the curated lookup tables the attribute extractor matches
// against. The tables are open sets: callers may extend or replace them
// without touching the matching logic.
type Vocabulary struct {
	// Categories are known product categories, most specific first
	Categories []string `json:"categories"`

	// CustomerSegments are known target customer segments
	CustomerSegments []string `json:"customer_segments"`

	// FeatureKeywords are known feature/capability keywords
	FeatureKeywords []string `json:"feature_keywords"`

	// PaymentModels are ordered payment-model cue groups
	PaymentModels []PaymentModelRule `json:"payment_models"`
}

// DefaultVocabulary returns the built-in lookup tables.
func DefaultVocabulary() *Vocabulary {
	return &Vocabulary{
		Categories: []string{
			"Project Management",
			"Marketing Automation",
			"Email Marketing",
			"Customer Support",
			"Video Conferencing",
			"Password Manager",
			"Design Tool",
			"Note-Taking",
			"Time Tracking",
			"Cloud Storage",
			"AI Assistant",
			"Accounting",
			"Analytics",
			"Monitoring",
			"Security",
			"CRM",
			"SaaS",
		},
		CustomerSegments: []string{
			"Enterprise",
			"Small Business",
			"SMB",
			"Startups",
			"Agencies",
			"Freelancers",
			"Developers",
			"Marketers",
			"Designers",
			"Individuals",
			"Teams",
		},
		FeatureKeywords: []string{
			"collaboration",
			"automation",
			"integrations",
			"analytics",
			"reporting",
			"api access",
			"templates",
			"real-time editing",
			"dashboards",
			"sso",
			"version history",
			"time tracking",
			"unlimited storage",
			"mobile app",
			"workflows",
			"permissions",
			"custom fields",
			"notifications",
			"kanban boards",
			"ai suggestions",
		},
		PaymentModels: []PaymentModelRule{
			{Model: "usage-based", Cues: []string{"usage-based", "usage based", "pay as you go", "pay-as-you-go", "metered", "per request", "per api call"}},
			{Model: "per-seat", Cues: []string{"per seat", "per user", "/seat", "/user", "per license"}},
			{Model: "one-time", Cues: []string{"one-time", "one time", "lifetime", "perpetual license"}},
			{Model: "freemium", Cues: []string{"free plan", "free tier", "freemium", "free forever"}},
			{Model: "subscription", Cues: []string{"subscription", "per month", "/month", "monthly", "billed annually", "per year", "/year", "yearly"}},
		},
	}
}
