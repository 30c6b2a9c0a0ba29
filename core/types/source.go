// Package types - Evidence pipeline value records
package types

// SourceDocument is one retrieved web document. Immutable once retrieved;
// the aggregator owns it for the duration of a single analysis run.
type SourceDocument struct {
	// URL is the document URL
	URL string `json:"url"`

	// Title is the page title
	Title string `json:"title"`

	// Content is the free-text page content
	Content string `json:"content"`

	// Score is the retrieval relevance score, if the search backend reported one
	Score *float64 `json:"score,omitempty"`

	// PublishedDate is the publication date, if available
	PublishedDate string `json:"published_date,omitempty"`
}
