package ai

import "context"

// Result is one classifier assignment. Score only carries meaning for
// scored taxonomies (sentiment); bucket taxonomies leave it at zero.
type Result struct {
	Bucket string
	Score  float64
}

// Classifier assigns a free-text user query to a bucket of a fixed
// taxonomy. Implementations may be LLM-backed or rule-based; callers
// must treat the returned bucket as untrusted and coerce anything
// outside the taxonomy to its catch-all.
type Classifier interface {
	Classify(ctx context.Context, text string, taxonomy Taxonomy) (Result, error)
}
