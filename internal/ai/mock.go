package ai

import (
	"context"
	"strings"

	"github.com/srs-vsa/analytics-backend/internal/utils"
)

// MockClassifier is a deterministic, offline classifier for development
// and tests. Bucket assignment keys off keyword rules with a hash
// fallback; sentiment uses a small lexicon. Identical input always
// yields an identical result.
type MockClassifier struct{}

var positiveWords = map[string]struct{}{
	"great": {}, "thanks": {}, "thank": {}, "perfect": {}, "love": {},
	"good": {}, "awesome": {}, "excellent": {}, "helpful": {}, "works": {},
}

var negativeWords = map[string]struct{}{
	"broken": {}, "leaking": {}, "bad": {}, "terrible": {}, "wrong": {},
	"useless": {}, "angry": {}, "frustrated": {}, "fail": {}, "problem": {},
	"not": {}, "never": {},
}

func (MockClassifier) Classify(_ context.Context, text string, taxonomy Taxonomy) (Result, error) {
	if taxonomy.Scored {
		return Result{Score: lexiconScore(text), Bucket: SentimentBand(lexiconScore(text))}, nil
	}
	lower := strings.ToLower(text)
	for _, rule := range keywordRules[taxonomy.ID] {
		if strings.Contains(lower, rule.keyword) {
			return Result{Bucket: rule.bucket}, nil
		}
	}
	h := utils.HashStringToUint64(lower)
	return Result{Bucket: taxonomy.Buckets[h%uint64(len(taxonomy.Buckets))].ID}, nil
}

type keywordRule struct {
	keyword string
	bucket  string
}

var keywordRules = map[string][]keywordRule{
	"pain_point": {
		{"pump", "pump_recommendations"},
		{"filter", "filter_parts"},
		{"stock", "stock_availability"},
		{"install", "technical_support"},
		{"hours", "general"},
	},
	"query_category": {
		{"order", "order_status"},
		{"pump", "product_discovery"},
		{"part", "parts_lookup"},
		{"stock", "stock_check"},
		{"install", "technical_support"},
		{"price", "pricing"},
		{"invoice", "account_billing"},
		{"hours", "branch_info"},
		{"return", "returns_warranty"},
	},
}

func lexiconScore(text string) float64 {
	fields := strings.Fields(strings.ToLower(text))
	if len(fields) == 0 {
		return 0
	}
	var score float64
	for _, w := range fields {
		w = strings.Trim(w, ".,!?:;\"'")
		if _, ok := positiveWords[w]; ok {
			score += 0.4
		}
		if _, ok := negativeWords[w]; ok {
			score -= 0.4
		}
	}
	if score > 1 {
		score = 1
	}
	if score < -1 {
		score = -1
	}
	return score
}
