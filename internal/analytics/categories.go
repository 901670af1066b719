package analytics

import (
	"context"

	"github.com/srs-vsa/analytics-backend/internal/ai"
	"github.com/srs-vsa/analytics-backend/internal/db"
	"github.com/srs-vsa/analytics-backend/internal/models"
)

// QueryCategories assigns each session exactly one of the 10 fixed
// intent categories, keyed off the session's first user input. All 10
// buckets are always present so charts stay stable across requests.
func (s *Service) QueryCategories(ctx context.Context, f models.Filters) (models.QueryCategories, error) {
	src, err := db.SourceFor(f.Product)
	if err != nil {
		return models.QueryCategories{}, err
	}
	rows, err := s.Store.FirstInputPerSession(ctx, src, f)
	if err != nil {
		return models.QueryCategories{}, err
	}

	texts := make([]string, len(rows))
	for i, r := range rows {
		texts[i] = r.Text
	}

	items, anomalies, err := s.classifyBatch(ctx, texts, ai.QueryCategoryTaxonomy)
	if err != nil {
		return models.QueryCategories{}, err
	}

	counts := make(map[string]int64, len(ai.QueryCategoryTaxonomy.Buckets))
	for _, item := range items {
		counts[item.Bucket]++
	}

	ordered := make([]int64, len(ai.QueryCategoryTaxonomy.Buckets))
	for i, b := range ai.QueryCategoryTaxonomy.Buckets {
		ordered[i] = counts[b.ID]
	}
	pcts := roundPercentages(ordered)

	out := models.QueryCategories{
		TotalSessions:  int64(len(rows)),
		Categories:     make([]models.CategoryCount, len(ai.QueryCategoryTaxonomy.Buckets)),
		Anomalies:      anomalies,
		FiltersApplied: f.Applied(),
	}
	for i, b := range ai.QueryCategoryTaxonomy.Buckets {
		out.Categories[i] = models.CategoryCount{
			Category:     b.ID,
			CategoryName: b.Name,
			SessionCount: ordered[i],
			Percentage:   pcts[i],
		}
	}
	return out, nil
}
