package analytics

import (
	"context"

	"github.com/srs-vsa/analytics-backend/internal/ai"
	"github.com/srs-vsa/analytics-backend/internal/db"
	"github.com/srs-vsa/analytics-backend/internal/models"
)

const maxExamplesPerCluster = 5

// PainPointClustering buckets every user query in range into the 5
// fixed pain-point clusters. Example queries are kept in first-occurrence
// order, capped per cluster.
func (s *Service) PainPointClustering(ctx context.Context, f models.Filters) (models.PainPointClusters, error) {
	src, err := db.SourceFor(f.Product)
	if err != nil {
		return models.PainPointClusters{}, err
	}
	rows, err := s.Store.UserQueryTexts(ctx, src, f)
	if err != nil {
		return models.PainPointClusters{}, err
	}

	texts := make([]string, len(rows))
	for i, r := range rows {
		texts[i] = r.Text
	}

	items, anomalies, err := s.classifyBatch(ctx, texts, ai.PainPointTaxonomy)
	if err != nil {
		return models.PainPointClusters{}, err
	}

	counts := make(map[string]int64, len(ai.PainPointTaxonomy.Buckets))
	examples := make(map[string][]string, len(ai.PainPointTaxonomy.Buckets))
	for _, item := range items {
		counts[item.Bucket]++
		if len(examples[item.Bucket]) < maxExamplesPerCluster {
			examples[item.Bucket] = append(examples[item.Bucket], item.Text)
		}
	}

	ordered := make([]int64, len(ai.PainPointTaxonomy.Buckets))
	for i, b := range ai.PainPointTaxonomy.Buckets {
		ordered[i] = counts[b.ID]
	}
	pcts := roundPercentages(ordered)

	out := models.PainPointClusters{
		TotalQueries:   len(texts),
		Clusters:       make([]models.ClusterBucket, len(ai.PainPointTaxonomy.Buckets)),
		Anomalies:      anomalies,
		FiltersApplied: f.Applied(),
	}
	for i, b := range ai.PainPointTaxonomy.Buckets {
		ex := examples[b.ID]
		if ex == nil {
			ex = []string{}
		}
		out.Clusters[i] = models.ClusterBucket{
			ClusterID:      b.ID,
			ClusterName:    b.Name,
			Count:          int(ordered[i]),
			Percentage:     pcts[i],
			ExampleQueries: ex,
		}
	}
	return out, nil
}
