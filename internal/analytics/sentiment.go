package analytics

import (
	"context"
	"sort"

	"github.com/srs-vsa/analytics-backend/internal/ai"
	"github.com/srs-vsa/analytics-backend/internal/db"
	"github.com/srs-vsa/analytics-backend/internal/models"
)

const sentimentTopK = 5

// Sentiment scores every user query in range on a continuous [-1, 1]
// scale and aggregates into the three fixed bands. Top and bottom
// examples break ties by earliest occurrence.
func (s *Service) Sentiment(ctx context.Context, f models.Filters) (models.SentimentAnalysis, error) {
	src, err := db.SourceFor(f.Product)
	if err != nil {
		return models.SentimentAnalysis{}, err
	}
	rows, err := s.Store.UserQueryTexts(ctx, src, f)
	if err != nil {
		return models.SentimentAnalysis{}, err
	}

	texts := make([]string, len(rows))
	for i, r := range rows {
		texts[i] = r.Text
	}

	items, _, err := s.classifyBatch(ctx, texts, ai.SentimentTaxonomy)
	if err != nil {
		return models.SentimentAnalysis{}, err
	}

	out := shapeSentiment(items)
	out.FiltersApplied = f.Applied()
	return out, nil
}

func shapeSentiment(items []classified) models.SentimentAnalysis {
	out := models.SentimentAnalysis{
		Distribution: []models.SentimentBand{},
		MostPositive: []models.SentimentExample{},
		MostNegative: []models.SentimentExample{},
	}

	bandCounts := map[string]int64{}
	var sum float64
	for _, item := range items {
		sum += item.Score
		bandCounts[ai.SentimentBand(item.Score)]++
	}

	ordered := []int64{bandCounts["positive"], bandCounts["neutral"], bandCounts["negative"]}
	pcts := roundPercentages(ordered)
	for i, band := range []string{"positive", "neutral", "negative"} {
		out.Distribution = append(out.Distribution, models.SentimentBand{
			Category:   band,
			Count:      int(ordered[i]),
			Percentage: pcts[i],
		})
	}

	out.TotalMessages = len(items)
	if len(items) == 0 {
		return out
	}
	out.AvgScore = round3(sum / float64(len(items)))

	// Stable sorts keep earliest occurrence first among equal scores.
	desc := make([]classified, len(items))
	copy(desc, items)
	sort.SliceStable(desc, func(i, j int) bool { return desc[i].Score > desc[j].Score })
	for i := 0; i < len(desc) && i < sentimentTopK; i++ {
		out.MostPositive = append(out.MostPositive, models.SentimentExample{
			Message: desc[i].Text,
			Score:   round3(desc[i].Score),
		})
	}

	asc := make([]classified, len(items))
	copy(asc, items)
	sort.SliceStable(asc, func(i, j int) bool { return asc[i].Score < asc[j].Score })
	for i := 0; i < len(asc) && i < sentimentTopK; i++ {
		out.MostNegative = append(out.MostNegative, models.SentimentExample{
			Message: asc[i].Text,
			Score:   round3(asc[i].Score),
		})
	}
	return out
}
