package analytics

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/srs-vsa/analytics-backend/internal/ai"
	"github.com/srs-vsa/analytics-backend/internal/models"
)

type classified struct {
	Text   string
	Bucket string
	Score  float64
}

// classifyBatch classifies every text under one deadline with bounded
// concurrency. Any item failure fails the whole batch: a pain-point or
// sentiment distribution built from partial results is worse than an
// explicit ClassificationUnavailable error. Out-of-taxonomy buckets are
// coerced to the catch-all and counted as anomalies, never propagated.
func (s *Service) classifyBatch(ctx context.Context, texts []string, taxonomy ai.Taxonomy) ([]classified, int, error) {
	if len(texts) == 0 {
		return nil, 0, nil
	}

	timeout := s.ClassifierTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	limit := s.ClassifierConcurrency
	if limit <= 0 {
		limit = 4
	}

	results := make([]ai.Result, len(texts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, text := range texts {
		if strings.TrimSpace(text) == "" {
			// Empty inputs never reach the classifier.
			results[i] = ai.Result{Bucket: taxonomy.CatchAll}
			continue
		}
		i, text := i, text
		g.Go(func() error {
			res, err := s.Classifier.Classify(gctx, text, taxonomy)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, &models.ClassificationUnavailableError{Taxonomy: taxonomy.ID, Err: err}
	}

	anomalies := 0
	out := make([]classified, len(texts))
	for i, res := range results {
		bucket := res.Bucket
		if !taxonomy.Scored && !taxonomy.Contains(bucket) {
			s.Logger.Warn().
				Str("taxonomy", taxonomy.ID).
				Str("bucket", bucket).
				Msg("out-of-taxonomy classifier response coerced to catch-all")
			bucket = taxonomy.CatchAll
			anomalies++
		}
		out[i] = classified{Text: texts[i], Bucket: bucket, Score: res.Score}
	}
	return out, anomalies, nil
}
