package analytics

import (
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/srs-vsa/analytics-backend/internal/ai"
	"github.com/srs-vsa/analytics-backend/internal/db"
)

// Service is the KPI library plus the text classification subsystem.
// It is stateless per request: every method is a pure function of the
// filter contract and the routed source, so independent metrics can be
// evaluated concurrently.
type Service struct {
	Store                 *db.Store
	Classifier            ai.Classifier
	Logger                zerolog.Logger
	ClassifierTimeout     time.Duration
	ClassifierConcurrency int
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// roundPercentages converts counts to two-decimal percentages that sum
// to exactly 100 for a non-empty total. The rounding residual is
// absorbed by the largest bucket (first on ties). A zero total yields
// all zeros rather than a division fault.
func roundPercentages(counts []int64) []float64 {
	pcts := make([]float64, len(counts))
	var total int64
	for _, c := range counts {
		total += c
	}
	if total == 0 {
		return pcts
	}
	var sum float64
	largest := 0
	for i, c := range counts {
		pcts[i] = round2(float64(c) * 100 / float64(total))
		sum += pcts[i]
		if c > counts[largest] {
			largest = i
		}
	}
	if residual := round2(100 - sum); residual != 0 {
		pcts[largest] = round2(pcts[largest] + residual)
	}
	return pcts
}
