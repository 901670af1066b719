package analytics

import "testing"

func TestShapeSentimentEmpty(t *testing.T) {
	out := shapeSentiment(nil)
	if out.TotalMessages != 0 || out.AvgScore != 0 {
		t.Errorf("empty input produced %+v", out)
	}
	if len(out.Distribution) != 3 {
		t.Fatalf("distribution must always list the three bands, got %d", len(out.Distribution))
	}
	if out.MostPositive == nil || out.MostNegative == nil {
		t.Error("example lists should be empty arrays, not null")
	}
}

func TestShapeSentimentBands(t *testing.T) {
	out := shapeSentiment([]classified{
		{Text: "a", Score: 0.9},
		{Text: "b", Score: 0.06},
		{Text: "c", Score: 0.05},  // boundary: neutral
		{Text: "d", Score: -0.05}, // boundary: neutral
		{Text: "e", Score: -0.2},
	})
	if out.TotalMessages != 5 {
		t.Errorf("total = %d", out.TotalMessages)
	}
	wantCounts := map[string]int{"positive": 2, "neutral": 2, "negative": 1}
	var pct float64
	for _, band := range out.Distribution {
		if band.Count != wantCounts[band.Category] {
			t.Errorf("band %s count = %d, want %d", band.Category, band.Count, wantCounts[band.Category])
		}
		pct += band.Percentage
	}
	if round2(pct) != 100 {
		t.Errorf("band percentages sum to %v", pct)
	}
	if out.AvgScore != round3((0.9+0.06+0.05-0.05-0.2)/5) {
		t.Errorf("avg score = %v", out.AvgScore)
	}
}

func TestShapeSentimentExtremes(t *testing.T) {
	items := []classified{
		{Text: "first", Score: 0.5},
		{Text: "second", Score: 0.5}, // tie: first stays ahead
		{Text: "low", Score: -0.9},
		{Text: "mid", Score: 0},
		{Text: "high", Score: 0.8},
		{Text: "f", Score: 0.1},
		{Text: "g", Score: 0.2},
	}
	out := shapeSentiment(items)

	if len(out.MostPositive) != 5 || len(out.MostNegative) != 5 {
		t.Fatalf("extremes capped at 5: %d / %d", len(out.MostPositive), len(out.MostNegative))
	}
	if out.MostPositive[0].Message != "high" {
		t.Errorf("most positive = %q", out.MostPositive[0].Message)
	}
	if out.MostPositive[1].Message != "first" || out.MostPositive[2].Message != "second" {
		t.Errorf("tie should keep input order: %q, %q", out.MostPositive[1].Message, out.MostPositive[2].Message)
	}
	if out.MostNegative[0].Message != "low" {
		t.Errorf("most negative = %q", out.MostNegative[0].Message)
	}
}

func TestShapeSentimentFewerThanTopK(t *testing.T) {
	out := shapeSentiment([]classified{{Text: "only", Score: 0.3}})
	if len(out.MostPositive) != 1 || len(out.MostNegative) != 1 {
		t.Errorf("short input extremes = %d / %d", len(out.MostPositive), len(out.MostNegative))
	}
}
