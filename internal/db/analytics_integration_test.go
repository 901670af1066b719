package db

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/srs-vsa/analytics-backend/internal/models"
)

// Exercises the executors against a real database. Requires a throwaway
// database; the tables are created and dropped by the test.
func TestExecutorsIntegration(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	store, err := New(ctx, url, 5*time.Second)
	if err != nil {
		t.Fatalf("db connect: %v", err)
	}
	defer store.Close()

	setup := []string{
		`DROP TABLE IF EXISTS interaction_log`,
		`DROP TABLE IF EXISTS internal_users`,
		`CREATE TABLE interaction_log (
			id serial PRIMARY KEY,
			session_id text NOT NULL,
			user_id text,
			time_stamp timestamptz NOT NULL,
			environment text,
			input text,
			user_feedback text,
			response_time double precision,
			agent_tools jsonb,
			is_mobile_app boolean
		)`,
		`CREATE TABLE internal_users (user_id text PRIMARY KEY)`,
		`INSERT INTO internal_users VALUES ('staff-1')`,
		`INSERT INTO interaction_log
			(session_id, user_id, time_stamp, environment, input, user_feedback, response_time, agent_tools, is_mobile_app)
		VALUES
			('s1', 'u1', '2025-01-10T10:00:00Z', 'prod', 'need a pump', NULL, 1.5, '["search"]', true),
			('s1', 'u1', '2025-01-10T10:05:00Z', 'prod', 'thanks', '1', 2.0, NULL, true),
			('s2', 'u1', '2025-01-11T09:00:00Z', 'prod', 'filter broken', '-1', 1.0, '["search","lookup"]', false),
			('s3', 'staff-1', '2025-01-12T12:00:00Z', 'prod', 'internal check', NULL, 0.5, NULL, false)`,
	}
	for _, stmt := range setup {
		if _, err := store.Pool.Exec(ctx, stmt); err != nil {
			t.Fatalf("setup %q: %v", stmt, err)
		}
	}
	defer func() {
		_, _ = store.Pool.Exec(ctx, `DROP TABLE IF EXISTS interaction_log`)
		_, _ = store.Pool.Exec(ctx, `DROP TABLE IF EXISTS internal_users`)
	}()

	src, _ := SourceFor(models.ProductPool)
	f := models.Filters{
		Start:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		End:      time.Date(2025, 1, 31, 23, 59, 59, 0, time.UTC),
		Product:  models.ProductPool,
		UserType: models.UserTypeAll,
	}

	totals, err := store.SessionTotals(ctx, src, f)
	if err != nil {
		t.Fatalf("session totals: %v", err)
	}
	if totals.TotalSessions != 3 {
		t.Errorf("total sessions = %d, want 3", totals.TotalSessions)
	}
	if totals.PositiveFeedbackSessions != 1 || totals.NegativeFeedbackSessions != 1 {
		t.Errorf("feedback split = +%d/-%d", totals.PositiveFeedbackSessions, totals.NegativeFeedbackSessions)
	}

	// Only s1 has two rows; its duration is 5 minutes.
	dur, err := store.AvgSessionDuration(ctx, src, f)
	if err != nil {
		t.Fatalf("avg duration: %v", err)
	}
	if dur != 300 {
		t.Errorf("avg duration = %v, want 300", dur)
	}

	ret, err := store.RetentionCounts(ctx, src, f)
	if err != nil {
		t.Fatalf("retention: %v", err)
	}
	if ret.TotalUsers != 2 || ret.ReturningUsers != 1 {
		t.Errorf("retention = %+v", ret)
	}

	// External users exclude staff-1.
	ext := f
	ext.UserType = models.UserTypeExternal
	row, err := store.Engagement(ctx, src, ext)
	if err != nil {
		t.Fatalf("engagement: %v", err)
	}
	if row.UniqueUsers != 1 || row.TotalSessions != 2 {
		t.Errorf("external engagement = %+v", row)
	}

	tools, err := store.ToolUsage(ctx, src, f)
	if err != nil {
		t.Fatalf("tool usage: %v", err)
	}
	if len(tools) != 2 || tools[0].Tool != "search" || tools[0].Sessions != 2 {
		t.Errorf("tool usage = %+v", tools)
	}

	platforms, err := store.PlatformCounts(ctx, src, f)
	if err != nil {
		t.Fatalf("platform counts: %v", err)
	}
	if platforms.MobileSessions != 1 || platforms.WebSessions != 2 {
		t.Errorf("platform split = %+v", platforms)
	}

	firsts, err := store.FirstInputPerSession(ctx, src, f)
	if err != nil {
		t.Fatalf("first inputs: %v", err)
	}
	if len(firsts) != 3 {
		t.Errorf("first inputs = %d, want one per session", len(firsts))
	}
}
