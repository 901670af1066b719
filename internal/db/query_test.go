package db

import (
	"strings"
	"testing"
	"time"

	"github.com/srs-vsa/analytics-backend/internal/models"
)

func testFilters() models.Filters {
	return models.Filters{
		Start:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		End:     time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
		Product: models.ProductPool,
	}
}

func mustSQL(t *testing.T, sql string, args []interface{}, err error) (string, []interface{}) {
	t.Helper()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	return sql, args
}

// Each query must reference exactly the routed table, never both.
func TestQueryTargetsOneTable(t *testing.T) {
	builders := map[string]func(Source, models.Filters) (string, []interface{}, error){
		"session_totals":       sessionTotalsSQL,
		"avg_session_duration": avgSessionDurationSQL,
		"daily_sessions":       dailySessionsSQL,
		"engagement":           engagementSQL,
		"count_sessions":       countSessionsSQL,
		"retention_counts":     retentionCountsSQL,
		"segment_counts":       segmentCountsSQL,
		"returning_user_agg":   returningUserAggSQL,
		"most_active_user":     mostActiveReturningUserSQL,
		"sessions_by_hour":     sessionsByHourSQL,
		"sessions_by_dow":      sessionsByDayOfWeekSQL,
		"conversation_length":  conversationLengthSQL,
		"tool_usage":           toolUsageSQL,
		"user_query_texts":     userQueryTextsSQL,
		"first_input":          firstInputPerSessionSQL,
	}

	pool, _ := SourceFor(models.ProductPool)
	landscape, _ := SourceFor(models.ProductLandscape)
	f := testFilters()

	for name, build := range builders {
		t.Run(name, func(t *testing.T) {
			s, a, err := build(pool, f)
			sql, _ := mustSQL(t, s, a, err)
			if !strings.Contains(sql, `"interaction_log"`) {
				t.Errorf("pool query does not target interaction_log: %s", sql)
			}
			if strings.Contains(sql, "landscape_interaction_log") {
				t.Errorf("pool query leaks landscape table: %s", sql)
			}

			s, a, err = build(landscape, f)
			sql, _ = mustSQL(t, s, a, err)
			if !strings.Contains(sql, `"landscape_interaction_log"`) {
				t.Errorf("landscape query does not target its table: %s", sql)
			}
		})
	}
}

func TestFilterPredicatesInSQL(t *testing.T) {
	pool, _ := SourceFor(models.ProductPool)

	f := testFilters()
	s, a, err := engagementSQL(pool, f)
	sql, args := mustSQL(t, s, a, err)
	if !strings.Contains(sql, `"time_stamp" >=`) || !strings.Contains(sql, `"time_stamp" <=`) {
		t.Errorf("timestamp range missing: %s", sql)
	}
	if len(args) != 2 {
		t.Errorf("base filters should bind 2 args, got %d", len(args))
	}

	f.Environment = "prod"
	f.UserID = "u-7"
	s, a, err = engagementSQL(pool, f)
	sql, args = mustSQL(t, s, a, err)
	if !strings.Contains(sql, `"environment" =`) {
		t.Errorf("environment predicate missing: %s", sql)
	}
	if !strings.Contains(sql, `"user_id" =`) {
		t.Errorf("user_id predicate missing: %s", sql)
	}
	if len(args) != 4 {
		t.Errorf("want 4 bound args, got %d", len(args))
	}
}

func TestUserTypePredicate(t *testing.T) {
	pool, _ := SourceFor(models.ProductPool)

	f := testFilters()
	f.UserType = models.UserTypeInternal
	s, a, err := engagementSQL(pool, f)
	sql, _ := mustSQL(t, s, a, err)
	if !strings.Contains(sql, "user_id IN (SELECT user_id FROM internal_users)") {
		t.Errorf("internal membership predicate missing: %s", sql)
	}

	f.UserType = models.UserTypeExternal
	s, a, err = engagementSQL(pool, f)
	sql, _ = mustSQL(t, s, a, err)
	if !strings.Contains(sql, "user_id NOT IN (SELECT user_id FROM internal_users)") {
		t.Errorf("external exclusion predicate missing: %s", sql)
	}

	f.UserType = models.UserTypeAll
	s, a, err = engagementSQL(pool, f)
	sql, _ = mustSQL(t, s, a, err)
	if strings.Contains(sql, "internal_users") {
		t.Errorf("user_type=all must not touch internal_users: %s", sql)
	}
}

func TestSegmentBucketsAreDisjoint(t *testing.T) {
	pool, _ := SourceFor(models.ProductPool)
	s, a, err := segmentCountsSQL(pool, testFilters())
	sql, _ := mustSQL(t, s, a, err)

	for _, clause := range []string{
		"session_count >= 10",
		"session_count BETWEEN 3 AND 9",
		"session_count = 2",
		"session_count = 1",
	} {
		if !strings.Contains(sql, clause) {
			t.Errorf("segment clause %q missing: %s", clause, sql)
		}
	}
}

func TestMostActiveUserRanksInSQL(t *testing.T) {
	pool, _ := SourceFor(models.ProductPool)
	s, a, err := mostActiveReturningUserSQL(pool, testFilters())
	sql, _ := mustSQL(t, s, a, err)
	if !strings.Contains(sql, "LIMIT") {
		t.Errorf("ranking must happen in SQL: %s", sql)
	}
	if !strings.Contains(sql, `"session_count" DESC`) || !strings.Contains(sql, `"first_seen" ASC`) {
		t.Errorf("tie-break ordering missing: %s", sql)
	}
}

func TestToolUsageUnnestsJSONB(t *testing.T) {
	pool, _ := SourceFor(models.ProductPool)
	s, a, err := toolUsageSQL(pool, testFilters())
	sql, _ := mustSQL(t, s, a, err)
	if !strings.Contains(sql, "jsonb_array_elements_text(agent_tools)") {
		t.Errorf("jsonb unnest missing: %s", sql)
	}
}

func TestDurationExcludesSingleRowSessions(t *testing.T) {
	pool, _ := SourceFor(models.ProductPool)
	s, a, err := avgSessionDurationSQL(pool, testFilters())
	sql, _ := mustSQL(t, s, a, err)
	if !strings.Contains(sql, "FILTER (WHERE row_count >= 2)") {
		t.Errorf("single-row sessions must be excluded, not zeroed: %s", sql)
	}
}
