package db

import (
	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/srs-vsa/analytics-backend/internal/models"
)

var dialect = goqu.Dialect("postgres")

// filterExprs translates every present filter field into a SQL predicate.
// This is the only place filter fields become WHERE conditions; nothing
// downstream re-filters materialized rows.
func filterExprs(f models.Filters) []goqu.Expression {
	exprs := []goqu.Expression{
		goqu.C("time_stamp").Gte(f.Start),
		goqu.C("time_stamp").Lte(f.End),
	}
	if f.Environment != "" {
		exprs = append(exprs, goqu.C("environment").Eq(f.Environment))
	}
	if f.UserID != "" {
		exprs = append(exprs, goqu.C("user_id").Eq(f.UserID))
	}
	switch f.UserType {
	case models.UserTypeInternal:
		exprs = append(exprs, goqu.L("user_id IN (SELECT user_id FROM internal_users)"))
	case models.UserTypeExternal:
		exprs = append(exprs, goqu.L("user_id NOT IN (SELECT user_id FROM internal_users)"))
	}
	return exprs
}

func base(src Source, f models.Filters) *goqu.SelectDataset {
	return dialect.From(src.Table).Prepared(true).Where(filterExprs(f)...)
}

func sessionTotalsSQL(src Source, f models.Filters) (string, []interface{}, error) {
	return base(src, f).Select(
		goqu.L("COUNT(DISTINCT session_id)").As("total_sessions"),
		goqu.L("COUNT(DISTINCT session_id) FILTER (WHERE user_feedback = '-1')").As("negative_feedback_sessions"),
		goqu.L("COUNT(DISTINCT session_id) FILTER (WHERE user_feedback = '1')").As("positive_feedback_sessions"),
		goqu.L("COALESCE(AVG(response_time), 0)").As("avg_response_time"),
	).ToSQL()
}

// Sessions with a single row have no defined duration and are excluded
// from the average, not counted as zero.
func avgSessionDurationSQL(src Source, f models.Filters) (string, []interface{}, error) {
	perSession := base(src, f).Select(
		goqu.L("EXTRACT(EPOCH FROM MAX(time_stamp) - MIN(time_stamp))").As("duration_seconds"),
		goqu.L("COUNT(*)").As("row_count"),
	).GroupBy(goqu.C("session_id"))

	return dialect.From(perSession.As("s")).Prepared(true).Select(
		goqu.L("COALESCE(AVG(duration_seconds) FILTER (WHERE row_count >= 2), 0)").As("avg_duration"),
	).ToSQL()
}

func dailySessionsSQL(src Source, f models.Filters) (string, []interface{}, error) {
	return base(src, f).Select(
		goqu.L("time_stamp::date").As("day"),
		goqu.L("COUNT(DISTINCT session_id)").As("session_count"),
	).GroupBy(goqu.L("time_stamp::date")).
		Order(goqu.C("day").Asc()).
		ToSQL()
}

func engagementSQL(src Source, f models.Filters) (string, []interface{}, error) {
	return base(src, f).Select(
		goqu.L("COUNT(DISTINCT user_id)").As("unique_users"),
		goqu.L("COUNT(DISTINCT session_id)").As("total_sessions"),
	).ToSQL()
}

func countSessionsSQL(src Source, f models.Filters) (string, []interface{}, error) {
	return base(src, f).Select(goqu.L("COUNT(DISTINCT session_id)")).ToSQL()
}

// perUserSessions is the shared per-user aggregate behind retention,
// segmentation, and returning-user behavior.
func perUserSessions(src Source, f models.Filters) *goqu.SelectDataset {
	return base(src, f).
		Where(goqu.C("user_id").IsNotNull()).
		Select(
			goqu.C("user_id"),
			goqu.L("COUNT(DISTINCT session_id)").As("session_count"),
			goqu.L("MIN(time_stamp)").As("first_seen"),
			goqu.L("MAX(time_stamp::date) - MIN(time_stamp::date)").As("span_days"),
		).
		GroupBy(goqu.C("user_id"))
}

func retentionCountsSQL(src Source, f models.Filters) (string, []interface{}, error) {
	return dialect.From(perUserSessions(src, f).As("u")).Prepared(true).Select(
		goqu.L("COUNT(*)").As("total_users"),
		goqu.L("COUNT(*) FILTER (WHERE session_count >= 2)").As("returning_users"),
	).ToSQL()
}

func segmentCountsSQL(src Source, f models.Filters) (string, []interface{}, error) {
	return dialect.From(perUserSessions(src, f).As("u")).Prepared(true).Select(
		goqu.L("COUNT(*)").As("total_users"),
		goqu.L("COUNT(*) FILTER (WHERE session_count >= 10)").As("power_users"),
		goqu.L("COUNT(*) FILTER (WHERE session_count BETWEEN 3 AND 9)").As("regular_users"),
		goqu.L("COUNT(*) FILTER (WHERE session_count = 2)").As("casual_users"),
		goqu.L("COUNT(*) FILTER (WHERE session_count = 1)").As("one_time_users"),
	).ToSQL()
}

func returningUserAggSQL(src Source, f models.Filters) (string, []interface{}, error) {
	return dialect.From(perUserSessions(src, f).As("u")).Prepared(true).
		Where(goqu.C("session_count").Gte(2)).
		Select(
			goqu.L("COUNT(*)").As("returning_users"),
			goqu.L("COALESCE(AVG(session_count), 0)").As("avg_sessions"),
			goqu.L("COALESCE(AVG(span_days), 0)").As("avg_span_days"),
			goqu.L("COALESCE(MAX(span_days), 0)").As("max_span_days"),
		).ToSQL()
}

// Ranking happens in SQL: most sessions first, ties to the user whose
// first session is earliest.
func mostActiveReturningUserSQL(src Source, f models.Filters) (string, []interface{}, error) {
	return dialect.From(perUserSessions(src, f).As("u")).Prepared(true).
		Where(goqu.C("session_count").Gte(2)).
		Select(goqu.C("user_id"), goqu.C("session_count")).
		Order(goqu.C("session_count").Desc(), goqu.C("first_seen").Asc()).
		Limit(1).
		ToSQL()
}

// Hour of day in the stored timezone; no conversion is performed.
func sessionsByHourSQL(src Source, f models.Filters) (string, []interface{}, error) {
	return base(src, f).Select(
		goqu.L("EXTRACT(HOUR FROM time_stamp)::int").As("hour"),
		goqu.L("COUNT(DISTINCT session_id)").As("session_count"),
	).GroupBy(goqu.L("EXTRACT(HOUR FROM time_stamp)")).
		Order(goqu.C("hour").Asc()).
		ToSQL()
}

func sessionsByDayOfWeekSQL(src Source, f models.Filters) (string, []interface{}, error) {
	return base(src, f).Select(
		goqu.L("EXTRACT(DOW FROM time_stamp)::int").As("day_of_week"),
		goqu.L("COUNT(DISTINCT session_id)").As("session_count"),
	).GroupBy(goqu.L("EXTRACT(DOW FROM time_stamp)")).
		Order(goqu.C("day_of_week").Asc()).
		ToSQL()
}

func conversationLengthSQL(src Source, f models.Filters) (string, []interface{}, error) {
	perSession := base(src, f).Select(
		goqu.L("COUNT(*)").As("message_count"),
	).GroupBy(goqu.C("session_id"))

	return dialect.From(perSession.As("s")).Prepared(true).Select(
		goqu.L("COUNT(*)").As("total_sessions"),
		goqu.L("COALESCE(AVG(message_count), 0)").As("avg_messages"),
		goqu.L("COALESCE(MAX(message_count), 0)").As("max_messages"),
		goqu.L("COUNT(*) FILTER (WHERE message_count <= 2)").As("short_sessions"),
		goqu.L("COUNT(*) FILTER (WHERE message_count BETWEEN 3 AND 5)").As("medium_sessions"),
		goqu.L("COUNT(*) FILTER (WHERE message_count >= 6)").As("long_sessions"),
	).ToSQL()
}

// Tool labels come from the structured agent_tools jsonb trace column,
// unnested in SQL. No free-text classification is involved.
func toolUsageSQL(src Source, f models.Filters) (string, []interface{}, error) {
	exprs := append(filterExprs(f), goqu.C("agent_tools").IsNotNull())
	return dialect.From(
		goqu.T(src.Table),
		goqu.L("LATERAL jsonb_array_elements_text(agent_tools) AS tool"),
	).Prepared(true).
		Where(exprs...).
		Select(
			goqu.L("tool"),
			goqu.L("COUNT(DISTINCT session_id)").As("session_count"),
		).
		GroupBy(goqu.L("tool")).
		Order(goqu.C("session_count").Desc(), goqu.L("tool").Asc()).
		ToSQL()
}

func platformCountsSQL(src Source, f models.Filters) (string, []interface{}, error) {
	return base(src, f).Select(
		goqu.L("COUNT(DISTINCT session_id) FILTER (WHERE COALESCE(is_mobile_app, false))").As("mobile_sessions"),
		goqu.L("COUNT(DISTINCT session_id) FILTER (WHERE NOT COALESCE(is_mobile_app, false))").As("web_sessions"),
	).ToSQL()
}

// All non-empty user inputs in first-occurrence order, for clustering and
// sentiment.
func userQueryTextsSQL(src Source, f models.Filters) (string, []interface{}, error) {
	return base(src, f).
		Where(goqu.C("input").IsNotNull(), goqu.C("input").Neq("")).
		Select(goqu.C("session_id"), goqu.C("input")).
		Order(goqu.C("time_stamp").Asc(), goqu.C("id").Asc()).
		ToSQL()
}

// First non-empty user input per session, for category assignment: each
// session gets exactly one category.
func firstInputPerSessionSQL(src Source, f models.Filters) (string, []interface{}, error) {
	return base(src, f).
		Where(goqu.C("input").IsNotNull(), goqu.C("input").Neq("")).
		Select(goqu.L("DISTINCT ON (session_id) session_id, input")).
		Order(goqu.C("session_id").Asc(), goqu.C("time_stamp").Asc()).
		ToSQL()
}
