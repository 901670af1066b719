package db

import (
	"context"
	"time"

	"github.com/srs-vsa/analytics-backend/internal/models"
)

type SessionTotals struct {
	TotalSessions            int64
	NegativeFeedbackSessions int64
	PositiveFeedbackSessions int64
	AvgResponseTime          float64
}

func (s *Store) SessionTotals(ctx context.Context, src Source, f models.Filters) (SessionTotals, error) {
	sql, args, err := sessionTotalsSQL(src, f)
	if err != nil {
		return SessionTotals{}, dataErr("session_totals", err)
	}
	ctx, cancel := s.deadline(ctx)
	defer cancel()

	var out SessionTotals
	row := s.Pool.QueryRow(ctx, sql, args...)
	if err := row.Scan(&out.TotalSessions, &out.NegativeFeedbackSessions, &out.PositiveFeedbackSessions, &out.AvgResponseTime); err != nil {
		return SessionTotals{}, dataErr("session_totals", err)
	}
	return out, nil
}

func (s *Store) AvgSessionDuration(ctx context.Context, src Source, f models.Filters) (float64, error) {
	sql, args, err := avgSessionDurationSQL(src, f)
	if err != nil {
		return 0, dataErr("avg_session_duration", err)
	}
	ctx, cancel := s.deadline(ctx)
	defer cancel()

	var avg float64
	if err := s.Pool.QueryRow(ctx, sql, args...).Scan(&avg); err != nil {
		return 0, dataErr("avg_session_duration", err)
	}
	return avg, nil
}

type DailyRow struct {
	Day      time.Time
	Sessions int64
}

func (s *Store) DailySessions(ctx context.Context, src Source, f models.Filters) ([]DailyRow, error) {
	sql, args, err := dailySessionsSQL(src, f)
	if err != nil {
		return nil, dataErr("daily_sessions", err)
	}
	ctx, cancel := s.deadline(ctx)
	defer cancel()

	rows, err := s.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, dataErr("daily_sessions", err)
	}
	defer rows.Close()

	var out []DailyRow
	for rows.Next() {
		var r DailyRow
		if err := rows.Scan(&r.Day, &r.Sessions); err != nil {
			return nil, dataErr("daily_sessions", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, dataErr("daily_sessions", err)
	}
	return out, nil
}

type EngagementRow struct {
	UniqueUsers   int64
	TotalSessions int64
}

func (s *Store) Engagement(ctx context.Context, src Source, f models.Filters) (EngagementRow, error) {
	sql, args, err := engagementSQL(src, f)
	if err != nil {
		return EngagementRow{}, dataErr("engagement", err)
	}
	ctx, cancel := s.deadline(ctx)
	defer cancel()

	var out EngagementRow
	if err := s.Pool.QueryRow(ctx, sql, args...).Scan(&out.UniqueUsers, &out.TotalSessions); err != nil {
		return EngagementRow{}, dataErr("engagement", err)
	}
	return out, nil
}

func (s *Store) CountSessions(ctx context.Context, src Source, f models.Filters) (int64, error) {
	sql, args, err := countSessionsSQL(src, f)
	if err != nil {
		return 0, dataErr("count_sessions", err)
	}
	ctx, cancel := s.deadline(ctx)
	defer cancel()

	var n int64
	if err := s.Pool.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, dataErr("count_sessions", err)
	}
	return n, nil
}

type RetentionCounts struct {
	TotalUsers     int64
	ReturningUsers int64
}

func (s *Store) RetentionCounts(ctx context.Context, src Source, f models.Filters) (RetentionCounts, error) {
	sql, args, err := retentionCountsSQL(src, f)
	if err != nil {
		return RetentionCounts{}, dataErr("retention_counts", err)
	}
	ctx, cancel := s.deadline(ctx)
	defer cancel()

	var out RetentionCounts
	if err := s.Pool.QueryRow(ctx, sql, args...).Scan(&out.TotalUsers, &out.ReturningUsers); err != nil {
		return RetentionCounts{}, dataErr("retention_counts", err)
	}
	return out, nil
}

type SegmentCounts struct {
	TotalUsers   int64
	PowerUsers   int64
	RegularUsers int64
	CasualUsers  int64
	OneTimeUsers int64
}

func (s *Store) SegmentCounts(ctx context.Context, src Source, f models.Filters) (SegmentCounts, error) {
	sql, args, err := segmentCountsSQL(src, f)
	if err != nil {
		return SegmentCounts{}, dataErr("segment_counts", err)
	}
	ctx, cancel := s.deadline(ctx)
	defer cancel()

	var out SegmentCounts
	if err := s.Pool.QueryRow(ctx, sql, args...).Scan(&out.TotalUsers, &out.PowerUsers, &out.RegularUsers, &out.CasualUsers, &out.OneTimeUsers); err != nil {
		return SegmentCounts{}, dataErr("segment_counts", err)
	}
	return out, nil
}

type ReturningUserAgg struct {
	ReturningUsers int64
	AvgSessions    float64
	AvgSpanDays    float64
	MaxSpanDays    int64
}

func (s *Store) ReturningUserAgg(ctx context.Context, src Source, f models.Filters) (ReturningUserAgg, error) {
	sql, args, err := returningUserAggSQL(src, f)
	if err != nil {
		return ReturningUserAgg{}, dataErr("returning_user_agg", err)
	}
	ctx, cancel := s.deadline(ctx)
	defer cancel()

	var out ReturningUserAgg
	if err := s.Pool.QueryRow(ctx, sql, args...).Scan(&out.ReturningUsers, &out.AvgSessions, &out.AvgSpanDays, &out.MaxSpanDays); err != nil {
		return ReturningUserAgg{}, dataErr("returning_user_agg", err)
	}
	return out, nil
}

type MostActiveUser struct {
	UserID   string
	Sessions int64
}

// MostActiveReturningUser returns nil when no returning user exists.
func (s *Store) MostActiveReturningUser(ctx context.Context, src Source, f models.Filters) (*MostActiveUser, error) {
	sql, args, err := mostActiveReturningUserSQL(src, f)
	if err != nil {
		return nil, dataErr("most_active_user", err)
	}
	ctx, cancel := s.deadline(ctx)
	defer cancel()

	rows, err := s.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, dataErr("most_active_user", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, dataErr("most_active_user", err)
		}
		return nil, nil
	}
	var out MostActiveUser
	if err := rows.Scan(&out.UserID, &out.Sessions); err != nil {
		return nil, dataErr("most_active_user", err)
	}
	return &out, nil
}

type HourRow struct {
	Hour     int
	Sessions int64
}

func (s *Store) SessionsByHour(ctx context.Context, src Source, f models.Filters) ([]HourRow, error) {
	sql, args, err := sessionsByHourSQL(src, f)
	if err != nil {
		return nil, dataErr("sessions_by_hour", err)
	}
	return s.hourRows(ctx, "sessions_by_hour", sql, args)
}

func (s *Store) SessionsByDayOfWeek(ctx context.Context, src Source, f models.Filters) ([]HourRow, error) {
	sql, args, err := sessionsByDayOfWeekSQL(src, f)
	if err != nil {
		return nil, dataErr("sessions_by_dow", err)
	}
	return s.hourRows(ctx, "sessions_by_dow", sql, args)
}

func (s *Store) hourRows(ctx context.Context, op, sql string, args []interface{}) ([]HourRow, error) {
	ctx, cancel := s.deadline(ctx)
	defer cancel()

	rows, err := s.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, dataErr(op, err)
	}
	defer rows.Close()

	var out []HourRow
	for rows.Next() {
		var r HourRow
		if err := rows.Scan(&r.Hour, &r.Sessions); err != nil {
			return nil, dataErr(op, err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, dataErr(op, err)
	}
	return out, nil
}

type ConversationLengths struct {
	TotalSessions  int64
	AvgMessages    float64
	MaxMessages    int64
	ShortSessions  int64
	MediumSessions int64
	LongSessions   int64
}

func (s *Store) ConversationLengths(ctx context.Context, src Source, f models.Filters) (ConversationLengths, error) {
	sql, args, err := conversationLengthSQL(src, f)
	if err != nil {
		return ConversationLengths{}, dataErr("conversation_lengths", err)
	}
	ctx, cancel := s.deadline(ctx)
	defer cancel()

	var out ConversationLengths
	if err := s.Pool.QueryRow(ctx, sql, args...).Scan(&out.TotalSessions, &out.AvgMessages, &out.MaxMessages, &out.ShortSessions, &out.MediumSessions, &out.LongSessions); err != nil {
		return ConversationLengths{}, dataErr("conversation_lengths", err)
	}
	return out, nil
}

type ToolRow struct {
	Tool     string
	Sessions int64
}

func (s *Store) ToolUsage(ctx context.Context, src Source, f models.Filters) ([]ToolRow, error) {
	sql, args, err := toolUsageSQL(src, f)
	if err != nil {
		return nil, dataErr("tool_usage", err)
	}
	ctx, cancel := s.deadline(ctx)
	defer cancel()

	rows, err := s.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, dataErr("tool_usage", err)
	}
	defer rows.Close()

	var out []ToolRow
	for rows.Next() {
		var r ToolRow
		if err := rows.Scan(&r.Tool, &r.Sessions); err != nil {
			return nil, dataErr("tool_usage", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, dataErr("tool_usage", err)
	}
	return out, nil
}

type PlatformCounts struct {
	MobileSessions int64
	WebSessions    int64
}

func (s *Store) PlatformCounts(ctx context.Context, src Source, f models.Filters) (PlatformCounts, error) {
	sql, args, err := platformCountsSQL(src, f)
	if err != nil {
		return PlatformCounts{}, dataErr("platform_counts", err)
	}
	ctx, cancel := s.deadline(ctx)
	defer cancel()

	var out PlatformCounts
	if err := s.Pool.QueryRow(ctx, sql, args...).Scan(&out.MobileSessions, &out.WebSessions); err != nil {
		return PlatformCounts{}, dataErr("platform_counts", err)
	}
	return out, nil
}

type QueryText struct {
	SessionID string
	Text      string
}

func (s *Store) UserQueryTexts(ctx context.Context, src Source, f models.Filters) ([]QueryText, error) {
	sql, args, err := userQueryTextsSQL(src, f)
	if err != nil {
		return nil, dataErr("user_query_texts", err)
	}
	return s.queryTexts(ctx, "user_query_texts", sql, args)
}

func (s *Store) FirstInputPerSession(ctx context.Context, src Source, f models.Filters) ([]QueryText, error) {
	sql, args, err := firstInputPerSessionSQL(src, f)
	if err != nil {
		return nil, dataErr("first_input_per_session", err)
	}
	return s.queryTexts(ctx, "first_input_per_session", sql, args)
}

func (s *Store) queryTexts(ctx context.Context, op, sql string, args []interface{}) ([]QueryText, error) {
	ctx, cancel := s.deadline(ctx)
	defer cancel()

	rows, err := s.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, dataErr(op, err)
	}
	defer rows.Close()

	var out []QueryText
	for rows.Next() {
		var r QueryText
		if err := rows.Scan(&r.SessionID, &r.Text); err != nil {
			return nil, dataErr(op, err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, dataErr(op, err)
	}
	return out, nil
}
