package analytics

import (
	"context"

	"github.com/srs-vsa/analytics-backend/internal/db"
	"github.com/srs-vsa/analytics-backend/internal/models"
)

// SessionMetrics returns session counts, feedback splits, and the
// average duration over sessions with at least two rows.
func (s *Service) SessionMetrics(ctx context.Context, f models.Filters) (models.SessionMetrics, error) {
	src, err := db.SourceFor(f.Product)
	if err != nil {
		return models.SessionMetrics{}, err
	}
	totals, err := s.Store.SessionTotals(ctx, src, f)
	if err != nil {
		return models.SessionMetrics{}, err
	}
	duration, err := s.Store.AvgSessionDuration(ctx, src, f)
	if err != nil {
		return models.SessionMetrics{}, err
	}
	return models.SessionMetrics{
		TotalSessions:             totals.TotalSessions,
		NegativeFeedbackSessions:  totals.NegativeFeedbackSessions,
		PositiveFeedbackSessions:  totals.PositiveFeedbackSessions,
		AvgSessionDurationSeconds: round2(duration),
		AvgResponseTimeSeconds:    round2(totals.AvgResponseTime),
		FiltersApplied:            f.Applied(),
	}, nil
}

func (s *Service) VolumeTrends(ctx context.Context, f models.Filters) (models.VolumeTrends, error) {
	src, err := db.SourceFor(f.Product)
	if err != nil {
		return models.VolumeTrends{}, err
	}
	rows, err := s.Store.DailySessions(ctx, src, f)
	if err != nil {
		return models.VolumeTrends{}, err
	}
	out := shapeVolumeTrends(rows)
	out.FiltersApplied = f.Applied()
	return out, nil
}

// shapeVolumeTrends averages over active days only: days with zero
// sessions do not dilute the average. Peak and lowest ties go to the
// earliest date (rows arrive date-ascending).
func shapeVolumeTrends(rows []db.DailyRow) models.VolumeTrends {
	out := models.VolumeTrends{DailyData: []models.DailySessions{}}
	if len(rows) == 0 {
		return out
	}
	peak, lowest := 0, 0
	for i, r := range rows {
		out.TotalSessions += r.Sessions
		out.DailyData = append(out.DailyData, models.DailySessions{
			Date:         r.Day.Format("2006-01-02"),
			SessionCount: r.Sessions,
		})
		if r.Sessions > rows[peak].Sessions {
			peak = i
		}
		if r.Sessions < rows[lowest].Sessions {
			lowest = i
		}
	}
	out.TotalDays = len(rows)
	out.AvgSessionsPerDay = round2(float64(out.TotalSessions) / float64(len(rows)))
	out.PeakDay = rows[peak].Day.Format("2006-01-02")
	out.PeakDaySessions = rows[peak].Sessions
	out.LowestDay = rows[lowest].Day.Format("2006-01-02")
	out.LowestDaySessions = rows[lowest].Sessions
	return out
}

func (s *Service) UserEngagement(ctx context.Context, f models.Filters) (models.UserEngagement, error) {
	src, err := db.SourceFor(f.Product)
	if err != nil {
		return models.UserEngagement{}, err
	}
	row, err := s.Store.Engagement(ctx, src, f)
	if err != nil {
		return models.UserEngagement{}, err
	}
	out := models.UserEngagement{
		UniqueUsers:    row.UniqueUsers,
		TotalSessions:  row.TotalSessions,
		FiltersApplied: f.Applied(),
	}
	if row.UniqueUsers > 0 {
		out.AvgSessionsPerUser = round2(float64(row.TotalSessions) / float64(row.UniqueUsers))
	}
	return out, nil
}

// UserRetention counts returning users: users with at least two distinct
// sessions in range. The same definition backs ReturningUserBehavior.
func (s *Service) UserRetention(ctx context.Context, f models.Filters) (models.UserRetention, error) {
	src, err := db.SourceFor(f.Product)
	if err != nil {
		return models.UserRetention{}, err
	}
	counts, err := s.Store.RetentionCounts(ctx, src, f)
	if err != nil {
		return models.UserRetention{}, err
	}
	out := models.UserRetention{
		TotalUsers:     counts.TotalUsers,
		ReturningUsers: counts.ReturningUsers,
		OneTimeUsers:   counts.TotalUsers - counts.ReturningUsers,
		FiltersApplied: f.Applied(),
	}
	if counts.TotalUsers > 0 {
		out.ReturningUsersPercent = round2(float64(out.ReturningUsers) * 100 / float64(counts.TotalUsers))
		out.OneTimeUsersPercent = round2(float64(out.OneTimeUsers) * 100 / float64(counts.TotalUsers))
	}
	return out, nil
}

func (s *Service) AgentToolUsage(ctx context.Context, f models.Filters) (models.AgentToolUsage, error) {
	src, err := db.SourceFor(f.Product)
	if err != nil {
		return models.AgentToolUsage{}, err
	}
	total, err := s.Store.CountSessions(ctx, src, f)
	if err != nil {
		return models.AgentToolUsage{}, err
	}
	rows, err := s.Store.ToolUsage(ctx, src, f)
	if err != nil {
		return models.AgentToolUsage{}, err
	}
	out := models.AgentToolUsage{
		TotalSessions:  total,
		Tools:          []models.ToolUsage{},
		FiltersApplied: f.Applied(),
	}
	for _, r := range rows {
		t := models.ToolUsage{Tool: r.Tool, SessionCount: r.Sessions}
		if total > 0 {
			t.Percentage = round2(float64(r.Sessions) * 100 / float64(total))
		}
		out.Tools = append(out.Tools, t)
	}
	return out, nil
}

func (s *Service) ReturningUserBehavior(ctx context.Context, f models.Filters) (models.ReturningUserBehavior, error) {
	src, err := db.SourceFor(f.Product)
	if err != nil {
		return models.ReturningUserBehavior{}, err
	}
	agg, err := s.Store.ReturningUserAgg(ctx, src, f)
	if err != nil {
		return models.ReturningUserBehavior{}, err
	}
	out := models.ReturningUserBehavior{
		ReturningUsersCount:         agg.ReturningUsers,
		AvgSessionsPerReturningUser: round2(agg.AvgSessions),
		AvgSpanDays:                 round2(agg.AvgSpanDays),
		MaxSpanDays:                 agg.MaxSpanDays,
		FiltersApplied:              f.Applied(),
	}
	if agg.ReturningUsers == 0 {
		return out, nil
	}
	top, err := s.Store.MostActiveReturningUser(ctx, src, f)
	if err != nil {
		return models.ReturningUserBehavior{}, err
	}
	if top != nil {
		out.MostActiveUserID = top.UserID
		out.MostActiveUserSessions = top.Sessions
	}
	return out, nil
}

var segmentOrder = []string{"power", "regular", "casual", "one_time"}

// UserSegmentation buckets are disjoint and exhaustive over distinct
// users in range: power >=10, regular 3-9, casual 2, one-time 1.
func (s *Service) UserSegmentation(ctx context.Context, f models.Filters) (models.UserSegmentation, error) {
	src, err := db.SourceFor(f.Product)
	if err != nil {
		return models.UserSegmentation{}, err
	}
	counts, err := s.Store.SegmentCounts(ctx, src, f)
	if err != nil {
		return models.UserSegmentation{}, err
	}
	return shapeSegmentation(counts, f.Applied()), nil
}

func shapeSegmentation(counts db.SegmentCounts, applied models.FiltersApplied) models.UserSegmentation {
	byBucket := []int64{counts.PowerUsers, counts.RegularUsers, counts.CasualUsers, counts.OneTimeUsers}
	pcts := roundPercentages(byBucket)
	out := models.UserSegmentation{
		TotalUsers:     counts.TotalUsers,
		Segments:       make([]models.UserSegment, len(segmentOrder)),
		FiltersApplied: applied,
	}
	for i, name := range segmentOrder {
		out.Segments[i] = models.UserSegment{
			Segment:    name,
			UserCount:  byBucket[i],
			Percentage: pcts[i],
		}
	}
	return out
}

var dayNames = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

func (s *Service) TimePatterns(ctx context.Context, f models.Filters) (models.TimePatterns, error) {
	src, err := db.SourceFor(f.Product)
	if err != nil {
		return models.TimePatterns{}, err
	}
	hourRows, err := s.Store.SessionsByHour(ctx, src, f)
	if err != nil {
		return models.TimePatterns{}, err
	}
	dowRows, err := s.Store.SessionsByDayOfWeek(ctx, src, f)
	if err != nil {
		return models.TimePatterns{}, err
	}
	out := shapeTimePatterns(hourRows, dowRows)
	out.FiltersApplied = f.Applied()
	return out, nil
}

func shapeTimePatterns(hourRows, dowRows []db.HourRow) models.TimePatterns {
	out := models.TimePatterns{
		ByHour: make([]models.HourSessions, 24),
		ByDay:  make([]models.DaySessions, 7),
	}
	for h := 0; h < 24; h++ {
		out.ByHour[h] = models.HourSessions{Hour: h}
	}
	for d := 0; d < 7; d++ {
		out.ByDay[d] = models.DaySessions{Day: dayNames[d], DayNumber: d}
	}
	for _, r := range hourRows {
		if r.Hour >= 0 && r.Hour < 24 {
			out.ByHour[r.Hour].SessionCount = r.Sessions
		}
	}
	for _, r := range dowRows {
		if r.Hour >= 0 && r.Hour < 7 {
			out.ByDay[r.Hour].SessionCount = r.Sessions
		}
	}
	for _, h := range out.ByHour {
		if h.SessionCount > out.PeakHourSessions {
			out.PeakHour = h.Hour
			out.PeakHourSessions = h.SessionCount
		}
	}
	for _, d := range out.ByDay {
		if d.SessionCount > out.PeakDaySessions {
			out.PeakDay = d.Day
			out.PeakDaySessions = d.SessionCount
		}
	}
	return out
}

func (s *Service) ConversationLength(ctx context.Context, f models.Filters) (models.ConversationLength, error) {
	src, err := db.SourceFor(f.Product)
	if err != nil {
		return models.ConversationLength{}, err
	}
	row, err := s.Store.ConversationLengths(ctx, src, f)
	if err != nil {
		return models.ConversationLength{}, err
	}
	pcts := roundPercentages([]int64{row.ShortSessions, row.MediumSessions, row.LongSessions})
	return models.ConversationLength{
		TotalSessions:          row.TotalSessions,
		AvgMessagesPerSession:  round2(row.AvgMessages),
		LongestSessionMessages: row.MaxMessages,
		Distribution: []models.LengthBucket{
			{Category: "Short (1-2 messages)", SessionCount: row.ShortSessions, Percentage: pcts[0]},
			{Category: "Medium (3-5 messages)", SessionCount: row.MediumSessions, Percentage: pcts[1]},
			{Category: "Long (6+ messages)", SessionCount: row.LongSessions, Percentage: pcts[2]},
		},
		FiltersApplied: f.Applied(),
	}, nil
}

// PlatformAnalytics consults the source capability set first. The
// landscape table has no platform flag, so the result is marked
// unavailable instead of reporting a misleading all-web split.
func (s *Service) PlatformAnalytics(ctx context.Context, f models.Filters) (models.PlatformAnalytics, error) {
	src, err := db.SourceFor(f.Product)
	if err != nil {
		return models.PlatformAnalytics{}, err
	}
	if !src.HasPlatform {
		return models.PlatformAnalytics{Available: false, FiltersApplied: f.Applied()}, nil
	}
	counts, err := s.Store.PlatformCounts(ctx, src, f)
	if err != nil {
		return models.PlatformAnalytics{}, err
	}
	pcts := roundPercentages([]int64{counts.MobileSessions, counts.WebSessions})
	return models.PlatformAnalytics{
		Available: true,
		Platforms: []models.PlatformSplit{
			{Platform: "Mobile", SessionCount: counts.MobileSessions, Percentage: pcts[0]},
			{Platform: "Web", SessionCount: counts.WebSessions, Percentage: pcts[1]},
		},
		FiltersApplied: f.Applied(),
	}, nil
}
