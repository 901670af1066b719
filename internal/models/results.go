package models

// FiltersApplied echoes the filter contract on every response so the
// frontend can label charts without re-deriving the request.
type FiltersApplied struct {
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Product     string `json:"product"`
	Environment string `json:"environment,omitempty"`
	UserID      string `json:"user_id,omitempty"`
	UserType    string `json:"user_type"`
}

type SessionMetrics struct {
	TotalSessions             int64          `json:"total_sessions"`
	NegativeFeedbackSessions  int64          `json:"negative_feedback_sessions"`
	PositiveFeedbackSessions  int64          `json:"positive_feedback_sessions"`
	AvgSessionDurationSeconds float64        `json:"avg_session_duration_seconds"`
	AvgResponseTimeSeconds    float64        `json:"avg_response_time_seconds"`
	FiltersApplied            FiltersApplied `json:"filters_applied"`
}

type DailySessions struct {
	Date         string `json:"date"`
	SessionCount int64  `json:"session_count"`
}

type VolumeTrends struct {
	AvgSessionsPerDay float64         `json:"avg_sessions_per_day"`
	PeakDay           string          `json:"peak_day,omitempty"`
	PeakDaySessions   int64           `json:"peak_day_sessions"`
	LowestDay         string          `json:"lowest_day,omitempty"`
	LowestDaySessions int64           `json:"lowest_day_sessions"`
	TotalDays         int             `json:"total_days"`
	TotalSessions     int64           `json:"total_sessions"`
	DailyData         []DailySessions `json:"daily_data"`
	FiltersApplied    FiltersApplied  `json:"filters_applied"`
}

type UserEngagement struct {
	UniqueUsers        int64          `json:"unique_users"`
	TotalSessions      int64          `json:"total_sessions"`
	AvgSessionsPerUser float64        `json:"avg_sessions_per_user"`
	FiltersApplied     FiltersApplied `json:"filters_applied"`
}

type UserRetention struct {
	TotalUsers              int64          `json:"total_users"`
	ReturningUsers          int64          `json:"returning_users"`
	OneTimeUsers            int64          `json:"one_time_users"`
	ReturningUsersPercent   float64        `json:"returning_users_percentage"`
	OneTimeUsersPercent     float64        `json:"one_time_users_percentage"`
	FiltersApplied          FiltersApplied `json:"filters_applied"`
}

type CategoryCount struct {
	Category     string  `json:"category"`
	CategoryName string  `json:"category_name"`
	SessionCount int64   `json:"session_count"`
	Percentage   float64 `json:"percentage"`
}

type QueryCategories struct {
	TotalSessions  int64           `json:"total_sessions"`
	Categories     []CategoryCount `json:"categories"`
	Anomalies      int             `json:"classification_anomalies"`
	FiltersApplied FiltersApplied  `json:"filters_applied"`
}

type ToolUsage struct {
	Tool         string  `json:"tool"`
	SessionCount int64   `json:"session_count"`
	Percentage   float64 `json:"percentage"`
}

type AgentToolUsage struct {
	TotalSessions  int64          `json:"total_sessions"`
	Tools          []ToolUsage    `json:"tools"`
	FiltersApplied FiltersApplied `json:"filters_applied"`
}

type ReturningUserBehavior struct {
	ReturningUsersCount         int64          `json:"returning_users_count"`
	AvgSessionsPerReturningUser float64        `json:"avg_sessions_per_returning_user"`
	MostActiveUserID            string         `json:"most_active_user_id,omitempty"`
	MostActiveUserSessions      int64          `json:"most_active_user_sessions"`
	AvgSpanDays                 float64        `json:"avg_days_between_first_last"`
	MaxSpanDays                 int64          `json:"longest_active_user_span_days"`
	FiltersApplied              FiltersApplied `json:"filters_applied"`
}

type UserSegment struct {
	Segment    string  `json:"segment"`
	UserCount  int64   `json:"user_count"`
	Percentage float64 `json:"percentage"`
}

type UserSegmentation struct {
	TotalUsers     int64          `json:"total_users"`
	Segments       []UserSegment  `json:"segments"`
	FiltersApplied FiltersApplied `json:"filters_applied"`
}

type HourSessions struct {
	Hour         int   `json:"hour"`
	SessionCount int64 `json:"session_count"`
}

type DaySessions struct {
	Day          string `json:"day"`
	DayNumber    int    `json:"day_number"`
	SessionCount int64  `json:"session_count"`
}

type TimePatterns struct {
	ByHour           []HourSessions `json:"by_hour"`
	ByDay            []DaySessions  `json:"by_day"`
	PeakHour         int            `json:"peak_hour"`
	PeakHourSessions int64          `json:"peak_hour_sessions"`
	PeakDay          string         `json:"peak_day,omitempty"`
	PeakDaySessions  int64          `json:"peak_day_sessions"`
	FiltersApplied   FiltersApplied `json:"filters_applied"`
}

type LengthBucket struct {
	Category     string  `json:"category"`
	SessionCount int64   `json:"session_count"`
	Percentage   float64 `json:"percentage"`
}

type ConversationLength struct {
	TotalSessions          int64          `json:"total_sessions"`
	AvgMessagesPerSession  float64        `json:"avg_messages_per_session"`
	LongestSessionMessages int64          `json:"longest_session_messages"`
	Distribution           []LengthBucket `json:"distribution"`
	FiltersApplied         FiltersApplied `json:"filters_applied"`
}

type PlatformSplit struct {
	Platform     string  `json:"platform"`
	SessionCount int64   `json:"session_count"`
	Percentage   float64 `json:"percentage"`
}

// PlatformAnalytics is only meaningful where the source carries the
// platform flag. Available=false marks the source that lacks it so the
// frontend never renders a misleading zero split.
type PlatformAnalytics struct {
	Available      bool            `json:"available"`
	Platforms      []PlatformSplit `json:"platforms,omitempty"`
	FiltersApplied FiltersApplied  `json:"filters_applied"`
}

type ClusterBucket struct {
	ClusterID      string   `json:"cluster_id"`
	ClusterName    string   `json:"cluster_name"`
	Count          int      `json:"count"`
	Percentage     float64  `json:"percentage"`
	ExampleQueries []string `json:"example_queries"`
}

type PainPointClusters struct {
	TotalQueries   int             `json:"total_queries"`
	Clusters       []ClusterBucket `json:"clusters"`
	Anomalies      int             `json:"classification_anomalies"`
	FiltersApplied FiltersApplied  `json:"filters_applied"`
}

type SentimentExample struct {
	Message string  `json:"message"`
	Score   float64 `json:"score"`
}

type SentimentBand struct {
	Category   string  `json:"category"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type SentimentAnalysis struct {
	TotalMessages  int                `json:"total_messages"`
	AvgScore       float64            `json:"avg_sentiment_score"`
	Distribution   []SentimentBand    `json:"sentiment_distribution"`
	MostPositive   []SentimentExample `json:"most_positive_messages"`
	MostNegative   []SentimentExample `json:"most_negative_messages"`
	FiltersApplied FiltersApplied     `json:"filters_applied"`
}

// Dashboard aggregates the fast KPI families computed concurrently.
// A failed family leaves its field nil and records the failure under
// Errors keyed by family name; siblings are unaffected.
type Dashboard struct {
	SessionMetrics     *SessionMetrics     `json:"session_metrics,omitempty"`
	VolumeTrends       *VolumeTrends       `json:"volume_trends,omitempty"`
	UserEngagement     *UserEngagement     `json:"user_engagement,omitempty"`
	UserRetention      *UserRetention      `json:"user_retention,omitempty"`
	UserSegmentation   *UserSegmentation   `json:"user_segmentation,omitempty"`
	TimePatterns       *TimePatterns       `json:"time_patterns,omitempty"`
	ConversationLength *ConversationLength `json:"conversation_length,omitempty"`
	PlatformAnalytics  *PlatformAnalytics  `json:"platform_analytics,omitempty"`
	Errors             map[string]string   `json:"errors,omitempty"`
	FiltersApplied     FiltersApplied      `json:"filters_applied"`
}
