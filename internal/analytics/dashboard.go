package analytics

import (
	"context"
	"sync"

	"github.com/srs-vsa/analytics-backend/internal/models"
)

// Dashboard computes the fast KPI families concurrently. Each family
// runs with its own scoped query; a failure is recorded under its name
// and never aborts siblings. Classification-backed families are served
// by their own operations so slow classifier calls never block this one.
func (s *Service) Dashboard(ctx context.Context, f models.Filters) models.Dashboard {
	out := models.Dashboard{FiltersApplied: f.Applied()}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	fail := func(name string, err error) {
		mu.Lock()
		defer mu.Unlock()
		if out.Errors == nil {
			out.Errors = map[string]string{}
		}
		out.Errors[name] = err.Error()
	}
	run := func(name string, fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				s.Logger.Error().Err(err).Str("kpi", name).Msg("dashboard kpi failed")
				fail(name, err)
			}
		}()
	}

	run("session_metrics", func() error {
		r, err := s.SessionMetrics(ctx, f)
		if err == nil {
			out.SessionMetrics = &r
		}
		return err
	})
	run("volume_trends", func() error {
		r, err := s.VolumeTrends(ctx, f)
		if err == nil {
			out.VolumeTrends = &r
		}
		return err
	})
	run("user_engagement", func() error {
		r, err := s.UserEngagement(ctx, f)
		if err == nil {
			out.UserEngagement = &r
		}
		return err
	})
	run("user_retention", func() error {
		r, err := s.UserRetention(ctx, f)
		if err == nil {
			out.UserRetention = &r
		}
		return err
	})
	run("user_segmentation", func() error {
		r, err := s.UserSegmentation(ctx, f)
		if err == nil {
			out.UserSegmentation = &r
		}
		return err
	})
	run("time_patterns", func() error {
		r, err := s.TimePatterns(ctx, f)
		if err == nil {
			out.TimePatterns = &r
		}
		return err
	})
	run("conversation_length", func() error {
		r, err := s.ConversationLength(ctx, f)
		if err == nil {
			out.ConversationLength = &r
		}
		return err
	})
	run("platform_analytics", func() error {
		r, err := s.PlatformAnalytics(ctx, f)
		if err == nil {
			out.PlatformAnalytics = &r
		}
		return err
	})

	wg.Wait()
	return out
}
