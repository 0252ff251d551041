// Package dashboard manages the read-only aggregate metrics behind the
// summary charts. Overlapping fetches for the same series are not cancelled;
// whichever response arrives last wins.
package dashboard

import (
	"context"
	"strconv"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/servly/admin-console/api"
	"github.com/servly/admin-console/notify"
)

const basePath = "/admin/dashboard"

// GroupBy buckets a time series.
type GroupBy string

const (
	GroupByDay   GroupBy = "day"
	GroupByWeek  GroupBy = "week"
	GroupByMonth GroupBy = "month"
)

func (g GroupBy) valid() bool {
	switch g {
	case GroupByDay, GroupByWeek, GroupByMonth:
		return true
	}
	return false
}

// Summary is the headline totals card.
type Summary struct {
	TotalRequests int     `json:"totalRequests"`
	TotalRevenue  float64 `json:"totalRevenue"`
}

// TimeSeriesPoint is one bucket of the requests-over-time chart.
type TimeSeriesPoint struct {
	Period string `json:"period"`
	Count  int    `json:"count"`
}

// RevenuePoint is one bucket of the revenue-over-time chart.
type RevenuePoint struct {
	Period string  `json:"period"`
	Amount float64 `json:"amount"`
}

// ProviderPerformance ranks providers by completed jobs.
type ProviderPerformance struct {
	ProviderID    string `json:"providerId"`
	Name          string `json:"name"`
	CompletedJobs int    `json:"completedJobs"`
}

// StatusBreakdown counts requests per status.
type StatusBreakdown struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// Store holds the dashboard metrics.
type Store struct {
	api    *api.Client
	center *notify.Center
	log    zerolog.Logger

	mu              sync.RWMutex
	summary         *Summary
	requests        []TimeSeriesPoint
	revenue         []RevenuePoint
	topProviders    []ProviderPerformance
	statusBreakdown []StatusBreakdown
	loading         bool
	errMsg          string
}

// Option configures the Store.
type Option func(*Store)

// WithLogger sets a structured logger for the store.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// NewStore creates the dashboard metrics store.
func NewStore(client *api.Client, center *notify.Center, opts ...Option) *Store {
	s := &Store{
		api:    client,
		center: center,
		log:    zerolog.Nop(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Summary returns the last fetched headline totals, or nil.
func (s *Store) Summary() *Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.summary == nil {
		return nil
	}
	out := *s.summary
	return &out
}

// Requests returns the last fetched requests series.
func (s *Store) Requests() []TimeSeriesPoint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]TimeSeriesPoint(nil), s.requests...)
}

// Revenue returns the last fetched revenue series.
func (s *Store) Revenue() []RevenuePoint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]RevenuePoint(nil), s.revenue...)
}

// TopProviders returns the last fetched provider ranking.
func (s *Store) TopProviders() []ProviderPerformance {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]ProviderPerformance(nil), s.topProviders...)
}

// StatusBreakdown returns the last fetched status counts.
func (s *Store) StatusBreakdown() []StatusBreakdown {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]StatusBreakdown(nil), s.statusBreakdown...)
}

// IsLoading reports whether a fetch is in flight.
func (s *Store) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the display message of the last failed fetch.
func (s *Store) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errMsg
}

// FetchSummary loads the headline totals.
func (s *Store) FetchSummary(ctx context.Context) error {
	return fetchInto(ctx, s, basePath+"/summary", "Error fetching summary", func(v Summary) {
		s.summary = &v
	})
}

// FetchRequests loads the requests series bucketed by groupBy (day when
// empty).
func (s *Store) FetchRequests(ctx context.Context, groupBy GroupBy) error {
	if groupBy == "" {
		groupBy = GroupByDay
	}
	if !groupBy.valid() {
		return errors.Errorf("[Store.FetchRequests] invalid groupBy %q", groupBy)
	}
	return fetchInto(ctx, s, basePath+"/requests?groupBy="+string(groupBy), "Error fetching requests", func(v []TimeSeriesPoint) {
		s.requests = v
	})
}

// FetchRevenue loads the revenue series bucketed by groupBy (month when
// empty).
func (s *Store) FetchRevenue(ctx context.Context, groupBy GroupBy) error {
	if groupBy == "" {
		groupBy = GroupByMonth
	}
	if !groupBy.valid() {
		return errors.Errorf("[Store.FetchRevenue] invalid groupBy %q", groupBy)
	}
	return fetchInto(ctx, s, basePath+"/revenue?groupBy="+string(groupBy), "Error fetching revenue", func(v []RevenuePoint) {
		s.revenue = v
	})
}

// FetchTopProviders loads the top take providers (5 when take is not
// positive).
func (s *Store) FetchTopProviders(ctx context.Context, take int) error {
	if take <= 0 {
		take = 5
	}
	return fetchInto(ctx, s, basePath+"/top-providers?take="+strconv.Itoa(take), "Error fetching top providers", func(v []ProviderPerformance) {
		s.topProviders = v
	})
}

// FetchStatusBreakdown loads the per-status request counts.
func (s *Store) FetchStatusBreakdown(ctx context.Context) error {
	return fetchInto(ctx, s, basePath+"/status-breakdown", "Error fetching status breakdown", func(v []StatusBreakdown) {
		s.statusBreakdown = v
	})
}

// fetchInto runs one metrics fetch through the shared loading/error flags.
// apply runs under the store lock.
func fetchInto[T any](ctx context.Context, s *Store, path, fallback string, apply func(T)) error {
	s.mu.Lock()
	s.loading = true
	s.errMsg = ""
	s.mu.Unlock()

	v, err := api.GetRaw[T](ctx, s.api, path)
	if err != nil {
		reason := fallback
		var httpErr *api.HTTPError
		if errors.As(err, &httpErr) && httpErr.Message != "" {
			reason = httpErr.Message
		}

		s.mu.Lock()
		s.loading = false
		s.errMsg = reason
		s.mu.Unlock()

		s.log.Warn().Str("path", path).Str("reason", reason).Msg("metrics fetch failed")
		if s.center != nil {
			s.center.Error(reason)
		}
		return errors.Wrapf(err, "[dashboard.fetchInto] %s", path)
	}

	s.mu.Lock()
	apply(v)
	s.loading = false
	s.errMsg = ""
	s.mu.Unlock()
	return nil
}

