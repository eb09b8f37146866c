package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/nitesh/trends_service/internal/metrics"
	"github.com/nitesh/trends_service/pkg/models"
)

// TrendStore is the table-insert capability of the backing store.
type TrendStore interface {
	Insert(ctx context.Context, table string, records []models.TrendRecord) error
}

// Fetcher performs the outbound GET for a route.
type Fetcher interface {
	Get(ctx context.Context, url string) ([]byte, error)
	GetJSON(ctx context.Context, url string) (json.RawMessage, error)
}

type Options struct {
	Table          string
	RedditURL      string
	GoogleURL      string
	PersistTimeout time.Duration
}

type Service struct {
	repo    TrendStore
	fetcher Fetcher
	metrics *metrics.Metrics
	logger  *slog.Logger
	opts    Options

	now     func() time.Time
	pending sync.WaitGroup
}

func NewService(repo TrendStore, fetcher Fetcher, m *metrics.Metrics, logger *slog.Logger, opts Options) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{
		repo:    repo,
		fetcher: fetcher,
		metrics: m,
		logger:  logger,
		opts:    opts,
		now:     func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	}
}

// RedditTrends fetches the reddit listing, schedules its records for storage
// and returns the listing exactly as received.
func (s *Service) RedditTrends(ctx context.Context) (json.RawMessage, error) {
	s.logger.Info("fetching reddit trends")
	body, err := s.fetcher.GetJSON(ctx, s.opts.RedditURL)
	s.metrics.ObserveFetch(models.SourceReddit, err)
	if err != nil {
		return nil, fmt.Errorf("fetch reddit trends: %w", err)
	}

	records, ok := NormalizeReddit(body, s.now())
	if !ok {
		s.logger.Warn("reddit listing has no data.children, skipping store")
		return body, nil
	}
	s.persist(ctx, models.SourceReddit, records)
	return body, nil
}

// GoogleTrends fetches the raw dailytrends body, schedules it for storage
// as a single record and returns it unchanged.
func (s *Service) GoogleTrends(ctx context.Context) (string, error) {
	s.logger.Info("fetching google trends")
	body, err := s.fetcher.Get(ctx, s.opts.GoogleURL)
	s.metrics.ObserveFetch(models.SourceGoogleTrends, err)
	if err != nil {
		return "", fmt.Errorf("fetch google trends: %w", err)
	}

	raw := string(body)
	s.persist(ctx, models.SourceGoogleTrends, NormalizeGoogle(raw, s.now()))
	return raw, nil
}

// persist inserts records on a detached goroutine. Failures are only logged;
// the caller's response never depends on them.
func (s *Service) persist(ctx context.Context, source models.Source, records []models.TrendRecord) {
	if len(records) == 0 {
		s.logger.Debug("no trend records to store", "source", source)
		return
	}

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()

		ctx := context.WithoutCancel(ctx)
		if s.opts.PersistTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, s.opts.PersistTimeout)
			defer cancel()
		}

		err := s.repo.Insert(ctx, s.opts.Table, records)
		s.metrics.ObservePersist(source, len(records), err)
		if err != nil {
			s.logger.Error("store error", "source", source, "table", s.opts.Table, "records", len(records), "err", err)
			return
		}
		s.logger.Info("trends stored", "source", source, "table", s.opts.Table, "records", len(records))
	}()
}

// Wait blocks until every scheduled insert has returned.
func (s *Service) Wait() {
	s.pending.Wait()
}
