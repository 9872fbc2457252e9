package news

import (
	"context"
	"errors"
	"time"

	"github.com/camuig/fx-signals/internal/logger"
)

type Fetcher interface {
	FetchFinancialNews(ctx context.Context) ([]NewsItem, error)
}

// FallbackRecorder is told every time mock headlines are served.
type FallbackRecorder interface {
	NewsFallback(reason string)
}

// Service answers /api/news-api. It never fails: any fetch error is logged
// and the mock headlines are returned instead.
type Service struct {
	fetcher  Fetcher
	recorder FallbackRecorder
	logger   *logger.Logger
	now      func() time.Time
}

func NewService(fetcher Fetcher, recorder FallbackRecorder, log *logger.Logger) *Service {
	return &Service{
		fetcher:  fetcher,
		recorder: recorder,
		logger:   log,
		now:      time.Now,
	}
}

// Latest returns live headlines, or the mock set with mock=true.
func (s *Service) Latest(ctx context.Context, pair string) (items []NewsItem, mock bool) {
	items, err := s.fetcher.FetchFinancialNews(ctx)
	if err != nil {
		reason := "error"
		if errors.Is(err, ErrNoAPIKey) {
			reason = "no_api_key"
			s.logger.Warn("news api key not configured, using mock news")
		} else {
			s.logger.Error("fetch news failed, using mock news", "error", err)
		}
		if s.recorder != nil {
			s.recorder.NewsFallback(reason)
		}
		items, mock = MockNews(s.now()), true
	}

	if pair != "" {
		items = FilterNewsForPair(items, pair)
	}
	return items, mock
}
