package signals

import (
	"context"
	"errors"
	"fmt"

	"github.com/camuig/fx-signals/internal/logger"
)

// ErrUnavailable marks a store that is unconfigured or unreachable, as
// opposed to a query that matched nothing.
var ErrUnavailable = errors.New("signal store unavailable")

// ErrNotConfigured is the ErrUnavailable returned when no connection string is set.
var ErrNotConfigured = fmt.Errorf("%w: no connection configured", ErrUnavailable)

// Store retrieves one page of raw documents and the total match count.
type Store interface {
	Find(ctx context.Context, collection string, q Query) ([]Document, int64, error)
}

// FallbackRecorder is told every time a listing is served from mock data.
type FallbackRecorder interface {
	SignalFallback(feed, reason string)
}

type Source string

const (
	SourceStore Source = "store"
	SourceMock  Source = "mock"
)

// Page is one listing response.
type Page struct {
	Signals     []SignalRecord
	Total       int
	TotalProfit float64
	Source      Source
	Warning     string
}

type Collections struct {
	Data    string
	Daily   string
	Monthly string
}

type Limits struct {
	DataDefault int
	DataMax     int
	Daily       int
	Monthly     int
}

// Feed serves the three signal listings, reading the store when it can and
// the mock sets otherwise.
type Feed struct {
	store       Store
	collections Collections
	limits      Limits
	recorder    FallbackRecorder
	logger      *logger.Logger
}

func NewFeed(store Store, collections Collections, limits Limits, recorder FallbackRecorder, log *logger.Logger) *Feed {
	return &Feed{
		store:       store,
		collections: collections,
		limits:      limits,
		recorder:    recorder,
		logger:      log,
	}
}

// DataQuery normalizes q with the data listing limits.
func (f *Feed) DataQuery(q Query) Query {
	return q.Normalize(f.limits.DataDefault, f.limits.DataMax)
}

func (f *Feed) Data(ctx context.Context, q Query) (*Page, error) {
	q = f.DataQuery(q)
	return f.serve(ctx, "data", f.collections.Data, q, DataProfile, MockData)
}

func (f *Feed) Daily(ctx context.Context, search string) (*Page, error) {
	q := Query{Search: search, Sort: SortNewest, Limit: f.limits.Daily}.Normalize(f.limits.Daily, f.limits.Daily)
	return f.serve(ctx, "daily", f.collections.Daily, q, DailyProfile, MockDaily)
}

func (f *Feed) Monthly(ctx context.Context, search string) (*Page, error) {
	q := Query{Search: search, Sort: SortNewest, Limit: f.limits.Monthly}.Normalize(f.limits.Monthly, f.limits.Monthly)
	return f.serve(ctx, "monthly", f.collections.Monthly, q, MonthlyProfile, MockMonthly)
}

func (f *Feed) serve(ctx context.Context, feed, collection string, q Query, p Profile, mock func() []SignalRecord) (*Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s signals: %w", feed, err)
	}

	docs, total, err := f.find(ctx, collection, q)
	if err != nil {
		reason, warning := "error", "Using mock data - database connection failed"
		switch {
		case errors.Is(err, ErrNotConfigured):
			reason, warning = "unconfigured", ""
			f.logger.Warn("signal store not configured, using mock data", "feed", feed)
		case errors.Is(err, ErrUnavailable):
			reason = "unavailable"
			f.logger.Error("signal store unavailable, using mock data", "feed", feed, "error", err)
		default:
			f.logger.Error("signal store query failed, using mock data", "feed", feed, "error", err)
		}
		if f.recorder != nil {
			f.recorder.SignalFallback(feed, reason)
		}

		records, matched := NewMockProvider(mock).Page(q)
		return &Page{
			Signals:     records,
			Total:       matched,
			TotalProfit: TotalProfit(records),
			Source:      SourceMock,
			Warning:     warning,
		}, nil
	}

	records := make([]SignalRecord, 0, len(docs))
	for i, doc := range docs {
		rec := Normalize(doc, p, q.Skip()+i+1)
		if rec.StatusConflict() {
			f.logger.Debug("signal status disagrees with profit",
				"feed", feed, "id", rec.ID, "status", rec.Status, "profit", rec.Profit)
		}
		records = append(records, rec)
	}

	return &Page{
		Signals:     records,
		Total:       int(total),
		TotalProfit: TotalProfit(records),
		Source:      SourceStore,
	}, nil
}

func (f *Feed) find(ctx context.Context, collection string, q Query) ([]Document, int64, error) {
	if f.store == nil {
		return nil, 0, ErrNotConfigured
	}
	return f.store.Find(ctx, collection, q)
}
