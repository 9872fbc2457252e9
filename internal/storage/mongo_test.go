package storage

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/camuig/fx-signals/internal/config"
	"github.com/camuig/fx-signals/internal/logger"
	"github.com/camuig/fx-signals/internal/signals"
)

func TestBuildFilter(t *testing.T) {
	pairRe := func(pattern string) bson.M {
		return bson.M{"$or": bson.A{
			bson.M{"symbol": bson.M{"$regex": pattern, "$options": "i"}},
			bson.M{"pair": bson.M{"$regex": pattern, "$options": "i"}},
		}}
	}
	typeRe := func(pattern string) bson.M {
		return bson.M{"$or": bson.A{
			bson.M{"type": bson.M{"$regex": pattern, "$options": "i"}},
			bson.M{"side": bson.M{"$regex": pattern, "$options": "i"}},
			bson.M{"action": bson.M{"$regex": pattern, "$options": "i"}},
		}}
	}

	tests := []struct {
		name string
		q    signals.Query
		want bson.M
	}{
		{
			name: "empty query matches everything",
			q:    signals.Query{Type: signals.TypeAll},
			want: bson.M{},
		},
		{
			name: "search is escaped and covers pair aliases",
			q:    signals.Query{Search: "EUR/USD.", Type: signals.TypeAll},
			want: pairRe(`EUR/USD\.`),
		},
		{
			name: "type filter covers side and action",
			q:    signals.Query{Type: "sell"},
			want: typeRe("sell"),
		},
		{
			name: "search and type combine",
			q:    signals.Query{Search: "(.*)", Type: "buy"},
			want: bson.M{"$and": []bson.M{pairRe(`\(\.\*\)`), typeRe("buy")}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildFilter(tt.q))
		})
	}
}

func TestBuildSort(t *testing.T) {
	newest := BuildSort(signals.SortNewest)
	require.NotEmpty(t, newest)
	assert.Equal(t, "time", newest[0].Key)
	assert.Equal(t, -1, newest[0].Value)

	oldest := BuildSort(signals.SortOldest)
	assert.Equal(t, "time", oldest[0].Key)
	assert.Equal(t, 1, oldest[0].Value)

	pair := BuildSort(signals.SortPair)
	assert.Equal(t, bson.E{Key: "symbol", Value: 1}, pair[0])

	assert.Equal(t, newest, BuildSort("unknown"))
}

func TestToDocument(t *testing.T) {
	oid := primitive.NewObjectID()
	when := time.Date(2025, 8, 29, 19, 49, 0, 0, time.UTC)

	doc := ToDocument(bson.M{
		"_id":       oid,
		"symbol":    "EUR/USD",
		"createdAt": primitive.NewDateTimeFromTime(when),
		"tp":        primitive.A{1.1684, "1.1700"},
		"meta":      bson.D{{Key: "source", Value: "mt5"}},
	})

	assert.Equal(t, oid.Hex(), doc["_id"])
	assert.Equal(t, "EUR/USD", doc["symbol"])
	assert.Equal(t, when, doc["createdAt"])
	assert.Equal(t, []any{1.1684, "1.1700"}, doc["tp"])
	assert.Equal(t, map[string]any{"source": "mt5"}, doc["meta"])

	rec := signals.Normalize(doc, signals.DailyProfile, 1)
	assert.Equal(t, oid.Hex(), rec.ID)
	assert.Equal(t, "2025-08-29T19:49:00Z", rec.Time)
	assert.Equal(t, []float64{1.1684, 1.17}, rec.Targets)
}

func TestClassify(t *testing.T) {
	deadline := classify(fmt.Errorf("find daily: %w", context.DeadlineExceeded))
	assert.ErrorIs(t, deadline, signals.ErrUnavailable)
	assert.ErrorIs(t, deadline, context.DeadlineExceeded)

	other := classify(errors.New("bad projection"))
	assert.NotErrorIs(t, other, signals.ErrUnavailable)
}

func TestMongoStore_Unconfigured(t *testing.T) {
	cfg := &config.Config{Mongo: config.MongoConfig{Database: "signals", TimeoutSeconds: 1}}

	store, err := NewMongoStore(context.Background(), cfg, logger.Discard())
	require.NoError(t, err)
	assert.False(t, store.Configured())

	docs, total, err := store.Find(context.Background(), "daily", signals.Query{})
	assert.Nil(t, docs)
	assert.Zero(t, total)
	assert.ErrorIs(t, err, signals.ErrNotConfigured)
	assert.ErrorIs(t, err, signals.ErrUnavailable)

	assert.ErrorIs(t, store.Ping(context.Background()), signals.ErrUnavailable)
	assert.NoError(t, store.Close(context.Background()))
}
