package storage

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/camuig/fx-signals/internal/config"
	"github.com/camuig/fx-signals/internal/logger"
	"github.com/camuig/fx-signals/internal/signals"
)

// MongoStore reads raw signal documents. A store built without a URI has no
// client and answers every call with signals.ErrNotConfigured.
type MongoStore struct {
	client   *mongo.Client
	database string
	timeout  time.Duration
	logger   *logger.Logger
}

func NewMongoStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (*MongoStore, error) {
	store := &MongoStore{
		database: cfg.Mongo.Database,
		timeout:  cfg.MongoTimeout(),
		logger:   log,
	}
	if !cfg.StoreConfigured() {
		return store, nil
	}

	opts := options.Client().
		ApplyURI(cfg.Mongo.URI).
		SetConnectTimeout(store.timeout).
		SetServerSelectionTimeout(store.timeout).
		SetLoggerOptions(options.Logger().
			SetSink(log.MongoSink()).
			SetComponentLevel(options.LogComponentConnection, options.LogLevelInfo))

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	store.client = client

	return store, nil
}

func (s *MongoStore) Configured() bool {
	return s.client != nil
}

func (s *MongoStore) Find(ctx context.Context, collection string, q signals.Query) ([]signals.Document, int64, error) {
	if s.client == nil {
		return nil, 0, signals.ErrNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	coll := s.client.Database(s.database).Collection(collection)
	filter := BuildFilter(q)

	findOpts := options.Find().
		SetSort(BuildSort(q.Sort)).
		SetSkip(int64(q.Skip())).
		SetLimit(int64(q.Limit))

	cursor, err := coll.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, 0, classify(fmt.Errorf("find %s: %w", collection, err))
	}
	defer cursor.Close(ctx)

	var raw []bson.M
	if err := cursor.All(ctx, &raw); err != nil {
		return nil, 0, classify(fmt.Errorf("decode %s: %w", collection, err))
	}

	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, classify(fmt.Errorf("count %s: %w", collection, err))
	}

	docs := make([]signals.Document, 0, len(raw))
	for _, m := range raw {
		docs = append(docs, ToDocument(m))
	}

	s.logger.Debug("signal documents loaded", "collection", collection, "count", len(docs), "total", total)
	return docs, total, nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	if s.client == nil {
		return signals.ErrNotConfigured
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return classify(fmt.Errorf("ping mongo: %w", err))
	}
	return nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnect mongo: %w", err)
	}
	return nil
}

// BuildFilter turns the search and type parameters into a Mongo filter that
// looks at the same alias fields the normalizer reads. Search text is matched
// literally.
func BuildFilter(q signals.Query) bson.M {
	var clauses []bson.M
	if q.Search != "" {
		clauses = append(clauses, anyField(regexp.QuoteMeta(q.Search), pairFields...))
	}
	if t, ok := q.TypeFilter(); ok {
		clauses = append(clauses, anyField(string(t), typeFields...))
	}

	switch len(clauses) {
	case 0:
		return bson.M{}
	case 1:
		return clauses[0]
	}
	return bson.M{"$and": clauses}
}

var (
	pairFields = []string{"symbol", "pair"}
	typeFields = []string{"type", "side", "action"}
)

func anyField(pattern string, fields ...string) bson.M {
	alts := make(bson.A, 0, len(fields))
	for _, f := range fields {
		alts = append(alts, bson.M{f: bson.M{"$regex": pattern, "$options": "i"}})
	}
	return bson.M{"$or": alts}
}

func BuildSort(key signals.SortKey) bson.D {
	switch key {
	case signals.SortOldest:
		return bson.D{{Key: "time", Value: 1}, {Key: "date", Value: 1}, {Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}
	case signals.SortPair:
		return bson.D{{Key: "symbol", Value: 1}, {Key: "_id", Value: 1}}
	default:
		return bson.D{{Key: "time", Value: -1}, {Key: "date", Value: -1}, {Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}
	}
}

// ToDocument converts driver values into the plain types the normalizer reads.
func ToDocument(m bson.M) signals.Document {
	doc := make(signals.Document, len(m))
	for k, v := range m {
		doc[k] = plainValue(v)
	}
	return doc
}

func plainValue(v any) any {
	switch val := v.(type) {
	case primitive.ObjectID:
		return val.Hex()
	case primitive.DateTime:
		return val.Time().UTC()
	case primitive.Timestamp:
		return time.Unix(int64(val.T), 0).UTC()
	case primitive.Decimal128:
		return val.String()
	case primitive.A:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = plainValue(e)
		}
		return out
	case bson.M:
		return map[string]any(ToDocument(val))
	case bson.D:
		return map[string]any(ToDocument(val.Map()))
	}
	return v
}

// classify marks connectivity failures with signals.ErrUnavailable so the
// feed can tell them apart from query errors.
func classify(err error) error {
	if mongo.IsTimeout(err) || mongo.IsNetworkError(err) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, mongo.ErrClientDisconnected) {
		return fmt.Errorf("%w: %w", signals.ErrUnavailable, err)
	}
	return err
}
