package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"signalist_backend/internal/feature/watchlist/domain/entity"
	"signalist_backend/internal/feature/watchlist/usecase"
)

// CollectionName is the Mongo collection backing the Symbol Store.
const CollectionName = "watchlists"

// watchlistDocument is the stored shape of one entry.
type watchlistDocument struct {
	ID      bson.ObjectID `bson:"_id,omitempty"`
	UserID  string        `bson:"userId"`
	Symbol  string        `bson:"symbol"`
	Company string        `bson:"company"`
	AddedAt time.Time     `bson:"addedAt"`
}

// watchlistMongo is the MongoDB implementation of WatchlistRepository.
type watchlistMongo struct {
	coll *mongo.Collection
}

var _ usecase.WatchlistRepository = (*watchlistMongo)(nil)

// NewWatchlistMongo creates a repository over db.watchlists. Call EnsureIndexes once at startup.
func NewWatchlistMongo(db *mongo.Database) *watchlistMongo {
	return &watchlistMongo{coll: db.Collection(CollectionName)}
}

// EnsureIndexes creates the unique (userId, symbol) index and the listing index.
func (r *watchlistMongo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "symbol", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("userId_symbol_unique"),
		},
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "addedAt", Value: -1}},
			Options: options.Index().SetName("userId_addedAt"),
		},
	})
	if err != nil {
		return fmt.Errorf("create watchlist indexes: %w", err)
	}
	return nil
}

func entryFilter(userID, symbol string) bson.D {
	return bson.D{{Key: "userId", Value: userID}, {Key: "symbol", Value: symbol}}
}

// Add upserts with $setOnInsert, so an existing entry is left untouched.
// Two racing upserts can both miss and one then hits the unique index; that one reports "already present".
func (r *watchlistMongo) Add(ctx context.Context, e *entity.WatchlistEntry) (bool, error) {
	update := bson.D{{Key: "$setOnInsert", Value: bson.D{
		{Key: "userId", Value: e.UserID},
		{Key: "symbol", Value: e.Symbol},
		{Key: "company", Value: e.Company},
		{Key: "addedAt", Value: e.AddedAt},
	}}}
	res, err := r.coll.UpdateOne(ctx, entryFilter(e.UserID, e.Symbol), update, options.UpdateOne().SetUpsert(true))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, err
	}
	return res.UpsertedCount == 1, nil
}

// Remove deletes the entry if present.
func (r *watchlistMongo) Remove(ctx context.Context, userID, symbol string) error {
	_, err := r.coll.DeleteOne(ctx, entryFilter(userID, symbol))
	return err
}

// Exists reports whether the entry is stored.
func (r *watchlistMongo) Exists(ctx context.Context, userID, symbol string) (bool, error) {
	err := r.coll.FindOne(ctx, entryFilter(userID, symbol),
		options.FindOne().SetProjection(bson.D{{Key: "_id", Value: 1}})).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListByUser returns the user's entries, newest first.
func (r *watchlistMongo) ListByUser(ctx context.Context, userID string) ([]entity.WatchlistEntry, error) {
	cur, err := r.coll.Find(ctx, bson.D{{Key: "userId", Value: userID}},
		options.Find().SetSort(bson.D{{Key: "addedAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var docs []watchlistDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	entries := make([]entity.WatchlistEntry, len(docs))
	for i, d := range docs {
		entries[i] = entity.WatchlistEntry{
			UserID:  d.UserID,
			Symbol:  d.Symbol,
			Company: d.Company,
			AddedAt: d.AddedAt.UTC(),
		}
	}
	return entries, nil
}

// ListSymbols returns the user's symbols, newest first.
func (r *watchlistMongo) ListSymbols(ctx context.Context, userID string) ([]string, error) {
	cur, err := r.coll.Find(ctx, bson.D{{Key: "userId", Value: userID}},
		options.Find().
			SetSort(bson.D{{Key: "addedAt", Value: -1}}).
			SetProjection(bson.D{{Key: "symbol", Value: 1}, {Key: "_id", Value: 0}}))
	if err != nil {
		return nil, err
	}
	var docs []struct {
		Symbol string `bson:"symbol"`
	}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	symbols := make([]string, len(docs))
	for i, d := range docs {
		symbols[i] = d.Symbol
	}
	return symbols, nil
}
