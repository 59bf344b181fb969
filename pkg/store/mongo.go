package store

import (
	"context"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gridrack/gridrack/pkg/errors"
)

// MongoConfig configures the MongoDB store backend.
type MongoConfig struct {
	// URI is the connection string, e.g. "mongodb://localhost:27017".
	URI string

	// Database is the database name. Defaults to "gridrack".
	Database string

	// Collection is the collection name. Defaults to "layout_sets".
	Collection string
}

// MongoStore is a MongoDB-backed layout set store for server deployments.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB, verifies the connection, and ensures a
// unique index on the set name.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = "gridrack"
	}
	if cfg.Collection == "" {
		cfg.Collection = "layout_sets"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "connect to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeStore, err, "ping mongodb")
	}

	coll := client.Database(cfg.Database).Collection(cfg.Collection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeStore, err, "create name index")
	}

	return &MongoStore{client: client, coll: coll}, nil
}

// Get retrieves a layout set by name.
func (s *MongoStore) Get(ctx context.Context, name string) (*LayoutSet, error) {
	if err := errors.ValidateLayoutName(name); err != nil {
		return nil, err
	}

	var set LayoutSet
	err := s.coll.FindOne(ctx, bson.M{"name": name}).Decode(&set)
	if err == mongo.ErrNoDocuments {
		return nil, errors.New(errors.ErrCodeLayoutNotFound, "no layout set named %q", name)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "find layout set %q", name)
	}
	return &set, nil
}

// Save stores a layout set, replacing any set with the same name.
func (s *MongoStore) Save(ctx context.Context, set *LayoutSet) error {
	if err := prepare(set); err != nil {
		return err
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := s.coll.ReplaceOne(ctx, bson.M{"name": set.Name}, set, opts); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "save layout set %q", set.Name)
	}
	return nil
}

// Delete removes a layout set by name.
func (s *MongoStore) Delete(ctx context.Context, name string) error {
	if err := errors.ValidateLayoutName(name); err != nil {
		return err
	}

	res, err := s.coll.DeleteOne(ctx, bson.M{"name": name})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "delete layout set %q", name)
	}
	if res.DeletedCount == 0 {
		return errors.New(errors.ErrCodeLayoutNotFound, "no layout set named %q", name)
	}
	return nil
}

// List returns the names of all stored layout sets, sorted.
func (s *MongoStore) List(ctx context.Context) ([]string, error) {
	raw, err := s.coll.Distinct(ctx, "name", bson.D{})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "list layout sets")
	}

	names := make([]string, 0, len(raw))
	for _, v := range raw {
		if name, ok := v.(string); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close() error {
	return s.client.Disconnect(context.Background())
}

var _ Store = (*MongoStore)(nil)
