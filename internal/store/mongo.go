package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/MKhiriev/go-conf-keeper/internal/config"
	"github.com/MKhiriev/go-conf-keeper/internal/logger"
	"github.com/MKhiriev/go-conf-keeper/models"
)

// NewConnectMongo connects to MongoDB and verifies the primary is reachable.
func NewConnectMongo(ctx context.Context, cfg config.DB, log *logger.Logger) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.DSN))
	if err != nil {
		log.Err(err).Str("func", "NewConnectMongo").Msg("error connecting to mongodb")
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err = client.Ping(ctx, readpref.Primary()); err != nil {
		log.Err(err).Str("func", "NewConnectMongo").Msg("error connecting to mongodb (ping)")
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	log.Info().Str("func", "NewConnectMongo").Str("database", cfg.Database).Msg("connected to mongodb successfully")

	return client, nil
}

// mongoConfigRepository stores the record as the only document of a
// collection.
type mongoConfigRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

// NewMongoConfigRepository returns a [ConfigRepository] backed by collection.
func NewMongoConfigRepository(collection *mongo.Collection, logger *logger.Logger) ConfigRepository {
	logger.Debug().Str("collection", collection.Name()).Msg("creating mongo config repository")
	return &mongoConfigRepository{
		collection: collection,
		logger:     logger,
	}
}

// FindConfig fetches the first document of the collection. BSON-specific
// types are rendered as relaxed Extended JSON and "_id" is dropped.
func (r *mongoConfigRepository) FindConfig(ctx context.Context) (models.Document, error) {
	log := logger.FromContext(ctx)

	var raw bson.Raw
	if err := r.collection.FindOne(ctx, bson.M{}).Decode(&raw); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrConfigNotFound
		}
		log.Err(err).Str("func", "*mongoConfigRepository.FindConfig").Msg("error reading config document")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	ext, err := bson.MarshalExtJSON(raw, false, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodingDocument, err)
	}

	doc, err := models.ParseDocument(ext)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodingDocument, err)
	}
	delete(doc, "_id")

	return doc, nil
}

// UpsertConfig sets every leaf of fields by dotted path, so sibling keys
// already stored are left alone. A document without leaves writes nothing.
// Keys containing "." or starting with "$" are rejected with
// ErrUnsupportedKey before anything is sent.
func (r *mongoConfigRepository) UpsertConfig(ctx context.Context, fields models.Document) error {
	log := logger.FromContext(ctx)

	update, ok, err := setUpdate(fields)
	if err != nil {
		log.Err(err).Str("func", "*mongoConfigRepository.UpsertConfig").Msg("config document cannot be stored")
		return err
	}
	if !ok {
		return nil
	}

	_, err = r.collection.UpdateOne(ctx, bson.M{}, update, options.Update().SetUpsert(true))
	if err != nil {
		log.Err(err).Str("func", "*mongoConfigRepository.UpsertConfig").Msg("error writing config document")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// setUpdate builds the {$set: {...}} update for fields. ok is false when
// fields holds no leaf to set.
func setUpdate(fields models.Document) (update bson.M, ok bool, err error) {
	if err = checkKeys(map[string]any(fields), ""); err != nil {
		return nil, false, err
	}

	flat := fields.Flatten()
	if len(flat) == 0 {
		return nil, false, nil
	}

	set := make(bson.M, len(flat))
	for path, value := range flat {
		set[path] = value
	}

	return bson.M{"$set": set}, true, nil
}

// checkKeys walks objects and arrays and rejects keys that MongoDB would
// read as a path or an operator.
func checkKeys(v any, path string) error {
	switch value := v.(type) {
	case map[string]any:
		for key, nested := range value {
			if key == "" || strings.Contains(key, ".") || strings.HasPrefix(key, "$") {
				return fmt.Errorf("%w: %q at %q", ErrUnsupportedKey, key, path)
			}
			if err := checkKeys(nested, joinKey(path, key)); err != nil {
				return err
			}
		}
	case models.Document:
		return checkKeys(map[string]any(value), path)
	case []any:
		for i, nested := range value {
			if err := checkKeys(nested, fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
	}

	return nil
}

func joinKey(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
