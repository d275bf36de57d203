package kv

import (
	"context"
	"encoding/json"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo backs the gateway with a single collection keyed by _id. The value
// is kept as a raw JSON string so the schema stays with the application
// layer, matching the other backends.
type Mongo struct {
	coll *mongo.Collection
}

type mongoRecord struct {
	Key   string `bson:"_id"`
	Value string `bson:"value"`
}

func NewMongo(ctx context.Context, uri, database string) (*Mongo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}
	return &Mongo{coll: client.Database(database).Collection("kv")}, nil
}

func (m *Mongo) Get(ctx context.Context, key string) (json.RawMessage, error) {
	var rec mongoRecord
	err := m.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return json.RawMessage(rec.Value), nil
}

func (m *Mongo) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	opts := options.Replace().SetUpsert(true)
	_, err = m.coll.ReplaceOne(ctx, bson.M{"_id": key}, mongoRecord{Key: key, Value: string(raw)}, opts)
	return err
}

func (m *Mongo) Delete(ctx context.Context, key string) error {
	_, err := m.coll.DeleteOne(ctx, bson.M{"_id": key})
	return err
}

func (m *Mongo) ScanPrefix(ctx context.Context, prefix string) ([]Entry, error) {
	filter := bson.M{"_id": bson.M{"$regex": "^" + regexp.QuoteMeta(prefix)}}
	cursor, err := m.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []Entry
	for cursor.Next(ctx) {
		var rec mongoRecord
		if err := cursor.Decode(&rec); err != nil {
			return nil, err
		}
		entries = append(entries, Entry{Key: rec.Key, Value: json.RawMessage(rec.Value)})
	}
	return entries, cursor.Err()
}
