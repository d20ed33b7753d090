package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sketchbomb/runorder/pkg/errors"
	"github.com/sketchbomb/runorder/pkg/show"
)

// MongoStore persists shows in a MongoDB collection for multi-instance
// server deployments.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// showDoc is the persisted document shape. IDs are stored as strings so the
// collection is readable without a UUID codec.
type showDoc struct {
	ID        string        `bson:"_id"`
	Name      string        `bson:"name"`
	Sketches  []show.Sketch `bson:"sketches"`
	Order     []int         `bson:"order,omitempty"`
	CreatedAt time.Time     `bson:"created_at"`
	UpdatedAt time.Time     `bson:"updated_at"`
}

// NewMongoStore connects to MongoDB at uri and uses the given database's
// "shows" collection. The connection is verified with a ping.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection("shows"),
	}, nil
}

// Get retrieves a show by ID.
func (m *MongoStore) Get(ctx context.Context, id uuid.UUID) (*Show, error) {
	var doc showDoc
	err := m.coll.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, errors.New(errors.ErrCodeShowNotFound, "show not found: %s", id.String())
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "load show")
	}
	return docToShow(&doc)
}

// List returns all shows ordered by creation time, oldest first.
func (m *MongoStore) List(ctx context.Context) ([]*Show, error) {
	cur, err := m.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"created_at": 1}))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "list shows")
	}
	defer cur.Close(ctx)

	var out []*Show
	for cur.Next(ctx) {
		var doc showDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode show")
		}
		s, err := docToShow(&doc)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := cur.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "list shows")
	}
	return out, nil
}

// Put inserts or replaces a show.
func (m *MongoStore) Put(ctx context.Context, s *Show) error {
	doc := showDoc{
		ID:        s.ID.String(),
		Name:      s.Name,
		Sketches:  s.Sketches,
		Order:     s.Order,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
	_, err := m.coll.ReplaceOne(ctx,
		bson.M{"_id": doc.ID},
		doc,
		options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "save show")
	}
	return nil
}

// Delete removes a show.
func (m *MongoStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := m.coll.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "delete show")
	}
	if res.DeletedCount == 0 {
		return errors.New(errors.ErrCodeShowNotFound, "show not found: %s", id.String())
	}
	return nil
}

// Close disconnects from MongoDB.
func (m *MongoStore) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

func docToShow(doc *showDoc) (*Show, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "corrupt show id")
	}
	return &Show{
		ID:        id,
		Name:      doc.Name,
		Sketches:  doc.Sketches,
		Order:     doc.Order,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}, nil
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
