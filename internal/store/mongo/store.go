// Package mongo persists tasks as documents in a MongoDB collection.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"task-tracker-api/internal/domain"
	"task-tracker-api/internal/store"
)

const collectionName = "tasks"

var ErrNoURI = errors.New("mongo uri is empty")

type Options struct {
	URI        string
	Database   string
	Retries    int
	RetryDelay time.Duration
}

type taskDocument struct {
	ID          primitive.ObjectID `bson:"_id"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Completed   bool               `bson:"completed"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func (d taskDocument) toDomain() domain.Task {
	return domain.Task{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Completed:   d.Completed,
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
}

// Store is a store.TaskStore backed by a MongoDB collection.
type Store struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// Connect dials the server, pinging it until it answers or the retry budget
// is spent, then ensures the listing index exists.
func Connect(ctx context.Context, opts Options, logger *log.Logger) (*Store, error) {
	if opts.URI == "" {
		return nil, ErrNoURI
	}

	// parameters in the URI take precedence over these defaults
	clientOpts := options.Client().
		SetMaxPoolSize(10).
		SetServerSelectionTimeout(5 * time.Second).
		SetSocketTimeout(45 * time.Second).
		ApplyURI(opts.URI)

	var (
		client *mongo.Client
		err    error
	)
	for attempt := 0; ; attempt++ {
		client, err = connectAndPing(ctx, clientOpts)
		if err == nil {
			break
		}
		if attempt >= opts.Retries {
			return nil, fmt.Errorf("connect mongo: %w", err)
		}

		logger.Error("mongo connection failed", "attempt", attempt+1, "retry_in", opts.RetryDelay, "err", err)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(opts.RetryDelay):
		}
	}

	logger.Info("mongo connected", "database", opts.Database)

	s := &Store{
		client: client,
		coll:   client.Database(opts.Database).Collection(collectionName),
	}

	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return s, nil
}

func connectAndPing(ctx context.Context, clientOpts *options.ClientOptions) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return client, nil
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	return nil
}

// Close disconnects the client and releases its connection pool.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ping reports whether the server is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Drop removes the whole database. Used by tests.
func (s *Store) Drop(ctx context.Context) error {
	return s.coll.Database().Drop(ctx)
}

func (s *Store) FindAll(ctx context.Context) ([]domain.Task, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})

	cur, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find all: %w", err)
	}

	var docs []taskDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("find all: decode: %w", err)
	}

	tasks := make([]domain.Task, 0, len(docs))
	for _, d := range docs {
		tasks = append(tasks, d.toDomain())
	}

	return tasks, nil
}

func (s *Store) FindByID(ctx context.Context, id string) (domain.Task, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.Task{}, store.ErrNotFound
	}

	var doc taskDocument
	err = s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Task{}, store.ErrNotFound
	}
	if err != nil {
		return domain.Task{}, fmt.Errorf("find by id: %w", err)
	}

	return doc.toDomain(), nil
}

func (s *Store) Insert(ctx context.Context, task domain.Task) (domain.Task, error) {
	// client-side ids keep _id monotonic within the process for tie breaks
	doc := taskDocument{
		ID:          primitive.NewObjectID(),
		Title:       task.Title,
		Description: task.Description,
		Completed:   task.Completed,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}

	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return domain.Task{}, fmt.Errorf("insert: %w", err)
	}

	task.ID = doc.ID.Hex()
	return task, nil
}

func (s *Store) UpdateByID(ctx context.Context, id string, task domain.Task) (domain.Task, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.Task{}, store.ErrNotFound
	}

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "title", Value: task.Title},
		{Key: "description", Value: task.Description},
		{Key: "completed", Value: task.Completed},
		{Key: "updatedAt", Value: task.UpdatedAt},
	}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc taskDocument
	err = s.coll.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: oid}}, update, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Task{}, store.ErrNotFound
	}
	if err != nil {
		return domain.Task{}, fmt.Errorf("update: %w", err)
	}

	return doc.toDomain(), nil
}

func (s *Store) DeleteByID(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return store.ErrNotFound
	}

	res, err := s.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}

	return nil
}
