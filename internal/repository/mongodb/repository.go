package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/partyops/jumpkitchen/internal/domain/models"
)

const (
	schedulesCollection = "schedules"
	archiveCollection   = "schedule_archive"
)

// scheduleRecord is the stored shape: the venue key plus the document.
type scheduleRecord struct {
	Venue     string                  `bson:"venue"`
	Document  models.ScheduleDocument `bson:"document"`
	UpdatedAt time.Time               `bson:"updated_at"`
}

type archiveRecord struct {
	Venue      string                  `bson:"venue"`
	Document   models.ScheduleDocument `bson:"document"`
	ArchivedAt time.Time               `bson:"archived_at"`
}

// Store implements repository.ScheduleStore on MongoDB, one document per
// venue in the schedules collection.
type Store struct {
	client *mongo.Client
	dbName string
}

// NewStore connects to MongoDB and verifies the connection.
func NewStore(ctx context.Context, uri string, dbName string) (*Store, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Store{client: client, dbName: dbName}, nil
}

func (s *Store) schedules() *mongo.Collection {
	return s.client.Database(s.dbName).Collection(schedulesCollection)
}

// Load fetches a venue's document; unknown venues yield an empty document.
func (s *Store) Load(ctx context.Context, venue string) (models.ScheduleDocument, error) {
	var rec scheduleRecord
	err := s.schedules().FindOne(ctx, bson.M{"venue": venue}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.NewScheduleDocument(), nil
	}
	if err != nil {
		return models.ScheduleDocument{}, fmt.Errorf("load schedule for venue %s: %w", venue, err)
	}

	if rec.Document.Reservations == nil {
		rec.Document.Reservations = []models.Reservation{}
	}
	if rec.Document.Validations == nil {
		rec.Document.Validations = models.Validations{}
	}
	return rec.Document, nil
}

// Save upserts a venue's document atomically.
func (s *Store) Save(ctx context.Context, venue string, doc models.ScheduleDocument) error {
	rec := scheduleRecord{Venue: venue, Document: doc, UpdatedAt: time.Now().UTC()}

	opts := options.Replace().SetUpsert(true)
	if _, err := s.schedules().ReplaceOne(ctx, bson.M{"venue": venue}, rec, opts); err != nil {
		return fmt.Errorf("save schedule for venue %s: %w", venue, err)
	}
	return nil
}

// Archive copies the venue's current document into the archive collection.
// Archiving a venue without reservations is a no-op.
func (s *Store) Archive(ctx context.Context, venue string) error {
	doc, err := s.Load(ctx, venue)
	if err != nil {
		return err
	}
	if len(doc.Reservations) == 0 {
		return nil
	}

	rec := archiveRecord{Venue: venue, Document: doc, ArchivedAt: time.Now().UTC()}
	coll := s.client.Database(s.dbName).Collection(archiveCollection)
	if _, err := coll.InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("archive schedule for venue %s: %w", venue, err)
	}
	return nil
}

// Venues lists every venue that has a stored schedule document.
func (s *Store) Venues(ctx context.Context) ([]string, error) {
	raw, err := s.schedules().Distinct(ctx, "venue", bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}

	venues := make([]string, 0, len(raw))
	for _, v := range raw {
		if name, ok := v.(string); ok {
			venues = append(venues, name)
		}
	}
	return venues, nil
}

// Close closes the MongoDB connection.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
