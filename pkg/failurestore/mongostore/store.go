package mongostore

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/importkit/pkg/failurestore"
	"github.com/dmitrymomot/importkit/pkg/rowvalidator"
)

// DefaultCollection is the collection name used by Config.
const DefaultCollection = "import_failures"

// document is the stored shape. seq keeps save order within one Save call.
type document struct {
	RunID     string         `bson:"run_id"`
	Seq       int64          `bson:"seq"`
	Row       int            `bson:"row"`
	Attribute string         `bson:"attribute"`
	Errors    []string       `bson:"errors"`
	Values    map[string]any `bson:"values,omitempty"`
	CreatedAt time.Time      `bson:"created_at"`
}

// Store keeps one document per failure.
type Store struct {
	coll *mongo.Collection
}

var _ failurestore.Store = (*Store)(nil)

// NewStore creates a store on coll.
func NewStore(coll *mongo.Collection) *Store {
	return &Store{coll: coll}
}

// EnsureIndexes creates the run lookup index.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "run_id", Value: 1}, {Key: "created_at", Value: 1}, {Key: "seq", Value: 1}},
	})
	return err
}

func (s *Store) Save(ctx context.Context, runID uuid.UUID, failures ...rowvalidator.Failure) error {
	if runID == uuid.Nil {
		return failurestore.ErrMissingRunID
	}
	if len(failures) == 0 {
		return nil
	}

	records := failurestore.NewRecords(runID, failures)
	docs := make([]any, len(records))
	for i, rec := range records {
		docs[i] = newDocument(rec, int64(i))
	}

	if _, err := s.coll.InsertMany(ctx, docs); err != nil {
		return errors.Join(failurestore.ErrSaveFailed, err)
	}
	return nil
}

func (s *Store) List(ctx context.Context, runID uuid.UUID) ([]failurestore.Record, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "seq", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.coll.Find(ctx, bson.D{{Key: "run_id", Value: runID.String()}}, opts)
	if err != nil {
		return nil, errors.Join(failurestore.ErrListFailed, err)
	}

	var docs []document
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Join(failurestore.ErrListFailed, err)
	}

	records := make([]failurestore.Record, 0, len(docs))
	for _, doc := range docs {
		rec, err := doc.record()
		if err != nil {
			return nil, errors.Join(failurestore.ErrListFailed, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func newDocument(rec failurestore.Record, seq int64) document {
	return document{
		RunID:     rec.RunID.String(),
		Seq:       seq,
		Row:       rec.Failure.Row,
		Attribute: rec.Failure.Attribute,
		Errors:    rec.Failure.Errors,
		Values:    rec.Failure.Values,
		CreatedAt: rec.CreatedAt,
	}
}

func (d document) record() (failurestore.Record, error) {
	id, err := uuid.Parse(d.RunID)
	if err != nil {
		return failurestore.Record{}, err
	}
	return failurestore.Record{
		RunID: id,
		Failure: rowvalidator.Failure{
			Row:       d.Row,
			Attribute: d.Attribute,
			Errors:    d.Errors,
			Values:    d.Values,
		},
		CreatedAt: d.CreatedAt.UTC(),
	}, nil
}
