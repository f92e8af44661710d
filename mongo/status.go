package mongo

import (
	"context"
	"fmt"
	"time"

	pausa "github.com/projetopausa/Site-Pausa-V1"
	"go.mongodb.org/mongo-driver/bson"
	driver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	statusChecksCollection = "status_checks"
	statusChecksLimit      = 1000
)

type statusCheckDoc struct {
	ID         string `bson:"id"`
	ClientName string `bson:"client_name"`
	Timestamp  string `bson:"timestamp"`
}

type StatusStore struct {
	checks *driver.Collection
}

func NewStatusStore(db *driver.Database) *StatusStore {
	return &StatusStore{
		checks: db.Collection(statusChecksCollection),
	}
}

func (ss *StatusStore) CreateStatusCheck(ctx context.Context, check pausa.StatusCheck) error {
	doc := statusCheckDoc{
		ID:         check.ID,
		ClientName: check.ClientName,
		Timestamp:  check.Timestamp.Format(time.RFC3339),
	}

	if _, err := ss.checks.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("inserting status check: %v: %w", err, pausa.ErrStoreUnavailable)
	}
	return nil
}

// ListStatusChecks returns up to 1000 records in insertion order, the
// collection's natural order.
func (ss *StatusStore) ListStatusChecks(ctx context.Context) ([]pausa.StatusCheck, error) {
	opts := options.Find().
		SetLimit(statusChecksLimit).
		SetProjection(bson.M{"_id": 0})

	cursor, err := ss.checks.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("listing status checks: %v: %w", err, pausa.ErrStoreUnavailable)
	}
	defer cursor.Close(ctx)

	var docs []statusCheckDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decoding status checks: %w", err)
	}

	checks := make([]pausa.StatusCheck, 0, len(docs))
	for _, doc := range docs {
		ts, err := time.Parse(time.RFC3339, doc.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("parsing status check timestamp: %w", err)
		}
		checks = append(checks, pausa.StatusCheck{
			ID:         doc.ID,
			ClientName: doc.ClientName,
			Timestamp:  ts,
		})
	}

	return checks, nil
}
