package mongo

import (
	"context"
	"fmt"
	"time"

	pausa "github.com/projetopausa/Site-Pausa-V1"
	driver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const contactsCollection = "contacts"

// contactDoc is the stored form of a contact. Timestamps are RFC3339
// strings, the wire format the rest of the tooling around this database
// already expects.
type contactDoc struct {
	ID                  string `bson:"id"`
	Name                string `bson:"name"`
	Whatsapp            string `bson:"whatsapp"`
	PhoneDigits         string `bson:"phone_digits"`
	AcceptCommunication bool   `bson:"acceptCommunication"`
	Timestamp           string `bson:"timestamp"`
	Source              string `bson:"source"`
}

type ContactStore struct {
	contacts *driver.Collection
}

func NewContactStore(db *driver.Database) *ContactStore {
	return &ContactStore{
		contacts: db.Collection(contactsCollection),
	}
}

// SaveContact inserts the contact keyed by its generated id. A failed insert
// maps to ErrStoreUnavailable so the handler declines the submission instead
// of surfacing a server error; there is no per-request retry.
func (cs *ContactStore) SaveContact(ctx context.Context, contact pausa.Contact) error {
	doc := contactDoc{
		ID:                  contact.ID,
		Name:                contact.Name,
		Whatsapp:            contact.Whatsapp,
		PhoneDigits:         contact.PhoneDigits,
		AcceptCommunication: contact.AcceptCommunication,
		Timestamp:           contact.Timestamp.Format(time.RFC3339),
		Source:              contact.Source,
	}

	if _, err := cs.contacts.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("inserting contact: %v: %w", err, pausa.ErrStoreUnavailable)
	}
	return nil
}

// Ping reports database connectivity for the health endpoint.
func (cs *ContactStore) Ping(ctx context.Context) error {
	return cs.contacts.Database().Client().Ping(ctx, readpref.Primary())
}
