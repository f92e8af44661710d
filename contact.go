package pausa

import (
	"context"
	"errors"
	"time"
)

// Source tags every record with the channel it came from.
const Source = "site-pausa"

var (
	// ErrStoreUnavailable indicates the persistence backend could not be
	// reached or declined the write.
	ErrStoreUnavailable = errors.New("contact store unavailable")

	// ErrUpstreamProtocol indicates the webhook backend answered with an
	// unexpected status or body shape.
	ErrUpstreamProtocol = errors.New("unexpected upstream response")
)

// ContactSubmission is the contact form payload as sent by the site.
type ContactSubmission struct {
	Name                string `json:"name" validate:"required,min=2,max=100"`
	Whatsapp            string `json:"whatsapp"`
	AcceptCommunication bool   `json:"acceptCommunication"`
}

// Contact is an accepted submission, normalized and stamped. It is handed to
// exactly one store attempt and not retained in memory afterwards.
type Contact struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Whatsapp            string    `json:"whatsapp"`
	PhoneDigits         string    `json:"phone_digits"`
	AcceptCommunication bool      `json:"acceptCommunication"`
	Timestamp           time.Time `json:"timestamp"`
	Source              string    `json:"source"`
}

// StatusCheck is a liveness-probe artifact written by monitoring clients.
type StatusCheck struct {
	ID         string    `json:"id"`
	ClientName string    `json:"client_name"`
	Timestamp  time.Time `json:"timestamp"`
}

// ContactStore is the persistence contract for accepted contacts. Both the
// document-store and the webhook-relay backends implement it; which one is
// active is a deployment-time choice. Implementations must be safe for
// concurrent use.
type ContactStore interface {
	SaveContact(ctx context.Context, contact Contact) error
	Ping(ctx context.Context) error
}

// StatusStore records and lists status checks. Backends without durable
// storage accept writes and list nothing.
type StatusStore interface {
	CreateStatusCheck(ctx context.Context, check StatusCheck) error
	ListStatusChecks(ctx context.Context) ([]StatusCheck, error)
}
