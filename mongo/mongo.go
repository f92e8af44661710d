// Package mongo implements the document-store persistence backend.
package mongo

import (
	"context"
	"crypto/tls"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	driver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.opentelemetry.io/contrib/instrumentation/go.mongodb.org/mongo-driver/mongo/otelmongo"
)

// Config is the required properties to use the database.
type Config struct {
	URI                    string
	Database               string
	ConnectTimeout         time.Duration
	ServerSelectionTimeout time.Duration
	SocketTimeout          time.Duration
	MaxPoolSize            uint64
	// InsecureTLS skips certificate verification. Needed for some managed
	// clusters fronted by proxies with certificates the base image does
	// not trust.
	InsecureTLS bool
}

// Open knows how to open a database connection based on the configuration.
// The returned client is a pooled handle, safe for concurrent use, and is
// the single long-lived connection for the whole process. Open does not
// verify connectivity; callers that care should follow up with StatusCheck
// and may keep serving degraded if it fails.
func Open(cfg Config) (*driver.Client, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetServerSelectionTimeout(cfg.ServerSelectionTimeout).
		SetSocketTimeout(cfg.SocketTimeout).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetMonitor(otelmongo.NewMonitor())

	if cfg.InsecureTLS {
		opts.SetTLSConfig(&tls.Config{InsecureSkipVerify: true})
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	return driver.Connect(ctx, opts)
}

// StatusCheck returns nil if it can successfully talk to the database. It
// returns a non-nil error otherwise.
func StatusCheck(ctx context.Context, client *driver.Client) error {
	return client.Ping(ctx, readpref.Primary())
}

// Collections lists the collection names of the configured database. Used at
// startup to log what the service found on the other end.
func Collections(ctx context.Context, client *driver.Client, database string) ([]string, error) {
	return client.Database(database).ListCollectionNames(ctx, bson.D{})
}
