package store

import (
	"context"
	"errors"
)

// ErrDocumentNotFound is returned when a document does not exist.
var ErrDocumentNotFound = errors.New("document not found")

// Op is a comparison operator understood by Query.
type Op string

const (
	// OpEqual matches documents whose field equals the given value.
	OpEqual Op = "=="
)

// serverTimestamp is the sentinel type for ServerTimestamp.
type serverTimestamp struct{}

// ServerTimestamp is a sentinel field value. Drivers replace it with the
// authoritative write time when the document is persisted.
var ServerTimestamp = serverTimestamp{}

// Document is a single stored document together with its ID.
type Document struct {
	ID   string
	Data map[string]interface{}
}

// WriteBatch accumulates updates that are committed atomically:
// either every update is applied or none is.
type WriteBatch interface {
	// Update stages a partial update of a document.
	Update(collection, id string, fields map[string]interface{})

	// Commit applies all staged writes in one atomic operation.
	Commit(ctx context.Context) error
}

// Store is the document-database boundary. Collections are created lazily on
// first write, which the per-event registration collections rely on.
type Store interface {
	// Query returns documents where field compares to value. A limit of 0
	// means no limit. Result order is driver-defined.
	Query(ctx context.Context, collection, field string, op Op, value interface{}, limit int) ([]Document, error)

	// List returns every document in a collection ordered by the given field.
	List(ctx context.Context, collection, orderBy string, desc bool) ([]Document, error)

	// Get fetches a single document by ID.
	Get(ctx context.Context, collection, id string) (*Document, error)

	// Add creates a document with a generated ID and returns the ID.
	Add(ctx context.Context, collection string, fields map[string]interface{}) (string, error)

	// Update applies a partial update to an existing document.
	Update(ctx context.Context, collection, id string, fields map[string]interface{}) error

	// Delete removes a document. Deleting a missing document is not an error.
	Delete(ctx context.Context, collection, id string) error

	// Batch starts a new atomic write batch.
	Batch() WriteBatch

	// Close releases the underlying client.
	Close() error
}
