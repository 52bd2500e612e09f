package store

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/ieeesb/event-portal/internal/pkg/logger"
)

// FirestoreStore implements Store on Google Cloud Firestore.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore initializes the Firebase app and returns a Firestore-backed store
func NewFirestoreStore(ctx context.Context, projectID, credentialsFile string) (*FirestoreStore, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing Firebase app: %w", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting Firestore client: %w", err)
	}

	logger.Info().Str("projectId", projectID).Msg("Firestore client initialized")
	return &FirestoreStore{client: client}, nil
}

// Query returns documents where field compares to value
func (s *FirestoreStore) Query(ctx context.Context, collection, field string, op Op, value interface{}, limit int) ([]Document, error) {
	q := s.client.Collection(collection).Where(field, string(op), value)
	if limit > 0 {
		q = q.Limit(limit)
	}

	return s.collect(ctx, q.Documents(ctx))
}

// List returns every document in a collection ordered by the given field
func (s *FirestoreStore) List(ctx context.Context, collection, orderBy string, desc bool) ([]Document, error) {
	dir := firestore.Asc
	if desc {
		dir = firestore.Desc
	}

	q := s.client.Collection(collection).OrderBy(orderBy, dir)
	return s.collect(ctx, q.Documents(ctx))
}

func (s *FirestoreStore) collect(ctx context.Context, iter *firestore.DocumentIterator) ([]Document, error) {
	defer iter.Stop()

	var docs []Document
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error iterating documents: %w", err)
		}
		docs = append(docs, Document{ID: snap.Ref.ID, Data: snap.Data()})
	}
	return docs, nil
}

// Get fetches a single document by ID
func (s *FirestoreStore) Get(ctx context.Context, collection, id string) (*Document, error) {
	snap, err := s.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("error reading document: %w", err)
	}
	return &Document{ID: snap.Ref.ID, Data: snap.Data()}, nil
}

// Add creates a document with a generated ID
func (s *FirestoreStore) Add(ctx context.Context, collection string, fields map[string]interface{}) (string, error) {
	ref, _, err := s.client.Collection(collection).Add(ctx, translateSentinels(fields))
	if err != nil {
		return "", fmt.Errorf("error adding document: %w", err)
	}
	return ref.ID, nil
}

// Update applies a partial update to an existing document
func (s *FirestoreStore) Update(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	updates := make([]firestore.Update, 0, len(fields))
	for path, value := range translateSentinels(fields) {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}

	_, err := s.client.Collection(collection).Doc(id).Update(ctx, updates)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrDocumentNotFound
		}
		return fmt.Errorf("error updating document: %w", err)
	}
	return nil
}

// Delete removes a document
func (s *FirestoreStore) Delete(ctx context.Context, collection, id string) error {
	_, err := s.client.Collection(collection).Doc(id).Delete(ctx)
	if err != nil {
		return fmt.Errorf("error deleting document: %w", err)
	}
	return nil
}

// Batch starts a new atomic write batch
func (s *FirestoreStore) Batch() WriteBatch {
	return &firestoreBatch{store: s, batch: s.client.Batch()}
}

// Close releases the Firestore client
func (s *FirestoreStore) Close() error {
	return s.client.Close()
}

// firestoreBatch wraps a firestore.WriteBatch, which commits all-or-nothing.
type firestoreBatch struct {
	store *FirestoreStore
	batch *firestore.WriteBatch
}

func (b *firestoreBatch) Update(collection, id string, fields map[string]interface{}) {
	updates := make([]firestore.Update, 0, len(fields))
	for path, value := range translateSentinels(fields) {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}
	b.batch.Update(b.store.client.Collection(collection).Doc(id), updates)
}

func (b *firestoreBatch) Commit(ctx context.Context) error {
	if _, err := b.batch.Commit(ctx); err != nil {
		return fmt.Errorf("error committing write batch: %w", err)
	}
	return nil
}

// translateSentinels maps the driver-neutral ServerTimestamp sentinel to the
// Firestore one. Fields are copied; the caller's map is not modified.
func translateSentinels(fields map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		if _, ok := v.(serverTimestamp); ok {
			out[k] = firestore.ServerTimestamp
			continue
		}
		out[k] = v
	}
	return out
}
