package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/ieeesb/event-portal/internal/app/models"
	"github.com/ieeesb/event-portal/internal/pkg/apperrors"
	"github.com/ieeesb/event-portal/internal/store"
)

// PastEventRepository handles the past events gallery
type PastEventRepository struct {
	store store.Store
}

// NewPastEventRepository creates a new PastEventRepository
func NewPastEventRepository(st store.Store) *PastEventRepository {
	return &PastEventRepository{store: st}
}

// CreatePastEvent persists a new gallery entry
func (r *PastEventRepository) CreatePastEvent(ctx context.Context, pastEvent *models.PastEvent) (string, error) {
	id, err := r.store.Add(ctx, pastEventsCollection, map[string]interface{}{
		"title":     pastEvent.Title,
		"date":      pastEvent.Date,
		"posterURL": pastEvent.PosterURL,
		"createdAt": store.ServerTimestamp,
	})
	if err != nil {
		return "", fmt.Errorf("error creating past event: %w", err)
	}
	return id, nil
}

// ListPastEvents returns all gallery entries, newest first
func (r *PastEventRepository) ListPastEvents(ctx context.Context) ([]*models.PastEvent, error) {
	docs, err := r.store.List(ctx, pastEventsCollection, "createdAt", true)
	if err != nil {
		return nil, fmt.Errorf("error listing past events: %w", err)
	}

	pastEvents := make([]*models.PastEvent, 0, len(docs))
	for i := range docs {
		pastEvents = append(pastEvents, pastEventFromDoc(&docs[i]))
	}
	return pastEvents, nil
}

// DeletePastEvent removes a gallery entry
func (r *PastEventRepository) DeletePastEvent(ctx context.Context, id string) error {
	if _, err := r.store.Get(ctx, pastEventsCollection, id); err != nil {
		if errors.Is(err, store.ErrDocumentNotFound) {
			return apperrors.ErrPastEventNotFound
		}
		return fmt.Errorf("error reading past event: %w", err)
	}

	if err := r.store.Delete(ctx, pastEventsCollection, id); err != nil {
		return fmt.Errorf("error deleting past event: %w", err)
	}
	return nil
}

func pastEventFromDoc(doc *store.Document) *models.PastEvent {
	return &models.PastEvent{
		ID:        doc.ID,
		Title:     asString(doc.Data["title"]),
		Date:      asString(doc.Data["date"]),
		PosterURL: asString(doc.Data["posterURL"]),
		CreatedAt: asTime(doc.Data["createdAt"]),
	}
}
