package repositories

import (
	"context"
	"fmt"

	"github.com/ieeesb/event-portal/internal/app/models"
	"github.com/ieeesb/event-portal/internal/store"
)

// RegistrationRepository persists submitted registrations into the
// per-event dynamic collections
type RegistrationRepository struct {
	store store.Store
}

// NewRegistrationRepository creates a new RegistrationRepository
func NewRegistrationRepository(st store.Store) *RegistrationRepository {
	return &RegistrationRepository{store: st}
}

// CreateRegistration writes one registration document for the event. The
// raw field values are stored as submitted; participantCount is the
// server-side count, and the timestamp is assigned by the store.
func (r *RegistrationRepository) CreateRegistration(ctx context.Context, event *models.Event, fields map[string]string, participantCount int) (string, error) {
	doc := make(map[string]interface{}, len(fields)+2)
	for k, v := range fields {
		doc[k] = v
	}
	doc["participantCount"] = participantCount
	doc["timeStamp"] = store.ServerTimestamp

	id, err := r.store.Add(ctx, models.RegistrationCollection(event), doc)
	if err != nil {
		return "", fmt.Errorf("error creating registration: %w", err)
	}
	return id, nil
}
