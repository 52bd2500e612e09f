package repositories

import (
	"context"
	"fmt"

	"github.com/ieeesb/event-portal/internal/app/models"
	"github.com/ieeesb/event-portal/internal/store"
)

// MailRepository manages the per-event mail outbox collections
type MailRepository struct {
	store store.Store
}

// NewMailRepository creates a new MailRepository
func NewMailRepository(st store.Store) *MailRepository {
	return &MailRepository{store: st}
}

// Enqueue writes one outbox entry to the event's mail collection
func (r *MailRepository) Enqueue(ctx context.Context, event *models.Event, record *models.MailRecord) (string, error) {
	id, err := r.store.Add(ctx, models.MailCollection(event), map[string]interface{}{
		"to": toInterfaceSlice(record.To),
		"message": map[string]interface{}{
			"subject": record.Message.Subject,
			"html":    record.Message.HTML,
		},
		"delivery": models.DeliveryPending,
	})
	if err != nil {
		return "", fmt.Errorf("error enqueueing mail record: %w", err)
	}
	return id, nil
}

// ListPending returns undelivered outbox entries for one mail collection
func (r *MailRepository) ListPending(ctx context.Context, collection string) ([]*models.MailRecord, error) {
	docs, err := r.store.Query(ctx, collection, "delivery", store.OpEqual, models.DeliveryPending, 0)
	if err != nil {
		return nil, fmt.Errorf("error listing pending mail: %w", err)
	}

	records := make([]*models.MailRecord, 0, len(docs))
	for i := range docs {
		records = append(records, mailRecordFromDoc(&docs[i]))
	}
	return records, nil
}

// MarkDelivery records the delivery outcome of an outbox entry
func (r *MailRepository) MarkDelivery(ctx context.Context, collection, id, state string) error {
	if err := r.store.Update(ctx, collection, id, map[string]interface{}{"delivery": state}); err != nil {
		return fmt.Errorf("error updating mail delivery state: %w", err)
	}
	return nil
}

func mailRecordFromDoc(doc *store.Document) *models.MailRecord {
	record := &models.MailRecord{
		ID:       doc.ID,
		Delivery: asString(doc.Data["delivery"]),
	}

	if to, ok := doc.Data["to"].([]interface{}); ok {
		for _, addr := range to {
			record.To = append(record.To, asString(addr))
		}
	}

	if msg, ok := doc.Data["message"].(map[string]interface{}); ok {
		record.Message.Subject = asString(msg["subject"])
		record.Message.HTML = asString(msg["html"])
	}

	return record
}

func toInterfaceSlice(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
