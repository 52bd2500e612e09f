package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ieeesb/event-portal/internal/app/models"
	"github.com/ieeesb/event-portal/internal/pkg/apperrors"
	"github.com/ieeesb/event-portal/internal/pkg/logger"
	"github.com/ieeesb/event-portal/internal/store"
)

// EventRepository handles live event documents
type EventRepository struct {
	store store.Store
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(st store.Store) *EventRepository {
	return &EventRepository{store: st}
}

// CreateEvent persists a new event. Every event starts closed and inactive;
// createdAt is assigned by the store.
func (r *EventRepository) CreateEvent(ctx context.Context, event *models.Event) (string, error) {
	questions := make([]interface{}, 0, len(event.CustomQuestions))
	for _, q := range event.CustomQuestions {
		questions = append(questions, map[string]interface{}{
			"label": q.Label,
			"type":  string(q.Type),
		})
	}

	id, err := r.store.Add(ctx, eventsCollection, map[string]interface{}{
		"eventName":         event.EventName,
		"description":       event.Description,
		"posterURL":         event.PosterURL,
		"participationType": string(event.ParticipationType),
		"teamSize":          event.TeamSize,
		"status":            string(models.StatusClosed),
		"isActive":          false,
		"emailTemplate":     event.EmailTemplate,
		"customQuestions":   questions,
		"createdAt":         store.ServerTimestamp,
	})
	if err != nil {
		logger.Error().Err(err).Str("eventName", event.EventName).Msg("Error creating event")
		return "", fmt.Errorf("error creating event: %w", err)
	}
	return id, nil
}

// GetEventByID retrieves an event by document ID
func (r *EventRepository) GetEventByID(ctx context.Context, id string) (*models.Event, error) {
	doc, err := r.store.Get(ctx, eventsCollection, id)
	if err != nil {
		if errors.Is(err, store.ErrDocumentNotFound) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, fmt.Errorf("error reading event: %w", err)
	}
	return eventFromDoc(doc), nil
}

// ListEvents returns all events, newest first
func (r *EventRepository) ListEvents(ctx context.Context) ([]*models.Event, error) {
	docs, err := r.store.List(ctx, eventsCollection, "createdAt", true)
	if err != nil {
		return nil, fmt.Errorf("error listing events: %w", err)
	}

	events := make([]*models.Event, 0, len(docs))
	for i := range docs {
		events = append(events, eventFromDoc(&docs[i]))
	}
	return events, nil
}

// GetActiveEvent returns the event flagged active. If the single-active
// invariant is ever violated the first match wins; zero matches is
// ErrNoActiveEvent.
func (r *EventRepository) GetActiveEvent(ctx context.Context) (*models.Event, error) {
	docs, err := r.store.Query(ctx, eventsCollection, "isActive", store.OpEqual, true, 1)
	if err != nil {
		return nil, fmt.Errorf("error querying active event: %w", err)
	}
	if len(docs) == 0 {
		return nil, apperrors.ErrNoActiveEvent
	}
	return eventFromDoc(&docs[0]), nil
}

// Activate flags one event active and clears the flag on every other event
// in a single write batch. There is deliberately no other code path that
// writes isActive: a partial activation must never be observable.
func (r *EventRepository) Activate(ctx context.Context, id string) error {
	if _, err := r.store.Get(ctx, eventsCollection, id); err != nil {
		if errors.Is(err, store.ErrDocumentNotFound) {
			return apperrors.ErrEventNotFound
		}
		return fmt.Errorf("error reading event: %w", err)
	}

	active, err := r.store.Query(ctx, eventsCollection, "isActive", store.OpEqual, true, 0)
	if err != nil {
		return fmt.Errorf("error querying active events: %w", err)
	}

	batch := r.store.Batch()
	for _, doc := range active {
		if doc.ID == id {
			continue
		}
		batch.Update(eventsCollection, doc.ID, map[string]interface{}{"isActive": false})
	}
	batch.Update(eventsCollection, id, map[string]interface{}{"isActive": true})

	if err := batch.Commit(ctx); err != nil {
		return fmt.Errorf("error committing activation batch: %w", err)
	}
	return nil
}

// ToggleStatus flips the event's registration status and returns the new
// value. Read-then-write; concurrent toggles are last-writer-wins.
func (r *EventRepository) ToggleStatus(ctx context.Context, id string) (models.EventStatus, error) {
	event, err := r.GetEventByID(ctx, id)
	if err != nil {
		return "", err
	}

	next := models.StatusOpen
	if event.Status == models.StatusOpen {
		next = models.StatusClosed
	}

	if err := r.store.Update(ctx, eventsCollection, id, map[string]interface{}{"status": string(next)}); err != nil {
		if errors.Is(err, store.ErrDocumentNotFound) {
			return "", apperrors.ErrEventNotFound
		}
		return "", fmt.Errorf("error updating event status: %w", err)
	}
	return next, nil
}

// eventFromDoc maps a raw document onto the Event model. Field types are
// read defensively: admin tooling has historically stored teamSize both as
// a number and as a string.
func eventFromDoc(doc *store.Document) *models.Event {
	event := &models.Event{
		ID:                doc.ID,
		EventName:         asString(doc.Data["eventName"]),
		Description:       asString(doc.Data["description"]),
		PosterURL:         asString(doc.Data["posterURL"]),
		ParticipationType: models.ParticipationType(asString(doc.Data["participationType"])),
		TeamSize:          asInt(doc.Data["teamSize"]),
		Status:            models.EventStatus(asString(doc.Data["status"])),
		IsActive:          asBool(doc.Data["isActive"]),
		EmailTemplate:     asString(doc.Data["emailTemplate"]),
		CreatedAt:         asTime(doc.Data["createdAt"]),
	}

	if raw, ok := doc.Data["customQuestions"].([]interface{}); ok {
		for _, item := range raw {
			q, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			event.CustomQuestions = append(event.CustomQuestions, models.CustomQuestion{
				Label: asString(q["label"]),
				Type:  models.QuestionType(asString(q["type"])),
			})
		}
	}

	return event
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func asBool(v interface{}) bool {
	b, _ := v.(bool)
	return b
}

func asTime(v interface{}) time.Time {
	t, _ := v.(time.Time)
	return t
}

func asInt(v interface{}) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case string:
		var parsed int
		if _, err := fmt.Sscanf(n, "%d", &parsed); err == nil {
			return parsed
		}
	}
	return 0
}
