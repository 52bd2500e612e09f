package services

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ieeesb/event-portal/internal/app/models"
	"github.com/ieeesb/event-portal/internal/app/models/dto"
	"github.com/ieeesb/event-portal/internal/app/repositories"
	"github.com/ieeesb/event-portal/internal/pkg/apperrors"
	"github.com/ieeesb/event-portal/internal/store"
)

type fakeBlobStorage struct {
	saved   []string
	url     string
	saveErr error
}

func (f *fakeBlobStorage) SaveFile(ctx context.Context, fileHeader *multipart.FileHeader, pathPrefix string) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	f.saved = append(f.saved, pathPrefix+"/"+fileHeader.Filename)
	if f.url != "" {
		return f.url, nil
	}
	return "http://localhost/uploads/" + pathPrefix + "/" + fileHeader.Filename, nil
}

func newEventServiceForTest(t *testing.T) (EventService, *repositories.Repositories) {
	t.Helper()
	repos := repositories.NewRepositories(store.NewMemoryStore())
	svc := NewEventService(repos.EventRepository, &fakeBlobStorage{}, zerolog.Nop())
	return svc, repos
}

func poster() *multipart.FileHeader {
	return &multipart.FileHeader{Filename: "poster.png"}
}

func createRequest() *dto.CreateEventRequest {
	return &dto.CreateEventRequest{
		EventName:         "Hack Night",
		Description:       "An all-night hackathon.",
		ParticipationType: "individual",
		EmailTemplate:     "Hi {name}, see you at {eventName}!",
	}
}

func TestCreateEventDefaults(t *testing.T) {
	svc, _ := newEventServiceForTest(t)
	ctx := context.Background()

	event, err := svc.CreateEvent(ctx, createRequest(), poster())
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	if event.ID == "" {
		t.Fatal("event has no ID")
	}
	if event.Status != models.StatusClosed {
		t.Fatalf("status = %q, want closed", event.Status)
	}
	if event.IsActive {
		t.Fatal("new event must not be active")
	}

	// Creation must be observable through the read path too.
	stored, err := svc.GetEventByID(ctx, event.ID)
	if err != nil {
		t.Fatalf("GetEventByID: %v", err)
	}
	if stored.Status != models.StatusClosed || stored.IsActive {
		t.Fatalf("stored event = status %q active %v", stored.Status, stored.IsActive)
	}
	if stored.CreatedAt.IsZero() {
		t.Fatal("createdAt not assigned")
	}
}

func TestCreateEventValidation(t *testing.T) {
	svc, _ := newEventServiceForTest(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(*dto.CreateEventRequest)
		wantErr error
	}{
		{
			name:    "empty name",
			mutate:  func(r *dto.CreateEventRequest) { r.EventName = "  " },
			wantErr: apperrors.ErrValidationFailed,
		},
		{
			name:    "empty template",
			mutate:  func(r *dto.CreateEventRequest) { r.EmailTemplate = "" },
			wantErr: apperrors.ErrValidationFailed,
		},
		{
			name:    "unknown participation type",
			mutate:  func(r *dto.CreateEventRequest) { r.ParticipationType = "squad" },
			wantErr: apperrors.ErrValidationFailed,
		},
		{
			name: "team without size",
			mutate: func(r *dto.CreateEventRequest) {
				r.ParticipationType = "team"
				r.TeamSize = 0
			},
			wantErr: apperrors.ErrEventMisconfigured,
		},
		{
			name: "duplicate custom question labels",
			mutate: func(r *dto.CreateEventRequest) {
				r.CustomQuestions = []models.CustomQuestion{
					{Label: "T-shirt size", Type: models.QuestionText},
					{Label: "T-shirt  size", Type: models.QuestionText},
				}
			},
			wantErr: apperrors.ErrDuplicateCustomQuestion,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := createRequest()
			tt.mutate(req)
			if _, err := svc.CreateEvent(ctx, req, poster()); !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCreateEventRequiresPoster(t *testing.T) {
	svc, _ := newEventServiceForTest(t)

	if _, err := svc.CreateEvent(context.Background(), createRequest(), nil); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("err = %v, want ErrValidationFailed", err)
	}
}

func TestCreateEventPosterUploadFailure(t *testing.T) {
	repos := repositories.NewRepositories(store.NewMemoryStore())
	blob := &fakeBlobStorage{saveErr: errors.New("bucket unavailable")}
	svc := NewEventService(repos.EventRepository, blob, zerolog.Nop())
	ctx := context.Background()

	if _, err := svc.CreateEvent(ctx, createRequest(), poster()); err == nil {
		t.Fatal("expected error from failed upload")
	}

	// A failed upload must not leave a half-created event behind.
	events, err := svc.ListEvents(ctx)
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("got %d events after failed upload, want 0", len(events))
	}
}

func TestActivateSingleActiveInvariant(t *testing.T) {
	svc, _ := newEventServiceForTest(t)
	ctx := context.Background()

	first, err := svc.CreateEvent(ctx, createRequest(), poster())
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	reqB := createRequest()
	reqB.EventName = "Code Storm"
	second, err := svc.CreateEvent(ctx, reqB, poster())
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	if err := svc.Activate(ctx, first.ID); err != nil {
		t.Fatalf("Activate first: %v", err)
	}
	active, err := svc.GetActiveEvent(ctx)
	if err != nil {
		t.Fatalf("GetActiveEvent: %v", err)
	}
	if active.ID != first.ID {
		t.Fatalf("active = %s, want %s", active.ID, first.ID)
	}

	if err := svc.Activate(ctx, second.ID); err != nil {
		t.Fatalf("Activate second: %v", err)
	}

	events, err := svc.ListEvents(ctx)
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	for _, e := range events {
		wantActive := e.ID == second.ID
		if e.IsActive != wantActive {
			t.Fatalf("event %s active = %v, want %v", e.ID, e.IsActive, wantActive)
		}
	}
}

func TestActivateSequenceKeepsOneActive(t *testing.T) {
	svc, _ := newEventServiceForTest(t)
	ctx := context.Background()

	first, err := svc.CreateEvent(ctx, createRequest(), poster())
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	reqB := createRequest()
	reqB.EventName = "Code Storm"
	second, err := svc.CreateEvent(ctx, reqB, poster())
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	// Repeated back-and-forth activations, including re-activating the
	// already-active event, must leave exactly one active event after
	// every step.
	for step, id := range []string{first.ID, second.ID, first.ID, first.ID, second.ID} {
		if err := svc.Activate(ctx, id); err != nil {
			t.Fatalf("step %d Activate(%s): %v", step, id, err)
		}

		events, err := svc.ListEvents(ctx)
		if err != nil {
			t.Fatalf("step %d ListEvents: %v", step, err)
		}
		var active []string
		for _, e := range events {
			if e.IsActive {
				active = append(active, e.ID)
			}
		}
		if len(active) != 1 || active[0] != id {
			t.Fatalf("step %d: active events = %v, want [%s]", step, active, id)
		}
	}
}

func TestActivateIsIdempotent(t *testing.T) {
	svc, _ := newEventServiceForTest(t)
	ctx := context.Background()

	event, err := svc.CreateEvent(ctx, createRequest(), poster())
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	if err := svc.Activate(ctx, event.ID); err != nil {
		t.Fatalf("first Activate: %v", err)
	}
	if err := svc.Activate(ctx, event.ID); err != nil {
		t.Fatalf("second Activate: %v", err)
	}

	active, err := svc.GetActiveEvent(ctx)
	if err != nil {
		t.Fatalf("GetActiveEvent: %v", err)
	}
	if active.ID != event.ID {
		t.Fatalf("active = %s, want %s", active.ID, event.ID)
	}
}

func TestActivateUnknownEvent(t *testing.T) {
	svc, _ := newEventServiceForTest(t)
	ctx := context.Background()

	event, err := svc.CreateEvent(ctx, createRequest(), poster())
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if err := svc.Activate(ctx, event.ID); err != nil {
		t.Fatalf("Activate: %v", err)
	}

	if err := svc.Activate(ctx, "missing"); !errors.Is(err, apperrors.ErrEventNotFound) {
		t.Fatalf("err = %v, want ErrEventNotFound", err)
	}

	// The failed activation must not have disturbed the current one.
	active, err := svc.GetActiveEvent(ctx)
	if err != nil {
		t.Fatalf("GetActiveEvent: %v", err)
	}
	if active.ID != event.ID {
		t.Fatalf("active = %s, want %s", active.ID, event.ID)
	}
}

func TestGetActiveEventNoneActive(t *testing.T) {
	svc, _ := newEventServiceForTest(t)

	if _, err := svc.GetActiveEvent(context.Background()); !errors.Is(err, apperrors.ErrNoActiveEvent) {
		t.Fatalf("err = %v, want ErrNoActiveEvent", err)
	}
}

func TestToggleStatus(t *testing.T) {
	svc, _ := newEventServiceForTest(t)
	ctx := context.Background()

	event, err := svc.CreateEvent(ctx, createRequest(), poster())
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	// closed -> open -> closed
	status, err := svc.ToggleStatus(ctx, event.ID)
	if err != nil {
		t.Fatalf("ToggleStatus: %v", err)
	}
	if status != models.StatusOpen {
		t.Fatalf("status = %q, want open", status)
	}

	status, err = svc.ToggleStatus(ctx, event.ID)
	if err != nil {
		t.Fatalf("ToggleStatus: %v", err)
	}
	if status != models.StatusClosed {
		t.Fatalf("status = %q, want closed", status)
	}
}

func TestToggleStatusDoesNotAffectActivation(t *testing.T) {
	svc, _ := newEventServiceForTest(t)
	ctx := context.Background()

	event, err := svc.CreateEvent(ctx, createRequest(), poster())
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if err := svc.Activate(ctx, event.ID); err != nil {
		t.Fatalf("Activate: %v", err)
	}

	if _, err := svc.ToggleStatus(ctx, event.ID); err != nil {
		t.Fatalf("ToggleStatus: %v", err)
	}

	active, err := svc.GetActiveEvent(ctx)
	if err != nil {
		t.Fatalf("GetActiveEvent: %v", err)
	}
	if active.ID != event.ID {
		t.Fatalf("active = %s, want %s", active.ID, event.ID)
	}
}
