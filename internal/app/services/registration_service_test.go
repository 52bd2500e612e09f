package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/ieeesb/event-portal/internal/app/models"
	"github.com/ieeesb/event-portal/internal/app/repositories"
	"github.com/ieeesb/event-portal/internal/pkg/apperrors"
	"github.com/ieeesb/event-portal/internal/store"
)

// failingAddStore delegates to a real store but fails Add for one
// collection, to exercise the partial-failure paths.
type failingAddStore struct {
	store.Store
	failCollection string
}

func (f *failingAddStore) Add(ctx context.Context, collection string, fields map[string]interface{}) (string, error) {
	if collection == f.failCollection {
		return "", fmt.Errorf("add to %s: store unavailable", collection)
	}
	return f.Store.Add(ctx, collection, fields)
}

func newRegistrationServiceForTest(t *testing.T, st store.Store) (RegistrationService, *repositories.Repositories) {
	t.Helper()
	repos := repositories.NewRepositories(st)
	svc := NewRegistrationService(
		repos.EventRepository,
		repos.RegistrationRepository,
		repos.MailRepository,
		NewFormService(),
		zerolog.Nop(),
	)
	return svc, repos
}

// seedEvent writes an event document directly and returns its ID
func seedEvent(t *testing.T, st store.Store, event *models.Event) string {
	t.Helper()

	questions := make([]interface{}, 0, len(event.CustomQuestions))
	for _, q := range event.CustomQuestions {
		questions = append(questions, map[string]interface{}{"label": q.Label, "type": string(q.Type)})
	}

	id, err := st.Add(context.Background(), "events", map[string]interface{}{
		"eventName":         event.EventName,
		"description":       event.Description,
		"participationType": string(event.ParticipationType),
		"teamSize":          event.TeamSize,
		"status":            string(event.Status),
		"isActive":          event.IsActive,
		"emailTemplate":     event.EmailTemplate,
		"customQuestions":   questions,
		"createdAt":         time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seedEvent: %v", err)
	}
	return id
}

func participantFieldValues(i int) map[string]string {
	p := func(attr string) string { return models.ParticipantFieldName(i, attr) }
	return map[string]string{
		p("name"):        fmt.Sprintf("Member %d", i),
		p("college"):     "Institute of Technology",
		p("year"):        "3",
		p("branch"):      "CSE",
		p("section"):     "A",
		p("roll"):        fmt.Sprintf("21B81A05%02d", i),
		p("email"):       fmt.Sprintf("member%d@example.com", i),
		p("phone"):       "9876543210",
		p("ieee_member"): "No",
	}
}

func openIndividualEvent() *models.Event {
	return &models.Event{
		EventName:         "Hack Night",
		Description:       "An all-night hackathon.",
		ParticipationType: models.ParticipationIndividual,
		Status:            models.StatusOpen,
		IsActive:          true,
		EmailTemplate:     "Hi {name}, you are registered for {eventName}.",
	}
}

func TestSubmitNoActiveEvent(t *testing.T) {
	svc, _ := newRegistrationServiceForTest(t, store.NewMemoryStore())

	_, err := svc.Submit(context.Background(), participantFieldValues(1))
	if !errors.Is(err, apperrors.ErrEventNoLongerActive) {
		t.Fatalf("err = %v, want ErrEventNoLongerActive", err)
	}
}

func TestSubmitClosedEvent(t *testing.T) {
	st := store.NewMemoryStore()
	svc, _ := newRegistrationServiceForTest(t, st)

	event := openIndividualEvent()
	event.Status = models.StatusClosed
	seedEvent(t, st, event)

	_, err := svc.Submit(context.Background(), participantFieldValues(1))
	if !errors.Is(err, apperrors.ErrEventNoLongerActive) {
		t.Fatalf("err = %v, want ErrEventNoLongerActive", err)
	}

	// The refused submission must not leave a registration behind.
	docs, err := st.List(context.Background(), "HackNightParticipants", "timeStamp", true)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(docs) != 0 {
		t.Fatalf("got %d registrations after refused submit, want 0", len(docs))
	}
}

func TestSubmitIndividual(t *testing.T) {
	st := store.NewMemoryStore()
	svc, _ := newRegistrationServiceForTest(t, st)
	ctx := context.Background()

	event := openIndividualEvent()
	event.CustomQuestions = []models.CustomQuestion{{Label: "T-shirt size", Type: models.QuestionText}}
	seedEvent(t, st, event)

	fields := participantFieldValues(1)
	fields["custom_q_T-shirt_size"] = "M"

	result, err := svc.Submit(ctx, fields)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if result.RegistrationID == "" {
		t.Fatal("no registration ID")
	}
	if !result.MailQueued {
		t.Fatal("MailQueued = false, want true")
	}

	// Registration lands in the event-derived collection.
	doc, err := st.Get(ctx, "HackNightParticipants", result.RegistrationID)
	if err != nil {
		t.Fatalf("registration not stored: %v", err)
	}
	if doc.Data["p1_name"] != "Member 1" {
		t.Fatalf("p1_name = %v", doc.Data["p1_name"])
	}
	if doc.Data["custom_q_T-shirt_size"] != "M" {
		t.Fatalf("custom question = %v", doc.Data["custom_q_T-shirt_size"])
	}
	if doc.Data["participantCount"] != 1 {
		t.Fatalf("participantCount = %v, want 1", doc.Data["participantCount"])
	}
	if _, ok := doc.Data["timeStamp"].(time.Time); !ok {
		t.Fatalf("timeStamp = %T, want time.Time", doc.Data["timeStamp"])
	}

	// One pending mail record next door.
	mails, err := st.Query(ctx, "HackNightMails", "delivery", store.OpEqual, models.DeliveryPending, 0)
	if err != nil {
		t.Fatalf("mail query: %v", err)
	}
	if len(mails) != 1 {
		t.Fatalf("got %d mail records, want 1", len(mails))
	}

	mail := mails[0].Data
	to, _ := mail["to"].([]interface{})
	if len(to) != 1 || to[0] != "member1@example.com" {
		t.Fatalf("to = %v", to)
	}
	msg, _ := mail["message"].(map[string]interface{})
	if msg["subject"] != "Registration Confirmed | Hack Night" {
		t.Fatalf("subject = %v", msg["subject"])
	}
	body, _ := msg["html"].(string)
	if body != "Hi Member 1, you are registered for Hack Night." {
		t.Fatalf("body = %q", body)
	}
}

func TestSubmitTeam(t *testing.T) {
	st := store.NewMemoryStore()
	svc, _ := newRegistrationServiceForTest(t, st)
	ctx := context.Background()

	event := &models.Event{
		EventName:         "Code Storm",
		ParticipationType: models.ParticipationTeam,
		TeamSize:          2,
		Status:            models.StatusOpen,
		IsActive:          true,
		EmailTemplate:     "Team {name}: welcome to {eventName}!",
	}
	seedEvent(t, st, event)

	fields := participantFieldValues(1)
	for k, v := range participantFieldValues(2) {
		fields[k] = v
	}

	result, err := svc.Submit(ctx, fields)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	doc, err := st.Get(ctx, "CodeStormTeams", result.RegistrationID)
	if err != nil {
		t.Fatalf("registration not stored: %v", err)
	}
	if doc.Data["participantCount"] != 2 {
		t.Fatalf("participantCount = %v, want 2", doc.Data["participantCount"])
	}

	mails, err := st.Query(ctx, "CodeStormMails", "delivery", store.OpEqual, models.DeliveryPending, 0)
	if err != nil || len(mails) != 1 {
		t.Fatalf("mails = %v, err = %v", mails, err)
	}

	to, _ := mails[0].Data["to"].([]interface{})
	if len(to) != 2 || to[0] != "member1@example.com" || to[1] != "member2@example.com" {
		t.Fatalf("to = %v", to)
	}
	msg, _ := mails[0].Data["message"].(map[string]interface{})
	body, _ := msg["html"].(string)
	if !strings.Contains(body, "Member 1 & Member 2") {
		t.Fatalf("body = %q, want joined names", body)
	}
}

func TestSubmitIgnoresClientCount(t *testing.T) {
	st := store.NewMemoryStore()
	svc, _ := newRegistrationServiceForTest(t, st)
	ctx := context.Background()

	seedEvent(t, st, openIndividualEvent())

	fields := participantFieldValues(1)
	fields["participantCount"] = "99"
	fields["timeStamp"] = "1999-01-01"

	result, err := svc.Submit(ctx, fields)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	doc, err := st.Get(ctx, "HackNightParticipants", result.RegistrationID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if doc.Data["participantCount"] != 1 {
		t.Fatalf("participantCount = %v, want server-computed 1", doc.Data["participantCount"])
	}
	if _, ok := doc.Data["timeStamp"].(time.Time); !ok {
		t.Fatalf("timeStamp = %T, want store-assigned time.Time", doc.Data["timeStamp"])
	}
}

func TestSubmitValidation(t *testing.T) {
	st := store.NewMemoryStore()
	svc, _ := newRegistrationServiceForTest(t, st)
	ctx := context.Background()

	seedEvent(t, st, openIndividualEvent())

	tests := []struct {
		name   string
		mutate func(map[string]string)
	}{
		{"missing required field", func(f map[string]string) { delete(f, "p1_name") }},
		{"blank required field", func(f map[string]string) { f["p1_college"] = "   " }},
		{"bad email", func(f map[string]string) { f["p1_email"] = "not-an-email" }},
		{"bad roll number", func(f map[string]string) { f["p1_roll"] = "short" }},
		{"option not allowed", func(f map[string]string) { f["p1_year"] = "1" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := participantFieldValues(1)
			tt.mutate(fields)
			if _, err := svc.Submit(ctx, fields); !errors.Is(err, apperrors.ErrValidationFailed) {
				t.Fatalf("err = %v, want ErrValidationFailed", err)
			}
		})
	}

	// Nothing was persisted by any of the rejected submissions.
	docs, err := st.List(ctx, "HackNightParticipants", "timeStamp", false)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(docs) != 0 {
		t.Fatalf("got %d registrations after rejections, want 0", len(docs))
	}
}

func TestSubmitOptionalFieldMayBeEmpty(t *testing.T) {
	st := store.NewMemoryStore()
	svc, _ := newRegistrationServiceForTest(t, st)

	seedEvent(t, st, openIndividualEvent())

	fields := participantFieldValues(1)
	fields["p1_ieee_id"] = ""

	if _, err := svc.Submit(context.Background(), fields); err != nil {
		t.Fatalf("Submit: %v", err)
	}
}

func TestSubmitMisconfiguredEvent(t *testing.T) {
	st := store.NewMemoryStore()
	svc, _ := newRegistrationServiceForTest(t, st)

	event := &models.Event{
		EventName:         "Broken",
		ParticipationType: models.ParticipationTeam,
		TeamSize:          0,
		Status:            models.StatusOpen,
		IsActive:          true,
		EmailTemplate:     "x",
	}
	seedEvent(t, st, event)

	_, err := svc.Submit(context.Background(), participantFieldValues(1))
	if !errors.Is(err, apperrors.ErrEventMisconfigured) {
		t.Fatalf("err = %v, want ErrEventMisconfigured", err)
	}
}

func TestSubmitRegistrationPersistFailure(t *testing.T) {
	memory := store.NewMemoryStore()
	st := &failingAddStore{Store: memory, failCollection: "HackNightParticipants"}
	svc, _ := newRegistrationServiceForTest(t, st)

	seedEvent(t, memory, openIndividualEvent())

	_, err := svc.Submit(context.Background(), participantFieldValues(1))
	if !errors.Is(err, apperrors.ErrRegistrationPersist) {
		t.Fatalf("err = %v, want ErrRegistrationPersist", err)
	}
}

func TestSubmitMailFailureKeepsRegistration(t *testing.T) {
	memory := store.NewMemoryStore()
	st := &failingAddStore{Store: memory, failCollection: "HackNightMails"}
	svc, _ := newRegistrationServiceForTest(t, st)
	ctx := context.Background()

	seedEvent(t, memory, openIndividualEvent())

	result, err := svc.Submit(ctx, participantFieldValues(1))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if result.MailQueued {
		t.Fatal("MailQueued = true, want false")
	}

	// The registration survives the mail failure.
	if _, err := memory.Get(ctx, "HackNightParticipants", result.RegistrationID); err != nil {
		t.Fatalf("registration missing after mail failure: %v", err)
	}
}
