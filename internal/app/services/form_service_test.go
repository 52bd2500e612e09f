package services

import (
	"errors"
	"reflect"
	"testing"

	"github.com/ieeesb/event-portal/internal/app/models"
	"github.com/ieeesb/event-portal/internal/pkg/apperrors"
)

func TestSynthesizeFormIndividual(t *testing.T) {
	svc := NewFormService()
	event := &models.Event{
		EventName:         "Hack Night",
		ParticipationType: models.ParticipationIndividual,
		CustomQuestions: []models.CustomQuestion{
			{Label: "T-shirt size", Type: models.QuestionText},
		},
	}

	form, err := svc.SynthesizeForm(event)
	if err != nil {
		t.Fatalf("SynthesizeForm: %v", err)
	}

	if form.ParticipantCount != 1 {
		t.Fatalf("ParticipantCount = %d, want 1", form.ParticipantCount)
	}
	if len(form.Blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(form.Blocks))
	}
	if form.Blocks[0].Label != "Participant Details:" {
		t.Fatalf("block label = %q, want Participant Details:", form.Blocks[0].Label)
	}
	if len(form.Blocks[0].Fields) != 10 {
		t.Fatalf("participant block has %d fields, want 10", len(form.Blocks[0].Fields))
	}
	if form.Blocks[0].Fields[0].Name != "p1_name" {
		t.Fatalf("first field = %q, want p1_name", form.Blocks[0].Fields[0].Name)
	}

	custom := form.Blocks[1]
	if custom.Label != "Additional Questions" {
		t.Fatalf("custom block label = %q", custom.Label)
	}
	if len(custom.Fields) != 1 || custom.Fields[0].Name != "custom_q_T-shirt_size" {
		t.Fatalf("custom fields = %+v", custom.Fields)
	}
	if custom.Fields[0].Kind != models.FieldText {
		t.Fatalf("custom field kind = %q, want text", custom.Fields[0].Kind)
	}
}

func TestSynthesizeFormTeam(t *testing.T) {
	svc := NewFormService()
	event := &models.Event{
		EventName:         "Code Storm",
		ParticipationType: models.ParticipationTeam,
		TeamSize:          3,
	}

	form, err := svc.SynthesizeForm(event)
	if err != nil {
		t.Fatalf("SynthesizeForm: %v", err)
	}

	if form.ParticipantCount != 3 {
		t.Fatalf("ParticipantCount = %d, want 3", form.ParticipantCount)
	}
	if len(form.Blocks) != 3 {
		t.Fatalf("got %d blocks, want 3", len(form.Blocks))
	}

	wantLabels := []string{"Participant 1:", "Participant 2:", "Participant 3:"}
	for i, block := range form.Blocks {
		if block.Label != wantLabels[i] {
			t.Fatalf("block %d label = %q, want %q", i, block.Label, wantLabels[i])
		}
		if len(block.Fields) != 10 {
			t.Fatalf("block %d has %d fields, want 10", i, len(block.Fields))
		}
	}

	// Field names are numbered per participant slot.
	if _, ok := form.Field("p3_roll"); !ok {
		t.Fatal("p3_roll not found")
	}
	if _, ok := form.Field("p4_name"); ok {
		t.Fatal("p4_name should not exist for a team of 3")
	}
}

func TestSynthesizeFormMisconfiguredTeam(t *testing.T) {
	svc := NewFormService()
	event := &models.Event{
		EventName:         "Broken",
		ParticipationType: models.ParticipationTeam,
		TeamSize:          0,
	}

	_, err := svc.SynthesizeForm(event)
	if !errors.Is(err, apperrors.ErrEventMisconfigured) {
		t.Fatalf("err = %v, want ErrEventMisconfigured", err)
	}
}

func TestSynthesizeFormQuestionKinds(t *testing.T) {
	svc := NewFormService()
	event := &models.Event{
		EventName:         "Quiz",
		ParticipationType: models.ParticipationIndividual,
		CustomQuestions: []models.CustomQuestion{
			{Label: "Attending dinner", Type: models.QuestionYesNo},
			{Label: "Rate last event", Type: models.QuestionRating},
		},
	}

	form, err := svc.SynthesizeForm(event)
	if err != nil {
		t.Fatalf("SynthesizeForm: %v", err)
	}

	yesNo, ok := form.Field("custom_q_Attending_dinner")
	if !ok {
		t.Fatal("yes/no field not found")
	}
	if !reflect.DeepEqual(yesNo.Options, []string{"Yes", "No"}) {
		t.Fatalf("yes/no options = %v", yesNo.Options)
	}

	rating, ok := form.Field("custom_q_Rate_last_event")
	if !ok {
		t.Fatal("rating field not found")
	}
	if len(rating.Options) != 10 || rating.Options[0] != "1" || rating.Options[9] != "10" {
		t.Fatalf("rating options = %v", rating.Options)
	}
}

func TestSynthesizeFormIsPure(t *testing.T) {
	svc := NewFormService()
	event := &models.Event{
		EventName:         "Hack Night",
		ParticipationType: models.ParticipationTeam,
		TeamSize:          2,
		CustomQuestions: []models.CustomQuestion{
			{Label: "T-shirt size", Type: models.QuestionText},
		},
	}

	first, err := svc.SynthesizeForm(event)
	if err != nil {
		t.Fatalf("SynthesizeForm: %v", err)
	}
	second, err := svc.SynthesizeForm(event)
	if err != nil {
		t.Fatalf("SynthesizeForm: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Fatal("same event produced different forms")
	}
}

func TestSynthesizeFormRequiredFields(t *testing.T) {
	svc := NewFormService()
	event := &models.Event{
		EventName:         "Hack Night",
		ParticipationType: models.ParticipationIndividual,
	}

	form, err := svc.SynthesizeForm(event)
	if err != nil {
		t.Fatalf("SynthesizeForm: %v", err)
	}

	// Everything except the membership ID is mandatory.
	for _, field := range form.Blocks[0].Fields {
		wantRequired := field.Name != "p1_ieee_id"
		if field.Required != wantRequired {
			t.Fatalf("%s required = %v, want %v", field.Name, field.Required, wantRequired)
		}
	}
}
