package services

import (
	"fmt"
	"strconv"

	"github.com/ieeesb/event-portal/internal/app/models"
	"github.com/ieeesb/event-portal/internal/pkg/apperrors"
	"github.com/ieeesb/event-portal/internal/pkg/validation"
)

// Select options fixed by the registration form.
var (
	yearOptions    = []string{"2", "3", "4"}
	branchOptions  = []string{"CIVIL", "CSB", "CSC", "CSD", "CSE", "CSM", "ECE", "EEE", "IT", "MECH", "OTHERS"}
	sectionOptions = []string{"A", "B", "C", "D", "OTHERS"}
	yesNoOptions   = []string{"Yes", "No"}
)

// FormService synthesizes the registration form specification for an event
type FormService interface {
	// SynthesizeForm derives the ordered field specification from an event
	// descriptor. It is a pure function of the descriptor.
	SynthesizeForm(event *models.Event) (*models.FormSpec, error)
}

// formServiceImpl implements the FormService interface
type formServiceImpl struct{}

// NewFormService creates a new form service instance
func NewFormService() FormService {
	return &formServiceImpl{}
}

// SynthesizeForm builds one participant block per participant slot followed
// by the custom question block when the event defines extra questions.
func (s *formServiceImpl) SynthesizeForm(event *models.Event) (*models.FormSpec, error) {
	count, ok := event.ParticipantCount()
	if !ok {
		return nil, fmt.Errorf("%w: team event %q has team size %d", apperrors.ErrEventMisconfigured, event.EventName, event.TeamSize)
	}

	spec := &models.FormSpec{ParticipantCount: count}

	for i := 1; i <= count; i++ {
		label := "Participant Details:"
		if count > 1 {
			label = fmt.Sprintf("Participant %d:", i)
		}
		spec.Blocks = append(spec.Blocks, models.FormBlock{
			Label:  label,
			Fields: participantFields(i),
		})
	}

	if len(event.CustomQuestions) > 0 {
		block := models.FormBlock{Label: "Additional Questions"}
		for _, q := range event.CustomQuestions {
			block.Fields = append(block.Fields, customQuestionField(q))
		}
		spec.Blocks = append(spec.Blocks, block)
	}

	return spec, nil
}

// participantFields is the fixed 10-field set of one participant block
func participantFields(i int) []models.FormField {
	name := func(attr string) string { return models.ParticipantFieldName(i, attr) }

	return []models.FormField{
		{Name: name("name"), Label: "Name", Kind: models.FieldText, Required: true},
		{Name: name("college"), Label: "College Name", Kind: models.FieldText, Required: true},
		{Name: name("year"), Label: "Year", Kind: models.FieldSelect, Required: true, Options: yearOptions},
		{Name: name("branch"), Label: "Branch", Kind: models.FieldSelect, Required: true, Options: branchOptions},
		{Name: name("section"), Label: "Section", Kind: models.FieldSelect, Required: true, Options: sectionOptions},
		{Name: name("roll"), Label: "Roll No.", Kind: models.FieldText, Required: true, Pattern: validation.RollNumberPattern, MaxLength: 10},
		{Name: name("email"), Label: "Email", Kind: models.FieldEmail, Required: true},
		{Name: name("phone"), Label: "Phone No.", Kind: models.FieldPhone, Required: true},
		{Name: name("ieee_member"), Label: "Are you an IEEE Member?", Kind: models.FieldSelect, Required: true, Options: yesNoOptions},
		{Name: name("ieee_id"), Label: "Membership ID (if applicable)", Kind: models.FieldText, Required: false},
	}
}

func customQuestionField(q models.CustomQuestion) models.FormField {
	field := models.FormField{
		Name:     models.CustomQuestionFieldName(q.Label),
		Label:    q.Label,
		Required: true,
	}

	switch q.Type {
	case models.QuestionYesNo:
		field.Kind = models.FieldSelect
		field.Options = yesNoOptions
	case models.QuestionRating:
		field.Kind = models.FieldSelect
		field.Options = ratingOptions()
	default:
		field.Kind = models.FieldText
	}

	return field
}

func ratingOptions() []string {
	options := make([]string, 0, 10)
	for i := 1; i <= 10; i++ {
		options = append(options, strconv.Itoa(i))
	}
	return options
}
