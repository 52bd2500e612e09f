package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ieeesb/event-portal/internal/app/models"
	"github.com/ieeesb/event-portal/internal/app/models/dto"
	"github.com/ieeesb/event-portal/internal/app/repositories"
	"github.com/ieeesb/event-portal/internal/pkg/apperrors"
	"github.com/ieeesb/event-portal/internal/pkg/validation"
)

// Submission keys that are always computed server-side; client-supplied
// values for them are discarded.
var reservedFieldNames = map[string]bool{
	"participantCount": true,
	"timeStamp":        true,
}

// RegistrationService validates and persists registration submissions
type RegistrationService interface {
	// Submit validates the raw form fields against the currently active
	// event (re-fetched now, not the one used at render time) and persists
	// the registration plus its confirmation outbox entry.
	Submit(ctx context.Context, fields map[string]string) (*dto.RegistrationResult, error)
}

// registrationServiceImpl implements the RegistrationService interface
type registrationServiceImpl struct {
	eventRepo        *repositories.EventRepository
	registrationRepo *repositories.RegistrationRepository
	mailRepo         *repositories.MailRepository
	formService      FormService
	logger           zerolog.Logger
}

// NewRegistrationService creates a new registration service instance
func NewRegistrationService(
	eventRepo *repositories.EventRepository,
	registrationRepo *repositories.RegistrationRepository,
	mailRepo *repositories.MailRepository,
	formService FormService,
	logger zerolog.Logger,
) RegistrationService {
	return &registrationServiceImpl{
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
		mailRepo:         mailRepo,
		formService:      formService,
		logger:           logger,
	}
}

// Submit runs the submission protocol: re-fetch, recompute, validate,
// persist, enqueue mail.
func (s *registrationServiceImpl) Submit(ctx context.Context, fields map[string]string) (*dto.RegistrationResult, error) {
	// An admin may have deactivated or closed the event between page load
	// and submission.
	event, err := s.eventRepo.GetActiveEvent(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoActiveEvent) {
			return nil, apperrors.ErrEventNoLongerActive
		}
		return nil, fmt.Errorf("error fetching active event: %w", err)
	}
	if event.Status != models.StatusOpen {
		return nil, apperrors.ErrEventNoLongerActive
	}

	// The participant count comes from the event document, never from the
	// submission.
	form, err := s.formService.SynthesizeForm(event)
	if err != nil {
		return nil, err
	}

	clean, err := s.validateSubmission(form, fields)
	if err != nil {
		return nil, err
	}

	registrationID, err := s.registrationRepo.CreateRegistration(ctx, event, clean, form.ParticipantCount)
	if err != nil {
		s.logger.Error().Err(err).Str("eventName", event.EventName).Msg("Registration persist failed")
		return nil, fmt.Errorf("%w: %v", apperrors.ErrRegistrationPersist, err)
	}

	result := &dto.RegistrationResult{RegistrationID: registrationID, MailQueued: true}

	// The registration is durable at this point. A mail enqueue failure is
	// an accepted inconsistency: reported, not rolled back.
	record := buildMailRecord(event, clean, form.ParticipantCount)
	if _, err := s.mailRepo.Enqueue(ctx, event, record); err != nil {
		s.logger.Error().Err(err).
			Str("eventName", event.EventName).
			Str("registrationId", registrationID).
			Msg("Confirmation mail enqueue failed; registration kept")
		result.MailQueued = false
	}

	return result, nil
}

// validateSubmission checks the raw fields against the synthesized form and
// returns the cleaned field map that will be persisted.
func (s *registrationServiceImpl) validateSubmission(form *models.FormSpec, fields map[string]string) (map[string]string, error) {
	clean := make(map[string]string, len(fields))
	for k, v := range fields {
		if reservedFieldNames[k] {
			continue
		}
		clean[k] = v
	}

	for _, block := range form.Blocks {
		for _, field := range block.Fields {
			value, present := clean[field.Name]
			value = strings.TrimSpace(value)

			if value == "" {
				if field.Required {
					return nil, validationError(field.Name, "value is required")
				}
				if !present {
					continue
				}
			}

			switch {
			case field.Kind == models.FieldEmail && value != "":
				if !validation.IsValidEmail(value) {
					return nil, validationError(field.Name, "must be a valid email address")
				}
			case field.Pattern != "" && value != "":
				if !validation.MatchesPattern(field.Pattern, value) {
					return nil, validationError(field.Name, "does not match the required format")
				}
			case len(field.Options) > 0 && value != "":
				if !containsOption(field.Options, value) {
					return nil, validationError(field.Name, "is not one of the allowed options")
				}
			}
		}
	}

	return clean, nil
}

func validationError(field, message string) error {
	return apperrors.NewCustomError(apperrors.ErrValidationFailed,
		fmt.Sprintf("field %s: %s", field, message)).
		WithDetails(map[string]interface{}{"field": field})
}

func containsOption(options []string, value string) bool {
	for _, opt := range options {
		if opt == value {
			return true
		}
	}
	return false
}

// buildMailRecord assembles the confirmation outbox entry: one recipient
// per participant email, and the event's template with the {name} and
// {eventName} placeholders filled in.
func buildMailRecord(event *models.Event, fields map[string]string, participantCount int) *models.MailRecord {
	emails := make([]string, 0, participantCount)
	names := make([]string, 0, participantCount)
	for i := 1; i <= participantCount; i++ {
		emails = append(emails, fields[models.ParticipantFieldName(i, "email")])
		names = append(names, fields[models.ParticipantFieldName(i, "name")])
	}

	body := strings.ReplaceAll(event.EmailTemplate, "{name}", strings.Join(names, " & "))
	body = strings.ReplaceAll(body, "{eventName}", event.EventName)

	return &models.MailRecord{
		To: emails,
		Message: models.MailMessage{
			Subject: "Registration Confirmed | " + event.EventName,
			HTML:    body,
		},
	}
}
