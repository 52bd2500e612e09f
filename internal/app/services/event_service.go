package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ieeesb/event-portal/internal/app/models"
	"github.com/ieeesb/event-portal/internal/app/models/dto"
	"github.com/ieeesb/event-portal/internal/app/repositories"
	"github.com/ieeesb/event-portal/internal/pkg/apperrors"
	"github.com/ieeesb/event-portal/internal/pkg/blobstorage"
)

// EventService defines the event lifecycle operations
type EventService interface {
	ListEvents(ctx context.Context) ([]*models.Event, error)
	GetEventByID(ctx context.Context, id string) (*models.Event, error)
	GetActiveEvent(ctx context.Context) (*models.Event, error)
	CreateEvent(ctx context.Context, req *dto.CreateEventRequest, poster *multipart.FileHeader) (*models.Event, error)
	Activate(ctx context.Context, id string) error
	ToggleStatus(ctx context.Context, id string) (models.EventStatus, error)
}

// eventServiceImpl implements the EventService interface
type eventServiceImpl struct {
	eventRepo   *repositories.EventRepository
	blobStorage blobstorage.BlobStorage
	logger      zerolog.Logger
}

// NewEventService creates a new event service instance
func NewEventService(eventRepo *repositories.EventRepository, blobStorage blobstorage.BlobStorage, logger zerolog.Logger) EventService {
	return &eventServiceImpl{
		eventRepo:   eventRepo,
		blobStorage: blobStorage,
		logger:      logger,
	}
}

// validateCreateEvent validates event data before it is persisted
func (s *eventServiceImpl) validateCreateEvent(req *dto.CreateEventRequest) error {
	if strings.TrimSpace(req.EventName) == "" {
		return fmt.Errorf("%w: event name cannot be empty", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(req.Description) == "" {
		return fmt.Errorf("%w: description cannot be empty", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(req.EmailTemplate) == "" {
		return fmt.Errorf("%w: email template cannot be empty", apperrors.ErrValidationFailed)
	}

	participationType := models.ParticipationType(req.ParticipationType)
	if participationType != models.ParticipationIndividual && participationType != models.ParticipationTeam {
		return fmt.Errorf("%w: unknown participation type %q", apperrors.ErrValidationFailed, req.ParticipationType)
	}
	if participationType == models.ParticipationTeam && req.TeamSize <= 0 {
		return fmt.Errorf("%w: team events need a positive team size", apperrors.ErrEventMisconfigured)
	}

	// Two questions that normalize to the same field name would make one
	// submission value overwrite the other, so creation rejects them.
	seen := make(map[string]string, len(req.CustomQuestions))
	for _, q := range req.CustomQuestions {
		if strings.TrimSpace(q.Label) == "" {
			return fmt.Errorf("%w: custom question label cannot be empty", apperrors.ErrValidationFailed)
		}
		switch q.Type {
		case models.QuestionText, models.QuestionYesNo, models.QuestionRating:
		default:
			return fmt.Errorf("%w: unknown question type %q", apperrors.ErrValidationFailed, q.Type)
		}

		name := models.CustomQuestionFieldName(q.Label)
		if other, ok := seen[name]; ok {
			return fmt.Errorf("%w: %q and %q both map to %s", apperrors.ErrDuplicateCustomQuestion, other, q.Label, name)
		}
		seen[name] = q.Label
	}

	return nil
}

// CreateEvent uploads the poster and persists the event. The poster upload
// completes first; a failed upload leaves no event behind.
func (s *eventServiceImpl) CreateEvent(ctx context.Context, req *dto.CreateEventRequest, poster *multipart.FileHeader) (*models.Event, error) {
	if err := s.validateCreateEvent(req); err != nil {
		return nil, err
	}
	if poster == nil {
		return nil, fmt.Errorf("%w: event poster is required", apperrors.ErrValidationFailed)
	}

	posterURL, err := s.blobStorage.SaveFile(ctx, poster, blobstorage.EventPostersPath)
	if err != nil {
		return nil, fmt.Errorf("error uploading event poster: %w", err)
	}

	event := &models.Event{
		EventName:         req.EventName,
		Description:       req.Description,
		PosterURL:         posterURL,
		ParticipationType: models.ParticipationType(req.ParticipationType),
		TeamSize:          req.TeamSize,
		Status:            models.StatusClosed,
		IsActive:          false,
		EmailTemplate:     req.EmailTemplate,
		CustomQuestions:   req.CustomQuestions,
	}

	id, err := s.eventRepo.CreateEvent(ctx, event)
	if err != nil {
		return nil, fmt.Errorf("error creating event: %w", err)
	}
	event.ID = id

	s.logger.Info().Str("eventId", id).Str("eventName", event.EventName).Msg("Event created")
	return event, nil
}

// ListEvents returns all events, newest first
func (s *eventServiceImpl) ListEvents(ctx context.Context) ([]*models.Event, error) {
	events, err := s.eventRepo.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving events: %w", err)
	}
	return events, nil
}

// GetEventByID retrieves a single event
func (s *eventServiceImpl) GetEventByID(ctx context.Context, id string) (*models.Event, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: event ID cannot be empty", apperrors.ErrValidationFailed)
	}
	return s.eventRepo.GetEventByID(ctx, id)
}

// GetActiveEvent returns the event currently shown to registrants
func (s *eventServiceImpl) GetActiveEvent(ctx context.Context) (*models.Event, error) {
	return s.eventRepo.GetActiveEvent(ctx)
}

// Activate makes the event the single active one
func (s *eventServiceImpl) Activate(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: event ID cannot be empty", apperrors.ErrValidationFailed)
	}

	if err := s.eventRepo.Activate(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("eventId", id).Msg("Event activated")
	return nil
}

// ToggleStatus flips the event between open and closed registrations
func (s *eventServiceImpl) ToggleStatus(ctx context.Context, id string) (models.EventStatus, error) {
	if id == "" {
		return "", fmt.Errorf("%w: event ID cannot be empty", apperrors.ErrValidationFailed)
	}

	status, err := s.eventRepo.ToggleStatus(ctx, id)
	if err != nil {
		return "", err
	}

	s.logger.Info().Str("eventId", id).Str("status", string(status)).Msg("Event status toggled")
	return status, nil
}
