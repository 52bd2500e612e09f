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

// PastEventService manages the archive of concluded events
type PastEventService interface {
	ListPastEvents(ctx context.Context) ([]*models.PastEvent, error)
	CreatePastEvent(ctx context.Context, req *dto.CreatePastEventRequest, poster *multipart.FileHeader) (*models.PastEvent, error)
	DeletePastEvent(ctx context.Context, id string) error
}

// pastEventServiceImpl implements the PastEventService interface
type pastEventServiceImpl struct {
	pastEventRepo *repositories.PastEventRepository
	blobStorage   blobstorage.BlobStorage
	logger        zerolog.Logger
}

// NewPastEventService creates a new past event service instance
func NewPastEventService(pastEventRepo *repositories.PastEventRepository, blobStorage blobstorage.BlobStorage, logger zerolog.Logger) PastEventService {
	return &pastEventServiceImpl{
		pastEventRepo: pastEventRepo,
		blobStorage:   blobStorage,
		logger:        logger,
	}
}

// ListPastEvents returns the archive, newest first
func (s *pastEventServiceImpl) ListPastEvents(ctx context.Context) ([]*models.PastEvent, error) {
	return s.pastEventRepo.ListPastEvents(ctx)
}

// CreatePastEvent stores the poster then persists the archive entry
func (s *pastEventServiceImpl) CreatePastEvent(ctx context.Context, req *dto.CreatePastEventRequest, poster *multipart.FileHeader) (*models.PastEvent, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "title must not be empty")
	}

	posterURL := ""
	if poster != nil {
		url, err := s.blobStorage.SaveFile(ctx, poster, blobstorage.PastEventPostersPath)
		if err != nil {
			return nil, fmt.Errorf("error saving past event poster: %w", err)
		}
		posterURL = url
	}

	pastEvent := &models.PastEvent{
		Title:     req.Title,
		Date:      req.Date,
		PosterURL: posterURL,
	}
	id, err := s.pastEventRepo.CreatePastEvent(ctx, pastEvent)
	if err != nil {
		return nil, err
	}
	pastEvent.ID = id

	s.logger.Info().Str("pastEventId", pastEvent.ID).Str("title", pastEvent.Title).Msg("Past event created")
	return pastEvent, nil
}

// DeletePastEvent removes an archive entry
func (s *pastEventServiceImpl) DeletePastEvent(ctx context.Context, id string) error {
	if err := s.pastEventRepo.DeletePastEvent(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("pastEventId", id).Msg("Past event deleted")
	return nil
}
