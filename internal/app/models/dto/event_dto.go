package dto

import (
	"github.com/ieeesb/event-portal/internal/app/models"
)

// CreateEventRequest carries the multipart fields of the admin create-event
// form. CustomQuestions arrives as a JSON-encoded array in the
// customQuestions form field and is decoded by the controller.
type CreateEventRequest struct {
	EventName         string `form:"eventName" binding:"required"`
	Description       string `form:"description" binding:"required"`
	ParticipationType string `form:"participationType" binding:"required,oneof=individual team"`
	TeamSize          int    `form:"teamSize"`
	EmailTemplate     string `form:"emailTemplate" binding:"required"`

	CustomQuestions []models.CustomQuestion `form:"-"`
}

// EventListResponse is the admin event table payload
type EventListResponse struct {
	Events []*models.Event `json:"events"`
}

// ActiveEventResponse is the public landing payload: the active event, its
// registration state, and the synthesized form when registrations are open.
type ActiveEventResponse struct {
	Event            *models.Event    `json:"event"`
	RegistrationOpen bool             `json:"registrationOpen"`
	Form             *models.FormSpec `json:"form,omitempty"`
}

// ToggleStatusResponse reports the status after a toggle
type ToggleStatusResponse struct {
	ID     string             `json:"id"`
	Status models.EventStatus `json:"status"`
}
