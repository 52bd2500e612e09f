package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ieeesb/event-portal/internal/app/models"
	"github.com/ieeesb/event-portal/internal/app/models/dto"
	"github.com/ieeesb/event-portal/internal/app/services"
	"github.com/ieeesb/event-portal/internal/middleware"
	"github.com/ieeesb/event-portal/internal/pkg/apperrors"
)

// PublicController serves the unauthenticated landing and registration
// endpoints
type PublicController struct {
	eventService        services.EventService
	formService         services.FormService
	registrationService services.RegistrationService
}

// NewPublicController creates a new PublicController
func NewPublicController(
	eventService services.EventService,
	formService services.FormService,
	registrationService services.RegistrationService,
) *PublicController {
	return &PublicController{
		eventService:        eventService,
		formService:         formService,
		registrationService: registrationService,
	}
}

// GetActiveEvent returns the active event and its registration form
// @Summary Get the active event
// @Description Returns the currently active event. When registrations are open the synthesized form description is included.
// @Tags public
// @Accept json
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.ActiveEventResponse} "Active event retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "No event is currently active"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events/active [get]
func (c *PublicController) GetActiveEvent(ctx *gin.Context) {
	event, err := c.eventService.GetActiveEvent(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := dto.ActiveEventResponse{
		Event:            event,
		RegistrationOpen: event.Status == models.StatusOpen,
	}

	if resp.RegistrationOpen {
		form, err := c.formService.SynthesizeForm(event)
		if err != nil {
			// A misconfigured event still renders as closed rather than
			// failing the landing page.
			if errors.Is(err, apperrors.ErrEventMisconfigured) {
				resp.RegistrationOpen = false
			} else {
				middleware.HandleAPIError(ctx, err)
				return
			}
		} else {
			resp.Form = form
		}
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// SubmitRegistration accepts a registration for the active event
// @Summary Submit a registration
// @Description Validates the submitted fields against the active event's form and persists the registration plus its confirmation mail record
// @Tags public
// @Accept json
// @Produce json
// @Param request body dto.SubmitRegistrationRequest true "Form field values keyed by field name"
// @Success 201 {object} dto.APIResponse{data=dto.RegistrationResult} "Registration saved"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 409 {object} dto.ErrorResponse "No event is active or it is no longer accepting registrations"
// @Failure 422 {object} dto.ErrorResponse "Event configuration is invalid"
// @Failure 500 {object} dto.ErrorResponse "Could not save the registration"
// @Router /registrations [post]
func (c *PublicController) SubmitRegistration(ctx *gin.Context) {
	var req dto.SubmitRegistrationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	result, err := c.registrationService.Submit(ctx, req.Fields)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(result))
}
