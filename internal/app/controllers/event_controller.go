package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ieeesb/event-portal/internal/app/models/dto"
	"github.com/ieeesb/event-portal/internal/app/services"
	"github.com/ieeesb/event-portal/internal/middleware"
)

// EventController handles admin event lifecycle operations
type EventController struct {
	eventService services.EventService
}

// NewEventController creates a new EventController
func NewEventController(eventService services.EventService) *EventController {
	return &EventController{
		eventService: eventService,
	}
}

// ListEvents lists all events
// @Summary List all events
// @Description Retrieves every event, newest first, for the admin dashboard
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.EventListResponse} "Events retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events [get]
func (c *EventController) ListEvents(ctx *gin.Context) {
	events, err := c.eventService.ListEvents(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.EventListResponse{Events: events}))
}

// CreateEvent creates a new event
// @Summary Create a new event
// @Description Creates an event from a multipart form. New events start closed and inactive.
// @Tags events
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param eventName formData string true "Event name"
// @Param description formData string true "Event description"
// @Param participationType formData string true "individual or team"
// @Param teamSize formData int false "Team size, required for team events"
// @Param emailTemplate formData string true "Confirmation mail template with {name} and {eventName} placeholders"
// @Param customQuestions formData string false "JSON array of custom questions"
// @Param poster formData file true "Event poster image"
// @Success 201 {object} dto.APIResponse{data=models.Event} "Event created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 422 {object} dto.ErrorResponse "Event configuration is invalid"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events [post]
func (c *EventController) CreateEvent(ctx *gin.Context) {
	var req dto.CreateEventRequest
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	if raw := ctx.PostForm("customQuestions"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &req.CustomQuestions); err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid custom questions").
				WithDetails("customQuestions must be a JSON array")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
	}

	// A missing poster is reported by the service as a validation error;
	// only other parse failures are rejected here.
	poster, err := ctx.FormFile("poster")
	if err != nil && err != http.ErrMissingFile {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid poster upload").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	event, err := c.eventService.CreateEvent(ctx, &req, poster)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(event))
}

// ActivateEvent makes an event the single active event
// @Summary Activate an event
// @Description Deactivates every other event and activates the given one, atomically
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} dto.APIResponse "Event activated successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events/{id}/activate [post]
func (c *EventController) ActivateEvent(ctx *gin.Context) {
	id := ctx.Param("id")

	if err := c.eventService.Activate(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Event activated"))
}

// ToggleEventStatus flips an event between open and closed
// @Summary Toggle registration status
// @Description Flips the event's registration status between open and closed
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} dto.APIResponse{data=dto.ToggleStatusResponse} "Status toggled successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events/{id}/status [post]
func (c *EventController) ToggleEventStatus(ctx *gin.Context) {
	id := ctx.Param("id")

	status, err := c.eventService.ToggleStatus(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.ToggleStatusResponse{ID: id, Status: status}))
}
