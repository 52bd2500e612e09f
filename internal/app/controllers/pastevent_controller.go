package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ieeesb/event-portal/internal/app/models/dto"
	"github.com/ieeesb/event-portal/internal/app/services"
	"github.com/ieeesb/event-portal/internal/middleware"
)

// PastEventController handles the past events gallery
type PastEventController struct {
	pastEventService services.PastEventService
}

// NewPastEventController creates a new PastEventController
func NewPastEventController(pastEventService services.PastEventService) *PastEventController {
	return &PastEventController{
		pastEventService: pastEventService,
	}
}

// ListPastEvents lists the gallery
// @Summary List past events
// @Description Retrieves the past events gallery, newest first
// @Tags past-events
// @Accept json
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.PastEventListResponse} "Past events retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /past-events [get]
func (c *PastEventController) ListPastEvents(ctx *gin.Context) {
	pastEvents, err := c.pastEventService.ListPastEvents(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.PastEventListResponse{PastEvents: pastEvents}))
}

// CreatePastEvent adds a gallery entry
// @Summary Create a past event
// @Description Adds an entry to the past events gallery from a multipart form
// @Tags past-events
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Event title"
// @Param date formData string false "Event date"
// @Param poster formData file false "Poster image"
// @Success 201 {object} dto.APIResponse{data=models.PastEvent} "Past event created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /past-events [post]
func (c *PastEventController) CreatePastEvent(ctx *gin.Context) {
	var req dto.CreatePastEventRequest
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	poster, err := ctx.FormFile("poster")
	if err != nil && err != http.ErrMissingFile {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid poster upload").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	pastEvent, err := c.pastEventService.CreatePastEvent(ctx, &req, poster)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(pastEvent))
}

// DeletePastEvent removes a gallery entry
// @Summary Delete a past event
// @Description Removes an entry from the past events gallery
// @Tags past-events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Past event ID"
// @Success 200 {object} dto.APIResponse "Past event deleted successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Past event not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /past-events/{id} [delete]
func (c *PastEventController) DeletePastEvent(ctx *gin.Context) {
	id := ctx.Param("id")

	if err := c.pastEventService.DeletePastEvent(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Past event deleted"))
}
