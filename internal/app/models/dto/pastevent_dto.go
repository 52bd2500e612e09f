package dto

import "github.com/ieeesb/event-portal/internal/app/models"

// CreatePastEventRequest carries the multipart fields of the admin
// past-event gallery form
type CreatePastEventRequest struct {
	Title string `form:"title" binding:"required"`
	Date  string `form:"date" binding:"required"`
}

// PastEventListResponse is the gallery payload
type PastEventListResponse struct {
	PastEvents []*models.PastEvent `json:"pastEvents"`
}
