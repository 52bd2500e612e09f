package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ieeesb/event-portal/internal/app/models/dto"
	"github.com/ieeesb/event-portal/internal/pkg/apperrors"
)

// HandleAPIError maps domain errors to HTTP responses. Controllers call it
// with whatever the service layer returned; unknown errors become 500s.
func HandleAPIError(c *gin.Context, err error) {
	detail := errorDetail(err)

	// A CustomError may carry a more specific message and field details.
	var customErr *apperrors.CustomError
	if errors.As(err, &customErr) {
		if customErr.Message != "" {
			detail.Message = customErr.Message
		}
		if customErr.Details != nil {
			if field, ok := customErr.Details["field"].(string); ok {
				detail.WithField(field)
			}
			detail.WithDetails(customErr.Details)
		}
	}

	c.JSON(statusFor(err), dto.NewErrorResponse(detail))
}

func errorDetail(err error) *dto.ErrorDetail {
	switch {
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid credentials")
	case errors.Is(err, apperrors.ErrTokenExpired):
		return dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired")
	case errors.Is(err, apperrors.ErrTokenInvalid):
		return dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token")
	case errors.Is(err, apperrors.ErrNoActiveEvent):
		return dto.NewErrorDetail(dto.ErrorCodeNoActiveEvent, "No event is currently active")
	case errors.Is(err, apperrors.ErrEventNoLongerActive):
		return dto.NewErrorDetail(dto.ErrorCodeEventNotActive, "Event is no longer accepting registrations")
	case errors.Is(err, apperrors.ErrEventMisconfigured):
		return dto.NewErrorDetail(dto.ErrorCodeEventMisconfigured, "Event configuration is invalid")
	case errors.Is(err, apperrors.ErrDuplicateCustomQuestion):
		return dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Custom question labels must be unique")
	case errors.Is(err, apperrors.ErrEventNotFound):
		return dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Event not found")
	case errors.Is(err, apperrors.ErrPastEventNotFound):
		return dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Past event not found")
	case errors.Is(err, apperrors.ErrResourceNotFound):
		return dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Resource not found")
	case errors.Is(err, apperrors.ErrValidationFailed):
		return dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed")
	case errors.Is(err, apperrors.ErrBadRequest):
		return dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid request")
	case errors.Is(err, apperrors.ErrConflict):
		return dto.NewErrorDetail(dto.ErrorCodeResourceConflict, "Resource conflict")
	case errors.Is(err, apperrors.ErrRegistrationPersist):
		return dto.NewErrorDetail(dto.ErrorCodeRegistrationPersist, "Could not save the registration")
	case errors.Is(err, apperrors.ErrStoreUnavailable):
		return dto.NewErrorDetail(dto.ErrorCodeStoreError, "Data store is unavailable")
	default:
		return dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrInvalidCredentials),
		errors.Is(err, apperrors.ErrTokenExpired),
		errors.Is(err, apperrors.ErrTokenInvalid):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrNoActiveEvent),
		errors.Is(err, apperrors.ErrEventNotFound),
		errors.Is(err, apperrors.ErrPastEventNotFound),
		errors.Is(err, apperrors.ErrResourceNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrEventNoLongerActive),
		errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrEventMisconfigured):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrDuplicateCustomQuestion),
		errors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
