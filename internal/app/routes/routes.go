package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/ieeesb/event-portal/internal/app/controllers"
	"github.com/ieeesb/event-portal/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	eventController *controllers.EventController,
	publicController *controllers.PublicController,
	pastEventController *controllers.PastEventController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
	}

	v1.GET("/events/active", publicController.GetActiveEvent)
	v1.POST("/registrations", publicController.SubmitRegistration)
	v1.GET("/past-events", pastEventController.ListPastEvents)

	// --- Admin routes, JWT protected ---
	admin := v1.Group("")
	admin.Use(authMiddleware.JWTAuth())
	{
		events := admin.Group("/events")
		{
			events.GET("", eventController.ListEvents)
			events.POST("", eventController.CreateEvent)
			events.POST("/:id/activate", eventController.ActivateEvent)
			events.POST("/:id/status", eventController.ToggleEventStatus)
		}

		pastEvents := admin.Group("/past-events")
		{
			pastEvents.POST("", pastEventController.CreatePastEvent)
			pastEvents.DELETE("/:id", pastEventController.DeletePastEvent)
		}
	}
}
