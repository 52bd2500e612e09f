package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/ieeesb/event-portal/internal/app/controllers"
	appRepos "github.com/ieeesb/event-portal/internal/app/repositories"
	appRoutes "github.com/ieeesb/event-portal/internal/app/routes"
	appServices "github.com/ieeesb/event-portal/internal/app/services"
	"github.com/ieeesb/event-portal/internal/config"
	"github.com/ieeesb/event-portal/internal/mailer"
	appMiddleware "github.com/ieeesb/event-portal/internal/middleware"
	pkgAuth "github.com/ieeesb/event-portal/internal/pkg/auth"
	"github.com/ieeesb/event-portal/internal/pkg/blobstorage"
	"github.com/ieeesb/event-portal/internal/pkg/logger"
	"github.com/ieeesb/event-portal/internal/store"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService         appServices.AuthService
	EventService        appServices.EventService
	FormService         appServices.FormService
	RegistrationService appServices.RegistrationService
	PastEventService    appServices.PastEventService

	AuthController      *appControllers.AuthController
	EventController     *appControllers.EventController
	PublicController    *appControllers.PublicController
	PastEventController *appControllers.PastEventController

	AuthMiddleware *appMiddleware.AuthMiddleware
	Repos          *appRepos.Repositories
	JWTService     *pkgAuth.JWTService
	BlobStorage    blobstorage.BlobStorage
	MailWorker     *mailer.Worker
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupStore opens the configured document store.
func SetupStore(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (store.Store, error) {
	switch cfg.Store.Driver {
	case "firestore":
		lgr.Info().Str("projectId", cfg.Store.ProjectID).Msg("Connecting to Firestore...")
		st, err := store.NewFirestoreStore(ctx, cfg.Store.ProjectID, cfg.Store.CredentialsFile)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to connect to Firestore")
			return nil, err
		}
		lgr.Info().Msg("Firestore connection established.")
		return st, nil
	case "memory":
		lgr.Warn().Msg("Using in-memory store; data will not survive a restart")
		return store.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

// SetupBlobStorage opens the configured poster storage backend.
func SetupBlobStorage(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (blobstorage.BlobStorage, error) {
	switch cfg.Storage.Driver {
	case "gcs":
		lgr.Info().Str("bucket", cfg.Storage.Bucket).Msg("Using GCS poster storage")
		return blobstorage.NewGCSStorage(ctx, cfg.Storage.Bucket, cfg.Store.CredentialsFile)
	case "local":
		baseURL := cfg.Server.BaseURL + "/uploads"
		lgr.Info().Str("path", cfg.Storage.LocalPath).Msg("Using local poster storage")
		return blobstorage.NewLocalStorage(cfg.Storage.LocalPath, baseURL)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// BuildDependencies initializes repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, st store.Store, blobStorage blobstorage.BlobStorage, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr, BlobStorage: blobStorage}

	deps.Repos = appRepos.NewRepositories(st)

	// Expiration format is validated at config load time.
	accessTokenExp, _ := time.ParseDuration(cfg.JWT.AccessTokenExpiration)
	deps.JWTService = pkgAuth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Issuer, accessTokenExp)

	deps.AuthService = appServices.NewAuthService(cfg, deps.JWTService, lgr)
	deps.FormService = appServices.NewFormService()
	deps.EventService = appServices.NewEventService(deps.Repos.EventRepository, blobStorage, lgr)
	deps.RegistrationService = appServices.NewRegistrationService(
		deps.Repos.EventRepository,
		deps.Repos.RegistrationRepository,
		deps.Repos.MailRepository,
		deps.FormService,
		lgr,
	)
	deps.PastEventService = appServices.NewPastEventService(deps.Repos.PastEventRepository, blobStorage, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.EventController = appControllers.NewEventController(deps.EventService)
	deps.PublicController = appControllers.NewPublicController(deps.EventService, deps.FormService, deps.RegistrationService)
	deps.PastEventController = appControllers.NewPastEventController(deps.PastEventService)

	if cfg.MailerEnabled() {
		pollInterval, _ := time.ParseDuration(cfg.SMTP.PollInterval)
		sender := mailer.NewSMTPSender(mailer.SMTPConfig{
			Host:      cfg.SMTP.Host,
			Port:      cfg.SMTP.Port,
			Username:  cfg.SMTP.Username,
			Password:  cfg.SMTP.Password,
			FromName:  cfg.SMTP.FromName,
			FromEmail: cfg.SMTP.FromEmail,
		}, lgr)
		deps.MailWorker = mailer.NewWorker(deps.Repos.EventRepository, deps.Repos.MailRepository, sender, pollInterval, lgr)
	} else {
		lgr.Warn().Msg("SMTP not configured; mail outbox worker disabled")
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger())

	appRoutes.SetupSwagger(router)

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.EventController,
		deps.PublicController,
		deps.PastEventController,
		deps.AuthMiddleware,
	)

	// Posters saved by the local storage driver are served from here.
	if cfg.Storage.Driver == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
