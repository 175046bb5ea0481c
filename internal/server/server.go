package server

import (
	"context"
	"fmt"
	"log"
	"net/http"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"

	"github.com/farellandr/melaka-tickets/config"
	"github.com/farellandr/melaka-tickets/internal/accounts"
	"github.com/farellandr/melaka-tickets/internal/booking"
	"github.com/farellandr/melaka-tickets/internal/handlers"
	"github.com/farellandr/melaka-tickets/internal/helpers"
	"github.com/farellandr/melaka-tickets/internal/logger"
	"github.com/farellandr/melaka-tickets/internal/middleware"
)

const missingIDTokenMessage = "Unauthorized: Missing ID token"

func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	closeLogger, err := logger.Init(ctx, logger.Options{
		ProjectID:    cfg.ProjectID,
		Service:      cfg.Service,
		Revision:     cfg.Revision,
		CloudLogging: cfg.GCPLogging,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %v", err)
	}
	defer closeLogger()

	if err := config.InitSentry(cfg); err != nil {
		return fmt.Errorf("failed to initialize sentry: %v", err)
	}

	deps, err := buildDependencies(ctx, cfg)
	if err != nil {
		return err
	}
	defer deps.Close()

	if err := seedSuperAdmin(ctx, deps, cfg.LocalSuperAdminEmail, cfg.LocalSuperAdminPassword); err != nil {
		return fmt.Errorf("failed to seed super admin: %v", err)
	}

	r := NewRouter(deps)

	log.Printf("serving %s on :%s (identity=%s store=%s objects=%s mail=%s)",
		cfg.Service, cfg.Port, cfg.IdentityBackend, cfg.StoreBackend, cfg.ObjectStoreBackend, cfg.MailBackend)

	return r.Run(":" + cfg.Port)
}

func NewRouter(deps *Dependencies) *gin.Engine {
	r := gin.Default()

	setupRoutes(r, deps)

	return r
}

func setupRoutes(r *gin.Engine, deps *Dependencies) {
	r.ContextWithFallback = true
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		c.String(http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	r.Use(middleware.CORS(), logger.Middleware())
	if deps.Sentry {
		r.Use(sentrygin.New(sentrygin.Options{Repanic: true}), middleware.SentryErrors())
	}

	accountService := accounts.NewService(deps.Log, deps.Identity, deps.Store)
	finalizer := booking.NewFinalizer(deps.Log, deps.Store, deps.Bucket, deps.Mailer)

	adminHandler := handlers.NewAdminHandler(deps.Log, accountService)
	userHandler := handlers.NewUserHandler(deps.Log, accountService)
	paymentHandler := handlers.NewPaymentHandler(deps.Log, deps.Payments)
	bookingHandler := handlers.NewBookingHandler(deps.Log, finalizer)

	httpAuth := middleware.Authenticate(deps.Identity, helpers.RespondWithErr, "")
	deleteAuth := middleware.Authenticate(deps.Identity, helpers.RespondWithErr, missingIDTokenMessage)
	callableAuth := middleware.Authenticate(deps.Identity, helpers.RespondCallableError, "")

	functions := r.Group("/")
	{
		post(functions, "/createAdmin", httpAuth, adminHandler.CreateAdmin)
		post(functions, "/deleteAdminByUid", deleteAuth, adminHandler.DeleteAdmin)
		post(functions, "/deleteUserByUid", deleteAuth, userHandler.DeleteUser)
		post(functions, "/createPaymentIntent", callableAuth, paymentHandler.CreatePaymentIntent)
		post(functions, "/finalizeBookingAndEmail", callableAuth, bookingHandler.FinalizeBooking)
	}

	if deps.LocalAuth != nil {
		authHandler := handlers.NewAuthHandler(deps.LocalAuth)

		dev := r.Group("/dev")
		{
			post(dev, "/signIn", authHandler.SignIn)
		}
	}
}

// post registers a POST function and an OPTIONS route for the same path. middleware.CORS answers
// preflights before any route handler runs; the OPTIONS handler is only a fallback for a router
// without that middleware.
func post(g *gin.RouterGroup, path string, h ...gin.HandlerFunc) {
	g.OPTIONS(path, func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	g.POST(path, h...)
}
