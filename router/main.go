package router

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/uniadvisor-api/config"
	"github.com/sahilchouksey/uniadvisor-api/database"
	"github.com/sahilchouksey/uniadvisor-api/handlers"
	auth_handlers "github.com/sahilchouksey/uniadvisor-api/handlers/auth"
	dashboard_handlers "github.com/sahilchouksey/uniadvisor-api/handlers/dashboard"
	onboarding_handlers "github.com/sahilchouksey/uniadvisor-api/handlers/onboarding"
	selection_handlers "github.com/sahilchouksey/uniadvisor-api/handlers/selection"
	voice_handlers "github.com/sahilchouksey/uniadvisor-api/handlers/voice"
	"github.com/sahilchouksey/uniadvisor-api/services"
	"github.com/sahilchouksey/uniadvisor-api/services/gateway"
	"github.com/sahilchouksey/uniadvisor-api/utils"
	"github.com/sahilchouksey/uniadvisor-api/utils/auth"
	"github.com/sahilchouksey/uniadvisor-api/utils/cache"
	"github.com/sahilchouksey/uniadvisor-api/utils/middleware"
	"gorm.io/gorm"
)

// Runtime holds the long-lived pieces the router wires up so the app
// can stop them on shutdown.
type Runtime struct {
	Dispatcher *gateway.Dispatcher
	Cache      *cache.RedisCache
}

func SetupRoutes(app *fiber.App, store database.Storage, env *config.EnviornmentVariable) *Runtime {
	// Get JWT secret from environment
	jwtSecret := env.JWT_SECRET
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}

	jwtIssuer := env.JWT_ISSUER
	if jwtIssuer == "" {
		jwtIssuer = "uniadvisor-api"
	}

	// Initialize JWT manager with config
	jwtConfig := auth.JWTConfig{
		Secret: jwtSecret,
		Expiry: 24 * time.Hour, // Access token expires in 24 hours
		Issuer: jwtIssuer,
	}
	jwtManager := auth.NewJWTManager(jwtConfig)

	// Get DB instance (type assert from interface)
	db, ok := store.GetDB().(*gorm.DB)
	if !ok {
		log.Fatal("Failed to get GORM DB instance")
	}

	// Initialize Redis cache; the API degrades to DB reads without it
	redisURL := env.REDIS_URL
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}

	redisCache, err := cache.NewRedisCache(redisURL)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v. Caching will be disabled.", err)
		redisCache = nil
	}

	// Dispatcher serializes cache invalidation per selection key
	dispatcher := gateway.NewDispatcher(gateway.DispatcherOptions{})

	// Initialize auth middleware with DB for blacklist checking
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, db)

	// Persistence gateway and selection state machine
	gormGateway := gateway.NewGormGateway(db)
	selectionService := services.NewSelectionService(db)

	// Handlers
	authHandler := auth_handlers.NewAuthHandler(db, jwtManager)
	onboardingHandler := onboarding_handlers.NewOnboardingHandler(db, gormGateway)
	selectionHandler := selection_handlers.NewSelectionHandler(db, selectionService, redisCache, dispatcher)
	dashboardHandler := dashboard_handlers.NewDashboardHandler(db, gormGateway, redisCache, services.TaskEngineOptions{
		PersistAllCompletions: os.Getenv("TASKS_PERSIST_ALL") == "true",
	})
	voiceHandler := voice_handlers.NewVoiceHandler(env, redisCache)

	// Health check endpoint (public)
	app.Get("/ping", utils.MakeHTTPHandleFunc(handlers.HandleCheckHealth, store))

	// API v1 group
	api := app.Group("/api/v1")
	api.Get("/health", utils.MakeHTTPHandleFunc(handlers.HandleCheckHealth, store))

	// Auth routes (public)
	authGroup := api.Group("/auth")
	authGroup.Post("/signup", authHandler.Signup)
	authGroup.Post("/login", authHandler.Login)

	// Protected auth routes
	authGroup.Post("/logout", authMiddleware.Required(), authHandler.Logout)
	authGroup.Get("/me", authMiddleware.Required(), authHandler.Me)

	// Onboarding routes (protected)
	onboardingGroup := api.Group("/onboarding", authMiddleware.Required())
	onboardingGroup.Get("/", onboardingHandler.Get)
	onboardingGroup.Put("/", onboardingHandler.Upsert)

	// University catalog and selections
	universities := api.Group("/universities")
	universities.Get("/", selectionHandler.ListCatalog) // Public: list the catalog
	universities.Get("/selections", authMiddleware.Required(), selectionHandler.ListSelections)
	universities.Post("/selections", authMiddleware.Required(), selectionHandler.Mutate)
	universities.Delete("/selections/:id", authMiddleware.Required(), selectionHandler.Remove)

	// Dashboard (protected)
	dashboardGroup := api.Group("/dashboard", authMiddleware.Required())
	dashboardGroup.Get("/", dashboardHandler.Get)
	dashboardGroup.Post("/tasks/:id/toggle", dashboardHandler.ToggleTask)

	// Voice agent
	voiceGroup := api.Group("/voice")
	voiceGroup.Get("/token", authMiddleware.Required(), voiceHandler.Token)
	voiceGroup.Post("/notify", voiceHandler.Notify) // Agent-authenticated, not user-authenticated

	return &Runtime{
		Dispatcher: dispatcher,
		Cache:      redisCache,
	}
}
