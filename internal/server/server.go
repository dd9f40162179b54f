// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"log"
	"strconv"
	"strings"
	"time"

	_ "vipgate/docs" // swagger docs
	"vipgate/internal/config"
	"vipgate/internal/featureflags"
	"vipgate/internal/mailer"
	"vipgate/internal/middleware"
	"vipgate/internal/models"
	"vipgate/internal/repository"
	"vipgate/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	promMiddleware *fiberprometheus.FiberPrometheus
	userRepo       repository.UserRepository
	contentRepo    repository.ContentRepository
	reactionRepo   repository.ReactionRepository
	recRepo        repository.RecommendationRepository
	featureFlags   *featureflags.Manager

	authService     *service.AuthService
	contentService  *service.ContentService
	vipService      *service.VipService
	reactionService *service.ReactionService
	recService      *service.RecommendationService
	statsService    *service.StatsService
	paymentService  *service.PaymentService
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis and
// optionally performs explicit seeding.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	userRepo := repository.NewUserRepository(db)
	contentRepo := repository.NewContentRepository(db)
	reactionRepo := repository.NewReactionRepository(db)
	recRepo := repository.NewRecommendationRepository(db)

	prom := middleware.InitMetrics("vipgate-api")

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: prom,
		userRepo:       userRepo,
		contentRepo:    contentRepo,
		reactionRepo:   reactionRepo,
		recRepo:        recRepo,
		featureFlags:   featureflags.NewManager(cfg.FeatureFlags),
	}

	mail := mailer.New(cfg.ResendAPIKey, cfg.MailFrom)
	server.authService = service.NewAuthService(userRepo, mail, cfg.FrontendBaseURL)
	server.contentService = service.NewContentService(contentRepo)
	server.vipService = service.NewVipService(userRepo)
	server.reactionService = service.NewReactionService(reactionRepo, contentRepo)
	server.recService = service.NewRecommendationService(recRepo)
	server.statsService = service.NewStatsService(userRepo, recRepo)
	server.paymentService = service.NewPaymentService(cfg.CheckoutBaseURL)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Tracing must run before ContextMiddleware so the trace ID local is
	// populated when it is copied into the request context.
	app.Use(middleware.TracingMiddleware())

	// Context Middleware to propagate Request ID, User ID and Trace ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS must run before middlewares that can short-circuit (e.g. limiter)
	// so browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they should be handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "VIP Gate Metrics Dashboard",
	}))

	// Swagger documentation
	api.Get("/swagger/*", swagger.HandlerDefault)

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "register"), s.Register)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Post("/forgot-password", middleware.RateLimit(
		s.redis, 3, 15*time.Minute, "forgot_password"), s.ForgotPassword)
	auth.Post("/reset-password", middleware.RateLimit(
		s.redis, 5, 15*time.Minute, "reset_password"), s.ResetPassword)

	// Free tier content - public browse
	free := api.Group("/freecontent")
	free.Get("/", s.GetFreeContent)
	free.Get("/view", s.GetFreeContentView)
	free.Get("/categories", s.GetFreeContentCategories)

	// Platform statistics - public counters
	api.Get("/stats", s.GetStats)

	// Emoji reactions - counts are public, reacting needs a login
	emoji := api.Group("", s.featureEnabled(featureflags.FlagReactions))
	emoji.Get("/emojis", s.GetEmojis)
	emoji.Post("/emoji/:name/react", s.AuthRequired(), middleware.RateLimit(
		s.redis, 30, time.Minute, "react"), s.ReactWithEmoji)

	// Recommendations - submission is a VIP privilege
	recs := api.Group("/recommendations", s.AuthRequired(), s.featureEnabled(featureflags.FlagRecommendations))
	recs.Post("/", s.VipRequired(), middleware.RateLimit(
		s.redis, 5, 10*time.Minute, "recommend"), s.CreateRecommendation)
	recs.Get("/me", s.GetMyRecommendations)

	// Protected routes
	protected := api.Group("", s.AuthRequired())

	// VIP tier content - requires an active grant
	vipContent := protected.Group("/vipcontent", s.VipRequired())
	vipContent.Get("/", s.GetVipContent)
	vipContent.Get("/view", s.GetVipContentView)
	vipContent.Get("/categories", s.GetVipContentCategories)

	// Account routes
	account := protected.Group("/auth")
	account.Get("/dashboard", s.Dashboard)
	account.Get("/is-vip", s.IsVip)
	account.Get("/is-admin", s.IsAdmin)
	account.Post("/logout", s.Logout)
	account.Post("/cancel-subscription", s.CancelSubscription)
	account.Get("/favorites", s.GetFavorites)
	account.Post("/favorites/:id", s.AddFavorite)
	account.Delete("/favorites/:id", s.RemoveFavorite)

	// Payment checkout
	protected.Post("/pay/vip-payment", s.featureEnabled(featureflags.FlagPayments), s.VipPayment)

	// Admin routes
	admin := protected.Group("", s.AdminRequired())
	adminAuth := admin.Group("/auth")
	adminAuth.Get("/vip-users", s.GetVipUsers)
	adminAuth.Get("/vip-disabled-users", s.GetVipDisabledUsers)
	adminAuth.Post("/renew-vip", s.RenewVip)
	adminAuth.Post("/renew-vip-year", s.RenewVipYear)
	adminAuth.Post("/disable-user", s.DisableUser)
	adminAuth.Post("/remove-vip", s.RemoveVip)

	// Admin content management, same handlers for both tiers
	adminFree := admin.Group("/freecontent")
	adminFree.Post("/", s.CreateFreeContent)
	adminFree.Put("/:id", s.UpdateContent)
	adminFree.Delete("/:id", s.DeleteContent)
	adminVip := admin.Group("/vipcontent")
	adminVip.Post("/", s.CreateVipContent)
	adminVip.Put("/:id", s.UpdateContent)
	adminVip.Delete("/:id", s.DeleteContent)

	// Admin recommendation review
	adminRecs := admin.Group("/recommendations")
	adminRecs.Get("/", s.GetRecommendations)
	adminRecs.Post("/:id/approve", s.ApproveRecommendation)
	adminRecs.Post("/:id/reject", s.RejectRecommendation)

	admin.Get("/feature-flags", s.GetFeatureFlags)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		// The app serves without Redis, just slower; report degraded not down.
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	} else if redisStatus != "healthy" {
		overallStatus = "degraded"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// GetFeatureFlags returns the flag evaluation for the calling admin.
func (s *Server) GetFeatureFlags(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)
	return c.JSON(s.featureFlags.Snapshot(userID))
}

// featureEnabled gates a surface on a runtime flag, evaluated per request so
// percentage rollouts follow the authenticated user.
func (s *Server) featureEnabled(flag string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _ := c.Locals("userID").(uint)
		if !s.featureFlags.Enabled(flag, userID) {
			return models.RespondWithError(c, fiber.StatusServiceUnavailable,
				&models.AppError{Code: "FEATURE_DISABLED", Message: "This feature is temporarily unavailable"})
		}
		return c.Next()
	}
}

// AdminRequired returns middleware that rejects non-admin users with 403.
// Must be placed after AuthRequired so that userID is available in locals.
func (s *Server) AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Locals("userID").(uint)

		user, err := s.userRepo.GetByID(c.UserContext(), userID)
		if err != nil {
			return models.RespondWithError(c, models.StatusForError(err), err)
		}
		if !user.IsAdmin {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewUnauthorizedError("Admin access required"))
		}

		return c.Next()
	}
}

// VipRequired returns middleware gating VIP-tier content. A disabled or
// expired grant gets 403 so the client can route to the paywall.
func (s *Server) VipRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Locals("userID").(uint)

		user, err := s.userRepo.GetByID(c.UserContext(), userID)
		if err != nil {
			return models.RespondWithError(c, models.StatusForError(err), err)
		}
		// Admins always pass; they manage VIP content without buying it.
		if user.IsAdmin {
			return c.Next()
		}
		if !user.VipActive(time.Now()) {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewUnauthorizedError("VIP subscription required"))
		}

		return c.Next()
	}
}

// AuthRequired returns the authentication middleware
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		tokenString := ""
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}

		if tokenString == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization required"))
		}

		// Parse and validate token
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			// Validate signing method
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(s.config.JWTSecret), nil
		})

		if err != nil || !token.Valid {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid or expired token"))
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token claims"))
		}

		// Validate issuer and audience
		if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != tokenIssuer {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token issuer"))
		}
		if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != tokenAudience {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token audience"))
		}

		// Extract user ID from subject claim
		sub, ok := claims["sub"].(string)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid subject claim"))
		}

		userID, err := strconv.ParseUint(sub, 10, 32)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid user ID in token"))
		}

		// Check JTI for revocation
		if jti, exists := claims["jti"].(string); exists && jti != "" {
			if s.redis != nil {
				isBlacklisted, err := s.redis.Exists(c.Context(), "blacklist:"+jti).Result()
				if err == nil && isBlacklisted > 0 {
					return models.RespondWithError(c, fiber.StatusUnauthorized,
						models.NewUnauthorizedError("Token has been revoked"))
				}
			}
		}

		// Store user ID in context
		c.Locals("userID", uint(userID))
		// Sync to UserContext for logging and downstream services
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, uint(userID))
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// Shutdown releases the server's database and Redis resources. The fiber app
// is owned and shut down by the caller.
func (s *Server) Shutdown(ctx context.Context) error {
	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
