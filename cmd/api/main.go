package main

import (
	"context"
	"fmt"
	"log"
	"time"

	common_api "go-permit/internal/common/api"
	"go-permit/internal/config"
	"go-permit/internal/database"
	"go-permit/internal/features/audit"
	"go-permit/internal/features/auth"
	"go-permit/internal/features/export"
	"go-permit/internal/features/notification"
	"go-permit/internal/features/permit"
	"go-permit/internal/features/reminder"
	"go-permit/internal/features/system"
	"go-permit/internal/features/user"
	"go-permit/internal/logger"
	"go-permit/internal/middleware"
	"go-permit/pkg/utils"

	_ "go-permit/docs" // Import swagger docs

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// NewFiberServer creates a new Fiber app instance
func NewFiberServer() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(middleware.CORSMiddleware())

	return app
}

// AsRoute is a helper function to reduce boilerplate.
// It tags the constructor so Fx knows to add it to the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(common_api.Route)),    // Cast to Interface
		fx.ResultTags(`group:"routes"`), // Add to Group
	)
}

// RegisterAllRoutes takes the group "routes" (slice of interfaces)
// and calls Setup() on each one.
func RegisterAllRoutes(app *fiber.App, routes []common_api.Route) {
	for _, route := range routes {
		route.Setup(app)
	}
	log.Printf("Registered %d routes\n", len(routes))
}

// RegisterAllRoutesWithAnnotation wraps RegisterAllRoutes with fx annotations
var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`),
)

// StartServer creates a lifecycle hook to start Fiber in a goroutine
// and shut it down when the app exits.
func StartServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := fmt.Sprintf(":%s", cfg.Port)
				if err := app.Listen(port); err != nil {
					log.Fatalf("Server failed to start: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.Shutdown()
		},
	})
}

// InitializeIndexes ensures that necessary database indexes are created
func InitializeIndexes(lc fx.Lifecycle, permitRepo permit.PermitRepository, userRepo user.UserRepository) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				if err := permitRepo.EnsureIndexes(ctx); err != nil {
					log.Printf("Failed to ensure permit indexes: %v", err)
				}
				if err := userRepo.EnsureIndexes(ctx); err != nil {
					log.Printf("Failed to ensure user indexes: %v", err)
				}
			}()
			return nil
		},
	})
}

// @title           Work Permit API
// @version         1.0
// @description     Digital safety work-permit platform with a sequential approval workflow.

// @host            localhost:8080
// @BasePath        /
func main() {
	app := fx.New(
		fx.Provide(
			// Load Config
			config.LoadConfig,

			// Initialize Logger
			logger.NewLogger,

			// Initialize Fiber Server
			NewFiberServer,

			// Initialize Database
			database.NewDatabase,

			// Initialize Repositories
			permit.NewPermitRepository,
			permit.NewCounterRepository,
			user.NewUserRepository,
			audit.NewAuditRepository,
			notification.NewNotificationRepository,

			// Initialize Services
			permit.NewPermitFactory,
			permit.NewPermitService,
			user.NewUserService,
			audit.NewAuditService,
			auth.NewAuthService,
			notification.NewMailer,
			notification.NewHub,
			notification.NewNotificationService,
			export.NewExportService,
			reminder.NewReminderService,

			// Interface Adapters to break circular dependencies and satisfy Fx
			func(s notification.NotificationService) permit.Notifier { return s },

			// Initialize Controllers
			permit.NewPermitController,
			user.NewUserController,
			audit.NewAuditController,
			auth.NewAuthController,
			notification.NewNotificationController,
			export.NewExportController,

			// Initialize API Routes
			AsRoute(permit.NewPermitApi),
			AsRoute(user.NewUserApi),
			AsRoute(audit.NewAuditApi),
			AsRoute(auth.NewAuthApi),
			AsRoute(notification.NewNotificationApi),
			AsRoute(export.NewExportApi),
			AsRoute(system.NewHealthApi),
			AsRoute(system.NewSwaggerApi),
			AsRoute(system.NewWebSocketApi),
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			func(cfg *config.Config) {
				utils.SetSecret(cfg.JWTSecret)
			},

			// Register Routes & Start
			RegisterAllRoutesWithAnnotation,
			StartServer,
			func(lc fx.Lifecycle, reminderService reminder.ReminderService) {
				lc.Append(fx.Hook{
					OnStart: func(ctx context.Context) error {
						return reminderService.InitializeScheduler(ctx)
					},
					OnStop: func(ctx context.Context) error {
						return reminderService.StopScheduler()
					},
				})
			},
			InitializeIndexes,
		),
	)

	app.Run()
}
