package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"schema-provisioner/core/config"
	"schema-provisioner/core/database"
	"schema-provisioner/core/loader"
	"schema-provisioner/core/logger"
	"schema-provisioner/core/middleware/auth"
	"schema-provisioner/core/middleware/rayid"
	"schema-provisioner/core/provision"
	"schema-provisioner/core/remote"
	"schema-provisioner/core/storage"

	"schema-provisioner/feature/history"
	provisionFeature "schema-provisioner/feature/provision"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the provisioning HTTP service",
	Long: `Starts the HTTP service surface for embedding callers: a store health
probe, the configured registry, a provisioning endpoint and the run history.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Resolve the registry
		registry, err := loadRegistry(ctx, cfg)
		if err != nil {
			logg.Fatal("Failed to load registry", zap.Error(err))
		}

		// 4. Connect to the remote store
		client, err := remote.NewClient(cfg.Remote)
		if err != nil {
			logg.Fatal("Failed to create store client", zap.Error(err))
		}

		// 5. Connect to Database (Optional)
		var db *gorm.DB
		if cfg.Database.Enabled {
			if conn, err := database.Connect(cfg.Database); err != nil {
				logg.Warn("Optional database connection failed", zap.Error(err))
			} else {
				db = conn
				logg.Info("Connected to history database")
			}
		}

		// 6. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// 7. Build the provisioning service
		creds := provision.Credentials{
			Email:    cfg.Remote.AdminEmail,
			Password: cfg.Remote.AdminPassword,
		}
		svc := provisionFeature.NewService(client, registry, creds, logg)

		if cfg.Storage.Enabled {
			if store, err := storage.NewClient(cfg.Storage); err != nil {
				logg.Warn("Optional storage connection failed", zap.Error(err))
			} else {
				svc.SetArchive(store, cfg.Storage.Bucket)
			}
		}

		// 8. Initialize Feature Loader
		mgr := loader.NewManager()

		histFeature := history.NewFeature(db, logg)
		if histFeature.IsEnabled() {
			svc.SetHistory(histFeature.Service())
		}

		mgr.Register(provisionFeature.NewFeature(svc))
		mgr.Register(histFeature)

		// Middleware Registration
		// RayID must be first to trace everything
		app.Use(rayid.New())

		// Logging middleware (Zap + RayID)
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// Auth (protect the API)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 9. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 10. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)
}
