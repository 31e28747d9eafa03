package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"mastodon-sync/core/logger"
	"mastodon-sync/core/middleware/auth"
	"mastodon-sync/core/middleware/rayid"
	"mastodon-sync/core/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "mastodon-sync/docs/swagger"
)

// @title Mastodon Sync API
// @version 1.0
// @description Ingests Mastodon API responses and reconciles them into a local entity graph.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the sync server",
	Long:  `Starts the HTTP ingest server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		a, err := newApp()
		if err != nil {
			log.Fatalf("Failed to start: %v", err)
		}
		defer a.close()
		logg := a.logger

		if !a.cfg.Server.IsValidPort() {
			logg.Fatal("Invalid server port", zap.String("port", a.cfg.Server.Port))
		}

		if a.cfg.Archive.Enabled {
			if err := storage.EnsureBucket(cmd.Context(), a.storage, a.cfg.Storage.Bucket, a.cfg.Storage.Region); err != nil {
				logg.Fatal("Archive bucket unavailable", zap.Error(err))
			}
			logg.Info("Archiving responses", zap.String("bucket", a.cfg.Storage.Bucket), zap.String("prefix", a.archive.Prefix()))
		}

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			BodyLimit:             a.cfg.Server.BodyLimit(),
		})

		// RayID first so every later log line carries it.
		app.Use(rayid.New())

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

		// Swagger stays public.
		app.Get("/swagger/*", swagger.HandlerDefault)

		app.Use(auth.New(auth.Config{ApiKey: a.cfg.Server.ApiKey}))

		if err := a.features.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		go func() {
			logg.Info("Starting server", zap.String("port", a.cfg.Server.Port))
			if err := app.Listen(":" + a.cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
