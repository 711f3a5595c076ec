package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"watchlist/core/loader"
	"watchlist/core/logger"
	"watchlist/core/middleware/auth"
	"watchlist/core/middleware/rayid"
	"watchlist/feature/backup"
	"watchlist/feature/watchlist"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "watchlist/docs/swagger"
)

// @title Watchlist API
// @version 1.0
// @description API for managing a personal watchlist and its snapshots.
// @host localhost:8080
// @BasePath /

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"start"},
	Short:   "Start the watchlist HTTP server",
	Long:    `Starts the HTTP server, loads all enabled features and schedules backups.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		svc, err := loadServices(ctx, false)
		if err != nil {
			return err
		}
		defer svc.Close()

		logg := svc.log
		zap.ReplaceGlobals(logg)
		logg.Info("Store ready",
			zap.String("driver", svc.cfg.Database.Driver),
			zap.String("storage", svc.cfg.Storage.Backend),
		)

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			BodyLimit:             svc.cfg.Server.BodyLimit(),
		})

		mgr := loader.NewManager()
		mgr.Register(watchlist.NewFeature(svc.watchlist))
		mgr.Register(backup.NewFeature(svc.backup))

		// RayID must be first to trace everything
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

		// Swagger documentation is public
		app.Get("/swagger/*", swagger.HandlerDefault)

		app.Use(auth.New(auth.Config{ApiKey: svc.cfg.Server.ApiKey}))

		if err := mgr.LoadAll(app); err != nil {
			return err
		}

		scheduler := backup.NewScheduler(svc.backup, svc.cfg.Backup, logg)
		if err := scheduler.Start(ctx); err != nil {
			return err
		}

		go func() {
			logg.Info("Starting server", zap.String("port", svc.cfg.Server.Port))
			if err := app.Listen(svc.cfg.Server.Addr()); err != nil {
				logg.Error("Server stopped", zap.Error(err))
				stop()
			}
		}()

		<-ctx.Done()
		logg.Info("Shutting down server...")
		scheduler.Stop()
		return app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)
}
