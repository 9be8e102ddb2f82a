package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"eprel-mirror/core/loader"
	"eprel-mirror/core/logger"
	"eprel-mirror/core/middleware/auth"
	"eprel-mirror/core/middleware/rayid"
	"eprel-mirror/feature/catalog/api"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the mirror's read API",
	Long:  `Starts the HTTP server exposing the health probe and mirror statistics.`,
	Run: func(cmd *cobra.Command, args []string) {
		a := setup(true)
		defer a.log.Sync()

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// RayID first so every later log line can be traced.
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(a.log, c)
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

		app.Use(auth.New(auth.Config{ApiKey: a.cfg.Server.ApiKey}))

		mgr := loader.NewManager()
		mgr.Register(api.NewFeature(a.service, a.log))

		if err := mgr.LoadAll(app); err != nil {
			a.log.Fatal("Failed to load features", zap.Error(err))
		}

		go func() {
			a.log.Info("Starting server", zap.String("port", a.cfg.Server.Port))
			if err := app.Listen(":" + a.cfg.Server.Port); err != nil {
				a.log.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		a.log.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)
}
