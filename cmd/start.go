package cmd

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"untis-notifier/core/loader"
	"untis-notifier/core/logger"
	"untis-notifier/core/middleware/auth"
	"untis-notifier/core/middleware/rayid"
	"untis-notifier/feature/console"
	"untis-notifier/feature/feeds"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "untis-notifier/docs/swagger"
)

// @title Untis Notifier API
// @version 1.0
// @description On-demand checks and debug views for the WebUntis poller.
// @host localhost:3000
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start polling WebUntis",
	Long: `Starts the poll scheduler for every enabled feed. Depending on the
configuration it also reads operator commands from stdin and serves the HTTP API.`,
	RunE: runStart,
}

func init() {
	RootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer rt.close()

	if err := rt.wirePolling(); err != nil {
		return err
	}
	logg := rt.logger

	if err := rt.scheduler.Start(ctx); err != nil {
		return err
	}

	if rt.cfg.Poll.Console {
		go func() {
			if err := console.New(rt.scheduler, logg).Run(ctx, os.Stdin, os.Stdout); err != nil {
				logg.Warn("Console stopped", zap.Error(err))
				return
			}
			// exit or EOF on an interactive console ends the process.
			if ctx.Err() == nil {
				stop()
			}
		}()
	}

	var app *fiber.App
	if rt.cfg.Server.EnableWeb {
		app, err = newHTTPApp(rt)
		if err != nil {
			return err
		}

		go func() {
			logg.Info("Starting server", zap.String("address", rt.cfg.Server.Address()))
			if err := app.Listen(rt.cfg.Server.Address()); err != nil {
				logg.Error("Server stopped", zap.Error(err))
				stop()
			}
		}()
	}

	<-ctx.Done()
	logg.Info("Shutting down...")

	var server shutdowner
	if app != nil {
		server = app
	}
	shutdown(server, rt.scheduler, logg)
	return nil
}

type shutdowner interface {
	Shutdown() error
}

type stopper interface {
	Stop() error
}

// shutdown stops the HTTP server (when running) and then the scheduler,
// logging failures of either.
func shutdown(server shutdowner, sched stopper, logg *zap.Logger) {
	if server != nil {
		if err := server.Shutdown(); err != nil {
			logg.Warn("Failed to shut down server", zap.Error(err))
		}
	}
	if err := sched.Stop(); err != nil {
		logg.Warn("Failed to stop scheduler", zap.Error(err))
	}
}

func newHTTPApp(rt *services) (*fiber.App, error) {
	logg := rt.logger

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
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

	// Public routes.
	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(rt.registry, promhttp.HandlerOpts{})))

	app.Use(auth.New(auth.Config{
		ApiKey: rt.cfg.Server.ApiKey,
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/swagger") || c.Path() == "/metrics"
		},
	}))

	mgr := loader.NewManager()
	mgr.Register(feeds.NewFeature(rt.scheduler, rt.store, logg, true))

	loaded, err := mgr.LoadAll(app)
	if err != nil {
		return nil, err
	}
	logg.Info("Features loaded", zap.Strings("features", loaded))
	return app, nil
}
