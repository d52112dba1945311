package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/cyclecast/internal/api"
	"github.com/terraincognita07/cyclecast/internal/cli"
	"github.com/terraincognita07/cyclecast/internal/config"
	"github.com/terraincognita07/cyclecast/internal/i18n"
	applog "github.com/terraincognita07/cyclecast/internal/logger"
	"github.com/terraincognita07/cyclecast/internal/security"
	"github.com/terraincognita07/cyclecast/internal/services"
)

const usage = `usage: cyclecast [serve | predict [flags] | gen-secret]`

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin *os.File, stdout io.Writer, stderr io.Writer) int {
	command := "serve"
	if len(args) > 0 {
		command, args = args[0], args[1:]
	}

	if command == "gen-secret" {
		if err := cli.RunGenerateSecretCommand(stdout); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		return 0
	}
	if command != "serve" && command != "predict" {
		fmt.Fprintln(stderr, usage)
		return 2
	}

	cfg, err := config.Load(os.Getenv("CYCLECAST_CONFIG"))
	if err != nil {
		fmt.Fprintf(stderr, "config load failed: %v\n", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "invalid config: %v\n", err)
		return 1
	}

	switch command {
	case "predict":
		log := applog.NewWithOutput(stderr, cfg.Logging.Level, cfg.Logging.Format)
		if err := runPredict(cfg, args, stdin, stdout, log); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return 0
			}
			fmt.Fprintln(stderr, err)
			return 1
		}
	default:
		log := applog.New(cfg.Logging.Level, cfg.Logging.Format)
		if err := serve(cfg, log); err != nil {
			log.WithError(err).Error("server exited")
			return 1
		}
	}
	return 0
}

func runPredict(cfg *config.Config, args []string, stdin *os.File, stdout io.Writer, log *logrus.Logger) error {
	location := resolveLocation(cfg, log)

	i18nManager, err := i18n.NewManager(cfg.Server.DefaultLanguage)
	if err != nil {
		return fmt.Errorf("i18n init failed: %w", err)
	}

	command := cli.NewPredictCommand(services.NewCycleModel(cfg.CycleConstants()), i18nManager, i18nManager.DefaultLanguage(), stdin, stdout)
	command.Now = func() time.Time { return time.Now().In(location) }
	return command.Run(args)
}

func serve(cfg *config.Config, log *logrus.Logger) error {
	secretKey, err := security.ValidateSecretKey(cfg.Server.SecretKey)
	if err != nil {
		return err
	}
	location := resolveLocation(cfg, log)
	time.Local = location

	i18nManager, err := i18n.NewManager(cfg.Server.DefaultLanguage)
	if err != nil {
		return fmt.Errorf("i18n init failed: %w", err)
	}

	model := services.NewCycleModel(cfg.CycleConstants())
	handler, err := api.NewHandler(model, secretKey, location, i18nManager, log, cfg.Server.CookieSecure)
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}

	app, accessLog := newApp(handler, log)
	defer accessLog.Close()

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.WithError(err).Error("server shutdown failed")
		}
	}()

	log.WithFields(logrus.Fields{
		"port":     cfg.Server.Port,
		"timezone": location.String(),
		"language": i18nManager.DefaultLanguage(),
	}).Info("cyclecast listening")
	return app.Listen(":" + cfg.Server.Port)
}

// newApp wires middleware and routes. The returned closer ends the pipe
// feeding Fiber's access log into logrus.
func newApp(handler *api.Handler, log *logrus.Logger) (*fiber.App, io.Closer) {
	app := fiber.New(fiber.Config{
		AppName:               "cyclecast",
		DisableStartupMessage: true,
	})

	accessLog := log.WriterLevel(logrus.InfoLevel)
	app.Use(recover.New())
	app.Use(handler.RequestIDMiddleware)
	app.Use(logger.New(logger.Config{
		Output: accessLog,
		Format: "${status} ${method} ${path} ${latency} request_id=${respHeader:X-Request-ID}\n",
	}))
	app.Use(compress.New())
	app.Use(handler.LanguageMiddleware)

	api.RegisterRoutes(app, handler)
	return app, accessLog
}

func resolveLocation(cfg *config.Config, log *logrus.Logger) *time.Location {
	location, err := cfg.Server.Location()
	if err != nil {
		log.WithError(err).Warn("falling back to UTC")
	}
	return location
}
