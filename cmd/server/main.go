package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/coffishop-settings/internal/application"
	"github.com/eugenenazirov/coffishop-settings/internal/config"
	"github.com/eugenenazirov/coffishop-settings/internal/logging"
	"github.com/eugenenazirov/coffishop-settings/internal/settings"
)

var signalNotify = signal.Notify

func main() {
	kingpinApp := kingpin.New("coffishop-settings", "Coffee shop frontend settings - serves the compiled-in API and Auth0 settings")

	serveCmd := kingpinApp.Command("serve", "Serve the settings over HTTP").Default()
	configFile := serveCmd.Flag("config", "Path to YAML configuration file").String()
	envFile := serveCmd.Flag("env-file", "Path to a .env file seeding environment variables").Default(".env").String()
	port := serveCmd.Flag("port", "HTTP port exposed by the service").String()
	serveEnv := serveCmd.Flag("environment", "Settings environment to serve (development, production)").String()
	logLevel := serveCmd.Flag("log-level", "Log level (debug, info, warn, error)").String()
	rateLimitRPSFlag := serveCmd.Flag("rate-limit-rps", "Requests per second allowed (set 0 to disable)").Default("-1").Float64()
	rateLimitBurstFlag := serveCmd.Flag("rate-limit-burst", "Burst capacity for rate limiter (set 0 to disable)").Default("-1").Int()

	showCmd := kingpinApp.Command("show", "Print the settings document and exit")
	showEnv := showCmd.Flag("environment", "Settings environment to print").Default(settings.BuildEnvironment.String()).String()
	showFormat := showCmd.Flag("format", "Output format").Default("json").Enum("json", "yaml")

	switch kingpin.MustParse(kingpinApp.Parse(os.Args[1:])) {
	case showCmd.FullCommand():
		if err := runShow(os.Stdout, *showEnv, *showFormat); err != nil {
			fmt.Fprintf(os.Stderr, "coffishop-settings: %v\n", err)
			os.Exit(1)
		}

	case serveCmd.FullCommand():
		overrides := &config.CLIOverrides{
			ConfigFile: *configFile,
			EnvFile:    *envFile,
		}

		if *port != "" {
			overrides.Port = port
		}

		if *serveEnv != "" {
			overrides.Environment = serveEnv
		}

		if *logLevel != "" {
			overrides.LogLevel = logLevel
		}

		if *rateLimitRPSFlag >= 0 {
			overrides.RateLimitRPS = rateLimitRPSFlag
		}

		if *rateLimitBurstFlag >= 0 {
			overrides.RateLimitBurst = rateLimitBurstFlag
		}

		runServe(overrides)
	}
}

func runServe(overrides *config.CLIOverrides) {
	cfg, err := config.Load(overrides)
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer func() {
		_ = logger.Sync()
	}()

	app, err := application.New(cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize application", zap.Error(err))
	}

	if err := app.Start(); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}

	shutdown(app.Server(), cfg.ShutdownGracePeriod, logger)
}

// runShow writes the settings document for envName to w.
func runShow(w io.Writer, envName, format string) error {
	env, err := settings.ParseEnvironment(envName)
	if err != nil {
		return err
	}

	s, err := settings.Load(env)
	if err != nil {
		return err
	}

	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s.Document()); err != nil {
			return fmt.Errorf("encode YAML: %w", err)
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(s.Document()); err != nil {
			return fmt.Errorf("encode JSON: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

func shutdown(server *http.Server, timeout time.Duration, logger *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signalNotify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
		if closeErr := server.Close(); closeErr != nil {
			logger.Error("forced close failed", zap.Error(closeErr))
		}
	}
}
