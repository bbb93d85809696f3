package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tareasapi/api"
	"tareasapi/auth"
	"tareasapi/auth/password"
	"tareasapi/auth/token"
	"tareasapi/component"
	"tareasapi/config"
	"tareasapi/database"
	"tareasapi/logger"
	"tareasapi/observability"
	"tareasapi/server"
	"tareasapi/task"
	"tareasapi/user"
	"tareasapi/util"
	"tareasapi/version"
)

const serviceName = "tareas-api"

// Config is the full configuration tree, loaded from
// cmd/tareas-api/config.yml and the environment.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Server        server.Config        `yaml:"server" mapstructure:"server"`
	Database      database.Config      `yaml:"database" mapstructure:"database"`
	Auth          auth.Config          `yaml:"auth" mapstructure:"auth"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
}

// ApplyDefaults fills every section's defaults.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = serviceName
	}
	c.ServiceConfig.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.Database.ApplyDefaults()
	c.Auth.ApplyDefaults()
	c.Observability.ApplyDefaults()
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Auth.Validate(); err != nil {
		return err
	}
	if err := c.Observability.Validate(); err != nil {
		return fmt.Errorf("observability: %w", err)
	}
	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", serviceName, err)
		os.Exit(1)
	}
}

func run() error {
	var cfg Config
	if err := config.LoadConfig(serviceName, &cfg); err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	logger.Init(cfg.Logging, cfg.Name)
	log := logger.GetGlobalLogger()

	log.Info("Starting "+cfg.Name, map[string]interface{}{
		"version":     version.GetShortVersion(),
		"environment": cfg.Environment,
		"addr":        fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		"database":    cfg.Database.DSN,
		"token_ttl":   cfg.Auth.Token.TTL.String(),
		"secret":      util.MaskSecret(cfg.Auth.Token.Secret, 4),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Phase 1: infrastructure. The database must be up and migrated
	// before the handlers that use it exist.
	registry := component.NewRegistry()
	obs := observability.NewComponent(cfg.Observability, cfg.Name, version.GetShortVersion(), cfg.Environment, log)
	db := database.NewComponent(cfg.Database, log)
	if err := registry.Register(obs); err != nil {
		return err
	}
	if err := registry.Register(db); err != nil {
		return err
	}
	if err := registry.StartAll(ctx); err != nil {
		return shutdownAfter(registry, log, err)
	}

	// Phase 2: the service itself, wired over the running database.
	hasher := password.NewHasher(cfg.Auth.Password)
	codec, err := token.NewCodec(cfg.Auth.Token)
	if err != nil {
		return shutdownAfter(registry, log, err)
	}

	users := user.NewService(user.NewStore(db.DB()), hasher, codec, cfg.Auth.Password, log)
	tasks := task.NewStore(db.DB())

	srv := server.New(cfg.Server, log)
	srv.RegisterSystemEndpoints(cfg.Name, registry.HealthAll, obs.Metrics)
	api.New(users, tasks, log, obs.Metrics).
		Register(srv.GinEngine(), auth.NewVerifier(codec), cfg.Server.AuthRateLimit)

	if err := registry.Register(server.NewComponent(srv)); err != nil {
		return shutdownAfter(registry, log, err)
	}
	if err := registry.StartAll(ctx); err != nil {
		return shutdownAfter(registry, log, err)
	}

	log.Info("Service ready", map[string]interface{}{
		"addr": srv.Addr(),
	})

	<-ctx.Done()
	stop()

	return shutdown(registry)
}

// shutdown stops all components with a fresh deadline; the signal
// context is already spent by the time it runs.
func shutdown(registry *component.Registry) error {
	stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return registry.StopAll(stopCtx)
}

// shutdownAfter tears down whatever started before err interrupted
// startup, keeping err as the reported failure.
func shutdownAfter(registry *component.Registry, log *logger.Logger, err error) error {
	if stopErr := shutdown(registry); stopErr != nil {
		log.Error("Shutdown after failed startup reported errors", map[string]interface{}{
			"error": stopErr.Error(),
		})
	}
	return err
}
