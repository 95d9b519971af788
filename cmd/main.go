package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "pc_restarter/docs"
	"pc_restarter/internal/device"
	"pc_restarter/internal/handlers"
	"pc_restarter/internal/logger"
	"pc_restarter/internal/repository"
	"pc_restarter/internal/repository/db"
	"pc_restarter/internal/server"
	"pc_restarter/internal/service"
	"pc_restarter/internal/statussync"

	"github.com/spf13/viper"
)

const shutdownTimeout = 10 * time.Second

// @title                       PC Restarter Console API
// @version                     1.0
// @description                 Operator console for the ESP32 PC restarter: live status, power/reset relays, firmware updates and WiFi setup.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	if err := loadConfig(); err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}
	log := logger.Get(viper.GetString("log_level"))

	sqlDB, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	cfg := serviceConfig()
	if err := service.ValidateAuthConfig(cfg.Auth); err != nil {
		log.Fatalw("invalid auth config", "err", err)
	}

	repos := repository.NewRepository(sqlDB)
	dev := device.New(viper.GetString("device.url"), viper.GetDuration("device.timeout"), log)
	services := service.NewService(repos, dev, cfg, log)
	apiHandler := handlers.NewHandler(services, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// live status channel to the device, reconnects until ctx is canceled
	go func() {
		if err := services.Tracker.Run(ctx); err != nil {
			log.Errorw("tracker_stopped", "err", err)
		}
	}()

	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	waitForShutdown(cancel, srv, services, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")

	viper.SetDefault("port", "8080")
	viper.SetDefault("log_level", logger.InfoLevel)
	viper.SetDefault("db.path", "app.db")
	viper.SetDefault("device.url", "http://192.168.4.1")
	viper.SetDefault("device.ws_path", "/ws")
	viper.SetDefault("device.timeout", "5s")
	viper.SetDefault("sync.initial_retry_delay", statussync.DefaultInitialRetryDelay)
	viper.SetDefault("sync.max_retry_delay", statussync.DefaultMaxRetryDelay)
	viper.SetDefault("sync.backoff_factor", statussync.DefaultBackoffFactor)
	viper.SetDefault("sync.jitter", statussync.DefaultJitter)
	viper.SetDefault("ota.poll_interval", statussync.DefaultPollInterval)
	viper.SetDefault("setup.scan_poll_interval", "1500ms")
	viper.SetDefault("setup.scan_timeout", "20s")
	viper.SetDefault("actions.timeout", "5s")
	viper.SetDefault("hold.power", "3s")
	viper.SetDefault("hold.reset", "3s")
	viper.SetDefault("hold.tick", "50ms")
	viper.SetDefault("auth.token_ttl", "12h")

	// RESTARTER_AUTH_SIGNING_KEY overrides auth.signing_key, etc.
	viper.SetEnvPrefix("restarter")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	return viper.ReadInConfig()
}

// serviceConfig maps config keys onto the service tunables.
func serviceConfig() service.Config {
	return service.Config{
		Endpoint: statussync.StaticEndpoint(viper.GetString("device.url"), viper.GetString("device.ws_path")),
		Sync: statussync.Options{
			InitialRetryDelay: viper.GetDuration("sync.initial_retry_delay"),
			MaxRetryDelay:     viper.GetDuration("sync.max_retry_delay"),
			BackoffFactor:     viper.GetFloat64("sync.backoff_factor"),
			Jitter:            viper.GetDuration("sync.jitter"),
		},
		OtaPollInterval:  viper.GetDuration("ota.poll_interval"),
		ScanPollInterval: viper.GetDuration("setup.scan_poll_interval"),
		ScanTimeout:      viper.GetDuration("setup.scan_timeout"),
		ActionTimeout:    viper.GetDuration("actions.timeout"),
		PowerHold:        viper.GetDuration("hold.power"),
		ResetHold:        viper.GetDuration("hold.reset"),
		HoldTick:         viper.GetDuration("hold.tick"),
		Auth: service.AuthConfig{
			SigningKey: viper.GetString("auth.signing_key"),
			TokenTTL:   viper.GetDuration("auth.token_ttl"),
		},
	}
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	log.Infow("opening sqlite", "path", dbPath)
	return db.InitDB(dbPath)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		log.Infow("http_listening", "port", port)
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, services *service.Service, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop background goroutines: status channel, pollers, hold tickers
	cancel()
	if closer, ok := services.Hold.(interface{ Close() }); ok {
		closer.Close()
	}

	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
