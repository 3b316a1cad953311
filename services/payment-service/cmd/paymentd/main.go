package main

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bibbank/bib/pkg/auth"
	kafkapkg "github.com/bibbank/bib/pkg/kafka"
	"github.com/bibbank/bib/pkg/observability"
	"github.com/bibbank/bib/pkg/tlsutil"
	"github.com/bibbank/bib/services/payment-service/internal/application/usecase"
	"github.com/bibbank/bib/services/payment-service/internal/domain/port"
	"github.com/bibbank/bib/services/payment-service/internal/domain/service"
	"github.com/bibbank/bib/services/payment-service/internal/infrastructure/config"
	"github.com/bibbank/bib/services/payment-service/internal/infrastructure/messaging"
	"github.com/bibbank/bib/services/payment-service/internal/presentation/rest"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration.
	cfg := config.Load()

	// Initialize logger.
	logger := observability.InitLogger(observability.LogConfig{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: cfg.Telemetry.ServiceName,
	})

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger.Info("starting payment-service",
		"http_port", cfg.HTTPPort,
		"default_schema", cfg.SCT.DefaultSchema,
		"tls", cfg.TLS.Enabled(),
		"kafka", len(cfg.Kafka.Brokers) > 0,
		"auth", cfg.Auth.Enabled(),
	)

	// Initialize metrics.
	metrics, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.Telemetry.ServiceName,
	})
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}
	defer metrics.Shutdown(context.Background())

	// Event publishing: Kafka when brokers are configured, the log otherwise.
	var (
		publisher port.EventPublisher = messaging.NewLogPublisher(logger)
		checks    map[string]rest.ReadinessCheck
	)
	if len(cfg.Kafka.Brokers) > 0 {
		producer, err := newProducer(cfg)
		if err != nil {
			logger.Error("failed to initialize kafka producer", "error", err)
			os.Exit(1)
		}
		defer producer.Close()
		publisher = messaging.NewPublisher(producer)
		checks = map[string]rest.ReadinessCheck{"kafka": producer.Ping}
	}

	// Use case.
	generate, err := usecase.NewGenerateCreditTransfer(
		publisher,
		service.NewSchemaRouter(),
		metrics.Meter(),
		logger,
		usecase.WithDefaultSchema(cfg.SCT.DefaultSchema),
	)
	if err != nil {
		logger.Error("failed to initialize use case", "error", err)
		os.Exit(1)
	}

	// Optional bearer token checks on the generation endpoint.
	var middleware []func(http.Handler) http.Handler
	if cfg.Auth.Enabled() {
		verifier, err := newVerifier(cfg.Auth)
		if err != nil {
			logger.Error("failed to initialize token verifier", "error", err)
			os.Exit(1)
		}
		logger.Info("bearer token checks enabled", "rsa", verifier.IsRSA(), "issuer", cfg.Auth.JWTIssuer)
		middleware = append(middleware, auth.Middleware(verifier, auth.RoleAdmin, auth.RoleOperator, auth.RoleAPIClient))
	}

	// HTTP server.
	mux := http.NewServeMux()
	rest.NewHealthHandler(cfg.Telemetry.ServiceName, checks, logger).RegisterRoutes(mux)
	rest.NewCreditTransferHandler(generate, cfg.SCT.MaxBodyBytes, logger, middleware...).RegisterRoutes(mux)
	mux.Handle("GET /metrics", metrics.Handler())

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
	}
	if cfg.TLS.Enabled() {
		tlsCfg, err := tlsutil.ServerConfig(cfg.TLS.CertFile, cfg.TLS.KeyFile)
		if err != nil {
			logger.Error("failed to load TLS configuration", "error", err)
			os.Exit(1)
		}
		httpServer.TLSConfig = tlsCfg
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort)
		var err error
		if httpServer.TLSConfig != nil {
			err = httpServer.ListenAndServeTLS("", "")
		} else {
			err = httpServer.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for shutdown.
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	// Graceful shutdown.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.SCT.ShutdownTimeout)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown", "error", err)
	}
	logger.Info("payment-service stopped")
}

func newProducer(cfg config.Config) (*kafkapkg.Producer, error) {
	var tlsCfg *tls.Config
	if cfg.Kafka.TLS {
		c, err := tlsutil.ClientConfig(cfg.Kafka.CAFile)
		if err != nil {
			return nil, err
		}
		tlsCfg = c
	}
	return kafkapkg.NewProducer(kafkapkg.Config{
		Brokers:       cfg.Kafka.Brokers,
		ClientID:      cfg.Telemetry.ServiceName,
		TLS:           tlsCfg,
		SASLMechanism: cfg.Kafka.SASLMechanism,
		SASLUsername:  cfg.Kafka.SASLUsername,
		SASLPassword:  cfg.Kafka.SASLPassword,
	})
}

func newVerifier(cfg config.AuthConfig) (*auth.Verifier, error) {
	vc := auth.VerifierConfig{
		Secret: cfg.JWTSecret,
		Issuer: cfg.JWTIssuer,
		Leeway: 30 * time.Second,
	}
	if cfg.JWTPublicKeyFile != "" {
		key, err := auth.LoadKeyFromFile(cfg.JWTPublicKeyFile)
		if err != nil {
			return nil, err
		}
		vc.PublicKeyPEM = key
	}
	return auth.NewVerifier(vc)
}
