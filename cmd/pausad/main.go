package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ardanlabs/conf/v3"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	pausa "github.com/projetopausa/Site-Pausa-V1"
	"github.com/projetopausa/Site-Pausa-V1/handler"
	mongostore "github.com/projetopausa/Site-Pausa-V1/mongo"
	"github.com/projetopausa/Site-Pausa-V1/sheets"
	"github.com/riandyrn/otelchi"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/sdk/resource"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {

	log, err := newLog("pausa-api")
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	if err := run("pausa-api", log); err != nil {
		log.Errorw("startup", "err", err)
		os.Exit(1)
	}
}

func run(serverName string, log *zap.SugaredLogger) error {

	// =========================================================================
	// Configuration

	// A .env next to the binary overrides nothing, it only fills gaps.
	_ = godotenv.Load()

	cfg := struct {
		Http struct {
			ReadTimeout     time.Duration `conf:"default:5s"`
			WriteTimeout    time.Duration `conf:"default:40s"`
			IdleTimeout     time.Duration `conf:"default:120s"`
			ShutdownTimeout time.Duration `conf:"default:20s"`
			Host            string        `conf:"default:0.0.0.0:8000"`
		}
		Backend string `conf:"default:mongo,help:persistence backend (mongo or sheets)"`
		Mongo   struct {
			URI                    string        `conf:"default:mongodb://localhost:27017,mask"`
			Database               string        `conf:"default:portal_pausa_db"`
			ConnectTimeout         time.Duration `conf:"default:15s"`
			ServerSelectionTimeout time.Duration `conf:"default:10s"`
			SocketTimeout          time.Duration `conf:"default:20s"`
			MaxPoolSize            uint64        `conf:"default:10"`
			InsecureTLS            bool          `conf:"default:false"`
		}
		Sheets struct {
			WebhookURL string        `conf:"mask"`
			Timeout    time.Duration `conf:"default:30s"`
		}
		Cors struct {
			Origins string `conf:"default:*"`
		}
		Jaeger struct {
			ReporterURI string `conf:"default:http://localhost:14268/api/traces"`
			ServiceName string `conf:"default:pausa-api"`
		}
	}{}

	help, err := conf.Parse("PAUSA", &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	// =========================================================================
	// Persistence Support

	log.Infow("startup", "status", "initializing persistence support", "backend", cfg.Backend)

	var contactStore pausa.ContactStore
	var statusStore pausa.StatusStore

	switch cfg.Backend {
	case "mongo":
		client, err := mongostore.Open(mongostore.Config{
			URI:                    cfg.Mongo.URI,
			Database:               cfg.Mongo.Database,
			ConnectTimeout:         cfg.Mongo.ConnectTimeout,
			ServerSelectionTimeout: cfg.Mongo.ServerSelectionTimeout,
			SocketTimeout:          cfg.Mongo.SocketTimeout,
			MaxPoolSize:            cfg.Mongo.MaxPoolSize,
			InsecureTLS:            cfg.Mongo.InsecureTLS,
		})
		if err != nil {
			return fmt.Errorf("opening mongo client: %w", err)
		}
		defer func() {
			log.Infow("shutdown", "status", "stopping persistence support")
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Disconnect(ctx); err != nil {
				log.Errorw("shutdown", "status", "disconnecting mongo client", "err", err)
			}
		}()

		// An unreachable database is not fatal: health and status keep
		// serving and contact writes fail fast until it comes back.
		pingCtx, cancel := context.WithTimeout(context.Background(), cfg.Mongo.ServerSelectionTimeout)
		if err := mongostore.StatusCheck(pingCtx, client); err != nil {
			log.Errorw("startup", "status", "database unreachable, serving degraded", "err", err)
		} else {
			names, err := mongostore.Collections(pingCtx, client, cfg.Mongo.Database)
			if err != nil {
				log.Errorw("startup", "status", "listing collections", "err", err)
			} else {
				log.Infow("startup", "status", "database connected", "collections", names)
			}
		}
		cancel()

		db := client.Database(cfg.Mongo.Database)
		contactStore = mongostore.NewContactStore(db)
		statusStore = mongostore.NewStatusStore(db)

	case "sheets":
		if cfg.Sheets.WebhookURL == "" {
			return errors.New("sheets backend requires PAUSA_SHEETS_WEBHOOK_URL")
		}
		contactStore = sheets.NewClient(sheets.Config{
			WebhookURL: cfg.Sheets.WebhookURL,
			Timeout:    cfg.Sheets.Timeout,
		})
		statusStore = sheets.NewStatusLog()

	default:
		return fmt.Errorf("unknown backend %q", cfg.Backend)
	}

	// =========================================================================
	// Start Tracing Support

	log.Infow("startup", "status", "initializing OT/Jaeger tracing support")

	traceProvider, err := startTracing(
		cfg.Jaeger.ServiceName,
		cfg.Jaeger.ReporterURI,
	)
	if err != nil {
		return fmt.Errorf("starting tracing: %w", err)
	}
	defer traceProvider.Shutdown(context.Background())

	// =========================================================================
	// Create router

	log.Infow("startup", "status", "initializing router")

	otelLog := otelzap.New(log.Desugar(), otelzap.WithStackTrace(true)).Sugar()
	contactHandler := handler.NewContactHandler(contactStore, otelLog.SugaredLogger)
	statusHandler := handler.NewStatusHandler(statusStore, otelLog.SugaredLogger)
	healthHandler := handler.NewHealthHandler(contactStore, otelLog.SugaredLogger)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   strings.Split(cfg.Cors.Origins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           600,
	}))
	r.Use(otelchi.Middleware(serverName, otelchi.WithChiRoutes(r)))

	r.Get("/health", healthHandler.Check)
	r.Get("/status", handler.Status)

	r.Route("/api", func(r chi.Router) {
		r.Get("/", handler.Root)
		r.Post("/contact", contactHandler.Submit)
		r.Post("/status", statusHandler.Create)
		r.Get("/status", statusHandler.List)
	})

	// =========================================================================
	// Start API Server

	log.Infow("startup", "status", "initializing http server", "host", cfg.Http.Host)

	// The HTTP Server
	server := &http.Server{
		Addr:         cfg.Http.Host,
		Handler:      r,
		ReadTimeout:  cfg.Http.ReadTimeout,
		WriteTimeout: cfg.Http.WriteTimeout,
		IdleTimeout:  cfg.Http.IdleTimeout,
		ErrorLog:     zap.NewStdLog(log.Desugar()),
	}

	// Server run context
	serverCtx, serverStopCtx := context.WithCancel(context.Background())

	// Listen for syscall signals for process to interrupt/quit
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		<-sig

		// Shutdown signal with grace period
		shutdownCtx, cancel := context.WithTimeout(serverCtx, cfg.Http.ShutdownTimeout)
		defer cancel()

		go func() {
			<-shutdownCtx.Done()
			if shutdownCtx.Err() == context.DeadlineExceeded {
				log.Fatal("graceful shutdown timed out.. forcing exit.")
			}
		}()

		// Trigger graceful shutdown
		err := server.Shutdown(shutdownCtx)
		if err != nil {
			log.Fatal(err)
		}
		serverStopCtx()
	}()

	// Run the server
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}

	// Wait for server context to be stopped
	<-serverCtx.Done()

	return nil
}

func newLog(serviceName string) (*zap.SugaredLogger, error) {
	config := zap.NewProductionConfig()
	config.OutputPaths = []string{"stdout"}
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.DisableStacktrace = true
	config.InitialFields = map[string]interface{}{
		"service": serviceName,
	}

	log, err := config.Build()
	if err != nil {
		return nil, err
	}

	return log.Sugar(), nil
}

func startTracing(serviceName, reporterURL string) (*tracesdk.TracerProvider, error) {
	exp, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(reporterURL)))
	if err != nil {
		return nil, fmt.Errorf("creating new exporter: %w", err)
	}

	tp := tracesdk.NewTracerProvider(
		tracesdk.WithSampler(tracesdk.AlwaysSample()),
		// Always be sure to batch in production.
		tracesdk.WithBatcher(exp,
			tracesdk.WithMaxExportBatchSize(tracesdk.DefaultMaxExportBatchSize),
			tracesdk.WithBatchTimeout(tracesdk.DefaultScheduleDelay*time.Millisecond),
		),
		// Record information about this application in a Resource.
		tracesdk.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(serviceName),
			attribute.String("exporter", "jaeger"),
		)),
	)

	otel.SetTracerProvider(tp)
	return tp, nil
}
