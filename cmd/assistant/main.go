// cmd/assistant/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"chinook-assistant/internal/catalog"
	"chinook-assistant/internal/common/config"
	"chinook-assistant/internal/common/database"
	"chinook-assistant/internal/common/logger"
	"chinook-assistant/internal/common/observability"
	"chinook-assistant/internal/enrichment"
	"chinook-assistant/internal/intent"
	"chinook-assistant/internal/llm"
	"chinook-assistant/internal/report"
	"chinook-assistant/internal/resolver"
	"chinook-assistant/internal/sqlgen"

	al "chinook-assistant/internal/workers/enrichment/artist-lookup"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting chinook assistant...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("chinook-assistant")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Zeebe Client with retry ---
	var zeebeClient zbc.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebeClient, err = zbc.NewClient(&zbc.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
		})
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")

	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		// Test the connection with context
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		// Test the connection with context
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Build the resolution pipeline ---
	store := catalog.NewStore(pg.DB)

	llmClient := llm.NewClient(&llm.Config{
		BaseURL:    cfg.APIs.OpenAI.BaseURL,
		APIKey:     cfg.APIs.OpenAI.APIKey,
		Model:      cfg.APIs.OpenAI.Model,
		Timeout:    time.Duration(cfg.APIs.OpenAI.Timeout) * time.Millisecond,
		MaxRetries: 2,
	}, log)

	analyzer := intent.NewAnalyzer(llmClient, log)
	reports := report.NewGenerator(store, log)
	synthesizer := sqlgen.NewSynthesizer(llmClient, store, log)

	resultStore := enrichment.NewStore(redis.Client, time.Duration(cfg.Enrichment.ResultTTL)*time.Second)
	dispatcher := enrichment.NewZeebeDispatcher(zeebeClient, log)
	enricher := enrichment.NewService(resultStore, dispatcher, time.Duration(cfg.Enrichment.CallbackTimeout)*time.Millisecond, log)

	res := resolver.New(reports, enricher, analyzer, synthesizer, log)

	// --- Register the enrichment worker ---
	alLogAdapter := &artistLookupLoggerAdapter{log}

	if cfg.Workers[al.TaskType].Enabled {
		handler := al.NewHandler(
			&al.Config{
				Timeout:         time.Duration(cfg.Workers[al.TaskType].Timeout) * time.Millisecond,
				CallbackURL:     cfg.Enrichment.CallbackURL,
				CallbackTimeout: time.Duration(cfg.Enrichment.CallbackTimeout) * time.Millisecond,
				MaxGenres:       3,
			},
			store, alLogAdapter,
		)
		startWorker(zeebeClient, al.TaskType, cfg.Workers[al.TaskType], handler.Handle, zapLog)
	}

	// --- HTTP Surface ---
	http.HandleFunc("/message", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"status": "error", "message": "Method not allowed"})
			return
		}

		var body struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"status": "error", "message": "Expected JSON payload"})
			return
		}

		requestID := uuid.New().String()
		reqLog := log.With(map[string]interface{}{"requestID": requestID})
		reqLog.Info("message received", map[string]interface{}{
			"length": len(body.Message),
		})

		start := time.Now()
		response := res.Resolve(r.Context(), body.Message)
		obs.RecordResolution(r.Context(), "message")
		obs.RecordResolutionDuration(r.Context(), time.Since(start), "message")

		writeJSON(w, http.StatusOK, map[string]string{"response": response})
	})

	http.HandleFunc("/trigger-artist", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"status": "error", "message": "Method not allowed"})
			return
		}

		var body struct {
			ArtistName string `json:"artist_name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"status": "error", "message": "Expected JSON payload"})
			return
		}
		if strings.TrimSpace(body.ArtistName) == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"status": "error", "message": "Missing artist_name field"})
			return
		}

		response := enricher.Trigger(r.Context(), body.ArtistName)
		writeJSON(w, http.StatusOK, map[string]string{
			"status":   "success",
			"message":  "Request processed",
			"response": response,
		})
	})

	http.HandleFunc("/webhook/artist-result", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"status": "error", "message": "Method not allowed"})
			return
		}

		var raw json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"status": "error", "message": "Expected JSON payload"})
			return
		}

		if err := enrichment.ValidateCallback(raw); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"status": "error", "message": err.Error()})
			return
		}

		var payload enrichment.CallbackPayload
		if err := json.Unmarshal(raw, &payload); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"status": "error", "message": "Expected JSON payload"})
			return
		}

		if err := enricher.Deliver(r.Context(), &payload); err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"status": "error", "message": err.Error()})
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"status": "success", "message": "Artist information stored"})
	})

	http.HandleFunc("/get-artist-results", func(w http.ResponseWriter, r *http.Request) {
		artistName := r.URL.Query().Get("artist_name")
		if artistName == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"status":  "error",
				"message": "Artist name parameter is required",
			})
			return
		}

		entry, err := enricher.Poll(r.Context(), artistName)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"status": "error", "message": err.Error()})
			return
		}

		writeJSON(w, http.StatusOK, entry)
	})

	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := pg.Ping(r.Context()); err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{
				"status":  "error",
				"message": err.Error(),
			})
			return
		}

		openaiStatus := "not_configured"
		if llmClient.Available() {
			openaiStatus = "configured"
		}

		writeJSON(w, http.StatusOK, map[string]string{
			"status":     "ok",
			"version":    cfg.App.Version,
			"database":   "connected",
			"openai_api": openaiStatus,
		})
	})

	http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "ready",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	http.Handle("/metrics", promhttp.Handler())

	server := &http.Server{Addr: cfg.Server.Address}
	go func() {
		zapLog.Info("HTTP server listening", zap.String("address", cfg.Server.Address))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Error("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down HTTP server", zap.Error(err))
	}

	if err := zeebeClient.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Assistant stopped gracefully")
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// Logger adapter for the worker's own Logger interface
type artistLookupLoggerAdapter struct {
	logger.Logger
}

func (a *artistLookupLoggerAdapter) With(fields map[string]interface{}) al.Logger {
	return &artistLookupLoggerAdapter{a.Logger.With(fields)}
}

func startWorker(client zbc.Client, taskType string, wcfg config.WorkerConfig, handlerFunc func(worker.JobClient, entities.Job), log *zap.Logger) {
	if !wcfg.Enabled {
		log.Info("worker disabled", zap.String("taskType", taskType))
		return
	}

	client.NewJobWorker().
		JobType(taskType).
		Handler(handlerFunc).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(time.Duration(wcfg.Timeout) * time.Millisecond).
		Open()

	log.Info("worker started",
		zap.String("taskType", taskType),
		zap.Int("maxJobsActive", wcfg.MaxJobsActive),
		zap.Int("timeout_ms", wcfg.Timeout),
	)
}
