// cmd/chat-server/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"youth-employment-chat/internal/api"
	"youth-employment-chat/internal/catalog"
	"youth-employment-chat/internal/chat"
	"youth-employment-chat/internal/common/camunda"
	"youth-employment-chat/internal/common/config"
	"youth-employment-chat/internal/common/database"
	"youth-employment-chat/internal/common/logger"
	"youth-employment-chat/internal/common/observability"
	"youth-employment-chat/internal/llm"
	"youth-employment-chat/internal/store"

	aet "youth-employment-chat/internal/workers/ai-conversation/analyze-employment-trends"
	bc "youth-employment-chat/internal/workers/ai-conversation/build-context"
	cq "youth-employment-chat/internal/workers/ai-conversation/classify-question"
	frd "youth-employment-chat/internal/workers/ai-conversation/filter-relevant-data"
	ls "youth-employment-chat/internal/workers/ai-conversation/llm-synthesis"
	qs "youth-employment-chat/internal/workers/ai-conversation/query-statistics"
	qd "youth-employment-chat/internal/workers/data-access/query-dataset"
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
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := logger.New("info", "console")
		boot.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("starting chat server",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
		zap.String("store", cfg.Store.Backend),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()
	var checkers []api.Checker

	// --- Dataset catalog ---
	cat := catalog.Default()
	if cfg.Catalog.Path != "" {
		cat, err = catalog.LoadFile(cfg.Catalog.Path)
		if err != nil {
			zapLog.Fatal("catalog load failed", zap.String("path", cfg.Catalog.Path), zap.Error(err))
		}
	}
	zapLog.Info("catalog loaded", zap.Int("datasets", cat.Len()))

	// --- Tabular store ---
	var tabular store.TabularStore
	switch cfg.Store.Backend {
	case config.BackendElasticsearch:
		var esClient *database.ElasticsearchClient
		err = retryWithBackoff(func() error {
			var err error
			esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return esClient.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Elasticsearch connection")
		if err != nil {
			zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
		}
		tabular = store.NewElasticsearchStore(esClient.Client, cfg.Database.Elasticsearch.IndexPrefix)
		checkers = append(checkers, api.Checker{Name: "elasticsearch", Ping: esClient.Ping})
	default:
		var pg *database.PostgresClient
		err = retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			return pg.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
		if err != nil {
			zapLog.Fatal("postgres failed after retries", zap.Error(err))
		}
		defer pg.Close()
		tabular = store.NewPostgresStore(pg.GetDB())
		checkers = append(checkers, api.Checker{Name: "postgres", Ping: pg.Ping})
	}
	zapLog.Info("tabular store connected", zap.String("backend", cfg.Store.Backend))

	// --- Fan-out cache, optional ---
	var redisClient *redis.Client
	if cfg.Database.Redis.Address != "" {
		rc, err := database.NewRedis(cfg.Database.Redis)
		if err != nil {
			zapLog.Fatal("redis client failed", zap.Error(err))
		}
		if err := rc.Ping(ctx); err != nil {
			zapLog.Warn("redis unreachable, fan-out cache will miss", zap.Error(err))
		}
		defer rc.Close()
		redisClient = rc.GetClient()
		checkers = append(checkers, api.Checker{Name: "redis", Ping: rc.Ping})
	}

	// --- LLM ---
	llmCfg := cfg.APIs.LLM
	completer := llm.NewClient(&llm.Config{
		BaseURL:     llmCfg.BaseURL,
		APIKey:      llmCfg.APIKey,
		Model:       llmCfg.Model,
		Timeout:     config.GetDuration(llmCfg.Timeout),
		MaxTokens:   llmCfg.MaxTokens,
		Temperature: llmCfg.Temperature,
		RateLimit:   llmCfg.RateLimit,
		Burst:       llmCfg.Burst,
	}, log)

	// --- Pipeline stages ---
	classifier, err := cq.NewHandler(cq.ConfigFromWorker(config.GetWorkerConfig(cfg, cq.TaskType)), cq.NewKeywordTable(), log)
	if err != nil {
		zapLog.Fatal("classify-question init failed", zap.Error(err))
	}
	retriever, err := qs.NewHandler(qs.ConfigFromApp(config.GetWorkerConfig(cfg, qs.TaskType), cfg.Chat), cat, tabular, redisClient, log)
	if err != nil {
		zapLog.Fatal("query-statistics init failed", zap.Error(err))
	}
	filter, err := frd.NewHandler(frd.ConfigFromWorker(config.GetWorkerConfig(cfg, frd.TaskType)), cat, log)
	if err != nil {
		zapLog.Fatal("filter-relevant-data init failed", zap.Error(err))
	}
	builder, err := bc.NewHandler(bc.ConfigFromWorker(config.GetWorkerConfig(cfg, bc.TaskType)), cat, obs, log)
	if err != nil {
		zapLog.Fatal("build-context init failed", zap.Error(err))
	}
	synth, err := ls.NewHandler(ls.ConfigFromApp(config.GetWorkerConfig(cfg, ls.TaskType), llmCfg), completer, log)
	if err != nil {
		zapLog.Fatal("llm-synthesis init failed", zap.Error(err))
	}
	trends, err := aet.NewHandler(aet.ConfigFromApp(config.GetWorkerConfig(cfg, aet.TaskType), llmCfg), cat, tabular, completer, log)
	if err != nil {
		zapLog.Fatal("analyze-employment-trends init failed", zap.Error(err))
	}

	pipeline, err := chat.NewPipeline(chat.Stages{
		Classifier:  classifier,
		Retriever:   retriever,
		Filter:      filter,
		Builder:     builder,
		Synthesizer: synth,
	}, cfg.Chat.MaxQuestionLength, obs, log)
	if err != nil {
		zapLog.Fatal("pipeline init failed", zap.Error(err))
	}

	// --- Zeebe workers, optional ---
	var jobWorkers []worker.JobWorker
	var zeebe *camunda.Client
	if cfg.Camunda.Enabled {
		zeebe, err = camunda.NewClient(ctx, cfg.Camunda.BrokerAddress)
		if err != nil {
			zapLog.Fatal("zeebe client failed", zap.Error(err))
		}
		zapLog.Info("Zeebe client connected successfully")
		checkers = append(checkers, api.Checker{Name: "zeebe", Ping: zeebe.HealthCheck})

		datasets, err := qd.NewHandler(qd.ConfigFromWorker(config.GetWorkerConfig(cfg, qd.TaskType)), cat, tabular, log)
		if err != nil {
			zapLog.Fatal("query-dataset init failed", zap.Error(err))
		}
		chatJobs, err := chat.NewJobHandler(pipeline, config.GetWorkerConfig(cfg, chat.TaskType), log)
		if err != nil {
			zapLog.Fatal("chat worker init failed", zap.Error(err))
		}

		handlers := map[string]camunda.JobHandlerFunc{
			cq.TaskType:   classifier.Handle,
			qs.TaskType:   retriever.Handle,
			frd.TaskType:  filter.Handle,
			bc.TaskType:   builder.Handle,
			ls.TaskType:   synth.Handle,
			aet.TaskType:  trends.Handle,
			qd.TaskType:   datasets.Handle,
			chat.TaskType: chatJobs.Handle,
		}
		for taskType, handle := range handlers {
			if w := camunda.StartWorker(zeebe.GetClient(), taskType, config.GetWorkerConfig(cfg, taskType), handle, log); w != nil {
				jobWorkers = append(jobWorkers, w)
			}
		}
		zapLog.Info("workers started", zap.Int("count", len(jobWorkers)))
	}

	// --- HTTP ---
	router := api.NewRouter(pipeline, trends, api.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Checkers:       checkers,
	}, log)

	server := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		zapLog.Info("HTTP server listening", zap.String("address", cfg.Server.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// metrics and pprof on a separate listener
	go func() {
		mux := http.DefaultServeMux
		mux.Handle("/metrics", promhttp.Handler())
		zapLog.Info("metrics listening", zap.String("address", cfg.Server.MetricsAddress))
		if err := http.ListenAndServe(cfg.Server.MetricsAddress, mux); err != nil {
			zapLog.Error("metrics server error", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("HTTP server shutdown failed", zap.Error(err))
	}
	for _, w := range jobWorkers {
		w.Close()
		w.AwaitClose()
	}
	if zeebe != nil {
		if err := zeebe.Close(); err != nil {
			zapLog.Error("error closing Zeebe client", zap.Error(err))
		}
	}

	zapLog.Info("chat server stopped")
}
