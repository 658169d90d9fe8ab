// Package main 广告工作流服务入口
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"ad-workflow-api/internal/application/deliverable"
	"ad-workflow-api/internal/application/project"
	"ad-workflow-api/internal/application/video"
	"ad-workflow-api/internal/application/workflow"
	"ad-workflow-api/internal/config"
	"ad-workflow-api/internal/infrastructure/persistence/postgres"
	"ad-workflow-api/internal/infrastructure/persistence/redis"
	"ad-workflow-api/internal/interfaces/http/handler"
	"ad-workflow-api/internal/interfaces/http/router"
	"ad-workflow-api/pkg/logger"
	"ad-workflow-api/pkg/tracer"
)

// Version 版本信息，构建时注入
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// 加载 .env 文件（如果存在）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(
		cfg.Observability.Logging.Level,
		cfg.Observability.Logging.Format,
	)

	ctx := context.Background()
	log := logger.FromContext(ctx)
	log.Info("starting workflow-svc",
		"version", Version,
		"build_time", BuildTime,
		"env", cfg.App.Env,
	)

	// 初始化追踪
	shutdown, err := tracer.Init(ctx, tracer.Config{
		ServiceName: cfg.App.Name,
		Endpoint:    cfg.Observability.Tracing.Endpoint,
		SampleRate:  cfg.Observability.Tracing.SampleRate,
		Enabled:     cfg.Observability.Tracing.Enabled,
	})
	if err != nil {
		log.Error("failed to init tracer", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := shutdown(ctx); err != nil {
			log.Error("failed to shutdown tracer", "error", err)
		}
	}()

	// 数据库连接
	pgClient, err := postgres.NewClient(&cfg.Database.Postgres)
	if err != nil {
		logger.Fatal(ctx, "failed to connect postgres", err)
	}
	defer pgClient.Close()

	redisClient, err := redis.NewClient(&cfg.Cache.Redis)
	if err != nil {
		logger.Fatal(ctx, "failed to connect redis", err)
	}
	defer redisClient.Close()

	// 仓储
	txManager := postgres.NewTxManager(pgClient)
	projectRepo := postgres.NewProjectRepository(pgClient)
	videoRepo := postgres.NewVideoRepository(pgClient)
	deliverableRepo := postgres.NewDeliverableRepository(pgClient)
	counterRepo := postgres.NewCounterRepository(pgClient)
	areaRepo := postgres.NewAreaRepository(pgClient)
	packImageRepo := postgres.NewPackImageRepository(pgClient)

	// 工作流组件
	checker := workflow.NewChecker(areaRepo)
	validator := workflow.NewValidator(videoRepo, deliverableRepo)
	numberer := workflow.NewNumberer(counterRepo, deliverableRepo, txManager)
	nomenclator := workflow.NewNomenclator(videoRepo, projectRepo, deliverableRepo)
	nomenclator.SetFallbackCodes(cfg.Workflow.DefaultOriginCode, cfg.Workflow.DefaultCreatorCode)
	summaryCache := redis.NewSummaryCache(redisClient, cfg.Cache.Redis.SummaryTTL)

	// 应用服务
	workflowSvc := workflow.NewService(
		projectRepo, videoRepo, deliverableRepo,
		checker, validator, numberer, nomenclator,
		summaryCache, txManager,
	)
	projectSvc := project.NewService(projectRepo, videoRepo, packImageRepo)
	videoSvc := video.NewService(projectRepo, videoRepo)
	deliverableSvc := deliverable.NewService(videoRepo, deliverableRepo, checker)

	// HTTP 路由
	r := router.New(cfg, router.Handlers{
		Health:      handler.NewHealthHandler(pgClient, redisClient),
		Project:     handler.NewProjectHandler(projectSvc, workflowSvc),
		Video:       handler.NewVideoHandler(videoSvc, workflowSvc),
		Deliverable: handler.NewDeliverableHandler(deliverableSvc),
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.HTTP.Host, cfg.Server.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.HTTP.ReadTimeout,
		WriteTimeout: cfg.Server.HTTP.WriteTimeout,
		IdleTimeout:  cfg.Server.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("http server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}

	log.Info("server exited")
}
