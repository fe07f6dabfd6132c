// GongWei 工位排布引擎服务
// 主程序入口

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gongwei/gongwei/internal/config"
	"github.com/gongwei/gongwei/internal/database"
	"github.com/gongwei/gongwei/internal/handler"
	"github.com/gongwei/gongwei/internal/metrics"
	"github.com/gongwei/gongwei/internal/repository"
	"github.com/gongwei/gongwei/pkg/logger"
	"github.com/gongwei/gongwei/pkg/mip"
	"github.com/gongwei/gongwei/pkg/planner"
)

// 构建信息（通过 ldflags 注入）
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "配置加载失败: %v\n", err)
		os.Exit(1)
	}

	logger.Init(logger.Config{
		Level:  cfg.App.LogLevel,
		Format: "console",
	})

	fmt.Printf("GongWei 工位排布引擎 v%s\n", Version)
	fmt.Printf("Build: %s (%s)\n", BuildTime, GitCommit)
	fmt.Println()

	// 数据库可选：连接失败时以纯内存模式运行，方案不持久化
	var (
		planRepo    *repository.PlanRepository
		bayRepo     *repository.BayRepository
		subteamRepo *repository.SubTeamRepository
	)
	db, err := database.New(&cfg.Database)
	if err != nil {
		logger.Warn().Err(err).Msg("数据库不可用，以纯内存模式运行")
	} else {
		defer db.Close()
		planRepo = repository.NewPlanRepository(db)
		bayRepo = repository.NewBayRepository(db)
		subteamRepo = repository.NewSubTeamRepository(db)
	}

	solver := mip.NewBranchBound()
	solver.SetNodeBudget(cfg.Planner.SolverNodeBudget)
	p := planner.New(solver)

	planHandler := handler.NewPlanHandler(p, planRepo, cfg.Planner.PlanOptions(), cfg.Planner.SolverTimeout)
	statsHandler := handler.NewStatsHandler()

	mux := http.NewServeMux()

	// ========================================
	// 系统端点
	// ========================================

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"gongwei"}`))
	})

	mux.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"version":"%s","build_time":"%s","git_commit":"%s"}`, Version, BuildTime, GitCommit)
	})

	// ========================================
	// API v1 端点
	// ========================================

	mux.HandleFunc("/api/v1/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{
			"message": "GongWei 工位排布引擎 API v1",
			"endpoints": {
				"plan": {
					"generate": "POST /api/v1/plan/generate",
					"preview_weights": "POST /api/v1/plan/preview-weights"
				},
				"stats": {
					"utilization": "POST /api/v1/stats/utilization"
				}
			}
		}`))
	})

	// 排位生成 API
	mux.HandleFunc("/api/v1/plan/generate", planHandler.Generate)

	// 权重预览 API - 只做拆组与权重计算，不触发求解
	mux.HandleFunc("/api/v1/plan/preview-weights", planHandler.PreviewWeights)

	// 利用率统计 API
	mux.HandleFunc("/api/v1/stats/utilization", statsHandler.Utilization)

	// 目录维护与存量表排位 API（需要数据库）
	if bayRepo != nil {
		catalogHandler := handler.NewCatalogHandler(bayRepo, subteamRepo, p,
			cfg.Planner.PlanOptions(), cfg.Planner.SolverTimeout)
		mux.HandleFunc("/api/v1/bays", catalogHandler.Bays)
		mux.HandleFunc("/api/v1/subteams", catalogHandler.SubTeams)
		mux.HandleFunc("/api/v1/plan/generate-stored", catalogHandler.GenerateStored)
	}

	// 监控指标端点
	if cfg.Metrics.Enabled {
		mux.HandleFunc(cfg.Metrics.Path, metrics.GetRegistry().Handler())
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      handler.RequestLogger(mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Planner.SolverTimeout + 15*time.Second,
	}

	go func() {
		logger.Info().Int("port", cfg.App.Port).Msg("HTTP服务启动")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("HTTP服务异常退出")
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("收到退出信号，开始关闭")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Msg("HTTP服务关闭失败")
	}
	logger.Info().Msg("服务已退出")
}
