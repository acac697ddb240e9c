package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	glog "github.com/cloudwego/hertz/pkg/common/hlog"
	hertzadapter "github.com/hertz-contrib/logger/zerolog"
	"github.com/spf13/pflag"

	"cv-match-go/internal/api/handler"
	"cv-match-go/internal/api/router"
	"cv-match-go/internal/config"
	"cv-match-go/internal/extractor"
	"cv-match-go/internal/logger"
	"cv-match-go/internal/parser"
	"cv-match-go/internal/scorer"
	"cv-match-go/internal/storage"
)

func main() {
	var configPath string
	pflag.StringVarP(&configPath, "config", "c", "", "配置文件路径")
	pflag.Parse()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("加载配置失败")
	}

	initLogger(cfg)
	logger.Info().Msg("配置加载成功")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 1. 存储层
	storageManager, err := storage.NewStorage(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("初始化存储失败")
	}
	defer storageManager.Close()
	logger.Info().Msg("存储层初始化成功")

	// 2. 嵌入器：进程内唯一实例，打分调用共享只读使用
	embedder, err := parser.NewAliyunEmbedder(cfg.Embedding.APIKey, cfg.Embedding)
	if err != nil {
		logger.Fatal().Err(err).Msg("初始化嵌入器失败")
	}
	logger.Info().Int("dimensions", embedder.GetDimensions()).Msg("嵌入器初始化成功")

	// 3. 打分引擎
	engine := scorer.NewEngine(embedder, scorer.WithDefaultWeights(cfg.Scoring.Weights()))
	logger.Info().Msg("打分引擎初始化成功")

	// 4. 文本提取器
	textExtractor, err := extractor.New(ctx, &cfg.Tika)
	if err != nil {
		logger.Fatal().Err(err).Msg("初始化文本提取器失败")
	}

	// 5. HTTP服务器
	jobHandler := handler.NewJobHandler(storageManager)
	candidateHandler := handler.NewCandidateHandler(storageManager, engine, textExtractor)
	matchHandler := handler.NewMatchHandler(engine)

	h := server.New(
		server.WithHostPorts(cfg.Server.Address),
		server.WithHandleMethodNotAllowed(true),
	)
	h.Use(func(c context.Context, ctx *app.RequestContext) {
		start := time.Now()
		ctx.Next(c)
		logger.Info().
			Str("method", string(ctx.Method())).
			Str("path", string(ctx.Path())).
			Int("status", ctx.Response.StatusCode()).
			Dur("latency", time.Since(start)).
			Msg("请求处理完成")
	})

	router.RegisterRoutes(h, jobHandler, candidateHandler, matchHandler)
	logger.Info().Str("address", cfg.Server.Address).Msg("HTTP服务器启动中")

	go func() {
		if err := h.Run(); err != nil {
			logger.Fatal().Err(err).Msg("启动HTTP服务器失败")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("接收到终止信号，正在优雅退出")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := h.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("服务器关闭失败")
	}
	logger.Info().Msg("优雅退出完成")
}

// initLogger 初始化zerolog并把Hertz框架日志桥接到同一输出
func initLogger(cfg *config.Config) {
	logger.Init(cfg.Logger)

	hertzLogger := hertzadapter.From(logger.Logger)
	glog.SetLogger(hertzLogger)
}
