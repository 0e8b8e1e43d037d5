package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tajamu_group_server/internal/config"
	dao "tajamu_group_server/internal/dao/mysql"
	myredis "tajamu_group_server/internal/dao/redis"
	"tajamu_group_server/internal/handler"
	"tajamu_group_server/internal/https_server"
	"tajamu_group_server/internal/infrastructure/logger"
	"tajamu_group_server/internal/infrastructure/querycache"
	"tajamu_group_server/internal/infrastructure/storage"
	"tajamu_group_server/internal/service"
	"tajamu_group_server/internal/service/stream"
	"tajamu_group_server/pkg/util/jwt"
	"tajamu_group_server/pkg/util/snowflake"

	"go.uber.org/zap"
)

func main() {
	// 1. 加载配置
	conf := config.GetConfig()

	// 2. 初始化日志
	if err := logger.Init(&conf.LogConfig, "dev"); err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	zap.L().Info("日志初始化成功")

	// 3. 初始化参数校验翻译器
	if err := handler.InitTrans("zh"); err != nil {
		zap.L().Fatal("翻译器初始化失败", zap.Error(err))
	}

	// 4. 初始化 JWT 和雪花算法
	jwt.Init(conf.JWTConfig.Secret, conf.JWTConfig.AccessTokenExpiry, conf.JWTConfig.RefreshTokenExpiry)
	snowflake.Init()

	// 5. 初始化数据库
	repos := dao.Init()
	zap.L().Info("数据库初始化成功")

	// 6. 初始化 Redis
	myredis.Init()
	zap.L().Info("Redis 初始化成功")

	// 7. 初始化查询缓存
	qc := querycache.New(myredis.GetCacheService())

	// 8. 初始化本地文件存储
	store, err := storage.NewStore(&conf.StorageConfig)
	if err != nil {
		zap.L().Fatal("文件存储初始化失败", zap.Error(err))
	}

	// 9. 初始化消息流服务器
	streamServer := stream.NewStreamServer(stream.StreamServerConfig{
		Mode:  conf.KafkaConfig.MessageMode,
		Repos: repos,
		Store: store,
	})
	go streamServer.Start()
	zap.L().Info("消息流服务器初始化成功", zap.String("mode", conf.KafkaConfig.MessageMode))

	// 10. 初始化 Service 层和 Handler 层 (依赖注入)
	services := service.NewServices(repos, qc)
	handlers := handler.NewHandlers(services, store, streamServer)
	zap.L().Info("Service 层初始化成功")

	// 11. 初始化 HTTP 服务器
	engine := https_server.Init(handlers)
	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", conf.MainConfig.Host, conf.MainConfig.Port),
		Handler: engine,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("服务器启动失败", zap.Error(err))
		}
	}()
	zap.L().Info("服务器已启动", zap.String("addr", srv.Addr))

	// 设置信号监听
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// 等待信号
	<-quit
	zap.L().Info("关闭服务器...")

	// 先停 HTTP 入口，再关消息流，保证在途请求处理完毕
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zap.L().Error("服务器关闭异常", zap.Error(err))
	}

	streamServer.Close()

	zap.L().Info("服务器已关闭")
}
