package api

import (
	"context"
	"fmt"

	"cloudcost/internal/app/config"
	"cloudcost/internal/app/dsn"
	"cloudcost/internal/app/gateway"
	"cloudcost/internal/app/handler"
	"cloudcost/internal/app/middleware"
	"cloudcost/internal/app/redis"
	"cloudcost/internal/app/repository"
	"cloudcost/internal/app/storage"
	"cloudcost/internal/app/trend"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// StartServer собирает все зависимости и запускает HTTP сервер
func StartServer() {
	logrus.Info("Server start up")

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal("ошибка загрузки конфигурации: ", err)
	}

	dsnStr := dsn.FromEnv()
	if dsnStr == "" {
		logrus.Fatal("DSN строка пустая, проверьте .env файл")
	}

	repo, err := repository.New(dsnStr)
	if err != nil {
		logrus.Fatal("ошибка инициализации репозитория: ", err)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logrus.Fatal("ошибка подключения к Redis: ", err)
	}
	defer redisClient.Close()

	// MinIO не критичен для старта - без него не работает только загрузка изображений
	minioClient, err := storage.NewMinIOClient(
		cfg.Minio.Endpoint,
		cfg.Minio.AccessKey,
		cfg.Minio.SecretKey,
		cfg.Minio.Bucket,
		cfg.Minio.UseSSL,
	)
	if err != nil {
		logrus.Warn("MinIO недоступен, загрузка изображений отключена: ", err)
		minioClient = nil
	}

	gatewayClient := gateway.NewClient(cfg.Gateway)
	trendRunner := trend.NewRunner(gatewayClient, redisClient)

	authHandler := handler.NewAuthHandler(repo, redisClient, cfg)
	apiHandler := handler.NewAPIHandler(repo, minioClient, redisClient, gatewayClient, trendRunner, authHandler, cfg)
	authMiddleware := middleware.NewAuthMiddleware(redisClient, cfg)

	r := gin.Default()
	apiHandler.RegisterAPIRoutes(r, authMiddleware)

	serverAddress := fmt.Sprintf("%s:%d", cfg.ServiceHost, cfg.ServicePort)
	logrus.Infof("Starting server on %s", serverAddress)

	if err := r.Run(serverAddress); err != nil {
		logrus.Fatal(err)
	}

	logrus.Info("Server down")
}
