package main

import (
	"log"
	"time"

	"ablefy-sync/internal/config"
	webhookhttp "ablefy-sync/internal/controllers/http"
	"ablefy-sync/internal/infra/postgres"
	"ablefy-sync/internal/infra/rabbitmq"
	"ablefy-sync/internal/logging"
	pgrepo "ablefy-sync/internal/repository/postgres"
	"ablefy-sync/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := cfg.RequireWebhook(); err != nil {
		log.Fatalf("config: %v", err)
	}

	zlog, err := logging.NewLogger()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zlog.Sync()
	logger := zlog.Sugar()

	db, err := postgres.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: connect: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	txRepo := pgrepo.NewTransactionRepository(db)
	orderRepo := pgrepo.NewOrderRepository(db)
	mappingRepo := pgrepo.NewCourseMappingRepository(db)
	profileRepo := pgrepo.NewProfileRepository(db)

	linker := services.NewLinkService(txRepo, orderRepo, mappingRepo, profileRepo, logger)

	var publisher rabbitmq.PublisherInterface
	if cfg.RabbitMQURL != "" {
		pub, err := rabbitmq.NewPublisher(cfg.RabbitMQURL, "ablefy.events")
		if err != nil {
			log.Fatalf("failed to init publisher: %v", err)
		}
		defer pub.Close()
		publisher = pub
	}

	ws := services.NewWebhookService(txRepo, linker, publisher, logger)

	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:         cfg.RedisAddr,
			DialTimeout:  2 * time.Second,
			ReadTimeout:  500 * time.Millisecond,
			WriteTimeout: 500 * time.Millisecond,
		})
		ws.SetRedisClient(redisClient)
	} else {
		logger.Warn("REDIS_ADDR not set, webhook deliveries are not serialized per trx_id")
	}

	handler := webhookhttp.NewHandler(ws, cfg.WebhookSecret)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	handler.RegisterRoutes(r)

	logger.Infof("starting webhook service on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server run: %v", err)
	}
}
