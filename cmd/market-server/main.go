package main

import (
	"fmt"
	"time"

	"recircle-core/internal/handler"
	"recircle-core/internal/model"
	"recircle-core/internal/server"
	"recircle-core/internal/service"
	"recircle-core/internal/service/mq"
	"recircle-core/internal/service/presence"

	"recircle-core/pkg/cache"
	"recircle-core/pkg/config"
	"recircle-core/pkg/database"
	"recircle-core/pkg/logger"

	"go.uber.org/zap"
)

// @title ReCircle Market API
// @version 1.0
// @description Circular-economy marketplace: claims, scans and reward ledger

// @host localhost:8080
// @BasePath /api/v1
func main() {
	// 0. Config
	config.Init()

	// 1. Logger
	logger.Init(config.Global.App.Env)
	defer logger.Sync()

	// 2. Database
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		config.Global.DB.Host,
		config.Global.DB.User,
		config.Global.DB.Password,
		config.Global.DB.Name,
		config.Global.DB.Port,
	)
	db, err := database.ConnectPostgres(dsn)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}

	// 3. Redis
	rdb, err := database.ConnectRedis(config.Global.Redis.Addr, config.Global.Redis.Password, config.Global.Redis.DB)
	if err != nil {
		logger.Fatal("redis connection failed", zap.Error(err))
	}

	// 4. Schema migration. Production schemas are managed by the migrate
	// tool; AutoMigrate is a development convenience only.
	if config.Global.App.Env == "development" {
		if err := db.AutoMigrate(model.AllModels()...); err != nil {
			logger.Fatal("schema auto-migration failed", zap.Error(err))
		}
		logger.Info("schema auto-migration done (dev mode)")
	}

	// 5. Shop-directory cache: L1 memory, L2 redis
	localCache := cache.NewMemoryCache(1*time.Minute, 5*time.Minute)
	redisCache := cache.NewRedisCache(rdb)
	multiCache := cache.NewMultiLevelCache(localCache, redisCache)

	// 6. Notification producer + presence
	var producer mq.Producer
	if config.Global.MQ.Driver == "redis" {
		producer = mq.NewRedisProducer(rdb)
	} else {
		kafkaProducer := mq.NewKafkaProducer(config.Global.Kafka.Brokers)
		defer kafkaProducer.Close()
		producer = kafkaProducer
	}
	presenceReg := presence.NewRedisRegistry(rdb)
	notifier := service.NewNotifier(producer, presenceReg)

	// 7. Services
	shops := service.NewShopService(db, multiCache)
	scans := service.NewScanService(db)
	rewards := service.NewRewardService(db, config.Global.Reward)
	claims := service.NewClaimService(db, notifier)
	items := service.NewItemService(db, scans, shops)
	completion := service.NewCompletionService(db, rewards, scans, notifier)
	recycle := service.NewRecycleService(db, scans, shops, notifier)

	// 8. HTTP
	r := server.NewHTTPRouter(server.Handlers{
		Claims:  handler.NewClaimHandler(claims),
		Scans:   handler.NewScanHandler(completion, recycle, items, scans),
		Wallets: handler.NewWalletHandler(rewards),
	}, config.Global.Auth.JWTSecret)

	app := server.New(server.Config{HttpPort: config.Global.App.HttpPort}, r)
	app.Run()

	// 9. Cleanup after shutdown
	logger.Info("closing database connections...")
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	rdb.Close()
	logger.Info("system exited")
}
