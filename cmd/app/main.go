package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/suchimauz/pet-clinic-core/internal/adapters/in/http"
	"github.com/suchimauz/pet-clinic-core/internal/adapters/in/rabbitmq"
	"github.com/suchimauz/pet-clinic-core/internal/adapters/out/cache"
	"github.com/suchimauz/pet-clinic-core/internal/adapters/out/logger"
	"github.com/suchimauz/pet-clinic-core/internal/adapters/out/storage"
	"github.com/suchimauz/pet-clinic-core/internal/config"
	"github.com/suchimauz/pet-clinic-core/internal/core/ports/out"
	"github.com/suchimauz/pet-clinic-core/internal/core/services"
)

func main() {
	// Загрузка конфигурации
	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализация логгера с таймзоной
	mainLogger, err := logger.NewZapLogger(cfg.App.Timezone, cfg.IsLocal())
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer mainLogger.Sync()
	logger := mainLogger.WithModule("Main")

	logger.Info("app.starting", out.LogFields{
		"version":         cfg.App.Version,
		"env":             cfg.App.Env,
		"timezone":        cfg.App.Timezone,
		"rabbitmqEnabled": cfg.RabbitMQ.Enabled,
		"cacheEnabled":    cfg.Cache.Enabled,
	})

	// Настройка Gin в зависимости от окружения
	if cfg.IsNotLocal() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Инициализация адаптеров
	db, err := storage.Open(cfg.Database.DSN)
	if err != nil {
		logger.Error("app.storage.open_failed", out.LogFields{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	if err := storage.Migrate(db); err != nil {
		logger.Error("app.storage.migrate_failed", out.LogFields{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	storageAdapter := storage.NewGormAdapter(db, logger.WithModule("StorageAdapter"))

	node, err := snowflake.NewNode(cfg.Snowflake.Node)
	if err != nil {
		logger.Error("app.snowflake.init_failed", out.LogFields{
			"error": err.Error(),
			"node":  cfg.Snowflake.Node,
		})
		os.Exit(1)
	}

	var cachePort out.CachePort
	if cacheAdapter := cache.NewCacheAdapter(cfg, logger.WithModule("CacheAdapter")); cacheAdapter != nil {
		cachePort = cacheAdapter
	}

	// Инициализация сервисов
	appointmentService := services.NewAppointmentService(
		storageAdapter,
		cfg.Location(),
		logger.WithModule("AppointmentService"),
	)
	membershipService := services.NewMembershipService(
		storageAdapter,
		cachePort,
		node,
		cfg.Location(),
		logger.WithModule("MembershipService"),
	)

	// Настройка HTTP сервера
	router := gin.New()
	router.Use(gin.Recovery())
	controller := http.NewClinicController(
		appointmentService,
		membershipService,
		cfg,
		logger.WithModule("HttpController"),
	)
	controller.RegisterRoutes(router)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Настройка RabbitMQ слушателя только если он включен
	listener, err := rabbitmq.NewMembershipEventListener(
		membershipService,
		cfg,
		logger.WithModule("RabbitMQListener"),
	)
	if err != nil {
		logger.Error("app.rabbitmq.init_failed", out.LogFields{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	if listener != nil {
		if err := listener.Start(ctx); err != nil {
			logger.Error("app.rabbitmq.start_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}

		defer func() {
			if err := listener.Stop(); err != nil {
				logger.Error("app.rabbitmq.stop_failed", out.LogFields{
					"error": err.Error(),
				})
			}
		}()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("app.http.starting", out.LogFields{
			"host": cfg.HTTP.Host,
			"port": cfg.HTTP.Port,
		})

		if err := router.Run(cfg.HTTP.Host + ":" + cfg.HTTP.Port); err != nil {
			logger.Error("app.http.failed", out.LogFields{
				"error": err.Error(),
			})
			sigChan <- syscall.SIGTERM
		}
	}()

	sig := <-sigChan
	logger.Info("app.shutdown.initiated", out.LogFields{
		"signal": sig.String(),
	})
}
