package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	cartapp "github.com/wyfcoding/eshop/internal/cart/application"
	cartdomain "github.com/wyfcoding/eshop/internal/cart/domain"
	cartmysql "github.com/wyfcoding/eshop/internal/cart/infrastructure/persistence/mysql"
	carthttp "github.com/wyfcoding/eshop/internal/cart/interfaces/http"
	catalogapp "github.com/wyfcoding/eshop/internal/catalog/application"
	catalogdomain "github.com/wyfcoding/eshop/internal/catalog/domain"
	catalogmessaging "github.com/wyfcoding/eshop/internal/catalog/infrastructure/messaging"
	catalogmysql "github.com/wyfcoding/eshop/internal/catalog/infrastructure/persistence/mysql"
	catalogredis "github.com/wyfcoding/eshop/internal/catalog/infrastructure/persistence/redis"
	"github.com/wyfcoding/eshop/internal/catalog/infrastructure/seed"
	cataloghttp "github.com/wyfcoding/eshop/internal/catalog/interfaces/http"
	notificationapp "github.com/wyfcoding/eshop/internal/notification/application"
	notificationdomain "github.com/wyfcoding/eshop/internal/notification/domain"
	notificationmysql "github.com/wyfcoding/eshop/internal/notification/infrastructure/persistence/mysql"
	"github.com/wyfcoding/eshop/internal/notification/infrastructure/sender"
	notificationconsumer "github.com/wyfcoding/eshop/internal/notification/interfaces/consumer"
	notificationhttp "github.com/wyfcoding/eshop/internal/notification/interfaces/http"
	orderapp "github.com/wyfcoding/eshop/internal/order/application"
	orderdomain "github.com/wyfcoding/eshop/internal/order/domain"
	ordermessaging "github.com/wyfcoding/eshop/internal/order/infrastructure/messaging"
	ordermysql "github.com/wyfcoding/eshop/internal/order/infrastructure/persistence/mysql"
	orderhttp "github.com/wyfcoding/eshop/internal/order/interfaces/http"
	userapp "github.com/wyfcoding/eshop/internal/user/application"
	usermessaging "github.com/wyfcoding/eshop/internal/user/infrastructure/messaging"
	usermysql "github.com/wyfcoding/eshop/internal/user/infrastructure/persistence/mysql"
	userhttp "github.com/wyfcoding/eshop/internal/user/interfaces/http"
	"github.com/wyfcoding/pkg/cache"
	"github.com/wyfcoding/pkg/config"
	"github.com/wyfcoding/pkg/database"
	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/pkg/messagequeue/kafka"
	"github.com/wyfcoding/pkg/messagequeue/outbox"
	"github.com/wyfcoding/pkg/metrics"
	"github.com/wyfcoding/pkg/middleware"
)

var configPath = flag.String("config", "configs/config.toml", "config file path")

// Config extends the shared config with shop-specific settings.
type Config struct {
	config.Config `mapstructure:",squash"`
	Auth          struct {
		JWTSecret    string `mapstructure:"jwt_secret" toml:"jwt_secret"`
		TokenTTLMins int    `mapstructure:"token_ttl_minutes" toml:"token_ttl_minutes"`
	} `mapstructure:"auth" toml:"auth"`
	Catalog struct {
		CacheTTLSecs int `mapstructure:"cache_ttl_seconds" toml:"cache_ttl_seconds"`
	} `mapstructure:"catalog" toml:"catalog"`
	SMTP struct {
		Host     string `mapstructure:"host" toml:"host"`
		Port     string `mapstructure:"port" toml:"port"`
		Username string `mapstructure:"username" toml:"username"`
		Password string `mapstructure:"password" toml:"password"`
		From     string `mapstructure:"from" toml:"from"`
	} `mapstructure:"smtp" toml:"smtp"`
}

func main() {
	flag.Parse()

	// 1. Config
	var cfg Config
	if err := config.Load(*configPath, &cfg); err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	// 2. Logging
	logCfg := &logging.Config{Service: cfg.Server.Name, Level: cfg.Log.Level}
	logger := logging.NewFromConfig(logCfg)
	slog.SetDefault(logger.Logger)

	// 3. Metrics
	metricsImpl := metrics.NewMetrics(cfg.Server.Name)

	// 4. Database
	db, err := database.NewDB(cfg.Data.Database, cfg.CircuitBreaker, logger, metricsImpl)
	if err != nil {
		slog.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	if cfg.Server.Environment == "dev" {
		if err := db.RawDB().AutoMigrate(
			&usermysql.UserModel{},
			&catalogdomain.Product{},
			&cartdomain.Cart{},
			&cartdomain.CartItem{},
			&orderdomain.Order{},
			&orderdomain.OrderItem{},
			&notificationdomain.Notification{},
			&outbox.Message{},
		); err != nil {
			slog.Error("failed to migrate database", "error", err)
		}
		if err := seed.Products(context.Background(), db.RawDB()); err != nil {
			slog.Error("failed to seed catalog", "error", err)
		}
	}

	// 5. Kafka & Outbox
	kafkaProducer := kafka.NewProducer(&cfg.MessageQueue.Kafka, logger, metricsImpl)
	outboxMgr := outbox.NewManager(db.RawDB(), logger.Logger)
	pusher := func(ctx context.Context, topic, key string, payload []byte) error {
		return kafkaProducer.PublishToTopic(ctx, topic, []byte(key), payload)
	}
	outboxProcessor := outbox.NewProcessor(outboxMgr, pusher, 100, 2*time.Second)

	// 6. Redis
	redisCache, err := cache.NewRedisCache(&cfg.Data.Redis, cfg.CircuitBreaker, logger, metricsImpl)
	if err != nil {
		slog.Error("failed to init redis", "error", err)
	}

	// 7. Repositories
	userRepo := usermysql.NewUserRepository(db.RawDB())
	productRepo := catalogmysql.NewProductRepository(db.RawDB())
	cartRepo := cartmysql.NewCartRepository(db.RawDB())
	orderRepo := ordermysql.NewOrderRepository(db.RawDB())
	notificationRepo := notificationmysql.NewNotificationRepository(db.RawDB())

	cacheTTL := time.Duration(cfg.Catalog.CacheTTLSecs) * time.Second
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	var productCache catalogapp.ProductCache
	if redisCache != nil {
		productCache = catalogredis.NewProductCache(redisCache.GetClient(), cacheTTL)
	}

	// 8. Application services
	tokenTTL := time.Duration(cfg.Auth.TokenTTLMins) * time.Minute
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	tokens := userapp.NewTokenService(cfg.Auth.JWTSecret, tokenTTL)

	userCommands := userapp.NewUserCommandService(userRepo, tokens, usermessaging.NewOutboxPublisher(outboxMgr))
	userQueries := userapp.NewUserQueryService(userRepo)

	catalogCommands := catalogapp.NewCatalogCommandService(productRepo, productCache, catalogmessaging.NewOutboxPublisher(outboxMgr))
	catalogQueries := catalogapp.NewCatalogQueryService(productRepo, productCache)

	cartSvc := cartapp.NewCartService(cartRepo, productRepo, userRepo)

	orderCommands := orderapp.NewOrderCommandService(orderRepo, cartRepo, productRepo, ordermessaging.NewOutboxPublisher(outboxMgr))
	orderQueries := orderapp.NewOrderQueryService(orderRepo)

	mailSender := sender.NewSMTPSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From)
	notifications := notificationapp.NewNotificationService(notificationRepo, mailSender)

	// 9. Consumers
	orderEventsHandler := notificationconsumer.NewOrderEventsHandler(notifications, logger.Logger)
	consumerTopics := []string{orderdomain.OrderCreatedEventType, orderdomain.OrderStatusChangedEventType}
	consumers := make([]*kafka.Consumer, 0, len(consumerTopics))
	for _, topic := range consumerTopics {
		consumerCfg := cfg.MessageQueue.Kafka
		consumerCfg.Topic = topic
		if consumerCfg.GroupID == "" {
			consumerCfg.GroupID = "shop-notification-group"
		}
		consumer := kafka.NewConsumer(&consumerCfg, logger, metricsImpl)
		consumer.Start(context.Background(), 3, orderEventsHandler.Handle)
		consumers = append(consumers, consumer)
	}

	// 10. HTTP
	if cfg.Server.Environment == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS())

	auth := userhttp.AuthMiddleware(tokens)
	admin := userhttp.RequireAdmin()

	api := r.Group("/api")
	userhttp.NewHandler(userCommands, userQueries).RegisterRoutes(api, auth)
	cataloghttp.NewHandler(catalogCommands, catalogQueries).RegisterRoutes(api, auth, admin)
	carthttp.NewHandler(cartSvc).RegisterRoutes(api, auth)
	orderhttp.NewHandler(orderCommands, orderQueries).RegisterRoutes(api, auth, admin)
	notificationhttp.NewHandler(notifications).RegisterRoutes(api, auth)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "service": cfg.Server.Name})
	})

	// 11. Run
	g, ctx := errgroup.WithContext(context.Background())

	g.Go(func() error {
		outboxProcessor.Start()
		<-ctx.Done()
		outboxProcessor.Stop()
		return nil
	})

	g.Go(func() error {
		addr := fmt.Sprintf(":%d", cfg.Server.HTTP.Port)
		server := &http.Server{Addr: addr, Handler: r}
		slog.Info("HTTP server starting", "addr", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-quit:
			slog.Info("shutting down servers...")
		case <-ctx.Done():
			slog.Info("context cancelled, shutting down...")
		}
		for _, c := range consumers {
			if c != nil {
				_ = c.Close()
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		slog.Error("server exited with error", "error", err)
	}
}
