package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/danil228cmd/danisa-shop-bot/internal/config"
	"github.com/danil228cmd/danisa-shop-bot/internal/handler"
	"github.com/danil228cmd/danisa-shop-bot/internal/middleware"
	"github.com/danil228cmd/danisa-shop-bot/internal/repository"
	"github.com/danil228cmd/danisa-shop-bot/internal/service"
	"github.com/danil228cmd/danisa-shop-bot/internal/telegram"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	if err := godotenv.Load(); err != nil {
		log.Warn("no .env file found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Error("load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Storage backend: postgres when a database URL is configured,
	// flat files otherwise.
	var store repository.Store
	backend := "files"
	if cfg.DB.UsePostgres() {
		pool, err := pgxpool.New(ctx, cfg.DB.DSN())
		if err != nil {
			log.Error("connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		if err := pool.Ping(ctx); err != nil {
			log.Error("ping database", "error", err)
			os.Exit(1)
		}

		pg := repository.NewPostgres(pool)
		if err := pg.Migrate(ctx); err != nil {
			log.Error("migrate database", "error", err)
			os.Exit(1)
		}
		store = pg
		backend = "postgres"
	} else {
		fs, err := repository.OpenFileStore(cfg.DB.DataDir)
		if err != nil {
			log.Error("open file store", "error", err)
			os.Exit(1)
		}
		store = fs
	}
	log.Info("storage ready", "backend", backend)

	// Telegram
	tgClient := telegram.NewClient(cfg.Telegram.BotToken)
	notifier := telegram.NewNotifier(tgClient, cfg.Telegram.AdminChatID, log)
	bot := telegram.NewBot(tgClient, cfg.Server.URL, cfg.Admin.Password, cfg.Admin.TelegramID, log)

	// Services
	catalogSvc := service.NewCatalogService(store)
	cartSvc := service.NewCartService(store)
	orderSvc := service.NewOrderService(store, notifier)

	// Handlers
	catalogH := handler.NewCatalogHandler(catalogSvc, cfg.Admin.Password, log)
	cartH := handler.NewCartHandler(cartSvc, log)
	orderH := handler.NewOrderHandler(orderSvc, cfg.Admin.Password, log)
	telegramH := handler.NewTelegramHandler(bot)
	healthH := handler.NewHealthHandler(store, backend)

	// Router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID(log))
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Content-Type"},
	}))
	router.NoRoute(handler.NotFound)

	router.GET("/healthz", healthH.Healthz)
	router.POST("/telegram", telegramH.Webhook)

	api := router.Group("/api")
	{
		api.GET("/categories", catalogH.ListCategories)
		api.POST("/categories", catalogH.CreateCategory)
		api.DELETE("/categories/:id", catalogH.DeleteCategory)

		api.GET("/subcategories", catalogH.ListSubcategories)
		api.GET("/subcategories/:id", catalogH.ListSubcategories)
		api.POST("/subcategories", catalogH.CreateSubcategory)
		api.DELETE("/subcategories/:id", catalogH.DeleteSubcategory)

		api.GET("/products", catalogH.ListProducts)
		api.GET("/products/:id", catalogH.GetProduct)
		api.POST("/products", catalogH.CreateProduct)
		api.PUT("/products/:id", catalogH.UpdateProduct)
		api.DELETE("/products/:id", catalogH.DeleteProduct)

		api.GET("/cart/:userId", cartH.GetCart)
		api.POST("/cart/:userId", cartH.SaveCart)

		api.GET("/orders", orderH.ListOrders)
		api.GET("/orders/:id", orderH.GetOrder)
		api.POST("/orders", orderH.CreateOrder)
		api.POST("/orders/:id/complete", orderH.CompleteOrder)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("starting HTTP server", "port", cfg.Server.Port, "backend", backend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", "error", err)
	}
	log.Info("server stopped")
}
