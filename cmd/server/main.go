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

	"cryzo-api/config"
	"cryzo-api/internal/api"
	"cryzo-api/internal/broker"
	"cryzo-api/internal/cache"
	"cryzo-api/internal/llm"
	"cryzo-api/internal/service"
	"cryzo-api/internal/store"
	"cryzo-api/internal/util"

	"github.com/gin-gonic/gin"
)

func main() {

	cfg := config.Load()

	if err := util.InitLogger(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	logger := util.GetLogger()
	logger.Info("Starting cryzo api")

	tp, err := util.InitTracer("cryzo-api", cfg.Observ.JaegerEndpoint)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("Error shutting down tracer: %v", err)
		}
	}()

	db, err := store.NewStore(cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("MongoDB connected")

	searchCache, err := cache.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize cache: %v", err)
	}
	log.Printf("Search cache initialized (%s)", cfg.Cache.Backend)

	llmClient, err := llm.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize LLM client: %v", err)
	}
	log.Printf("LLM client initialized (%s)", cfg.LLM.Provider)

	producer := broker.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicEvents)
	defer producer.Close()
	log.Println("Kafka producer initialized")

	eventPublisher := broker.NewEventPublisher(producer)

	productService := service.NewProductService(db)
	searchService := service.NewSearchService(db, llmClient, searchCache, cfg.Cache.TTL)
	chatService := service.NewChatService(db, llmClient)
	checkoutService := service.NewCheckoutService(cfg.Stripe.SecretKey, cfg.Stripe.FrontendURL, cfg.Stripe.Timeout, eventPublisher)
	orderService := service.NewOrderService(db, eventPublisher)
	ingestService := service.NewIngestService(db, llmClient, eventPublisher)

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	handler := api.NewHandler(
		productService,
		searchService,
		chatService,
		checkoutService,
		ingestService,
		orderService,
		api.Contact{Email: cfg.Contact.Email, Phone: cfg.Contact.Phone},
	)
	handler.SetupRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting HTTP server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
