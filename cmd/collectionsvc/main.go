package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/httprate"

	config "github.com/voidbinder/binder-services/configs"
	"github.com/voidbinder/binder-services/internal/collectionsvc/broker"
	svcconfig "github.com/voidbinder/binder-services/internal/collectionsvc/config"
	"github.com/voidbinder/binder-services/internal/collectionsvc/db"
	handlers "github.com/voidbinder/binder-services/internal/collectionsvc/handlers"
	"github.com/voidbinder/binder-services/internal/collectionsvc/schema"
	"github.com/voidbinder/binder-services/internal/collectionsvc/service"
	"github.com/voidbinder/binder-services/internal/collectionsvc/store"
	nats "github.com/voidbinder/binder-services/internal/nats"
	log "github.com/sirupsen/logrus"
)

const SERVICE_NAME = "collection"

var instanceId string

func init() {
	instanceId = config.CreateUniqueInstance(SERVICE_NAME)
	config.Logging(SERVICE_NAME + "_service_" + instanceId)
	config.LoadEnv(SERVICE_NAME)
}

func main() {

	// pg connection; the service stays up without a store, list requests
	// then report source "none"
	dbpool, err := db.Connect()
	if err != nil {
		log.Errorf("unable to connect to DB, running without store: %v", err)
		dbpool = nil
	}
	defer db.ClosePool()
	if dbpool != nil {
		log.Printf("pg connection established successfully")
	}

	cfg := svcconfig.Load()
	sch, err := schema.New(cfg.Categories, cfg.DefaultCategory)
	if err != nil {
		log.Fatalf("invalid category configuration: %v", err)
	}

	cardStore := store.NewCardStore(dbpool)

	// Connect to NATS; collection events are best-effort
	var eventBroker *broker.Broker
	n, err := nats.Connect()
	if err != nil {
		log.Warnf("unable to connect to NATS server, running without collection events: %v", err)
	} else {
		defer n.Conn.Close()
		log.Printf("NATS connection established successfully %s", n.Url)
		eventBroker = broker.NewBroker(n.Conn)
	}

	cardService := service.NewCardService(sch, cardStore, eventBroker)

	// Setup router
	r := chi.NewRouter()
	c := config.CORS()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(config.CustomLoggerMiddleware())
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(c.Handler)

	// to protect the service api from any over requests
	rateLimit := 120
	if rateLimitStr := os.Getenv("RATE_LIMIT"); rateLimitStr != "" {
		rateLimit, err = strconv.Atoi(rateLimitStr)
		if err != nil {
			log.Fatalf("Invalid RATE_LIMIT value: %v", err)
		}
	}
	r.Use(httprate.LimitByIP(rateLimit, 1*time.Minute))

	// Init handlers and routes
	h := handlers.NewHandler(cardService)
	h.SetRoutes(r)

	// Create server with timeout settings
	server := &http.Server{
		Addr:         ":" + os.Getenv("COLLECTION_SERVICE_PORT"),
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()
	log.Infof("%s service running at port %s", SERVICE_NAME, server.Addr)

	// Wait for interrupt signal to gracefully shutdown the server
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("%s service shutdown Failed:%+v", SERVICE_NAME, err)
	}
	log.Infof("%s service gracefully stopped", SERVICE_NAME)
}
