package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rendezvous_server/config"
	"rendezvous_server/metrics"
	"rendezvous_server/routes"
	"rendezvous_server/services"
	"rendezvous_server/socket"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func newStore(ctx context.Context, cfg config.Config) services.Store {
	if cfg.Store.Backend == config.StoreMemory {
		log.Warn("Using in-memory store, data is lost on restart")
		return services.NewMemoryStore()
	}

	log.Info("Initializing DynamoDB client...", "region", cfg.Store.AWSRegion, "tablePrefix", cfg.Store.TablePrefix)
	client, err := services.InitializeDynamoDBClient(ctx, cfg.Store.AWSRegion)
	if err != nil {
		log.Fatalf("Failed to initialize DynamoDB client: %s", err)
	}
	return &services.DynamoStore{Dynamo: &services.DynamoService{Client: client, TablePrefix: cfg.Store.TablePrefix}}
}

func newMediaService(ctx context.Context, cfg config.Config) *services.MediaService {
	if cfg.S3BucketName == "" || cfg.Store.AWSRegion == "" {
		log.Warn("S3_BUCKET_NAME or AWS_REGION not set, media uploads are disabled")
		return &services.MediaService{}
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Store.AWSRegion))
	if err != nil {
		log.Fatalf("Failed to load AWS config: %s", err)
	}
	return services.NewMediaService(s3.NewFromConfig(awsCfg), cfg.S3BucketName)
}

func main() {
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	} else {
		log.Warn("Unknown LOG_LEVEL, keeping info", "level", cfg.LogLevel)
	}

	ctx := context.Background()
	store := newStore(ctx, cfg)
	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()

	// Live channels
	registry := socket.NewRegistry(metricsSvc)
	socketServer := socket.NewSocketServer(registry, cfg.PushBuffer)
	go func() {
		if err := socketServer.Serve(); err != nil {
			log.Error("Socket server stopped", "error", err)
		}
	}()
	defer socketServer.Close()

	// Initialize Services
	profileService := &services.ProfileService{Store: store}
	notificationService := &services.NotificationService{
		Store:    store,
		Profiles: profileService,
		Sessions: registry,
		Metrics:  metricsSvc,
	}
	matchService := &services.MatchService{
		Store:    store,
		Profiles: profileService,
		Notifier: notificationService,
		Metrics:  metricsSvc,
	}
	scheduleService := &services.ScheduleService{
		Store:             store,
		Profiles:          profileService,
		Conflicts:         &services.ConflictDetector{Store: store, Profiles: profileService},
		Notifier:          notificationService,
		Metrics:           metricsSvc,
		MinOverlapMinutes: cfg.Scheduling.MinOverlapMinutes,
	}
	mediaService := newMediaService(ctx, cfg)

	// Register routes
	r := mux.NewRouter()
	r.Handle("/metrics", metricsHandler).Methods(http.MethodGet)
	r.PathPrefix("/socket.io/").Handler(socketServer)
	api := routes.RegisterRoutes(r)
	routes.RegisterProfileRoutes(api, profileService, matchService)
	routes.RegisterMatchRoutes(api, matchService)
	routes.RegisterNotificationRoutes(api, notificationService, cfg.NotificationLimit)
	routes.RegisterScheduleRoutes(api, scheduleService)
	routes.RegisterMediaRoutes(api, mediaService)

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", routes.PartyIDHeader},
		AllowCredentials: true,
	}).Handler(r)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           corsHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Info("Startup time recorded", "duration_ms", time.Since(startTime).Milliseconds(), "store", cfg.Store.Backend)

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server started", "port", cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Server process shutting down")
}
