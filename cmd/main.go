package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"skillswap/backend/internal/api/handler"
	"skillswap/backend/internal/chathub"
	"skillswap/backend/internal/config"
	"skillswap/backend/internal/media"
	"skillswap/backend/internal/models"
	"skillswap/backend/internal/notify"
	"skillswap/backend/internal/session"
	"skillswap/backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupDependencies(cfg *config.Config) (*gorm.DB, *redis.Client) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	ctx := context.Background()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Message{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Database and Redis connections established, migrations complete.")
	return db, rdb
}

func main() {
	log.Println("Starting SkillSwap session backend...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	db, rdb := setupDependencies(cfg)
	s := storage.NewStorageService(db, rdb)

	var notifier session.Notifier = notify.LogNotifier{}
	if cfg.TelegramBotToken != "" {
		tn, err := notify.NewTelegramNotifier(cfg.TelegramBotToken, s)
		if err != nil {
			log.Printf("Telegram notifier disabled: %v", err)
		} else {
			notifier = tn
		}
	}

	lifecycle := session.NewService(s, notifier)
	hub := chathub.NewManagerService(s, lifecycle)
	go hub.Run()

	mediaStore, err := media.NewDiskStore(cfg.UploadDir, cfg.UploadBaseURL)
	if err != nil {
		log.Fatalf("Failed to set up media store: %v", err)
	}

	r := gin.Default()
	h := handler.NewHandler(hub, lifecycle, mediaStore, []byte(cfg.JWTSecret))

	r.Static("/uploads/message-uploads", cfg.UploadDir)
	r.GET("/auth/dev-token", h.GetDevToken)

	auth := r.Group("/", h.AuthMiddleware())
	{
		auth.GET("/ws", h.ServeWebSocket)

		auth.POST("/sessions/request", h.RequestSession)
		auth.POST("/sessions/accept", h.AcceptSession)
		auth.POST("/sessions/schedule", h.ScheduleSession)
		auth.POST("/sessions/mark-session", h.MarkSession)
		auth.GET("/sessions/pending", h.GetPendingSessions)
		auth.GET("/sessions/connections", h.GetConnections)
		auth.GET("/sessions/completed", h.GetCompletedSessions)
		auth.GET("/sessions/canceled", h.GetCanceledSessions)
		auth.GET("/users/:userId/rating", h.GetUserRating)

		auth.GET("/chat/:sessionId", h.GetChatHistory)
		auth.POST("/chat/upload-media", h.UploadMedia)
	}

	server := &http.Server{
		Addr:           cfg.ListenAddr,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Fatal(server.ListenAndServe())
}
