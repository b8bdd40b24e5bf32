package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"guestdesk/backend/internal/api/handler"
	"guestdesk/backend/internal/auth"
	"guestdesk/backend/internal/config"
	"guestdesk/backend/internal/identity"
	"guestdesk/backend/internal/metadata"
	"guestdesk/backend/internal/notify"
	"guestdesk/backend/internal/pubsub"
	"guestdesk/backend/internal/store"
	"guestdesk/backend/internal/synchub"
	"guestdesk/backend/internal/upload"
)

func setupDependencies(cfg config.Config) (*gorm.DB, *redis.Client) {
	var (
		db  *gorm.DB
		err error
	)
	if cfg.AuthDBDSN != "" {
		db, err = gorm.Open(postgres.Open(cfg.AuthDBDSN), &gorm.Config{})
	} else {
		db, err = gorm.Open(sqlite.Open(cfg.SQLitePath), &gorm.Config{})
	}
	if err != nil {
		log.Fatalf("Failed to connect account database: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	log.Println("Database and Redis connections established.")
	return db, rdb
}

func main() {
	log.Println("Starting GuestDesk Backend...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}
	cfg := config.Load()

	db, rdb := setupDependencies(cfg)

	meta := metadata.NewService(rdb)
	bus := pubsub.New()
	s := store.NewService(bus, meta)
	if cfg.SeedDemoData {
		s.SeedDemoComplaint()
	}

	provider, err := auth.NewProvider(db, rdb, cfg.JWTSecret)
	if err != nil {
		log.Fatalf("Failed to initialize auth provider: %v", err)
	}
	mapper := identity.NewMapper(identity.Bootstrap{
		AdminEmail: cfg.BootstrapAdminEmail,
		StaffEmail: cfg.BootstrapStaffEmail,
	})

	// The identity mapper is consulted on every auth-state change; keep a
	// trace of who the provider currently sees.
	provider.OnStateChanged(func(ident *auth.Identity) {
		snapshot, err := meta.ReadAll()
		if err != nil {
			log.Printf("ERROR: Failed to read metadata on auth change: %v", err)
			return
		}
		if user := mapper.Map(ident, snapshot); user != nil {
			log.Printf("Auth state: %s signed in as %s", user.Email, user.Role)
		} else {
			log.Println("Auth state: signed out")
		}
	})

	var relay notify.Relay
	if cfg.TelegramBotToken != "" {
		tg, err := notify.NewTelegramRelay(cfg.TelegramBotToken, cfg.TelegramChatID)
		if err != nil {
			log.Printf("WARNING: Telegram relay disabled: %v", err)
		} else {
			relay = tg
		}
	}
	emitter := notify.NewEmitter(s, relay)
	defer emitter.Close()

	uploads, err := upload.NewService(cfg.UploadDir, cfg.UploadURLPrefix)
	if err != nil {
		log.Fatalf("Failed to initialize upload storage: %v", err)
	}

	hub := synchub.NewManager(s)
	go hub.Run()

	r := gin.Default()
	h := handler.NewHandler(s, provider, mapper, meta, hub, uploads)
	h.RegisterRoutes(r)

	server := &http.Server{
		Addr:           cfg.Addr,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Printf("Listening on %s", cfg.Addr)
	log.Fatal(server.ListenAndServe())
}
