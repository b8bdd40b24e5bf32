package main

import (
	"fmt"
	"log"
	"os"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"guestdesk/backend/internal/auth"
	"guestdesk/backend/internal/config"
	"guestdesk/backend/internal/metadata"
	"guestdesk/backend/internal/models"
)

// Operator CLI for tasks that should not go through the HTTP surface:
// seeding roles before any admin exists, inspecting the directory, and
// force-verifying accounts when no mail transport is configured.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}
	cfg := config.Load()

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
		log.Fatalf("failed to connect database: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	meta := metadata.NewService(rdb)

	provider, err := auth.NewProvider(db, rdb, cfg.JWTSecret)
	if err != nil {
		log.Fatalf("failed to initialize auth provider: %v", err)
	}

	if len(os.Args) < 2 {
		usage()
	}

	switch os.Args[1] {
	case "users":
		listUsers(provider, meta)
	case "role":
		if len(os.Args) < 4 {
			usage()
		}
		seedRole(provider, meta, os.Args[2], os.Args[3])
	case "verify":
		if len(os.Args) < 3 {
			usage()
		}
		verify(db, os.Args[2])
	default:
		usage()
	}
}

func usage() {
	fmt.Println("Usage: admin <command> [args]")
	fmt.Println("  users                    list accounts and their profiles")
	fmt.Println("  role <email> <role>      set a user's role (admin|staff|guest)")
	fmt.Println("  verify <email>           mark an account's email as verified")
	os.Exit(1)
}

func listUsers(provider *auth.Provider, meta metadata.Store) {
	accounts, err := provider.ListAccounts()
	if err != nil {
		log.Fatalf("list accounts: %v", err)
	}
	profiles, err := meta.ReadAll()
	if err != nil {
		log.Fatalf("read metadata: %v", err)
	}
	for _, a := range accounts {
		profile := profiles[a.UID]
		role := profile.Role
		if role == "" {
			role = models.RoleGuest
		}
		fmt.Printf("%s  %-30s  role=%-6s room=%-5s verified=%v\n",
			a.UID, a.Email, role, profile.RoomNumber, a.EmailVerified)
	}
}

func seedRole(provider *auth.Provider, meta metadata.Store, email, roleArg string) {
	role := models.UserRole(roleArg)
	if !role.Valid() {
		log.Fatalf("invalid role %q", roleArg)
	}
	accounts, err := provider.ListAccounts()
	if err != nil {
		log.Fatalf("list accounts: %v", err)
	}
	for _, a := range accounts {
		if a.Email == email {
			if err := meta.Save(a.UID, metadata.Patch{Role: &role, Email: &a.Email}); err != nil {
				log.Fatalf("save role: %v", err)
			}
			fmt.Printf("%s is now %s\n", email, role)
			return
		}
	}
	log.Fatalf("no account for %s", email)
}

func verify(db *gorm.DB, email string) {
	result := db.Model(&auth.Account{}).Where("email = ?", email).Update("email_verified", true)
	if result.Error != nil {
		log.Fatalf("verify: %v", result.Error)
	}
	if result.RowsAffected == 0 {
		log.Fatalf("no account for %s", email)
	}
	fmt.Printf("%s verified\n", email)
}
