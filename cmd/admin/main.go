package main

import (
	"fmt"
	"log"
	"os"

	"skillswap/backend/internal/config"
	"skillswap/backend/internal/notify"
	"skillswap/backend/internal/session"
	"skillswap/backend/internal/storage"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Small ops CLI: inspect a user's rating, list their sessions, or force-close
// a session that is stuck open.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	s := storage.NewStorageService(db, nil) // No redis needed for admin CLI
	lifecycle := session.NewService(s, notify.LogNotifier{})

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <rating|sessions|force-close> [args]")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "rating":
		if len(os.Args) < 3 {
			fmt.Println("Usage: admin rating <user_id>")
			os.Exit(1)
		}
		avg, ok, err := lifecycle.AverageRating(os.Args[2])
		if err != nil {
			log.Fatalf("failed to compute rating: %v", err)
		}
		if !ok {
			fmt.Println("No ratings yet for this user.")
			return
		}
		fmt.Printf("Average rating: %.2f\n", avg)

	case "sessions":
		if len(os.Args) < 3 {
			fmt.Println("Usage: admin sessions <user_id>")
			os.Exit(1)
		}
		sessions, err := s.ListSessionsForRating(os.Args[2])
		if err != nil {
			log.Fatalf("failed to list sessions: %v", err)
		}
		for _, sess := range sessions {
			fmt.Printf("%s  %-9s  closed=%v  skill=%s\n", sess.ID, sess.Status, sess.SessionClosed, sess.Skill)
		}

	case "force-close":
		if len(os.Args) < 3 {
			fmt.Println("Usage: admin force-close <session_id>")
			os.Exit(1)
		}
		sess, err := s.CancelSession(os.Args[2])
		if err != nil {
			log.Fatalf("failed to close session: %v", err)
		}
		fmt.Printf("Session %s canceled and closed.\n", sess.ID)

	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}
}
