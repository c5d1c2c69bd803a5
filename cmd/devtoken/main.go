// Command devtoken prints a bearer token for a user id, signed with
// JWT_SECRET. Used against stores that have no users table.
package main

import (
	"flag"
	"fmt"
	"os"

	"reup-focus-backend/internal/auth"
	"reup-focus-backend/internal/config"
	"reup-focus-backend/internal/logger"
)

func main() {
	userID := flag.Int("user", 1, "user id to put in the token")
	flag.Parse()

	log := logger.GetDefault()
	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Error("JWT_SECRET is not set")
		os.Exit(1)
	}
	if *userID <= 0 {
		log.Error("user id must be positive", "user", *userID)
		os.Exit(1)
	}

	token, err := auth.GenerateToken([]byte(cfg.JWTSecret), *userID)
	if err != nil {
		log.Error("sign token", "error", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
