package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/hbomb79/Tubely/internal/api/auth"
	"github.com/hbomb79/Tubely/pkg/logger"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

var log = logger.Get("Token")

// tubely-token mints a bearer token for the given user, signed with the
// secret Tubely is configured with (JWT_SECRET). Intended for development
// where no identity provider is issuing tokens.
func main() {
	userFlag := flag.String("user", "", "ID of the user the token identifies (a random ID is used if omitted)")
	lifespan := flag.Duration("lifespan", 0, "override the configured token lifespan")
	flag.Parse()

	// The token is written to stdout, so keep logs out of the way
	logger.Log.SetOutput(os.Stderr)

	_ = godotenv.Load()

	var config auth.Config
	if err := cleanenv.ReadEnv(&config); err != nil {
		log.Fatalf("Failed to load auth configuration: %v\n", err)
		os.Exit(1)
	}
	if *lifespan > 0 {
		config.TokenLifespan = *lifespan
	}

	userID := uuid.New()
	if *userFlag != "" {
		parsed, err := uuid.Parse(*userFlag)
		if err != nil {
			log.Fatalf("User ID '%s' is not a valid UUID: %v\n", *userFlag, err)
			os.Exit(1)
		}
		userID = parsed
	}

	token, expiresAt, err := auth.New(config).GenerateToken(userID)
	if err != nil {
		log.Fatalf("Failed to generate token: %v\n", err)
		os.Exit(1)
	}

	log.Infof("Token for user %s expires at %s\n", userID, expiresAt.Format(time.RFC3339))
	fmt.Println(token)
}
