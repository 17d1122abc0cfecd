package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/noah-isme/student-records-api/internal/service"
	"github.com/noah-isme/student-records-api/pkg/config"
)

func main() {
	subject := flag.String("subject", "", "Identity recorded in the token's sub claim")
	expiry := flag.Duration("expiry", 0, "Token lifetime (defaults to JWT_EXPIRATION)")
	flag.Parse()

	if *subject == "" {
		log.Fatal("-subject is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.JWT.Secret == "" {
		log.Fatal("JWT_SECRET must be set to issue tokens")
	}

	ttl := cfg.JWT.Expiration
	if *expiry > 0 {
		ttl = *expiry
	}

	tokens := service.NewTokenService(service.TokenConfig{Secret: cfg.JWT.Secret, Expiry: ttl})
	token, expiresAt, err := tokens.Issue(*subject)
	if err != nil {
		log.Fatalf("failed to issue token: %v", err)
	}

	fmt.Println(token)
	log.Printf("expires at %s", expiresAt.Format(time.RFC3339))
}
