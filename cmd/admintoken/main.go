// admintoken выпускает admin-токен для изменяющих запросов API предложений.
// Секрет берётся из JWT_SECRET, тот же что у cmd/server.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/linemk/travel-insurance/internal/config"
	security "github.com/linemk/travel-insurance/internal/jwt-new"
)

func main() {
	var (
		subject string
		ttl     time.Duration
	)
	flag.StringVar(&subject, "subject", "admin", "token subject")
	flag.DurationVar(&ttl, "ttl", 0, "token lifetime, JWT_TOKEN_TTL minutes by default")
	flag.Parse()

	cfg, err := config.LoadJWTFromEnv()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if ttl == 0 {
		ttl = time.Duration(cfg.TokenTTL) * time.Minute
	}

	token, err := security.NewToken(subject, ttl, cfg.Secret)
	if err != nil {
		log.Fatalf("failed to create token: %v", err)
	}
	fmt.Println(token)
}
