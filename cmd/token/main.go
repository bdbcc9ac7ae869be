// Command token mints a bearer token for local testing against the API.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"huddle-api/config"
	"huddle-api/internal/services"
)

func main() {
	user := flag.String("user", "", "Subject to issue the token for (required)")
	ttl := flag.Duration("ttl", 0, "Token lifetime, defaults to JWT_EXPIRY_MIN")
	flag.Parse()

	if *user == "" {
		fmt.Fprintln(os.Stderr, "usage: token -user <id> [-ttl 1h]")
		os.Exit(1)
	}

	cfg := config.LoadConfig()
	if *ttl > 0 {
		cfg.JWTExpiryMin = max(1, int(ttl.Round(time.Minute)/time.Minute))
	}

	token, lifetime, err := services.NewAuthService(cfg).IssueAccessToken(*user)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to issue token: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(token)
	expiresAt := time.Now().Add(time.Duration(lifetime) * time.Second)
	fmt.Fprintf(os.Stderr, "expires %s\n", expiresAt.UTC().Format(time.RFC3339))
}
