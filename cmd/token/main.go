// Command token issues a bearer token for local development, standing in for
// the sign-in flow that normally provides the caller's identity.
//
//	go run ./cmd/token -email reader@example.com
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/mail"
	"os"
	"time"

	"github.com/joho/godotenv"

	"newsfox/internal/config"
	hauth "newsfox/internal/handler/http/auth"
	pkgconfig "newsfox/pkg/config"
)

func main() {
	configPath := flag.String("config", pkgconfig.GetEnvString("NEWSFOX_CONFIG", "configs/newsfox.yaml"), "path to the YAML config file")
	email := flag.String("email", "", "identity to embed in the token")
	ttl := flag.Duration("ttl", 0, "token lifetime (default: jwt.expiry_hours from config)")
	asJSON := flag.Bool("json", false, "print token and expiry as JSON")
	flag.Parse()

	_ = godotenv.Load()

	if err := run(os.Stdout, *configPath, *email, *ttl, *asJSON); err != nil {
		fmt.Fprintln(os.Stderr, "token:", err)
		os.Exit(1)
	}
}

func run(w io.Writer, configPath, email string, ttl time.Duration, asJSON bool) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("invalid -email: %w", err)
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	secret := cfg.Security.JWTSecret()
	if secret == "" {
		return fmt.Errorf("%s is not set", cfg.Security.JWT.SecretEnv)
	}
	if ttl <= 0 {
		ttl = cfg.Security.JWTExpiry()
	}

	issuer := hauth.Issuer{Secret: []byte(secret), Name: cfg.Security.JWT.Issuer, TTL: ttl}
	token, exp, err := issuer.Issue(email)
	if err != nil {
		return err
	}

	if asJSON {
		return json.NewEncoder(w).Encode(struct {
			Token     string    `json:"token"`
			ExpiresAt time.Time `json:"expiresAt"`
		}{token, exp})
	}
	_, err = fmt.Fprintln(w, token)
	return err
}
