package config

import (
	"fmt"
	"net/http"
	"os"
)

// Config captures everything the binaries read from the environment.
type Config struct {
	Addr           string
	JWTSecret      string
	GoogleClientID string

	AuthRedirectURL string
	CookieDomain    string
	CookieSameSite  http.SameSite

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() Config {
	addr := os.Getenv("SERVER_ADDR")
	if addr == "" {
		addr = "0.0.0.0:8080"
	}

	redirectURL := os.Getenv("AUTH_REDIRECT_URL")
	if redirectURL == "" {
		redirectURL = "/"
	}

	sameSite := http.SameSiteLaxMode
	if os.Getenv("COOKIE_SAMESITE") == "none" {
		sameSite = http.SameSiteNoneMode
	}

	return Config{
		Addr:            addr,
		JWTSecret:       os.Getenv("JWT_SECRET"),
		GoogleClientID:  os.Getenv("GOOGLE_CLIENT_ID"),
		AuthRedirectURL: redirectURL,
		CookieDomain:    os.Getenv("COOKIE_DOMAIN"),
		CookieSameSite:  sameSite,
		SMTPHost:        os.Getenv("SMTP_HOST"),
		SMTPPort:        os.Getenv("SMTP_PORT"),
		SMTPUsername:    os.Getenv("SMTP_USERNAME"),
		SMTPPassword:    os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:        os.Getenv("SMTP_FROM"),
	}
}

// DBConnString assembles the Postgres connection string from the POSTGRES_*
// environment variables.
func DBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		os.Getenv("POSTGRES_USER"),
		os.Getenv("POSTGRES_PASSWORD"),
		os.Getenv("POSTGRES_HOST"),
		os.Getenv("POSTGRES_PORT"),
		os.Getenv("POSTGRES_DB"),
	)
}
