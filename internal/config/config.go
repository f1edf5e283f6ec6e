package config

import (
	"os"
	"strings"
	"time"
)

type Config struct {
	Port        string
	JWTSecret   string
	CORSOrigins []string

	// Base URLs of the upstream entity services.
	CustomersURL  string
	ProductsURL   string
	CategoriesURL string
	HallsURL      string
	TablesURL     string
	PaymentsURL   string
	AuthURL       string
	MailURL       string

	UpstreamTimeout time.Duration
	SessionTTL      time.Duration
}

func Load() *Config {
	return &Config{
		Port:            getEnv("PORT", "8090"),
		JWTSecret:       getEnv("JWT_SECRET", "dev-secret-change-in-production"),
		CORSOrigins:     getList("CORS_ORIGINS", []string{"*"}),
		CustomersURL:    getEnv("CUSTOMERS_URL", "http://localhost:8081/clients"),
		ProductsURL:     getEnv("PRODUCTS_URL", "http://localhost:8083/products"),
		CategoriesURL:   getEnv("CATEGORIES_URL", "http://localhost:8082/category"),
		HallsURL:        getEnv("HALLS_URL", "http://localhost:9001/halls"),
		TablesURL:       getEnv("TABLES_URL", "http://localhost:9000/tables"),
		PaymentsURL:     getEnv("PAYMENTS_URL", "http://localhost:8085/payment"),
		AuthURL:         getEnv("AUTH_URL", "http://localhost:3002"),
		MailURL:         getEnv("MAIL_URL", "http://localhost:9003"),
		UpstreamTimeout: getDuration("UPSTREAM_TIMEOUT", 10*time.Second),
		SessionTTL:      getDuration("SESSION_TTL", 2*time.Hour),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
