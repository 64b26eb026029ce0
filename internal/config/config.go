package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env         string
	Port        string
	DatabaseURL string
	RedisURL    string

	JWTSecret   string
	JWTIssuer   string
	JWTAudience string
	JWTExpiry   time.Duration

	BrevoAPIKey     string // BREVO_API_KEY for confirmation/reset emails
	MailFrom        string // MAIL_FROM sender email
	FrontendBaseURL string // base URL for confirm/reset links in emails

	AllowedOriginSuffix string
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	port := viper.GetString("PORT")
	if port == "" {
		port = "8080"
	}
	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	expiryMinutes := viper.GetInt("JWT_EXPIRY_MINUTES")
	if expiryMinutes <= 0 {
		expiryMinutes = 60
	}

	issuer := viper.GetString("JWT_ISSUER")
	if issuer == "" {
		issuer = "inmobiliaria-backend"
	}
	audience := viper.GetString("JWT_AUDIENCE")
	if audience == "" {
		audience = "inmobiliaria-api"
	}

	return &Config{
		Env:                 env,
		Port:                port,
		DatabaseURL:         viper.GetString("DATABASE_URL"),
		RedisURL:            viper.GetString("REDIS_URL"),
		JWTSecret:           viper.GetString("JWT_SECRET"),
		JWTIssuer:           issuer,
		JWTAudience:         audience,
		JWTExpiry:           time.Duration(expiryMinutes) * time.Minute,
		BrevoAPIKey:         viper.GetString("BREVO_API_KEY"),
		MailFrom:            viper.GetString("MAIL_FROM"),
		FrontendBaseURL:     frontendBaseURL(viper.GetString("FRONTEND_BASE_URL")),
		AllowedOriginSuffix: viper.GetString("FRONTEND_URL_ENDS_WITH"),
	}, nil
}

func frontendBaseURL(s string) string {
	s = strings.TrimSpace(strings.TrimSuffix(s, "/"))
	if s == "" {
		return "http://localhost:3000"
	}
	return s
}
