package config

import (
	"os"
)

// Config carries every credential and option the server needs. It is loaded
// once in main and handed to the services explicitly, instead of each service
// reading the environment on its own.
type Config struct {
	Port          string
	SiteURL       string // absolute base URL used for share links and OAuth callbacks
	DatabaseURL   string
	SessionSecret string
	CORSOrigin    string

	SMTP   SMTPConfig
	Google GoogleConfig
	LLM    LLMConfig
	Imgur  ImgurConfig
}

type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// Enabled reports whether enough SMTP settings are present to send mail.
func (c SMTPConfig) Enabled() bool {
	return c.Host != "" && c.Port != "" && c.Username != "" && c.Password != "" && c.From != ""
}

type GoogleConfig struct {
	ClientID     string
	ClientSecret string
}

type LLMConfig struct {
	BaseURL string
	Token   string
	Model   string
}

type ImgurConfig struct {
	ClientID string
}

// Load reads the configuration from the environment. Call godotenv.Load
// before this if a .env file should be honored.
func Load() *Config {
	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		SiteURL:       getEnv("SITE_URL", "http://localhost:8080"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		SessionSecret: getEnv("SESSION_SECRET", "secret_key_change_me"),
		CORSOrigin:    getEnv("CORS_ORIGIN", "*"),
		SMTP: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     os.Getenv("SMTP_PORT"),
			Username: os.Getenv("SMTP_USER"),
			Password: os.Getenv("SMTP_PASS"),
			From:     os.Getenv("SMTP_FROM"),
		},
		Google: GoogleConfig{
			ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
			ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		},
		LLM: LLMConfig{
			BaseURL: os.Getenv("LLM_BASE_URL"),
			Token:   os.Getenv("LLM_TOKEN"),
			Model:   getEnv("LLM_MODEL", "gpt-4o-mini"),
		},
		Imgur: ImgurConfig{
			ClientID: os.Getenv("IMGUR_CLIENT_ID"),
		},
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
