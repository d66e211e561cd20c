package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config enthält alle Konfigurationsparameter aus Umgebungsvariablen.
type Config struct {
	DBHost     string `envconfig:"DB_HOST" required:"true"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" required:"true"`
	DBPassword string `envconfig:"DB_PASSWORD" required:"true"`
	DBName     string `envconfig:"DB_NAME" required:"true"`

	HTTPPort string `envconfig:"HTTP_PORT" default:"4242"`

	// Quelle des Korpus: file, http oder s3
	CorpusSource string `envconfig:"CORPUS_SOURCE" default:"file"`
	CorpusPath   string `envconfig:"CORPUS_PATH" default:"data/shin_college_data.json"`
	CorpusURL    string `envconfig:"CORPUS_URL"`
	CorpusBucket string `envconfig:"CORPUS_S3_BUCKET"`
	CorpusKey    string `envconfig:"CORPUS_S3_KEY" default:"shin_college_data.json"`

	// Leer = kein periodisches Neuladen
	CorpusReloadSchedule string `envconfig:"CORPUS_RELOAD_SCHEDULE"`
	SortThemes           bool   `envconfig:"SORT_THEMES" default:"true"`

	SearchMinLength int    `envconfig:"SEARCH_MIN_LENGTH" default:"2"`
	HistoryLimit    int    `envconfig:"HISTORY_LIMIT" default:"50"`
	DefaultLocale   string `envconfig:"DEFAULT_LOCALE" default:"pt"`

	S3Key    string `envconfig:"S3_KEY"`
	S3Secret string `envconfig:"S3_SECRET"`
	S3URL    string `envconfig:"S3_URL"`
	S3Region string `envconfig:"S3_REGION" default:"eu-central-1"`
}

// DSN gibt den Data Source Name für die PostgreSQL-Verbindung zurück.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}

// Validate prüft Kombinationen, die envconfig allein nicht abbilden kann.
func (c *Config) Validate() error {
	switch c.CorpusSource {
	case "file":
		if c.CorpusPath == "" {
			return fmt.Errorf("CORPUS_PATH is required for corpus source %q", c.CorpusSource)
		}
	case "http":
		if c.CorpusURL == "" {
			return fmt.Errorf("CORPUS_URL is required for corpus source %q", c.CorpusSource)
		}
	case "s3":
		if c.CorpusBucket == "" || c.S3URL == "" {
			return fmt.Errorf("CORPUS_S3_BUCKET and S3_URL are required for corpus source %q", c.CorpusSource)
		}
	default:
		return fmt.Errorf("unknown corpus source %q", c.CorpusSource)
	}
	if c.DefaultLocale != "pt" && c.DefaultLocale != "jp" {
		return fmt.Errorf("DEFAULT_LOCALE must be pt or jp, got %q", c.DefaultLocale)
	}
	if c.HistoryLimit <= 0 {
		return fmt.Errorf("HISTORY_LIMIT must be positive, got %d", c.HistoryLimit)
	}
	return nil
}

// Load lädt die Konfiguration aus den Umgebungsvariablen.
func Load() (*Config, error) {
	_ = godotenv.Load()
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}
