package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config regroupe toute la configuration du pipeline, chargée depuis
// l'environnement (un .env est chargé en amont par main via godotenv)
type Config struct {
	// Connexion PostgreSQL (entrepôt de données)
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Périmètre des requêtes
	StoreCodes  []string // points de vente autorisés
	ProductLine string   // gamme de produits (une seule par run)

	// Préparation des données
	OutlierThreshold float64 // quantité max admise par ticket
	RollingWindow    int     // fenêtre glissante (jours)
	HolidayRegion    string  // calendrier des jours fériés

	// Prévision
	StalenessDays     int     // ancienneté max de la dernière vente
	EncoderSmoothing  float64 // lissage du target encoding
	ModelTrees        int
	ModelLearningRate float64
	ModelMaxDepth     int

	// Réassort
	SafetyFactor float64 // part de la demande gardée en stock de sécurité

	// Export
	ParquetExportDir string // vide = pas de snapshot parquet
}

// Load construit la configuration à partir des variables d'environnement,
// avec des valeurs par défaut pour tout ce qui n'est pas renseigné
func Load() (*Config, error) {
	cfg := &Config{
		DBHost:           getEnv("DB_HOST", "localhost"),
		DBPort:           getEnv("DB_PORT", "5432"),
		DBUser:           getEnv("DB_USER", "reassort"),
		DBPassword:       getEnv("DB_PASSWORD", "reassort"),
		DBName:           getEnv("DB_NAME", "reassortdb"),
		DBSSLMode:        getEnv("DB_SSLMODE", "disable"),
		StoreCodes:       splitList(getEnv("STORE_CODES", "AND,CAS,CC85,MAR,SAL,SER,ZGZ")),
		ProductLine:      getEnv("PRODUCT_LINE", "PREMIUM"),
		HolidayRegion:    getEnv("HOLIDAY_REGION", "ES"),
		ParquetExportDir: getEnv("PARQUET_EXPORT_DIR", ""),
	}

	var err error
	if cfg.OutlierThreshold, err = getEnvFloat("OUTLIER_THRESHOLD", 15); err != nil {
		return nil, err
	}
	if cfg.RollingWindow, err = getEnvInt("ROLLING_WINDOW", 7); err != nil {
		return nil, err
	}
	if cfg.StalenessDays, err = getEnvInt("STALENESS_DAYS", 90); err != nil {
		return nil, err
	}
	if cfg.EncoderSmoothing, err = getEnvFloat("ENCODER_SMOOTHING", 10); err != nil {
		return nil, err
	}
	if cfg.ModelTrees, err = getEnvInt("MODEL_TREES", 100); err != nil {
		return nil, err
	}
	if cfg.ModelLearningRate, err = getEnvFloat("MODEL_LEARNING_RATE", 0.08); err != nil {
		return nil, err
	}
	if cfg.ModelMaxDepth, err = getEnvInt("MODEL_MAX_DEPTH", 5); err != nil {
		return nil, err
	}
	if cfg.SafetyFactor, err = getEnvFloat("SAFETY_FACTOR", 0.20); err != nil {
		return nil, err
	}

	if len(cfg.StoreCodes) == 0 {
		return nil, fmt.Errorf("config: STORE_CODES ne peut pas être vide")
	}
	return cfg, nil
}

// ConnString assemble la chaîne de connexion lib/pq
func (c *Config) ConnString() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("config: %s invalide (%q): %w", key, raw, err)
	}
	return v, nil
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("config: %s invalide (%q): %w", key, raw, err)
	}
	return v, nil
}

// splitList découpe une liste séparée par des virgules en ignorant les vides
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
