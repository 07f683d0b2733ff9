package testhelpers

import (
	"database/sql"
	"fmt"
	"os"
	"testing"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	salesinfra "reassort/internal/sales/infrastructure"
	stockinfra "reassort/internal/stock/infrastructure"
)

// TestContext contient les dépendances pour les tests d'intégration.
// Note: Ne contient PAS les services pour éviter les import cycles
type TestContext struct {
	DB *sql.DB

	// Repositories
	SalesQueryRepo *salesinfra.SalesQueryRepository
	StockQueryRepo *stockinfra.StockQueryRepository
}

// SetupTestDB initialise une connexion à l'entrepôt de test
func SetupTestDB(tb testing.TB) *sql.DB {
	tb.Helper()

	// Charger les variables d'environnement
	_ = godotenv.Load("../../.env")

	db, err := sql.Open("postgres", testConnString())
	if err != nil {
		tb.Fatalf("Failed to open database: %v", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)

	if err := db.Ping(); err != nil {
		tb.Fatalf("Failed to ping database: %v", err)
	}

	return db
}

// SetupTestContext initialise un contexte de test avec DB et repositories
func SetupTestContext(tb testing.TB) *TestContext {
	tb.Helper()

	ctx := &TestContext{}
	ctx.DB = SetupTestDB(tb)
	ctx.SalesQueryRepo = salesinfra.NewSalesQueryRepository(ctx.DB)
	ctx.StockQueryRepo = stockinfra.NewStockQueryRepository(ctx.DB)
	return ctx
}

// Cleanup libère les ressources du contexte de test
func (ctx *TestContext) Cleanup() {
	if ctx.DB != nil {
		ctx.DB.Close()
	}
}

// SkipIfNoDatabase skip le test si l'entrepôt n'est pas disponible
func SkipIfNoDatabase(tb testing.TB) {
	tb.Helper()

	_ = godotenv.Load("../../.env")

	db, err := sql.Open("postgres", testConnString())
	if err != nil {
		tb.Skip("Database not available:", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		tb.Skip("Database not available:", err)
	}
}

func testConnString() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_USER", "reassort"),
		getEnv("DB_PASSWORD", "reassort"),
		getEnv("DB_NAME", "reassortdb"),
		getEnv("DB_SSLMODE", "disable"),
	)
}

// getEnv récupère une variable d'environnement avec fallback
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
