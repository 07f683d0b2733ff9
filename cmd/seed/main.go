package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"reassort/database"
	"reassort/internal/config"
)

func main() {
	// Charge .env
	if err := godotenv.Load(); err != nil {
		log.Println("Attention: fichier .env non trouvé, utilisation des valeurs par défaut")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("❌ Configuration invalide:", err)
	}

	db, err := database.Open(cfg.ConnString())
	if err != nil {
		log.Fatal("❌ Erreur connexion DB:", err)
	}
	defer db.Close()

	fmt.Println("✅ Connexion PostgreSQL établie")

	days, _ := strconv.Atoi(getEnv("SEED_DAYS", "365"))

	fmt.Println("🌱 Démarrage du seed de l'entrepôt...")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	if err := database.SeedDatabase(db, days, cfg.StoreCodes, cfg.ProductLine); err != nil {
		log.Fatal("❌ Erreur lors du seed:", err)
	}

	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Println("✅ Seed terminé avec succès!")
	fmt.Println()
	fmt.Println("Vous pouvez maintenant lancer un run du pipeline avec:")
	fmt.Println("  go run main.go")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
