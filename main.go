package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"reassort/database"
	"reassort/internal/config"
	forecastapp "reassort/internal/forecast/application"
	forecastdomain "reassort/internal/forecast/domain"
	replenishapp "reassort/internal/replenishment/application"
	replenishdomain "reassort/internal/replenishment/domain"
	replenishinfra "reassort/internal/replenishment/infrastructure"
	salesdomain "reassort/internal/sales/domain"
	salesinfra "reassort/internal/sales/infrastructure"
	sharedinfra "reassort/internal/shared/infrastructure"
	stockinfra "reassort/internal/stock/infrastructure"
)

// main exécute un run complet du pipeline de réassort : lecture de
// l'entrepôt, prévision de demande, calcul du plan, publication.
// Un run à la fois par destination ; l'ordonnanceur externe s'en charge
func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("fichier .env non trouvé, utilisation des valeurs par défaut")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("configuration invalide")
	}

	db, err := database.Open(cfg.ConnString())
	if err != nil {
		log.Fatal().Err(err).Msg("connexion à l'entrepôt impossible")
	}
	defer db.Close()

	calendar, err := salesdomain.NewHolidayCalendar(cfg.HolidayRegion)
	if err != nil {
		log.Fatal().Err(err).Msg("calendrier des jours fériés")
	}

	pool := sharedinfra.NewWorkerPool(0)
	pool.Start()
	defer pool.Stop()

	forecaster := forecastapp.NewForecaster(forecastapp.ForecasterParams{
		Model: forecastdomain.BoosterParams{
			Trees:        cfg.ModelTrees,
			LearningRate: cfg.ModelLearningRate,
			MaxDepth:     cfg.ModelMaxDepth,
		},
		Smoothing:     cfg.EncoderSmoothing,
		StalenessDays: cfg.StalenessDays,
	}, pool, log)

	var archiver replenishapp.PlanArchiver
	if cfg.ParquetExportDir != "" {
		archiver = replenishinfra.NewParquetArchiver(cfg.ParquetExportDir)
	}

	pipeline := replenishapp.NewPipeline(
		replenishapp.PipelineParams{
			StoreCodes:       cfg.StoreCodes,
			ProductLine:      cfg.ProductLine,
			OutlierThreshold: cfg.OutlierThreshold,
			SafetyFactor:     cfg.SafetyFactor,
		},
		salesinfra.NewSalesQueryRepository(db),
		stockinfra.NewStockQueryRepository(db),
		forecaster,
		salesdomain.NewFeatureBuilder(cfg.RollingWindow, calendar),
		replenishdomain.NewCalculator(cfg.SafetyFactor),
		replenishinfra.NewPlanWriter(db),
		archiver,
		log,
	)

	if err := pipeline.Run(context.Background(), time.Now()); err != nil {
		log.Fatal().Err(err).Msg("run interrompu")
	}
	log.Info().Msg("run terminé")
}
