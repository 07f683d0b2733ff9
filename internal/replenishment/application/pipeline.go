package application

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	forecastdomain "reassort/internal/forecast/domain"
	"reassort/internal/replenishment/domain"
	salesdomain "reassort/internal/sales/domain"
	stockdomain "reassort/internal/stock/domain"
)

// SalesSource lecture de l'historique des ventes journalières agrégées
type SalesSource interface {
	GetDailySales(stores []string, productLine string, outlierThreshold float64) ([]salesdomain.SalesRecord, error)
}

// StockSource lecture des positions de stock disponibles
type StockSource interface {
	GetAvailableStock(stores []string, productLine string) ([]stockdomain.StockLevel, error)
}

// DemandForecaster entraînement et prédiction de la demande hebdomadaire
type DemandForecaster interface {
	Forecast(table salesdomain.FeatureTable, now time.Time) ([]forecastdomain.DemandForecast, error)
}

// PlanSink écriture du plan final en remplacement intégral de la destination
type PlanSink interface {
	Replace(ctx context.Context, rows []domain.PlanRow) error
}

// PlanArchiver snapshot d'archivage du plan (optionnel)
type PlanArchiver interface {
	Archive(rows []domain.PlanRow, generatedAt time.Time) (string, error)
}

// PipelineParams périmètre et réglages d'un run
type PipelineParams struct {
	StoreCodes       []string
	ProductLine      string
	OutlierThreshold float64
	SafetyFactor     float64
}

// Pipeline orchestre un run complet : lectures, variables, modèle,
// projection de stock, calcul de réassort, écriture. Mono-thread par
// construction, aucun état partagé entre runs ; deux runs sur les mêmes
// données source et le même horodatage produisent le même plan
type Pipeline struct {
	params     PipelineParams
	sales      SalesSource
	stock      StockSource
	forecaster DemandForecaster
	builder    *salesdomain.FeatureBuilder
	calculator *domain.Calculator
	sink       PlanSink
	archiver   PlanArchiver // nil = pas de snapshot
	log        zerolog.Logger
}

// NewPipeline assemble le pipeline avec ses collaborateurs injectés
func NewPipeline(
	params PipelineParams,
	sales SalesSource,
	stock StockSource,
	forecaster DemandForecaster,
	builder *salesdomain.FeatureBuilder,
	calculator *domain.Calculator,
	sink PlanSink,
	archiver PlanArchiver,
	log zerolog.Logger,
) *Pipeline {
	return &Pipeline{
		params:     params,
		sales:      sales,
		stock:      stock,
		forecaster: forecaster,
		builder:    builder,
		calculator: calculator,
		sink:       sink,
		archiver:   archiver,
		log:        log.With().Str("component", "pipeline").Logger(),
	}
}

// Run exécute un run complet, horodaté par `now` (règle de dormance et
// colonne generated_at). Les échecs de lecture et d'entraînement sont
// fatals ; l'échec d'écriture est journalisé mais n'interrompt pas le
// processus, comportement voulu de dernière étape best-effort
func (p *Pipeline) Run(ctx context.Context, now time.Time) error {
	p.step(1, "traitement des ventes")
	records, err := p.sales.GetDailySales(p.params.StoreCodes, p.params.ProductLine, p.params.OutlierThreshold)
	if err != nil {
		return fmt.Errorf("lecture des ventes: %w", err)
	}
	p.log.Info().Int("records", len(records)).Msg("ventes journalières chargées")

	p.step(2, "génération des variables")
	table := p.builder.Build(records)
	if table.IsEmpty() {
		return fmt.Errorf("génération des variables: aucune ligne exploitable (historique trop court)")
	}

	p.step(3, "traitement du stock")
	levels, err := p.stock.GetAvailableStock(p.params.StoreCodes, p.params.ProductLine)
	if err != nil {
		return fmt.Errorf("lecture du stock: %w", err)
	}

	p.step(4, "entraînement du modèle")
	forecasts, err := p.forecaster.Forecast(table, now)
	if err != nil {
		return fmt.Errorf("prévision: %w", err)
	}

	p.step(5, "génération des prédictions")
	p.log.Info().Int("groups", len(forecasts)).Msg("demande hebdomadaire estimée")

	p.step(6, "calcul du réassort")
	positions := domain.ProjectStock(forecasts, levels)
	rows := make([]domain.PlanRow, len(positions))
	for i, pos := range positions {
		rows[i] = p.calculator.Plan(pos, now)
	}

	p.write(ctx, rows, now)
	return nil
}

// write pousse le plan vers la destination puis, le cas échéant, vers le
// snapshot d'archivage. Aucune des deux écritures ne fait échouer le run :
// un appelant qui se fie au code de sortie doit vérifier la fraîcheur de
// la destination par ailleurs
func (p *Pipeline) write(ctx context.Context, rows []domain.PlanRow, now time.Time) {
	if err := p.sink.Replace(ctx, rows); err != nil {
		p.log.Error().Err(err).Msg("échec de l'écriture du plan, destination inchangée")
	} else {
		p.log.Info().Int("rows", len(rows)).Msg("plan de réassort publié")
	}

	if p.archiver == nil {
		return
	}
	if path, err := p.archiver.Archive(rows, now); err != nil {
		p.log.Error().Err(err).Msg("échec du snapshot parquet")
	} else {
		p.log.Info().Str("path", path).Msg("snapshot parquet écrit")
	}
}

// step émet le marqueur d'avancement ordonné ("1/6", "2/6", ...)
func (p *Pipeline) step(n int, label string) {
	p.log.Info().Str("step", fmt.Sprintf("%d/6", n)).Msg(label)
}
