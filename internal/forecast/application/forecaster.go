package application

import (
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"reassort/internal/forecast/domain"
	salesdomain "reassort/internal/sales/domain"
	sharedinfra "reassort/internal/shared/infrastructure"
)

// horizonDays horizon de prévision : le modèle prédit un rythme journalier,
// converti en demande hebdomadaire
const horizonDays = 7

// ForecasterParams paramètres du service de prévision
type ForecasterParams struct {
	Model         domain.BoosterParams
	Smoothing     float64 // lissage du target encoding des magasins
	StalenessDays int     // ancienneté max de la dernière vente d'un groupe
}

// Forecaster service d'entraînement et de prédiction : ajuste le modèle sur
// la table de variables complète, puis estime la demande hebdomadaire de la
// dernière observation de chaque groupe
type Forecaster struct {
	params ForecasterParams
	pool   *sharedinfra.WorkerPool
	log    zerolog.Logger
}

// NewForecaster crée un nouveau service de prévision
func NewForecaster(params ForecasterParams, pool *sharedinfra.WorkerPool, log zerolog.Logger) *Forecaster {
	return &Forecaster{
		params: params,
		pool:   pool,
		log:    log.With().Str("component", "forecaster").Logger(),
	}
}

// Forecast entraîne le modèle et retourne une prévision par groupe, dans
// l'ordre de première apparition des groupes dans la table (déterministe).
// Une table vide est une précondition violée : erreur fatale pour le run
func (f *Forecaster) Forecast(table salesdomain.FeatureTable, now time.Time) ([]domain.DemandForecast, error) {
	rows := table.Rows()
	if len(rows) == 0 {
		return nil, domain.ErrEmptyTrainingSet
	}

	storeEnc, productEnc, err := f.fitEncoders(rows)
	if err != nil {
		return nil, err
	}

	features := make([][]float64, len(rows))
	target := make([]float64, len(rows))
	for i, row := range rows {
		vec, err := featureVector(row, storeEnc, productEnc)
		if err != nil {
			return nil, err
		}
		features[i] = vec
		target[i] = row.UnitsSold
	}

	booster := domain.NewBooster(f.params.Model)
	if err := booster.Fit(features, target); err != nil {
		return nil, fmt.Errorf("entraînement: %w", err)
	}
	f.log.Debug().Int("rows", len(rows)).Int("trees", f.params.Model.Trees).Msg("modèle ajusté")

	return f.predictLatest(table, booster, storeEnc, productEnc, now)
}

// fitEncoders fige les encodages catégoriels sur le jeu d'entraînement ;
// le même état encodé sert ensuite au fit et au predict
func (f *Forecaster) fitEncoders(rows []salesdomain.FeatureRow) (*domain.StoreTargetEncoder, *domain.ProductOrdinalEncoder, error) {
	stores := make([]string, len(rows))
	products := make([]string, len(rows))
	target := make([]float64, len(rows))
	for i, row := range rows {
		stores[i] = row.Store
		products[i] = row.Product
		target[i] = row.UnitsSold
	}

	storeEnc := domain.NewStoreTargetEncoder(f.params.Smoothing)
	if err := storeEnc.Fit(stores, target); err != nil {
		return nil, nil, err
	}
	productEnc := domain.NewProductOrdinalEncoder()
	if err := productEnc.Fit(products); err != nil {
		return nil, nil, err
	}
	return storeEnc, productEnc, nil
}

// predictLatest prédit le rythme journalier de la dernière observation de
// chaque groupe, borne à zéro, convertit en demande hebdomadaire arrondie
// au centième, puis applique la règle de dormance : un groupe dont la
// dernière vente est trop ancienne est forcé à zéro
func (f *Forecaster) predictLatest(table salesdomain.FeatureTable, booster *domain.Booster,
	storeEnc *domain.StoreTargetEncoder, productEnc *domain.ProductOrdinalEncoder, now time.Time) ([]domain.DemandForecast, error) {

	latest := table.LatestPerGroup()
	cutoff := now.AddDate(0, 0, -f.params.StalenessDays)

	forecasts := make([]domain.DemandForecast, len(latest))
	tasks := make([]sharedinfra.Task, len(latest))
	for i := range latest {
		i := i
		row := latest[i]
		tasks[i] = func() error {
			vec, err := featureVector(row, storeEnc, productEnc)
			if err != nil {
				return err
			}
			daily, err := booster.Predict(vec)
			if err != nil {
				return err
			}
			if daily < 0 {
				daily = 0
			}

			weekly := math.Round(daily*horizonDays*100) / 100
			if row.Date.Before(cutoff) {
				// Article dormant : coupure d'ancienneté, pas une prédiction
				weekly = 0
			}

			forecasts[i] = domain.DemandForecast{
				Store:         row.Store,
				Product:       row.Product,
				LastSaleDate:  row.Date,
				WeeklyDemand:  weekly,
				RecentSales7d: row.RollingSum7,
			}
			return nil
		}
	}

	if err := f.pool.Run(tasks); err != nil {
		return nil, fmt.Errorf("prédiction: %w", err)
	}

	return forecasts, nil
}

// featureVector projette une ligne dans l'ordre de colonnes attendu par le
// modèle : magasin encodé, produit encodé, jour de semaine, férié, ventes
// de la veille, moyenne glissante
func featureVector(row salesdomain.FeatureRow, storeEnc *domain.StoreTargetEncoder, productEnc *domain.ProductOrdinalEncoder) ([]float64, error) {
	storeVal, err := storeEnc.Transform(row.Store)
	if err != nil {
		return nil, err
	}
	productVal, err := productEnc.Transform(row.Product)
	if err != nil {
		return nil, err
	}
	return []float64{
		storeVal,
		productVal,
		float64(row.DayOfWeek),
		float64(row.IsHoliday),
		row.SalesYesterday,
		row.RollingMean7,
	}, nil
}
