package domain

import (
	forecastdomain "reassort/internal/forecast/domain"
	shareddomain "reassort/internal/shared/domain"
	stockdomain "reassort/internal/stock/domain"
)

// ProjectedPosition position de stock projetée d'un groupe : la prévision
// de demande jointe à l'état de stock courant
type ProjectedPosition struct {
	Store          string
	Product        string
	Category       string
	WeeklyDemand   float64
	RecentSales7d  float64
	CurrentStock   float64
	ProjectedStock float64
}

// ProjectStock joint (left join) les prévisions avec les positions de stock.
// Un groupe prédit sans ligne de stock part de zéro avec la gamme sentinelle.
// Le stock projeté réintègre les ventes récentes : des unités vendues sur la
// fenêtre sont en cours de réassort, les déduire deux fois pénaliserait le
// groupe au moment de décider combien recommander
func ProjectStock(forecasts []forecastdomain.DemandForecast, levels []stockdomain.StockLevel) []ProjectedPosition {
	byKey := make(map[shareddomain.GroupKey]stockdomain.StockLevel, len(levels))
	for _, level := range levels {
		byKey[shareddomain.MustNewGroupKey(level.Store, level.Product)] = level
	}

	positions := make([]ProjectedPosition, 0, len(forecasts))
	for _, fc := range forecasts {
		pos := ProjectedPosition{
			Store:         fc.Store,
			Product:       fc.Product,
			Category:      stockdomain.UnclassifiedCategory,
			WeeklyDemand:  fc.WeeklyDemand,
			RecentSales7d: fc.RecentSales7d,
		}
		if level, ok := byKey[shareddomain.MustNewGroupKey(fc.Store, fc.Product)]; ok {
			pos.Category = level.Category
			pos.CurrentStock = level.CurrentStock
		}
		pos.ProjectedStock = pos.CurrentStock + pos.RecentSales7d
		positions = append(positions, pos)
	}
	return positions
}
