package domain

import (
	"math"
	"time"
)

// Libellés d'alerte du plan de réassort
const (
	AlertStockout  = "Rotura"     // risque de rupture
	AlertSuggested = "Sugerencia" // réassort conseillé
	AlertOptimal   = "Óptimo"     // rien à commander
)

// stockoutRatio part de la demande hebdomadaire sous laquelle le stock
// projeté bascule en risque de rupture
const stockoutRatio = 0.5

// Calculator dérive le stock de sécurité, la quantité à recommander et le
// libellé d'alerte d'une position projetée
type Calculator struct {
	safetyFactor float64
}

// NewCalculator crée un calculateur avec le facteur de sécurité donné
// (part de la demande hebdomadaire gardée en tampon)
func NewCalculator(safetyFactor float64) *Calculator {
	if safetyFactor < 0 {
		safetyFactor = 0
	}
	return &Calculator{safetyFactor: safetyFactor}
}

// Plan évalue une position et produit la ligne de plan correspondante.
// La quantité à recommander est le plafond du manque borné à zéro :
// jamais négative, toujours entière
func (c *Calculator) Plan(pos ProjectedPosition, generatedAt time.Time) PlanRow {
	safety := int(math.Ceil(pos.WeeklyDemand * c.safetyFactor))

	shortfall := pos.WeeklyDemand + float64(safety) - pos.ProjectedStock
	if shortfall < 0 {
		shortfall = 0
	}
	reorder := int(math.Ceil(shortfall))

	return PlanRow{
		Store:          pos.Store,
		Product:        pos.Product,
		Category:       pos.Category,
		WeeklyDemand:   pos.WeeklyDemand,
		RecentSales7d:  pos.RecentSales7d,
		CurrentStock:   pos.CurrentStock,
		ProjectedStock: pos.ProjectedStock,
		SafetyStock:    safety,
		ReorderQty:     reorder,
		AlertLabel:     alertLabel(reorder, pos.ProjectedStock, pos.WeeklyDemand),
		GeneratedAt:    generatedAt,
	}
}

// alertLabel applique les règles d'alerte dans l'ordre strict de priorité :
// la première règle vérifiée l'emporte. Les conditions se recouvrent, une
// rupture ne doit jamais retomber en simple suggestion
func alertLabel(reorder int, projectedStock, weeklyDemand float64) string {
	switch {
	case reorder > 0 && projectedStock < weeklyDemand*stockoutRatio:
		return AlertStockout
	case reorder > 0:
		return AlertSuggested
	default:
		return AlertOptimal
	}
}
