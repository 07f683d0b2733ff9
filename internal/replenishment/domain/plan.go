package domain

import "time"

// PlanRow ligne finale du plan de réassort pour un couple
// (point de vente, produit) ; une ligne par groupe, réécrite à chaque run
type PlanRow struct {
	Store          string
	Product        string
	Category       string
	WeeklyDemand   float64
	RecentSales7d  float64
	CurrentStock   float64
	ProjectedStock float64
	SafetyStock    int
	ReorderQty     int
	AlertLabel     string
	GeneratedAt    time.Time
}
