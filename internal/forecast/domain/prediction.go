package domain

import "time"

// DemandForecast estimation de demande hebdomadaire pour un groupe
// (point de vente, produit), accompagnée du contexte nécessaire au calcul
// de réassort
type DemandForecast struct {
	Store         string
	Product       string
	LastSaleDate  time.Time
	WeeklyDemand  float64 // demande estimée sur 7 jours, jamais négative
	RecentSales7d float64 // somme glissante des ventes de la dernière observation
}
