package domain

import (
	"time"

	shareddomain "reassort/internal/shared/domain"
)

// SalesRecord représente une journée de ventes agrégée pour un couple
// (point de vente, produit) : les tickets individuels sont déjà sommés
// par la requête source
type SalesRecord struct {
	Date    time.Time
	Store   string
	Product string
	Units   float64
}

// FeatureRow une observation enrichie, prête pour l'entraînement :
// variables calendaires + historiques, et la cible UnitsSold
type FeatureRow struct {
	Store          string
	Product        string
	Date           time.Time
	DayOfWeek      int // 0 = lundi, convention pandas conservée
	IsHoliday      int // 1 si jour férié dans la région configurée
	SalesYesterday float64
	RollingMean7   float64
	RollingSum7    float64
	UnitsSold      float64
}

// Key retourne la clé de groupe de la ligne
func (r FeatureRow) Key() shareddomain.GroupKey {
	return shareddomain.MustNewGroupKey(r.Store, r.Product)
}

// FeatureTable table de variables ordonnée : dates croissantes à l'intérieur
// de chaque groupe, groupes contigus. Les transformations qui la produisent
// retournent toujours une nouvelle table, jamais une mutation en place
type FeatureTable struct {
	rows []FeatureRow
}

// NewFeatureTable construit une table à partir de lignes déjà ordonnées
func NewFeatureTable(rows []FeatureRow) FeatureTable {
	return FeatureTable{rows: rows}
}

// Rows retourne une copie défensive des lignes
func (t FeatureTable) Rows() []FeatureRow {
	return append([]FeatureRow{}, t.rows...)
}

// Len retourne le nombre de lignes
func (t FeatureTable) Len() int {
	return len(t.rows)
}

// IsEmpty vérifie si la table ne contient aucune ligne exploitable
func (t FeatureTable) IsEmpty() bool {
	return len(t.rows) == 0
}

// LatestPerGroup retourne la dernière observation de chaque groupe,
// dans l'ordre de première apparition des groupes (déterministe)
func (t FeatureTable) LatestPerGroup() []FeatureRow {
	index := make(map[shareddomain.GroupKey]int)
	var latest []FeatureRow

	for _, row := range t.rows {
		key := row.Key()
		if i, seen := index[key]; seen {
			latest[i] = row
			continue
		}
		index[key] = len(latest)
		latest = append(latest, row)
	}
	return latest
}
