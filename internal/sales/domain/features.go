package domain

import (
	"sort"
	"time"
)

// HolidayLookup interface pour l'abstraction du calendrier des jours fériés
type HolidayLookup interface {
	IsHoliday(date time.Time) bool
}

// FeatureBuilder transforme les ventes agrégées en table de variables.
// Chaque étape est une transformation pure : tri, variables calendaires,
// statistiques glissantes, décalage d'un jour, puis suppression des lignes
// sans historique
type FeatureBuilder struct {
	window   int
	calendar HolidayLookup
}

// NewFeatureBuilder crée un builder avec la fenêtre glissante donnée (jours)
func NewFeatureBuilder(window int, calendar HolidayLookup) *FeatureBuilder {
	if window < 1 {
		window = 1
	}
	return &FeatureBuilder{window: window, calendar: calendar}
}

// Build produit une FeatureRow par (store, product, date), dates croissantes
// à l'intérieur de chaque groupe. La première observation de chaque groupe
// n'a pas de veille exploitable et est écartée : un groupe à observation
// unique disparaît donc entièrement de la table
func (b *FeatureBuilder) Build(records []SalesRecord) FeatureTable {
	ordered := sortRecords(records)
	enriched := b.enrich(ordered)
	return NewFeatureTable(dropFirstOfGroup(enriched))
}

// sortRecords retourne une copie triée par (store, product, date).
// L'ordre conditionne la justesse du décalage et des fenêtres glissantes
func sortRecords(records []SalesRecord) []SalesRecord {
	ordered := append([]SalesRecord{}, records...)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Store != ordered[j].Store {
			return ordered[i].Store < ordered[j].Store
		}
		if ordered[i].Product != ordered[j].Product {
			return ordered[i].Product < ordered[j].Product
		}
		return ordered[i].Date.Before(ordered[j].Date)
	})
	return ordered
}

// enrichedRow ligne intermédiaire : FeatureRow + marqueur de veille définie
type enrichedRow struct {
	FeatureRow
	hasLag bool
}

// enrich calcule les variables calendaires et historiques groupe par groupe.
// Les fenêtres glissantes portent sur les observations (jusqu'à `window`
// les plus récentes, ligne courante incluse, minimum 1) et ne franchissent
// jamais une frontière de groupe
func (b *FeatureBuilder) enrich(ordered []SalesRecord) []enrichedRow {
	rows := make([]enrichedRow, 0, len(ordered))

	var groupStart int
	for i, rec := range ordered {
		if i > 0 && !sameGroup(ordered[i-1], rec) {
			groupStart = i
		}

		row := enrichedRow{
			FeatureRow: FeatureRow{
				Store:     rec.Store,
				Product:   rec.Product,
				Date:      rec.Date,
				DayOfWeek: mondayIndexed(rec.Date),
				UnitsSold: rec.Units,
			},
		}
		if b.calendar != nil && b.calendar.IsHoliday(rec.Date) {
			row.IsHoliday = 1
		}

		// Fenêtre glissante bornée au début du groupe
		winStart := i - b.window + 1
		if winStart < groupStart {
			winStart = groupStart
		}
		var sum float64
		for j := winStart; j <= i; j++ {
			sum += ordered[j].Units
		}
		row.RollingSum7 = sum
		row.RollingMean7 = sum / float64(i-winStart+1)

		// Veille : observation précédente du même groupe
		if i > groupStart {
			row.SalesYesterday = ordered[i-1].Units
			row.hasLag = true
		}

		rows = append(rows, row)
	}
	return rows
}

// dropFirstOfGroup écarte les lignes sans veille définie (démarrage à froid)
func dropFirstOfGroup(rows []enrichedRow) []FeatureRow {
	kept := make([]FeatureRow, 0, len(rows))
	for _, row := range rows {
		if row.hasLag {
			kept = append(kept, row.FeatureRow)
		}
	}
	return kept
}

// mondayIndexed retourne l'indice du jour de semaine, lundi = 0
func mondayIndexed(date time.Time) int {
	return (int(date.Weekday()) + 6) % 7
}

func sameGroup(a, b SalesRecord) bool {
	return a.Store == b.Store && a.Product == b.Product
}
