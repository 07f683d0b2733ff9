package infrastructure

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"reassort/internal/sales/domain"
	"reassort/internal/shared/infrastructure"
)

// SalesQueryRepository repository de lecture de l'historique des ventes TPV
type SalesQueryRepository struct {
	infrastructure.BaseRepository
}

// NewSalesQueryRepository crée un nouveau repository de ventes
func NewSalesQueryRepository(db *sql.DB) *SalesQueryRepository {
	return &SalesQueryRepository{
		BaseRepository: infrastructure.NewBaseRepository(db),
	}
}

// GetDailySales récupère les ventes journalières agrégées par
// (date, point de vente, produit). Le périmètre est restreint aux points de
// vente autorisés, à une seule gamme, aux ventes directes (hors mouvements
// internes), aux produits actifs au référentiel, et aux quantités sous le
// seuil d'exclusion des valeurs aberrantes
func (r *SalesQueryRepository) GetDailySales(stores []string, productLine string, outlierThreshold float64) ([]domain.SalesRecord, error) {
	query := `
		SELECT CAST(v.sale_date AS DATE) as sale_date,
		       v.store_code,
		       v.lifecycle_ref,
		       SUM(CAST(v.quantity AS DOUBLE PRECISION)) as units_sold
		FROM pos_sales v
		INNER JOIN product_master m ON v.sku = m.sku
		WHERE v.store_code = ANY($1)
		  AND v.sale_type = 'PFS'
		  AND v.product_line = $2
		  AND v.sale_date IS NOT NULL
		  AND m.status = 'active'
		  AND CAST(v.quantity AS DOUBLE PRECISION) < $3
		GROUP BY 1, 2, 3
	`

	rows, err := r.Query(query, pq.Array(stores), productLine, outlierThreshold)
	if err != nil {
		return nil, fmt.Errorf("sales query: %w", err)
	}
	defer rows.Close()

	var records []domain.SalesRecord
	for rows.Next() {
		var rec domain.SalesRecord
		if err := rows.Scan(&rec.Date, &rec.Store, &rec.Product, &rec.Units); err != nil {
			return nil, fmt.Errorf("sales scan: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sales rows: %w", err)
	}

	return records, nil
}
