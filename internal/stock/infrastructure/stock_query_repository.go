package infrastructure

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"reassort/internal/shared/infrastructure"
	"reassort/internal/stock/domain"
)

// StockQueryRepository repository de lecture des positions de stock
type StockQueryRepository struct {
	infrastructure.BaseRepository
}

// NewStockQueryRepository crée un nouveau repository de stock
func NewStockQueryRepository(db *sql.DB) *StockQueryRepository {
	return &StockQueryRepository{
		BaseRepository: infrastructure.NewBaseRepository(db),
	}
}

// GetAvailableStock récupère le stock disponible (en-main moins réservé)
// par (point de vente, produit), même périmètre que les ventes. La gamme
// retenue par groupe est le libellé maximum observé
func (r *StockQueryRepository) GetAvailableStock(stores []string, productLine string) ([]domain.StockLevel, error) {
	query := `
		SELECT s.location as store_code,
		       s.lifecycle_ref,
		       MAX(CAST(s.category AS TEXT)) as category,
		       SUM(CAST(s.on_hand AS DOUBLE PRECISION) - CAST(s.reserved AS DOUBLE PRECISION)) as current_stock
		FROM stock_levels s
		WHERE s.location = ANY($1)
		  AND s.stock_type = 'PFS'
		  AND s.product_line = $2
		GROUP BY 1, 2
	`

	rows, err := r.Query(query, pq.Array(stores), productLine)
	if err != nil {
		return nil, fmt.Errorf("stock query: %w", err)
	}
	defer rows.Close()

	var levels []domain.StockLevel
	for rows.Next() {
		var level domain.StockLevel
		var category sql.NullString
		if err := rows.Scan(&level.Store, &level.Product, &category, &level.CurrentStock); err != nil {
			return nil, fmt.Errorf("stock scan: %w", err)
		}
		if category.Valid && category.String != "" {
			level.Category = category.String
		} else {
			level.Category = domain.UnclassifiedCategory
		}
		levels = append(levels, level)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("stock rows: %w", err)
	}

	return levels, nil
}
