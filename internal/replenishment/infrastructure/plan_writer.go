package infrastructure

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"reassort/internal/replenishment/domain"
	"reassort/internal/shared/infrastructure"
)

// planTableDDL la destination est recréée si absente ; le contenu est
// intégralement remplacé à chaque run (pas d'append, pas de merge)
const planTableDDL = `
	CREATE TABLE IF NOT EXISTS replenishment_plan (
		store_code      TEXT             NOT NULL,
		lifecycle_ref   TEXT             NOT NULL,
		category        TEXT             NOT NULL,
		weekly_demand   DOUBLE PRECISION NOT NULL,
		recent_sales_7d DOUBLE PRECISION NOT NULL,
		current_stock   DOUBLE PRECISION NOT NULL,
		projected_stock DOUBLE PRECISION NOT NULL,
		safety_stock    INTEGER          NOT NULL,
		reorder_qty     INTEGER          NOT NULL,
		alert_label     TEXT             NOT NULL,
		generated_at    TIMESTAMPTZ      NOT NULL,
		PRIMARY KEY (store_code, lifecycle_ref)
	)`

// PlanWriter écrit le plan de réassort dans la table de destination.
// Le remplacement est transactionnel : en cas d'échec, l'ancien plan
// reste servi tel quel
type PlanWriter struct {
	db  *sql.DB
	uow infrastructure.UnitOfWork
}

// NewPlanWriter crée un nouveau writer de plan
func NewPlanWriter(db *sql.DB) *PlanWriter {
	return &PlanWriter{
		db:  db,
		uow: infrastructure.NewUnitOfWork(db),
	}
}

// Replace vide la destination puis charge le nouveau plan en bulk (COPY),
// le tout dans une seule transaction
func (w *PlanWriter) Replace(ctx context.Context, rows []domain.PlanRow) error {
	if _, err := w.db.ExecContext(ctx, planTableDDL); err != nil {
		return fmt.Errorf("plan writer: création de la destination: %w", err)
	}

	err := w.uow.Execute(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM replenishment_plan`); err != nil {
			return fmt.Errorf("purge: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx, pq.CopyIn("replenishment_plan",
			"store_code", "lifecycle_ref", "category",
			"weekly_demand", "recent_sales_7d", "current_stock", "projected_stock",
			"safety_stock", "reorder_qty", "alert_label", "generated_at",
		))
		if err != nil {
			return fmt.Errorf("copy in: %w", err)
		}
		defer stmt.Close()

		for _, row := range rows {
			if _, err := stmt.ExecContext(ctx,
				row.Store, row.Product, row.Category,
				row.WeeklyDemand, row.RecentSales7d, row.CurrentStock, row.ProjectedStock,
				row.SafetyStock, row.ReorderQty, row.AlertLabel, row.GeneratedAt,
			); err != nil {
				return fmt.Errorf("copy row %s/%s: %w", row.Store, row.Product, err)
			}
		}

		// Exec sans argument force le flush du buffer COPY
		if _, err := stmt.ExecContext(ctx); err != nil {
			return fmt.Errorf("copy flush: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("plan writer: %w", err)
	}
	return nil
}
