package infrastructure

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	"reassort/database"
	"reassort/internal/replenishment/domain"
)

// ParquetArchiver écrit un snapshot parquet du plan à chaque run, dans un
// répertoire local, pour l'archivage et le debug. Best-effort : l'appelant
// journalise l'échec sans interrompre le run
type ParquetArchiver struct {
	dir string
}

// NewParquetArchiver crée un archiveur écrivant dans le répertoire donné
func NewParquetArchiver(dir string) *ParquetArchiver {
	return &ParquetArchiver{dir: dir}
}

// Archive écrit le plan dans un fichier horodaté et retourne son chemin
func (a *ParquetArchiver) Archive(rows []domain.PlanRow, generatedAt time.Time) (string, error) {
	if err := os.MkdirAll(a.dir, 0o755); err != nil {
		return "", fmt.Errorf("parquet archiver: %w", err)
	}

	path := filepath.Join(a.dir, fmt.Sprintf("replenishment_%s.parquet", generatedAt.Format("20060102_150405")))
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return "", fmt.Errorf("parquet archiver: ouverture: %w", err)
	}

	pw, err := writer.NewParquetWriter(fw, new(database.PlanParquet), 2)
	if err != nil {
		_ = fw.Close()
		return "", fmt.Errorf("parquet archiver: writer: %w", err)
	}
	pw.RowGroupSize = 128 * 1024 * 1024
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for _, row := range rows {
		record := database.PlanParquet{
			StoreCode:      row.Store,
			LifecycleRef:   row.Product,
			Category:       row.Category,
			WeeklyDemand:   row.WeeklyDemand,
			RecentSales7d:  row.RecentSales7d,
			CurrentStock:   row.CurrentStock,
			ProjectedStock: row.ProjectedStock,
			SafetyStock:    int32(row.SafetyStock),
			ReorderQty:     int32(row.ReorderQty),
			AlertLabel:     row.AlertLabel,
			GeneratedAt:    row.GeneratedAt.Format("2006-01-02 15:04:05"),
		}
		if err := pw.Write(record); err != nil {
			_ = fw.Close()
			return "", fmt.Errorf("parquet archiver: écriture: %w", err)
		}
	}

	if err := pw.WriteStop(); err != nil {
		_ = fw.Close()
		return "", fmt.Errorf("parquet archiver: finalisation: %w", err)
	}
	if err := fw.Close(); err != nil {
		return "", fmt.Errorf("parquet archiver: fermeture: %w", err)
	}
	return path, nil
}
