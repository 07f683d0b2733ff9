package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	forecastdomain "reassort/internal/forecast/domain"
	"reassort/internal/replenishment/domain"
	salesdomain "reassort/internal/sales/domain"
	stockdomain "reassort/internal/stock/domain"
)

var runNow = time.Date(2026, 6, 1, 7, 0, 0, 0, time.UTC)

type fakeSales struct {
	records []salesdomain.SalesRecord
	err     error
}

func (f *fakeSales) GetDailySales(stores []string, productLine string, outlierThreshold float64) ([]salesdomain.SalesRecord, error) {
	return f.records, f.err
}

type fakeStock struct {
	levels []stockdomain.StockLevel
	err    error
}

func (f *fakeStock) GetAvailableStock(stores []string, productLine string) ([]stockdomain.StockLevel, error) {
	return f.levels, f.err
}

type fakeForecaster struct {
	forecasts []forecastdomain.DemandForecast
	err       error
	gotNow    time.Time
}

func (f *fakeForecaster) Forecast(table salesdomain.FeatureTable, now time.Time) ([]forecastdomain.DemandForecast, error) {
	f.gotNow = now
	return f.forecasts, f.err
}

type fakeSink struct {
	rows  []domain.PlanRow
	calls int
	err   error
}

func (f *fakeSink) Replace(ctx context.Context, rows []domain.PlanRow) error {
	f.calls++
	f.rows = rows
	return f.err
}

type fakeArchiver struct {
	rows int
	err  error
}

func (f *fakeArchiver) Archive(rows []domain.PlanRow, generatedAt time.Time) (string, error) {
	f.rows = len(rows)
	return "/tmp/plan.parquet", f.err
}

func salesHistory() []salesdomain.SalesRecord {
	var records []salesdomain.SalesRecord
	for i := 0; i < 3; i++ {
		records = append(records, salesdomain.SalesRecord{
			Date: runNow.AddDate(0, 0, i-3), Store: "AND", Product: "P1", Units: 2,
		})
	}
	return records
}

func newTestPipeline(sales *fakeSales, stock *fakeStock, fc *fakeForecaster, sink *fakeSink, archiver PlanArchiver) *Pipeline {
	return NewPipeline(
		PipelineParams{
			StoreCodes:       []string{"AND"},
			ProductLine:      "PREMIUM",
			OutlierThreshold: 15,
			SafetyFactor:     0.20,
		},
		sales, stock, fc,
		salesdomain.NewFeatureBuilder(7, nil),
		domain.NewCalculator(0.20),
		sink, archiver,
		zerolog.Nop(),
	)
}

func TestPipelineHappyPath(t *testing.T) {
	sales := &fakeSales{records: salesHistory()}
	stock := &fakeStock{levels: []stockdomain.StockLevel{
		{Store: "AND", Product: "P1", Category: "Bougies", CurrentStock: 1},
	}}
	fc := &fakeForecaster{forecasts: []forecastdomain.DemandForecast{
		{Store: "AND", Product: "P1", LastSaleDate: runNow.AddDate(0, 0, -1), WeeklyDemand: 14, RecentSales7d: 6},
	}}
	sink := &fakeSink{}
	archiver := &fakeArchiver{}

	p := newTestPipeline(sales, stock, fc, sink, archiver)
	if err := p.Run(context.Background(), runNow); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if sink.calls != 1 {
		t.Fatalf("Expected one sink write, got %d", sink.calls)
	}
	if len(sink.rows) != 1 {
		t.Fatalf("Expected 1 plan row, got %d", len(sink.rows))
	}

	row := sink.rows[0]
	// demande 14, projeté 1+6=7 : safety 3, reorder 10, 7 >= 7 donc suggestion
	if row.SafetyStock != 3 || row.ReorderQty != 10 {
		t.Errorf("Expected safety 3 / reorder 10, got %d / %d", row.SafetyStock, row.ReorderQty)
	}
	if row.AlertLabel != domain.AlertSuggested {
		t.Errorf("Expected %q, got %q", domain.AlertSuggested, row.AlertLabel)
	}
	if !row.GeneratedAt.Equal(runNow) {
		t.Errorf("Expected GeneratedAt=%v, got %v", runNow, row.GeneratedAt)
	}
	if !fc.gotNow.Equal(runNow) {
		t.Errorf("Expected forecaster to receive run timestamp, got %v", fc.gotNow)
	}
	if archiver.rows != 1 {
		t.Errorf("Expected archiver to receive 1 row, got %d", archiver.rows)
	}
}

func TestPipelineSalesReadFailureIsFatal(t *testing.T) {
	sales := &fakeSales{err: errors.New("query timeout")}
	sink := &fakeSink{}

	p := newTestPipeline(sales, &fakeStock{}, &fakeForecaster{}, sink, nil)
	if err := p.Run(context.Background(), runNow); err == nil {
		t.Fatal("Expected fatal error on sales read failure")
	}
	if sink.calls != 0 {
		t.Errorf("Expected no partial output after read failure, sink called %d times", sink.calls)
	}
}

func TestPipelineStockReadFailureIsFatal(t *testing.T) {
	sales := &fakeSales{records: salesHistory()}
	stock := &fakeStock{err: errors.New("auth failure")}
	sink := &fakeSink{}

	p := newTestPipeline(sales, stock, &fakeForecaster{}, sink, nil)
	if err := p.Run(context.Background(), runNow); err == nil {
		t.Fatal("Expected fatal error on stock read failure")
	}
	if sink.calls != 0 {
		t.Errorf("Expected no partial output after read failure, sink called %d times", sink.calls)
	}
}

func TestPipelineEmptyFeatureTableIsFatal(t *testing.T) {
	// Un seul jour de ventes : tout est écarté par la règle de veille
	sales := &fakeSales{records: salesHistory()[:1]}

	p := newTestPipeline(sales, &fakeStock{}, &fakeForecaster{}, &fakeSink{}, nil)
	if err := p.Run(context.Background(), runNow); err == nil {
		t.Fatal("Expected fatal error on empty feature table")
	}
}

func TestPipelineForecastFailureIsFatal(t *testing.T) {
	sales := &fakeSales{records: salesHistory()}
	fc := &fakeForecaster{err: forecastdomain.ErrEmptyTrainingSet}

	p := newTestPipeline(sales, &fakeStock{}, fc, &fakeSink{}, nil)
	if err := p.Run(context.Background(), runNow); err == nil {
		t.Fatal("Expected fatal error on forecast failure")
	}
}

// TestPipelineWriteFailureIsSwallowed l'échec d'écriture est journalisé
// mais ne fait pas échouer le run : comportement best-effort à préserver
func TestPipelineWriteFailureIsSwallowed(t *testing.T) {
	sales := &fakeSales{records: salesHistory()}
	fc := &fakeForecaster{forecasts: []forecastdomain.DemandForecast{
		{Store: "AND", Product: "P1", WeeklyDemand: 14, RecentSales7d: 6},
	}}
	sink := &fakeSink{err: errors.New("destination unavailable")}

	p := newTestPipeline(sales, &fakeStock{}, fc, sink, nil)
	if err := p.Run(context.Background(), runNow); err != nil {
		t.Fatalf("Expected write failure to be swallowed, got %v", err)
	}
	if sink.calls != 1 {
		t.Errorf("Expected the write to have been attempted, calls=%d", sink.calls)
	}
}

func TestPipelineArchiverFailureIsSwallowed(t *testing.T) {
	sales := &fakeSales{records: salesHistory()}
	fc := &fakeForecaster{forecasts: []forecastdomain.DemandForecast{
		{Store: "AND", Product: "P1", WeeklyDemand: 14, RecentSales7d: 6},
	}}
	archiver := &fakeArchiver{err: errors.New("disk full")}

	p := newTestPipeline(sales, &fakeStock{}, fc, &fakeSink{}, archiver)
	if err := p.Run(context.Background(), runNow); err != nil {
		t.Fatalf("Expected archiver failure to be swallowed, got %v", err)
	}
}
