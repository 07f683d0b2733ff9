package database

import "time"

// ============================================================================
// MODÈLES DE DONNÉES - Entrepôt brut
// ============================================================================

// PosSale - Une ligne de ticket de caisse brute
type PosSale struct {
	ID           int64     `json:"id"`
	SaleDate     time.Time `json:"sale_date"`
	StoreCode    string    `json:"store_code"`
	SKU          string    `json:"sku"`
	LifecycleRef string    `json:"lifecycle_ref"`
	SaleType     string    `json:"sale_type"` // PFS = vente directe, PNFS = mouvement interne
	ProductLine  string    `json:"product_line"`
	Quantity     float64   `json:"quantity"`
}

// MasterProduct - Fiche produit du référentiel
type MasterProduct struct {
	SKU          string `json:"sku"`
	LifecycleRef string `json:"lifecycle_ref"`
	ProductLine  string `json:"product_line"`
	Category     string `json:"category"`
	Status       string `json:"status"` // active | discontinued
}

// StockLine - Position de stock brute d'un emplacement
type StockLine struct {
	Location     string  `json:"location"`
	LifecycleRef string  `json:"lifecycle_ref"`
	Category     string  `json:"category"`
	StockType    string  `json:"stock_type"`
	ProductLine  string  `json:"product_line"`
	OnHand       float64 `json:"on_hand"`
	Reserved     float64 `json:"reserved"`
}

// PlanParquet - Structure du snapshot Parquet du plan de réassort
type PlanParquet struct {
	StoreCode      string  `parquet:"name=store_code, type=BYTE_ARRAY, convertedtype=UTF8"`
	LifecycleRef   string  `parquet:"name=lifecycle_ref, type=BYTE_ARRAY, convertedtype=UTF8"`
	Category       string  `parquet:"name=category, type=BYTE_ARRAY, convertedtype=UTF8"`
	WeeklyDemand   float64 `parquet:"name=weekly_demand, type=DOUBLE"`
	RecentSales7d  float64 `parquet:"name=recent_sales_7d, type=DOUBLE"`
	CurrentStock   float64 `parquet:"name=current_stock, type=DOUBLE"`
	ProjectedStock float64 `parquet:"name=projected_stock, type=DOUBLE"`
	SafetyStock    int32   `parquet:"name=safety_stock, type=INT32"`
	ReorderQty     int32   `parquet:"name=reorder_qty, type=INT32"`
	AlertLabel     string  `parquet:"name=alert_label, type=BYTE_ARRAY, convertedtype=UTF8"`
	GeneratedAt    string  `parquet:"name=generated_at, type=BYTE_ARRAY, convertedtype=UTF8"`
}
