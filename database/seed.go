package database

import (
	"database/sql"
	"fmt"
	"math/rand"
	"time"
)

// schémas des tables sources ; l'entrepôt réel les alimente depuis l'ERP,
// le seed les recrée à vide pour les runs locaux et les tests d'intégration
const sourceDDL = `
	CREATE TABLE IF NOT EXISTS product_master (
		sku           TEXT PRIMARY KEY,
		lifecycle_ref TEXT NOT NULL,
		product_line  TEXT NOT NULL,
		category      TEXT NOT NULL,
		status        TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS pos_sales (
		id            BIGSERIAL PRIMARY KEY,
		sale_date     DATE NOT NULL,
		store_code    TEXT NOT NULL,
		sku           TEXT NOT NULL,
		lifecycle_ref TEXT NOT NULL,
		sale_type     TEXT NOT NULL,
		product_line  TEXT NOT NULL,
		quantity      DOUBLE PRECISION NOT NULL
	);
	CREATE TABLE IF NOT EXISTS stock_levels (
		location      TEXT NOT NULL,
		lifecycle_ref TEXT NOT NULL,
		category      TEXT NOT NULL,
		stock_type    TEXT NOT NULL,
		product_line  TEXT NOT NULL,
		on_hand       DOUBLE PRECISION NOT NULL,
		reserved      DOUBLE PRECISION NOT NULL
	)`

// SeedDatabase peuple l'entrepôt avec un historique synthétique de ventes
// et de stock sur `days` jours, déterministe à seed fixé
func SeedDatabase(db *sql.DB, days int, storeCodes []string, productLine string) error {
	if _, err := db.Exec(sourceDDL); err != nil {
		return fmt.Errorf("erreur création des tables sources: %w", err)
	}
	if _, err := db.Exec(`TRUNCATE pos_sales; DELETE FROM product_master; DELETE FROM stock_levels`); err != nil {
		return fmt.Errorf("erreur purge des tables sources: %w", err)
	}

	rng := rand.New(rand.NewSource(42))

	fmt.Println("🌱 Génération du référentiel produits...")
	products, err := seedProductMaster(db, rng, 40, productLine)
	if err != nil {
		return fmt.Errorf("erreur génération référentiel: %w", err)
	}

	fmt.Printf("🌱 Génération de %d jours de ventes TPV...\n", days)
	if err := seedPosSales(db, rng, days, storeCodes, products); err != nil {
		return fmt.Errorf("erreur génération ventes: %w", err)
	}

	fmt.Println("🌱 Génération des positions de stock...")
	if err := seedStockLevels(db, rng, storeCodes, products); err != nil {
		return fmt.Errorf("erreur génération stock: %w", err)
	}

	if _, err := db.Exec("ANALYZE"); err != nil {
		fmt.Println("⚠️ Attention: échec de l'analyse:", err)
	}
	return nil
}

// seedProductMaster génère le référentiel : une poignée de produits
// discontinués pour exercer le filtre d'activité
func seedProductMaster(db *sql.DB, rng *rand.Rand, count int, productLine string) ([]MasterProduct, error) {
	categories := []string{"Bougies", "Eaux de toilette", "Soins", "Maison"}

	products := make([]MasterProduct, 0, count)
	for i := 0; i < count; i++ {
		status := "active"
		if i%10 == 9 {
			status = "discontinued"
		}
		p := MasterProduct{
			SKU:          fmt.Sprintf("SKU-%04d", i+1),
			LifecycleRef: fmt.Sprintf("P%03d", i+1),
			ProductLine:  productLine,
			Category:     categories[rng.Intn(len(categories))],
			Status:       status,
		}
		if _, err := db.Exec(`
			INSERT INTO product_master (sku, lifecycle_ref, product_line, category, status)
			VALUES ($1, $2, $3, $4, $5)
		`, p.SKU, p.LifecycleRef, p.ProductLine, p.Category, p.Status); err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	fmt.Printf("   ✅ %d produits créés\n", len(products))
	return products, nil
}

// seedPosSales génère l'historique de tickets : un rythme de base par
// produit, gonflé le week-end, avec quelques grosses quantités au-dessus
// du seuil d'exclusion et quelques mouvements internes (PNFS)
func seedPosSales(db *sql.DB, rng *rand.Rand, days int, storeCodes []string, products []MasterProduct) error {
	start := time.Now().AddDate(0, 0, -days)
	total := 0

	for _, p := range products {
		baseRate := 0.5 + rng.Float64()*2.5 // unités/jour en moyenne

		for _, store := range storeCodes {
			for d := 0; d < days; d++ {
				date := start.AddDate(0, 0, d)
				rate := baseRate
				if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
					rate *= 1.6
				}
				if rng.Float64() > rate/3 {
					continue // pas de vente ce jour-là
				}

				sale := PosSale{
					SaleDate:     date,
					StoreCode:    store,
					SKU:          p.SKU,
					LifecycleRef: p.LifecycleRef,
					SaleType:     "PFS",
					ProductLine:  p.ProductLine,
					Quantity:     float64(1 + rng.Intn(4)),
				}
				switch {
				case rng.Intn(60) == 0:
					sale.Quantity = float64(20 + rng.Intn(30)) // commande corporate, hors seuil
				case rng.Intn(40) == 0:
					sale.SaleType = "PNFS" // mouvement interne
				}

				if _, err := db.Exec(`
					INSERT INTO pos_sales (sale_date, store_code, sku, lifecycle_ref, sale_type, product_line, quantity)
					VALUES ($1, $2, $3, $4, $5, $6, $7)
				`, sale.SaleDate, sale.StoreCode, sale.SKU, sale.LifecycleRef, sale.SaleType, sale.ProductLine, sale.Quantity); err != nil {
					return err
				}
				total++
			}
		}
	}

	fmt.Printf("   ✅ %d tickets créés\n", total)
	return nil
}

// seedStockLevels génère une position de stock par (magasin, produit),
// en laissant ~10% des couples sans ligne pour exercer le left join
func seedStockLevels(db *sql.DB, rng *rand.Rand, storeCodes []string, products []MasterProduct) error {
	total := 0
	for _, p := range products {
		for _, store := range storeCodes {
			if rng.Intn(10) == 0 {
				continue
			}

			line := StockLine{
				Location:     store,
				LifecycleRef: p.LifecycleRef,
				Category:     p.Category,
				StockType:    "PFS",
				ProductLine:  p.ProductLine,
				OnHand:       float64(rng.Intn(25)),
			}
			if line.OnHand > 2 {
				line.Reserved = float64(rng.Intn(3))
			}
			if _, err := db.Exec(`
				INSERT INTO stock_levels (location, lifecycle_ref, category, stock_type, product_line, on_hand, reserved)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
			`, line.Location, line.LifecycleRef, line.Category, line.StockType, line.ProductLine, line.OnHand, line.Reserved); err != nil {
				return err
			}
			total++
		}
	}

	fmt.Printf("   ✅ %d positions de stock créées\n", total)
	return nil
}
