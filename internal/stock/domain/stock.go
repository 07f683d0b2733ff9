package domain

// UnclassifiedCategory gamme par défaut quand le stock ne connaît pas le produit
const UnclassifiedCategory = "Unclassified"

// StockLevel position de stock disponible d'un produit dans un point de
// vente : l'en-main net des réservations, avec la gamme commerciale
type StockLevel struct {
	Store        string
	Product      string
	Category     string
	CurrentStock float64
}
