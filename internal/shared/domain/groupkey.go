package domain

import "fmt"

// GroupKey identifie une série temporelle indépendante : un couple
// (point de vente, produit). Toutes les opérations de fenêtre glissante
// et de décalage sont bornées à une seule clé.
// DESIGN PATTERN: Value Object (DDD)
//   - Immutable, égalité par valeur → utilisable comme clé de map
type GroupKey struct {
	store   string
	product string
}

// NewGroupKey crée une clé de groupe avec validation
func NewGroupKey(store, product string) (GroupKey, error) {
	if store == "" {
		return GroupKey{}, fmt.Errorf("group key: store vide")
	}
	if product == "" {
		return GroupKey{}, fmt.Errorf("group key: product vide")
	}
	return GroupKey{store: store, product: product}, nil
}

// MustNewGroupKey crée une clé en paniquant si invalide (usage tests/seed)
func MustNewGroupKey(store, product string) GroupKey {
	k, err := NewGroupKey(store, product)
	if err != nil {
		panic(fmt.Sprintf("invalid group key: %v", err))
	}
	return k
}

// Store retourne le code du point de vente
func (k GroupKey) Store() string {
	return k.store
}

// Product retourne l'identifiant produit
func (k GroupKey) Product() string {
	return k.product
}

// String retourne une représentation lisible pour les logs
func (k GroupKey) String() string {
	return k.store + "/" + k.product
}
