package domain

import (
	"errors"
	"fmt"
)

// ErrNotFitted encodeur utilisé avant l'appel à Fit
var ErrNotFitted = errors.New("encoder: transform avant fit")

// StoreTargetEncoder encode un point de vente par la moyenne lissée de la
// cible observée pour ce point de vente :
//
//	enc(s) = (n·t_s + k·t_g) / (n + k)
//
// avec n le nombre d'observations du magasin, t_s sa moyenne, t_g la moyenne
// globale et k la constante de lissage. Les magasins à faible volume sont
// ainsi ramenés vers la moyenne globale.
// Le mapping est figé par Fit et réutilisé tel quel pour l'entraînement et
// la prédiction du même run
type StoreTargetEncoder struct {
	smoothing  float64
	globalMean float64
	encodings  map[string]float64
	fitted     bool
}

// NewStoreTargetEncoder crée un encodeur avec la constante de lissage donnée
func NewStoreTargetEncoder(smoothing float64) *StoreTargetEncoder {
	if smoothing < 0 {
		smoothing = 0
	}
	return &StoreTargetEncoder{smoothing: smoothing}
}

// Fit calcule le mapping magasin → valeur encodée sur le jeu d'entraînement
func (e *StoreTargetEncoder) Fit(stores []string, target []float64) error {
	if len(stores) == 0 {
		return errors.New("store encoder: jeu d'entraînement vide")
	}
	if len(stores) != len(target) {
		return fmt.Errorf("store encoder: %d magasins pour %d cibles", len(stores), len(target))
	}

	sums := make(map[string]float64)
	counts := make(map[string]float64)
	var globalSum float64
	for i, store := range stores {
		sums[store] += target[i]
		counts[store]++
		globalSum += target[i]
	}
	e.globalMean = globalSum / float64(len(target))

	e.encodings = make(map[string]float64, len(sums))
	for store, sum := range sums {
		n := counts[store]
		e.encodings[store] = (sum + e.smoothing*e.globalMean) / (n + e.smoothing)
	}
	e.fitted = true
	return nil
}

// Transform retourne la valeur encodée d'un magasin. Un magasin jamais vu
// au fit retombe sur la moyenne globale
func (e *StoreTargetEncoder) Transform(store string) (float64, error) {
	if !e.fitted {
		return 0, ErrNotFitted
	}
	if enc, ok := e.encodings[store]; ok {
		return enc, nil
	}
	return e.globalMean, nil
}

// ProductOrdinalEncoder attribue à chaque produit un code ordinal stable,
// dans l'ordre de première apparition dans le jeu d'entraînement. Le même
// produit reçoit toujours le même code à l'intérieur d'un run
type ProductOrdinalEncoder struct {
	codes  map[string]int
	fitted bool
}

// NewProductOrdinalEncoder crée un encodeur ordinal vide
func NewProductOrdinalEncoder() *ProductOrdinalEncoder {
	return &ProductOrdinalEncoder{}
}

// Fit attribue les codes par ordre de première apparition
func (e *ProductOrdinalEncoder) Fit(products []string) error {
	if len(products) == 0 {
		return errors.New("product encoder: jeu d'entraînement vide")
	}

	e.codes = make(map[string]int)
	for _, product := range products {
		if _, seen := e.codes[product]; !seen {
			e.codes[product] = len(e.codes)
		}
	}
	e.fitted = true
	return nil
}

// Transform retourne le code d'un produit. Un produit inconnu est une
// erreur : la prédiction ne porte que sur des groupes déjà présents dans
// le jeu d'entraînement, un code inventé masquerait un bug d'aiguillage
func (e *ProductOrdinalEncoder) Transform(product string) (float64, error) {
	if !e.fitted {
		return 0, ErrNotFitted
	}
	code, ok := e.codes[product]
	if !ok {
		return 0, fmt.Errorf("product encoder: produit inconnu %q", product)
	}
	return float64(code), nil
}
