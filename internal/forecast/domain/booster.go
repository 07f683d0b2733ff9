package domain

import (
	"errors"
	"fmt"
	"sort"
)

// ErrEmptyTrainingSet entraînement demandé sur une table vide ou dégénérée
var ErrEmptyTrainingSet = errors.New("booster: jeu d'entraînement vide")

// BoosterParams hyperparamètres du gradient boosting (fixés, pas de recherche)
type BoosterParams struct {
	Trees        int
	LearningRate float64
	MaxDepth     int
	MinLeafSize  int
}

// DefaultBoosterParams retourne les hyperparamètres de production
func DefaultBoosterParams() BoosterParams {
	return BoosterParams{Trees: 100, LearningRate: 0.08, MaxDepth: 5, MinLeafSize: 1}
}

// normalized remplace les valeurs absentes ou invalides par les défauts
func (p BoosterParams) normalized() BoosterParams {
	d := DefaultBoosterParams()
	if p.Trees <= 0 {
		p.Trees = d.Trees
	}
	if p.LearningRate <= 0 {
		p.LearningRate = d.LearningRate
	}
	if p.MaxDepth <= 0 {
		p.MaxDepth = d.MaxDepth
	}
	if p.MinLeafSize <= 0 {
		p.MinLeafSize = d.MinLeafSize
	}
	return p
}

// Booster régresseur par gradient boosting d'arbres de décision, perte
// quadratique : la prédiction initiale est la moyenne de la cible, puis
// chaque arbre apprend les résidus du modèle courant et s'ajoute avec le
// taux d'apprentissage en facteur de rétrécissement.
// L'ajustement est déterministe : les variables sont balayées dans l'ordre
// des colonnes et le premier meilleur split gagne
type Booster struct {
	params BoosterParams
	base   float64
	trees  []regressionTree
	fitted bool
}

// NewBooster crée un booster avec les hyperparamètres donnés
func NewBooster(params BoosterParams) *Booster {
	return &Booster{params: params.normalized()}
}

// Fit entraîne le modèle sur la matrice de variables et la cible.
// Toutes les lignes servent à l'entraînement, sans jeu de validation
func (b *Booster) Fit(features [][]float64, target []float64) error {
	if len(features) == 0 || len(target) == 0 {
		return ErrEmptyTrainingSet
	}
	if len(features) != len(target) {
		return fmt.Errorf("booster: %d lignes pour %d cibles", len(features), len(target))
	}
	width := len(features[0])
	for i, row := range features {
		if len(row) != width {
			return fmt.Errorf("booster: ligne %d de largeur %d, attendu %d", i, len(row), width)
		}
	}
	if width == 0 {
		return ErrEmptyTrainingSet
	}

	var sum float64
	for _, y := range target {
		sum += y
	}
	b.base = sum / float64(len(target))

	pred := make([]float64, len(target))
	for i := range pred {
		pred[i] = b.base
	}

	indices := make([]int, len(target))
	for i := range indices {
		indices[i] = i
	}

	residuals := make([]float64, len(target))
	b.trees = make([]regressionTree, 0, b.params.Trees)
	for t := 0; t < b.params.Trees; t++ {
		for i := range residuals {
			residuals[i] = target[i] - pred[i]
		}

		tree := buildTree(features, residuals, indices, b.params)
		b.trees = append(b.trees, tree)

		for i, row := range features {
			pred[i] += b.params.LearningRate * tree.predict(row)
		}
	}

	b.fitted = true
	return nil
}

// Predict retourne l'estimation du modèle pour une ligne de variables
func (b *Booster) Predict(row []float64) (float64, error) {
	if !b.fitted {
		return 0, errors.New("booster: predict avant fit")
	}

	out := b.base
	for i := range b.trees {
		out += b.params.LearningRate * b.trees[i].predict(row)
	}
	return out, nil
}

// treeNode nœud d'un arbre de régression ; feuille si left == -1
type treeNode struct {
	feature   int
	threshold float64
	left      int
	right     int
	value     float64
}

// regressionTree arbre CART stocké à plat dans une slice de nœuds
type regressionTree struct {
	nodes []treeNode
}

// predict descend l'arbre jusqu'à une feuille
func (t *regressionTree) predict(row []float64) float64 {
	i := 0
	for t.nodes[i].left != -1 {
		if row[t.nodes[i].feature] <= t.nodes[i].threshold {
			i = t.nodes[i].left
		} else {
			i = t.nodes[i].right
		}
	}
	return t.nodes[i].value
}

// buildTree construit un arbre de profondeur bornée par partitionnement
// glouton des résidus (minimisation de la somme des carrés)
func buildTree(features [][]float64, residuals []float64, indices []int, params BoosterParams) regressionTree {
	tree := regressionTree{}
	tree.grow(features, residuals, indices, 0, params)
	return tree
}

// grow ajoute le nœud couvrant `indices` et retourne son index
func (t *regressionTree) grow(features [][]float64, residuals []float64, indices []int, depth int, params BoosterParams) int {
	nodeIdx := len(t.nodes)
	t.nodes = append(t.nodes, treeNode{left: -1, right: -1, value: mean(residuals, indices)})

	if depth >= params.MaxDepth || len(indices) < 2*params.MinLeafSize {
		return nodeIdx
	}

	split, ok := bestSplit(features, residuals, indices, params.MinLeafSize)
	if !ok {
		return nodeIdx
	}

	var left, right []int
	for _, i := range indices {
		if features[i][split.feature] <= split.threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	t.nodes[nodeIdx].feature = split.feature
	t.nodes[nodeIdx].threshold = split.threshold
	t.nodes[nodeIdx].left = t.grow(features, residuals, left, depth+1, params)
	t.nodes[nodeIdx].right = t.grow(features, residuals, right, depth+1, params)
	return nodeIdx
}

// candidateSplit coupure candidate et somme des carrés résultante
type candidateSplit struct {
	feature   int
	threshold float64
	sse       float64
}

// bestSplit cherche la coupure (variable, seuil) qui minimise la somme des
// carrés des deux côtés. Balayage des variables dans l'ordre des colonnes,
// seuils aux médians de valeurs consécutives distinctes ; à somme égale la
// première coupure rencontrée est conservée
func bestSplit(features [][]float64, residuals []float64, indices []int, minLeaf int) (candidateSplit, bool) {
	best := candidateSplit{sse: nodeSSE(residuals, indices)}
	found := false
	width := len(features[indices[0]])

	order := make([]int, len(indices))
	for f := 0; f < width; f++ {
		copy(order, indices)
		feature := f
		sort.SliceStable(order, func(a, b int) bool {
			return features[order[a]][feature] < features[order[b]][feature]
		})

		// Sommes préfixes pour évaluer chaque coupure en O(1)
		var sumLeft, sqLeft float64
		var sumTotal, sqTotal float64
		for _, i := range order {
			sumTotal += residuals[i]
			sqTotal += residuals[i] * residuals[i]
		}

		n := len(order)
		for cut := 1; cut < n; cut++ {
			r := residuals[order[cut-1]]
			sumLeft += r
			sqLeft += r * r

			prev := features[order[cut-1]][feature]
			next := features[order[cut]][feature]
			if prev == next {
				continue
			}
			if cut < minLeaf || n-cut < minLeaf {
				continue
			}

			nl, nr := float64(cut), float64(n-cut)
			sseLeft := sqLeft - sumLeft*sumLeft/nl
			sumRight := sumTotal - sumLeft
			sseRight := (sqTotal - sqLeft) - sumRight*sumRight/nr

			if total := sseLeft + sseRight; total < best.sse {
				best = candidateSplit{feature: feature, threshold: (prev + next) / 2, sse: total}
				found = true
			}
		}
	}

	return best, found
}

func nodeSSE(residuals []float64, indices []int) float64 {
	m := mean(residuals, indices)
	var sse float64
	for _, i := range indices {
		d := residuals[i] - m
		sse += d * d
	}
	return sse
}

func mean(values []float64, indices []int) float64 {
	if len(indices) == 0 {
		return 0
	}
	var sum float64
	for _, i := range indices {
		sum += values[i]
	}
	return sum / float64(len(indices))
}
