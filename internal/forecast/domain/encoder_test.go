package domain

import (
	"math"
	"testing"
)

func TestStoreTargetEncoderSmoothing(t *testing.T) {
	// AND : 3 observations (2, 4, 6), CAS : 1 observation (10)
	stores := []string{"AND", "AND", "AND", "CAS"}
	target := []float64{2, 4, 6, 10}

	enc := NewStoreTargetEncoder(10)
	if err := enc.Fit(stores, target); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	global := 22.0 / 4.0 // 5.5
	wantAND := (3*4.0 + 10*global) / (3 + 10)
	wantCAS := (1*10.0 + 10*global) / (1 + 10)

	gotAND, err := enc.Transform("AND")
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	if math.Abs(gotAND-wantAND) > 1e-9 {
		t.Errorf("Expected AND encoding %f, got %f", wantAND, gotAND)
	}

	gotCAS, _ := enc.Transform("CAS")
	if math.Abs(gotCAS-wantCAS) > 1e-9 {
		t.Errorf("Expected CAS encoding %f, got %f", wantCAS, gotCAS)
	}

	// Un magasin à faible volume est plus proche de la moyenne globale
	if math.Abs(gotCAS-global) > math.Abs(10-global) {
		t.Error("Expected low-volume store to shrink toward the global mean")
	}
}

func TestStoreTargetEncoderUnknownStoreFallsBack(t *testing.T) {
	enc := NewStoreTargetEncoder(10)
	if err := enc.Fit([]string{"AND", "CAS"}, []float64{2, 4}); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	got, err := enc.Transform("ZGZ")
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	if got != 3 {
		t.Errorf("Expected global mean 3 for unseen store, got %f", got)
	}
}

func TestStoreTargetEncoderBeforeFit(t *testing.T) {
	enc := NewStoreTargetEncoder(10)
	if _, err := enc.Transform("AND"); err != ErrNotFitted {
		t.Errorf("Expected ErrNotFitted, got %v", err)
	}
}

func TestStoreTargetEncoderEmptyFit(t *testing.T) {
	enc := NewStoreTargetEncoder(10)
	if err := enc.Fit(nil, nil); err == nil {
		t.Error("Expected error on empty training set")
	}
}

func TestProductOrdinalEncoderFirstAppearanceOrder(t *testing.T) {
	enc := NewProductOrdinalEncoder()
	if err := enc.Fit([]string{"P2", "P1", "P2", "P3", "P1"}); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	want := map[string]float64{"P2": 0, "P1": 1, "P3": 2}
	for product, code := range want {
		got, err := enc.Transform(product)
		if err != nil {
			t.Fatalf("Transform(%s) failed: %v", product, err)
		}
		if got != code {
			t.Errorf("Expected code %f for %s, got %f", code, product, got)
		}
	}
}

func TestProductOrdinalEncoderStableWithinRun(t *testing.T) {
	enc := NewProductOrdinalEncoder()
	if err := enc.Fit([]string{"P1", "P2"}); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	first, _ := enc.Transform("P2")
	second, _ := enc.Transform("P2")
	if first != second {
		t.Errorf("Expected stable code, got %f then %f", first, second)
	}
}

func TestProductOrdinalEncoderUnknownProduct(t *testing.T) {
	enc := NewProductOrdinalEncoder()
	if err := enc.Fit([]string{"P1"}); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	if _, err := enc.Transform("P999"); err == nil {
		t.Error("Expected error for product unseen during fit")
	}
}
