package domain

import "testing"

func TestNewGroupKey(t *testing.T) {
	key, err := NewGroupKey("AND", "REF-001")
	if err != nil {
		t.Fatalf("NewGroupKey failed: %v", err)
	}
	if key.Store() != "AND" {
		t.Errorf("Expected store AND, got %s", key.Store())
	}
	if key.Product() != "REF-001" {
		t.Errorf("Expected product REF-001, got %s", key.Product())
	}
	if key.String() != "AND/REF-001" {
		t.Errorf("Expected AND/REF-001, got %s", key.String())
	}
}

func TestNewGroupKeyValidation(t *testing.T) {
	if _, err := NewGroupKey("", "REF-001"); err == nil {
		t.Error("Expected error for empty store")
	}
	if _, err := NewGroupKey("AND", ""); err == nil {
		t.Error("Expected error for empty product")
	}
}

func TestGroupKeyEqualityAsMapKey(t *testing.T) {
	seen := map[GroupKey]int{}
	seen[MustNewGroupKey("AND", "REF-001")] = 1
	seen[MustNewGroupKey("AND", "REF-001")] = 2

	if len(seen) != 1 {
		t.Errorf("Expected value equality to collapse duplicate keys, got %d entries", len(seen))
	}
	if seen[MustNewGroupKey("AND", "REF-001")] != 2 {
		t.Errorf("Expected last write to win, got %d", seen[MustNewGroupKey("AND", "REF-001")])
	}
}

func TestMustNewGroupKeyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for invalid key")
		}
	}()
	MustNewGroupKey("", "")
}
