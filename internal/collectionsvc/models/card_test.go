package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidCondition(t *testing.T) {
	tests := []struct {
		name      string
		condition string
		valid     bool
	}{
		{"near mint", "NM", true},
		{"lightly played", "LP", true},
		{"moderately played", "MP", true},
		{"heavily played", "HP", true},
		{"damaged", "DMG", true},
		{"lowercase", "nm", false},
		{"empty", "", false},
		{"unknown", "EX", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidCondition(tt.condition); got != tt.valid {
				t.Errorf("ValidCondition(%q) = %v, want %v", tt.condition, got, tt.valid)
			}
		})
	}
}

func TestConditionsOrder(t *testing.T) {
	// Best to worst; the dashboard relies on this ordering.
	want := []string{"NM", "LP", "MP", "HP", "DMG"}
	if len(Conditions) != len(want) {
		t.Fatalf("len(Conditions) = %d, want %d", len(Conditions), len(want))
	}
	for i, c := range want {
		if Conditions[i] != c {
			t.Errorf("Conditions[%d] = %q, want %q", i, Conditions[i], c)
		}
	}
}

func TestCardUpdateEmpty(t *testing.T) {
	if !(CardUpdate{}).Empty() {
		t.Error("zero update should be empty")
	}

	name := "Mew"
	if (CardUpdate{Name: &name}).Empty() {
		t.Error("update with a name is not empty")
	}

	v := decimal.NewFromInt(10)
	if (CardUpdate{EstimatedValue: &v}).Empty() {
		t.Error("update with a value is not empty")
	}
}
