package csvfile

import (
	"reflect"
	"testing"
)

func TestNormalizeAliases(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want string
	}{
		{"value", "Value", "estimatedValue"},
		{"estimated_value", "estimated_value", "estimatedValue"},
		{"estimatedvalue mixed case", "EstimatedValue", "estimatedValue"},
		{"qty", "Qty", "quantity"},
		{"quantity", "Quantity", "quantity"},
		{"game", "game", "category"},
		{"tcg", "TCG", "category"},
		{"padded alias", "  value  ", "estimatedValue"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Normalize(map[string]string{tt.key: "x"})
			if v, ok := out[tt.want]; !ok || v != "x" {
				t.Errorf("Normalize(%q) = %v, want key %q", tt.key, out, tt.want)
			}
		})
	}
}

func TestNormalizePassthrough(t *testing.T) {
	out := Normalize(map[string]string{
		"Name":      "Pikachu",
		"SET":       "Jungle",
		"Condition": "NM",
		"Foil":      "yes",
	})

	want := map[string]string{
		"name":      "Pikachu",
		"set":       "Jungle",
		"condition": "NM",
		"foil":      "yes",
	}
	if !reflect.DeepEqual(out, want) {
		t.Errorf("Normalize passthrough = %v, want %v", out, want)
	}
}

func TestNormalizeNeverDropsKeys(t *testing.T) {
	in := map[string]string{
		"name": "Pikachu", "set": "Jungle", "condition": "NM",
		"tcg": "Pokemon", "value": "15.50", "qty": "4", "notes": "gift",
	}
	out := Normalize(in)
	if len(out) != len(in) {
		t.Errorf("got %d keys, want %d: %v", len(out), len(in), out)
	}
}
