package algorithms

import (
	"math"
	"testing"
)

func TestTokenJaccard(t *testing.T) {
	sw := NewDefaultStopWordSet()

	tests := []struct {
		name     string
		t1, t2   string
		expected float64
	}{
		{"идентичные тексты", "дрель ударная makita", "дрель ударная makita", 1.0},
		{"обе пустые", "", "", 1.0},
		{"одна пустая", "дрель", "", 0.0},
		{"частичное пересечение", "дрель ударная makita", "дрель makita", 2.0 / 3.0},
		{"без пересечения", "дрель makita", "кабель ввг", 0.0},
		{"стоп-слова игнорируются", "болт и гайка", "болт гайка", 1.0},
		{"повторы токенов не влияют", "болт болт гайка", "болт гайка", 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := TokenJaccard(tt.t1, tt.t2, sw)
			if math.Abs(result-tt.expected) > 1e-9 {
				t.Errorf("TokenJaccard(%q, %q) = %f, want %f", tt.t1, tt.t2, result, tt.expected)
			}
		})
	}
}

func TestTokenNGramJaccard(t *testing.T) {
	sw := NewDefaultStopWordSet()

	tests := []struct {
		name     string
		t1, t2   string
		n        int
		expected float64
	}{
		{"идентичные биграммы", "дрель ударная makita", "дрель ударная makita", 2, 1.0},
		{"одна общая биграмма", "дрель ударная makita", "дрель ударная bosch", 2, 1.0 / 3.0},
		{"короче n у обоих", "дрель", "кабель", 2, 1.0},
		{"короче n у одного", "дрель", "дрель ударная", 2, 0.0},
		{"сдвиг на один токен", "x1 x2 x3 x4", "x2 x3 x4 x5", 3, 1.0 / 3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := TokenNGramJaccard(tt.t1, tt.t2, tt.n, sw)
			if math.Abs(result-tt.expected) > 1e-9 {
				t.Errorf("TokenNGramJaccard(%q, %q, %d) = %f, want %f", tt.t1, tt.t2, tt.n, result, tt.expected)
			}
		})
	}
}
