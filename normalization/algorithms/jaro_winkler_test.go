package algorithms

import (
	"math"
	"testing"
)

func TestJaroSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		s1, s2   string
		expected float64
	}{
		{"идентичные строки", "MARTHA", "MARTHA", 1.0},
		{"обе пустые", "", "", 1.0},
		{"одна пустая", "MARTHA", "", 0.0},
		{"без совпадений", "ABC", "XYZ", 0.0},
		{"транспозиция", "MARTHA", "MARHTA", 0.944444},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := JaroSimilarity(tt.s1, tt.s2)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("JaroSimilarity(%q, %q) = %f, want %f", tt.s1, tt.s2, result, tt.expected)
			}
		})
	}
}

// Эталонные значения из литературы по record linkage.
func TestJaroWinklerSimilarity_Reference(t *testing.T) {
	tests := []struct {
		s1, s2   string
		expected float64
	}{
		{"MARTHA", "MARHTA", 0.961},
		{"DIXON", "DICKSONX", 0.813},
		{"DWAYNE", "DUANE", 0.840},
	}

	for _, tt := range tests {
		result := JaroWinklerSimilarity(tt.s1, tt.s2)
		if math.Abs(result-tt.expected) > 0.001 {
			t.Errorf("JaroWinklerSimilarity(%q, %q) = %f, want %f", tt.s1, tt.s2, result, tt.expected)
		}
	}
}

// Бонус за префикс ограничен четырьмя символами.
func TestJaroWinklerSimilarity_PrefixCap(t *testing.T) {
	// Общий префикс 6 символов, но бонус считается максимум за 4
	s1 := "PREFIXAAA"
	s2 := "PREFIXBBB"

	jaro := JaroSimilarity(s1, s2)
	expected := jaro + 4*0.1*(1.0-jaro)
	result := JaroWinklerSimilarity(s1, s2)

	if math.Abs(result-expected) > 1e-9 {
		t.Errorf("бонус за префикс не ограничен: got %f, want %f", result, expected)
	}
}

func TestJaroWinklerSimilarity_Cyrillic(t *testing.T) {
	// Работа по рунам: кириллица не должна ломать окно поиска
	result := JaroWinklerSimilarity("РОМАШКА", "РОМАШКА")
	if result != 1.0 {
		t.Errorf("идентичная кириллица должна давать 1.0, получено %f", result)
	}

	partial := JaroWinklerSimilarity("РОМАШКА", "РОМАШКА ПЛЮС")
	if partial <= 0.0 || partial >= 1.0 {
		t.Errorf("частичное совпадение должно быть в (0, 1), получено %f", partial)
	}
}

func TestJaroWinklerSimilarity_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"MARTHA", "MARHTA"},
		{"ДРЕЛЬ УДАРНАЯ", "ДРЕЛЬ"},
		{"DIXON", "DICKSONX"},
	}

	for _, p := range pairs {
		ab := JaroWinklerSimilarity(p[0], p[1])
		ba := JaroWinklerSimilarity(p[1], p[0])
		if math.Abs(ab-ba) > 1e-9 {
			t.Errorf("JaroWinklerSimilarity несимметричен для (%q, %q): %f != %f", p[0], p[1], ab, ba)
		}
	}
}
