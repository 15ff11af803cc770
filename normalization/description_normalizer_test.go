package normalization

import (
	"regexp"
	"testing"
)

func TestDescriptionNormalizer_Normalize(t *testing.T) {
	dn := NewDescriptionNormalizer()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"пустая строка", "", ""},
		{"нижний регистр", "Дрель УДАРНАЯ Makita", "дрель ударная makita"},
		{"префикс product", "Product: Дрель ударная", "дрель ударная"},
		{"префикс товар", "Товар: болт М8", "болт м8"},
		{"хвост состояния new", "Дрель Makita (new)", "дрель makita"},
		{"хвост состояния б/у", "Дрель Makita (б/у)", "дрель makita"},
		{"вложенные префиксы", "product: item: дрель", "дрель"},
		{"спецсимволы заменяются пробелом", "болт,М8;оцинк", "болт м8 оцинк"},
		{"дефис и слеш сохраняются", "кабель ВВГ-НГ 3/1.5", "кабель ввг-нг 3/1 5"},
		{"схлопывание пробелов", "дрель    ударная", "дрель ударная"},
		{"только пунктуация", "!!!???", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := dn.Normalize(tt.input)
			if result != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

// Удаление шаблонов-паразитов повторяется до стабилизации.
func TestDescriptionNormalizer_FillerStability(t *testing.T) {
	dn := NewDescriptionNormalizer()

	result := dn.Normalize("product: product: item: дрель (new)")
	if result != "дрель" {
		t.Errorf("ожидалась полная очистка меток, получено %q", result)
	}
}

func TestDescriptionNormalizer_Idempotent(t *testing.T) {
	dn := NewDescriptionNormalizer()

	inputs := []string{
		"Product: Дрель ударная Makita (new)",
		"болт,М8;оцинк",
		"кабель ВВГ-НГ 3х1.5",
	}

	for _, input := range inputs {
		once := dn.Normalize(input)
		twice := dn.Normalize(once)
		if once != twice {
			t.Errorf("Normalize не идемпотентна для %q: %q != %q", input, once, twice)
		}
	}
}

func TestDescriptionNormalizer_ExtraPatterns(t *testing.T) {
	dn := NewDescriptionNormalizerWithPatterns([]*regexp.Regexp{
		regexp.MustCompile(`^\s*арт\s*:\s*`),
	})

	result := dn.Normalize("Арт: 12345 дрель")
	if result != "12345 дрель" {
		t.Errorf("дополнительный шаблон не применился, получено %q", result)
	}
}
