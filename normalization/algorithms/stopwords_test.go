package algorithms

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestStopWordSet_Contains(t *testing.T) {
	sw := NewStopWordSet([]string{"И", " для ", "the"})

	tests := []struct {
		word     string
		expected bool
	}{
		{"и", true},
		{"И", true},
		{"для", true},
		{"the", true},
		{"THE", true},
		{"дрель", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := sw.Contains(tt.word); got != tt.expected {
			t.Errorf("Contains(%q) = %v, want %v", tt.word, got, tt.expected)
		}
	}
}

func TestStopWordSet_FilterTokens(t *testing.T) {
	sw := NewDefaultStopWordSet()

	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{"пустой текст", "", []string{}},
		{"только стоп-слова", "и для по", []string{}},
		{"смешанный текст", "болт и гайка для дрели", []string{"болт", "гайка", "дрели"}},
		{"единицы измерения", "болт м8 шт 100", []string{"болт", "м8", "100"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := sw.FilterTokens(tt.text)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("FilterTokens(%q) = %v, want %v", tt.text, result, tt.expected)
			}
		})
	}
}

func TestStopWordSet_Add(t *testing.T) {
	sw := NewStopWordSet(nil)
	if sw.Len() != 0 {
		t.Fatalf("пустое множество должно иметь размер 0, получено %d", sw.Len())
	}

	sw.Add("Паразит")
	sw.Add("")
	sw.Add("  ")

	if sw.Len() != 1 {
		t.Errorf("ожидался размер 1, получено %d", sw.Len())
	}
	if !sw.Contains("паразит") {
		t.Error("добавленное слово не найдено")
	}
}

func TestLoadStopWordSet(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stopwords.json")
	if err := os.WriteFile(path, []byte(`["и", "для", "шт"]`), 0644); err != nil {
		t.Fatal(err)
	}

	sw, err := LoadStopWordSet(path)
	if err != nil {
		t.Fatalf("LoadStopWordSet вернул ошибку: %v", err)
	}
	if sw.Len() != 3 {
		t.Errorf("ожидался размер 3, получено %d", sw.Len())
	}
	if !sw.Contains("шт") {
		t.Error("загруженное слово не найдено")
	}
}

func TestLoadStopWordSet_Errors(t *testing.T) {
	if _, err := LoadStopWordSet("/nonexistent/stopwords.json"); err == nil {
		t.Error("ожидалась ошибка для несуществующего файла")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(path, []byte(`{"not": "array"}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadStopWordSet(path); err == nil {
		t.Error("ожидалась ошибка для некорректного JSON")
	}
}
