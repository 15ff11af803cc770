package algorithms

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// StopWordSet множество стоп-слов, отбрасываемых при токенизации описаний.
// Набор настраивается внешне (конфигурация или файл) — новым доменам нужны
// свои слова-наполнители, поэтому список не зашит в код намертво, но
// поставляется со значениями по умолчанию.
type StopWordSet struct {
	words map[string]bool
}

// NewStopWordSet создает множество стоп-слов из списка.
// Слова приводятся к нижнему регистру.
func NewStopWordSet(words []string) *StopWordSet {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			set[w] = true
		}
	}
	return &StopWordSet{words: set}
}

// DefaultStopWords возвращает стандартный двуязычный список: короткие
// служебные слова русского и английского языков плюс доменные
// слова-наполнители (единицы измерения и упаковки).
func DefaultStopWords() []string {
	return []string{
		// Русские служебные слова
		"и", "в", "на", "с", "для", "по", "из", "к", "от", "о",
		"а", "но", "или", "то", "что", "как", "так", "это", "при", "до",

		// Английские служебные слова
		"the", "a", "an", "and", "or", "but", "in", "on", "at", "to",
		"for", "of", "with", "by", "from", "is", "are", "was", "were",

		// Доменные наполнители: единицы измерения и упаковки
		"unit", "units", "piece", "pieces", "pcs", "set", "sets", "pack",
		"шт", "штука", "штук", "ед", "компл", "комплект", "набор", "упак",
	}
}

// NewDefaultStopWordSet создает множество со стандартным списком.
func NewDefaultStopWordSet() *StopWordSet {
	return NewStopWordSet(DefaultStopWords())
}

// LoadStopWordSet загружает список стоп-слов из JSON файла (массив строк).
// Используется для доменной калибровки без пересборки.
func LoadStopWordSet(path string) (*StopWordSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read stop words file: %w", err)
	}

	var words []string
	if err := json.Unmarshal(data, &words); err != nil {
		return nil, fmt.Errorf("failed to parse stop words file %s: %w", path, err)
	}

	return NewStopWordSet(words), nil
}

// Contains проверяет, является ли слово стоп-словом.
func (sw *StopWordSet) Contains(word string) bool {
	return sw.words[strings.ToLower(word)]
}

// Add добавляет слово в множество.
func (sw *StopWordSet) Add(word string) {
	word = strings.ToLower(strings.TrimSpace(word))
	if word != "" {
		sw.words[word] = true
	}
}

// Len возвращает размер множества.
func (sw *StopWordSet) Len() int {
	return len(sw.words)
}

// FilterTokens возвращает токены текста без стоп-слов.
// Токены — последовательности непробельных символов, порядок сохраняется.
func (sw *StopWordSet) FilterTokens(text string) []string {
	fields := strings.Fields(text)
	result := make([]string, 0, len(fields))
	for _, f := range fields {
		if !sw.words[f] {
			result = append(result, f)
		}
	}
	return result
}
