package algorithms

import (
	"strings"
	"sync"

	"github.com/kljensen/snowball"
)

// Stemmer приводит слова к основе алгоритмом Snowball. Используется в
// диагностическом сравнении: стемминг снимает расхождения словоформ
// ("кабеля"/"кабель", "drills"/"drill"), которые токенный Жаккар считает
// разными словами.
type Stemmer struct {
	language string
	cache    map[string]string
	mu       sync.RWMutex
}

// NewStemmer создает стеммер для указанного языка ("russian", "english").
func NewStemmer(language string) *Stemmer {
	return &Stemmer{
		language: language,
		cache:    make(map[string]string),
	}
}

// Stem возвращает основу слова. Результаты кэшируются — словарь реальных
// каталогов невелик, а Snowball заметно дороже поиска в map.
func (s *Stemmer) Stem(word string) string {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return ""
	}

	s.mu.RLock()
	if cached, ok := s.cache[word]; ok {
		s.mu.RUnlock()
		return cached
	}
	s.mu.RUnlock()

	stemmed, err := snowball.Stem(word, s.language, false)
	if err != nil {
		// Слово не поддается стеммингу (смешанный алфавит, цифры) —
		// оставляем как есть
		stemmed = word
	}

	s.mu.Lock()
	s.cache[word] = stemmed
	s.mu.Unlock()

	return stemmed
}

// StemTokens возвращает основы всех токенов, сохраняя порядок.
func (s *Stemmer) StemTokens(tokens []string) []string {
	result := make([]string, len(tokens))
	for i, t := range tokens {
		result[i] = s.Stem(t)
	}
	return result
}

// StemmedTokenJaccard вычисляет индекс Жаккара по множествам основ токенов
// (после удаления стоп-слов). Диагностическая метрика, в композитные
// профили не входит.
func StemmedTokenJaccard(text1, text2 string, stopWords *StopWordSet, stemmer *Stemmer) float64 {
	tokens1 := stemmer.StemTokens(stopWords.FilterTokens(text1))
	tokens2 := stemmer.StemTokens(stopWords.FilterTokens(text2))
	return jaccardSets(tokensToSet(tokens1), tokensToSet(tokens2))
}
