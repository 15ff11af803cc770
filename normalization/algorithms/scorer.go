package algorithms

import (
	"fmt"
	"math"
)

// ScoreIdentity вычисляет схожесть двух нормализованных названий
// (профиль сопоставления контрагентов): коэффициент Дайса по посимвольным
// биграммам как единственный сигнал. Пороги 0.86/0.92 откалиброваны именно
// под эту метрику, поэтому профиль не заменяется композитным.
//
// Для побайтово равных непустых строк возвращает ровно 1.0.
// Обе пустые — 1.0, одна пустая — 0.0.
func ScoreIdentity(a, b string) float64 {
	return DiceCoefficient(a, b)
}

// SimilarityWeights веса подоценок композитного профиля описаний.
// Сумма весов должна равняться 1.0.
type SimilarityWeights struct {
	Token       float64 `json:"token"`
	Bigram      float64 `json:"bigram"`
	Trigram     float64 `json:"trigram"`
	JaroWinkler float64 `json:"jaro_winkler"`
}

// DefaultSimilarityWeights возвращает веса по умолчанию:
// токены 0.40, биграммы 0.25, триграммы 0.20, Джаро-Винклер 0.15.
func DefaultSimilarityWeights() *SimilarityWeights {
	return &SimilarityWeights{
		Token:       0.40,
		Bigram:      0.25,
		Trigram:     0.20,
		JaroWinkler: 0.15,
	}
}

// ValidateWeights проверяет, что все веса неотрицательны и в сумме дают 1.0
// (с точностью до 1e-9).
func ValidateWeights(w *SimilarityWeights) error {
	if w == nil {
		return fmt.Errorf("weights are nil")
	}
	for name, v := range map[string]float64{
		"token":        w.Token,
		"bigram":       w.Bigram,
		"trigram":      w.Trigram,
		"jaro_winkler": w.JaroWinkler,
	} {
		if v < 0 {
			return fmt.Errorf("weight %s is negative: %f", name, v)
		}
	}
	sum := w.Token + w.Bigram + w.Trigram + w.JaroWinkler
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("weights must sum to 1.0, got %f", sum)
	}
	return nil
}

// DescriptionScorer композитный профиль схожести для свободных описаний
// товаров: взвешенная сумма четырех независимых подоценок.
type DescriptionScorer struct {
	weights   *SimilarityWeights
	stopWords *StopWordSet
}

// NewDescriptionScorer создает композитный профиль. Если weights или
// stopWords равны nil, используются значения по умолчанию.
func NewDescriptionScorer(weights *SimilarityWeights, stopWords *StopWordSet) *DescriptionScorer {
	if weights == nil {
		weights = DefaultSimilarityWeights()
	}
	if stopWords == nil {
		stopWords = NewDefaultStopWordSet()
	}
	return &DescriptionScorer{
		weights:   weights,
		stopWords: stopWords,
	}
}

// Score вычисляет композитную схожесть двух нормализованных описаний:
//   - Жаккар по токенам (после удаления стоп-слов), вес 0.40
//   - Жаккар по словесным биграммам, вес 0.25
//   - Жаккар по словесным триграммам, вес 0.20
//   - Джаро-Винклер по полным строкам (без фильтрации токенов), вес 0.15
//
// Побайтово равные строки дают ровно 1.0: короткое замыкание имеет
// приоритет над взвешенной суммой, чтобы настоящие дубликаты не теряли
// единицу из-за плавающей точки.
func (ds *DescriptionScorer) Score(a, b string) float64 {
	if a == b {
		return 1.0
	}

	token := TokenJaccard(a, b, ds.stopWords)
	bigram := TokenNGramJaccard(a, b, 2, ds.stopWords)
	trigram := TokenNGramJaccard(a, b, 3, ds.stopWords)
	jw := JaroWinklerSimilarity(a, b)

	return token*ds.weights.Token +
		bigram*ds.weights.Bigram +
		trigram*ds.weights.Trigram +
		jw*ds.weights.JaroWinkler
}

// SubScores возвращает подоценки по отдельности — для диагностики и
// калибровки весов.
func (ds *DescriptionScorer) SubScores(a, b string) map[string]float64 {
	return map[string]float64{
		"token":        TokenJaccard(a, b, ds.stopWords),
		"bigram":       TokenNGramJaccard(a, b, 2, ds.stopWords),
		"trigram":      TokenNGramJaccard(a, b, 3, ds.stopWords),
		"jaro_winkler": JaroWinklerSimilarity(a, b),
	}
}
