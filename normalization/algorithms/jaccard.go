package algorithms

import "strings"

// jaccardSets вычисляет индекс Жаккара |A ∩ B| / |A ∪ B| для двух множеств.
// Соглашение: два пустых множества идеально схожи (1.0).
func jaccardSets(set1, set2 map[string]bool) float64 {
	if len(set1) == 0 && len(set2) == 0 {
		return 1.0
	}
	if len(set1) == 0 || len(set2) == 0 {
		return 0.0
	}

	intersection := 0
	for elem := range set1 {
		if set2[elem] {
			intersection++
		}
	}

	union := len(set1) + len(set2) - intersection
	if union == 0 {
		return 0.0
	}

	return float64(intersection) / float64(union)
}

// tokensToSet преобразует срез токенов в множество.
func tokensToSet(tokens []string) map[string]bool {
	set := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		set[t] = true
	}
	return set
}

// tokenNGramSet строит множество N-грамм уровня слов: каждая грамма —
// последовательность из n соседних токенов, соединенных пробелом.
// Для текста короче n грамм не образуется (пустое множество).
func tokenNGramSet(tokens []string, n int) map[string]bool {
	set := make(map[string]bool)
	for i := 0; i+n <= len(tokens); i++ {
		set[strings.Join(tokens[i:i+n], " ")] = true
	}
	return set
}

// TokenJaccard вычисляет индекс Жаккара по множествам токенов двух текстов
// после удаления стоп-слов.
func TokenJaccard(text1, text2 string, stopWords *StopWordSet) float64 {
	tokens1 := stopWords.FilterTokens(text1)
	tokens2 := stopWords.FilterTokens(text2)
	return jaccardSets(tokensToSet(tokens1), tokensToSet(tokens2))
}

// TokenNGramJaccard вычисляет индекс Жаккара по множествам словесных N-грамм
// двух текстов после удаления стоп-слов.
func TokenNGramJaccard(text1, text2 string, n int, stopWords *StopWordSet) float64 {
	tokens1 := stopWords.FilterTokens(text1)
	tokens2 := stopWords.FilterTokens(text2)
	return jaccardSets(tokenNGramSet(tokens1, n), tokenNGramSet(tokens2, n))
}
