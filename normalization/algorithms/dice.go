package algorithms

// DiceCoefficient вычисляет коэффициент Дайса по мультимножествам
// посимвольных биграмм: 2*|A ∩ B| / (|A| + |B|).
// Повторяющиеся биграммы учитываются столько раз, сколько встречаются
// (мультимножество, а не множество) — стандартное соглашение для этой
// метрики.
//
// Граничные случаи: идентичные строки дают ровно 1.0 (проверка равенства
// до вычисления биграмм, чтобы исключить потерю точности на float);
// обе пустые — 1.0; одна пустая — 0.0.
func DiceCoefficient(s1, s2 string) float64 {
	if s1 == s2 {
		return 1.0
	}
	if s1 == "" || s2 == "" {
		return 0.0
	}

	bigrams1 := characterBigrams(s1)
	bigrams2 := characterBigrams(s2)

	total := 0
	for _, n := range bigrams1 {
		total += n
	}
	for _, n := range bigrams2 {
		total += n
	}
	if total == 0 {
		// Обе строки из одного символа и не равны
		return 0.0
	}

	// Пересечение мультимножеств: сумма минимумов частот
	intersection := 0
	for bigram, n1 := range bigrams1 {
		if n2, ok := bigrams2[bigram]; ok {
			if n1 < n2 {
				intersection += n1
			} else {
				intersection += n2
			}
		}
	}

	return 2.0 * float64(intersection) / float64(total)
}

// characterBigrams возвращает мультимножество последовательных посимвольных
// биграмм строки (частоты по рунам, не байтам).
func characterBigrams(s string) map[string]int {
	runes := []rune(s)
	bigrams := make(map[string]int)
	for i := 0; i+1 < len(runes); i++ {
		bigrams[string(runes[i:i+2])]++
	}
	return bigrams
}
