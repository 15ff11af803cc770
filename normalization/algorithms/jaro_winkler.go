package algorithms

// JaroSimilarity вычисляет схожесть Джаро между двумя строками.
// Окно поиска совпадений: floor(max(len)/2) - 1; транспозиции считаются
// по совпавшим символам и делятся пополам. Работает по рунам, чтобы
// кириллица и латиница обрабатывались одинаково.
func JaroSimilarity(s1, s2 string) float64 {
	if s1 == s2 {
		return 1.0
	}

	r1 := []rune(s1)
	r2 := []rune(s2)
	len1 := len(r1)
	len2 := len(r2)

	if len1 == 0 || len2 == 0 {
		return 0.0
	}

	matchDist := len1
	if len2 > matchDist {
		matchDist = len2
	}
	matchDist = matchDist/2 - 1
	if matchDist < 0 {
		matchDist = 0
	}

	matched1 := make([]bool, len1)
	matched2 := make([]bool, len2)

	matches := 0
	for i := 0; i < len1; i++ {
		start := i - matchDist
		if start < 0 {
			start = 0
		}
		end := i + matchDist + 1
		if end > len2 {
			end = len2
		}

		for j := start; j < end; j++ {
			if matched2[j] || r1[i] != r2[j] {
				continue
			}
			matched1[i] = true
			matched2[j] = true
			matches++
			break
		}
	}

	if matches == 0 {
		return 0.0
	}

	// Считаем транспозиции среди совпавших символов
	transpositions := 0
	k := 0
	for i := 0; i < len1; i++ {
		if !matched1[i] {
			continue
		}
		for !matched2[k] {
			k++
		}
		if r1[i] != r2[k] {
			transpositions++
		}
		k++
	}

	m := float64(matches)
	t := float64(transpositions) / 2.0

	return (m/float64(len1) + m/float64(len2) + (m-t)/m) / 3.0
}

// JaroWinklerSimilarity вычисляет схожесть Джаро-Винклера: схожесть Джаро
// с бонусом за общий префикс (до 4 символов, коэффициент 0.1).
// Реализация следует учебному алгоритму точно — метрика несет вес в
// композитной оценке и сверяется тестами с эталонными значениями.
func JaroWinklerSimilarity(s1, s2 string) float64 {
	jaro := JaroSimilarity(s1, s2)

	r1 := []rune(s1)
	r2 := []rune(s2)

	prefixLen := 0
	maxPrefix := 4
	for i := 0; i < len(r1) && i < len(r2) && i < maxPrefix; i++ {
		if r1[i] != r2[i] {
			break
		}
		prefixLen++
	}

	const scalingFactor = 0.1
	return jaro + float64(prefixLen)*scalingFactor*(1.0-jaro)
}
