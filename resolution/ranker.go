package resolution

import (
	"sort"
	"strings"
)

// scoreEpsilon допуск сравнения оценок: оценки, отличающиеся меньше чем на
// эпсилон, считаются равными, чтобы ошибки округления не создавали ложного
// неравенства.
const scoreEpsilon = 1e-6

// Rank оценивает запрос против каждого кандидата независимо (O(n) по размеру
// набора, ожидаемые масштабы — сотни и единицы тысяч) и возвращает список
// по убыванию оценки. Порядок результата полностью детерминирован и не
// зависит от порядка кандидатов на входе: при равной оценке сравниваются
// перекрытие токенов, вхождение подстроки, нормализованное название и ID.
//
// normQuery должен быть уже нормализован тем же профилем, что и
// NormalizedName кандидатов.
func Rank(normQuery string, candidates []Candidate, scorer Scorer) []ScoredCandidate {
	queryTokens := strings.Fields(normQuery)

	scored := make([]ScoredCandidate, 0, len(candidates))
	for _, c := range candidates {
		scored = append(scored, ScoredCandidate{
			Candidate:    c,
			Score:        scorer.Score(normQuery, c.NormalizedName),
			TokenOverlap: sharedTokenCount(queryTokens, c.NormalizedName),
			Containment:  containsEitherWay(normQuery, c.NormalizedName),
		})
	}

	sort.Slice(scored, func(i, j int) bool {
		a, b := scored[i], scored[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.TokenOverlap != b.TokenOverlap {
			return a.TokenOverlap > b.TokenOverlap
		}
		if a.Containment != b.Containment {
			return a.Containment
		}
		if a.NormalizedName != b.NormalizedName {
			return a.NormalizedName < b.NormalizedName
		}
		return a.ID < b.ID
	})

	return scored
}

// BreakTie разбирает ничью среди кандидатов, попавших в окно близости к
// верхней оценке. Кандидаты внутри окна proximity считаются равными по
// оценке: сырая оценка 0.94 не перевешивает 0.935, выбор между ними делают
// содержательные признаки. Каждый шаг сужает круг только среди выживших на
// предыдущем:
//  1. Строго большая оценка, если разрыв превышает окно proximity
//     (эпсилон гасит ложное неравенство от округления)
//  2. Большее абсолютное число общих токенов с запросом
//  3. Вхождение подстроки (название содержит запрос или наоборот)
//  4. Лексикографически меньшее нормализованное название
//
// Если после всех шагов остаются минимум два неразличимых кандидата
// (одинаковое название), ничья неустранима: возвращается nil, и вызывающий
// обязан не выбирать автоматически.
func BreakTie(tied []ScoredCandidate, proximity float64) *ScoredCandidate {
	if len(tied) == 0 {
		return nil
	}
	if len(tied) == 1 {
		return &tied[0]
	}

	// Шаг 1: отсекаются только кандидаты за пределами окна близости
	maxScore := tied[0].Score
	for _, c := range tied[1:] {
		if c.Score > maxScore {
			maxScore = c.Score
		}
	}
	survivors := make([]ScoredCandidate, 0, len(tied))
	for _, c := range tied {
		if maxScore-c.Score <= proximity+scoreEpsilon {
			survivors = append(survivors, c)
		}
	}
	if len(survivors) == 1 {
		return &survivors[0]
	}

	// Шаг 2: максимальное перекрытие токенов
	maxOverlap := survivors[0].TokenOverlap
	for _, c := range survivors[1:] {
		if c.TokenOverlap > maxOverlap {
			maxOverlap = c.TokenOverlap
		}
	}
	next := survivors[:0]
	for _, c := range survivors {
		if c.TokenOverlap == maxOverlap {
			next = append(next, c)
		}
	}
	survivors = next
	if len(survivors) == 1 {
		return &survivors[0]
	}

	// Шаг 3: вхождение подстроки
	withContainment := make([]ScoredCandidate, 0, len(survivors))
	for _, c := range survivors {
		if c.Containment {
			withContainment = append(withContainment, c)
		}
	}
	if len(withContainment) == 1 {
		return &withContainment[0]
	}
	if len(withContainment) > 1 {
		survivors = withContainment
	}

	// Шаг 4: лексикографически меньшее название. Если минимум два кандидата
	// совпадают и по названию, различить их нечем.
	sort.Slice(survivors, func(i, j int) bool {
		return survivors[i].NormalizedName < survivors[j].NormalizedName
	})
	if survivors[0].NormalizedName == survivors[1].NormalizedName {
		return nil
	}
	return &survivors[0]
}

// sharedTokenCount считает абсолютное число различных токенов запроса,
// встречающихся в нормализованном названии кандидата. Именно счетчик,
// а не отношение Жаккара.
func sharedTokenCount(queryTokens []string, candidateName string) int {
	if len(queryTokens) == 0 {
		return 0
	}
	candidateTokens := make(map[string]bool)
	for _, t := range strings.Fields(candidateName) {
		candidateTokens[t] = true
	}

	seen := make(map[string]bool, len(queryTokens))
	count := 0
	for _, t := range queryTokens {
		if candidateTokens[t] && !seen[t] {
			seen[t] = true
			count++
		}
	}
	return count
}

// containsEitherWay проверяет вхождение подстроки в обе стороны.
func containsEitherWay(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}
