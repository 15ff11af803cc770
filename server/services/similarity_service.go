package services

import (
	"nameresolver/normalization"
	"nameresolver/normalization/algorithms"
	apperrors "nameresolver/server/errors"
)

// SimilarityService диагностическое сравнение пары строк всеми доступными
// метриками. Используется при калибровке порогов и разборе спорных
// сопоставлений.
type SimilarityService struct {
	stopWords  *algorithms.StopWordSet
	stemmer    *algorithms.Stemmer
	descNorm   *normalization.DescriptionNormalizer
	descScorer *algorithms.DescriptionScorer
}

// NewSimilarityService создает диагностический сервис.
func NewSimilarityService(weights *algorithms.SimilarityWeights, stopWords *algorithms.StopWordSet, stemmerLanguage string) *SimilarityService {
	if stopWords == nil {
		stopWords = algorithms.NewDefaultStopWordSet()
	}
	if stemmerLanguage == "" {
		stemmerLanguage = "russian"
	}
	return &SimilarityService{
		stopWords:  stopWords,
		stemmer:    algorithms.NewStemmer(stemmerLanguage),
		descNorm:   normalization.NewDescriptionNormalizer(),
		descScorer: algorithms.NewDescriptionScorer(weights, stopWords),
	}
}

// Compare сравнивает две строки обоими профилями и отдельными метриками.
// Строки нормализуются внутри: профиль названий — правилами названий,
// профиль описаний — правилами описаний.
func (ss *SimilarityService) Compare(string1, string2 string) (map[string]interface{}, error) {
	if string1 == "" || string2 == "" {
		return nil, apperrors.NewValidationError("обе строки обязательны", nil)
	}

	name1 := normalization.NormalizeName(string1)
	name2 := normalization.NormalizeName(string2)
	desc1 := ss.descNorm.Normalize(string1)
	desc2 := ss.descNorm.Normalize(string2)

	results := map[string]interface{}{
		// Профиль контрагентов
		"identity": algorithms.ScoreIdentity(name1, name2),

		// Профиль описаний и его подоценки
		"description":            ss.descScorer.Score(desc1, desc2),
		"description_sub_scores": ss.descScorer.SubScores(desc1, desc2),

		// Отдельные метрики
		"dice":         algorithms.DiceCoefficient(desc1, desc2),
		"jaro":         algorithms.JaroSimilarity(desc1, desc2),
		"jaro_winkler": algorithms.JaroWinklerSimilarity(desc1, desc2),
		"token_jaccard": algorithms.TokenJaccard(
			desc1, desc2, ss.stopWords),
		"stemmed_token_jaccard": algorithms.StemmedTokenJaccard(
			desc1, desc2, ss.stopWords, ss.stemmer),
	}

	return map[string]interface{}{
		"string1":          string1,
		"string2":          string2,
		"normalized_name":  []string{name1, name2},
		"normalized_descr": []string{desc1, desc2},
		"results":          results,
	}, nil
}
