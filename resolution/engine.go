package resolution

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"nameresolver/normalization"
	"nameresolver/normalization/algorithms"
)

// Ошибки некорректного входа. "Подходящего совпадения нет" ошибкой не
// является — это штатный исход StatusUnresolved.
var (
	// ErrEmptyQuery запрос пустой или нормализуется в пустую строку
	ErrEmptyQuery = errors.New("query is empty")
	// ErrNilCandidates набор кандидатов не передан (nil). Пустой непустой
	// срез допустим и дает StatusUnresolved с пустым списком
	ErrNilCandidates = errors.New("candidate set is nil")
)

// Normalizer приводит сырой запрос к той же канонической форме, в которой
// хранятся NormalizedName кандидатов.
type Normalizer func(string) string

// Engine движок разрешения: чистая функция от запроса, набора кандидатов и
// порогов. Состояния между вызовами нет, параллельные вызовы не требуют
// координации — набор кандидатов передается снимком по значению.
type Engine struct {
	scorer    Scorer
	normalize Normalizer
	cfg       ThresholdConfig
	logger    *slog.Logger
}

// NewEngine создает движок с произвольным профилем оценки и нормализации.
func NewEngine(scorer Scorer, normalize Normalizer, cfg ThresholdConfig) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid threshold config: %w", err)
	}
	return &Engine{
		scorer:    scorer,
		normalize: normalize,
		cfg:       cfg,
		logger:    slog.Default().With("component", "resolution_engine"),
	}, nil
}

// NewIdentityEngine создает движок профиля сопоставления контрагентов:
// нормализация названий + коэффициент Дайса.
func NewIdentityEngine(cfg ThresholdConfig) (*Engine, error) {
	return NewEngine(
		ScorerFunc(algorithms.ScoreIdentity),
		normalization.NormalizeName,
		cfg,
	)
}

// NewDescriptionEngine создает движок профиля каталога товаров:
// нормализация описаний + композитная оценка.
func NewDescriptionEngine(cfg ThresholdConfig, weights *algorithms.SimilarityWeights, stopWords *algorithms.StopWordSet) (*Engine, error) {
	scorer := algorithms.NewDescriptionScorer(weights, stopWords)
	dn := normalization.NewDescriptionNormalizer()
	return NewEngine(
		ScorerFunc(scorer.Score),
		dn.Normalize,
		cfg,
	)
}

// Config возвращает пороги движка.
func (e *Engine) Config() ThresholdConfig {
	return e.cfg
}

// Resolve сопоставляет свободный текст с набором кандидатов.
//
// Сначала набор проверяется на дубликаты: любые два кандидата с одинаковым
// NormalizedName — дефект справочника, StatusDataError со всеми дубликатами
// независимо от того, что спрашивает запрос. Движок не угадывает между
// неразличимыми эталонами.
//
// Стадия 1 — точное совпадение нормализованных названий. Ровно один
// кандидат — StatusResolved с уверенностью 1.0. Стадия выполняется строго
// до любой нечеткой оценки.
//
// Стадия 2 — нечеткая оценка всех кандидатов и ранжирование. Верхняя
// оценка ниже ConfirmThreshold — StatusUnresolved; в зоне
// [ConfirmThreshold, AutoThreshold) — StatusCandidates; от AutoThreshold —
// автоматическое разрешение, но если в окне TieProximity от верхней оценки
// не один кандидат, включается разбор ничьей, а неустранимая ничья
// понижает исход до StatusCandidates.
func (e *Engine) Resolve(query string, candidates []Candidate) (*Outcome, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	if candidates == nil {
		return nil, ErrNilCandidates
	}

	normQuery := e.normalize(query)
	if normQuery == "" {
		return nil, fmt.Errorf("%w: normalizes to empty string", ErrEmptyQuery)
	}

	// Проверка целостности набора: дубликаты нормализованных названий.
	// Срабатывает и когда запрос называет третье, постороннее название.
	if dups := duplicateNormalizedNames(candidates); len(dups) > 0 {
		e.logger.Warn("duplicate reference data detected",
			"duplicates", len(dups), "candidate_count", len(candidates))
		return &Outcome{
			Status:     StatusDataError,
			Duplicates: dups,
			Message: fmt.Sprintf("%d candidates share the same normalized name; "+
				"reference data requires manual cleanup", len(dups)),
		}, nil
	}

	// Стадия 1: точное совпадение. Дубликаты уже отсеяны, совпадение может
	// быть только единственным.
	for _, c := range candidates {
		if c.NormalizedName == normQuery {
			return &Outcome{
				Status: StatusResolved,
				Resolved: &ScoredCandidate{
					Candidate:    c,
					Score:        1.0,
					TokenOverlap: len(strings.Fields(normQuery)),
					Containment:  true,
				},
				Confidence: 1.0,
			}, nil
		}
	}

	// Стадия 2: нечеткая оценка
	ranked := Rank(normQuery, candidates, e.scorer)
	if len(ranked) == 0 {
		// Кандидатов на рассмотрение законно нет — это не ошибка входа
		return &Outcome{
			Status:     StatusUnresolved,
			Candidates: []ScoredCandidate{},
		}, nil
	}

	top := ranked[0]

	if top.Score < e.cfg.ConfirmThreshold {
		return &Outcome{
			Status:     StatusUnresolved,
			Candidates: capCandidates(ranked, e.cfg.MaxCandidates),
			Confidence: top.Score,
		}, nil
	}

	if top.Score < e.cfg.AutoThreshold {
		return &Outcome{
			Status:     StatusCandidates,
			Candidates: capCandidates(ranked, e.cfg.MaxCandidates),
			Confidence: top.Score,
		}, nil
	}

	// Зона автоматического разрешения: собираем претендентов в окне близости
	window := make([]ScoredCandidate, 0, 4)
	for _, c := range ranked {
		if top.Score-c.Score <= e.cfg.TieProximity {
			window = append(window, c)
		}
	}

	if len(window) == 1 {
		return &Outcome{
			Status:     StatusResolved,
			Resolved:   &window[0],
			Confidence: window[0].Score,
		}, nil
	}

	winner := BreakTie(window, e.cfg.TieProximity)
	if winner == nil {
		// Неустранимая ничья: даже оценка выше авто-порога не дает права
		// выбирать между неразличимыми кандидатами
		e.logger.Info("irreducible tie, downgrading to candidates",
			"window", len(window), "top_score", top.Score)
		return &Outcome{
			Status:      StatusCandidates,
			Candidates:  capCandidates(ranked, e.cfg.MaxCandidates),
			Confidence:  top.Score,
			TieDetected: true,
		}, nil
	}

	return &Outcome{
		Status:      StatusResolved,
		Resolved:    winner,
		Confidence:  winner.Score,
		TieDetected: true,
	}, nil
}

// Resolve сопоставляет запрос с кандидатами профилем контрагентов
// (нормализация названий + Дайс). Удобная обертка над Engine для вызовов
// без внедрения зависимостей.
func Resolve(query string, candidates []Candidate, cfg ThresholdConfig) (*Outcome, error) {
	engine, err := NewIdentityEngine(cfg)
	if err != nil {
		return nil, err
	}
	return engine.Resolve(query, candidates)
}

// duplicateNormalizedNames возвращает всех кандидатов, чье нормализованное
// название встречается в наборе больше одного раза, в порядке входа.
func duplicateNormalizedNames(candidates []Candidate) []Candidate {
	counts := make(map[string]int, len(candidates))
	for _, c := range candidates {
		counts[c.NormalizedName]++
	}

	var dups []Candidate
	for _, c := range candidates {
		if counts[c.NormalizedName] > 1 {
			dups = append(dups, c)
		}
	}
	return dups
}

// capCandidates ограничивает длину ранжированного списка.
func capCandidates(ranked []ScoredCandidate, max int) []ScoredCandidate {
	if max > 0 && len(ranked) > max {
		return ranked[:max]
	}
	return ranked
}
