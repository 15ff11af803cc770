package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"nameresolver/audit"
	"nameresolver/catalog"
	"nameresolver/normalization/algorithms"
	"nameresolver/resolution"
	apperrors "nameresolver/server/errors"
	"nameresolver/server/middleware"
)

// ResolutionService связывает движок разрешения, каталог и аудит: на каждый
// вызов берет снимок кандидатов, прогоняет движок и протоколирует исход.
type ResolutionService struct {
	source            CandidateSource
	identityEngine    *resolution.Engine
	descriptionEngine *resolution.Engine
	sink              audit.Sink
	cfg               resolution.ThresholdConfig
	logger            *slog.Logger
}

// NewResolutionService создает сервис разрешения.
func NewResolutionService(
	source CandidateSource,
	sink audit.Sink,
	cfg resolution.ThresholdConfig,
	weights *algorithms.SimilarityWeights,
	stopWords *algorithms.StopWordSet,
) (*ResolutionService, error) {
	identityEngine, err := resolution.NewIdentityEngine(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create identity engine: %w", err)
	}
	descriptionEngine, err := resolution.NewDescriptionEngine(cfg, weights, stopWords)
	if err != nil {
		return nil, fmt.Errorf("failed to create description engine: %w", err)
	}

	return &ResolutionService{
		source:            source,
		identityEngine:    identityEngine,
		descriptionEngine: descriptionEngine,
		sink:              sink,
		cfg:               cfg,
		logger:            slog.Default().With("component", "resolution_service"),
	}, nil
}

// Resolve сопоставляет свободный текст с каталогом типа entityType.
// subjectRef — непрозрачная ссылка на разрешаемый субъект (ID документа или
// строки счета); в аудит попадает только она, не сам текст.
func (rs *ResolutionService) Resolve(ctx context.Context, subjectRef, query, entityType string) (*resolution.Outcome, error) {
	if entityType == "" {
		return nil, apperrors.NewValidationError("entity_type обязателен", nil)
	}

	candidates, err := rs.source.Candidates(ctx, entityType)
	if err != nil {
		return nil, apperrors.NewInternalError("не удалось получить снимок каталога", err)
	}

	engine := rs.engineFor(entityType)
	outcome, err := engine.Resolve(query, candidates)
	if err != nil {
		if errors.Is(err, resolution.ErrEmptyQuery) || errors.Is(err, resolution.ErrNilCandidates) {
			return nil, apperrors.NewValidationError("некорректный запрос разрешения", err)
		}
		return nil, apperrors.NewInternalError("ошибка движка разрешения", err)
	}

	rs.sink.Record(audit.NewRecord(
		subjectRef,
		middleware.GetRequestID(ctx),
		outcome,
		rs.cfg,
		len(candidates),
	))

	return outcome, nil
}

// Confirm протоколирует позднейшее решение человека по неоднозначному
// исходу: подтверждение кандидата или ручное переопределение. Возвращает
// выбранного кандидата с нетронутым payload.
func (rs *ResolutionService) Confirm(ctx context.Context, subjectRef, candidateID string, override bool) (*resolution.Candidate, error) {
	if subjectRef == "" || candidateID == "" {
		return nil, apperrors.NewValidationError("subject_ref и candidate_id обязательны", nil)
	}

	candidate, err := rs.source.Get(ctx, candidateID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("кандидат не найден", err)
		}
		return nil, apperrors.NewInternalError("не удалось получить кандидата", err)
	}

	rs.sink.Record(audit.NewFollowUpRecord(
		subjectRef,
		middleware.GetRequestID(ctx),
		override,
		1.0,
	))

	rs.logger.Info("manual decision recorded",
		"subject_ref", subjectRef, "override", override)
	return candidate, nil
}

// LookupByIdentifier ищет кандидата по ИНН/TIN. Точное совпадение
// идентификатора — отдельный путь, нечеткая оценка не участвует.
func (rs *ResolutionService) LookupByIdentifier(ctx context.Context, rawTIN string) (*resolution.Candidate, error) {
	if rawTIN == "" {
		return nil, apperrors.NewValidationError("идентификатор обязателен", nil)
	}

	candidate, err := rs.source.FindByIdentifier(ctx, rawTIN)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("кандидат с таким идентификатором не найден", err)
		}
		return nil, apperrors.NewInternalError("не удалось выполнить поиск по идентификатору", err)
	}
	return candidate, nil
}

// engineFor выбирает профиль по типу сущности.
func (rs *ResolutionService) engineFor(entityType string) *resolution.Engine {
	if entityType == resolution.EntityTypeProduct {
		return rs.descriptionEngine
	}
	return rs.identityEngine
}
