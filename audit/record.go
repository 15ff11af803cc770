package audit

import (
	"time"

	"github.com/google/uuid"

	"nameresolver/resolution"
)

// ThresholdBand зона порогов, в которую попал исход.
type ThresholdBand string

const (
	BandExact      ThresholdBand = "exact"
	BandAuto       ThresholdBand = "auto"
	BandConfirm    ThresholdBand = "confirm"
	BandUnresolved ThresholdBand = "unresolved"
	BandDataError  ThresholdBand = "data_error"
)

// DecisionPath путь принятия решения.
type DecisionPath string

const (
	PathAuto       DecisionPath = "auto"
	PathConfirmed  DecisionPath = "confirmed"
	PathOverride   DecisionPath = "override"
	PathUnresolved DecisionPath = "unresolved"
	PathError      DecisionPath = "error"
)

// Record одна запись аудита решения о разрешении. Свободный текст запроса,
// адреса, email и прочие персональные данные в запись не попадают — только
// непрозрачные идентификаторы, оценки и классификации.
// Записи только добавляются: одна на попытку разрешения и еще одна, если
// человек позже подтвердил или переопределил исход.
type Record struct {
	ID             string        `json:"id"`
	Timestamp      time.Time     `json:"timestamp"`
	SubjectRef     string        `json:"subject_ref"`
	RequestID      string        `json:"request_id,omitempty"`
	Resolved       bool          `json:"resolved"`
	Confidence     float64       `json:"confidence"`
	ThresholdBand  ThresholdBand `json:"threshold_band"`
	DecisionPath   DecisionPath  `json:"decision_path"`
	CandidateCount int           `json:"candidate_count"`
	TieDetected    bool          `json:"tie_detected"`
}

// ClassifyOutcome выводит зону порогов и путь решения из исхода и тех же
// порогов, которыми пользовался движок — запись аудита воспроизводима по
// одному исходу.
func ClassifyOutcome(o *resolution.Outcome, cfg resolution.ThresholdConfig) (ThresholdBand, DecisionPath) {
	switch o.Status {
	case resolution.StatusDataError:
		return BandDataError, PathError
	case resolution.StatusResolved:
		if o.Confidence >= 1.0 {
			return BandExact, PathAuto
		}
		return BandAuto, PathAuto
	case resolution.StatusCandidates:
		return BandConfirm, PathUnresolved
	default:
		return BandUnresolved, PathUnresolved
	}
}

// NewRecord создает запись аудита для исхода разрешения. subjectRef —
// непрозрачная ссылка на разрешаемый субъект (ID документа или строки),
// candidateCount — размер набора кандидатов на входе.
func NewRecord(subjectRef, requestID string, o *resolution.Outcome, cfg resolution.ThresholdConfig, candidateCount int) Record {
	band, path := ClassifyOutcome(o, cfg)
	return Record{
		ID:             uuid.New().String(),
		Timestamp:      time.Now().UTC(),
		SubjectRef:     subjectRef,
		RequestID:      requestID,
		Resolved:       o.IsResolved(),
		Confidence:     o.Confidence,
		ThresholdBand:  band,
		DecisionPath:   path,
		CandidateCount: candidateCount,
		TieDetected:    o.TieDetected,
	}
}

// NewFollowUpRecord создает запись о позднейшем решении человека по ранее
// неоднозначному исходу: подтверждение предложенного кандидата или ручное
// переопределение. Связь с исходной попыткой — через тот же subjectRef.
func NewFollowUpRecord(subjectRef, requestID string, override bool, confidence float64) Record {
	path := PathConfirmed
	if override {
		path = PathOverride
	}
	return Record{
		ID:            uuid.New().String(),
		Timestamp:     time.Now().UTC(),
		SubjectRef:    subjectRef,
		RequestID:     requestID,
		Resolved:      true,
		Confidence:    confidence,
		ThresholdBand: BandConfirm,
		DecisionPath:  path,
	}
}
