package resolution

// Status статус исхода разрешения.
type Status string

const (
	// StatusResolved однозначное совпадение, вмешательство человека не нужно
	StatusResolved Status = "resolved"
	// StatusCandidates несколько правдоподобных кандидатов, требуется
	// подтверждение человеком, даже для верхнего
	StatusCandidates Status = "candidates"
	// StatusUnresolved лучшая оценка ниже минимального порога, кандидат
	// по умолчанию не предлагается
	StatusUnresolved Status = "unresolved"
	// StatusDataError несколько эталонов с одинаковым нормализованным
	// названием — дефект справочных данных, ядро отказывается угадывать
	StatusDataError Status = "data_error"
)

// Outcome размеченный результат одного вызова Resolve. Какие поля заполнены,
// определяется статусом:
//   - StatusResolved:   Resolved и Confidence
//   - StatusCandidates: Candidates (по убыванию оценки) и Confidence (верхняя)
//   - StatusUnresolved: Candidates (может быть пустым)
//   - StatusDataError:  Duplicates и Message
//
// Исход создается заново на каждый вызов и сразу потребляется вызывающим.
type Outcome struct {
	Status      Status            `json:"status"`
	Resolved    *ScoredCandidate  `json:"resolved,omitempty"`
	Candidates  []ScoredCandidate `json:"candidates,omitempty"`
	Duplicates  []Candidate       `json:"duplicates,omitempty"`
	Confidence  float64           `json:"confidence"`
	TieDetected bool              `json:"tie_detected"`
	Message     string            `json:"message,omitempty"`
}

// IsResolved сообщает, закончился ли вызов автоматическим выбором кандидата.
func (o *Outcome) IsResolved() bool {
	return o.Status == StatusResolved
}
