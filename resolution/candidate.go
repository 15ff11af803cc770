package resolution

// EntityTypeProduct тип эталона, сопоставляемого профилем описаний:
// нормализация и запроса, и названий каталога идет правилами описаний.
// Остальные типы (buyer, seller и прочие контрагенты) — профилем названий.
const EntityTypeProduct = "product"

// Candidate эталонная запись, с которой сопоставляется запрос: контрагент
// (покупатель/продавец) или позиция каталога товаров. Ядро опирается только
// на ID, NormalizedName и NormalizedTIN; Payload не интерпретируется и
// возвращается вызывающему как есть (адрес, email, коды).
//
// Набор кандидатов формирует внешний каталог: мягко удаленные записи в
// набор попадать не должны, ядро по статусу активности не фильтрует.
type Candidate struct {
	ID             string                 `json:"id"`
	DisplayName    string                 `json:"display_name"`
	NormalizedName string                 `json:"normalized_name"`
	NormalizedTIN  string                 `json:"normalized_tin,omitempty"`
	EntityType     string                 `json:"entity_type"`
	Payload        map[string]interface{} `json:"payload,omitempty"`
}

// ScoredCandidate кандидат с оценкой схожести и вспомогательными сигналами
// ранжирования. Живет только в рамках одного вызова Resolve, никогда не
// сохраняется.
type ScoredCandidate struct {
	Candidate
	Score        float64 `json:"score"`
	TokenOverlap int     `json:"token_overlap"`
	Containment  bool    `json:"containment"`
}

// Scorer вычисляет схожесть нормализованного запроса и нормализованного
// названия кандидата, значение в [0,1].
type Scorer interface {
	Score(query, candidate string) float64
}

// ScorerFunc адаптер функции к интерфейсу Scorer.
type ScorerFunc func(query, candidate string) float64

// Score реализует интерфейс Scorer.
func (f ScorerFunc) Score(query, candidate string) float64 {
	return f(query, candidate)
}
