package catalog

import (
	"context"
	"sync"
	"time"

	"nameresolver/resolution"
)

// Snapshot кэшируемый снимок набора кандидатов одного типа. Владеет им
// вызывающий, а не глобальное состояние: снимок передается в резолвер явно,
// контракт обновления (TTL, Refresh, Invalidate) тоже явный.
//
// Candidates отдает неизменяемый для ядра срез: движок получает
// согласованное на момент загрузки состояние каталога, конкурентные вызовы
// не видят частичных обновлений.
type Snapshot struct {
	store      *Store
	entityType string
	ttl        time.Duration

	mu         sync.RWMutex
	candidates []resolution.Candidate
	loadedAt   time.Time
}

// NewSnapshot создает снимок для типа сущности с указанным TTL.
// Нулевой TTL означает "перечитывать при каждом обращении".
func NewSnapshot(store *Store, entityType string, ttl time.Duration) *Snapshot {
	return &Snapshot{
		store:      store,
		entityType: entityType,
		ttl:        ttl,
	}
}

// Candidates возвращает кандидатов снимка, перечитывая каталог, если снимок
// устарел или еще не загружался.
func (s *Snapshot) Candidates(ctx context.Context) ([]resolution.Candidate, error) {
	s.mu.RLock()
	if s.fresh() {
		cached := s.candidates
		s.mu.RUnlock()
		return cached, nil
	}
	s.mu.RUnlock()

	return s.Refresh(ctx)
}

// Refresh принудительно перечитывает каталог.
func (s *Snapshot) Refresh(ctx context.Context) ([]resolution.Candidate, error) {
	candidates, err := s.store.ActiveCandidates(ctx, s.entityType)
	if err != nil {
		return nil, err
	}
	if candidates == nil {
		// Пустой каталог — законный снимок; nil зарезервирован за
		// "набор не передан"
		candidates = []resolution.Candidate{}
	}

	s.mu.Lock()
	s.candidates = candidates
	s.loadedAt = time.Now()
	s.mu.Unlock()

	return candidates, nil
}

// Invalidate сбрасывает снимок: следующее обращение перечитает каталог.
func (s *Snapshot) Invalidate() {
	s.mu.Lock()
	s.loadedAt = time.Time{}
	s.candidates = nil
	s.mu.Unlock()
}

// LoadedAt возвращает время последней загрузки (нулевое — не загружался).
func (s *Snapshot) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

// fresh проверяет актуальность под уже взятой блокировкой чтения.
func (s *Snapshot) fresh() bool {
	if s.loadedAt.IsZero() || s.candidates == nil {
		return false
	}
	if s.ttl <= 0 {
		return false
	}
	return time.Since(s.loadedAt) < s.ttl
}
