package services

import (
	"context"
	"sync"
	"time"

	"nameresolver/catalog"
	"nameresolver/resolution"
)

// CandidateSource источник наборов кандидатов для сервиса разрешения.
// Реализуется каталогом; в тестах подменяется.
type CandidateSource interface {
	// Candidates возвращает снимок активных кандидатов типа
	Candidates(ctx context.Context, entityType string) ([]resolution.Candidate, error)
	// Get возвращает активного кандидата по ID
	Get(ctx context.Context, id string) (*resolution.Candidate, error)
	// FindByIdentifier ищет кандидата по ИНН/TIN (точное совпадение)
	FindByIdentifier(ctx context.Context, rawTIN string) (*resolution.Candidate, error)
}

// SnapshotSource CandidateSource поверх каталога с кэшированием снимков
// по типу сущности. Снимки создаются лениво и обновляются по TTL.
type SnapshotSource struct {
	store *catalog.Store
	ttl   time.Duration

	mu        sync.Mutex
	snapshots map[string]*catalog.Snapshot
}

// NewSnapshotSource создает источник снимков над каталогом.
func NewSnapshotSource(store *catalog.Store, ttl time.Duration) *SnapshotSource {
	return &SnapshotSource{
		store:     store,
		ttl:       ttl,
		snapshots: make(map[string]*catalog.Snapshot),
	}
}

// Candidates возвращает снимок кандидатов типа.
func (ss *SnapshotSource) Candidates(ctx context.Context, entityType string) ([]resolution.Candidate, error) {
	return ss.snapshot(entityType).Candidates(ctx)
}

// Get возвращает активного кандидата по ID напрямую из каталога.
func (ss *SnapshotSource) Get(ctx context.Context, id string) (*resolution.Candidate, error) {
	return ss.store.Get(ctx, id)
}

// FindByIdentifier ищет кандидата по идентификатору напрямую из каталога.
func (ss *SnapshotSource) FindByIdentifier(ctx context.Context, rawTIN string) (*resolution.Candidate, error) {
	return ss.store.FindByIdentifier(ctx, rawTIN)
}

// Invalidate сбрасывает снимок типа (после импорта или правки каталога).
func (ss *SnapshotSource) Invalidate(entityType string) {
	ss.mu.Lock()
	snap, ok := ss.snapshots[entityType]
	ss.mu.Unlock()
	if ok {
		snap.Invalidate()
	}
}

// snapshot возвращает снимок типа, создавая его при первом обращении.
func (ss *SnapshotSource) snapshot(entityType string) *catalog.Snapshot {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	snap, ok := ss.snapshots[entityType]
	if !ok {
		snap = catalog.NewSnapshot(ss.store, entityType, ss.ttl)
		ss.snapshots[entityType] = snap
	}
	return snap
}
