package catalog

import (
	"context"
	"testing"
	"time"
)

func TestSnapshot_LoadsOnFirstAccess(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Upsert(ctx, "c-1", "Ромашка", "", "counterparty", nil); err != nil {
		t.Fatal(err)
	}

	snap := NewSnapshot(store, "counterparty", time.Minute)
	if !snap.LoadedAt().IsZero() {
		t.Error("до первого обращения снимок не должен быть загружен")
	}

	candidates, err := snap.Candidates(ctx)
	if err != nil {
		t.Fatalf("Candidates вернул ошибку: %v", err)
	}
	if len(candidates) != 1 {
		t.Errorf("кандидатов = %d, want 1", len(candidates))
	}
	if snap.LoadedAt().IsZero() {
		t.Error("после обращения время загрузки должно быть заполнено")
	}
}

// Пустой каталог дает пустой (не nil) срез: nil зарезервирован за
// "набор не передан".
func TestSnapshot_EmptyCatalogNotNil(t *testing.T) {
	store := newTestStore(t)

	snap := NewSnapshot(store, "counterparty", time.Minute)
	candidates, err := snap.Candidates(context.Background())
	if err != nil {
		t.Fatalf("Candidates вернул ошибку: %v", err)
	}
	if candidates == nil {
		t.Error("пустой каталог должен давать пустой срез, не nil")
	}
	if len(candidates) != 0 {
		t.Errorf("кандидатов = %d, want 0", len(candidates))
	}
}

// В пределах TTL снимок не видит изменений каталога; Invalidate сбрасывает.
func TestSnapshot_TTLAndInvalidate(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Upsert(ctx, "c-1", "Ромашка", "", "counterparty", nil); err != nil {
		t.Fatal(err)
	}

	snap := NewSnapshot(store, "counterparty", time.Hour)
	first, err := snap.Candidates(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != 1 {
		t.Fatalf("кандидатов = %d, want 1", len(first))
	}

	if err := store.Upsert(ctx, "c-2", "Василек", "", "counterparty", nil); err != nil {
		t.Fatal(err)
	}

	cached, err := snap.Candidates(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(cached) != 1 {
		t.Errorf("свежий снимок должен отдаваться из кэша, кандидатов = %d", len(cached))
	}

	snap.Invalidate()
	reloaded, err := snap.Candidates(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(reloaded) != 2 {
		t.Errorf("после Invalidate кандидатов = %d, want 2", len(reloaded))
	}
}

// Нулевой TTL означает перечитывание при каждом обращении.
func TestSnapshot_ZeroTTLAlwaysReloads(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	snap := NewSnapshot(store, "counterparty", 0)
	if _, err := snap.Candidates(ctx); err != nil {
		t.Fatal(err)
	}

	if err := store.Upsert(ctx, "c-1", "Ромашка", "", "counterparty", nil); err != nil {
		t.Fatal(err)
	}

	candidates, err := snap.Candidates(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(candidates) != 1 {
		t.Errorf("нулевой TTL должен перечитывать каталог, кандидатов = %d", len(candidates))
	}
}

func TestSnapshot_Refresh(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	snap := NewSnapshot(store, "counterparty", time.Hour)
	if _, err := snap.Candidates(ctx); err != nil {
		t.Fatal(err)
	}

	if err := store.Upsert(ctx, "c-1", "Ромашка", "", "counterparty", nil); err != nil {
		t.Fatal(err)
	}

	refreshed, err := snap.Refresh(ctx)
	if err != nil {
		t.Fatalf("Refresh вернул ошибку: %v", err)
	}
	if len(refreshed) != 1 {
		t.Errorf("Refresh должен перечитывать немедленно, кандидатов = %d", len(refreshed))
	}
}
