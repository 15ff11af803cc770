package audit

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "audit.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore вернул ошибку: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore_AppendAndList(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	records := []Record{
		{
			ID: "rec-1", Timestamp: base, SubjectRef: "invoice-42",
			Resolved: false, Confidence: 0.88,
			ThresholdBand: BandConfirm, DecisionPath: PathUnresolved,
			CandidateCount: 5,
		},
		{
			ID: "rec-2", Timestamp: base.Add(time.Minute), SubjectRef: "invoice-42",
			RequestID: "req-7", Resolved: true, Confidence: 0.88,
			ThresholdBand: BandConfirm, DecisionPath: PathConfirmed,
		},
		{
			ID: "rec-3", Timestamp: base, SubjectRef: "invoice-99",
			Resolved: true, Confidence: 1.0,
			ThresholdBand: BandExact, DecisionPath: PathAuto,
			TieDetected: true, CandidateCount: 3,
		},
	}
	for _, rec := range records {
		if err := store.Append(ctx, rec); err != nil {
			t.Fatalf("Append(%s) вернул ошибку: %v", rec.ID, err)
		}
	}

	// Цепочка по субъекту: попытка, затем подтверждение
	got, err := store.ListBySubject(ctx, "invoice-42")
	if err != nil {
		t.Fatalf("ListBySubject вернул ошибку: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("записей = %d, want 2", len(got))
	}
	if got[0].ID != "rec-1" || got[1].ID != "rec-2" {
		t.Errorf("порядок записей: %s, %s; want rec-1, rec-2", got[0].ID, got[1].ID)
	}
	if got[1].DecisionPath != PathConfirmed || got[1].RequestID != "req-7" {
		t.Errorf("поля подтверждения восстановлены неверно: %+v", got[1])
	}

	// Все поля переживают запись и чтение
	got, err = store.ListBySubject(ctx, "invoice-99")
	if err != nil {
		t.Fatalf("ListBySubject вернул ошибку: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("записей = %d, want 1", len(got))
	}
	rec := got[0]
	if !rec.Resolved || rec.Confidence != 1.0 || !rec.TieDetected ||
		rec.CandidateCount != 3 || rec.ThresholdBand != BandExact {
		t.Errorf("запись восстановлена неверно: %+v", rec)
	}
	if !rec.Timestamp.Equal(base) {
		t.Errorf("timestamp = %v, want %v", rec.Timestamp, base)
	}
}

func TestSQLiteStore_ListUnknownSubject(t *testing.T) {
	store := newTestStore(t)

	got, err := store.ListBySubject(context.Background(), "missing")
	if err != nil {
		t.Fatalf("ListBySubject вернул ошибку: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("записей = %d, want 0", len(got))
	}
}

func TestSQLiteStore_DuplicateID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rec := Record{ID: "rec-1", Timestamp: time.Now().UTC(), SubjectRef: "s"}
	if err := store.Append(ctx, rec); err != nil {
		t.Fatalf("первый Append вернул ошибку: %v", err)
	}
	if err := store.Append(ctx, rec); err == nil {
		t.Error("повторный ID должен давать ошибку")
	}
}
