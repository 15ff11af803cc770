package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nameresolver/audit"
	"nameresolver/catalog"
	"nameresolver/resolution"
	"nameresolver/server/services"
)

// setupResolutionRouter собирает роутер разрешения над временным каталогом.
func setupResolutionRouter(t *testing.T) (*gin.Engine, *catalog.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := catalog.NewStore(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	source := services.NewSnapshotSource(store, time.Minute)
	svc, err := services.NewResolutionService(
		source, audit.NopSink{}, resolution.DefaultThresholdConfig(), nil, nil)
	require.NoError(t, err)

	h := NewResolutionHandler(svc)
	router := gin.New()
	router.POST("/api/resolve", h.HandleResolve)
	router.POST("/api/resolve/confirm", h.HandleConfirm)
	router.GET("/api/catalog/by-tin", h.HandleLookupByTIN)
	return router, store
}

func TestHandleResolve(t *testing.T) {
	router, store := setupResolutionRouter(t)
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, "c-1", `ООО "Ромашка"`, "7707083893", "counterparty", nil))
	require.NoError(t, store.Upsert(ctx, "c-2", "ЗАО Василек", "", "counterparty", nil))

	w := postJSON(t, router, "/api/resolve", ResolveRequest{
		SubjectRef: "invoice-42",
		Query:      "ооо ромашка",
		EntityType: "counterparty",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var outcome resolution.Outcome
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &outcome))
	assert.Equal(t, resolution.StatusResolved, outcome.Status)
	assert.Equal(t, "c-1", outcome.Resolved.ID)
	assert.Equal(t, 1.0, outcome.Confidence)
}

// Дубликаты в справочнике отдаются как 409 с исходом, содержащим список
// дубликатов для чистки.
func TestHandleResolve_DuplicatesConflict(t *testing.T) {
	router, store := setupResolutionRouter(t)
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, "c-1", "ABC Corp", "", "counterparty", nil))
	require.NoError(t, store.Upsert(ctx, "c-2", "ABC Corp", "", "counterparty", nil))

	w := postJSON(t, router, "/api/resolve", ResolveRequest{
		SubjectRef: "invoice-7",
		Query:      "Совсем другое имя",
		EntityType: "counterparty",
	})
	require.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	var outcome resolution.Outcome
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &outcome))
	assert.Equal(t, resolution.StatusDataError, outcome.Status)
	assert.Len(t, outcome.Duplicates, 2)
	assert.NotEmpty(t, outcome.Message)
}

func TestHandleResolve_BadRequests(t *testing.T) {
	router, _ := setupResolutionRouter(t)

	// Отсутствует query
	w := postJSON(t, router, "/api/resolve", map[string]string{
		"subject_ref": "s", "entity_type": "counterparty",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Пробельный query проходит binding, но отклоняется движком
	w = postJSON(t, router, "/api/resolve", ResolveRequest{
		SubjectRef: "s", Query: "   ", EntityType: "counterparty",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleConfirm(t *testing.T) {
	router, store := setupResolutionRouter(t)
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, "c-1", "Ромашка", "", "counterparty", nil))

	w := postJSON(t, router, "/api/resolve/confirm", ConfirmRequest{
		SubjectRef:  "invoice-42",
		CandidateID: "c-1",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var candidate resolution.Candidate
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &candidate))
	assert.Equal(t, "c-1", candidate.ID)

	// Несуществующий кандидат
	w = postJSON(t, router, "/api/resolve/confirm", ConfirmRequest{
		SubjectRef:  "invoice-42",
		CandidateID: "missing",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleLookupByTIN(t *testing.T) {
	router, store := setupResolutionRouter(t)
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, "c-1", "Ромашка", "7707083893", "counterparty", nil))

	req, _ := http.NewRequest("GET", "/api/catalog/by-tin?tin=77-07083893", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var candidate resolution.Candidate
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &candidate))
	assert.Equal(t, "c-1", candidate.ID)

	// Без параметра
	req, _ = http.NewRequest("GET", "/api/catalog/by-tin", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Не найден
	req, _ = http.NewRequest("GET", "/api/catalog/by-tin?tin=0000000000", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
