package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

// setupGinTestRouter создает тестовый Gin роутер
func setupGinTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req, _ := http.NewRequest("POST", path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandleNormalize(t *testing.T) {
	router := setupGinTestRouter()
	h := NewNormalizationHandler()
	router.POST("/api/normalize", h.HandleNormalize)

	tests := []struct {
		name     string
		text     string
		kind     string
		expected string
	}{
		{"название", `ООО "Ромашка",  г. Москва`, "name", "ООО РОМАШКА Г МОСКВА"},
		{"идентификатор", "77-07 083893", "identifier", "7707083893"},
		{"описание", "Product: Дрель УДАРНАЯ (new)", "description", "дрель ударная"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, router, "/api/normalize", NormalizeRequest{Text: tt.text, Kind: tt.kind})
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, body: %s", w.Code, w.Body.String())
			}

			var resp NormalizeResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatal(err)
			}
			if resp.Normalized != tt.expected {
				t.Errorf("normalized = %q, want %q", resp.Normalized, tt.expected)
			}
			if resp.Original != tt.text || resp.Kind != tt.kind {
				t.Errorf("эхо-поля заполнены неверно: %+v", resp)
			}
		})
	}
}

func TestHandleNormalize_BadRequests(t *testing.T) {
	router := setupGinTestRouter()
	h := NewNormalizationHandler()
	router.POST("/api/normalize", h.HandleNormalize)

	// Неизвестный вид нормализации
	w := postJSON(t, router, "/api/normalize", NormalizeRequest{Text: "текст", Kind: "unknown"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("неизвестный kind: status = %d, want 400", w.Code)
	}

	// Отсутствующие обязательные поля
	w = postJSON(t, router, "/api/normalize", map[string]string{"text": "только текст"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("без kind: status = %d, want 400", w.Code)
	}

	// Некорректный JSON
	req, _ := http.NewRequest("POST", "/api/normalize", bytes.NewReader([]byte("{не json")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("битый JSON: status = %d, want 400", rec.Code)
	}
}
