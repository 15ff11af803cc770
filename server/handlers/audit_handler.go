package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nameresolver/audit"
)

// AuditHandler обработчики чтения журнала решений.
type AuditHandler struct {
	store *audit.SQLiteStore
}

// NewAuditHandler создает обработчик журнала.
func NewAuditHandler(store *audit.SQLiteStore) *AuditHandler {
	return &AuditHandler{store: store}
}

// HandleListBySubject возвращает цепочку записей по бизнес-объекту
// @Summary Журнал решений по объекту
// @Description Возвращает все записи журнала, связанные с указанным subject_ref, в хронологическом порядке
// @Tags audit
// @Produce json
// @Param subject_ref path string true "Ссылка на бизнес-объект"
// @Success 200 {array} audit.Record "Записи журнала"
// @Router /api/audit/{subject_ref} [get]
func (h *AuditHandler) HandleListBySubject(c *gin.Context) {
	subjectRef := c.Param("subject_ref")
	if subjectRef == "" {
		SendJSONError(c, http.StatusBadRequest, "subject_ref обязателен")
		return
	}

	records, err := h.store.ListBySubject(c.Request.Context(), subjectRef)
	if err != nil {
		SendAppError(c, err)
		return
	}

	SendJSONResponse(c, http.StatusOK, records)
}
