package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"nameresolver/catalog"
	apperrors "nameresolver/server/errors"
	"nameresolver/server/services"
)

// CatalogHandler обработчики управления эталонным каталогом.
type CatalogHandler struct {
	store  *catalog.Store
	source *services.SnapshotSource
}

// NewCatalogHandler создает обработчик каталога.
func NewCatalogHandler(store *catalog.Store, source *services.SnapshotSource) *CatalogHandler {
	return &CatalogHandler{store: store, source: source}
}

// UpsertRequest данные эталонной записи.
type UpsertRequest struct {
	ID          string                 `json:"id" binding:"required"`
	DisplayName string                 `json:"display_name" binding:"required"`
	TIN         string                 `json:"tin"`
	EntityType  string                 `json:"entity_type" binding:"required"`
	Payload     map[string]interface{} `json:"payload"`
}

// HandleUpsert создает или обновляет эталонную запись
// @Summary Добавить или обновить эталон
// @Description Записывает эталон в каталог, канонические формы пересчитываются при записи
// @Tags catalog
// @Accept json
// @Produce json
// @Param request body UpsertRequest true "Эталонная запись"
// @Success 200 {object} map[string]string "Статус"
// @Failure 400 {object} ErrorResponse "Неверный запрос"
// @Router /api/catalog [post]
func (h *CatalogHandler) HandleUpsert(c *gin.Context) {
	var req UpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := apperrors.NewValidationError("неверный формат тела запроса", err)
		SendJSONError(c, appErr.StatusCode(), appErr.UserMessage())
		return
	}

	if err := h.store.Upsert(c.Request.Context(), req.ID, req.DisplayName, req.TIN, req.EntityType, req.Payload); err != nil {
		SendAppError(c, apperrors.NewInternalError("ошибка записи в каталог", err))
		return
	}

	// Снимок устарел, следующее чтение перезагрузит каталог
	h.source.Invalidate(req.EntityType)

	SendJSONResponse(c, http.StatusOK, gin.H{"status": "ok", "id": req.ID})
}

// HandleDelete мягко удаляет эталон из каталога
// @Summary Удалить эталон
// @Tags catalog
// @Produce json
// @Param id path string true "Идентификатор эталона"
// @Success 200 {object} map[string]string "Статус"
// @Failure 404 {object} ErrorResponse "Эталон не найден"
// @Router /api/catalog/{id} [delete]
func (h *CatalogHandler) HandleDelete(c *gin.Context) {
	id := c.Param("id")

	candidate, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			appErr := apperrors.NewNotFoundError("эталон не найден", err)
			SendJSONError(c, appErr.StatusCode(), appErr.UserMessage())
			return
		}
		SendAppError(c, apperrors.NewInternalError("ошибка чтения каталога", err))
		return
	}

	if err := h.store.SoftDelete(c.Request.Context(), id); err != nil {
		SendAppError(c, apperrors.NewInternalError("ошибка удаления из каталога", err))
		return
	}

	h.source.Invalidate(candidate.EntityType)

	SendJSONResponse(c, http.StatusOK, gin.H{"status": "deleted", "id": id})
}

// HandleCount возвращает размер активного каталога
// @Summary Количество активных эталонов
// @Tags catalog
// @Produce json
// @Param entity_type query string true "Тип сущности"
// @Success 200 {object} map[string]interface{} "Счетчик"
// @Router /api/catalog/count [get]
func (h *CatalogHandler) HandleCount(c *gin.Context) {
	entityType := c.Query("entity_type")
	if entityType == "" {
		SendJSONError(c, http.StatusBadRequest, "параметр entity_type обязателен")
		return
	}

	count, err := h.store.Count(c.Request.Context(), entityType)
	if err != nil {
		SendAppError(c, apperrors.NewInternalError("ошибка чтения каталога", err))
		return
	}

	SendJSONResponse(c, http.StatusOK, gin.H{"entity_type": entityType, "count": count})
}
