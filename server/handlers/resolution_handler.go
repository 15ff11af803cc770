package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nameresolver/resolution"
	apperrors "nameresolver/server/errors"
	"nameresolver/server/services"
)

// ResolutionHandler обработчики API разрешения.
type ResolutionHandler struct {
	service *services.ResolutionService
}

// NewResolutionHandler создает обработчик разрешения.
func NewResolutionHandler(service *services.ResolutionService) *ResolutionHandler {
	return &ResolutionHandler{service: service}
}

// ResolveRequest запрос на разрешение.
type ResolveRequest struct {
	SubjectRef string `json:"subject_ref" binding:"required"`
	Query      string `json:"query" binding:"required"`
	EntityType string `json:"entity_type" binding:"required"`
}

// HandleResolve сопоставляет свободный текст с каталогом
// @Summary Разрешить название по каталогу
// @Description Сопоставляет свободный текст с эталонами указанного типа и возвращает размеченный исход
// @Tags resolution
// @Accept json
// @Produce json
// @Param request body ResolveRequest true "Данные для разрешения"
// @Success 200 {object} resolution.Outcome "Исход разрешения"
// @Failure 400 {object} ErrorResponse "Неверный запрос"
// @Failure 409 {object} resolution.Outcome "Дубликаты в справочнике"
// @Router /api/resolve [post]
func (h *ResolutionHandler) HandleResolve(c *gin.Context) {
	var req ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := apperrors.NewValidationError("неверный формат тела запроса", err)
		SendJSONError(c, appErr.StatusCode(), appErr.UserMessage())
		return
	}

	outcome, err := h.service.Resolve(c.Request.Context(), req.SubjectRef, req.Query, req.EntityType)
	if err != nil {
		SendAppError(c, err)
		return
	}

	// Дефект справочника — конфликт данных, не успешное разрешение. Исход
	// с дубликатами отдается целиком: оператору нужен список для чистки.
	if outcome.Status == resolution.StatusDataError {
		appErr := apperrors.NewConflictError(outcome.Message, nil)
		SendJSONResponse(c, appErr.StatusCode(), outcome)
		return
	}

	SendJSONResponse(c, http.StatusOK, outcome)
}

// ConfirmRequest запрос подтверждения или переопределения.
type ConfirmRequest struct {
	SubjectRef  string `json:"subject_ref" binding:"required"`
	CandidateID string `json:"candidate_id" binding:"required"`
	Override    bool   `json:"override"`
}

// HandleConfirm протоколирует решение человека по неоднозначному исходу
// @Summary Подтвердить или переопределить разрешение
// @Tags resolution
// @Accept json
// @Produce json
// @Param request body ConfirmRequest true "Подтверждаемый кандидат"
// @Success 200 {object} resolution.Candidate "Выбранный кандидат"
// @Failure 404 {object} ErrorResponse "Кандидат не найден"
// @Router /api/resolve/confirm [post]
func (h *ResolutionHandler) HandleConfirm(c *gin.Context) {
	var req ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := apperrors.NewValidationError("неверный формат тела запроса", err)
		SendJSONError(c, appErr.StatusCode(), appErr.UserMessage())
		return
	}

	candidate, err := h.service.Confirm(c.Request.Context(), req.SubjectRef, req.CandidateID, req.Override)
	if err != nil {
		SendAppError(c, err)
		return
	}

	SendJSONResponse(c, http.StatusOK, candidate)
}

// HandleLookupByTIN ищет кандидата по идентификатору
// @Summary Найти эталон по ИНН/TIN
// @Tags resolution
// @Produce json
// @Param tin query string true "Идентификатор"
// @Success 200 {object} resolution.Candidate "Найденный кандидат"
// @Failure 404 {object} ErrorResponse "Не найден"
// @Router /api/catalog/by-tin [get]
func (h *ResolutionHandler) HandleLookupByTIN(c *gin.Context) {
	tin := c.Query("tin")
	if tin == "" {
		SendJSONError(c, http.StatusBadRequest, "параметр tin обязателен")
		return
	}

	candidate, err := h.service.LookupByIdentifier(c.Request.Context(), tin)
	if err != nil {
		SendAppError(c, err)
		return
	}

	SendJSONResponse(c, http.StatusOK, candidate)
}
