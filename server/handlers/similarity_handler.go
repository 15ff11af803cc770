package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "nameresolver/server/errors"
	"nameresolver/server/services"
)

// SimilarityHandler обработчики диагностического API похожести.
type SimilarityHandler struct {
	service *services.SimilarityService
}

// NewSimilarityHandler создает обработчик похожести.
func NewSimilarityHandler(service *services.SimilarityService) *SimilarityHandler {
	return &SimilarityHandler{service: service}
}

// CompareRequest пара строк для сравнения.
type CompareRequest struct {
	String1 string `json:"string1" binding:"required"`
	String2 string `json:"string2" binding:"required"`
}

// HandleCompare считает все метрики похожести для пары строк
// @Summary Сравнить две строки по всем метрикам
// @Description Диагностический эндпоинт: возвращает оценки обоих профилей и промежуточные метрики
// @Tags similarity
// @Accept json
// @Produce json
// @Param request body CompareRequest true "Пара строк"
// @Success 200 {object} map[string]interface{} "Метрики похожести"
// @Failure 400 {object} ErrorResponse "Неверный запрос"
// @Router /api/similarity/compare [post]
func (h *SimilarityHandler) HandleCompare(c *gin.Context) {
	var req CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := apperrors.NewValidationError("неверный формат тела запроса", err)
		SendJSONError(c, appErr.StatusCode(), appErr.UserMessage())
		return
	}

	result, err := h.service.Compare(req.String1, req.String2)
	if err != nil {
		SendAppError(c, err)
		return
	}

	SendJSONResponse(c, http.StatusOK, result)
}
