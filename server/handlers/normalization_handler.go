package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nameresolver/normalization"
	apperrors "nameresolver/server/errors"
)

// NormalizationHandler обработчики API нормализации текста.
type NormalizationHandler struct {
	descNorm *normalization.DescriptionNormalizer
}

// NewNormalizationHandler создает обработчик нормализации.
func NewNormalizationHandler() *NormalizationHandler {
	return &NormalizationHandler{
		descNorm: normalization.NewDescriptionNormalizer(),
	}
}

// NormalizeRequest запрос на нормализацию.
type NormalizeRequest struct {
	Text string `json:"text" binding:"required"`
	// Kind: name, identifier или description
	Kind string `json:"kind" binding:"required"`
}

// NormalizeResponse результат нормализации.
type NormalizeResponse struct {
	Original   string `json:"original"`
	Normalized string `json:"normalized"`
	Kind       string `json:"kind"`
}

// HandleNormalize применяет канонизацию к строке
// @Summary Нормализовать строку
// @Description Возвращает каноническую форму названия, идентификатора или описания
// @Tags normalization
// @Accept json
// @Produce json
// @Param request body NormalizeRequest true "Текст и вид нормализации"
// @Success 200 {object} NormalizeResponse "Каноническая форма"
// @Failure 400 {object} ErrorResponse "Неверный запрос"
// @Router /api/normalize [post]
func (h *NormalizationHandler) HandleNormalize(c *gin.Context) {
	var req NormalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := apperrors.NewValidationError("неверный формат тела запроса", err)
		SendJSONError(c, appErr.StatusCode(), appErr.UserMessage())
		return
	}

	var normalized string
	switch req.Kind {
	case "name":
		normalized = normalization.NormalizeName(req.Text)
	case "identifier":
		normalized = normalization.NormalizeIdentifier(req.Text)
	case "description":
		normalized = h.descNorm.Normalize(req.Text)
	default:
		SendJSONError(c, http.StatusBadRequest, "kind должен быть name, identifier или description")
		return
	}

	SendJSONResponse(c, http.StatusOK, NormalizeResponse{
		Original:   req.Text,
		Normalized: normalized,
		Kind:       req.Kind,
	})
}
