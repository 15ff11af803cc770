package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "nameresolver/server/errors"
)

// ErrorResponse тело ответа с ошибкой.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SendJSONResponse отправляет успешный JSON ответ.
func SendJSONResponse(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}

// SendJSONError отправляет JSON ответ с ошибкой.
func SendJSONError(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Error: message})
}

// SendAppError переводит ошибку приложения в HTTP ответ. Неизвестные ошибки
// отдаются как 500 с общим сообщением.
func SendAppError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		SendJSONError(c, appErr.StatusCode(), appErr.UserMessage())
		return
	}
	SendJSONError(c, 500, "Внутренняя ошибка сервера")
}
