package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ErrorResponse - тело ошибки, клиент показывает поле detail пользователю
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// MessageResponse - простой ответ с сообщением
type MessageResponse struct {
	Message string `json:"message"`
}

const (
	MsgNotFound  = "Предложение не найдено"
	MsgDeleted   = "Предложение удалено"
	MsgAPIStatus = "API работает ✅"
	msgInternal  = "internal server error"
)

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", slog.Any("error", err))
	}
}

func writeError(w http.ResponseWriter, logger *slog.Logger, status int, detail string) {
	writeJSON(w, logger, status, ErrorResponse{Detail: detail})
}
