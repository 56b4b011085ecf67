package handlers

import (
	"log/slog"
	"net/http"
)

// RootHandler обрабатывает GET / и сообщает, что API доступно
func RootHandler(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, log.With(slog.String("op", "handlers.RootHandler")), http.StatusOK, MessageResponse{Message: MsgAPIStatus})
	}
}
