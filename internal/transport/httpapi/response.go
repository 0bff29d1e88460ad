package httpapi

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/ordenes/internal/domain"
)

// errorResponse — единый формат тела ошибки API.
type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON сериализует data в тело ответа с заданным статусом.
func writeJSON(w http.ResponseWriter, logger *log.Entry, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.WithError(err).Error("failed to encode response")
	}
}

// writeError переводит доменную ошибку в HTTP-статус и тело ответа.
// Неклассифицированные ошибки скрываются за 500, чтобы не раскрывать
// детали хранилища.
func writeError(w http.ResponseWriter, logger *log.Entry, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case domain.IsNotFound(err):
		status = http.StatusNotFound
		message = err.Error()
	case domain.IsInvalidArgument(err):
		status = http.StatusBadRequest
		message = err.Error()
	case domain.IsFailedPrecondition(err):
		status = http.StatusBadRequest
		message = err.Error()
	default:
		logger.WithError(err).Error("unhandled error")
	}

	writeJSON(w, logger, status, errorResponse{Error: message})
}
