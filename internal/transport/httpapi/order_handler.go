package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/ordenes/internal/domain"
	"github.com/vladislavdragonenkov/ordenes/internal/metrics"
	"github.com/vladislavdragonenkov/ordenes/internal/service/orders"
)

// OrderHandler обслуживает HTTP-эндпоинты заказов.
type OrderHandler struct {
	service *orders.Service
	metrics *metrics.HTTPMetrics
	logger  *log.Entry
}

// NewOrderHandler конструирует обработчик заказов.
func NewOrderHandler(service *orders.Service, m *metrics.HTTPMetrics, logger *log.Entry) *OrderHandler {
	if logger == nil {
		logger = log.New().WithField("component", "order-handler")
	}
	return &OrderHandler{service: service, metrics: m, logger: logger}
}

// List обслуживает GET /api/orders с параметрами page и page_size.
// Выход за допустимые границы не является ошибкой: значения
// нормализуются к ближайшей допустимой величине.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	params := pageParamsFromQuery(r)

	page, err := h.service.List(r.Context(), params)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, page)
}

// Get обслуживает GET /api/orders/{id}.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, h.logger)
	if !ok {
		return
	}

	order, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, order)
}

// Create обслуживает POST /api/orders.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req orders.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, h.logger, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	created, err := h.service.Create(r.Context(), req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordOrderCreated()
	}

	w.Header().Set("Location", fmt.Sprintf("/api/orders/%d", created.ID))
	writeJSON(w, h.logger, http.StatusCreated, created)
}

// Update обслуживает PUT /api/orders/{id}: имя клиента и набор линий
// заменяются целиком, итог пересчитывается.
func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, h.logger)
	if !ok {
		return
	}

	var req orders.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, h.logger, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if err := h.service.Update(r.Context(), id, req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete обслуживает DELETE /api/orders/{id}.
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// pageParamsFromQuery читает параметры пагинации из строки запроса.
// Нечисловые значения трактуются как отсутствующие.
func pageParamsFromQuery(r *http.Request) domain.PageParams {
	params := domain.PageParams{}

	if raw := r.URL.Query().Get("page"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			params.Page = v
		}
	}
	if raw := r.URL.Query().Get("page_size"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			params.PageSize = v
		}
	}
	return params
}
