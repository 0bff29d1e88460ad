package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/ordenes/internal/metrics"
	"github.com/vladislavdragonenkov/ordenes/internal/service/products"
)

// ProductHandler обслуживает HTTP-эндпоинты каталога товаров.
type ProductHandler struct {
	service *products.Service
	metrics *metrics.HTTPMetrics
	logger  *log.Entry
}

// NewProductHandler конструирует обработчик товаров.
func NewProductHandler(service *products.Service, m *metrics.HTTPMetrics, logger *log.Entry) *ProductHandler {
	if logger == nil {
		logger = log.New().WithField("component", "product-handler")
	}
	return &ProductHandler{service: service, metrics: m, logger: logger}
}

// List обслуживает GET /api/products.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, list)
}

// Get обслуживает GET /api/products/{id}.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, h.logger)
	if !ok {
		return
	}

	product, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, product)
}

// Create обслуживает POST /api/products.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req products.CreateRequest
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
		h.metrics.RecordProductCreated()
	}

	w.Header().Set("Location", fmt.Sprintf("/api/products/%d", created.ID))
	writeJSON(w, h.logger, http.StatusCreated, created)
}

// Update обслуживает PUT /api/products/{id}.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, h.logger)
	if !ok {
		return
	}

	var req products.UpdateRequest
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

// Delete обслуживает DELETE /api/products/{id}.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

// InUse обслуживает GET /api/products/{id}/in-use.
func (h *ProductHandler) InUse(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, h.logger)
	if !ok {
		return
	}

	resp, err := h.service.InUse(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, resp)
}

// parseID извлекает числовой идентификатор из пути запроса.
func parseID(w http.ResponseWriter, r *http.Request, logger *log.Entry) (int64, bool) {
	raw := chi.URLParam(r, "id")

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeJSON(w, logger, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return 0, false
	}
	return id, true
}
