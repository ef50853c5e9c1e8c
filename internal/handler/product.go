package handler

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/hyjain/hyjain-api/internal/handler/dto"
	"github.com/hyjain/hyjain-api/internal/middleware"
	"github.com/hyjain/hyjain-api/internal/service"
)

// ProductHandler handles HTTP requests for catalog operations.
type ProductHandler struct {
	svc    *service.CatalogService
	logger *slog.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(svc *service.CatalogService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{svc: svc, logger: logger}
}

// List handles GET /api/products.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.ListProducts(r.Context())
	if err != nil {
		h.storeError(w, r, "fetch products", err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// Create handles POST /api/products.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	fields, ok := h.decodeFields(w, r)
	if !ok {
		return
	}

	product, err := h.svc.CreateProduct(r.Context(), fields)
	if err != nil {
		h.storeError(w, r, "add product", err)
		return
	}

	middleware.Log(r.Context(), h.logger).Info("product_created",
		"product_id", product.ID,
		"field_count", len(product.Fields),
	)
	writeJSON(w, http.StatusCreated, product)
}

// Update handles PUT /api/products/{id}. Only the supplied top-level fields change.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	fields, ok := h.decodeFields(w, r)
	if !ok {
		return
	}

	product, err := h.svc.UpdateProduct(r.Context(), id, fields)
	if err != nil {
		h.storeError(w, r, "update product", err)
		return
	}

	middleware.Log(r.Context(), h.logger).Info("product_updated", "product_id", id)
	writeJSON(w, http.StatusOK, product)
}

// Delete handles DELETE /api/products/{id}.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.svc.DeleteProduct(r.Context(), id); err != nil {
		h.storeError(w, r, "delete product", err)
		return
	}

	middleware.Log(r.Context(), h.logger).Info("product_deleted", "product_id", id)
	writeJSON(w, http.StatusOK, dto.MessageResponse{
		Message: fmt.Sprintf("Product with id %s deleted successfully.", id),
	})
}

// decodeFields reads a JSON object body. Numbers keep their literal form.
func (h *ProductHandler) decodeFields(w http.ResponseWriter, r *http.Request) (map[string]any, bool) {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r.Body); err != nil {
		if isTooLarge(err) {
			writeError(w, http.StatusRequestEntityTooLarge, "Request body too large.")
			return nil, false
		}
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return nil, false
	}

	fields := make(map[string]any)
	if buf.Len() == 0 {
		return fields, true
	}

	dec := json.NewDecoder(&buf)
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil {
		writeError(w, http.StatusBadRequest, "Request body must be a JSON object.")
		return nil, false
	}
	if fields == nil {
		fields = make(map[string]any)
	}
	return fields, true
}

// storeError reports a document-store failure as a 500 carrying the store's message.
func (h *ProductHandler) storeError(w http.ResponseWriter, r *http.Request, action string, err error) {
	middleware.Log(r.Context(), h.logger).Error("catalog_operation_failed",
		"action", action,
		"error", err,
	)
	writeError(w, http.StatusInternalServerError,
		fmt.Sprintf("Failed to %s: %s", action, service.RootCause(err).Error()))
}
