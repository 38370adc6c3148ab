package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/confexa/confexa-backoffice/internal/entity"
	"github.com/confexa/confexa-backoffice/internal/infra/cache"
	"github.com/confexa/confexa-backoffice/internal/infra/repository"
)

// ProductHandler é o CRUD do catálogo de produtos no painel admin.
type ProductHandler struct {
	Repo  entity.ProductRepositoryInterface
	Guard *repository.Guard
	Cache *cache.Cache
}

func NewProductHandler(repo entity.ProductRepositoryInterface, guard *repository.Guard, c *cache.Cache) *ProductHandler {
	return &ProductHandler{Repo: repo, Guard: guard, Cache: c}
}

// HandleList (GET /admin/products?category=)
func (h *ProductHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	page, perPage := pagination(r)
	category := r.URL.Query().Get("category")

	items, total, err := h.Repo.List(r.Context(), page, perPage, category)
	if err != nil {
		if records, ok := h.Guard.ReadFallback(repository.FamilyProducts, err); ok {
			writeDegraded(w, records)
			return
		}
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, PagedResponse{Items: items, Total: total, Page: page, PerPage: perPage})
}

// HandleCreate (POST /admin/products)
func (h *ProductHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name        string `json:"name"`
		Category    string `json:"category"`
		Description string `json:"description"`
		ImageURL    string `json:"image_url"`
		MinOrderQty int    `json:"min_order_qty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}

	product, err := entity.NewProduct(body.Name, body.Category, body.Description, body.MinOrderQty)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	product.ImageURL = body.ImageURL

	outcome, err := h.Guard.Write(r.Context(), repository.FamilyProducts, product, product.ID, func(c context.Context) error {
		return h.Repo.Create(c, product)
	})
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	h.Cache.Invalidate(repository.FamilyProducts)
	writeJSON(w, http.StatusCreated, map[string]any{"product": product, "local_only": outcome.LocalOnly})
}

// HandleUpdate (PUT /admin/products/{id})
func (h *ProductHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, err := h.Repo.FindByID(r.Context(), id)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	var body struct {
		Name        string `json:"name"`
		Category    string `json:"category"`
		Description string `json:"description"`
		ImageURL    string `json:"image_url"`
		MinOrderQty *int   `json:"min_order_qty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}

	if body.Name != "" {
		product.Name = body.Name
	}
	if body.Category != "" {
		product.Category = body.Category
	}
	if body.Description != "" {
		product.Description = body.Description
	}
	if body.ImageURL != "" {
		product.ImageURL = body.ImageURL
	}
	if body.MinOrderQty != nil {
		product.MinOrderQty = *body.MinOrderQty
	}
	product.UpdatedAt = time.Now()

	if err := product.Validate(); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	outcome, err := h.Guard.Write(r.Context(), repository.FamilyProducts, product, product.ID, func(c context.Context) error {
		return h.Repo.Update(c, product)
	})
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	h.Cache.Invalidate(repository.FamilyProducts)
	writeJSON(w, http.StatusOK, map[string]any{"product": product, "local_only": outcome.LocalOnly})
}

// HandleDelete (DELETE /admin/products/{id})
func (h *ProductHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	outcome, err := h.Guard.Delete(r.Context(), repository.FamilyProducts, id, func(c context.Context) error {
		return h.Repo.Delete(c, id)
	})
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	h.Cache.Invalidate(repository.FamilyProducts)
	writeJSON(w, http.StatusOK, map[string]any{"deleted": true, "local_only": outcome.LocalOnly})
}
