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

// ShowroomHandler é o CRUD da vitrine de peças no painel admin.
type ShowroomHandler struct {
	Repo  entity.ShowroomRepositoryInterface
	Guard *repository.Guard
	Cache *cache.Cache
}

func NewShowroomHandler(repo entity.ShowroomRepositoryInterface, guard *repository.Guard, c *cache.Cache) *ShowroomHandler {
	return &ShowroomHandler{Repo: repo, Guard: guard, Cache: c}
}

// HandleList (GET /admin/showroom)
func (h *ShowroomHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	page, perPage := pagination(r)

	items, total, err := h.Repo.List(r.Context(), page, perPage)
	if err != nil {
		if records, ok := h.Guard.ReadFallback(repository.FamilyShowroom, err); ok {
			writeDegraded(w, records)
			return
		}
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, PagedResponse{Items: items, Total: total, Page: page, PerPage: perPage})
}

// HandleCreate (POST /admin/showroom)
func (h *ShowroomHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		ImageURL    string `json:"image_url"`
		SortOrder   int    `json:"sort_order"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}

	item, err := entity.NewShowroomItem(body.Title, body.Description, body.ImageURL, body.SortOrder)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	outcome, err := h.Guard.Write(r.Context(), repository.FamilyShowroom, item, item.ID, func(c context.Context) error {
		return h.Repo.Create(c, item)
	})
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	h.Cache.Invalidate(repository.FamilyShowroom)
	writeJSON(w, http.StatusCreated, map[string]any{"item": item, "local_only": outcome.LocalOnly})
}

// HandleUpdate (PUT /admin/showroom/{id})
func (h *ShowroomHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	item, err := h.Repo.FindByID(r.Context(), id)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	var body struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		ImageURL    string `json:"image_url"`
		SortOrder   *int   `json:"sort_order"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}

	if body.Title != "" {
		item.Title = body.Title
	}
	if body.Description != "" {
		item.Description = body.Description
	}
	if body.ImageURL != "" {
		item.ImageURL = body.ImageURL
	}
	if body.SortOrder != nil {
		item.SortOrder = *body.SortOrder
	}
	item.UpdatedAt = time.Now()

	if err := item.Validate(); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	outcome, err := h.Guard.Write(r.Context(), repository.FamilyShowroom, item, item.ID, func(c context.Context) error {
		return h.Repo.Update(c, item)
	})
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	h.Cache.Invalidate(repository.FamilyShowroom)
	writeJSON(w, http.StatusOK, map[string]any{"item": item, "local_only": outcome.LocalOnly})
}

// HandleDelete (DELETE /admin/showroom/{id})
func (h *ShowroomHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	outcome, err := h.Guard.Delete(r.Context(), repository.FamilyShowroom, id, func(c context.Context) error {
		return h.Repo.Delete(c, id)
	})
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	h.Cache.Invalidate(repository.FamilyShowroom)
	writeJSON(w, http.StatusOK, map[string]any{"deleted": true, "local_only": outcome.LocalOnly})
}
