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

// JobHandler é o CRUD de vagas do painel admin.
type JobHandler struct {
	Repo  entity.JobRepositoryInterface
	Guard *repository.Guard
	Cache *cache.Cache
}

func NewJobHandler(repo entity.JobRepositoryInterface, guard *repository.Guard, c *cache.Cache) *JobHandler {
	return &JobHandler{Repo: repo, Guard: guard, Cache: c}
}

// HandleList (GET /admin/jobs) — inclui vagas encerradas.
func (h *JobHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	page, perPage := pagination(r)

	items, total, err := h.Repo.List(r.Context(), page, perPage, false)
	if err != nil {
		if records, ok := h.Guard.ReadFallback(repository.FamilyJobs, err); ok {
			writeDegraded(w, records)
			return
		}
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, PagedResponse{Items: items, Total: total, Page: page, PerPage: perPage})
}

// HandleCreate (POST /admin/jobs)
func (h *JobHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Title        string `json:"title"`
		Department   string `json:"department"`
		Location     string `json:"location"`
		Description  string `json:"description"`
		Requirements string `json:"requirements"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}

	job, err := entity.NewJob(body.Title, body.Department, body.Location, body.Description, body.Requirements)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	outcome, err := h.Guard.Write(r.Context(), repository.FamilyJobs, job, job.ID, func(c context.Context) error {
		return h.Repo.Create(c, job)
	})
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	h.Cache.Invalidate(repository.FamilyJobs)
	writeJSON(w, http.StatusCreated, map[string]any{"job": job, "local_only": outcome.LocalOnly})
}

// HandleUpdate (PUT /admin/jobs/{id}) — também usado para encerrar a vaga
// (active=false) sem apagar o histórico de candidaturas.
func (h *JobHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	job, err := h.Repo.FindByID(r.Context(), id)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	var body struct {
		Title        string `json:"title"`
		Department   string `json:"department"`
		Location     string `json:"location"`
		Description  string `json:"description"`
		Requirements string `json:"requirements"`
		Active       *bool  `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}

	if body.Title != "" {
		job.Title = body.Title
	}
	if body.Department != "" {
		job.Department = body.Department
	}
	if body.Location != "" {
		job.Location = body.Location
	}
	if body.Description != "" {
		job.Description = body.Description
	}
	if body.Requirements != "" {
		job.Requirements = body.Requirements
	}
	if body.Active != nil {
		job.Active = *body.Active
	}
	job.UpdatedAt = time.Now()

	if err := job.Validate(); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	outcome, err := h.Guard.Write(r.Context(), repository.FamilyJobs, job, job.ID, func(c context.Context) error {
		return h.Repo.Update(c, job)
	})
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	h.Cache.Invalidate(repository.FamilyJobs)
	writeJSON(w, http.StatusOK, map[string]any{"job": job, "local_only": outcome.LocalOnly})
}

// HandleDelete (DELETE /admin/jobs/{id})
func (h *JobHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	outcome, err := h.Guard.Delete(r.Context(), repository.FamilyJobs, id, func(c context.Context) error {
		return h.Repo.Delete(c, id)
	})
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	h.Cache.Invalidate(repository.FamilyJobs)
	writeJSON(w, http.StatusOK, map[string]any{"deleted": true, "local_only": outcome.LocalOnly})
}
