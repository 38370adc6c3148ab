package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/confexa/confexa-backoffice/internal/entity"
	"github.com/confexa/confexa-backoffice/internal/infra/cache"
	"github.com/confexa/confexa-backoffice/internal/infra/repository"
	"github.com/confexa/confexa-backoffice/internal/usecase"
)

// Limite de upload de imagem de notícia (5MB).
const maxNewsImageSize = 5 << 20

// NewsHandler é o CRUD de notícias do painel admin.
type NewsHandler struct {
	CreateUC *usecase.CreateNewsUseCase
	Repo     entity.NewsRepositoryInterface
	Guard    *repository.Guard
	Cache    *cache.Cache
}

func NewNewsHandler(
	createUC *usecase.CreateNewsUseCase,
	repo entity.NewsRepositoryInterface,
	guard *repository.Guard,
	c *cache.Cache,
) *NewsHandler {
	return &NewsHandler{CreateUC: createUC, Repo: repo, Guard: guard, Cache: c}
}

// HandleList (GET /admin/news) — o painel enxerga rascunhos também.
func (h *NewsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	page, perPage := pagination(r)

	items, total, err := h.Repo.List(r.Context(), page, perPage, false)
	if err != nil {
		if records, ok := h.Guard.ReadFallback(repository.FamilyNews, err); ok {
			writeDegraded(w, records)
			return
		}
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, PagedResponse{Items: items, Total: total, Page: page, PerPage: perPage})
}

// HandleCreate (POST /admin/news) aceita JSON puro ou multipart com o campo
// "image" anexo.
func (h *NewsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	input, ok := h.parseCreateInput(w, r)
	if !ok {
		return
	}

	output, err := h.CreateUC.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	h.Cache.Invalidate(repository.FamilyNews)
	writeJSON(w, http.StatusCreated, output)
}

func (h *NewsHandler) parseCreateInput(w http.ResponseWriter, r *http.Request) (usecase.CreateNewsInput, bool) {
	var input usecase.CreateNewsInput

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxNewsImageSize); err != nil {
			writeErrorResponse(w, http.StatusBadRequest, "INVALID_FORM", "formulário multipart inválido")
			return input, false
		}
		input.Title = r.FormValue("title")
		input.Summary = r.FormValue("summary")
		input.Body = r.FormValue("body")
		input.Published = r.FormValue("published") == "true"

		file, header, err := r.FormFile("image")
		if err == nil {
			defer file.Close()
			data, readErr := io.ReadAll(io.LimitReader(file, maxNewsImageSize))
			if readErr != nil {
				writeErrorResponse(w, http.StatusBadRequest, "INVALID_FORM", "falha ao ler imagem")
				return input, false
			}
			input.Image = data
			input.ImageName = header.Filename
			input.ImageType = header.Header.Get("Content-Type")
		}
		return input, true
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return input, false
	}
	return input, true
}

// HandleUpdate (PUT /admin/news/{id})
func (h *NewsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	news, err := h.Repo.FindByID(r.Context(), id)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	var body struct {
		Title     string `json:"title"`
		Summary   string `json:"summary"`
		Body      string `json:"body"`
		Published *bool  `json:"published"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}

	if body.Title != "" {
		news.Title = body.Title
	}
	if body.Summary != "" {
		news.Summary = body.Summary
	}
	if body.Body != "" {
		news.Body = body.Body
	}
	if body.Published != nil {
		news.Published = *body.Published
		if news.Published && news.PublishedAt == nil {
			now := time.Now()
			news.PublishedAt = &now
		}
	}
	news.UpdatedAt = time.Now()

	if err := news.Validate(); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	outcome, err := h.Guard.Write(r.Context(), repository.FamilyNews, news, news.ID, func(c context.Context) error {
		return h.Repo.Update(c, news)
	})
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	h.Cache.Invalidate(repository.FamilyNews)
	writeJSON(w, http.StatusOK, map[string]any{"news": news, "local_only": outcome.LocalOnly})
}

// HandleDelete (DELETE /admin/news/{id})
func (h *NewsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	outcome, err := h.Guard.Delete(r.Context(), repository.FamilyNews, id, func(c context.Context) error {
		return h.Repo.Delete(c, id)
	})
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	h.Cache.Invalidate(repository.FamilyNews)
	writeJSON(w, http.StatusOK, map[string]any{"deleted": true, "local_only": outcome.LocalOnly})
}
