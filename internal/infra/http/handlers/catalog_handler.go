package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/confexa/confexa-backoffice/internal/entity"
	"github.com/confexa/confexa-backoffice/internal/infra/cache"
	"github.com/confexa/confexa-backoffice/internal/infra/repository"
)

const (
	defaultPerPage = 12
	maxPerPage     = 50
)

// CatalogHandler serve as leituras públicas do site: notícias, vagas,
// produtos e showroom. Tudo passa pelo cache de leitura; se o remoto cair,
// a resposta vem do store local em modo degradado.
type CatalogHandler struct {
	News     entity.NewsRepositoryInterface
	Jobs     entity.JobRepositoryInterface
	Products entity.ProductRepositoryInterface
	Showroom entity.ShowroomRepositoryInterface
	Cache    *cache.Cache
	Guard    *repository.Guard
}

func NewCatalogHandler(
	news entity.NewsRepositoryInterface,
	jobs entity.JobRepositoryInterface,
	products entity.ProductRepositoryInterface,
	showroom entity.ShowroomRepositoryInterface,
	c *cache.Cache,
	guard *repository.Guard,
) *CatalogHandler {
	return &CatalogHandler{
		News:     news,
		Jobs:     jobs,
		Products: products,
		Showroom: showroom,
		Cache:    c,
		Guard:    guard,
	}
}

func pagination(r *http.Request) (page, perPage int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	perPage, _ = strconv.Atoi(r.URL.Query().Get("per_page"))
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	return page, perPage
}

// respondList aplica o protocolo comum das listas públicas: cache hit
// responde direto; miss consulta o remoto, guarda e responde; falha
// remota serve o espelho local.
func (h *CatalogHandler) respondList(
	w http.ResponseWriter,
	family, signature string,
	page, perPage int,
	fetch func() (any, int, error),
) {
	if cached, ok := h.Cache.Get(family, signature); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	items, total, err := fetch()
	if err != nil {
		if records, ok := h.Guard.ReadFallback(family, err); ok {
			writeDegraded(w, records)
			return
		}
		writeUseCaseError(w, err)
		return
	}

	response := PagedResponse{
		Items:   items,
		Total:   total,
		Page:    page,
		PerPage: perPage,
	}
	h.Cache.Set(family, signature, response)
	writeJSON(w, http.StatusOK, response)
}

// HandleListNews (GET /news) — só publicadas.
func (h *CatalogHandler) HandleListNews(w http.ResponseWriter, r *http.Request) {
	page, perPage := pagination(r)
	signature := fmt.Sprintf("published|page=%d&per=%d", page, perPage)

	h.respondList(w, repository.FamilyNews, signature, page, perPage, func() (any, int, error) {
		return h.News.List(r.Context(), page, perPage, true)
	})
}

// HandleGetNews (GET /news/{id})
func (h *CatalogHandler) HandleGetNews(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	signature := "id=" + id

	if cached, ok := h.Cache.Get(repository.FamilyNews, signature); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	news, err := h.News.FindByID(r.Context(), id)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	if !news.Published {
		writeErrorResponse(w, http.StatusNotFound, "NOT_FOUND", entity.ErrNewsNotFound.Error())
		return
	}

	h.Cache.Set(repository.FamilyNews, signature, news)
	writeJSON(w, http.StatusOK, news)
}

// HandleListJobs (GET /jobs) — só vagas ativas.
func (h *CatalogHandler) HandleListJobs(w http.ResponseWriter, r *http.Request) {
	page, perPage := pagination(r)
	signature := fmt.Sprintf("active|page=%d&per=%d", page, perPage)

	h.respondList(w, repository.FamilyJobs, signature, page, perPage, func() (any, int, error) {
		return h.Jobs.List(r.Context(), page, perPage, true)
	})
}

// HandleListProducts (GET /products?category=)
func (h *CatalogHandler) HandleListProducts(w http.ResponseWriter, r *http.Request) {
	page, perPage := pagination(r)
	category := r.URL.Query().Get("category")
	signature := fmt.Sprintf("page=%d&per=%d&cat=%s", page, perPage, category)

	h.respondList(w, repository.FamilyProducts, signature, page, perPage, func() (any, int, error) {
		return h.Products.List(r.Context(), page, perPage, category)
	})
}

// HandleListShowroom (GET /showroom)
func (h *CatalogHandler) HandleListShowroom(w http.ResponseWriter, r *http.Request) {
	page, perPage := pagination(r)
	signature := fmt.Sprintf("page=%d&per=%d", page, perPage)

	h.respondList(w, repository.FamilyShowroom, signature, page, perPage, func() (any, int, error) {
		return h.Showroom.List(r.Context(), page, perPage)
	})
}
