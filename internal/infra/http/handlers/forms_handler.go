package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/confexa/confexa-backoffice/internal/entity"
	"github.com/confexa/confexa-backoffice/internal/usecase"
)

// FormsHandler atende os formulários do site público: orçamento, contato,
// sugestão e candidatura. Tudo rate-limitado por IP.
type FormsHandler struct {
	QuoteUC     *usecase.SubmitQuoteUseCase
	MessageUC   *usecase.SubmitMessageUseCase
	rateLimiter *RateLimiter
}

func NewFormsHandler(quoteUC *usecase.SubmitQuoteUseCase, messageUC *usecase.SubmitMessageUseCase) *FormsHandler {
	return &FormsHandler{
		QuoteUC:     quoteUC,
		MessageUC:   messageUC,
		rateLimiter: NewRateLimiter(10, time.Minute), // 10 req/min por IP
	}
}

func (h *FormsHandler) SubmitQuote(w http.ResponseWriter, r *http.Request) {
	if !h.allow(w, r) {
		return
	}

	var input usecase.SubmitQuoteInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}

	output, err := h.QuoteUC.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, output)
}

func (h *FormsHandler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	h.submitMessage(w, r, entity.MessageKindContact, "")
}

func (h *FormsHandler) SubmitSuggestion(w http.ResponseWriter, r *http.Request) {
	h.submitMessage(w, r, entity.MessageKindSuggestion, "")
}

func (h *FormsHandler) SubmitApplication(w http.ResponseWriter, r *http.Request) {
	h.submitMessage(w, r, entity.MessageKindApplication, chi.URLParam(r, "id"))
}

func (h *FormsHandler) submitMessage(w http.ResponseWriter, r *http.Request, kind, jobID string) {
	if !h.allow(w, r) {
		return
	}

	var input usecase.SubmitMessageInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}
	input.Kind = kind
	input.JobID = jobID

	output, err := h.MessageUC.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, output)
}

func (h *FormsHandler) allow(w http.ResponseWriter, r *http.Request) bool {
	if h.rateLimiter.Allow(getClientIP(r)) {
		return true
	}
	writeErrorResponse(w, http.StatusTooManyRequests, "RATE_LIMITED",
		"Too many requests. Please try again later.")
	return false
}
