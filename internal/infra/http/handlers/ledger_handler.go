package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/confexa/confexa-backoffice/internal/usecase"
)

// LedgerHandler serve o caderno de vendas do painel: totais, ticket médio,
// taxa de conversão e o export CSV da contabilidade.
type LedgerHandler struct {
	ComputeUC *usecase.ComputeLedgerUseCase
}

func NewLedgerHandler(computeUC *usecase.ComputeLedgerUseCase) *LedgerHandler {
	return &LedgerHandler{ComputeUC: computeUC}
}

// HandleGet (GET /admin/ledger?period=all|this-month|last-month|this-year)
func (h *LedgerHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")

	output, err := h.ComputeUC.Execute(r.Context(), period)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, output)
}

// HandleExport (GET /admin/ledger/export?period=) responde o CSV que a
// contabilidade importa na planilha.
func (h *LedgerHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")

	output, err := h.ComputeUC.Execute(r.Context(), period)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	filename := fmt.Sprintf("vendas-%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)

	if err := output.WriteCSV(w); err != nil {
		// Headers já foram embora; só dá para registrar.
		log.Printf("⚠️ Falha escrevendo CSV do ledger: %v", err)
	}
}
