package worker

import (
	"context"
	"log"
	"time"

	"github.com/confexa/confexa-backoffice/internal/infra/http/middleware"
	"github.com/confexa/confexa-backoffice/internal/infra/localstore"
	"github.com/confexa/confexa-backoffice/internal/infra/repository"
)

// FallbackMonitor vigia o store local e publica quantos registros de cada
// família estão presos esperando o remoto voltar. O gauge alimenta o alerta
// de "escritas represadas" do painel.
type FallbackMonitor struct {
	local        *localstore.Store
	tickInterval time.Duration
}

func NewFallbackMonitor(local *localstore.Store) *FallbackMonitor {
	return &FallbackMonitor{
		local:        local,
		tickInterval: 30 * time.Second,
	}
}

func (w *FallbackMonitor) Start(ctx context.Context) {
	log.Println("🕒 Fallback Monitor iniciado (tick 30s)")

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.scan()

	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ Fallback Monitor encerrado")
			return
		case <-ticker.C:
			w.scan()
		}
	}
}

func (w *FallbackMonitor) scan() {
	totalPending := 0

	for _, family := range repository.Families {
		count, err := w.local.Count(family)
		if err != nil {
			log.Printf("❌ Erro ao contar registros locais de %s: %v", family, err)
			continue
		}

		middleware.SetLocalRecordsPending(family, count)
		totalPending += count
	}

	if totalPending > 0 {
		log.Printf("⏱️ %d registro(s) locais aguardando o remoto voltar", totalPending)
	}
}
