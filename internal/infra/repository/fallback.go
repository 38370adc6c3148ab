package repository

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/confexa/confexa-backoffice/internal/entity"
	"github.com/confexa/confexa-backoffice/internal/infra/database"
	"github.com/confexa/confexa-backoffice/internal/infra/http/middleware"
	"github.com/confexa/confexa-backoffice/internal/infra/localstore"
)

// Famílias de entidade cobertas pela política de fallback. A mesma política
// vale para todas — nada de algumas entidades com fallback e outras sem.
const (
	FamilyNews     = "news"
	FamilyJobs     = "jobs"
	FamilyProducts = "products"
	FamilyShowroom = "showroom"
	FamilyMessages = "messages"
	FamilyLeads    = "leads"
)

// Families lista todas as famílias, na ordem de exibição do painel.
var Families = []string{
	FamilyNews,
	FamilyJobs,
	FamilyProducts,
	FamilyShowroom,
	FamilyMessages,
	FamilyLeads,
}

// Guard envolve toda escrita/leitura remota com a política de fallback local:
//
//   - falha genérica de escrita  -> upsert/remove no store local, resposta
//     marcada como "local-only" para o operador saber que nada foi pro remoto;
//   - falha genérica de leitura  -> ReadAll local, resposta em modo degradado;
//   - permissão negada (42501)   -> erro puro. Negação de acesso jamais vira
//     mutação local, senão o painel mascara o problema de autorização.
type Guard struct {
	Local *localstore.Store
}

func NewGuard(local *localstore.Store) *Guard {
	return &Guard{Local: local}
}

// Outcome informa ao handler como a escrita terminou.
type Outcome struct {
	LocalOnly bool
}

// Write executa a escrita remota; em falha genérica espelha o registro no
// store local e devolve LocalOnly=true em vez de erro.
func (g *Guard) Write(ctx context.Context, family string, record any, id string, remote func(context.Context) error) (Outcome, error) {
	err := remote(ctx)
	if err == nil {
		return Outcome{}, nil
	}
	if remoteAnswered(err) {
		return Outcome{}, err
	}

	doc, docErr := asDoc(record)
	if docErr != nil {
		return Outcome{}, err
	}

	if _, localErr := g.Local.Upsert(family, doc, id); localErr != nil {
		// Remoto e local falharam. Propaga o erro remoto, que é o original.
		log.Printf("❌ Fallback local também falhou (%s/%s): %v", family, id, localErr)
		return Outcome{}, err
	}

	log.Printf("⚠️ Escrita remota falhou (%s/%s), registro guardado localmente: %v", family, id, err)
	middleware.RecordFallbackWrite(family)
	return Outcome{LocalOnly: true}, nil
}

// Delete segue a mesma política. Permissão negada é reportada como negada —
// jamais aplicamos o delete local por cima.
func (g *Guard) Delete(ctx context.Context, family, id string, remote func(context.Context) error) (Outcome, error) {
	err := remote(ctx)
	if err == nil {
		// Remoção remota ok: some também com qualquer cópia local antiga.
		if localErr := g.Local.Remove(family, id); localErr != nil {
			log.Printf("⚠️ Falha ao limpar cópia local de %s/%s: %v", family, id, localErr)
		}
		return Outcome{}, nil
	}
	if remoteAnswered(err) {
		return Outcome{}, err
	}

	if localErr := g.Local.Remove(family, id); localErr != nil {
		return Outcome{}, err
	}

	log.Printf("⚠️ Delete remoto falhou (%s/%s), removido apenas localmente: %v", family, id, err)
	middleware.RecordFallbackWrite(family)
	return Outcome{LocalOnly: true}, nil
}

// ReadFallback decide se uma leitura que falhou pode ser servida do store
// local. Retorna (docs, true) quando o modo degradado se aplica.
func (g *Guard) ReadFallback(family string, err error) ([]localstore.Record, bool) {
	if err == nil || remoteAnswered(err) {
		return nil, false
	}
	log.Printf("⚠️ Leitura remota falhou (%s), servindo do store local: %v", family, err)
	return g.Local.ReadAll(family), true
}

// remoteAnswered separa "o banco respondeu e disse não" de "o banco não
// respondeu". Fallback local só faz sentido no segundo caso: permissão negada
// e registro inexistente são respostas legítimas do remoto e devem subir.
func remoteAnswered(err error) bool {
	if database.IsPermissionDenied(err) || database.IsDuplicate(err) {
		return true
	}
	for _, sentinel := range []error{
		entity.ErrLeadNotFound,
		entity.ErrNewsNotFound,
		entity.ErrJobNotFound,
		entity.ErrProductNotFound,
		entity.ErrShowroomItemNotFound,
		entity.ErrMessageNotFound,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

func asDoc(record any) (localstore.Record, error) {
	body, err := json.Marshal(record)
	if err != nil {
		return nil, err
	}
	var doc localstore.Record
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}
