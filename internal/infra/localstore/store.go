package localstore

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3" // Driver do SQLite (arquivo local)
)

// Store é a cópia-sombra local usada quando o Supabase está fora do ar.
// Um registro por (família de entidade, id), documento guardado como JSON.
// Não existe reconciliação automática: o registro fica aqui até o operador
// refazer a ação contra o banco remoto e apagar a cópia.
type Store struct {
	mu sync.Mutex
	db *sql.DB
}

// Record é um documento local genérico. Mantemos map em vez de struct tipada
// porque o fallback guarda qualquer família de entidade com o mesmo código.
type Record = map[string]any

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("falha ao abrir store local: %w", err)
	}

	schema := `
		CREATE TABLE IF NOT EXISTS fallback_records (
			family     TEXT NOT NULL,
			id         TEXT NOT NULL,
			doc        TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL,
			PRIMARY KEY (family, id)
		)
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("falha ao criar schema local: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Upsert grava (ou funde) um documento. Com id existente, faz merge raso:
// campos novos sobrescrevem, campos antigos ausentes no payload são
// preservados. Sem id, sintetiza um a partir do timestamp e insere.
func (s *Store) Upsert(family string, doc Record, id string) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id == "" {
		id = strconv.FormatInt(time.Now().UnixNano(), 10)
	}

	stored := s.readOne(family, id)
	if stored == nil {
		stored = Record{}
	}
	for k, v := range doc {
		stored[k] = v
	}
	stored["id"] = id

	body, err := json.Marshal(stored)
	if err != nil {
		return nil, fmt.Errorf("falha ao serializar registro local: %w", err)
	}

	query := `
		INSERT INTO fallback_records (family, id, doc, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (family, id) DO UPDATE SET doc = excluded.doc, updated_at = excluded.updated_at
	`
	if _, err := s.db.Exec(query, family, id, string(body), time.Now()); err != nil {
		return nil, fmt.Errorf("falha ao gravar registro local: %w", err)
	}

	return stored, nil
}

// Remove é idempotente: apagar id inexistente não é erro.
func (s *Store) Remove(family, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`DELETE FROM fallback_records WHERE family = ? AND id = ?`, family, id)
	return err
}

// ReadAll devolve a sequência local da família. Storage vazio, indisponível
// ou corrompido vira sequência vazia — corrupção é engolida, nunca propagada,
// porque o modo degradado não pode quebrar o painel.
func (s *Store) ReadAll(family string) []Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(
		`SELECT doc FROM fallback_records WHERE family = ? ORDER BY updated_at DESC`, family)
	if err != nil {
		log.Printf("⚠️ Store local indisponível (%s): %v", family, err)
		return []Record{}
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			continue
		}
		var rec Record
		if err := json.Unmarshal([]byte(body), &rec); err != nil {
			// Registro podre. Pula e segue.
			continue
		}
		records = append(records, rec)
	}
	return records
}

// Count por família, usado pelo monitor de pendências.
func (s *Store) Count(family string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM fallback_records WHERE family = ?`, family).Scan(&n)
	return n, err
}

func (s *Store) readOne(family, id string) Record {
	var body string
	err := s.db.QueryRow(
		`SELECT doc FROM fallback_records WHERE family = ? AND id = ?`, family, id).Scan(&body)
	if err != nil {
		return nil
	}
	var rec Record
	if err := json.Unmarshal([]byte(body), &rec); err != nil {
		return nil
	}
	return rec
}
