package database

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq" // Driver do Postgres (Supabase)
)

// NewDBConnection abre a conexão e testa o Ping
func NewDBConnection(connString string) (*sql.DB, error) {
	// 1. Abre a conexão (mas não conecta de verdade ainda, só valida a string)
	db, err := sql.Open("postgres", connString)
	if err != nil {
		return nil, err
	}

	// 2. Configura o Pool (Essencial para produção)
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// 3. O Ping: A prova de fogo. A conexão volta mesmo com o ping
	// falhando — o pool reconecta sozinho quando o Supabase responder, e
	// enquanto isso as escritas caem no store local.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return db, err
	}

	return db, nil
}
