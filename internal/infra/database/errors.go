package database

import (
	"errors"

	"github.com/lib/pq"
)

// Códigos do Postgres que o painel trata de forma distinta.
// 42501 = insufficient_privilege: o RLS do Supabase negou a operação.
// 23505 = unique_violation.
const (
	codePermissionDenied = "42501"
	codeUniqueViolation  = "23505"
)

// IsPermissionDenied separa "negado pelo banco" de falha genérica de rede.
// A política de fallback local depende dessa distinção: operação negada
// nunca é aplicada localmente.
func IsPermissionDenied(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == codePermissionDenied
	}
	return false
}

func IsDuplicate(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == codeUniqueViolation
	}
	return false
}
