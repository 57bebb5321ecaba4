package postgres

import (
	"database/sql"
)

// Queryer é a superfície de consulta que os repositórios consomem.
// É satisfeita tanto por *Connection quanto por *sql.Tx.
type Queryer interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}
