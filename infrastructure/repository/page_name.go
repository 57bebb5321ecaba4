package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/page-reach-sync/infrastructure/database/postgres"
)

const pageNamesTable = "page_names"

// PageNameRepository é o cache persistente de nomes de páginas, usado
// quando a listagem da Graph API não traz o nome
type PageNameRepository interface {
	Get(pageID string) (string, error)
	GetAll() (map[string]string, error)
	Upsert(pageID, name string) error
}

type pageNameRepository struct {
	conn postgres.Queryer
}

func NewPageNameRepository(conn postgres.Queryer) PageNameRepository {
	return &pageNameRepository{
		conn: conn,
	}
}

func (r *pageNameRepository) Get(pageID string) (string, error) {
	query, args, err := squirrel.
		Select("name").
		From(pageNamesTable).
		Where(squirrel.Eq{"page_id": pageID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return "", err
	}

	var name string
	if err := r.conn.QueryRow(query, args...).Scan(&name); err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", err
	}

	return name, nil
}

func (r *pageNameRepository) GetAll() (map[string]string, error) {
	query, args, err := squirrel.
		Select("page_id, name").
		From(pageNamesTable).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := make(map[string]string)
	for rows.Next() {
		var pageID, name string
		if err := rows.Scan(&pageID, &name); err != nil {
			logrus.WithError(err).Error("Erro ao ler linha do cache de nomes")
			return nil, err
		}
		names[pageID] = name
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return names, nil
}

func (r *pageNameRepository) Upsert(pageID, name string) error {
	query, args, err := squirrel.
		Insert(pageNamesTable).
		Columns("page_id", "name").
		Values(pageID, name).
		Suffix(`
			ON CONFLICT (page_id) DO UPDATE SET
				name = EXCLUDED.name,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}
