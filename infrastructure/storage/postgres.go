package storage

import (
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/nexumapp/nexum-api/infrastructure/database/postgres"
)

const blobsTable = "kv_blobs"

type postgresStore struct {
	conn *postgres.Connection
}

// NewPostgresStore cria um Store apoiado na tabela kv_blobs do PostgreSQL.
func NewPostgresStore(conn *postgres.Connection) Store {
	return &postgresStore{
		conn: conn,
	}
}

func (s *postgresStore) Get(key string) (string, bool, error) {
	querySQL, queryArgs, err := squirrel.
		Select("value").
		From(blobsTable).
		Where(squirrel.Eq{"key": key}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return "", false, err
	}

	var value string
	err = s.conn.QueryRow(querySQL, queryArgs...).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", false, nil
		}
		return "", false, err
	}

	return value, true, nil
}

func (s *postgresStore) Set(key, value string) error {
	querySQL, queryArgs, err := squirrel.
		Insert(blobsTable).
		Columns("key", "value", "updated_at").
		Values(key, value, time.Now()).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	_, err = s.conn.Exec(querySQL, queryArgs...)
	return err
}

func (s *postgresStore) Remove(key string) error {
	querySQL, queryArgs, err := squirrel.
		Delete(blobsTable).
		Where(squirrel.Eq{"key": key}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	_, err = s.conn.Exec(querySQL, queryArgs...)
	return err
}
