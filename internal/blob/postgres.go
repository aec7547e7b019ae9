package blob

import (
	"context"
	"errors"

	"backend-waytrack/internal/db"

	"github.com/jackc/pgx/v5"
)

// PostgresStore keeps the blob in a single row of the blobs table, keyed by
// name and upserted on save.
type PostgresStore struct {
	db  db.Querier
	key string
}

func NewPostgresStore(q db.Querier, key string) *PostgresStore {
	return &PostgresStore{db: q, key: key}
}

func (s *PostgresStore) Load(ctx context.Context) ([]byte, bool, error) {
	var data []byte
	err := s.db.QueryRow(ctx, `SELECT data FROM blobs WHERE key=$1`, s.key).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

func (s *PostgresStore) Save(ctx context.Context, data []byte) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO blobs (key, data, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET data=EXCLUDED.data, updated_at=now()
	`, s.key, data)
	return err
}
