package store

import (
	"context"
	"errors"
	"time"

	"github.com/edgelink/linkservice/internal/link"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore is a PostgreSQL implementation of link.AuthoritativeStore.
// Each shard gets its own store backed by its own pool, so per-shard write
// throughput is bounded by that shard's database alone. Row locking on the
// primary key serializes concurrent mutations of the same identifier.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL-backed shard store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (p *PostgresStore) Create(ctx context.Context, l *link.Link) error {
	query := `
		INSERT INTO links (id, secret_key, destination, expires_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET secret_key = EXCLUDED.secret_key,
		    destination = EXCLUDED.destination,
		    expires_at = EXCLUDED.expires_at
	`

	_, err := p.pool.Exec(ctx, query,
		string(l.ID),
		string(l.Key),
		l.Destination,
		l.ExpiresAt,
	)

	return err
}

func (p *PostgresStore) Get(ctx context.Context, id link.Identifier) (*link.Link, error) {
	query := `
		SELECT id, secret_key, destination, expires_at
		FROM links
		WHERE id = $1
	`

	var l link.Link

	err := p.pool.QueryRow(ctx, query, string(id)).Scan(
		&l.ID,
		&l.Key,
		&l.Destination,
		&l.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, link.ErrNotFound
		}

		return nil, err
	}

	return &l, nil
}

func (p *PostgresStore) Update(ctx context.Context, id link.Identifier, destination string, expiresAt time.Time) error {
	query := `
		UPDATE links
		SET destination = $2, expires_at = $3
		WHERE id = $1
	`

	tag, err := p.pool.Exec(ctx, query, string(id), destination, expiresAt)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return link.ErrNotFound
	}

	return nil
}

func (p *PostgresStore) Delete(ctx context.Context, id link.Identifier) error {
	query := `DELETE FROM links WHERE id = $1`

	// Zero rows affected is fine: delete is idempotent.
	_, err := p.pool.Exec(ctx, query, string(id))

	return err
}

// Compile-time check.
var _ link.AuthoritativeStore = (*PostgresStore)(nil)
