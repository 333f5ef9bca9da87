package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/bashlor/Rapid-Work-Tracker-sub000/internal/domain"
	"github.com/bashlor/Rapid-Work-Tracker-sub000/internal/store"
)

// PostgresSubDomainStore implements the store.SubDomainStore interface
// using a PostgreSQL database as the storage backend.
//
// Sub-domain rows don't carry a user id; ownership is established through
// the parent domain, so every user-scoped statement joins domains.
type PostgresSubDomainStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresSubDomainStore creates a new PostgreSQL implementation of the SubDomainStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresSubDomainStore(db store.DBTX, logger *slog.Logger) *PostgresSubDomainStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresSubDomainStore{
		db:     db,
		logger: logger.With(slog.String("component", "sub_domain_store")),
	}
}

// Ensure PostgresSubDomainStore implements store.SubDomainStore interface
var _ store.SubDomainStore = (*PostgresSubDomainStore)(nil)

// Create implements store.SubDomainStore.Create
func (s *PostgresSubDomainStore) Create(ctx context.Context, sd *domain.SubDomain) error {
	query := `
		INSERT INTO sub_domains (id, domain_id, name, created_at)
		VALUES ($1, $2, $3, $4)`

	_, err := s.db.ExecContext(ctx, query, sd.ID, sd.DomainID, sd.Name, sd.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert sub-domain: %w", mapWriteError(err))
	}

	return nil
}

// CreateMany implements store.SubDomainStore.CreateMany
func (s *PostgresSubDomainStore) CreateMany(ctx context.Context, sds []*domain.SubDomain) error {
	for _, sd := range sds {
		if err := s.Create(ctx, sd); err != nil {
			return err
		}
	}
	return nil
}

// Update implements store.SubDomainStore.Update
func (s *PostgresSubDomainStore) Update(
	ctx context.Context,
	userID uuid.UUID,
	sd *domain.SubDomain,
) error {
	query := `
		UPDATE sub_domains
		SET name = $3
		WHERE id = $1
		  AND domain_id IN (SELECT id FROM domains WHERE user_id = $2)`

	result, err := s.db.ExecContext(ctx, query, sd.ID, userID, sd.Name)
	if err != nil {
		return fmt.Errorf("failed to update sub-domain: %w", mapWriteError(err))
	}

	return checkRowsAffected(result, domain.NewSubDomainNotFoundError(sd.ID))
}

// UpdateMany implements store.SubDomainStore.UpdateMany
func (s *PostgresSubDomainStore) UpdateMany(
	ctx context.Context,
	userID uuid.UUID,
	sds []*domain.SubDomain,
) error {
	for _, sd := range sds {
		if err := s.Update(ctx, userID, sd); err != nil {
			return err
		}
	}
	return nil
}

// Delete implements store.SubDomainStore.Delete
func (s *PostgresSubDomainStore) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := `
		DELETE FROM sub_domains
		WHERE id = $1
		  AND domain_id IN (SELECT id FROM domains WHERE user_id = $2)`

	result, err := s.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete sub-domain: %w", mapWriteError(err))
	}

	return checkRowsAffected(result, domain.NewSubDomainNotFoundError(id))
}

// GetByID implements store.SubDomainStore.GetByID
func (s *PostgresSubDomainStore) GetByID(
	ctx context.Context,
	userID, id uuid.UUID,
) (*domain.SubDomain, error) {
	query := `
		SELECT sd.id, sd.domain_id, sd.name, sd.created_at
		FROM sub_domains sd
		JOIN domains d ON d.id = sd.domain_id
		WHERE sd.id = $1 AND d.user_id = $2`

	var sd domain.SubDomain
	err := s.db.QueryRowContext(ctx, query, id, userID).Scan(
		&sd.ID, &sd.DomainID, &sd.Name, &sd.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewSubDomainNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to query sub-domain: %w", err)
	}

	return &sd, nil
}

// ListByDomainID implements store.SubDomainStore.ListByDomainID
func (s *PostgresSubDomainStore) ListByDomainID(
	ctx context.Context,
	userID, domainID uuid.UUID,
) ([]*domain.SubDomain, error) {
	query := `
		SELECT sd.id, sd.domain_id, sd.name, sd.created_at
		FROM sub_domains sd
		JOIN domains d ON d.id = sd.domain_id
		WHERE sd.domain_id = $1 AND d.user_id = $2
		ORDER BY sd.created_at`

	rows, err := s.db.QueryContext(ctx, query, domainID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sub-domains: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var subDomains []*domain.SubDomain
	for rows.Next() {
		var sd domain.SubDomain
		if err := rows.Scan(&sd.ID, &sd.DomainID, &sd.Name, &sd.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan sub-domain: %w", err)
		}
		subDomains = append(subDomains, &sd)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sub-domains: %w", err)
	}

	return subDomains, nil
}

// WithTx implements store.SubDomainStore.WithTx
func (s *PostgresSubDomainStore) WithTx(tx *sql.Tx) store.SubDomainStore {
	return &PostgresSubDomainStore{
		db:     tx,
		logger: s.logger,
	}
}
