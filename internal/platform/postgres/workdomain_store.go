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

// PostgresDomainStore implements the store.DomainStore interface
// using a PostgreSQL database as the storage backend.
type PostgresDomainStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresDomainStore creates a new PostgreSQL implementation of the DomainStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresDomainStore(db store.DBTX, logger *slog.Logger) *PostgresDomainStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresDomainStore{
		db:     db,
		logger: logger.With(slog.String("component", "domain_store")),
	}
}

// Ensure PostgresDomainStore implements store.DomainStore interface
var _ store.DomainStore = (*PostgresDomainStore)(nil)

// Create implements store.DomainStore.Create
func (s *PostgresDomainStore) Create(ctx context.Context, d *domain.Domain) error {
	query := `
		INSERT INTO domains (id, user_id, name, created_at)
		VALUES ($1, $2, $3, $4)`

	_, err := s.db.ExecContext(ctx, query, d.ID, d.UserID, d.Name, d.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert domain: %w", mapWriteError(err))
	}

	return nil
}

// Update implements store.DomainStore.Update
func (s *PostgresDomainStore) Update(ctx context.Context, d *domain.Domain) error {
	query := `
		UPDATE domains
		SET name = $3
		WHERE id = $1 AND user_id = $2`

	result, err := s.db.ExecContext(ctx, query, d.ID, d.UserID, d.Name)
	if err != nil {
		return fmt.Errorf("failed to update domain: %w", mapWriteError(err))
	}

	return checkRowsAffected(result, domain.NewDomainNotFoundError(d.ID))
}

// Delete implements store.DomainStore.Delete
func (s *PostgresDomainStore) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := `DELETE FROM domains WHERE id = $1 AND user_id = $2`

	result, err := s.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete domain: %w", mapWriteError(err))
	}

	return checkRowsAffected(result, domain.NewDomainNotFoundError(id))
}

// GetByID implements store.DomainStore.GetByID
func (s *PostgresDomainStore) GetByID(
	ctx context.Context,
	userID, id uuid.UUID,
) (*domain.Domain, error) {
	query := `
		SELECT id, user_id, name, created_at
		FROM domains
		WHERE id = $1 AND user_id = $2`

	var d domain.Domain
	err := s.db.QueryRowContext(ctx, query, id, userID).Scan(
		&d.ID, &d.UserID, &d.Name, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewDomainNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to query domain: %w", err)
	}

	subDomains, err := s.loadSubDomains(ctx, []uuid.UUID{d.ID})
	if err != nil {
		return nil, err
	}
	d.SubDomains = subDomains[d.ID]

	return &d, nil
}

// ListByUserID implements store.DomainStore.ListByUserID
func (s *PostgresDomainStore) ListByUserID(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Domain, error) {
	query := `
		SELECT id, user_id, name, created_at
		FROM domains
		WHERE user_id = $1
		ORDER BY created_at`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query domains: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var domains []*domain.Domain
	var ids []uuid.UUID
	for rows.Next() {
		var d domain.Domain
		if err := rows.Scan(&d.ID, &d.UserID, &d.Name, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan domain: %w", err)
		}
		domains = append(domains, &d)
		ids = append(ids, d.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate domains: %w", err)
	}

	if len(ids) == 0 {
		return domains, nil
	}

	subDomains, err := s.loadSubDomains(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, d := range domains {
		d.SubDomains = subDomains[d.ID]
	}

	return domains, nil
}

// loadSubDomains fetches the sub-domains of the given domains in one query
// and groups them by parent domain id.
func (s *PostgresDomainStore) loadSubDomains(
	ctx context.Context,
	domainIDs []uuid.UUID,
) (map[uuid.UUID][]domain.SubDomain, error) {
	query := `
		SELECT id, domain_id, name, created_at
		FROM sub_domains
		WHERE domain_id = ANY($1)
		ORDER BY created_at`

	rows, err := s.db.QueryContext(ctx, query, domainIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query sub-domains: %w", err)
	}
	defer func() { _ = rows.Close() }()

	grouped := make(map[uuid.UUID][]domain.SubDomain, len(domainIDs))
	for rows.Next() {
		var sd domain.SubDomain
		if err := rows.Scan(&sd.ID, &sd.DomainID, &sd.Name, &sd.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan sub-domain: %w", err)
		}
		grouped[sd.DomainID] = append(grouped[sd.DomainID], sd)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sub-domains: %w", err)
	}

	return grouped, nil
}

// WithTx implements store.DomainStore.WithTx
func (s *PostgresDomainStore) WithTx(tx *sql.Tx) store.DomainStore {
	return &PostgresDomainStore{
		db:     tx,
		logger: s.logger,
	}
}
