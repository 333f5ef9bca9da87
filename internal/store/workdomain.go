package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/bashlor/Rapid-Work-Tracker-sub000/internal/domain"
)

// DomainStore defines the interface for domain (category) persistence.
// Every lookup is scoped by the owning user; the contract never allows
// cross-user access.
type DomainStore interface {
	// Create saves a new domain. Embedded sub-domains are NOT persisted by
	// this method; use SubDomainStore for those.
	Create(ctx context.Context, d *domain.Domain) error

	// Update modifies an existing domain's own fields (name).
	// Returns domain.ErrDomainNotFound if the domain does not exist for the user.
	Update(ctx context.Context, d *domain.Domain) error

	// Delete removes a domain by (userID, id).
	// Returns domain.ErrDomainNotFound if the domain does not exist for the user.
	// Referential guards (no sub-domains, no tasks) are the feature layer's
	// responsibility, not the store's.
	Delete(ctx context.Context, userID, id uuid.UUID) error

	// GetByID retrieves a domain by (userID, id) with its sub-domains embedded.
	// Returns domain.ErrDomainNotFound if the domain does not exist for the user.
	GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Domain, error)

	// ListByUserID returns all of a user's domains with sub-domains embedded.
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Domain, error)

	// WithTx returns a new DomainStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) DomainStore
}

// SubDomainStore defines the interface for sub-domain persistence.
type SubDomainStore interface {
	// Create saves a new sub-domain.
	Create(ctx context.Context, sd *domain.SubDomain) error

	// CreateMany saves multiple sub-domains.
	// Run it within a transaction (WithTx + RunInTransaction) for atomicity.
	CreateMany(ctx context.Context, sds []*domain.SubDomain) error

	// Update modifies an existing sub-domain.
	// Returns domain.ErrSubDomainNotFound if it does not exist for the user.
	Update(ctx context.Context, userID uuid.UUID, sd *domain.SubDomain) error

	// UpdateMany modifies multiple sub-domains.
	// Run it within a transaction for atomicity.
	UpdateMany(ctx context.Context, userID uuid.UUID, sds []*domain.SubDomain) error

	// Delete removes a sub-domain by (userID, id).
	// Returns domain.ErrSubDomainNotFound if it does not exist for the user.
	Delete(ctx context.Context, userID, id uuid.UUID) error

	// GetByID retrieves a sub-domain by (userID, id).
	// Returns domain.ErrSubDomainNotFound if it does not exist for the user.
	GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.SubDomain, error)

	// ListByDomainID returns all sub-domains of one of the user's domains.
	ListByDomainID(ctx context.Context, userID, domainID uuid.UUID) ([]*domain.SubDomain, error)

	// WithTx returns a new SubDomainStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) SubDomainStore
}
