package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/bashlor/Rapid-Work-Tracker-sub000/internal/domain"
	"github.com/bashlor/Rapid-Work-Tracker-sub000/internal/store"
)

// CreateDomainInput is the plain input record for DomainService.CreateDomain.
type CreateDomainInput struct {
	UserID     uuid.UUID
	Name       string
	SubDomains []string
}

// SubDomainChange describes one sub-domain in an edit payload. A nil ID
// means a new sub-domain to create; a non-nil ID renames an existing one.
type SubDomainChange struct {
	ID   *uuid.UUID
	Name string
}

// EditDomainInput is the plain input record for DomainService.EditDomain.
type EditDomainInput struct {
	UserID     uuid.UUID
	DomainID   uuid.UUID
	Name       string
	SubDomains []SubDomainChange
}

// DomainService provides the domain and sub-domain use cases.
type DomainService interface {
	// CreateDomain builds a new domain, optionally with initial sub-domains,
	// and persists both atomically.
	CreateDomain(ctx context.Context, input CreateDomainInput) (*domain.Domain, error)

	// EditDomain renames an existing domain and applies sub-domain changes,
	// preserving the domain's id, owner, and creation timestamp.
	// Returns domain.ErrDomainNotFound if the domain does not exist.
	EditDomain(ctx context.Context, input EditDomainInput) (*domain.Domain, error)

	// DeleteDomain removes a domain that has no sub-domains and no tasks.
	// Returns domain.ErrDomainHasSubDomains or domain.ErrDomainHasTasks when
	// dependents still reference it.
	DeleteDomain(ctx context.Context, userID, domainID uuid.UUID) error

	// ListDomains returns all of a user's domains with sub-domains embedded.
	ListDomains(ctx context.Context, userID uuid.UUID) ([]*domain.Domain, error)

	// CreateSubDomain adds a sub-domain under an existing parent domain.
	// Returns domain.ErrDomainNotFound if the parent does not exist.
	CreateSubDomain(ctx context.Context, userID, domainID uuid.UUID, name string) (*domain.SubDomain, error)

	// UpdateSubDomain renames an existing sub-domain.
	// Returns domain.ErrSubDomainNotFound if it does not exist.
	UpdateSubDomain(ctx context.Context, userID, subDomainID uuid.UUID, name string) (*domain.SubDomain, error)

	// DeleteSubDomain removes a sub-domain that has no tasks referencing it.
	// Returns domain.ErrSubDomainHasTasks when tasks still reference it.
	DeleteSubDomain(ctx context.Context, userID, subDomainID uuid.UUID) error
}

type domainServiceImpl struct {
	domainStore    store.DomainStore
	subDomainStore store.SubDomainStore
	taskStore      store.TaskStore
	db             *sql.DB
	logger         *slog.Logger
}

// NewDomainService creates a new DomainService.
func NewDomainService(
	domainStore store.DomainStore,
	subDomainStore store.SubDomainStore,
	taskStore store.TaskStore,
	db *sql.DB,
	logger *slog.Logger,
) DomainService {
	if logger == nil {
		logger = slog.Default()
	}
	return &domainServiceImpl{
		domainStore:    domainStore,
		subDomainStore: subDomainStore,
		taskStore:      taskStore,
		db:             db,
		logger:         logger.With(slog.String("component", "domain_service")),
	}
}

// CreateDomain implements DomainService.CreateDomain.
func (s *domainServiceImpl) CreateDomain(
	ctx context.Context,
	input CreateDomainInput,
) (*domain.Domain, error) {
	d, err := domain.NewDomain(input.UserID, input.Name)
	if err != nil {
		return nil, err
	}

	subDomains := make([]*domain.SubDomain, 0, len(input.SubDomains))
	for _, name := range input.SubDomains {
		sd, err := domain.NewSubDomain(d.ID, name)
		if err != nil {
			return nil, err
		}
		subDomains = append(subDomains, sd)
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.domainStore.WithTx(tx).Create(ctx, d); err != nil {
			return fmt.Errorf("failed to save domain: %w", err)
		}
		if len(subDomains) > 0 {
			if err := s.subDomainStore.WithTx(tx).CreateMany(ctx, subDomains); err != nil {
				return fmt.Errorf("failed to save sub-domains: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("failed to create domain",
			slog.String("error", err.Error()),
			slog.String("user_id", input.UserID.String()))
		return nil, err
	}

	for _, sd := range subDomains {
		d.SubDomains = append(d.SubDomains, *sd)
	}

	s.logger.Info("domain created",
		slog.String("domain_id", d.ID.String()),
		slog.String("user_id", d.UserID.String()),
		slog.Int("sub_domain_count", len(d.SubDomains)))

	return d, nil
}

// EditDomain implements DomainService.EditDomain.
func (s *domainServiceImpl) EditDomain(
	ctx context.Context,
	input EditDomainInput,
) (*domain.Domain, error) {
	existing, err := s.domainStore.GetByID(ctx, input.UserID, input.DomainID)
	if err != nil {
		return nil, err
	}

	// Rebuild from the stored domain: id, owner, and createdAt are preserved,
	// only the name and sub-domains change.
	updated := *existing
	if err := updated.Rename(input.Name); err != nil {
		return nil, err
	}

	var toCreate, toUpdate []*domain.SubDomain
	for _, change := range input.SubDomains {
		if change.ID == nil {
			sd, err := domain.NewSubDomain(updated.ID, change.Name)
			if err != nil {
				return nil, err
			}
			toCreate = append(toCreate, sd)
			continue
		}

		current := existing.SubDomain(*change.ID)
		if current == nil {
			return nil, domain.NewSubDomainNotFoundError(*change.ID)
		}
		name, err := domain.NormalizeLabel(change.Name)
		if err != nil {
			return nil, err
		}
		renamed := *current
		renamed.Name = name
		toUpdate = append(toUpdate, &renamed)
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.domainStore.WithTx(tx).Update(ctx, &updated); err != nil {
			return fmt.Errorf("failed to update domain: %w", err)
		}
		txSubDomains := s.subDomainStore.WithTx(tx)
		if len(toUpdate) > 0 {
			if err := txSubDomains.UpdateMany(ctx, input.UserID, toUpdate); err != nil {
				return fmt.Errorf("failed to update sub-domains: %w", err)
			}
		}
		if len(toCreate) > 0 {
			if err := txSubDomains.CreateMany(ctx, toCreate); err != nil {
				return fmt.Errorf("failed to save sub-domains: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("failed to edit domain",
			slog.String("error", err.Error()),
			slog.String("domain_id", input.DomainID.String()),
			slog.String("user_id", input.UserID.String()))
		return nil, err
	}

	s.logger.Info("domain edited",
		slog.String("domain_id", updated.ID.String()),
		slog.String("user_id", updated.UserID.String()))

	return s.domainStore.GetByID(ctx, input.UserID, input.DomainID)
}

// DeleteDomain implements DomainService.DeleteDomain.
// Deletion is only permitted on an empty domain: this is a guard-before-delete,
// not a cascade.
func (s *domainServiceImpl) DeleteDomain(ctx context.Context, userID, domainID uuid.UUID) error {
	d, err := s.domainStore.GetByID(ctx, userID, domainID)
	if err != nil {
		return err
	}

	if len(d.SubDomains) > 0 {
		return domain.ErrDomainHasSubDomains
	}

	tasks, err := s.taskStore.ListByDomainID(ctx, userID, domainID)
	if err != nil {
		return fmt.Errorf("failed to list domain tasks: %w", err)
	}
	if len(tasks) > 0 {
		return domain.ErrDomainHasTasks
	}

	if err := s.domainStore.Delete(ctx, userID, domainID); err != nil {
		return err
	}

	s.logger.Info("domain deleted",
		slog.String("domain_id", domainID.String()),
		slog.String("user_id", userID.String()))

	return nil
}

// ListDomains implements DomainService.ListDomains.
func (s *domainServiceImpl) ListDomains(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Domain, error) {
	return s.domainStore.ListByUserID(ctx, userID)
}

// CreateSubDomain implements DomainService.CreateSubDomain.
func (s *domainServiceImpl) CreateSubDomain(
	ctx context.Context,
	userID, domainID uuid.UUID,
	name string,
) (*domain.SubDomain, error) {
	// The parent domain must exist; orphaned sub-domains are invalid.
	if _, err := s.domainStore.GetByID(ctx, userID, domainID); err != nil {
		return nil, err
	}

	sd, err := domain.NewSubDomain(domainID, name)
	if err != nil {
		return nil, err
	}

	if err := s.subDomainStore.Create(ctx, sd); err != nil {
		return nil, fmt.Errorf("failed to save sub-domain: %w", err)
	}

	s.logger.Info("sub-domain created",
		slog.String("sub_domain_id", sd.ID.String()),
		slog.String("domain_id", domainID.String()),
		slog.String("user_id", userID.String()))

	return sd, nil
}

// UpdateSubDomain implements DomainService.UpdateSubDomain.
func (s *domainServiceImpl) UpdateSubDomain(
	ctx context.Context,
	userID, subDomainID uuid.UUID,
	name string,
) (*domain.SubDomain, error) {
	sd, err := s.subDomainStore.GetByID(ctx, userID, subDomainID)
	if err != nil {
		return nil, err
	}

	normalized, err := domain.NormalizeLabel(name)
	if err != nil {
		return nil, err
	}
	sd.Name = normalized

	if err := s.subDomainStore.Update(ctx, userID, sd); err != nil {
		return nil, err
	}

	return sd, nil
}

// DeleteSubDomain implements DomainService.DeleteSubDomain.
func (s *domainServiceImpl) DeleteSubDomain(ctx context.Context, userID, subDomainID uuid.UUID) error {
	if _, err := s.subDomainStore.GetByID(ctx, userID, subDomainID); err != nil {
		return err
	}

	tasks, err := s.taskStore.ListBySubDomainID(ctx, userID, subDomainID)
	if err != nil {
		return fmt.Errorf("failed to list sub-domain tasks: %w", err)
	}
	if len(tasks) > 0 {
		return domain.ErrSubDomainHasTasks
	}

	if err := s.subDomainStore.Delete(ctx, userID, subDomainID); err != nil {
		return err
	}

	s.logger.Info("sub-domain deleted",
		slog.String("sub_domain_id", subDomainID.String()),
		slog.String("user_id", userID.String()))

	return nil
}
