package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrEmptySubDomainID is returned when a sub-domain ID is empty or nil.
var ErrEmptySubDomainID = errors.New("sub-domain ID cannot be empty")

// SubDomain is a second-level category nested under a Domain
// (e.g. "Engineering" -> "Frontend"). A sub-domain always references an
// existing parent domain; orphaned sub-domains are invalid.
type SubDomain struct {
	ID        uuid.UUID `json:"id"`
	DomainID  uuid.UUID `json:"domain_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// NewSubDomain creates a new SubDomain under the given parent domain.
// It generates a new UUID for the sub-domain ID, normalizes the name, and
// sets the creation timestamp. Returns an error if validation fails.
func NewSubDomain(domainID uuid.UUID, name string) (*SubDomain, error) {
	normalized, err := NormalizeLabel(name)
	if err != nil {
		return nil, err
	}

	sd := &SubDomain{
		ID:        uuid.New(),
		DomainID:  domainID,
		Name:      normalized,
		CreatedAt: time.Now().UTC(),
	}

	if err := sd.Validate(); err != nil {
		return nil, err
	}

	return sd, nil
}

// Validate checks if the SubDomain has valid data.
// Returns an error if any field fails validation.
func (sd *SubDomain) Validate() error {
	if sd.ID == uuid.Nil {
		return ErrEmptySubDomainID
	}

	if sd.DomainID == uuid.Nil {
		return ErrSubDomainWithoutDomain
	}

	if _, err := NormalizeLabel(sd.Name); err != nil {
		return err
	}

	return nil
}
