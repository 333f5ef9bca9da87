package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Domain-specific validation errors
var (
	// ErrEmptyDomainID is returned when a domain ID is empty or nil.
	ErrEmptyDomainID = errors.New("domain ID cannot be empty")

	// ErrEmptyDomainUserID is returned when a domain's user ID is empty or nil.
	ErrEmptyDomainUserID = errors.New("domain user ID cannot be empty")
)

// Domain is a user-defined top-level category for tasks (e.g. "Engineering").
// It belongs to exactly one user and embeds its sub-domains.
type Domain struct {
	ID         uuid.UUID   `json:"id"`
	UserID     uuid.UUID   `json:"user_id"`
	Name       string      `json:"name"`
	SubDomains []SubDomain `json:"sub_domains"`
	CreatedAt  time.Time   `json:"created_at"`
}

// NewDomain creates a new Domain owned by the given user.
// It generates a new UUID for the domain ID, normalizes the name, and sets
// the creation timestamp. Returns an error if validation fails.
func NewDomain(userID uuid.UUID, name string) (*Domain, error) {
	normalized, err := NormalizeLabel(name)
	if err != nil {
		return nil, err
	}

	d := &Domain{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      normalized,
		CreatedAt: time.Now().UTC(),
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}

	return d, nil
}

// Validate checks if the Domain has valid data.
// Returns an error if any field fails validation.
func (d *Domain) Validate() error {
	if d.ID == uuid.Nil {
		return ErrEmptyDomainID
	}

	if d.UserID == uuid.Nil {
		return ErrEmptyDomainUserID
	}

	if _, err := NormalizeLabel(d.Name); err != nil {
		return err
	}

	for i := range d.SubDomains {
		if err := d.SubDomains[i].Validate(); err != nil {
			return err
		}
	}

	return nil
}

// Rename validates and applies a new name.
func (d *Domain) Rename(name string) error {
	normalized, err := NormalizeLabel(name)
	if err != nil {
		return err
	}
	d.Name = normalized
	return nil
}

// SubDomain looks up an embedded sub-domain by id.
// Returns nil when the id is not present.
func (d *Domain) SubDomain(id uuid.UUID) *SubDomain {
	for i := range d.SubDomains {
		if d.SubDomains[i].ID == id {
			return &d.SubDomains[i]
		}
	}
	return nil
}
