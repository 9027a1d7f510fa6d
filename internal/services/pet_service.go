// Package services – PetService
//
// Minimal lifecycle operations for pet reports: filing, listing, and lookup.
// Reports are plumbing around the verification core; anything beyond simple
// persistence (search ranking, adoption marketplace) lives elsewhere.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/petreunite/go-pet-backend/internal/domain"
	"github.com/petreunite/go-pet-backend/internal/repo"
)

// ErrInvalidDisposition is returned when a report is filed with a lifecycle
// tag other than lost, found, or adopted.
var ErrInvalidDisposition = errors.New("disposition must be lost, found, or adopted")

// ErrPetNameRequired is returned when a report has no pet name.
var ErrPetNameRequired = errors.New("pet name required")

// PetService provides pet report operations.
type PetService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// File creates a new pet report owned by reporterID. Reports enter as lost,
// found, or adopted; "reunited" is reserved for the verification outcome.
func (s *PetService) File(ctx context.Context, reporterID string, p *domain.Pet) (*domain.Pet, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return nil, ErrPetNameRequired
	}
	switch p.Disposition {
	case domain.DispositionLost, domain.DispositionFound, domain.DispositionAdopted:
	default:
		return nil, ErrInvalidDisposition
	}
	p.ReporterID = reporterID
	p.OwnerContact = strings.ToLower(strings.TrimSpace(p.OwnerContact))
	return repo.CreatePet(ctx, s.DB, p)
}

// Get returns a pet report by id.
func (s *PetService) Get(ctx context.Context, id string) (*domain.Pet, error) {
	p, err := repo.GetPet(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPetNotFound
		}
		return nil, err
	}
	return p, nil
}

// ListPage returns a page of reports, newest first, optionally filtered by
// disposition, plus the total count.
func (s *PetService) ListPage(ctx context.Context, disposition string, page, pageSize int) ([]domain.Pet, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	total, err := repo.CountPets(ctx, s.DB, disposition)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Pet{}, 0, nil
	}

	items, err := repo.ListPets(ctx, s.DB, disposition, offset, pageSize)
	return items, total, err
}
