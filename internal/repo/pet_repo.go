// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Pet model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations. They
// follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a pet is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/petreunite/go-pet-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// CreatePet inserts a new Pet report filed by reporterID. The pet ID is a
// randomly generated UUID (string), and CreatedAt is set to UTC.
func CreatePet(ctx context.Context, db *gorm.DB, p *domain.Pet) (*domain.Pet, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.CreatedAt = time.Now().UTC()
	if err := db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// GetPet fetches a single pet by its ID. If the record does not exist, it
// returns ErrNotFound. On other DB errors, the raw error is returned.
func GetPet(ctx context.Context, db *gorm.DB, id string) (*domain.Pet, error) {
	var p domain.Pet
	if err := db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// ListPets returns a paginated slice of pet reports, newest first, optionally
// filtered by disposition. Use CountPets to obtain the total for pagination
// metadata.
func ListPets(ctx context.Context, db *gorm.DB, disposition string, offset, limit int) ([]domain.Pet, error) {
	q := db.WithContext(ctx).Model(&domain.Pet{})
	if disposition != "" {
		q = q.Where("disposition = ?", disposition)
	}
	var out []domain.Pet
	err := q.Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// CountPets returns the total number of pet reports, optionally filtered by
// disposition.
func CountPets(ctx context.Context, db *gorm.DB, disposition string) (int64, error) {
	q := db.WithContext(ctx).Model(&domain.Pet{})
	if disposition != "" {
		q = q.Where("disposition = ?", disposition)
	}
	var total int64
	err := q.Count(&total).Error
	return total, err
}

// UpdatePetDisposition flips the lifecycle tag of a pet (the reunification
// side effect of a VERIFIED outcome). If no rows are affected (pet missing),
// it returns ErrNotFound. On DB error, the raw error is returned.
func UpdatePetDisposition(ctx context.Context, db *gorm.DB, id, disposition string) error {
	res := db.WithContext(ctx).
		Model(&domain.Pet{}).
		Where("id = ?", id).
		Update("disposition", disposition)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
