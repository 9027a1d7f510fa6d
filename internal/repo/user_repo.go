// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the User
// (principal) model consumed by the identity resolver.
package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/petreunite/go-pet-backend/internal/domain"
)

// GetUser fetches a principal by ID, or ErrNotFound.
func GetUser(ctx context.Context, db *gorm.DB, id string) (*domain.User, error) {
	var u domain.User
	if err := db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// FindUserByEmail fetches a principal by email (case-insensitive), or
// ErrNotFound.
func FindUserByEmail(ctx context.Context, db *gorm.DB, email string) (*domain.User, error) {
	var u domain.User
	err := db.WithContext(ctx).
		Where("email = ?", normalizeEmail(email)).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetOrCreateUserByEmail returns the principal for email, creating the row
// on first sight. The create path tolerates a concurrent insert by re-reading
// after a unique violation.
func GetOrCreateUserByEmail(ctx context.Context, db *gorm.DB, email, displayName string) (*domain.User, error) {
	email = normalizeEmail(email)
	if u, err := FindUserByEmail(ctx, db, email); err == nil {
		return u, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	u := &domain.User{
		ID:          uuid.NewString(),
		Email:       email,
		DisplayName: strings.TrimSpace(displayName),
		CreatedAt:   time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(u).Error; err != nil {
		// Lost a create race; the row exists now.
		if isUniqueViolation(err) {
			return FindUserByEmail(ctx, db, email)
		}
		return nil, err
	}
	return u, nil
}

// isUniqueViolation detects unique-constraint violations across drivers that
// may not map to gorm.ErrDuplicatedKey.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key")
}

// normalizeEmail lowercases and trims an address so lookups and the unique
// index agree on a canonical form.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
