// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// Verification aggregate.
//
// All functions are context-aware and accept a *gorm.DB handle so the service
// layer can compose them inside a single transaction per state transition.
//
// Concurrency: state writes go through SaveVerificationGuarded, which
// conditions the UPDATE on the version the caller read and bumps it by one.
// A write against a stale version affects zero rows and returns
// ErrStaleVersion, turning racing transitions into explicit conflicts.
package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/petreunite/go-pet-backend/internal/domain"
)

// ErrStaleVersion indicates a guarded write lost an optimistic-concurrency
// race: the row's version moved on since it was read.
var ErrStaleVersion = errors.New("verification was modified concurrently")

// CreateVerification inserts a new Verification row. ID and CreatedAt are
// assigned here; the unique (pet_id, claimant_id) index enforces the
// one-record-per-pair invariant at the storage level.
func CreateVerification(ctx context.Context, db *gorm.DB, v *domain.Verification) (*domain.Verification, error) {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	v.CreatedAt = time.Now().UTC()
	if v.Version == 0 {
		v.Version = 1
	}
	if err := db.WithContext(ctx).Create(v).Error; err != nil {
		return nil, err
	}
	return v, nil
}

// GetVerification fetches a verification by ID with its chat history loaded
// in append order, or ErrNotFound.
func GetVerification(ctx context.Context, db *gorm.DB, id string) (*domain.Verification, error) {
	var v domain.Verification
	err := db.WithContext(ctx).
		Preload("ChatHistory", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("created_at ASC, id ASC")
		}).
		Where("id = ?", id).
		First(&v).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// FindVerificationByPair fetches the unique verification for a (pet,
// claimant) pair, or ErrNotFound. Used to make initiation idempotent.
func FindVerificationByPair(ctx context.Context, db *gorm.DB, petID, claimantID string) (*domain.Verification, error) {
	var v domain.Verification
	err := db.WithContext(ctx).
		Preload("ChatHistory", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("created_at ASC, id ASC")
		}).
		Where("pet_id = ? AND claimant_id = ?", petID, claimantID).
		First(&v).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// ListVerificationsForUser returns a paginated slice of verifications where
// userID is finder or claimant, newest first. Use CountVerificationsForUser
// for pagination metadata.
func ListVerificationsForUser(ctx context.Context, db *gorm.DB, userID string, offset, limit int) ([]domain.Verification, error) {
	var out []domain.Verification
	err := db.WithContext(ctx).
		Where("finder_id = ? OR claimant_id = ?", userID, userID).
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// CountVerificationsForUser returns the total number of verifications where
// userID is a participant.
func CountVerificationsForUser(ctx context.Context, db *gorm.DB, userID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Verification{}).
		Where("finder_id = ? OR claimant_id = ?", userID, userID).
		Count(&total).Error
	return total, err
}

// ListDisputedVerifications returns all DISPUTED records, oldest dispute
// first so arbitration can work the aging end of the queue.
func ListDisputedVerifications(ctx context.Context, db *gorm.DB) ([]domain.Verification, error) {
	var out []domain.Verification
	err := db.WithContext(ctx).
		Where("status = ?", domain.StatusDisputed).
		Order("dispute_opened_at asc").
		Find(&out).Error
	return out, err
}

// SaveVerificationGuarded persists the mutated aggregate fields of v,
// conditioned on the version v was read at. On success v.Version reflects
// the stored (bumped) version. Returns ErrStaleVersion when the row moved
// on, ErrNotFound when it vanished.
func SaveVerificationGuarded(ctx context.Context, db *gorm.DB, v *domain.Verification) error {
	res := db.WithContext(ctx).
		Model(&domain.Verification{}).
		Where("id = ? AND version = ?", v.ID, v.Version).
		Updates(map[string]any{
			"status":            v.Status,
			"evidence":          v.Evidence,
			"admin_notes":       v.AdminNotes,
			"dispute_reason":    v.DisputeReason,
			"dispute_opened_at": v.DisputeOpenedAt,
			"version":           v.Version + 1,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Distinguish a stale version from a missing row.
		var n int64
		if err := db.WithContext(ctx).Model(&domain.Verification{}).Where("id = ?", v.ID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
		return ErrStaleVersion
	}
	v.Version++
	return nil
}

// AppendChatMessage inserts one message into a verification's chat log with
// a server-assigned timestamp. Expiry and participant checks belong to the
// service layer; this is a plain append.
func AppendChatMessage(ctx context.Context, db *gorm.DB, verificationID, senderID, body string) (*domain.ChatMessage, error) {
	m := &domain.ChatMessage{
		ID:             uuid.NewString(),
		VerificationID: verificationID,
		SenderID:       senderID,
		Body:           body,
		CreatedAt:      time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

// ListChatMessages returns the full chat log for a verification in append
// order. Messages are never edited or deleted, so the log is stable.
func ListChatMessages(ctx context.Context, db *gorm.DB, verificationID string) ([]domain.ChatMessage, error) {
	var out []domain.ChatMessage
	err := db.WithContext(ctx).
		Where("verification_id = ?", verificationID).
		Order("created_at ASC, id ASC").
		Find(&out).Error
	return out, err
}
