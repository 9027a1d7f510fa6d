// Package services – VerificationService
//
// This file implements the ownership-verification state machine. A
// verification is created PENDING by Initiate (with roles derived from the
// pet record, never supplied), receives write-once evidence from the
// claimant, and leaves PENDING through the finder's Respond, either party's
// Dispute, or — once DISPUTED — an administrator's Resolve. A VERIFIED
// outcome flips the pet's disposition to "reunited" inside the same
// transaction. The bounded chat channel appends only while the record is
// PENDING and before its expiry.
//
// Every transition is one read-modify-write of a single record inside a
// transaction, guarded by an optimistic version so racing transitions
// surface as conflicts instead of silently overwriting each other.
// Service-level errors (e.g. ErrFinderOnly, ErrNotPending) are returned for
// predictable cases so handlers can map them to HTTP results consistently.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/petreunite/go-pet-backend/internal/auth"
	"github.com/petreunite/go-pet-backend/internal/domain"
	"github.com/petreunite/go-pet-backend/internal/repo"
)

// VerificationService provides the verification lifecycle operations. It is
// context-aware and safe for concurrent use; each call opens its own
// transaction.
type VerificationService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB

	// Window is how long the record stays open for chat after creation.
	// Zero means the default of 7 days.
	Window time.Duration

	// Now is a clock seam for tests; nil means time.Now.
	Now func() time.Time
}

// NewVerificationService constructs a VerificationService with the default
// 7-day chat window.
func NewVerificationService(db *gorm.DB) *VerificationService {
	return &VerificationService{DB: db, Window: 7 * 24 * time.Hour}
}

func (s *VerificationService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *VerificationService) window() time.Duration {
	if s.Window > 0 {
		return s.Window
	}
	return 7 * 24 * time.Hour
}

// Initiate creates (or returns) the verification for (pet, caller-derived
// claimant). Roles are inferred from the pet's disposition: for a lost pet
// the caller becomes the claimant; for a found pet only the reporter may
// initiate and the claimant is resolved from the pet's owner contact.
// Initiation is idempotent: an existing record for the pair is returned
// unchanged, with created=false.
func (s *VerificationService) Initiate(ctx context.Context, caller auth.Principal, petID, method string) (v *domain.Verification, created bool, err error) {
	tr := otel.Tracer("services/VerificationService")
	ctx, span := tr.Start(ctx, "Initiate",
		trace.WithAttributes(
			attribute.String("pet.id", petID),
			attribute.String("user.id", caller.ID),
			attribute.String("verification.method", method),
		),
	)
	defer span.End()

	if !domain.ValidMethod(method) {
		return nil, false, ErrInvalidMethod
	}

	pet, err := repo.GetPet(ctx, s.DB, petID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, ErrPetNotFound
		}
		return nil, false, err
	}

	// For found pets the claimant principal comes from the owner contact on
	// the report; resolve it before role inference.
	ownerID := ""
	if pet.Disposition == domain.DispositionFound && strings.TrimSpace(pet.OwnerContact) != "" {
		owner, err := repo.GetOrCreateUserByEmail(ctx, s.DB, pet.OwnerContact, "")
		if err != nil {
			return nil, false, err
		}
		ownerID = owner.ID
	}

	roles, err := domain.InferRoles(pet, caller.ID, ownerID)
	if err != nil {
		return nil, false, err
	}

	if existing, err := repo.FindVerificationByPair(ctx, s.DB, pet.ID, roles.ClaimantID); err == nil {
		return existing, false, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	now := s.now()
	v = &domain.Verification{
		PetID:      pet.ID,
		FinderID:   roles.FinderID,
		ClaimantID: roles.ClaimantID,
		Method:     method,
		Status:     domain.StatusPending,
		ExpiresAt:  now.Add(s.window()),
	}
	if v, err = repo.CreateVerification(ctx, s.DB, v); err != nil {
		// A concurrent Initiate for the same pair won the insert; the
		// unique index guarantees there is exactly one record to return.
		if isUniquePairViolation(err) {
			existing, ferr := repo.FindVerificationByPair(ctx, s.DB, pet.ID, roles.ClaimantID)
			if ferr != nil {
				return nil, false, ferr
			}
			return existing, false, nil
		}
		return nil, false, err
	}
	return v, true, nil
}

// SubmitEvidence records the claimant's write-once proof. The submission
// must match the record's verification method; shape validation and answer
// grading are delegated to CollectEvidence.
func (s *VerificationService) SubmitEvidence(ctx context.Context, callerID, id string, sub EvidenceSubmission) (*domain.Verification, error) {
	tr := otel.Tracer("services/VerificationService")
	ctx, span := tr.Start(ctx, "SubmitEvidence",
		trace.WithAttributes(
			attribute.String("verification.id", id),
			attribute.String("user.id", callerID),
		),
	)
	defer span.End()

	var out *domain.Verification
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		v, err := s.load(ctx, tx, id)
		if err != nil {
			return err
		}
		if callerID != v.ClaimantID {
			return ErrClaimantOnly
		}
		if v.Status != domain.StatusPending {
			return ErrNotPending
		}
		if v.Evidence != nil {
			return ErrEvidenceAlreadySubmitted
		}
		if sub.Method != "" && sub.Method != v.Method {
			return ErrEvidenceMethodMismatch
		}

		ev, err := CollectEvidence(v.Method, sub)
		if err != nil {
			return err
		}
		rec, err := domain.WrapEvidence(ev)
		if err != nil {
			return err
		}
		v.Evidence = rec
		if err := repo.SaveVerificationGuarded(ctx, tx, v); err != nil {
			return err
		}
		out = v
		return nil
	})
	return out, err
}

// Respond is the finder's verdict on a pending claim. VERIFIED flips the
// pet's disposition to "reunited" in the same transaction; REJECTED leaves
// the pet untouched. For PHOTO claims the finder may attach comparison
// photos; admin notes may be attached for any method.
func (s *VerificationService) Respond(ctx context.Context, callerID, id, outcome string, finderPhotos []string, adminNotes string) (*domain.Verification, error) {
	tr := otel.Tracer("services/VerificationService")
	ctx, span := tr.Start(ctx, "Respond",
		trace.WithAttributes(
			attribute.String("verification.id", id),
			attribute.String("user.id", callerID),
			attribute.String("verification.outcome", outcome),
		),
	)
	defer span.End()

	if outcome != domain.StatusVerified && outcome != domain.StatusRejected {
		return nil, ErrInvalidOutcome
	}

	var out *domain.Verification
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		v, err := s.load(ctx, tx, id)
		if err != nil {
			return err
		}
		if callerID != v.FinderID {
			return ErrFinderOnly
		}
		if v.Status != domain.StatusPending {
			return ErrNotPending
		}

		if err := s.attachFinderPhotos(v, finderPhotos); err != nil {
			return err
		}
		if n := strings.TrimSpace(adminNotes); n != "" {
			v.AdminNotes = n
		}
		v.Status = outcome

		if outcome == domain.StatusVerified {
			if err := repo.UpdatePetDisposition(ctx, tx, v.PetID, domain.DispositionReunited); err != nil {
				return err
			}
		}
		if err := repo.SaveVerificationGuarded(ctx, tx, v); err != nil {
			return err
		}
		out = v
		return nil
	})
	return out, err
}

// Dispute escalates a pending verification to DISPUTED. Either participant
// may call it; a repeated dispute is a no-op returning the current record.
// Terminal records cannot be disputed.
func (s *VerificationService) Dispute(ctx context.Context, callerID, id, reason string) (*domain.Verification, error) {
	tr := otel.Tracer("services/VerificationService")
	ctx, span := tr.Start(ctx, "Dispute",
		trace.WithAttributes(
			attribute.String("verification.id", id),
			attribute.String("user.id", callerID),
		),
	)
	defer span.End()

	var out *domain.Verification
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		v, err := s.load(ctx, tx, id)
		if err != nil {
			return err
		}
		if !v.Participant(callerID) {
			return ErrNotParticipant
		}
		if v.Status == domain.StatusDisputed {
			// Idempotent re-dispute.
			out = v
			return nil
		}
		if v.Terminal() {
			return ErrAlreadyTerminal
		}
		reason = strings.TrimSpace(reason)
		if reason == "" {
			return ErrEmptyDisputeReason
		}

		now := s.now()
		v.Status = domain.StatusDisputed
		v.DisputeReason = reason
		v.DisputeOpenedAt = &now
		if err := repo.SaveVerificationGuarded(ctx, tx, v); err != nil {
			return err
		}
		out = v
		return nil
	})
	return out, err
}

// Resolve is the administrator's arbitration verdict on a DISPUTED record.
// The VERIFIED side effect on the pet record matches Respond.
func (s *VerificationService) Resolve(ctx context.Context, caller auth.Principal, id, outcome, adminNotes string) (*domain.Verification, error) {
	tr := otel.Tracer("services/VerificationService")
	ctx, span := tr.Start(ctx, "Resolve",
		trace.WithAttributes(
			attribute.String("verification.id", id),
			attribute.String("user.id", caller.ID),
			attribute.String("verification.outcome", outcome),
		),
	)
	defer span.End()

	if !caller.IsAdmin {
		return nil, ErrAdminOnly
	}
	if outcome != domain.StatusVerified && outcome != domain.StatusRejected {
		return nil, ErrInvalidOutcome
	}

	var out *domain.Verification
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		v, err := s.load(ctx, tx, id)
		if err != nil {
			return err
		}
		if v.Status != domain.StatusDisputed {
			return ErrNotDisputed
		}

		if n := strings.TrimSpace(adminNotes); n != "" {
			v.AdminNotes = n
		}
		v.Status = outcome

		if outcome == domain.StatusVerified {
			if err := repo.UpdatePetDisposition(ctx, tx, v.PetID, domain.DispositionReunited); err != nil {
				return err
			}
		}
		if err := repo.SaveVerificationGuarded(ctx, tx, v); err != nil {
			return err
		}
		out = v
		return nil
	})
	return out, err
}

// SendMessage appends to the verification's chat log. The channel is open
// only to participants, only while the record is PENDING, and only before
// the expiry deadline; the timestamp is assigned server-side.
func (s *VerificationService) SendMessage(ctx context.Context, callerID, id, body string) (*domain.ChatMessage, error) {
	tr := otel.Tracer("services/VerificationService")
	ctx, span := tr.Start(ctx, "SendMessage",
		trace.WithAttributes(
			attribute.String("verification.id", id),
			attribute.String("user.id", callerID),
		),
	)
	defer span.End()

	body = strings.TrimSpace(body)
	if body == "" {
		return nil, ErrEmptyMessage
	}

	var out *domain.ChatMessage
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		v, err := s.load(ctx, tx, id)
		if err != nil {
			return err
		}
		if !v.Participant(callerID) {
			return ErrNotParticipant
		}
		// Expiry closes the channel regardless of status.
		if !s.now().Before(v.ExpiresAt) {
			return ErrChatExpired
		}
		if v.Status != domain.StatusPending {
			return ErrNotPending
		}
		m, err := repo.AppendChatMessage(ctx, tx, v.ID, callerID, body)
		if err != nil {
			return err
		}
		out = m
		return nil
	})
	return out, err
}

// Get returns the full aggregate (chat included) to a participant or an
// administrator.
func (s *VerificationService) Get(ctx context.Context, caller auth.Principal, id string) (*domain.Verification, error) {
	v, err := s.load(ctx, s.DB, id)
	if err != nil {
		return nil, err
	}
	if !v.Participant(caller.ID) && !caller.IsAdmin {
		return nil, ErrNotParticipant
	}
	return v, nil
}

// ListForUser returns a page of verifications where the user is finder or
// claimant, plus the total count. Defaults are applied for invalid
// page/pageSize.
func (s *VerificationService) ListForUser(ctx context.Context, userID string, page, pageSize int) ([]domain.Verification, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	total, err := repo.CountVerificationsForUser(ctx, s.DB, userID)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Verification{}, 0, nil
	}

	items, err := repo.ListVerificationsForUser(ctx, s.DB, userID, offset, pageSize)
	return items, total, err
}

// ListDisputed returns every DISPUTED record, oldest dispute first, for the
// arbitration queue. Admin only.
func (s *VerificationService) ListDisputed(ctx context.Context, caller auth.Principal) ([]domain.Verification, error) {
	if !caller.IsAdmin {
		return nil, ErrAdminOnly
	}
	return repo.ListDisputedVerifications(ctx, s.DB)
}

// load fetches the aggregate or maps the sentinel.
func (s *VerificationService) load(ctx context.Context, db *gorm.DB, id string) (*domain.Verification, error) {
	v, err := repo.GetVerification(ctx, db, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVerificationNotFound
		}
		return nil, err
	}
	return v, nil
}

// attachFinderPhotos merges finder comparison photos into PHOTO evidence.
// Photos supplied for any other method are rejected; an empty slice is
// always fine.
func (s *VerificationService) attachFinderPhotos(v *domain.Verification, photos []string) error {
	photos = trimmedNonEmpty(photos)
	if len(photos) == 0 {
		return nil
	}
	if v.Method != domain.MethodPhoto {
		return ErrEvidenceMethodMismatch
	}
	if v.Evidence == nil {
		// Finder photos without a claimant submission still land on the
		// record so the audit trail keeps both sides.
		rec, err := domain.WrapEvidence(domain.PhotoEvidence{FinderPhotos: photos})
		if err != nil {
			return err
		}
		v.Evidence = rec
		return nil
	}
	ev, err := v.Evidence.Unwrap()
	if err != nil {
		return err
	}
	pe, ok := ev.(domain.PhotoEvidence)
	if !ok {
		return ErrEvidenceMethodMismatch
	}
	pe.FinderPhotos = append(pe.FinderPhotos, photos...)
	rec, err := domain.WrapEvidence(pe)
	if err != nil {
		return err
	}
	v.Evidence = rec
	return nil
}

// isUniquePairViolation detects the (pet_id, claimant_id) unique index
// firing under concurrent initiation.
func isUniquePairViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key")
}
