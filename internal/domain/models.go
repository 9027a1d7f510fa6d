// Package domain defines the persistence models for pets, users,
// verifications, and verification chat messages. These types are mapped with
// GORM and form the core data layer of the reunification backend.
package domain

import (
	"time"

	"gorm.io/gorm"
)

// Pet dispositions. A pet report starts as "lost" or "found" and is flipped
// to "reunited" by a successful verification. "adopted" pets are listed for
// adoption and never enter verification.
const (
	DispositionLost     = "lost"
	DispositionFound    = "found"
	DispositionAdopted  = "adopted"
	DispositionReunited = "reunited"
)

// Verification methods. Immutable after the record is created.
const (
	MethodTag       = "TAG"
	MethodMicrochip = "MICROCHIP"
	MethodPhoto     = "PHOTO"
	MethodQuestions = "QUESTIONS"
	MethodManual    = "MANUAL"
)

// Verification statuses. PENDING is the entry state; VERIFIED and REJECTED
// are terminal; DISPUTED may only be left by an administrator.
const (
	StatusPending  = "PENDING"
	StatusVerified = "VERIFIED"
	StatusRejected = "REJECTED"
	StatusDisputed = "DISPUTED"
)

// ValidMethod reports whether m is one of the supported verification methods.
func ValidMethod(m string) bool {
	switch m {
	case MethodTag, MethodMicrochip, MethodPhoto, MethodQuestions, MethodManual:
		return true
	}
	return false
}

// User represents an authenticated principal. Rows are created lazily the
// first time an email is seen (token issue or owner-contact resolution).
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - Email: unique contact address; the identity resolver keys on it.
//   - DisplayName: human-readable name shown to the other participant.
type User struct {
	ID          string         `json:"id"           gorm:"type:char(36);primaryKey"`
	Email       string         `json:"email"        gorm:"type:varchar(255);not null;uniqueIndex:ux_users_email"`
	DisplayName string         `json:"display_name" gorm:"type:varchar(255);not null;default:''"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-"            gorm:"index"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// Pet represents a lost/found/adoption report filed by a user. Verification
// reads it and, on a VERIFIED outcome, flips Disposition to "reunited".
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - ReporterID: principal who filed the report (the finder of record).
//   - Disposition: lost | found | adopted | reunited.
//   - OwnerContact: contact email of the purported owner; for found pets this
//     is how the claimant principal is resolved at initiation.
//   - PhotoURLs: stable URLs returned by the image storage collaborator;
//     the backend never inspects image bytes.
type Pet struct {
	ID           string         `json:"id"            gorm:"type:char(36);primaryKey"`
	ReporterID   string         `json:"reporter_id"   gorm:"type:char(36);not null;index:idx_pets_reporter"`
	Name         string         `json:"name"          gorm:"type:varchar(255);not null"`
	Species      string         `json:"species"       gorm:"type:varchar(64);not null;default:''"`
	Breed        string         `json:"breed"         gorm:"type:varchar(128);not null;default:''"`
	Disposition  string         `json:"disposition"   gorm:"type:varchar(16);not null;check:disposition IN ('lost','found','adopted','reunited');index:idx_pets_disposition"`
	Description  string         `json:"description"   gorm:"type:text;not null;default:''"`
	OwnerContact string         `json:"owner_contact" gorm:"type:varchar(255);not null;default:''"`
	PhotoURLs    StringList     `json:"photo_urls"    gorm:"type:text"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-"             gorm:"index"`
}

// TableName returns the database table name for Pet.
func (Pet) TableName() string { return "pets" }

// Verification is the aggregate root of the ownership-verification protocol:
// one record per (pet, claimant) pair, carrying role assignment, method,
// evidence, status, dispute metadata, and expiry. Records are never hard
// deleted; terminal rows remain as an audit trail.
//
// Concurrency: Version is an optimistic lock incremented on every state
// write. Repo updates are conditioned on the version read inside the same
// transaction, so racing transitions surface as a conflict instead of
// last-writer-wins.
type Verification struct {
	ID         string `json:"id"          gorm:"type:char(36);primaryKey"`
	PetID      string `json:"pet_id"      gorm:"type:char(36);not null;uniqueIndex:ux_verifications_pet_claimant,priority:1"`
	FinderID   string `json:"finder_id"   gorm:"type:char(36);not null;index:idx_verifications_finder"`
	ClaimantID string `json:"claimant_id" gorm:"type:char(36);not null;uniqueIndex:ux_verifications_pet_claimant,priority:2;index:idx_verifications_claimant"`
	Method     string `json:"verification_method" gorm:"type:varchar(16);not null;check:method IN ('TAG','MICROCHIP','PHOTO','QUESTIONS','MANUAL')"`
	Status     string `json:"status"      gorm:"type:varchar(16);not null;default:'PENDING';check:status IN ('PENDING','VERIFIED','REJECTED','DISPUTED');index:idx_verifications_status"`

	// Evidence is the method-shaped payload, nil until the claimant submits.
	// Stored as JSON; decoded through the Evidence tagged union.
	Evidence *EvidenceRecord `json:"evidence,omitempty" gorm:"type:text"`

	AdminNotes      string     `json:"admin_notes,omitempty"    gorm:"type:text;not null;default:''"`
	DisputeReason   string     `json:"dispute_reason,omitempty" gorm:"type:text;not null;default:''"`
	DisputeOpenedAt *time.Time `json:"dispute_opened_at,omitempty"`

	ExpiresAt time.Time `json:"expires_at" gorm:"not null"`
	Version   int64     `json:"-"          gorm:"not null;default:1"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// ChatHistory is the bounded side channel, part of the aggregate.
	ChatHistory []ChatMessage `json:"chat_history,omitempty" gorm:"foreignKey:VerificationID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Verification.
func (Verification) TableName() string { return "verifications" }

// Terminal reports whether the verification reached a final status.
func (v *Verification) Terminal() bool {
	return v.Status == StatusVerified || v.Status == StatusRejected
}

// Participant reports whether userID is the finder or the claimant.
func (v *Verification) Participant(userID string) bool {
	return userID == v.FinderID || userID == v.ClaimantID
}

// ChatMessage is one entry in a verification's append-only chat log.
// CreatedAt is assigned server-side at append time; messages are never
// edited or removed.
type ChatMessage struct {
	ID             string    `json:"id"              gorm:"type:char(36);primaryKey"`
	VerificationID string    `json:"verification_id" gorm:"type:char(36);not null;index:idx_chat_verification,priority:1"`
	SenderID       string    `json:"sender_id"       gorm:"type:char(36);not null"`
	Body           string    `json:"message"         gorm:"type:text;not null"`
	CreatedAt      time.Time `json:"timestamp"       gorm:"index:idx_chat_verification,priority:2"`
}

// TableName returns the database table name for ChatMessage.
func (ChatMessage) TableName() string { return "verification_chat_messages" }
