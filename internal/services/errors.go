// Package services defines the business logic for pet-ownership
// verification. This file centralizes common service-level error values so
// that they can be consistently returned by service methods and checked by
// callers.
//
// These errors are intended for internal use by the service layer and
// translation into user-facing messages or HTTP status codes should be
// performed at the handler/controller layer. The taxonomy follows the API
// contract: not-found, forbidden (wrong role for the action), validation
// (malformed or wrong-shaped input), expired (chat after deadline), and
// conflict (lost optimistic-concurrency race).
package services

import "errors"

// Not-found errors.
var (
	// ErrPetNotFound indicates the referenced pet report does not exist.
	ErrPetNotFound = errors.New("pet not found")

	// ErrVerificationNotFound indicates the requested verification does not
	// exist.
	ErrVerificationNotFound = errors.New("verification not found")
)

// Authorization errors (authenticated but wrong role for the action).
var (
	// ErrNotParticipant is returned when the caller is neither the finder
	// nor the claimant of the record.
	ErrNotParticipant = errors.New("caller is not a participant of this verification")

	// ErrClaimantOnly is returned when someone other than the claimant
	// attempts to submit evidence.
	ErrClaimantOnly = errors.New("only the claimant may submit evidence")

	// ErrFinderOnly is returned when someone other than the finder attempts
	// to respond to a claim.
	ErrFinderOnly = errors.New("only the finder may respond to a claim")

	// ErrAdminOnly is returned when a non-admin principal attempts an
	// arbitration action.
	ErrAdminOnly = errors.New("administrator role required")

	// ErrEvidenceAlreadySubmitted is returned on a second evidence
	// submission; evidence is write-once.
	ErrEvidenceAlreadySubmitted = errors.New("evidence already submitted")
)

// Validation errors.
var (
	// ErrInvalidMethod is returned for an unknown verification method.
	ErrInvalidMethod = errors.New("invalid verification method")

	// ErrEvidenceMethodMismatch is returned when submitted evidence does not
	// match the record's verification method.
	ErrEvidenceMethodMismatch = errors.New("evidence does not match the verification method")

	// ErrInvalidEvidence is returned when evidence is missing a required
	// field; wrapped messages name the field.
	ErrInvalidEvidence = errors.New("invalid evidence")

	// ErrInvalidOutcome is returned when a respond/resolve outcome is not
	// VERIFIED or REJECTED.
	ErrInvalidOutcome = errors.New("outcome must be VERIFIED or REJECTED")

	// ErrNotPending is returned for transitions that require a PENDING
	// record (evidence, respond, chat).
	ErrNotPending = errors.New("verification is no longer pending")

	// ErrNotDisputed is returned when Resolve is called on a record that is
	// not DISPUTED.
	ErrNotDisputed = errors.New("verification is not disputed")

	// ErrAlreadyTerminal is returned when Dispute is called on a record that
	// has already reached a final status.
	ErrAlreadyTerminal = errors.New("verification already reached a final status")

	// ErrEmptyDisputeReason is returned when Dispute is called without a
	// reason.
	ErrEmptyDisputeReason = errors.New("dispute reason required")

	// ErrEmptyMessage is returned when a chat append has no body.
	ErrEmptyMessage = errors.New("message body required")
)

// ErrChatExpired is returned when a chat append arrives after the
// verification window closed, regardless of status.
var ErrChatExpired = errors.New("verification chat window has expired")
