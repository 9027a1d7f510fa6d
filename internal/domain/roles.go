// Package domain – role inference.
//
// Who plays finder and who plays claimant is derived from the pet record and
// the caller, never supplied by the client. The reporter of record is always
// the finder: for a lost pet the caller asserting ownership becomes the
// claimant; for a found pet only the reporter may initiate, and the claimant
// is resolved from the pet's owner contact. Keeping the rule a pure function
// lets it be tested independently of the state machine.
package domain

import "errors"

// Role inference failures. The service layer maps these onto the public
// error taxonomy (self-claim and wrong-initiator are authorization failures,
// the rest are validation failures).
var (
	// ErrSelfClaim means the caller would be both finder and claimant.
	ErrSelfClaim = errors.New("cannot claim a pet you reported yourself")

	// ErrNotFinder means someone other than the reporter tried to initiate
	// verification of a found pet.
	ErrNotFinder = errors.New("only the finder may initiate verification of a found pet")

	// ErrNoOwnerContact means a found pet has no owner contact on record, so
	// no claimant principal can be resolved.
	ErrNoOwnerContact = errors.New("pet record has no owner contact")

	// ErrNotClaimable means the pet's disposition does not admit
	// verification (already adopted or reunited).
	ErrNotClaimable = errors.New("pet is not open for ownership verification")
)

// RoleAssignment is the derived (finder, claimant) pair for a verification.
type RoleAssignment struct {
	FinderID   string
	ClaimantID string
}

// InferRoles derives the role assignment for a verification of pet initiated
// by callerID. ownerID is the principal resolved from the pet's owner
// contact; it is only consulted for found pets and may be empty when the
// contact did not resolve.
func InferRoles(pet *Pet, callerID, ownerID string) (RoleAssignment, error) {
	switch pet.Disposition {
	case DispositionLost:
		if callerID == pet.ReporterID {
			return RoleAssignment{}, ErrSelfClaim
		}
		return RoleAssignment{FinderID: pet.ReporterID, ClaimantID: callerID}, nil

	case DispositionFound:
		if callerID != pet.ReporterID {
			return RoleAssignment{}, ErrNotFinder
		}
		if ownerID == "" {
			return RoleAssignment{}, ErrNoOwnerContact
		}
		if ownerID == pet.ReporterID {
			return RoleAssignment{}, ErrSelfClaim
		}
		return RoleAssignment{FinderID: pet.ReporterID, ClaimantID: ownerID}, nil
	}
	return RoleAssignment{}, ErrNotClaimable
}
