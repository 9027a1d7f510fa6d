// Service-error translation.
//
// The service layer reports predictable failures as sentinel errors; this
// file owns the single mapping from those sentinels to HTTP status + stable
// error code, so every endpoint fails the same way for the same reason.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/petreunite/go-pet-backend/internal/domain"
	"github.com/petreunite/go-pet-backend/internal/repo"
	"github.com/petreunite/go-pet-backend/internal/services"
)

// failService translates err into the uniform error envelope. Unknown errors
// become 500 internal_error; the raw message is not leaked to clients.
func failService(c *gin.Context, err error) {
	switch {
	// Not found
	case errors.Is(err, services.ErrPetNotFound),
		errors.Is(err, services.ErrVerificationNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, err.Error())

	// Forbidden: wrong role for the action
	case errors.Is(err, services.ErrNotParticipant),
		errors.Is(err, services.ErrClaimantOnly),
		errors.Is(err, services.ErrFinderOnly),
		errors.Is(err, services.ErrAdminOnly),
		errors.Is(err, services.ErrEvidenceAlreadySubmitted),
		errors.Is(err, domain.ErrSelfClaim),
		errors.Is(err, domain.ErrNotFinder):
		fail(c, http.StatusForbidden, ErrCodeForbidden, err.Error())

	// Validation: malformed or wrong-shaped input, illegal transition
	case errors.Is(err, services.ErrInvalidMethod),
		errors.Is(err, services.ErrEvidenceMethodMismatch),
		errors.Is(err, services.ErrInvalidEvidence),
		errors.Is(err, services.ErrInvalidOutcome),
		errors.Is(err, services.ErrNotPending),
		errors.Is(err, services.ErrNotDisputed),
		errors.Is(err, services.ErrAlreadyTerminal),
		errors.Is(err, services.ErrEmptyDisputeReason),
		errors.Is(err, services.ErrEmptyMessage),
		errors.Is(err, services.ErrInvalidDisposition),
		errors.Is(err, services.ErrPetNameRequired),
		errors.Is(err, domain.ErrNoOwnerContact),
		errors.Is(err, domain.ErrNotClaimable):
		fail(c, http.StatusBadRequest, ErrCodeValidation, err.Error())

	// Expired chat window
	case errors.Is(err, services.ErrChatExpired):
		fail(c, http.StatusGone, ErrCodeExpired, err.Error())

	// Lost optimistic-concurrency race
	case errors.Is(err, repo.ErrStaleVersion):
		fail(c, http.StatusConflict, ErrCodeConflict, err.Error())

	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
	}
}
