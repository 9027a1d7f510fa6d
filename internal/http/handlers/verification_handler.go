// Verification HTTP handlers.
//
// This file exposes REST endpoints for the ownership-verification lifecycle:
//   - POST /verifications                  (initiate a claim)
//   - GET  /verifications                  (list caller's records, paginated, ETag support)
//   - GET  /verifications/{id}            (fetch one record)
//   - POST /verifications/{id}/data       (claimant submits evidence)
//   - PUT  /verifications/{id}/respond    (finder accepts or rejects)
//   - POST /verifications/{id}/chat       (append a chat message)
//   - GET  /verifications/{id}/chat       (read the chat log)
//   - POST /verifications/{id}/dispute    (escalate to arbitration)
//   - PUT  /verifications/{id}/resolve    (admin settles a dispute)
//
// Handlers are transport-thin: they validate input, call application services,
// and translate results into HTTP responses (including conditional responses).
//
// Idempotency:
// If the client supplies an Idempotency-Key header on POST /verifications and
// a previous successful result exists for (user, pet, key), the handler
// returns the recorded verification and sets `Idempotency-Replayed: true`.
package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/petreunite/go-pet-backend/internal/auth"
	"github.com/petreunite/go-pet-backend/internal/domain"
	"github.com/petreunite/go-pet-backend/internal/http/middleware"
	"github.com/petreunite/go-pet-backend/internal/repo"
	"github.com/petreunite/go-pet-backend/internal/services"
	"github.com/petreunite/go-pet-backend/internal/utils"
)

//
// Service contracts (context-aware)
//

// VerificationService defines the verification lifecycle operations consumed
// by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type VerificationService interface {
	// Initiate starts (or idempotently returns) a claim on a pet.
	Initiate(ctx context.Context, caller auth.Principal, petID, method string) (*domain.Verification, bool, error)
	// SubmitEvidence records the claimant's method-shaped proof, write-once.
	SubmitEvidence(ctx context.Context, callerID, id string, sub services.EvidenceSubmission) (*domain.Verification, error)
	// Respond lets the finder accept or reject a pending claim.
	Respond(ctx context.Context, callerID, id, outcome string, finderPhotos []string, adminNotes string) (*domain.Verification, error)
	// Dispute escalates a pending claim to arbitration.
	Dispute(ctx context.Context, callerID, id, reason string) (*domain.Verification, error)
	// Resolve settles a disputed claim; admin only.
	Resolve(ctx context.Context, caller auth.Principal, id, outcome, adminNotes string) (*domain.Verification, error)
	// SendMessage appends a message to the claim's bounded chat channel.
	SendMessage(ctx context.Context, callerID, id, body string) (*domain.ChatMessage, error)
	// Get returns one verification visible to the caller.
	Get(ctx context.Context, caller auth.Principal, id string) (*domain.Verification, error)
	// ListForUser returns a page of the caller's verifications and the total count.
	ListForUser(ctx context.Context, userID string, page, pageSize int) ([]domain.Verification, int64, error)
	// ListDisputed returns every record awaiting arbitration; admin only.
	ListDisputed(ctx context.Context, caller auth.Principal) ([]domain.Verification, error)
}

// PetService defines pet report operations consumed by HTTP handlers.
type PetService interface {
	// File creates a new pet report owned by the caller.
	File(ctx context.Context, reporterID string, p *domain.Pet) (*domain.Pet, error)
	// Get returns a pet report by id.
	Get(ctx context.Context, id string) (*domain.Pet, error)
	// ListPage returns a page of pet reports, optionally filtered by disposition.
	ListPage(ctx context.Context, disposition string, page, pageSize int) ([]domain.Pet, int64, error)
}

// TokenService issues signed bearer tokens for the demo identity flow.
type TokenService interface {
	IssueToken(ctx context.Context, email, displayName string) (string, auth.Principal, error)
}

//
// Handler wiring
//

// Handlers groups HTTP endpoints for pets, verifications, and administration.
// It depends on abstract service interfaces to keep transport concerns
// separate from business logic.
type Handlers struct {
	verSvc   VerificationService
	petSvc   PetService
	tokenSvc TokenService
	admins   AdminDirectory

	// IdempotencyTTL bounds how long a replay record stays valid; zero or
	// negative falls back to 24h. Set from config by the router.
	IdempotencyTTL time.Duration
}

// idempotencyTTL returns the configured replay-record lifetime or the default.
func (h *Handlers) idempotencyTTL() time.Duration {
	if h.IdempotencyTTL > 0 {
		return h.IdempotencyTTL
	}
	return 24 * time.Hour
}

// New constructs and returns a Handlers instance bound to the given services.
func New(verSvc VerificationService, petSvc PetService, tokenSvc TokenService, admins AdminDirectory) *Handlers {
	return &Handlers{verSvc: verSvc, petSvc: petSvc, tokenSvc: tokenSvc, admins: admins}
}

// principal extracts the authenticated caller from Gin context (set by the
// auth middleware). If absent, it falls back to the "X-User-ID" header (tests
// use it). The second return value is false when no identity is available.
func principal(c *gin.Context) (auth.Principal, bool) {
	if p, ok := middleware.PrincipalFrom(c); ok {
		return p, true
	}
	if c != nil && c.Request != nil {
		if h := strings.TrimSpace(c.GetHeader("X-User-ID")); h != "" {
			return auth.Principal{ID: h}, true
		}
	}
	return auth.Principal{}, false
}

//
// DTOs
//

// CreateVerificationRequest is the JSON payload for initiating a claim.
type CreateVerificationRequest struct {
	// PetID identifies the pet report being claimed.
	PetID string `json:"pet_id" binding:"required" example:"141add05-4415-4938-b5a1-17e0d3171aff"`
	// Method selects the proof flow: TAG, MICROCHIP, PHOTO, QUESTIONS, or MANUAL.
	Method string `json:"verification_method" binding:"required" example:"MICROCHIP"`
}

// RespondRequest is the JSON payload for the finder's decision on a claim.
type RespondRequest struct {
	// Status is the outcome, VERIFIED or REJECTED.
	Status string `json:"status" binding:"required" example:"VERIFIED"`
	// FinderPhotos optionally attaches the finder's side of a photo comparison.
	FinderPhotos []string `json:"finder_photos,omitempty"`
	// AdminNotes optionally records context alongside the decision.
	AdminNotes string `json:"admin_notes,omitempty"`
}

// DisputeRequest is the JSON payload for escalating a claim.
type DisputeRequest struct {
	// DisputeReason explains why the claim is contested.
	DisputeReason string `json:"dispute_reason" binding:"required,min=1" example:"claimant could not describe the collar"`
}

// ResolveRequest is the JSON payload for an admin settling a dispute.
type ResolveRequest struct {
	// Status is the arbitrated outcome, VERIFIED or REJECTED.
	Status string `json:"status" binding:"required" example:"REJECTED"`
	// AdminNotes records the arbitration rationale.
	AdminNotes string `json:"admin_notes,omitempty"`
}

// ChatMessageRequest is the JSON payload for posting to a claim's chat.
type ChatMessageRequest struct {
	// Message is the text to append. It must be non-empty.
	Message string `json:"message" binding:"required,min=1" example:"Does she answer to Luna?"`
}

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// ListVerificationsResponse wraps a page of verifications and pagination info.
type ListVerificationsResponse struct {
	Verifications []domain.Verification `json:"verifications"`
	Pagination    Pagination            `json:"pagination"`
}

// ChatLogResponse wraps the ordered chat history of one verification.
type ChatLogResponse struct {
	Messages []domain.ChatMessage `json:"messages"`
}

//
// Helpers
//

// clampPagination parses and bounds page and page_size query params to sane
// defaults and limits, returning (page, pageSize).
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	pageSize = utils.AtoiDefault(c.Query("page_size"), defaultPageSize)
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return
}

// verificationID validates the :id path param as a UUID and reports it.
func verificationID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "verification id must be a UUID")
		return "", false
	}
	return id, true
}

// serviceDB exposes the concrete service's database handle for best-effort
// transport concerns (ETag stats, idempotency records). Returns nil when the
// handler is wired to a non-concrete implementation, e.g. in unit tests.
func (h *Handlers) serviceDB() *gorm.DB {
	if svc, ok := h.verSvc.(*services.VerificationService); ok {
		return svc.DB
	}
	return nil
}

//
// Handlers
//

// CreateVerification godoc
// @ID          createVerification
// @Summary     Initiate an ownership claim
// @Description Starts a verification for a pet report. Roles are inferred from the
// @Description report: claiming a lost pet makes the caller the claimant; reporting
// @Description party stays the finder of record. Repeating the call for the same
// @Description pet returns the existing record. Supports idempotency via the
// @Description Idempotency-Key header.
// @Tags        Verifications
// @Accept      json
// @Produce     json
//
// @Param       Authorization    header  string  true  "Bearer token"
// @Param       Idempotency-Key  header  string  false "Idempotency key for safe retries (UUID recommended)"
// @Param       body             body    handlers.CreateVerificationRequest  true  "Claim payload"
//
// @Success     201  {object}  domain.Verification  "Newly created"
// @Success     200  {object}  domain.Verification  "Existing record returned"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthenticated"
// @Failure     403  {object}  handlers.ErrorResponse  "Claim not permitted"
// @Failure     404  {object}  handlers.ErrorResponse  "Pet not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /verifications [post]
func (h *Handlers) CreateVerification(c *gin.Context) {
	ctx := c.Request.Context()

	caller, okAuth := principal(c)
	if !okAuth {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "authentication required")
		return
	}

	var req CreateVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "pet_id and verification_method required")
		return
	}
	if _, err := uuid.Parse(req.PetID); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "pet_id must be a UUID")
		return
	}

	// Idempotency (replay path) – read validated key if present.
	idemKey, _ := middleware.GetIdempotencyKey(c)
	if idemKey == "" {
		idemKey = strings.TrimSpace(c.GetHeader(middleware.HeaderIdempotencyKey))
	}
	if idemKey != "" {
		if db := h.serviceDB(); db != nil {
			if rec, err := repo.GetIdempotency(ctx, db, caller.ID, req.PetID, idemKey, time.Now().UTC()); err == nil && rec != nil {
				if prev, err2 := repo.GetVerification(ctx, db, rec.VerificationID); err2 == nil {
					c.Header("Idempotency-Replayed", "true")
					ok(c, http.StatusOK, prev)
					return
				}
			}
		}
	}

	v, created, err := h.verSvc.Initiate(ctx, caller, req.PetID, strings.ToUpper(strings.TrimSpace(req.Method)))
	if err != nil {
		failService(c, err)
		return
	}

	// Idempotency (store path) – best effort.
	if idemKey != "" && created {
		if db := h.serviceDB(); db != nil {
			_, _ = repo.CreateIdempotency(ctx, db, caller.ID, req.PetID, idemKey, v.ID, http.StatusCreated, h.idempotencyTTL())
		}
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	ok(c, status, v)
}

// ListVerifications godoc
// @ID          listVerifications
// @Summary     List the caller's verifications (paginated)
// @Description Returns a page of verifications where the caller is finder or
// @Description claimant. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Verifications
// @Produce     json
//
// @Param       Authorization  header  string  true  "Bearer token"
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"
// @Param       page           query   int     false "Page number"     minimum(1) default(1)
// @Param       page_size      query   int     false "Items per page"  minimum(1) maximum(100) default(20)
//
// @Success     200  {object} handlers.ListVerificationsResponse
// @Header      200  {string} ETag  "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     401  {object} handlers.ErrorResponse "Unauthenticated"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /verifications [get]
func (h *Handlers) ListVerifications(c *gin.Context) {
	ctx := c.Request.Context()

	caller, okAuth := principal(c)
	if !okAuth {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "authentication required")
		return
	}
	page, pageSize := clampPagination(c)

	// ETag pre-check (best effort).
	if db := h.serviceDB(); db != nil {
		count, maxTS, err := repo.VerificationsStats(ctx, db, caller.ID)
		if err == nil {
			var ts int64
			if maxTS != nil {
				ts = maxTS.Unix()
			}
			etag := fmt.Sprintf(`W/"verifications:%s:%d:%d"`, caller.ID, count, ts)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	items, total, err := h.verSvc.ListForUser(ctx, caller.ID, page, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	ok(c, http.StatusOK, ListVerificationsResponse{
		Verifications: items,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
		},
	})
}

// GetVerification godoc
// @ID          getVerification
// @Summary     Fetch one verification
// @Description Returns a verification with its chat history. Only the finder,
// @Description the claimant, or an administrator may read it.
// @Tags        Verifications
// @Produce     json
//
// @Param       Authorization  header  string  true  "Bearer token"
// @Param       id             path    string  true  "Verification ID (UUID)"  format(uuid)
//
// @Success     200  {object} domain.Verification
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     401  {object} handlers.ErrorResponse "Unauthenticated"
// @Failure     403  {object} handlers.ErrorResponse "Not a participant"
// @Failure     404  {object} handlers.ErrorResponse "Not found"
// @Router      /verifications/{id} [get]
func (h *Handlers) GetVerification(c *gin.Context) {
	id, okID := verificationID(c)
	if !okID {
		return
	}
	caller, okAuth := principal(c)
	if !okAuth {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "authentication required")
		return
	}

	v, err := h.verSvc.Get(c.Request.Context(), caller, id)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, v)
}

// SubmitEvidence godoc
// @ID          submitEvidence
// @Summary     Submit claim evidence
// @Description Records the claimant's proof for a pending claim. The body shape
// @Description depends on the verification method; evidence is write-once.
// @Tags        Verifications
// @Accept      json
// @Produce     json
//
// @Param       Authorization  header  string  true  "Bearer token"
// @Param       id             path    string  true  "Verification ID (UUID)"  format(uuid)
// @Param       body           body    services.EvidenceSubmission  true  "Method-shaped evidence"
//
// @Success     200  {object} domain.Verification
// @Failure     400  {object} handlers.ErrorResponse "Malformed or wrong-shaped evidence"
// @Failure     401  {object} handlers.ErrorResponse "Unauthenticated"
// @Failure     403  {object} handlers.ErrorResponse "Not the claimant, or already submitted"
// @Failure     404  {object} handlers.ErrorResponse "Not found"
// @Failure     409  {object} handlers.ErrorResponse "Concurrent update"
// @Router      /verifications/{id}/data [post]
func (h *Handlers) SubmitEvidence(c *gin.Context) {
	id, okID := verificationID(c)
	if !okID {
		return
	}
	caller, okAuth := principal(c)
	if !okAuth {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "authentication required")
		return
	}

	var sub services.EvidenceSubmission
	if err := c.ShouldBindJSON(&sub); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	v, err := h.verSvc.SubmitEvidence(c.Request.Context(), caller.ID, id, sub)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, v)
}

// RespondVerification godoc
// @ID          respondVerification
// @Summary     Accept or reject a claim
// @Description The finder reviews the evidence and settles the pending claim.
// @Description A VERIFIED outcome also marks the pet as reunited.
// @Tags        Verifications
// @Accept      json
// @Produce     json
//
// @Param       Authorization  header  string  true  "Bearer token"
// @Param       id             path    string  true  "Verification ID (UUID)"  format(uuid)
// @Param       body           body    handlers.RespondRequest  true  "Decision payload"
//
// @Success     200  {object} domain.Verification
// @Failure     400  {object} handlers.ErrorResponse "Invalid outcome or state"
// @Failure     401  {object} handlers.ErrorResponse "Unauthenticated"
// @Failure     403  {object} handlers.ErrorResponse "Not the finder"
// @Failure     404  {object} handlers.ErrorResponse "Not found"
// @Failure     409  {object} handlers.ErrorResponse "Concurrent update"
// @Router      /verifications/{id}/respond [put]
func (h *Handlers) RespondVerification(c *gin.Context) {
	id, okID := verificationID(c)
	if !okID {
		return
	}
	caller, okAuth := principal(c)
	if !okAuth {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "authentication required")
		return
	}

	var req RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "status required")
		return
	}

	v, err := h.verSvc.Respond(c.Request.Context(), caller.ID, id,
		strings.ToUpper(strings.TrimSpace(req.Status)), req.FinderPhotos, req.AdminNotes)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, v)
}

// PostChatMessage godoc
// @ID          postChatMessage
// @Summary     Send a chat message
// @Description Appends a message to the claim's chat channel. Only participants
// @Description may write, only while the claim is pending and unexpired.
// @Tags        Chat
// @Accept      json
// @Produce     json
//
// @Param       Authorization  header  string  true  "Bearer token"
// @Param       id             path    string  true  "Verification ID (UUID)"  format(uuid)
// @Param       body           body    handlers.ChatMessageRequest  true  "Message payload"
//
// @Success     201  {object} domain.ChatMessage
// @Failure     400  {object} handlers.ErrorResponse "Empty message or claim not pending"
// @Failure     401  {object} handlers.ErrorResponse "Unauthenticated"
// @Failure     403  {object} handlers.ErrorResponse "Not a participant"
// @Failure     404  {object} handlers.ErrorResponse "Not found"
// @Failure     410  {object} handlers.ErrorResponse "Chat window expired"
// @Router      /verifications/{id}/chat [post]
func (h *Handlers) PostChatMessage(c *gin.Context) {
	id, okID := verificationID(c)
	if !okID {
		return
	}
	caller, okAuth := principal(c)
	if !okAuth {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "authentication required")
		return
	}

	var req ChatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "message required")
		return
	}

	m, err := h.verSvc.SendMessage(c.Request.Context(), caller.ID, id, req.Message)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusCreated, m)
}

// GetChatLog godoc
// @ID          getChatLog
// @Summary     Read the chat log
// @Description Returns the ordered chat history of a claim. Readable by
// @Description participants and administrators, including after expiry.
// @Tags        Chat
// @Produce     json
//
// @Param       Authorization  header  string  true  "Bearer token"
// @Param       id             path    string  true  "Verification ID (UUID)"  format(uuid)
//
// @Success     200  {object} handlers.ChatLogResponse
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     401  {object} handlers.ErrorResponse "Unauthenticated"
// @Failure     403  {object} handlers.ErrorResponse "Not a participant"
// @Failure     404  {object} handlers.ErrorResponse "Not found"
// @Router      /verifications/{id}/chat [get]
func (h *Handlers) GetChatLog(c *gin.Context) {
	id, okID := verificationID(c)
	if !okID {
		return
	}
	caller, okAuth := principal(c)
	if !okAuth {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "authentication required")
		return
	}

	v, err := h.verSvc.Get(c.Request.Context(), caller, id)
	if err != nil {
		failService(c, err)
		return
	}
	msgs := v.ChatHistory
	if msgs == nil {
		msgs = []domain.ChatMessage{}
	}
	ok(c, http.StatusOK, ChatLogResponse{Messages: msgs})
}

// DisputeVerification godoc
// @ID          disputeVerification
// @Summary     Dispute a claim
// @Description Escalates a pending claim to arbitration. Either participant may
// @Description dispute; repeating the call is a no-op.
// @Tags        Verifications
// @Accept      json
// @Produce     json
//
// @Param       Authorization  header  string  true  "Bearer token"
// @Param       id             path    string  true  "Verification ID (UUID)"  format(uuid)
// @Param       body           body    handlers.DisputeRequest  true  "Dispute payload"
//
// @Success     200  {object} domain.Verification
// @Failure     400  {object} handlers.ErrorResponse "Missing reason or claim already settled"
// @Failure     401  {object} handlers.ErrorResponse "Unauthenticated"
// @Failure     403  {object} handlers.ErrorResponse "Not a participant"
// @Failure     404  {object} handlers.ErrorResponse "Not found"
// @Router      /verifications/{id}/dispute [post]
func (h *Handlers) DisputeVerification(c *gin.Context) {
	id, okID := verificationID(c)
	if !okID {
		return
	}
	caller, okAuth := principal(c)
	if !okAuth {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "authentication required")
		return
	}

	var req DisputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "dispute_reason required")
		return
	}

	v, err := h.verSvc.Dispute(c.Request.Context(), caller.ID, id, req.DisputeReason)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, v)
}

// ResolveVerification godoc
// @ID          resolveVerification
// @Summary     Resolve a dispute
// @Description An administrator settles a disputed claim with a final outcome.
// @Description A VERIFIED outcome also marks the pet as reunited.
// @Tags        Admin
// @Accept      json
// @Produce     json
//
// @Param       Authorization  header  string  true  "Bearer token"
// @Param       id             path    string  true  "Verification ID (UUID)"  format(uuid)
// @Param       body           body    handlers.ResolveRequest  true  "Resolution payload"
//
// @Success     200  {object} domain.Verification
// @Failure     400  {object} handlers.ErrorResponse "Invalid outcome or claim not disputed"
// @Failure     401  {object} handlers.ErrorResponse "Unauthenticated"
// @Failure     403  {object} handlers.ErrorResponse "Not an administrator"
// @Failure     404  {object} handlers.ErrorResponse "Not found"
// @Failure     409  {object} handlers.ErrorResponse "Concurrent update"
// @Router      /verifications/{id}/resolve [put]
func (h *Handlers) ResolveVerification(c *gin.Context) {
	id, okID := verificationID(c)
	if !okID {
		return
	}
	caller, okAuth := principal(c)
	if !okAuth {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "authentication required")
		return
	}

	var req ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "status required")
		return
	}

	v, err := h.verSvc.Resolve(c.Request.Context(), caller, id,
		strings.ToUpper(strings.TrimSpace(req.Status)), req.AdminNotes)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, v)
}
