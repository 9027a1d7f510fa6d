// Identity HTTP handlers.
//
// This file exposes the demo token-issue endpoint:
//   - POST /auth/token   (exchange an email + display name for a signed token)
//
// There is no password flow; the platform trusts the email for demo purposes
// and mints a signed bearer token bound to a persisted user row. Admin
// privileges are never encoded in the token, they are derived from the
// allow-list on every request.
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// TokenRequest is the JSON payload for requesting a bearer token.
type TokenRequest struct {
	// Email identifies (or creates) the user account.
	Email string `json:"email" binding:"required,email" example:"sam@example.com"`
	// Name is the display name stored on first sight of the email.
	Name string `json:"name,omitempty" example:"Sam"`
}

// TokenResponse carries the signed token and the resolved identity.
type TokenResponse struct {
	Token string `json:"token"`
	// UserID is the stable id the token resolves to.
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	// IsAdmin reflects the allow-list at issue time; it is informational only
	// and re-derived on every request.
	IsAdmin bool `json:"is_admin"`
}

// IssueToken godoc
// @ID          issueToken
// @Summary     Issue a bearer token
// @Description Exchanges an email and display name for a signed token. The user
// @Description row is created on first use.
// @Tags        Auth
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.TokenRequest  true  "Identity payload"
//
// @Success     200  {object}  handlers.TokenResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /auth/token [post]
func (h *Handlers) IssueToken(c *gin.Context) {
	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "valid email required")
		return
	}

	token, p, err := h.tokenSvc.IssueToken(c.Request.Context(), req.Email, strings.TrimSpace(req.Name))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not issue token")
		return
	}

	ok(c, http.StatusOK, TokenResponse{
		Token:   token,
		UserID:  p.ID,
		Email:   p.Email,
		IsAdmin: p.IsAdmin,
	})
}
