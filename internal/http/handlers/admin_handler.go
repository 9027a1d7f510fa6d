// Administration HTTP handlers.
//
// This file exposes the arbitration and operations endpoints:
//   - GET /admin/disputes          (list claims awaiting arbitration)
//   - PUT /admin/allowlist/reload  (re-read the admin email allow-list)
//
// Both endpoints require an allow-listed caller; admin status comes from the
// resolved principal, never from the token payload.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/petreunite/go-pet-backend/internal/domain"
)

// AdminDirectory is the mutable admin allow-list consumed by HTTP handlers.
type AdminDirectory interface {
	// Reload re-reads the configured source and returns the new entry count.
	Reload() int
	// Len returns the current number of allow-listed emails.
	Len() int
}

// ListDisputesResponse wraps the claims currently awaiting arbitration,
// oldest dispute first.
type ListDisputesResponse struct {
	Disputes []domain.Verification `json:"disputes"`
	Total    int                   `json:"total"`
}

// AllowlistReloadResponse reports the allow-list size after a reload.
type AllowlistReloadResponse struct {
	Admins int `json:"admins"`
}

// ListDisputes godoc
// @ID          listDisputes
// @Summary     List disputed claims
// @Description Returns every verification awaiting arbitration, oldest dispute
// @Description first. Administrators only.
// @Tags        Admin
// @Produce     json
//
// @Param       Authorization  header  string  true  "Bearer token"
//
// @Success     200  {object}  handlers.ListDisputesResponse
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthenticated"
// @Failure     403  {object}  handlers.ErrorResponse  "Not an administrator"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /admin/disputes [get]
func (h *Handlers) ListDisputes(c *gin.Context) {
	caller, okAuth := principal(c)
	if !okAuth {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "authentication required")
		return
	}

	items, err := h.verSvc.ListDisputed(c.Request.Context(), caller)
	if err != nil {
		failService(c, err)
		return
	}
	if items == nil {
		items = []domain.Verification{}
	}
	ok(c, http.StatusOK, ListDisputesResponse{Disputes: items, Total: len(items)})
}

// ReloadAllowlist godoc
// @ID          reloadAllowlist
// @Summary     Reload the admin allow-list
// @Description Re-reads the configured admin email source so membership changes
// @Description take effect without a restart. Administrators only.
// @Tags        Admin
// @Produce     json
//
// @Param       Authorization  header  string  true  "Bearer token"
//
// @Success     200  {object}  handlers.AllowlistReloadResponse
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthenticated"
// @Failure     403  {object}  handlers.ErrorResponse  "Not an administrator"
// @Router      /admin/allowlist/reload [put]
func (h *Handlers) ReloadAllowlist(c *gin.Context) {
	caller, okAuth := principal(c)
	if !okAuth {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "authentication required")
		return
	}
	if !caller.IsAdmin {
		fail(c, http.StatusForbidden, ErrCodeForbidden, "administrator access required")
		return
	}
	if h.admins == nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "allow-list not configured")
		return
	}

	ok(c, http.StatusOK, AllowlistReloadResponse{Admins: h.admins.Reload()})
}
