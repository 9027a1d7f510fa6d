// Pet report HTTP handlers.
//
// This file exposes REST endpoints for pet reports:
//   - POST /pets        (file a lost / found / adopted report)
//   - GET  /pets        (list, paginated, optional disposition filter)
//   - GET  /pets/{id}   (fetch one report)
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/petreunite/go-pet-backend/internal/domain"
	"github.com/petreunite/go-pet-backend/internal/services"
)

// CreatePetRequest is the JSON payload for filing a pet report.
type CreatePetRequest struct {
	// Name is the pet's name as reported. Required.
	Name string `json:"name" binding:"required,min=1,max=255" example:"Luna"`
	// Species is free-form (dog, cat, parrot, ...).
	Species string `json:"species,omitempty" example:"dog"`
	// Breed is free-form.
	Breed string `json:"breed,omitempty" example:"border collie"`
	// Disposition is the report kind: lost, found, or adopted.
	Disposition string `json:"disposition" binding:"required" example:"found"`
	// Description carries distinguishing details.
	Description string `json:"description,omitempty" example:"white sock on left front paw"`
	// OwnerContact is the owner's email when known (found reports use it to
	// route ownership claims).
	OwnerContact string `json:"owner_contact,omitempty" example:"owner@example.com"`
	// PhotoURLs references already-uploaded images.
	PhotoURLs []string `json:"photo_urls,omitempty"`
}

// ListPetsResponse wraps a page of pet reports and pagination information.
type ListPetsResponse struct {
	Pets       []domain.Pet `json:"pets"`
	Pagination Pagination   `json:"pagination"`
}

// CreatePet godoc
// @ID          createPet
// @Summary     File a pet report
// @Description Creates a lost, found, or adopted report owned by the caller.
// @Tags        Pets
// @Accept      json
// @Produce     json
//
// @Param       Authorization  header  string  true  "Bearer token"
// @Param       body           body    handlers.CreatePetRequest  true  "Report payload"
//
// @Success     201  {object}  domain.Pet
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthenticated"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /pets [post]
func (h *Handlers) CreatePet(c *gin.Context) {
	caller, okAuth := principal(c)
	if !okAuth {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "authentication required")
		return
	}

	var req CreatePetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "name and disposition required")
		return
	}

	pet := &domain.Pet{
		Name:         req.Name,
		Species:      strings.TrimSpace(req.Species),
		Breed:        strings.TrimSpace(req.Breed),
		Disposition:  strings.ToLower(strings.TrimSpace(req.Disposition)),
		Description:  strings.TrimSpace(req.Description),
		OwnerContact: req.OwnerContact,
		PhotoURLs:    req.PhotoURLs,
	}

	created, err := h.petSvc.File(c.Request.Context(), caller.ID, pet)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPetNameRequired), errors.Is(err, services.ErrInvalidDisposition):
			failService(c, err)
		default:
			fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, "could not create pet report")
		}
		return
	}
	ok(c, http.StatusCreated, created)
}

// ListPets godoc
// @ID          listPets
// @Summary     List pet reports (paginated)
// @Description Returns a page of reports, newest first, optionally filtered by
// @Description disposition (lost, found, adopted, reunited).
// @Tags        Pets
// @Produce     json
//
// @Param       disposition    query   string  false "Filter by disposition"  Enums(lost, found, adopted, reunited)
// @Param       page           query   int     false "Page number"            minimum(1) default(1)
// @Param       page_size      query   int     false "Items per page"         minimum(1) maximum(100) default(20)
//
// @Success     200  {object} handlers.ListPetsResponse
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /pets [get]
func (h *Handlers) ListPets(c *gin.Context) {
	page, pageSize := clampPagination(c)
	disposition := strings.ToLower(strings.TrimSpace(c.Query("disposition")))

	items, total, err := h.petSvc.ListPage(c.Request.Context(), disposition, page, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	ok(c, http.StatusOK, ListPetsResponse{
		Pets: items,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
		},
	})
}

// GetPet godoc
// @ID          getPet
// @Summary     Fetch one pet report
// @Tags        Pets
// @Produce     json
//
// @Param       Authorization  header  string  true  "Bearer token"
// @Param       id             path    string  true  "Pet ID (UUID)"  format(uuid)
//
// @Success     200  {object} domain.Pet
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Not found"
// @Router      /pets/{id} [get]
func (h *Handlers) GetPet(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "pet id must be a UUID")
		return
	}

	pet, err := h.petSvc.Get(c.Request.Context(), id)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, pet)
}
