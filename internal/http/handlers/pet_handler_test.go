package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/petreunite/go-pet-backend/internal/domain"
)

func TestCreatePet(t *testing.T) {
	r, db := newRig(t)
	reporter := seedHandlerUser(t, db, "finder@example.com")

	w := doJSON(t, r, http.MethodPost, "/pets", reporter, CreatePetRequest{
		Name:         "Biscuit",
		Species:      "dog",
		Breed:        "beagle",
		Disposition:  "Found",
		OwnerContact: "Owner@Example.com",
		PhotoURLs:    []string{"https://img.example.com/biscuit.jpg"},
	}, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
	var p domain.Pet
	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.ReporterID != reporter {
		t.Fatalf("reporter = %s", p.ReporterID)
	}
	if p.Disposition != domain.DispositionFound {
		t.Fatalf("disposition = %q", p.Disposition)
	}
	if p.OwnerContact != "owner@example.com" {
		t.Fatalf("owner contact not normalized: %q", p.OwnerContact)
	}
}

func TestCreatePet_Validation(t *testing.T) {
	r, db := newRig(t)
	reporter := seedHandlerUser(t, db, "finder@example.com")

	// Missing name fails binding.
	w := doJSON(t, r, http.MethodPost, "/pets", reporter,
		map[string]any{"disposition": "lost"}, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing name: %d", w.Code)
	}

	// Unknown disposition is rejected by the service.
	w = doJSON(t, r, http.MethodPost, "/pets", reporter,
		CreatePetRequest{Name: "Biscuit", Disposition: "stolen"}, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad disposition: %d body=%s", w.Code, w.Body.String())
	}

	// No identity.
	w = doJSON(t, r, http.MethodPost, "/pets", "",
		CreatePetRequest{Name: "Biscuit", Disposition: "lost"}, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated: %d", w.Code)
	}
}

func TestCreatePet_StorageFailure(t *testing.T) {
	r, db := newRig(t)
	reporter := seedHandlerUser(t, db, "finder@example.com")

	// Sever the store so the insert fails after validation passes.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap db: %v", err)
	}
	_ = sqlDB.Close()

	w := doJSON(t, r, http.MethodPost, "/pets", reporter,
		CreatePetRequest{Name: "Biscuit", Disposition: "lost"}, nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
	var er ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &er); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if er.Code != ErrCodeCreateFailed {
		t.Fatalf("code = %q, want %q", er.Code, ErrCodeCreateFailed)
	}
}

func TestListPets_DispositionFilter(t *testing.T) {
	r, db := newRig(t)
	reporter := seedHandlerUser(t, db, "finder@example.com")
	seedHandlerPet(t, db, reporter, domain.DispositionLost)
	seedHandlerPet(t, db, reporter, domain.DispositionLost)
	seedHandlerPet(t, db, reporter, domain.DispositionFound)

	w := doJSON(t, r, http.MethodGet, "/pets?disposition=LOST", reporter, nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list: %d", w.Code)
	}
	var resp ListPetsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Pagination.Total != 2 || len(resp.Pets) != 2 {
		t.Fatalf("filtered page: total=%d len=%d", resp.Pagination.Total, len(resp.Pets))
	}

	w = doJSON(t, r, http.MethodGet, "/pets?page=2&page_size=2", reporter, nil, nil)
	var page2 ListPetsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &page2); err != nil {
		t.Fatalf("decode page 2: %v", err)
	}
	if page2.Pagination.Total != 3 || len(page2.Pets) != 1 {
		t.Fatalf("page 2: total=%d len=%d", page2.Pagination.Total, len(page2.Pets))
	}
}

func TestGetPet(t *testing.T) {
	r, db := newRig(t)
	reporter := seedHandlerUser(t, db, "finder@example.com")
	pet := seedHandlerPet(t, db, reporter, domain.DispositionLost)

	w := doJSON(t, r, http.MethodGet, "/pets/"+pet.ID, reporter, nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get: %d", w.Code)
	}
	w = doJSON(t, r, http.MethodGet, "/pets/not-a-uuid", reporter, nil, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad id: %d", w.Code)
	}
	w = doJSON(t, r, http.MethodGet, "/pets/00000000-0000-0000-0000-000000000000", reporter, nil, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("missing: %d", w.Code)
	}
}
