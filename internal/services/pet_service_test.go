package services

import (
	"context"
	"errors"
	"testing"

	"github.com/petreunite/go-pet-backend/internal/domain"
)

func TestPetService_File_Normalizes(t *testing.T) {
	db := newServiceDB(t)
	s := &PetService{DB: db}

	pet, err := s.File(context.Background(), "u1", &domain.Pet{
		Name:         "  Luna ",
		Species:      "dog",
		Disposition:  domain.DispositionFound,
		OwnerContact: " Owner@Example.COM ",
	})
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	if pet.ID == "" || pet.ReporterID != "u1" {
		t.Fatalf("unexpected pet: %+v", pet)
	}
	if pet.Name != "Luna" {
		t.Fatalf("name not trimmed: %q", pet.Name)
	}
	if pet.OwnerContact != "owner@example.com" {
		t.Fatalf("owner contact not normalized: %q", pet.OwnerContact)
	}
}

func TestPetService_File_Validation(t *testing.T) {
	db := newServiceDB(t)
	s := &PetService{DB: db}

	if _, err := s.File(context.Background(), "u1", &domain.Pet{Name: "  ", Disposition: domain.DispositionLost}); !errors.Is(err, ErrPetNameRequired) {
		t.Fatalf("want ErrPetNameRequired, got %v", err)
	}
	// Reports cannot enter as reunited; that state is earned through a claim.
	for _, d := range []string{domain.DispositionReunited, "stolen", ""} {
		if _, err := s.File(context.Background(), "u1", &domain.Pet{Name: "Rex", Disposition: d}); !errors.Is(err, ErrInvalidDisposition) {
			t.Fatalf("disposition %q: want ErrInvalidDisposition, got %v", d, err)
		}
	}
}

func TestPetService_Get(t *testing.T) {
	db := newServiceDB(t)
	s := &PetService{DB: db}

	pet, err := s.File(context.Background(), "u1", &domain.Pet{Name: "Rex", Disposition: domain.DispositionLost})
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	got, err := s.Get(context.Background(), pet.ID)
	if err != nil || got.Name != "Rex" {
		t.Fatalf("Get: %+v err=%v", got, err)
	}
	if _, err := s.Get(context.Background(), "4265e2f6-0000-0000-0000-000000000000"); !errors.Is(err, ErrPetNotFound) {
		t.Fatalf("want ErrPetNotFound, got %v", err)
	}
}

func TestPetService_ListPage_FiltersByDisposition(t *testing.T) {
	db := newServiceDB(t)
	s := &PetService{DB: db}

	for i, d := range []string{domain.DispositionLost, domain.DispositionLost, domain.DispositionFound} {
		if _, err := s.File(context.Background(), "u1", &domain.Pet{Name: "Pet", Disposition: d}); err != nil {
			t.Fatalf("seed %d: %v", i, err)
		}
	}

	items, total, err := s.ListPage(context.Background(), domain.DispositionLost, 1, 10)
	if err != nil {
		t.Fatalf("ListPage: %v", err)
	}
	if total != 2 || len(items) != 2 {
		t.Fatalf("lost: total=%d len=%d", total, len(items))
	}

	items, total, err = s.ListPage(context.Background(), "", 1, 2)
	if err != nil {
		t.Fatalf("ListPage all: %v", err)
	}
	if total != 3 || len(items) != 2 {
		t.Fatalf("all: total=%d len=%d", total, len(items))
	}
}
