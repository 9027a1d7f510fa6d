package repo

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/petreunite/go-pet-backend/internal/domain"
)

func newRepoDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("repo_test_%d.db", time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// Ensure the file handle is released before TempDir cleanup (Windows needs this).
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	if err := AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func mkVerification(t *testing.T, db *gorm.DB, petID, finderID, claimantID string) *domain.Verification {
	t.Helper()
	v, err := CreateVerification(context.Background(), db, &domain.Verification{
		PetID:      petID,
		FinderID:   finderID,
		ClaimantID: claimantID,
		Method:     domain.MethodTag,
		Status:     domain.StatusPending,
		ExpiresAt:  time.Now().UTC().Add(7 * 24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("CreateVerification: %v", err)
	}
	return v
}

func TestCreateVerification_AssignsDefaults(t *testing.T) {
	db := newRepoDB(t)
	v := mkVerification(t, db, "p1", "f1", "c1")

	if v.ID == "" {
		t.Fatalf("ID not assigned")
	}
	if v.Version != 1 {
		t.Fatalf("version = %d, want 1", v.Version)
	}
	if v.CreatedAt.IsZero() {
		t.Fatalf("CreatedAt not set")
	}
}

func TestCreateVerification_UniquePairEnforced(t *testing.T) {
	db := newRepoDB(t)
	mkVerification(t, db, "p1", "f1", "c1")

	_, err := CreateVerification(context.Background(), db, &domain.Verification{
		PetID:      "p1",
		FinderID:   "f1",
		ClaimantID: "c1",
		Method:     domain.MethodPhoto,
		Status:     domain.StatusPending,
		ExpiresAt:  time.Now().UTC().Add(time.Hour),
	})
	if err == nil {
		t.Fatalf("expected unique violation for duplicate (pet, claimant) pair")
	}

	// A different claimant on the same pet is fine.
	if _, err := CreateVerification(context.Background(), db, &domain.Verification{
		PetID:      "p1",
		FinderID:   "f1",
		ClaimantID: "c2",
		Method:     domain.MethodTag,
		Status:     domain.StatusPending,
		ExpiresAt:  time.Now().UTC().Add(time.Hour),
	}); err != nil {
		t.Fatalf("second claimant: %v", err)
	}
}

func TestGetVerification_PreloadsChatInOrder(t *testing.T) {
	db := newRepoDB(t)
	v := mkVerification(t, db, "p1", "f1", "c1")

	for _, body := range []string{"first", "second", "third"} {
		if _, err := AppendChatMessage(context.Background(), db, v.ID, "c1", body); err != nil {
			t.Fatalf("append %q: %v", body, err)
		}
	}

	got, err := GetVerification(context.Background(), db, v.ID)
	if err != nil {
		t.Fatalf("GetVerification: %v", err)
	}
	if len(got.ChatHistory) != 3 {
		t.Fatalf("chat history = %d", len(got.ChatHistory))
	}
	if got.ChatHistory[0].Body != "first" || got.ChatHistory[2].Body != "third" {
		t.Fatalf("history out of order: %+v", got.ChatHistory)
	}

	if _, err := GetVerification(context.Background(), db, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestFindVerificationByPair(t *testing.T) {
	db := newRepoDB(t)
	v := mkVerification(t, db, "p1", "f1", "c1")

	got, err := FindVerificationByPair(context.Background(), db, "p1", "c1")
	if err != nil || got.ID != v.ID {
		t.Fatalf("FindVerificationByPair: got=%+v err=%v", got, err)
	}
	if _, err := FindVerificationByPair(context.Background(), db, "p1", "someone-else"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestSaveVerificationGuarded_BumpsVersion(t *testing.T) {
	db := newRepoDB(t)
	v := mkVerification(t, db, "p1", "f1", "c1")

	v.Status = domain.StatusRejected
	if err := SaveVerificationGuarded(context.Background(), db, v); err != nil {
		t.Fatalf("guarded save: %v", err)
	}
	if v.Version != 2 {
		t.Fatalf("version = %d, want 2", v.Version)
	}

	got, _ := GetVerification(context.Background(), db, v.ID)
	if got.Status != domain.StatusRejected || got.Version != 2 {
		t.Fatalf("row not updated: %+v", got)
	}
}

func TestSaveVerificationGuarded_StaleVersionConflict(t *testing.T) {
	db := newRepoDB(t)
	v := mkVerification(t, db, "p1", "f1", "c1")

	// Two readers load the same version; the slower writer must conflict.
	stale, err := GetVerification(context.Background(), db, v.ID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	v.Status = domain.StatusDisputed
	if err := SaveVerificationGuarded(context.Background(), db, v); err != nil {
		t.Fatalf("first save: %v", err)
	}

	stale.Status = domain.StatusRejected
	if err := SaveVerificationGuarded(context.Background(), db, stale); !errors.Is(err, ErrStaleVersion) {
		t.Fatalf("want ErrStaleVersion, got %v", err)
	}

	got, _ := GetVerification(context.Background(), db, v.ID)
	if got.Status != domain.StatusDisputed {
		t.Fatalf("stale write clobbered the row: %+v", got)
	}
}

func TestSaveVerificationGuarded_MissingRow(t *testing.T) {
	db := newRepoDB(t)
	ghost := &domain.Verification{ID: "ghost", Version: 1, Status: domain.StatusPending}
	if err := SaveVerificationGuarded(context.Background(), db, ghost); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestListAndCountVerificationsForUser(t *testing.T) {
	db := newRepoDB(t)
	mkVerification(t, db, "p1", "u1", "u2") // u1 finder
	mkVerification(t, db, "p2", "u3", "u1") // u1 claimant
	mkVerification(t, db, "p3", "u3", "u4") // u1 absent

	total, err := CountVerificationsForUser(context.Background(), db, "u1")
	if err != nil || total != 2 {
		t.Fatalf("count = %d err=%v", total, err)
	}
	items, err := ListVerificationsForUser(context.Background(), db, "u1", 0, 10)
	if err != nil || len(items) != 2 {
		t.Fatalf("list = %d err=%v", len(items), err)
	}
}

func TestListDisputedVerifications_OldestFirst(t *testing.T) {
	db := newRepoDB(t)

	older := time.Now().UTC().Add(-48 * time.Hour)
	newer := time.Now().UTC().Add(-1 * time.Hour)

	a := mkVerification(t, db, "p1", "f1", "c1")
	a.Status = domain.StatusDisputed
	a.DisputeReason = "newer"
	a.DisputeOpenedAt = &newer
	if err := SaveVerificationGuarded(context.Background(), db, a); err != nil {
		t.Fatalf("save a: %v", err)
	}

	b := mkVerification(t, db, "p2", "f2", "c2")
	b.Status = domain.StatusDisputed
	b.DisputeReason = "older"
	b.DisputeOpenedAt = &older
	if err := SaveVerificationGuarded(context.Background(), db, b); err != nil {
		t.Fatalf("save b: %v", err)
	}

	mkVerification(t, db, "p3", "f3", "c3") // still pending, excluded

	queue, err := ListDisputedVerifications(context.Background(), db)
	if err != nil {
		t.Fatalf("ListDisputedVerifications: %v", err)
	}
	if len(queue) != 2 || queue[0].DisputeReason != "older" {
		t.Fatalf("queue wrong: %+v", queue)
	}
}

func TestChatMessages_AppendAndList(t *testing.T) {
	db := newRepoDB(t)
	v := mkVerification(t, db, "p1", "f1", "c1")

	start := time.Now().UTC().Add(-time.Minute)
	m, err := AppendChatMessage(context.Background(), db, v.ID, "c1", "hello")
	if err != nil {
		t.Fatalf("AppendChatMessage: %v", err)
	}
	if m.ID == "" || m.CreatedAt.Before(start) {
		t.Fatalf("unexpected message: %+v", m)
	}

	msgs, err := ListChatMessages(context.Background(), db, v.ID)
	if err != nil || len(msgs) != 1 || msgs[0].Body != "hello" {
		t.Fatalf("ListChatMessages: %+v err=%v", msgs, err)
	}
}

func TestVerificationsStats(t *testing.T) {
	db := newRepoDB(t)

	count, maxTS, err := VerificationsStats(context.Background(), db, "u1")
	if err != nil || count != 0 || maxTS != nil {
		t.Fatalf("empty stats: count=%d maxTS=%v err=%v", count, maxTS, err)
	}

	mkVerification(t, db, "p1", "u1", "u2")
	mkVerification(t, db, "p2", "u3", "u1")

	count, maxTS, err = VerificationsStats(context.Background(), db, "u1")
	if err != nil {
		t.Fatalf("VerificationsStats: %v", err)
	}
	if count != 2 || maxTS == nil {
		t.Fatalf("count=%d maxTS=%v", count, maxTS)
	}
}
