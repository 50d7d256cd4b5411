package cache_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/pawshelter/petcare/internal/api"
	"github.com/pawshelter/petcare/internal/cache"
	"github.com/pawshelter/petcare/internal/session"
)

func openTestDB(t *testing.T) *cache.DB {
	t.Helper()
	db, err := cache.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("close db: %v", err)
		}
	})
	return db
}

func TestCredentialsWrittenAndClearedTogether(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	user, token, err := db.LoadCredentials(ctx)
	if err != nil || user != "" || token != "" {
		t.Fatalf("fresh db: user=%q token=%q err=%v", user, token, err)
	}

	if err := db.SaveCredentials(ctx, `{"fullname":"Jane"}`, "abc123"); err != nil {
		t.Fatalf("SaveCredentials: %v", err)
	}
	user, token, err = db.LoadCredentials(ctx)
	if err != nil {
		t.Fatalf("LoadCredentials: %v", err)
	}
	if user != `{"fullname":"Jane"}` || token != "abc123" {
		t.Errorf("got user=%q token=%q", user, token)
	}

	if err := db.ClearCredentials(ctx); err != nil {
		t.Fatalf("ClearCredentials: %v", err)
	}
	if err := db.ClearCredentials(ctx); err != nil {
		t.Fatalf("second ClearCredentials: %v", err)
	}
	user, token, _ = db.LoadCredentials(ctx)
	if user != "" || token != "" {
		t.Errorf("after clear: user=%q token=%q", user, token)
	}
}

func TestSessionRestoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "restart.db")
	ctx := context.Background()
	id := session.NewIdentity(api.User{
		Fullname: "Jane",
		Email:    "valid@example.com",
		Role:     api.RoleUser,
	}, "abc123")

	db, err := cache.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	store := session.NewStore(db)
	if err := store.Persist(ctx, id); err != nil {
		t.Fatalf("Persist: %v", err)
	}
	db.Close()

	db, err = cache.Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()

	restored := session.NewStore(db)
	if !restored.Initialize(ctx) {
		t.Fatal("expected session restore from sqlite")
	}
	got, _ := restored.State().User()
	if diff := cmp.Diff(id, got); diff != "" {
		t.Errorf("identity mismatch (-want +got):\n%s", diff)
	}
}

func TestPetListRoundTrip(t *testing.T) {
	db := openTestDB(t)
	pets := []api.Pet{
		{ID: "p2", Name: "Tom", Type: "cat", Age: "2", Available: true},
		{ID: "p1", Name: "Rex", Type: "dog", Price: "120.5"},
	}
	if err := db.PutPetList("all", pets); err != nil {
		t.Fatalf("PutPetList: %v", err)
	}

	got, fresh, err := db.LoadPetList("all", time.Minute)
	if err != nil {
		t.Fatalf("LoadPetList: %v", err)
	}
	if !fresh {
		t.Error("list should be fresh")
	}
	if diff := cmp.Diff(pets, got); diff != "" {
		t.Errorf("pets mismatch (-want +got):\n%s", diff)
	}

	_, fresh, _ = db.LoadPetList("all", 0)
	if fresh {
		t.Error("zero TTL should be stale")
	}

	if err := db.InvalidatePetList("all"); err != nil {
		t.Fatalf("InvalidatePetList: %v", err)
	}
	got, _, err = db.LoadPetList("all", time.Minute)
	if err != nil || got != nil {
		t.Errorf("after invalidate: %v, %v", got, err)
	}
}

func TestGetPetMiss(t *testing.T) {
	db := openTestDB(t)
	pet, fresh, err := db.GetPet("nope", time.Minute)
	if pet != nil || fresh || err != nil {
		t.Errorf("miss = %v, %v, %v", pet, fresh, err)
	}
}
