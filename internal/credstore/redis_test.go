package credstore

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/pawshelter/petcare/internal/api"
	"github.com/pawshelter/petcare/internal/session"
)

func newTestStore(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = rdb.Close()
		mr.Close()
	})
	return New(rdb, "pc:"), mr
}

func TestSaveWritesBothPrefixedKeys(t *testing.T) {
	r, mr := newTestStore(t)
	ctx := context.Background()

	if err := r.SaveCredentials(ctx, `{"fullname":"Jane"}`, "abc123"); err != nil {
		t.Fatalf("SaveCredentials: %v", err)
	}
	mr.CheckGet(t, "pc:user", `{"fullname":"Jane"}`)
	mr.CheckGet(t, "pc:token", "abc123")

	user, token, err := r.LoadCredentials(ctx)
	if err != nil {
		t.Fatalf("LoadCredentials: %v", err)
	}
	if user != `{"fullname":"Jane"}` || token != "abc123" {
		t.Errorf("got user=%q token=%q", user, token)
	}
}

func TestLoadMissingKeysIsEmpty(t *testing.T) {
	r, mr := newTestStore(t)
	mr.Set("pc:token", "abc123")

	user, token, err := r.LoadCredentials(context.Background())
	if err != nil {
		t.Fatalf("LoadCredentials: %v", err)
	}
	if user != "" || token != "abc123" {
		t.Errorf("got user=%q token=%q", user, token)
	}
}

func TestClearRemovesBoth(t *testing.T) {
	r, mr := newTestStore(t)
	ctx := context.Background()
	mr.Set("pc:user", "u")
	mr.Set("pc:token", "t")
	mr.Set("other", "keep")

	if err := r.ClearCredentials(ctx); err != nil {
		t.Fatalf("ClearCredentials: %v", err)
	}
	if err := r.ClearCredentials(ctx); err != nil {
		t.Fatalf("second ClearCredentials: %v", err)
	}
	if mr.Exists("pc:user") || mr.Exists("pc:token") {
		t.Error("credential keys survived clear")
	}
	if !mr.Exists("other") {
		t.Error("clear touched an unrelated key")
	}
}

func TestStoreRestoresFromRedis(t *testing.T) {
	r, _ := newTestStore(t)
	ctx := context.Background()
	id := session.NewIdentity(api.User{
		Fullname: "Ada",
		Email:    "admin@example.com",
		Role:     api.RoleAdmin,
	}, "admintoken")

	if err := session.NewStore(r).Persist(ctx, id); err != nil {
		t.Fatalf("Persist: %v", err)
	}
	restored := session.NewStore(r)
	if !restored.Initialize(ctx) {
		t.Fatal("expected restore")
	}
	if !restored.State().IsAdmin() {
		t.Errorf("state = %s", restored.State())
	}
}

func TestUnavailableServer(t *testing.T) {
	r, mr := newTestStore(t)
	mr.Close()

	_, _, err := r.LoadCredentials(context.Background())
	if !errors.Is(err, ErrRedisUnavailable) {
		t.Fatalf("expected ErrRedisUnavailable, got %v", err)
	}
	// The store treats an unreadable record as signed out.
	if session.NewStore(r).Initialize(context.Background()) {
		t.Error("Initialize should fail open")
	}
}

func TestDialPingsServer(t *testing.T) {
	mr := miniredis.RunT(t)
	r, err := Dial(context.Background(), mr.Addr(), 0, "pc:")
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer r.Close()

	if _, err := Dial(context.Background(), "127.0.0.1:1", 0, "pc:"); !errors.Is(err, ErrRedisUnavailable) {
		t.Errorf("expected ErrRedisUnavailable, got %v", err)
	}
}
