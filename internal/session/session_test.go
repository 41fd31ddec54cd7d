package session

import "testing"

func TestStoreRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())

	if store.Authenticated() {
		t.Fatal("fresh store should not be authenticated")
	}

	if err := store.Save("testtoken"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got != "testtoken" {
		t.Errorf("Load: got %q, want %q", got, "testtoken")
	}
	if !store.Authenticated() {
		t.Error("store with token should be authenticated")
	}
}

func TestStoreClear(t *testing.T) {
	store := NewStore(t.TempDir())

	// Clearing an empty store is fine.
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear on empty store failed: %v", err)
	}

	if err := store.Save("abc"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if store.Token() != "" {
		t.Errorf("Token after Clear: got %q, want empty", store.Token())
	}
}

func TestStoreOverwrite(t *testing.T) {
	store := NewStore(t.TempDir())

	if err := store.Save("first"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Save("second"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if store.Token() != "second" {
		t.Errorf("Token: got %q, want %q", store.Token(), "second")
	}
}

func TestLoadTrimsWhitespace(t *testing.T) {
	store := NewStore(t.TempDir())
	if err := store.Save("tok\n"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if store.Token() != "tok" {
		t.Errorf("Token: got %q, want %q", store.Token(), "tok")
	}
}
