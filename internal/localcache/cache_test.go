package localcache

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type item struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type failingStore struct {
	loadErr error
	saveErr error
	saves   int
}

func (s *failingStore) Load(string) ([]byte, bool, error) { return nil, false, s.loadErr }
func (s *failingStore) Save(string, []byte) error {
	s.saves++
	return s.saveErr
}
func (s *failingStore) Delete(string) error { return nil }

func TestHandleReturnsInitialWhenAbsent(t *testing.T) {
	cache := New(NewMemoryStore(), testLogger())
	h := NewHandle(cache, KeyRooms, []item{{ID: "1", Name: "Kitchen"}})

	got := h.Get()
	if len(got) != 1 || got[0].Name != "Kitchen" {
		t.Fatalf("Get() = %+v, want initial value", got)
	}
}

func TestHandleSetIsVisibleToOtherHandles(t *testing.T) {
	cache := New(NewMemoryStore(), testLogger())
	first := NewHandle[[]item](cache, KeyDevices, nil)
	second := NewHandle[[]item](cache, KeyDevices, nil)

	first.Set([]item{{ID: "a", Name: "Lamp"}})
	got := second.Get()
	if len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("second.Get() = %+v, want value set through first", got)
	}
}

func TestHandleGetReturnsCopy(t *testing.T) {
	cache := New(NewMemoryStore(), testLogger())
	h := NewHandle[[]item](cache, KeyDevices, nil)
	h.Set([]item{{ID: "a", Name: "Lamp"}})

	got := h.Get()
	got[0].Name = "mutated"
	if again := h.Get(); again[0].Name != "Lamp" {
		t.Fatalf("Get() after caller mutation = %q, want %q", again[0].Name, "Lamp")
	}
}

func TestHandleCorruptValueFallsBackToInitial(t *testing.T) {
	store := NewMemoryStore()
	_ = store.Save(KeyScenes, []byte("{not json"))
	cache := New(store, testLogger())
	h := NewHandle(cache, KeyScenes, []item{})

	got := h.Get()
	if got == nil || len(got) != 0 {
		t.Fatalf("Get() = %#v, want empty initial", got)
	}
}

func TestHandleReadErrorFallsBackToInitial(t *testing.T) {
	cache := New(&failingStore{loadErr: errors.New("denied")}, testLogger())
	h := NewHandle(cache, KeyAuthToken, "none")
	if got := h.Get(); got != "none" {
		t.Fatalf("Get() = %q, want %q", got, "none")
	}
}

func TestHandleWriteFailureKeepsMemoryValue(t *testing.T) {
	store := &failingStore{saveErr: errors.New("quota exceeded")}
	cache := New(store, testLogger())
	h := NewHandle(cache, KeyAuthToken, "")

	h.Set("token-1")
	if got := h.Get(); got != "token-1" {
		t.Fatalf("Get() = %q, want %q", got, "token-1")
	}
	if store.saves != 1 {
		t.Fatalf("saves = %d, want 1", store.saves)
	}
}

func TestHandleUpdateAndReset(t *testing.T) {
	cache := New(NewMemoryStore(), testLogger())
	h := NewHandle(cache, KeyFavouriteDevices, []string{})

	h.Update(func(ids []string) []string { return append(ids, "a") })
	h.Update(func(ids []string) []string { return append(ids, "b") })
	if got := h.Get(); len(got) != 2 || got[1] != "b" {
		t.Fatalf("Get() = %v, want [a b]", got)
	}

	h.Reset()
	if got := h.Get(); len(got) != 0 {
		t.Fatalf("Get() after Reset = %v, want empty", got)
	}
}

func TestSQLiteStorePersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cache", "state.db")

	cache := Open(ctx, path, testLogger())
	NewHandle[[]item](cache, KeyRooms, nil).Set([]item{{ID: "r1", Name: "Office"}})
	NewHandle(cache, KeyAuthToken, "").Set("abc")
	if err := cache.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	reopened := Open(ctx, path, testLogger())
	defer reopened.Close()
	rooms := NewHandle[[]item](reopened, KeyRooms, nil).Get()
	if len(rooms) != 1 || rooms[0].Name != "Office" {
		t.Fatalf("rooms after reopen = %+v, want Office", rooms)
	}
	if token := NewHandle(reopened, KeyAuthToken, "").Get(); token != "abc" {
		t.Fatalf("token after reopen = %q, want %q", token, "abc")
	}
}

func TestSQLiteStoreDelete(t *testing.T) {
	store, err := NewSQLiteStore(context.Background(), filepath.Join(t.TempDir(), "kv.db"), testLogger())
	if err != nil {
		t.Fatalf("NewSQLiteStore() error: %v", err)
	}
	defer store.Close()

	if err := store.Save("k", []byte(`"v"`)); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if err := store.Delete("k"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, ok, err := store.Load("k"); err != nil || ok {
		t.Fatalf("Load() after Delete = ok %v err %v, want absent", ok, err)
	}
}

func TestOpenFallsBackToMemory(t *testing.T) {
	dir := t.TempDir()
	// A directory cannot be opened as a sqlite database file.
	cache := Open(context.Background(), dir, testLogger())
	if _, ok := cache.store.(*MemoryStore); !ok {
		t.Fatalf("store = %T, want *MemoryStore", cache.store)
	}
	h := NewHandle(cache, KeyAuthToken, "")
	h.Set("t")
	if got := h.Get(); got != "t" {
		t.Fatalf("Get() = %q, want %q", got, "t")
	}
}

func TestStorageErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := error(&StorageError{Op: "write", Key: KeyDevices, Err: cause})
	if !errors.Is(err, cause) {
		t.Fatal("errors.Is(StorageError, cause) = false, want true")
	}
}
