package history

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()

	path := filepath.Join(t.TempDir(), "history.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// storesUnderTest returns both implementations so shared behavior is
// verified against each.
func storesUnderTest(t *testing.T) map[string]Store {
	t.Helper()

	return map[string]Store{
		"sqlite": newSQLiteStore(t),
		"memory": NewMemoryStore(),
	}
}

func beginSession(t *testing.T, store Store) string {
	t.Helper()

	id := uuid.NewString()
	err := store.BeginSession(context.Background(), &Session{ID: id})
	if err != nil {
		t.Fatalf("BeginSession() error = %v", err)
	}
	return id
}

func TestOpen_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "history.db")

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()

	if err := store.BeginSession(context.Background(), &Session{ID: uuid.NewString()}); err != nil {
		t.Errorf("BeginSession() after nested Open error = %v", err)
	}
}

func TestStore_AppendAndRecent(t *testing.T) {
	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			sessionID := beginSession(t, store)

			inputs := []string{"set x = 1;", "x + 1;", "println(x);"}
			for _, input := range inputs {
				err := store.Append(ctx, &Entry{
					SessionID: sessionID,
					Input:     input,
					Result:    "ok",
				})
				if err != nil {
					t.Fatalf("Append(%q) error = %v", input, err)
				}
			}

			entries, err := store.Recent(ctx, 2)
			if err != nil {
				t.Fatalf("Recent() error = %v", err)
			}
			if len(entries) != 2 {
				t.Fatalf("Recent(2) returned %d entries, want 2", len(entries))
			}

			// Oldest first, truncated from the front
			if entries[0].Input != "x + 1;" {
				t.Errorf("entries[0].Input = %q, want %q", entries[0].Input, "x + 1;")
			}
			if entries[1].Input != "println(x);" {
				t.Errorf("entries[1].Input = %q, want %q", entries[1].Input, "println(x);")
			}
			if entries[0].ID >= entries[1].ID {
				t.Errorf("entry IDs not ascending: %d then %d", entries[0].ID, entries[1].ID)
			}
		})
	}
}

func TestStore_AppendAssignsMetadata(t *testing.T) {
	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			sessionID := beginSession(t, store)

			entry := &Entry{SessionID: sessionID, Input: "1 + 1;", Result: "2"}
			if err := store.Append(context.Background(), entry); err != nil {
				t.Fatalf("Append() error = %v", err)
			}

			if entry.ID == 0 {
				t.Error("Append() did not assign an ID")
			}
			if entry.CreatedAt.IsZero() {
				t.Error("Append() did not assign CreatedAt")
			}
			if time.Since(entry.CreatedAt) > time.Minute {
				t.Errorf("CreatedAt = %v, not recent", entry.CreatedAt)
			}
		})
	}
}

func TestStore_Validation(t *testing.T) {
	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			err := store.BeginSession(ctx, &Session{})
			if err == nil || !strings.Contains(err.Error(), "session ID is required") {
				t.Errorf("BeginSession(empty ID) error = %v, want session ID error", err)
			}

			err = store.Append(ctx, &Entry{Input: "1;"})
			if err == nil || !strings.Contains(err.Error(), "session ID is required") {
				t.Errorf("Append(no session) error = %v, want session ID error", err)
			}
		})
	}
}

func TestStore_RecentDefaultLimit(t *testing.T) {
	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			sessionID := beginSession(t, store)

			for i := 0; i < 3; i++ {
				err := store.Append(ctx, &Entry{SessionID: sessionID, Input: "1;"})
				if err != nil {
					t.Fatalf("Append() error = %v", err)
				}
			}

			entries, err := store.Recent(ctx, 0)
			if err != nil {
				t.Fatalf("Recent(0) error = %v", err)
			}
			if len(entries) != 3 {
				t.Errorf("Recent(0) returned %d entries, want all 3", len(entries))
			}
		})
	}
}

func TestStore_RecentEmpty(t *testing.T) {
	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			entries, err := store.Recent(context.Background(), 10)
			if err != nil {
				t.Fatalf("Recent() error = %v", err)
			}
			if len(entries) != 0 {
				t.Errorf("Recent() on empty store returned %d entries", len(entries))
			}
		})
	}
}

func TestStore_Statistics(t *testing.T) {
	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			sessionID := beginSession(t, store)

			okEntry := &Entry{SessionID: sessionID, Input: "1 + 1;", Result: "2"}
			badEntry := &Entry{SessionID: sessionID, Input: "1 / 0;", Result: "division by zero", IsError: true}
			for _, entry := range []*Entry{okEntry, badEntry} {
				if err := store.Append(ctx, entry); err != nil {
					t.Fatalf("Append() error = %v", err)
				}
			}

			stats, err := store.Statistics(ctx)
			if err != nil {
				t.Fatalf("Statistics() error = %v", err)
			}

			if got := stats["total_sessions"]; got != int64(1) {
				t.Errorf("total_sessions = %v, want 1", got)
			}
			if got := stats["total_entries"]; got != int64(2) {
				t.Errorf("total_entries = %v, want 2", got)
			}
			if got := stats["total_errors"]; got != int64(1) {
				t.Errorf("total_errors = %v, want 1", got)
			}
		})
	}
}

func TestSQLiteStore_Persistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	sessionID := uuid.NewString()
	if err := store.BeginSession(ctx, &Session{ID: sessionID}); err != nil {
		t.Fatalf("BeginSession() error = %v", err)
	}
	if err := store.Append(ctx, &Entry{SessionID: sessionID, Input: "set x = 1;", Result: "1"}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("Open() after Close error = %v", err)
	}
	defer reopened.Close()

	entries, err := reopened.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Recent() after reopen returned %d entries, want 1", len(entries))
	}
	if entries[0].Input != "set x = 1;" {
		t.Errorf("entries[0].Input = %q, want %q", entries[0].Input, "set x = 1;")
	}
	if entries[0].SessionID != sessionID {
		t.Errorf("entries[0].SessionID = %q, want %q", entries[0].SessionID, sessionID)
	}
	if entries[0].IsError {
		t.Error("entries[0].IsError = true, want false")
	}
}
