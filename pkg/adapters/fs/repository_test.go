package fs_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/roster/pkg/adapters/fs"
	"github.com/aretw0/roster/pkg/core"
)

// setupMedium helps create a medium for testing.
// It returns the medium and its data directory.
func setupMedium(t *testing.T, opts ...func(*fs.Config)) (*fs.Medium, string) {
	t.Helper()

	dataPath := filepath.Join(t.TempDir(), "data")
	cfg := fs.Config{Path: dataPath}
	for _, opt := range opts {
		opt(&cfg)
	}
	return fs.NewMedium(cfg), dataPath
}

func TestInitialize(t *testing.T) {
	t.Run("Creates Directory if Missing", func(t *testing.T) {
		m, path := setupMedium(t)

		if err := m.Initialize(); err != nil {
			t.Fatalf("Initialize failed: %v", err)
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			t.Errorf("expected directory to be created at %s", path)
		}
	})

	t.Run("Fails if MustExist and Missing", func(t *testing.T) {
		m, _ := setupMedium(t, func(c *fs.Config) { c.MustExist = true })

		if err := m.Initialize(); err == nil {
			t.Error("expected error for missing directory, got nil")
		}
	})

	t.Run("Read-Only Does Not Create Directory", func(t *testing.T) {
		m, path := setupMedium(t, func(c *fs.Config) { c.ReadOnly = true })

		if err := m.Initialize(); err != nil {
			t.Fatalf("Initialize failed: %v", err)
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Errorf("read-only medium should not create %s", path)
		}
	})
}

func TestGetSet(t *testing.T) {
	m, path := setupMedium(t)
	if err := m.Initialize(); err != nil {
		t.Fatal(err)
	}

	t.Run("Missing Key Is Absent", func(t *testing.T) {
		_, ok, err := m.Get("employees")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if ok {
			t.Error("expected absent value")
		}
	})

	t.Run("Round Trip", func(t *testing.T) {
		if err := m.Set("employees", `[{"id":1}]`); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		got, ok, err := m.Get("employees")
		if err != nil || !ok {
			t.Fatalf("Get failed: ok=%v err=%v", ok, err)
		}
		if got != `[{"id":1}]` {
			t.Errorf("unexpected value %q", got)
		}
		if _, err := os.Stat(filepath.Join(path, "employees.json")); err != nil {
			t.Errorf("expected value file: %v", err)
		}
	})

	t.Run("Overwrite Leaves No Temp Files", func(t *testing.T) {
		if err := m.Set("employees", `[]`); err != nil {
			t.Fatal(err)
		}
		entries, err := os.ReadDir(path)
		if err != nil {
			t.Fatal(err)
		}
		for _, e := range entries {
			if filepath.Ext(e.Name()) != fs.Ext {
				t.Errorf("unexpected file left behind: %s", e.Name())
			}
		}
	})

	t.Run("Rejects Invalid Keys", func(t *testing.T) {
		for _, key := range []string{"", "../escape", "Upper", "a/b", "dot.key"} {
			if err := m.Set(key, "x"); !errors.Is(err, core.ErrInvalidKey) {
				t.Errorf("Set(%q): expected ErrInvalidKey, got %v", key, err)
			}
		}
	})
}

func TestKeysAndDelete(t *testing.T) {
	m, path := setupMedium(t)
	if err := m.Initialize(); err != nil {
		t.Fatal(err)
	}

	for _, key := range []string{"tests", "employers", "user_activities"} {
		if err := m.Set(key, "[]"); err != nil {
			t.Fatal(err)
		}
	}
	// Foreign and temp files are ignored.
	os.WriteFile(filepath.Join(path, "notes.txt"), []byte("x"), 0644)
	os.WriteFile(filepath.Join(path, fs.TempFilePrefix+"123"), []byte("x"), 0644)

	keys, err := m.Keys()
	if err != nil {
		t.Fatalf("Keys failed: %v", err)
	}
	want := []string{"employers", "tests", "user_activities"}
	if len(keys) != len(want) {
		t.Fatalf("expected %v, got %v", want, keys)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("expected %v, got %v", want, keys)
		}
	}

	if err := m.Delete("tests"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := m.Delete("tests"); err != nil {
		t.Errorf("deleting a missing key should succeed, got %v", err)
	}
	if _, ok, _ := m.Get("tests"); ok {
		t.Error("expected tests to be gone")
	}
}

func TestReadOnly(t *testing.T) {
	m, path := setupMedium(t, func(c *fs.Config) { c.ReadOnly = true })
	if err := os.MkdirAll(path, 0755); err != nil {
		t.Fatal(err)
	}
	os.WriteFile(filepath.Join(path, "tests.json"), []byte("[]"), 0644)

	if _, ok, err := m.Get("tests"); err != nil || !ok {
		t.Fatalf("reads should work in read-only mode: ok=%v err=%v", ok, err)
	}
	if err := m.Set("tests", "[1]"); !errors.Is(err, core.ErrReadOnly) {
		t.Errorf("expected ErrReadOnly, got %v", err)
	}
	if err := m.Delete("tests"); !errors.Is(err, core.ErrReadOnly) {
		t.Errorf("expected ErrReadOnly, got %v", err)
	}
}

func TestState(t *testing.T) {
	m, path := setupMedium(t)
	if err := m.Initialize(); err != nil {
		t.Fatal(err)
	}
	_ = m.Set("tests", "[]")

	state, ok := m.State().(fs.MediumState)
	if !ok {
		t.Fatalf("unexpected state type %T", m.State())
	}
	if state.Path != path || state.Writes != 1 || state.LastWrite == nil {
		t.Errorf("unexpected state: %+v", state)
	}
	if m.ComponentType() != "fs-medium" {
		t.Errorf("unexpected component type %q", m.ComponentType())
	}
}
