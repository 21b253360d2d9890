package fs

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestOSFilesystem_StatAndReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(path, []byte("hello"), 0644); err != nil {
		t.Fatalf("writing test file: %v", err)
	}

	m := NewOSFilesystem()

	info, err := m.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if info.Size() != 5 {
		t.Errorf("Stat().Size() = %d, want 5", info.Size())
	}

	data, err := m.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("ReadFile() = %q, want %q", data, "hello")
	}

	if _, err := m.Stat(filepath.Join(dir, "missing")); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Stat(missing) error = %v, want fs.ErrNotExist", err)
	}
}

func TestOSFilesystem_Remove(t *testing.T) {
	t.Run("removes a single file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "a.txt")
		if err := os.WriteFile(path, nil, 0644); err != nil {
			t.Fatalf("writing test file: %v", err)
		}

		if err := NewOSFilesystem().Remove(path); err != nil {
			t.Fatalf("Remove() error = %v", err)
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Errorf("file still present after Remove()")
		}
	})

	t.Run("refuses a non-empty directory", func(t *testing.T) {
		dir := t.TempDir()
		sub := filepath.Join(dir, "sub")
		if err := os.MkdirAll(sub, 0755); err != nil {
			t.Fatalf("creating dir: %v", err)
		}
		if err := os.WriteFile(filepath.Join(sub, "x"), nil, 0644); err != nil {
			t.Fatalf("writing test file: %v", err)
		}

		if err := NewOSFilesystem().Remove(sub); err == nil {
			t.Error("Remove() on non-empty directory succeeded, want error")
		}
	})

	t.Run("RemoveAll removes a tree", func(t *testing.T) {
		dir := t.TempDir()
		sub := filepath.Join(dir, "sub", "nested")
		if err := os.MkdirAll(sub, 0755); err != nil {
			t.Fatalf("creating dir: %v", err)
		}
		if err := os.WriteFile(filepath.Join(sub, "x"), []byte("x"), 0644); err != nil {
			t.Fatalf("writing test file: %v", err)
		}

		if err := NewOSFilesystem().RemoveAll(filepath.Join(dir, "sub")); err != nil {
			t.Fatalf("RemoveAll() error = %v", err)
		}
		if _, err := os.Stat(filepath.Join(dir, "sub")); !os.IsNotExist(err) {
			t.Errorf("tree still present after RemoveAll()")
		}
	})
}

func TestOSFilesystem_ExtractStatData(t *testing.T) {
	switch runtime.GOOS {
	case "linux", "openbsd", "dragonfly", "darwin", "freebsd", "netbsd":
	default:
		t.Skipf("stat data not extracted on %s", runtime.GOOS)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("writing test file: %v", err)
	}

	m := NewOSFilesystem()
	info, err := m.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}

	stat, err := m.ExtractStatData(info)
	if err != nil {
		t.Fatalf("ExtractStatData() error = %v", err)
	}
	if stat.UID != int64(os.Getuid()) {
		t.Errorf("UID = %d, want %d", stat.UID, os.Getuid())
	}
	if stat.Atime.IsZero() || stat.Ctime.IsZero() {
		t.Errorf("Atime = %v, Ctime = %v, want both set", stat.Atime, stat.Ctime)
	}
	if stat.BirthTime.Valid {
		t.Error("BirthTime should not be valid")
	}
}
