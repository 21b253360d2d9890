package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecorder_Operation(t *testing.T) {
	r := NewRecorder()

	r.Operation("hash", nil)
	r.Operation("hash", nil)
	r.Operation("hash", errors.New("boom"))
	r.Operation("rm", nil)

	if got := testutil.ToFloat64(r.OperationsTotal.WithLabelValues("hash", ResultOK)); got != 2 {
		t.Errorf("hash ok = %v, want 2", got)
	}
	if got := testutil.ToFloat64(r.OperationsTotal.WithLabelValues("hash", ResultError)); got != 1 {
		t.Errorf("hash error = %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.OperationsTotal.WithLabelValues("rm", ResultOK)); got != 1 {
		t.Errorf("rm ok = %v, want 1", got)
	}
}

func TestRecorder_HashedAndRemoved(t *testing.T) {
	r := NewRecorder()

	r.Hashed(10)
	r.Hashed(0)
	r.Hashed(-1)
	r.Hashed(5)
	r.Removed("file")
	r.Removed("directory")
	r.Removed("file")

	if got := testutil.ToFloat64(r.BytesHashedTotal); got != 15 {
		t.Errorf("BytesHashedTotal = %v, want 15", got)
	}
	if got := testutil.ToFloat64(r.RemovedTotal.WithLabelValues("file")); got != 2 {
		t.Errorf("RemovedTotal{file} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(r.RemovedTotal.WithLabelValues("directory")); got != 1 {
		t.Errorf("RemovedTotal{directory} = %v, want 1", got)
	}
}

func TestRecorder_RecordersAreIsolated(t *testing.T) {
	a := NewRecorder()
	b := NewRecorder()
	a.Hashed(100)

	if got := testutil.ToFloat64(b.BytesHashedTotal); got != 0 {
		t.Errorf("second recorder saw %v bytes, want 0", got)
	}
}

func TestRecorder_WriteTextfile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fid.prom")

	r := NewRecorder()
	r.Operation("match", nil)
	r.Hashed(42)

	now := time.Date(2024, 6, 15, 14, 30, 45, 0, time.UTC)
	if err := r.WriteTextfile(path, now); err != nil {
		t.Fatalf("WriteTextfile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading textfile: %v", err)
	}
	got := string(data)

	for _, want := range []string{
		`fid_operations_total{operation="match",result="ok"} 1`,
		`fid_bytes_hashed_total 42`,
		`fid_last_run_timestamp_seconds 1.718461845e+09`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("textfile missing %q\n%s", want, got)
		}
	}
}

func TestRecorder_WriteTextfile_BadPath(t *testing.T) {
	r := NewRecorder()
	err := r.WriteTextfile(filepath.Join(t.TempDir(), "missing", "dir", "fid.prom"), time.Now())
	if err == nil {
		t.Fatal("WriteTextfile() expected error for missing directory")
	}
}
