package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRotatingFileWriterRotates(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "server.log")

	w, err := NewRotatingFileWriter(path, 20, 2)
	if err != nil {
		t.Fatalf("NewRotatingFileWriter: %v", err)
	}
	defer w.Close()

	line := []byte(strings.Repeat("a", 15) + "\n")
	for i := 0; i < 3; i++ {
		if _, err := w.Write(line); err != nil {
			t.Fatalf("write %d: %v", i, err)
		}
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("active log file missing: %v", err)
	}
	if _, err := os.Stat(path + ".1"); err != nil {
		t.Fatalf("first backup missing: %v", err)
	}
}

func TestRotatingFileWriterDropsOldestBackup(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "server.log")

	w, err := NewRotatingFileWriter(path, 10, 1)
	if err != nil {
		t.Fatalf("NewRotatingFileWriter: %v", err)
	}
	defer w.Close()

	line := []byte(strings.Repeat("b", 9) + "\n")
	for i := 0; i < 4; i++ {
		if _, err := w.Write(line); err != nil {
			t.Fatalf("write %d: %v", i, err)
		}
	}

	if _, err := os.Stat(path + ".2"); !os.IsNotExist(err) {
		t.Fatalf("backup beyond the limit exists: %v", err)
	}
}

func TestRotatingFileWriterClosed(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "server.log")
	w, err := NewRotatingFileWriter(path, 100, 1)
	if err != nil {
		t.Fatalf("NewRotatingFileWriter: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := w.Write([]byte("late")); err == nil {
		t.Fatal("write after close should fail")
	}
}

func TestRotatingFileWriterRejectsBadConfig(t *testing.T) {
	t.Parallel()

	if _, err := NewRotatingFileWriter("", 100, 1); err == nil {
		t.Fatal("empty path should be rejected")
	}
	if _, err := NewRotatingFileWriter(filepath.Join(t.TempDir(), "x.log"), 0, 1); err == nil {
		t.Fatal("zero size limit should be rejected")
	}
}
