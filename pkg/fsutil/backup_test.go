package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/gramlint/pkg/fsutil"
)

func TestWriteBackup(t *testing.T) {
	t.Parallel()

	t.Run("writes sidecar next to the file", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()
		path := filepath.Join(t.TempDir(), "doc.md")

		written, err := fsutil.WriteBackup(ctx, path, []byte("original"), 0o644)
		if err != nil {
			t.Fatalf("WriteBackup() error = %v", err)
		}
		if !written {
			t.Error("expected written = true")
		}

		content, err := os.ReadFile(path + fsutil.BackupSuffix)
		if err != nil {
			t.Fatalf("read backup: %v", err)
		}
		if string(content) != "original" {
			t.Errorf("backup content = %q, want %q", content, "original")
		}
	})

	t.Run("does not overwrite an existing backup", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()
		path := filepath.Join(t.TempDir(), "doc.md")

		if _, err := fsutil.WriteBackup(ctx, path, []byte("first"), 0o644); err != nil {
			t.Fatalf("WriteBackup() error = %v", err)
		}

		written, err := fsutil.WriteBackup(ctx, path, []byte("second"), 0o644)
		if err != nil {
			t.Fatalf("WriteBackup() error = %v", err)
		}
		if written {
			t.Error("expected written = false for existing backup")
		}

		content, err := os.ReadFile(path + fsutil.BackupSuffix)
		if err != nil {
			t.Fatalf("read backup: %v", err)
		}
		if string(content) != "first" {
			t.Errorf("backup content = %q, want %q", content, "first")
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		path := filepath.Join(t.TempDir(), "doc.md")

		if _, err := fsutil.WriteBackup(ctx, path, []byte("original"), 0o644); err == nil {
			t.Error("expected error for cancelled context")
		}
	})
}
