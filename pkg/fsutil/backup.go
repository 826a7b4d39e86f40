package fsutil

import (
	"context"
	"fmt"
	"os"
)

// BackupSuffix is the suffix used for sidecar backup files.
const BackupSuffix = ".gramlint.bak"

// WriteBackup writes content to path's backup sidecar unless one already
// exists. Returns true if the backup was written.
//
// Existing backups are never overwritten, so repeated saves of the same
// file preserve the content from before the first one.
func WriteBackup(ctx context.Context, path string, content []byte, mode os.FileMode) (bool, error) {
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("write backup: %w", ctx.Err())
	default:
	}

	backupPath := path + BackupSuffix
	if _, err := os.Stat(backupPath); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat backup path: %w", err)
	}

	if err := WriteAtomic(ctx, backupPath, content, mode); err != nil {
		return false, fmt.Errorf("write backup: %w", err)
	}

	return true, nil
}
