package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// writes data next to its destination and renames it into place,
// so a failed write never leaves a truncated file at path.

func writeAtomic(ctx context.Context, path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-"+filepath.Base(path)+"-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if err := writeAndSync(tmp, data); err != nil {
		_ = os.Remove(tmpName)
		return err
	}

	if err := renameWithRetry(ctx, tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}

func writeAndSync(f *os.File, data []byte) error {
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing %s: %w", f.Name(), err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("syncing %s: %w", f.Name(), err)
	}
	if err := f.Chmod(0o644); err != nil {
		_ = f.Close()
		return fmt.Errorf("chmod %s: %w", f.Name(), err)
	}
	return f.Close()
}
