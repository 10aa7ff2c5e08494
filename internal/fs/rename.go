package fs

import (
	"context"
	"os"
)

// renameWithRetry moves a finished temp file over its snapshot path,
// retrying transient errors such as a virus scanner holding the target.
func renameWithRetry(ctx context.Context, tmpPath, finalPath string) error {
	return retry(ctx, "rename "+finalPath, func() error {
		return os.Rename(tmpPath, finalPath)
	})
}
