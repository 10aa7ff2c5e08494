// Package fs defines the filesystem abstraction used by ddl-archiver.
// It provides the FS interface and the FileInfo type shared across the system.
package fs

import (
	"context"
	"time"
)

type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	MTime   time.Time
	Created time.Time
	IsDir   bool
}

type FS interface {
	Stat(path string) (FileInfo, error)
	ReadDir(path string) ([]FileInfo, error)
	ReadFile(path string) ([]byte, error)
	WriteFileAtomic(ctx context.Context, path string, data []byte) error
	MkdirAll(path string) error
	RemoveAll(path string) error
}
