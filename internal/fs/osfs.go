package fs

import (
	"context"
	"os"
	"path/filepath"
)

// OSFS is the concrete implementation of FS backed by the local OS filesystem.
// Platform-specific details (such as creation time) are handled in build-tagged files.
type OSFS struct{}

func New() *OSFS {
	return &OSFS{}
}

func (o *OSFS) Stat(path string) (FileInfo, error) {
	st, err := os.Stat(path)
	if err != nil {
		return FileInfo{}, err
	}
	return fromOS(path, st), nil
}

// ReadDir lists the immediate children of path, sorted by name.
func (o *OSFS) ReadDir(path string) ([]FileInfo, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}

	infos := make([]FileInfo, 0, len(entries))
	for _, e := range entries {
		st, err := e.Info()
		if err != nil {
			// removed between ReadDir and Info
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		infos = append(infos, fromOS(filepath.Join(path, e.Name()), st))
	}
	return infos, nil
}

func (o *OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (o *OSFS) WriteFileAtomic(ctx context.Context, path string, data []byte) error {
	return writeAtomic(ctx, path, data)
}

func (o *OSFS) MkdirAll(path string) error {
	return os.MkdirAll(path, 0o755)
}

func (o *OSFS) RemoveAll(path string) error {
	return os.RemoveAll(path)
}

func fromOS(path string, st os.FileInfo) FileInfo {
	return FileInfo{
		Path:    path,
		Name:    st.Name(),
		Size:    st.Size(),
		MTime:   st.ModTime(),
		Created: createdAt(st),
		IsDir:   st.IsDir(),
	}
}
