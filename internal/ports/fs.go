package ports

import "io/fs"

// FileSystem is the storage the backlog store reads and moves files through
type FileSystem interface {
	ReadDir(path string) ([]fs.DirEntry, error)
	ReadFile(path string) ([]byte, error)

	// WriteFile replaces path in one step; readers never see a partial file
	WriteFile(path string, data []byte) error

	Rename(oldPath, newPath string) error
	MkdirAll(path string) error
	Remove(path string) error
	Exists(path string) (bool, error)
}
