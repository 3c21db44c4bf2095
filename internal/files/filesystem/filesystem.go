package filesystem

import (
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
type FileInfo = fs.FileInfo

// DirEntry is an alias for fs.DirEntry from the standard library.
type DirEntry = fs.DirEntry

// FileSystemProvider is the set of filesystem operations migembed needs.
// Missing paths are reported with errors matching fs.ErrNotExist.
type FileSystemProvider interface {
	// ReadDir returns the direct entries of a directory in the provider's
	// iteration order. Entry metadata is resolved lazily through DirEntry.Info,
	// which may fail for individual entries.
	ReadDir(path string) ([]DirEntry, error)

	// ReadFile reads a specific file at the given path
	ReadFile(path string) ([]byte, error)

	// Stat returns file information for the given path
	Stat(path string) (FileInfo, error)

	// WriteFile replaces the file at path with data, creating parent
	// directories as needed. If it fails, the previous content is left intact.
	WriteFile(path string, data []byte, perm fs.FileMode) error
}
