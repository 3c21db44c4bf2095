package migembed

import "time"

// FileScanner defines the interface for discovering migration source files.
// Implementations must be safe for concurrent use by multiple goroutines.
type FileScanner interface {
	// ListSQLFiles lists the .sql files directly inside dir.
	ListSQLFiles(dir string) ([]SourceFile, error)
}

// SourceFile describes one discovered migration file.
type SourceFile struct {
	// Path is dir joined with Name
	Path string

	// Name is the base filename, e.g. "1-init.sql"
	Name string

	// ModTime is the file's last modification time
	ModTime time.Time

	// SizeBytes is the file size in bytes
	SizeBytes int64
}
