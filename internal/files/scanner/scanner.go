package scanner

import (
	"fmt"
	"path/filepath"

	"github.com/vvka-141/migembed/internal/files/filesystem"
	"github.com/vvka-141/migembed/pkg/migembed"
)

// Scanner discovers .sql files in a migrations directory.
// Scanner is safe for concurrent use by multiple goroutines as long as
// the provided fsProvider is also thread-safe.
type Scanner struct {
	fsProvider filesystem.FileSystemProvider
}

// NewScannerWithFS creates a new file scanner with a custom filesystem provider.
// This is primarily useful for testing with in-memory filesystems.
// Panics if fsProvider is nil.
func NewScannerWithFS(fsProvider filesystem.FileSystemProvider) *Scanner {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return &Scanner{
		fsProvider: fsProvider,
	}
}

// ListSQLFiles returns the .sql files directly inside dir, in provider order.
// A directory that cannot be listed yields an error wrapping
// migembed.ErrDirectoryUnreadable.
func (s *Scanner) ListSQLFiles(dir string) ([]migembed.SourceFile, error) {
	entries, err := s.fsProvider.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", migembed.ErrDirectoryUnreadable, dir, err)
	}

	files := make([]migembed.SourceFile, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !IsMigrationFile(entry.Name()) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			// removed or unreadable between listing and stat
			continue
		}

		files = append(files, migembed.SourceFile{
			Path:      filepath.Join(dir, entry.Name()),
			Name:      entry.Name(),
			ModTime:   info.ModTime(),
			SizeBytes: info.Size(),
		})
	}

	return files, nil
}

// IsMigrationFile reports whether name has exactly the ".sql" extension.
// ".SQL" and ".sql.bak" do not match.
func IsMigrationFile(name string) bool {
	return filepath.Ext(name) == migembed.MigrationExtension
}

// Verify Scanner implements the interface at compile time
var _ migembed.FileScanner = (*Scanner)(nil)
