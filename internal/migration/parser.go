package migration

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vvka-141/migembed/internal/files/filesystem"
	"github.com/vvka-141/migembed/pkg/migembed"
)

// Parser builds migration descriptors from files.
type Parser struct {
	fsProvider filesystem.FileSystemProvider
}

// NewParser creates a parser reading through fsProvider.
// Panics if fsProvider is nil.
func NewParser(fsProvider filesystem.FileSystemProvider) *Parser {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return &Parser{fsProvider: fsProvider}
}

// ParseFilename extracts version and description from a base filename.
func ParseFilename(name string) (int64, string, error) {
	prefix, rest, found := strings.Cut(name, migembed.VersionSeparator)
	if !found {
		return 0, "", fmt.Errorf("%w: %q has no %q separator", migembed.ErrInvalidFilename, name, migembed.VersionSeparator)
	}

	version, err := strconv.ParseInt(prefix, 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("%w: %q: %w", migembed.ErrInvalidVersion, prefix, err)
	}

	return version, strings.TrimSuffix(rest, migembed.MigrationExtension), nil
}

// Parse reads the file at path and returns its descriptor.
// Failures are *ParseError values matching ErrInvalidFilename,
// ErrInvalidVersion or ErrFileUnreadable with errors.Is.
func (p *Parser) Parse(path string) (migembed.Migration, error) {
	version, description, err := ParseFilename(filepath.Base(path))
	if err != nil {
		return migembed.Migration{}, &ParseError{Path: path, Err: err}
	}

	content, err := p.fsProvider.ReadFile(path)
	if err != nil {
		return migembed.Migration{}, &ParseError{
			Path: path,
			Err:  fmt.Errorf("%w: %w", migembed.ErrFileUnreadable, err),
		}
	}

	return migembed.Migration{
		Version:     version,
		Description: description,
		SQL:         string(content),
		Kind:        migembed.MigrationKindUp,
	}, nil
}

// ParseAll parses paths in order and stops at the first failure.
func (p *Parser) ParseAll(paths []string) ([]migembed.Migration, error) {
	migrations := make([]migembed.Migration, 0, len(paths))
	for _, path := range paths {
		m, err := p.Parse(path)
		if err != nil {
			return nil, err
		}
		migrations = append(migrations, m)
	}
	return migrations, nil
}
