package staleness

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/vvka-141/migembed/internal/checksum"
	"github.com/vvka-141/migembed/internal/codegen"
	"github.com/vvka-141/migembed/internal/files/filesystem"
	"github.com/vvka-141/migembed/internal/logging"
	"github.com/vvka-141/migembed/pkg/migembed"
)

// Decision is the outcome of a staleness check.
type Decision struct {
	Regenerate bool
	Reason     string
}

func regenerate(format string, args ...interface{}) Decision {
	return Decision{Regenerate: true, Reason: fmt.Sprintf(format, args...)}
}

// Detector compares migration sources against a generated file.
type Detector struct {
	fsProvider filesystem.FileSystemProvider
	scanner    migembed.FileScanner
	calculator checksum.Calculator
	logger     migembed.Logger
}

// NewDetector creates a detector that lists sources with fileScanner.
// A nil logger discards messages.
// Panics if fsProvider, fileScanner or calculator is nil.
func NewDetector(
	fsProvider filesystem.FileSystemProvider,
	fileScanner migembed.FileScanner,
	calculator checksum.Calculator,
	logger migembed.Logger,
) *Detector {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if fileScanner == nil {
		panic("fileScanner cannot be nil")
	}
	if calculator == nil {
		panic("calculator cannot be nil")
	}
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Detector{
		fsProvider: fsProvider,
		scanner:    fileScanner,
		calculator: calculator,
		logger:     logger,
	}
}

// Check reports whether the file at artifactPath must be regenerated from
// sourceDir with opts. It never fails: anything it cannot determine means regenerate.
func (d *Detector) Check(sourceDir, artifactPath string, opts codegen.Options) Decision {
	decision := d.check(sourceDir, artifactPath, opts.WithDefaults())
	d.logger.Verbose("Staleness of %s: regenerate=%t (%s)", artifactPath, decision.Regenerate, decision.Reason)
	return decision
}

func (d *Detector) check(sourceDir, artifactPath string, opts codegen.Options) Decision {
	artifactInfo, err := d.fsProvider.Stat(artifactPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return regenerate("generated file does not exist")
		}
		return regenerate("cannot stat generated file: %v", err)
	}

	files, err := d.scanner.ListSQLFiles(sourceDir)
	if err != nil {
		d.logger.Warn("Cannot read migrations directory %s, regenerating: %v", sourceDir, err)
		return regenerate("migrations directory unreadable")
	}

	content, err := d.fsProvider.ReadFile(artifactPath)
	if err != nil {
		return regenerate("cannot read generated file: %v", err)
	}

	manifest, err := codegen.ReadManifest(content)
	var entries int
	switch {
	case err == nil:
		entries = len(manifest.Files)
	case errors.Is(err, codegen.ErrNoManifest):
		entries = codegen.CountEntries(content)
	default:
		d.logger.Warn("Ignoring unreadable manifest in %s: %v", artifactPath, err)
		manifest = nil
		entries = codegen.CountEntries(content)
	}

	if len(files) != entries {
		return regenerate("%d .sql files but %d generated entries", len(files), entries)
	}

	artifactTime := artifactInfo.ModTime()
	for _, f := range files {
		if f.ModTime.After(artifactTime) {
			return regenerate("%s is newer than the generated file", f.Name)
		}
	}

	if manifest == nil {
		return Decision{Reason: "up to date (no manifest, checked count and modification times)"}
	}

	if manifest.Options != opts {
		return regenerate("generation options changed")
	}

	recorded := manifest.Checksums()
	for _, f := range files {
		sum, ok := recorded[f.Name]
		if !ok {
			return regenerate("%s is not in the manifest", f.Name)
		}
		data, err := d.fsProvider.ReadFile(f.Path)
		if err != nil {
			return regenerate("cannot read %s: %v", f.Name, err)
		}
		if d.calculator.Sum(data) != sum {
			return regenerate("%s content changed", f.Name)
		}
	}

	return Decision{Reason: "up to date"}
}
