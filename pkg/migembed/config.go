package migembed

import (
	"errors"
	"fmt"
	"go/token"
	"path/filepath"
)

// GenerationConfig contains all parameters needed for one generation run.
type GenerationConfig struct {
	// MigrationsDir is the directory holding <version>-<description>.sql files
	MigrationsDir string

	// ProjectDir is the root the artifact path is resolved against
	ProjectDir string

	// OutputDir is the artifact directory relative to ProjectDir
	OutputDir string

	// OutputFile is the artifact filename
	OutputFile string

	// PackageName is the package clause of the generated file
	PackageName string

	// FuncName is the name of the generated function
	FuncName string

	// ImportPath is the package providing the Migration record type
	ImportPath string

	// Order is OrderVersion or OrderDirectory
	Order string

	// Force regenerates even when the artifact is up to date
	Force bool
}

// WithDefaults returns a copy with every empty optional field set to its default.
func (c GenerationConfig) WithDefaults() GenerationConfig {
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
	if c.OutputFile == "" {
		c.OutputFile = DefaultOutputFile
	}
	if c.PackageName == "" {
		c.PackageName = DefaultPackageName
	}
	if c.FuncName == "" {
		c.FuncName = DefaultFuncName
	}
	if c.ImportPath == "" {
		c.ImportPath = DefaultImportPath
	}
	if c.Order == "" {
		c.Order = OrderVersion
	}
	return c
}

// Validate checks required inputs first. If either path is missing it returns
// ErrConfigMissing and nothing else is checked.
func (c *GenerationConfig) Validate() error {
	var missing []error
	if c.MigrationsDir == "" {
		missing = append(missing, fmt.Errorf("migrations directory (%s) is required: %w", EnvMigrationsDir, ErrConfigMissing))
	}
	if c.ProjectDir == "" {
		missing = append(missing, fmt.Errorf("project directory (%s) is required: %w", EnvProjectDir, ErrConfigMissing))
	}
	if len(missing) > 0 {
		return errors.Join(missing...)
	}

	var errs []error
	if c.Order != "" && c.Order != OrderVersion && c.Order != OrderDirectory {
		errs = append(errs, fmt.Errorf("order must be %q or %q, got %q: %w", OrderVersion, OrderDirectory, c.Order, ErrInvalidConfig))
	}
	if c.PackageName != "" && !token.IsIdentifier(c.PackageName) {
		errs = append(errs, fmt.Errorf("package name %q is not a Go identifier: %w", c.PackageName, ErrInvalidConfig))
	}
	if c.FuncName != "" && !token.IsExported(c.FuncName) {
		errs = append(errs, fmt.Errorf("function name %q must be an exported Go identifier: %w", c.FuncName, ErrInvalidConfig))
	}
	if filepath.IsAbs(c.OutputDir) {
		errs = append(errs, fmt.Errorf("output directory %q must be relative to the project directory: %w", c.OutputDir, ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// ArtifactPath joins ProjectDir, OutputDir and OutputFile.
func (c *GenerationConfig) ArtifactPath() string {
	d := c.WithDefaults()
	return filepath.Join(d.ProjectDir, d.OutputDir, d.OutputFile)
}
