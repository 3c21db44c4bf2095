package services

import (
	"context"
	"sort"
	"time"

	"github.com/vvka-141/migembed/internal/checksum"
	"github.com/vvka-141/migembed/internal/codegen"
	"github.com/vvka-141/migembed/internal/files/filesystem"
	"github.com/vvka-141/migembed/internal/migration"
	"github.com/vvka-141/migembed/internal/staleness"
	"github.com/vvka-141/migembed/pkg/migembed"
)

// GenerationResult describes what a Generate or Check call did.
type GenerationResult struct {
	// ArtifactPath is the resolved path of the generated file
	ArtifactPath string

	// Stale reports whether the generated file was out of date
	Stale bool

	// Reason explains the staleness decision
	Reason string

	// Generated reports whether the file was written
	Generated bool

	// Migrations is the number of entries written
	Migrations int

	// DuplicateVersions lists versions shared by more than one file
	DuplicateVersions []int64
}

// GenerationService runs the check, scan, parse and write pipeline.
// Thread-Safety: safe for concurrent calls targeting different artifacts.
type GenerationService struct {
	fsProvider  filesystem.FileSystemProvider
	fileScanner migembed.FileScanner
	calculator  checksum.Calculator
	logger      migembed.Logger

	// Now supplies the generation timestamp. Defaults to time.Now.
	Now func() time.Time
}

// NewGenerationService creates a GenerationService with all dependencies injected.
// Panics on nil dependencies.
func NewGenerationService(
	fsProvider filesystem.FileSystemProvider,
	fileScanner migembed.FileScanner,
	calculator checksum.Calculator,
	logger migembed.Logger,
) *GenerationService {
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
		panic("logger cannot be nil")
	}
	return &GenerationService{
		fsProvider:  fsProvider,
		fileScanner: fileScanner,
		calculator:  calculator,
		logger:      logger,
		Now:         time.Now,
	}
}

// Check reports whether the generated file is stale without writing anything.
func (s *GenerationService) Check(ctx context.Context, cfg migembed.GenerationConfig) (GenerationResult, error) {
	if err := cfg.Validate(); err != nil {
		return GenerationResult{}, err
	}
	if err := ctx.Err(); err != nil {
		return GenerationResult{}, err
	}

	cfg = cfg.WithDefaults()
	result := GenerationResult{ArtifactPath: cfg.ArtifactPath()}

	detector := staleness.NewDetector(s.fsProvider, s.fileScanner, s.calculator, s.logger)
	decision := detector.Check(cfg.MigrationsDir, result.ArtifactPath, generatorOptions(cfg))
	result.Stale = decision.Regenerate
	result.Reason = decision.Reason
	return result, nil
}

// Generate regenerates the artifact when it is stale, or always when cfg.Force is set.
// Parsing stops at the first bad file; nothing is written in that case.
func (s *GenerationService) Generate(ctx context.Context, cfg migembed.GenerationConfig) (GenerationResult, error) {
	result, err := s.Check(ctx, cfg)
	if err != nil {
		return result, err
	}
	cfg = cfg.WithDefaults()

	s.logger.Verbose("Source directory: %s", cfg.MigrationsDir)
	s.logger.Verbose("Generated file: %s", result.ArtifactPath)

	if !result.Stale && !cfg.Force {
		s.logger.Info("No need to regenerate %s (%s)", result.ArtifactPath, result.Reason)
		return result, nil
	}
	if cfg.Force && !result.Stale {
		s.logger.Verbose("Regenerating up-to-date file because force is set")
	}

	entries, err := s.collect(ctx, cfg)
	if err != nil {
		s.logger.Error("Failed to collect migrations from %s: %v", cfg.MigrationsDir, err)
		return result, err
	}

	result.DuplicateVersions = migembed.DuplicateVersions(entryMigrations(entries))
	for _, v := range result.DuplicateVersions {
		s.logger.Warn("Migration version %d is used by more than one file", v)
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}

	gen := codegen.NewGenerator(s.fsProvider, s.calculator, generatorOptions(cfg))
	gen.Now = s.Now
	if err := gen.Generate(result.ArtifactPath, entries); err != nil {
		s.logger.Error("Failed to generate %s: %v", result.ArtifactPath, err)
		return result, err
	}

	result.Generated = true
	result.Migrations = len(entries)
	s.logger.Info("Generated %s with %d migrations", result.ArtifactPath, len(entries))
	return result, nil
}

// collect scans, parses and orders the migration sources.
func (s *GenerationService) collect(ctx context.Context, cfg migembed.GenerationConfig) ([]codegen.Entry, error) {
	files, err := s.fileScanner.ListSQLFiles(cfg.MigrationsDir)
	if err != nil {
		return nil, err
	}
	s.logger.Verbose("Found %d migration files", len(files))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.Path
	}
	migrations, err := migration.NewParser(s.fsProvider).ParseAll(paths)
	if err != nil {
		return nil, err
	}

	entries := make([]codegen.Entry, len(files))
	for i := range files {
		entries[i] = codegen.Entry{Source: files[i].Name, Migration: migrations[i]}
		s.logger.Verbose("  %s -> version %d %q", files[i].Name, migrations[i].Version, migrations[i].Description)
	}

	if cfg.Order == migembed.OrderVersion {
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Migration.Version < entries[j].Migration.Version
		})
	}
	return entries, nil
}

func generatorOptions(cfg migembed.GenerationConfig) codegen.Options {
	return codegen.Options{
		PackageName: cfg.PackageName,
		FuncName:    cfg.FuncName,
		ImportPath:  cfg.ImportPath,
		Order:       cfg.Order,
	}
}

func entryMigrations(entries []codegen.Entry) []migembed.Migration {
	out := make([]migembed.Migration, len(entries))
	for i, e := range entries {
		out[i] = e.Migration
	}
	return out
}
