package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vvka-141/migembed/internal/checksum"
	"github.com/vvka-141/migembed/internal/config"
	"github.com/vvka-141/migembed/internal/files/filesystem"
	"github.com/vvka-141/migembed/internal/files/scanner"
	"github.com/vvka-141/migembed/internal/logging"
	"github.com/vvka-141/migembed/internal/services"
	"github.com/vvka-141/migembed/pkg/migembed"
)

// pathFlags holds the directory flags shared by generate and check.
type pathFlags struct {
	migrationsDir string
	projectDir    string
}

func addPathFlags(cmd *cobra.Command, flags *pathFlags) {
	cmd.Flags().StringVar(&flags.migrationsDir, "migrations-dir", "",
		"Directory containing <version>-<description>.sql files (env: "+migembed.EnvMigrationsDir+")")
	cmd.Flags().StringVar(&flags.projectDir, "project-dir", "",
		"Project root the generated file is written under (env: "+migembed.EnvProjectDir+")")
}

// resolveGenerationConfig merges inputs.
// Priority (highest to lowest): CLI flags > environment (.env included) > migembed.yaml
func resolveGenerationConfig(flags pathFlags, verbose bool) (migembed.GenerationConfig, error) {
	cfg := migembed.GenerationConfig{
		MigrationsDir: flags.migrationsDir,
		ProjectDir:    flags.projectDir,
	}

	_ = godotenv.Load()
	config.FromEnv(&cfg, os.Getenv)

	if cfg.ProjectDir != "" {
		projectCfg, err := loadProjectConfig(cfg.ProjectDir)
		if err != nil {
			return cfg, err
		}
		if projectCfg != nil && verbose {
			fmt.Fprintf(os.Stderr, "[VERBOSE] Using %s from %s\n", config.ConfigFileName, cfg.ProjectDir)
		}
		projectCfg.Apply(&cfg, cfg.ProjectDir)
	}

	return cfg, nil
}

// loadProjectConfig loads migembed.yaml.
// Returns nil config if migembed.yaml does not exist (not an error).
func loadProjectConfig(projectDir string) (*config.ProjectConfig, error) {
	projectCfg, err := config.Load(projectDir)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load %s: %w", config.ConfigFileName, err)
	}
	return projectCfg, nil
}

// newGenerationService wires the service against the real filesystem.
func newGenerationService(logger migembed.Logger) *services.GenerationService {
	fsProvider := filesystem.NewOSFileSystem()
	return services.NewGenerationService(
		fsProvider,
		scanner.NewScannerWithFS(fsProvider),
		checksum.New(),
		logger,
	)
}

func newLogger(verbose bool) migembed.Logger {
	return logging.NewConsoleLogger(verbose)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
