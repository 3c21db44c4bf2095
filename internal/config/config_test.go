package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/migembed/pkg/migembed"
)

func TestLoad_AllFields(t *testing.T) {
	dir := t.TempDir()
	content := `migrations_dir: db/migrations
output:
  dir: internal/schema
  file: schema_gen.go
  package: schema
  func: All
import_path: example.com/app/migembed
order: directory
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "db/migrations", cfg.MigrationsDir)
	assert.Equal(t, "internal/schema", cfg.Output.Dir)
	assert.Equal(t, "schema_gen.go", cfg.Output.File)
	assert.Equal(t, "schema", cfg.Output.Package)
	assert.Equal(t, "All", cfg.Output.Func)
	assert.Equal(t, "example.com/app/migembed", cfg.ImportPath)
	assert.Equal(t, "directory", cfg.Order)
}

func TestLoad_MinimalYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("migrations_dir: sql\n"), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "sql", cfg.MigrationsDir)
	assert.Empty(t, cfg.Output.Dir)
	assert.Empty(t, cfg.Order)
}

func TestLoad_FileNotFound(t *testing.T) {
	cfg, err := Load(t.TempDir())
	assert.True(t, errors.Is(err, ErrConfigNotFound), "expected ErrConfigNotFound, got: %v", err)
	assert.Nil(t, cfg)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("{{invalid"), 0644))

	cfg, err := Load(dir)
	assert.True(t, errors.Is(err, migembed.ErrInvalidConfig), "got: %v", err)
	assert.Nil(t, cfg)
}

func TestApply_FillsOnlyEmptyFields(t *testing.T) {
	cfg := &ProjectConfig{
		MigrationsDir: "db/migrations",
		Output:        OutputConfig{Dir: "gen", File: "m.go", Package: "gen", Func: "All"},
		ImportPath:    "example.com/x",
		Order:         migembed.OrderDirectory,
	}
	gen := migembed.GenerationConfig{PackageName: "custom"}

	cfg.Apply(&gen, "/project")

	assert.Equal(t, filepath.Join("/project", "db/migrations"), gen.MigrationsDir)
	assert.Equal(t, "gen", gen.OutputDir)
	assert.Equal(t, "m.go", gen.OutputFile)
	assert.Equal(t, "custom", gen.PackageName)
	assert.Equal(t, "All", gen.FuncName)
	assert.Equal(t, "example.com/x", gen.ImportPath)
	assert.Equal(t, migembed.OrderDirectory, gen.Order)
}

func TestApply_KeepsExplicitMigrationsDir(t *testing.T) {
	cfg := &ProjectConfig{MigrationsDir: "other"}
	gen := migembed.GenerationConfig{MigrationsDir: "/explicit"}

	cfg.Apply(&gen, "/project")
	assert.Equal(t, "/explicit", gen.MigrationsDir)
}

func TestApply_AbsoluteMigrationsDir(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "sql")
	cfg := &ProjectConfig{MigrationsDir: abs}
	var gen migembed.GenerationConfig

	cfg.Apply(&gen, "/project")
	assert.Equal(t, abs, gen.MigrationsDir)
}

func TestApply_NilConfig(t *testing.T) {
	var cfg *ProjectConfig
	gen := migembed.GenerationConfig{MigrationsDir: "x"}
	cfg.Apply(&gen, "/project")
	assert.Equal(t, "x", gen.MigrationsDir)
}

func TestFromEnv(t *testing.T) {
	env := map[string]string{
		migembed.EnvMigrationsDir: "/env/migrations",
		migembed.EnvProjectDir:    "/env/project",
	}
	getenv := func(k string) string { return env[k] }

	t.Run("fills empty", func(t *testing.T) {
		var gen migembed.GenerationConfig
		FromEnv(&gen, getenv)
		assert.Equal(t, "/env/migrations", gen.MigrationsDir)
		assert.Equal(t, "/env/project", gen.ProjectDir)
	})

	t.Run("flags win", func(t *testing.T) {
		gen := migembed.GenerationConfig{MigrationsDir: "/flag"}
		FromEnv(&gen, getenv)
		assert.Equal(t, "/flag", gen.MigrationsDir)
		assert.Equal(t, "/env/project", gen.ProjectDir)
	})

	t.Run("process environment", func(t *testing.T) {
		t.Setenv(migembed.EnvMigrationsDir, "/real")
		t.Setenv(migembed.EnvProjectDir, "")
		var gen migembed.GenerationConfig
		FromEnv(&gen, nil)
		assert.Equal(t, "/real", gen.MigrationsDir)
		assert.Empty(t, gen.ProjectDir)
	})
}
