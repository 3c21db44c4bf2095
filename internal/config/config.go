package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vvka-141/migembed/pkg/migembed"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

type OutputConfig struct {
	Dir     string `yaml:"dir,omitempty"`
	File    string `yaml:"file,omitempty"`
	Package string `yaml:"package,omitempty"`
	Func    string `yaml:"func,omitempty"`
}

type ProjectConfig struct {
	MigrationsDir string       `yaml:"migrations_dir,omitempty"`
	Output        OutputConfig `yaml:"output,omitempty"`
	ImportPath    string       `yaml:"import_path,omitempty"`
	Order         string       `yaml:"order,omitempty"`
}

const ConfigFileName = "migembed.yaml"

// Load reads migembed.yaml from projectDir.
func Load(projectDir string) (*ProjectConfig, error) {
	configPath := filepath.Join(projectDir, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", migembed.ErrInvalidConfig, configPath, err)
	}
	return &cfg, nil
}

// Apply fills the fields of gen that are still empty. A relative
// migrations_dir is resolved against projectDir.
func (c *ProjectConfig) Apply(gen *migembed.GenerationConfig, projectDir string) {
	if c == nil {
		return
	}
	if gen.MigrationsDir == "" && c.MigrationsDir != "" {
		dir := c.MigrationsDir
		if !filepath.IsAbs(dir) && projectDir != "" {
			dir = filepath.Join(projectDir, dir)
		}
		gen.MigrationsDir = dir
	}
	setIfEmpty(&gen.OutputDir, c.Output.Dir)
	setIfEmpty(&gen.OutputFile, c.Output.File)
	setIfEmpty(&gen.PackageName, c.Output.Package)
	setIfEmpty(&gen.FuncName, c.Output.Func)
	setIfEmpty(&gen.ImportPath, c.ImportPath)
	setIfEmpty(&gen.Order, c.Order)
}

// FromEnv fills MigrationsDir and ProjectDir from MIGRATIONS_DIR and
// PROJECT_DIR when they are still empty.
func FromEnv(gen *migembed.GenerationConfig, getenv func(string) string) {
	if getenv == nil {
		getenv = os.Getenv
	}
	setIfEmpty(&gen.MigrationsDir, getenv(migembed.EnvMigrationsDir))
	setIfEmpty(&gen.ProjectDir, getenv(migembed.EnvProjectDir))
}

func setIfEmpty(dst *string, value string) {
	if *dst == "" {
		*dst = value
	}
}
