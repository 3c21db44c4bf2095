package codegen

import (
	"bytes"
	"fmt"
	"go/format"
	"strconv"
	"text/template"
	"time"

	"github.com/vvka-141/migembed/internal/checksum"
	"github.com/vvka-141/migembed/internal/files/filesystem"
	"github.com/vvka-141/migembed/pkg/migembed"
)

// Entry pairs a parsed migration with the file it came from.
type Entry struct {
	Source    string
	Migration migembed.Migration
}

// Options control the shape of the generated file. They are recorded in the
// manifest so that changing any of them makes the file stale.
type Options struct {
	PackageName string `yaml:"package"`
	FuncName    string `yaml:"func"`
	ImportPath  string `yaml:"import_path"`
	Order       string `yaml:"order"`
}

// WithDefaults returns a copy with every empty field set to its default.
func (o Options) WithDefaults() Options {
	if o.PackageName == "" {
		o.PackageName = migembed.DefaultPackageName
	}
	if o.FuncName == "" {
		o.FuncName = migembed.DefaultFuncName
	}
	if o.ImportPath == "" {
		o.ImportPath = migembed.DefaultImportPath
	}
	if o.Order == "" {
		o.Order = migembed.OrderVersion
	}
	return o
}

// Generator renders and writes generated migration files.
type Generator struct {
	fsProvider filesystem.FileSystemProvider
	calculator checksum.Calculator
	options    Options

	// Now supplies the header timestamp. Defaults to time.Now.
	Now func() time.Time
}

// NewGenerator creates a generator. Empty options take the migembed defaults.
// Panics if fsProvider or calculator is nil.
func NewGenerator(fsProvider filesystem.FileSystemProvider, calculator checksum.Calculator, opts Options) *Generator {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if calculator == nil {
		panic("calculator cannot be nil")
	}
	return &Generator{
		fsProvider: fsProvider,
		calculator: calculator,
		options:    opts.WithDefaults(),
		Now:        time.Now,
	}
}

var artifactTemplate = template.Must(template.New("artifact").Funcs(template.FuncMap{
	"quote": strconv.Quote,
	"kind":  kindIdentifier,
}).Parse(`// Code generated by migembed. DO NOT EDIT.

// ===========================================================
// WARNING: This is an auto-generated file.
//
// DO NOT MODIFY THIS FILE MANUALLY.
//
// Any changes made to this file will be overwritten
// the next time it is generated.
//
// Generated on: {{.Timestamp}}
// ===========================================================

{{.ManifestBegin}}
{{range .Manifest}}{{.}}
{{end}}{{.ManifestEnd}}

package {{.Package}}

import migembed {{quote .ImportPath}}

// {{.Func}} returns the embedded migrations in application order.
func {{.Func}}() []migembed.Migration {
	return []migembed.Migration{
{{- range .Entries}}
		{
			Version:     {{.Version}},
			Description: {{quote .Description}},
			SQL:         {{quote .SQL}},
			Kind:        {{kind .Kind}},
		},
{{- end}}
	}
}
`))

type templateData struct {
	Timestamp     int64
	ManifestBegin string
	Manifest      []string
	ManifestEnd   string
	Package       string
	ImportPath    string
	Func          string
	Entries       []migembed.Migration
}

func kindIdentifier(k migembed.MigrationKind) string {
	if k == migembed.MigrationKindDown {
		return "migembed.MigrationKindDown"
	}
	return "migembed.MigrationKindUp"
}

// BuildManifest records the options plus name, version and checksum for every entry.
func (g *Generator) BuildManifest(entries []Entry) *Manifest {
	m := &Manifest{
		Options: g.options,
		Files:   make([]ManifestEntry, 0, len(entries)),
	}
	for _, e := range entries {
		m.Files = append(m.Files, ManifestEntry{
			Name:    e.Source,
			Version: e.Migration.Version,
			SHA256:  g.calculator.Sum([]byte(e.Migration.SQL)),
		})
	}
	return m
}

// Render produces the complete generated file. Entries keep their order.
func (g *Generator) Render(entries []Entry) ([]byte, error) {
	manifestLines, err := g.BuildManifest(entries).commentLines()
	if err != nil {
		return nil, err
	}

	migrations := make([]migembed.Migration, len(entries))
	for i, e := range entries {
		migrations[i] = e.Migration
	}

	data := templateData{
		Timestamp:     g.Now().Unix(),
		ManifestBegin: manifestBegin,
		Manifest:      manifestLines,
		ManifestEnd:   manifestEnd,
		Package:       g.options.PackageName,
		ImportPath:    g.options.ImportPath,
		Func:          g.options.FuncName,
		Entries:       migrations,
	}

	var buf bytes.Buffer
	if err := artifactTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render generated file: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("generated file is not valid Go: %w", err)
	}
	return formatted, nil
}

// Write replaces the file at path with content.
// The previous file, if any, is left untouched on failure.
func (g *Generator) Write(path string, content []byte) error {
	if err := g.fsProvider.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("%w %s: %w", migembed.ErrWriteFailure, path, err)
	}
	return nil
}

// Generate renders entries and writes the result to path.
func (g *Generator) Generate(path string, entries []Entry) error {
	content, err := g.Render(entries)
	if err != nil {
		return err
	}
	return g.Write(path, content)
}
