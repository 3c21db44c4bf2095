package codegen

import (
	"errors"
	"go/ast"
	"go/parser"
	"go/token"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/migembed/internal/checksum"
	"github.com/vvka-141/migembed/internal/files/filesystem"
	"github.com/vvka-141/migembed/pkg/migembed"
)

var fixedNow = time.Unix(1700000000, 0)

func newTestGenerator(opts Options) (*Generator, *filesystem.MemoryFileSystem) {
	fs := filesystem.NewMemoryFileSystem("/project")
	g := NewGenerator(fs, checksum.New(), opts)
	g.Now = func() time.Time { return fixedNow }
	return g, fs
}

func entry(source string, version int64, description, sql string) Entry {
	return Entry{
		Source: source,
		Migration: migembed.Migration{
			Version:     version,
			Description: description,
			SQL:         sql,
			Kind:        migembed.MigrationKindUp,
		},
	}
}

// literalFields parses src and returns the values of every key/value pair named key.
func literalFields(t *testing.T, src []byte, key string) []string {
	t.Helper()
	file, err := parser.ParseFile(token.NewFileSet(), "gen.go", src, parser.ParseComments)
	require.NoError(t, err, "generated file must parse:\n%s", src)

	var values []string
	ast.Inspect(file, func(n ast.Node) bool {
		kv, ok := n.(*ast.KeyValueExpr)
		if !ok {
			return true
		}
		if ident, ok := kv.Key.(*ast.Ident); ok && ident.Name == key {
			switch v := kv.Value.(type) {
			case *ast.BasicLit:
				if v.Kind == token.STRING {
					s, err := strconv.Unquote(v.Value)
					require.NoError(t, err)
					values = append(values, s)
				} else {
					values = append(values, v.Value)
				}
			case *ast.SelectorExpr:
				values = append(values, v.Sel.Name)
			}
		}
		return true
	})
	return values
}

func TestRender_EndToEndShape(t *testing.T) {
	g, _ := newTestGenerator(Options{})

	out, err := g.Render([]Entry{
		entry("1-init.sql", 1, "init", "CREATE TABLE t(x);"),
		entry("2-add_col.sql", 2, "add_col", "ALTER TABLE t ADD y;"),
	})
	require.NoError(t, err)
	text := string(out)

	assert.True(t, strings.HasPrefix(text, "// Code generated by migembed. DO NOT EDIT.\n"))
	assert.Contains(t, text, "WARNING: This is an auto-generated file.")
	assert.Contains(t, text, "DO NOT MODIFY THIS FILE MANUALLY.")
	assert.Contains(t, text, "Generated on: 1700000000")
	assert.Contains(t, text, "package migrations\n")
	assert.Contains(t, text, `import migembed "github.com/vvka-141/migembed/pkg/migembed"`)
	assert.Contains(t, text, "func Migrations() []migembed.Migration {")

	assert.Equal(t, []string{"1", "2"}, literalFields(t, out, "Version"))
	assert.Equal(t, []string{"init", "add_col"}, literalFields(t, out, "Description"))
	assert.Equal(t, []string{"CREATE TABLE t(x);", "ALTER TABLE t ADD y;"}, literalFields(t, out, "SQL"))
	assert.Equal(t, []string{"MigrationKindUp", "MigrationKindUp"}, literalFields(t, out, "Kind"))
}

func TestRender_PreservesInputOrder(t *testing.T) {
	g, _ := newTestGenerator(Options{})

	out, err := g.Render([]Entry{
		entry("10-b.sql", 10, "b", "B"),
		entry("2-a.sql", 2, "a", "A"),
		entry("7-c.sql", 7, "c", "C"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"10", "2", "7"}, literalFields(t, out, "Version"))
}

func TestRender_EscapesDoubleQuotes(t *testing.T) {
	g, _ := newTestGenerator(Options{})
	sql := `INSERT INTO t (name) VALUES ("a"), ("b");`

	out, err := g.Render([]Entry{entry("1-q.sql", 1, "q", sql)})
	require.NoError(t, err)

	assert.Contains(t, string(out), `"INSERT INTO t (name) VALUES (\"a\"), (\"b\");"`)
	assert.Equal(t, []string{sql}, literalFields(t, out, "SQL"), "literal must decode to the original SQL")
}

func TestRender_MultilineAndBackslashes(t *testing.T) {
	g, _ := newTestGenerator(Options{})
	sql := "CREATE TABLE t(\n  x TEXT DEFAULT 'a\\b'\n);\n-- \"done\"\n"

	out, err := g.Render([]Entry{entry("1-m.sql", 1, "m", sql)})
	require.NoError(t, err)

	assert.Equal(t, []string{sql}, literalFields(t, out, "SQL"))
	assert.Equal(t, 1, CountEntries(out))
}

func TestRender_DescriptionIsQuoted(t *testing.T) {
	g, _ := newTestGenerator(Options{})

	out, err := g.Render([]Entry{entry(`1-say "hi".sql`, 1, `say "hi"`, "SELECT 1;")})
	require.NoError(t, err)
	assert.Equal(t, []string{`say "hi"`}, literalFields(t, out, "Description"))
}

func TestRender_CountRoundTrip(t *testing.T) {
	g, _ := newTestGenerator(Options{})

	for _, n := range []int{0, 1, 5} {
		var entries []Entry
		for i := 0; i < n; i++ {
			v := int64(i + 1)
			entries = append(entries, entry(strconv.FormatInt(v, 10)+"-m.sql", v, "m", "SELECT "+strconv.Itoa(i)+";"))
		}

		out, err := g.Render(entries)
		require.NoError(t, err)
		assert.Equal(t, n, CountEntries(out), "entries=%d", n)

		m, err := ReadManifest(out)
		require.NoError(t, err)
		assert.Len(t, m.Files, n)
	}
}

func TestRender_ManifestRoundTrip(t *testing.T) {
	g, _ := newTestGenerator(Options{})
	calc := checksum.New()

	out, err := g.Render([]Entry{
		entry("1-init.sql", 1, "init", "CREATE TABLE t(x);"),
		entry("2-add_col.sql", 2, "add_col", "ALTER TABLE t ADD y;"),
	})
	require.NoError(t, err)

	m, err := ReadManifest(out)
	require.NoError(t, err)
	assert.Equal(t, []ManifestEntry{
		{Name: "1-init.sql", Version: 1, SHA256: calc.Sum([]byte("CREATE TABLE t(x);"))},
		{Name: "2-add_col.sql", Version: 2, SHA256: calc.Sum([]byte("ALTER TABLE t ADD y;"))},
	}, m.Files)
	assert.Equal(t, calc.Sum([]byte("CREATE TABLE t(x);")), m.Checksums()["1-init.sql"])
	assert.Equal(t, Options{
		PackageName: migembed.DefaultPackageName,
		FuncName:    migembed.DefaultFuncName,
		ImportPath:  migembed.DefaultImportPath,
		Order:       migembed.OrderVersion,
	}, m.Options)
}

func TestRender_ManifestRecordsCustomOptions(t *testing.T) {
	opts := Options{PackageName: "db", FuncName: "All", ImportPath: "example.com/m", Order: migembed.OrderDirectory}
	g, _ := newTestGenerator(opts)

	out, err := g.Render([]Entry{entry("1-a.sql", 1, "a", "SELECT 1;")})
	require.NoError(t, err)

	m, err := ReadManifest(out)
	require.NoError(t, err)
	assert.Equal(t, opts, m.Options)
	assert.Equal(t, 1, CountEntries(out))
}

func TestRender_CustomOptions(t *testing.T) {
	g, _ := newTestGenerator(Options{
		PackageName: "dbschema",
		FuncName:    "All",
		ImportPath:  "example.com/app/pkg/migembed",
	})

	out, err := g.Render([]Entry{entry("1-a.sql", 1, "a", "SELECT 1;")})
	require.NoError(t, err)
	text := string(out)

	assert.Contains(t, text, "package dbschema\n")
	assert.Contains(t, text, "func All() []migembed.Migration {")
	assert.Contains(t, text, `import migembed "example.com/app/pkg/migembed"`)
}

func TestRender_DownKind(t *testing.T) {
	g, _ := newTestGenerator(Options{})
	e := entry("1-a.sql", 1, "a", "SELECT 1;")
	e.Migration.Kind = migembed.MigrationKindDown

	out, err := g.Render([]Entry{e})
	require.NoError(t, err)
	assert.Equal(t, []string{"MigrationKindDown"}, literalFields(t, out, "Kind"))
}

func TestGenerate_WritesFile(t *testing.T) {
	g, fs := newTestGenerator(Options{})
	target := "/project/internal/migrations/migrations_generated.go"

	require.NoError(t, g.Generate(target, []Entry{entry("1-a.sql", 1, "a", "SELECT 1;")}))

	content, err := fs.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, 1, CountEntries(content))
}

func TestWrite_FailureKeepsPrevious(t *testing.T) {
	g, fs := newTestGenerator(Options{})
	target := "/project/gen.go"
	fs.AddFile(target, "previous")
	fs.SetWriteError(target, errors.New("disk full"))

	err := g.Write(target, []byte("next"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, migembed.ErrWriteFailure), "got %v", err)

	content, readErr := fs.ReadFile(target)
	require.NoError(t, readErr)
	assert.Equal(t, "previous", string(content))
}

func TestNewGenerator_NilArgs(t *testing.T) {
	fs := filesystem.NewMemoryFileSystem("/")
	assert.Panics(t, func() { NewGenerator(nil, checksum.New(), Options{}) })
	assert.Panics(t, func() { NewGenerator(fs, nil, Options{}) })
}
