package codegen

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	manifestBegin = "// migembed:manifest"
	manifestEnd   = "// migembed:end"

	// entryMarker starts the first line of every generated migration literal.
	entryMarker = "Version:"
)

// ErrNoManifest is returned by ReadManifest when the text has no manifest block.
var ErrNoManifest = errors.New("no manifest in generated file")

// Manifest records the inputs a generated file was built from.
type Manifest struct {
	Options Options         `yaml:"options"`
	Files   []ManifestEntry `yaml:"files"`
}

// ManifestEntry describes one source file.
type ManifestEntry struct {
	Name    string `yaml:"name"`
	Version int64  `yaml:"version"`
	SHA256  string `yaml:"sha256"`
}

// Checksums maps file name to recorded checksum.
func (m *Manifest) Checksums() map[string]string {
	out := make(map[string]string, len(m.Files))
	for _, f := range m.Files {
		out[f.Name] = f.SHA256
	}
	return out
}

// commentLines encodes the manifest as YAML and prefixes every line with "// ".
func (m *Manifest) commentLines() ([]string, error) {
	data, err := yaml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to encode manifest: %w", err)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	for i, line := range lines {
		if line == "" {
			lines[i] = "//"
		} else {
			lines[i] = "// " + line
		}
	}
	return lines, nil
}

// ReadManifest extracts the manifest from generated file text.
func ReadManifest(text []byte) (*Manifest, error) {
	var (
		body    strings.Builder
		inBlock bool
		closed  bool
	)

	sc := bufio.NewScanner(bytes.NewReader(text))
	sc.Buffer(make([]byte, 0, 64*1024), len(text)+1)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if !inBlock {
			if line == manifestBegin {
				inBlock = true
			}
			continue
		}
		if line == manifestEnd {
			closed = true
			break
		}
		switch {
		case strings.HasPrefix(line, "// "):
			body.WriteString(line[3:])
		case strings.HasPrefix(line, "//"):
			body.WriteString(line[2:])
		default:
			return nil, fmt.Errorf("malformed manifest line %q", line)
		}
		body.WriteByte('\n')
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan generated file: %w", err)
	}
	if !inBlock {
		return nil, ErrNoManifest
	}
	if !closed {
		return nil, fmt.Errorf("manifest block is not terminated by %q", manifestEnd)
	}

	var m Manifest
	if err := yaml.Unmarshal([]byte(body.String()), &m); err != nil {
		return nil, fmt.Errorf("failed to decode manifest: %w", err)
	}
	return &m, nil
}

// CountEntries counts migration literals in generated file text by looking
// for lines that start with the "Version:" field.
func CountEntries(text []byte) int {
	n := 0
	for _, line := range strings.Split(string(text), "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), entryMarker) {
			n++
		}
	}
	return n
}
