// Package manifest reads and rewrites the version field of a YAML manifest
// such as pubspec.yaml. A rewrite replaces the version scalar in the original
// bytes, so blank lines, indentation, comments and every other field stay as
// they were. The yaml.Node tree is re-encoded only when the scalar cannot be
// located in the source text.
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/rubrical-studios/pubspec-bump/internal/bump"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the manifest location used when none is configured
const DefaultPath = "./pubspec.yaml"

// VersionKey is the top-level key holding the tracked version
const VersionKey = "version"

// Common errors
var (
	ErrNotFound       = errors.New("manifest not found")
	ErrMissingVersion = errors.New("version not found")
)

// Error is a manifest failure tied to a path
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case errors.Is(e.Err, ErrNotFound):
		return fmt.Sprintf("File %s not found.", e.Path)
	case errors.Is(e.Err, ErrMissingVersion):
		return fmt.Sprintf("Current version not found in %s.", filepath.Base(e.Path))
	default:
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Manifest is a parsed manifest document
type Manifest struct {
	path    string
	raw     []byte
	doc     yaml.Node
	field   *yaml.Node
	version bump.Version

	// source is the text of the version scalar in raw, without quotes
	source string
}

// Load reads and parses the manifest at path
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &Error{Path: path, Err: ErrNotFound}
		}
		return nil, &Error{Path: path, Err: fmt.Errorf("failed to read manifest: %w", err)}
	}
	return Parse(path, data)
}

// Parse parses manifest content. path is only used for error messages and Save.
func Parse(path string, data []byte) (*Manifest, error) {
	m := &Manifest{path: path, raw: data}
	if err := yaml.Unmarshal(data, &m.doc); err != nil {
		return nil, &Error{Path: path, Err: fmt.Errorf("failed to parse manifest: %w", err)}
	}

	m.field = findVersionNode(&m.doc)
	if m.field == nil || m.field.Value == "" {
		return nil, &Error{Path: path, Err: ErrMissingVersion}
	}

	v, err := bump.Parse(m.field.Value)
	if err != nil {
		// An unusable version is reported the same way as a missing one
		return nil, &Error{Path: path, Err: fmt.Errorf("%w: %v", ErrMissingVersion, err)}
	}
	m.version = v
	m.source = m.field.Value

	return m, nil
}

// findVersionNode returns the scalar value node of the top-level version key, or nil
func findVersionNode(doc *yaml.Node) *yaml.Node {
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		if key.Value == VersionKey && value.Kind == yaml.ScalarNode {
			return value
		}
	}
	return nil
}

// Path returns the path the manifest was loaded from
func (m *Manifest) Path() string {
	return m.path
}

// Version returns the current version
func (m *Manifest) Version() bump.Version {
	return m.version
}

// SetVersion replaces the version field. Nothing else in the document changes.
func (m *Manifest) SetVersion(v bump.Version) {
	m.version = v
	m.field.Value = v.String()
	m.field.Tag = "!!str"
}

// Raw decodes the document into a generic map, mostly for inspection in tests
func (m *Manifest) Raw() (map[string]interface{}, error) {
	out := map[string]interface{}{}
	if err := m.doc.Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode manifest: %w", err)
	}
	return out, nil
}

// Bytes serializes the document. The original text is kept and only the
// version scalar is replaced when its position is known.
func (m *Manifest) Bytes() ([]byte, error) {
	data, _, err := m.render()
	return data, err
}

// render returns the serialized document and whether it was produced by splicing
func (m *Manifest) render() ([]byte, bool, error) {
	if m.raw != nil {
		if out, ok := m.splice(); ok {
			return out, true, nil
		}
	}
	data, err := m.encode()
	return data, false, err
}

// encode re-encodes the whole node tree
func (m *Manifest) encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&m.doc); err != nil {
		return nil, fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to marshal manifest: %w", err)
	}
	return buf.Bytes(), nil
}

// splice replaces the version scalar in raw, keeping its quoting style.
// It reports false when the scalar text at the node position does not match
// what was parsed, or when the scalar style cannot be rewritten in place.
func (m *Manifest) splice() ([]byte, bool) {
	start, ok := offsetOf(m.raw, m.field.Line, m.field.Column)
	if !ok {
		return nil, false
	}

	var quote string
	switch m.field.Style {
	case 0:
	case yaml.DoubleQuotedStyle:
		quote = `"`
	case yaml.SingleQuotedStyle:
		quote = "'"
	default:
		return nil, false
	}

	lineEnd := bytes.IndexByte(m.raw[start:], '\n')
	if lineEnd < 0 {
		lineEnd = len(m.raw) - start
	}
	line := string(m.raw[start : start+lineEnd])

	var end int
	if quote == "" {
		text := line
		if i := strings.Index(text, " #"); i >= 0 {
			text = text[:i]
		}
		text = strings.TrimRight(text, " \t\r")
		if text != m.source {
			return nil, false
		}
		end = start + len(text)
	} else {
		want := quote + m.source + quote
		if !strings.HasPrefix(line, want) {
			return nil, false
		}
		end = start + len(want)
	}

	value := quote + m.field.Value + quote
	out := make([]byte, 0, len(m.raw)-(end-start)+len(value))
	out = append(out, m.raw[:start]...)
	out = append(out, value...)
	out = append(out, m.raw[end:]...)
	return out, true
}

// offsetOf converts a 1-based line and character column into a byte offset
func offsetOf(data []byte, line, column int) (int, bool) {
	if line < 1 || column < 1 {
		return 0, false
	}
	off := 0
	for l := 1; l < line; l++ {
		i := bytes.IndexByte(data[off:], '\n')
		if i < 0 {
			return 0, false
		}
		off += i + 1
	}
	for c := 1; c < column; c++ {
		if off >= len(data) || data[off] == '\n' {
			return 0, false
		}
		_, size := utf8.DecodeRune(data[off:])
		off += size
	}
	return off, true
}

// Save writes the document back to the path it was loaded from
func (m *Manifest) Save() error {
	data, spliced, err := m.render()
	if err != nil {
		return &Error{Path: m.path, Err: err}
	}

	mode := os.FileMode(0644)
	if info, err := os.Stat(m.path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(m.path, data, mode); err != nil {
		return &Error{Path: m.path, Err: fmt.Errorf("failed to write manifest: %w", err)}
	}

	// Node positions only describe the new bytes when the layout was kept
	if spliced {
		m.raw = data
		m.source = m.field.Value
	} else {
		m.raw = nil
	}
	return nil
}
