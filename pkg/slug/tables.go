package slug

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"maps"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed tables/*.yaml
var tablesFS embed.FS

var (
	builtinCharMap      map[string]string
	builtinMultiCharMap map[string]string
	builtinOnce         sync.Once
)

// loadBuiltins decodes the embedded tables once. The tables ship with the
// binary, so a decode failure is a build defect and panics.
func loadBuiltins() {
	builtinOnce.Do(func() {
		builtinCharMap = mustLoadEmbedded("tables/charmap.yaml")
		builtinMultiCharMap = mustLoadEmbedded("tables/multicharmap.yaml")
	})
}

func mustLoadEmbedded(name string) map[string]string {
	f, err := tablesFS.Open(name)
	if err != nil {
		panic(fmt.Sprintf("slug: open embedded table %s: %v", name, err))
	}
	defer func() { _ = f.Close() }()

	table, err := LoadTable(f)
	if err != nil {
		panic(fmt.Sprintf("slug: load embedded table %s: %v", name, err))
	}
	return table
}

// BuiltinCharMap returns a fresh copy of the built-in Latin diacritic table.
func BuiltinCharMap() CharMap {
	loadBuiltins()
	return maps.Clone(builtinCharMap)
}

// BuiltinMultiCharMap returns a fresh copy of the built-in multi code point
// table (Devanagari nukta forms and Hebrew niqqud).
func BuiltinMultiCharMap() MultiCharMap {
	loadBuiltins()
	return maps.Clone(builtinMultiCharMap)
}

// LoadTable decodes a YAML mapping of text to replacement. Keys and values
// must be strings; null, numbers and booleans are rejected.
// An empty document yields an empty table.
//
// Example file:
//
//	"♥": "love"
//	"☢": "radioactive"
//	"C++": "cpp"
func LoadTable(r io.Reader) (map[string]string, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidTable, err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return map[string]string{}, nil
		}
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: line %d: expected a mapping", ErrInvalidTable, root.Line)
	}

	table := make(map[string]string, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		if key.Kind != yaml.ScalarNode || val.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("%w: line %d: keys and values must be scalars", ErrInvalidTable, key.Line)
		}
		for _, n := range []*yaml.Node{key, val} {
			if n.ShortTag() != "!!str" {
				return nil, fmt.Errorf("%w: line %d: %q is %s, not a string; quote it", ErrInvalidTable, n.Line, n.Value, n.ShortTag())
			}
		}
		table[key.Value] = val.Value
	}
	return table, nil
}
