// Package lang presents the bundled grammars to the rest of the
// repository by name. The per-grammar packages underneath stay
// independent of each other; this registry is a convenience on top and
// performs no parsing of its own.
package lang

import (
	"fmt"
	"sort"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/bshark-io/bshark/lang/aidl"
	"github.com/bshark-io/bshark/lang/java"
)

var grammars = map[string]func() *sitter.Language{
	"aidl": aidl.GetLanguage,
	"java": java.GetLanguage,
}

// Lookup returns the grammar registered under name.
func Lookup(name string) (*sitter.Language, error) {
	get, ok := grammars[name]
	if !ok {
		return nil, fmt.Errorf("unknown grammar: %q", name)
	}
	return get(), nil
}

// Names lists the registered grammar names in sorted order.
func Names() []string {
	names := make([]string, 0, len(grammars))
	for name := range grammars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewParser returns a parser configured for the named grammar.
func NewParser(name string) (*sitter.Parser, error) {
	language, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	parser := sitter.NewParser()
	parser.SetLanguage(language)
	return parser, nil
}
