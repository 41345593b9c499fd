package definition

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("bshark.definition")

// ErrNotFound reports that no file in the search path matched a
// relative path or qualified name.
var ErrNotFound = errors.New("not found in search path")

// Loader resolves qualified names against an ordered search path and
// caches every definition it reads. The cache doubles as the type
// registry the parcel decoder consults for nested parcelables.
type Loader struct {
	searchPath []string
	units      map[QName]Definition
}

// NewLoader creates a loader over the given search roots. At least one
// root is required.
func NewLoader(searchPath ...string) (*Loader, error) {
	if len(searchPath) == 0 {
		return nil, errors.New("search path must not be empty")
	}
	return &Loader{
		searchPath: searchPath,
		units:      make(map[QName]Definition),
	}, nil
}

// SearchPath returns the roots the loader resolves against.
func (l *Loader) SearchPath() []string {
	return l.searchPath
}

// Resolve converts a relative path to the first matching absolute path
// in the search path.
func (l *Loader) Resolve(rpath RPath) (string, error) {
	for _, root := range l.searchPath {
		abs := filepath.Join(root, filepath.FromSlash(rpath))
		if _, err := os.Stat(abs); err == nil {
			return abs, nil
		}
	}
	return "", fmt.Errorf("%q: %w", rpath, ErrNotFound)
}

// LoadFile reads a compiled definition from path and caches it under
// its qualified name.
func (l *Loader) LoadFile(path string) (Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read definition: %w", err)
	}
	def, err := FromJSON(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	l.units[def.QualifiedName()] = def
	log.Debugf("loaded %s from %s", def.QualifiedName(), path)
	return def, nil
}

// Cached returns the definition with the given qualified name if it
// has been loaded before.
func (l *Loader) Cached(qname QName) (Definition, bool) {
	def, ok := l.units[qname]
	return def, ok
}

// Parcelable returns the named parcelable definition, importing it if
// it is not cached yet.
func (l *Loader) Parcelable(qname QName) (*ParcelableDef, error) {
	def, ok := l.units[qname]
	if !ok {
		defs, err := l.Import(qname)
		if err != nil {
			return nil, err
		}
		for _, d := range defs {
			if d.QualifiedName() == qname {
				def = d
			}
		}
		if def == nil {
			return nil, fmt.Errorf("%q: %w", qname, ErrNotFound)
		}
	}
	pdef, ok := def.(*ParcelableDef)
	if !ok {
		return nil, fmt.Errorf("%q is a %s, not a parcelable", qname, def.DefinitionKind())
	}
	return pdef, nil
}

// Binder returns the named binder definition, importing it if it is
// not cached yet.
func (l *Loader) Binder(qname QName) (*BinderDef, error) {
	def, ok := l.units[qname]
	if !ok {
		defs, err := l.Import(qname)
		if err != nil {
			return nil, err
		}
		for _, d := range defs {
			if d.QualifiedName() == qname {
				def = d
			}
		}
		if def == nil {
			return nil, fmt.Errorf("%q: %w", qname, ErrNotFound)
		}
	}
	bdef, ok := def.(*BinderDef)
	if !ok {
		return nil, fmt.Errorf("%q is a %s, not a binder interface", qname, def.DefinitionKind())
	}
	return bdef, nil
}

// Import loads the definitions a qualified name refers to. A trailing
// ".*" imports every definition in the package directory. Cached
// entries are returned without touching the filesystem.
func (l *Loader) Import(qname QName) ([]Definition, error) {
	parts := strings.Split(qname, ".")
	if parts[len(parts)-1] == "*" {
		return l.importWildcard(strings.Join(parts[:len(parts)-1], "/"))
	}

	if def, ok := l.units[qname]; ok {
		return []Definition{def}, nil
	}

	rpath := RPathOf(DeclaringClass(qname)) + ExtJSON
	abs, err := l.Resolve(rpath)
	if err != nil {
		return nil, fmt.Errorf("import %q: %w", qname, err)
	}
	def, err := l.LoadFile(abs)
	if err != nil {
		return nil, err
	}
	return []Definition{def}, nil
}

func (l *Loader) importWildcard(rpath RPath) ([]Definition, error) {
	abs, err := l.Resolve(rpath)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%q is not a directory", abs)
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("read package directory: %w", err)
	}

	var defs []Definition
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ExtJSON {
			continue
		}
		def, err := l.LoadFile(filepath.Join(abs, entry.Name()))
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// Definitions lists every cached definition, sorted by qualified name.
func (l *Loader) Definitions() []Definition {
	defs := make([]Definition, 0, len(l.units))
	for _, def := range l.units {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool {
		return defs[i].QualifiedName() < defs[j].QualifiedName()
	})
	return defs
}
