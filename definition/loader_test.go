package definition

import (
	"errors"
	"testing"
)

func newTestLoader(t *testing.T) *Loader {
	t.Helper()
	loader, err := NewLoader("testdata")
	if err != nil {
		t.Fatalf("NewLoader: %v", err)
	}
	return loader
}

func TestNewLoaderEmptyPath(t *testing.T) {
	if _, err := NewLoader(); err == nil {
		t.Error("NewLoader() succeeded, want error")
	}
}

func TestImport(t *testing.T) {
	loader := newTestLoader(t)

	defs, err := loader.Import("android.app.IAlarmListener")
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(defs) != 1 {
		t.Fatalf("got %d definitions, want 1", len(defs))
	}
	if defs[0].DefinitionKind() != KindBinder {
		t.Errorf("kind = %s, want %s", defs[0].DefinitionKind(), KindBinder)
	}

	t.Run("cached on second import", func(t *testing.T) {
		again, err := loader.Import("android.app.IAlarmListener")
		if err != nil {
			t.Fatalf("Import: %v", err)
		}
		if again[0] != defs[0] {
			t.Error("second import returned a different instance")
		}
	})
}

func TestImportNotFound(t *testing.T) {
	loader := newTestLoader(t)

	_, err := loader.Import("android.app.IDoesNotExist")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Import error = %v, want ErrNotFound", err)
	}
}

func TestImportWildcard(t *testing.T) {
	loader := newTestLoader(t)

	defs, err := loader.Import("android.os.*")
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(defs) != 2 {
		t.Fatalf("got %d definitions, want 2", len(defs))
	}

	for _, qname := range []QName{"android.os.PatternMatcher", "android.os.WorkSource"} {
		if _, ok := loader.Cached(qname); !ok {
			t.Errorf("%s not cached after wildcard import", qname)
		}
	}
}

func TestParcelable(t *testing.T) {
	loader := newTestLoader(t)

	pdef, err := loader.Parcelable("android.os.PatternMatcher")
	if err != nil {
		t.Fatalf("Parcelable: %v", err)
	}
	if len(pdef.Fields) != 2 {
		t.Errorf("got %d fields, want 2", len(pdef.Fields))
	}

	t.Run("binder is not a parcelable", func(t *testing.T) {
		if _, err := loader.Parcelable("android.app.IAlarmListener"); err == nil {
			t.Error("Parcelable succeeded on a binder definition")
		}
	})
}

func TestBinder(t *testing.T) {
	loader := newTestLoader(t)

	bdef, err := loader.Binder("android.app.IAlarmListener")
	if err != nil {
		t.Fatalf("Binder: %v", err)
	}
	if m := bdef.MethodByCode(1); m == nil || m.Name != "doAlarm" {
		t.Errorf("MethodByCode(1) = %v, want doAlarm", m)
	}

	t.Run("parcelable is not a binder", func(t *testing.T) {
		if _, err := loader.Binder("android.os.WorkSource"); err == nil {
			t.Error("Binder succeeded on a parcelable definition")
		}
	})
}

func TestDefinitions(t *testing.T) {
	loader := newTestLoader(t)
	if _, err := loader.Import("android.os.*"); err != nil {
		t.Fatalf("Import: %v", err)
	}

	defs := loader.Definitions()
	if len(defs) != 2 {
		t.Fatalf("got %d definitions, want 2", len(defs))
	}
	if defs[0].QualifiedName() > defs[1].QualifiedName() {
		t.Error("Definitions() not sorted by qualified name")
	}
}
