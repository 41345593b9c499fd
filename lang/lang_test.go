package lang

import (
	"testing"

	"github.com/bshark-io/bshark/lang/aidl"
	"github.com/bshark-io/bshark/lang/java"
)

func TestNames(t *testing.T) {
	names := Names()
	want := []string{"aidl", "java"}
	if len(names) != len(want) {
		t.Fatalf("Names() returned %d entries, want %d", len(names), len(want))
	}
	for i, name := range want {
		if names[i] != name {
			t.Errorf("Names()[%d] = %q, want %q", i, names[i], name)
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, err := Lookup("kotlin"); err == nil {
		t.Error("Lookup(\"kotlin\") succeeded, want error")
	}
}

func TestHandlesDistinct(t *testing.T) {
	if aidl.Language() == java.Language() {
		t.Error("aidl and java grammar tables share an address")
	}
}

func TestNewParser(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			parser, err := NewParser(name)
			if err != nil {
				t.Fatalf("NewParser(%q): %v", name, err)
			}
			if parser == nil {
				t.Fatalf("NewParser(%q) returned nil parser", name)
			}
		})
	}
}
