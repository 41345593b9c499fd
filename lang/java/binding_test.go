package java

import "testing"

func TestLanguage(t *testing.T) {
	first := Language()
	if first == nil {
		t.Fatal("Language() returned nil")
	}

	t.Run("stable across calls", func(t *testing.T) {
		second := Language()
		if first != second {
			t.Errorf("Language() = %#x on second call, want %#x", uintptr(second), uintptr(first))
		}
	})
}

func TestGetLanguage(t *testing.T) {
	if GetLanguage() == nil {
		t.Fatal("GetLanguage() returned nil")
	}
}
