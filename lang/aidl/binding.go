// Package aidl exposes the tree-sitter grammar for the Android Interface
// Definition Language (AIDL). The parser tables live in a separately
// compiled grammar library; this package only hands out the pointer.
package aidl

// #cgo CFLAGS: -std=c11 -fPIC
// #cgo LDFLAGS: -ltree-sitter-aidl
// typedef struct TSLanguage TSLanguage;
// const TSLanguage *tree_sitter_aidl(void);
import "C"

import (
	"unsafe"

	sitter "github.com/smacker/go-tree-sitter"
)

// Language returns the language reference for AIDL.
//
// The returned pointer addresses static data owned by the grammar
// library. It is never nil when the library is linked, stays identical
// across calls within a process, and is safe to request concurrently.
func Language() unsafe.Pointer {
	return unsafe.Pointer(C.tree_sitter_aidl())
}

// GetLanguage wraps Language for go-tree-sitter consumers.
func GetLanguage() *sitter.Language {
	return sitter.NewLanguage(Language())
}
