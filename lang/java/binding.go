// Package java exposes the tree-sitter grammar for Java. The parser
// tables live in a separately compiled grammar library; this package
// only hands out the pointer.
package java

// #cgo CFLAGS: -std=c11 -fPIC
// #cgo LDFLAGS: -ltree-sitter-java
// typedef struct TSLanguage TSLanguage;
// const TSLanguage *tree_sitter_java(void);
import "C"

import (
	"unsafe"

	sitter "github.com/smacker/go-tree-sitter"
)

// Language returns the language reference for Java.
//
// The returned pointer addresses static data owned by the grammar
// library. It is never nil when the library is linked, stays identical
// across calls within a process, and is safe to request concurrently.
func Language() unsafe.Pointer {
	return unsafe.Pointer(C.tree_sitter_java())
}

// GetLanguage wraps Language for go-tree-sitter consumers.
func GetLanguage() *sitter.Language {
	return sitter.NewLanguage(Language())
}
