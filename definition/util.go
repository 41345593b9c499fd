package definition

import (
	"strings"
	"unicode"
)

// File extensions the loader understands. AIDL and Java sources appear
// in search paths next to compiled .json artifacts and share the same
// package-directory layout.
const (
	ExtAIDL = ".aidl"
	ExtJava = ".java"
	ExtJSON = ".json"
)

// QNameOf derives the qualified name of a relative path, e.g.
// "android/app/IActivityManager.json" -> "android.app.IActivityManager".
func QNameOf(rpath RPath) QName {
	name := rpath
	for _, ext := range []string{ExtAIDL, ExtJava, ExtJSON} {
		name = strings.TrimSuffix(name, ext)
	}
	return strings.ReplaceAll(strings.Trim(name, "/"), "/", ".")
}

// RPathOf derives the relative path of a qualified name, without an
// extension: "android.app.IActivityManager" -> "android/app/IActivityManager".
func RPathOf(qname QName) RPath {
	return strings.ReplaceAll(qname, ".", "/")
}

// DeclaringClass reduces the qualified name of an inner class to the
// class declaring it. Segments starting with an upper-case letter count
// as class names; only the first of them names a file.
func DeclaringClass(qname QName) QName {
	parts := strings.Split(qname, ".")
	classes := 0
	for _, part := range parts {
		if part != "" && unicode.IsUpper(rune(part[0])) {
			classes++
		}
	}
	if classes <= 1 {
		return qname
	}
	return strings.Join(parts[:len(parts)-(classes-1)], ".")
}

// SimpleName returns the last segment of a qualified name.
func SimpleName(qname QName) string {
	if idx := strings.LastIndex(qname, "."); idx >= 0 {
		return qname[idx+1:]
	}
	return qname
}
