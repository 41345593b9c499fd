// Package definition holds compiled Binder interface and parcelable
// definitions, their JSON interchange format, and a search-path loader.
//
// A definition describes what operations a decoder has to perform on a
// Parcel payload: binder definitions list methods keyed by transaction
// code, parcelable definitions list fields in read order. Definitions
// are produced elsewhere and enter the system as .json artifacts.
package definition

// QName is a qualified class name of the form "package.ClassName".
type QName = string

// RPath is a path relative to a search-path root, such as
// "android/app/IActivityManager.json".
type RPath = string

// Kind classifies a definition.
type Kind string

const (
	KindParcelable     Kind = "PARCELABLE"
	KindParcelableJava Kind = "PARCELABLE_JAVA"
	KindBinder         Kind = "BINDER"
	KindSpecial        Kind = "SPECIAL"
	KindUndefined      Kind = "UNDEFINED"
)

// Direction marks how an argument travels in a method call.
type Direction int

const (
	DirectionIn Direction = iota
	DirectionOut
	DirectionInOut
)

func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "in"
	case DirectionOut:
		return "out"
	case DirectionInOut:
		return "inout"
	}
	return "unknown"
}
