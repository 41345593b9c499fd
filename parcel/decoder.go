package parcel

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bshark-io/bshark/definition"
)

// Source resolves parcelable definitions referenced by name from
// within other definitions. *definition.Loader satisfies it.
type Source interface {
	Parcelable(qname definition.QName) (*definition.ParcelableDef, error)
}

// Decoder turns raw transaction payloads into structured values by
// interpreting the Parcel calls recorded in compiled definitions.
type Decoder struct {
	source  Source
	version int
}

// NewDecoder creates a decoder resolving nested parcelables through
// source. The Android version decides version-dependent wire details
// such as the strong-binder status word.
func NewDecoder(source Source, androidVersion int) *Decoder {
	return &Decoder{source: source, version: androidVersion}
}

// Value is one decoded argument, field, or return value.
type Value struct {
	Name string
	Data any
}

func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name string `json:"name"`
		Data any    `json:"value"`
	}{v.Name, v.Data})
}

// Transaction is a decoded binder transaction or reply.
type Transaction struct {
	Interface definition.QName `json:"interface"`
	Method    string           `json:"method"`
	Code      uint32           `json:"code"`
	Values    []Value          `json:"values"`
	Leftover  []byte           `json:"leftover,omitempty"`
}

// DecodeIncoming decodes the argument payload of an incoming
// transaction against the method with the given transaction code. On
// failure the returned transaction still carries the values decoded up
// to that point.
func (d *Decoder) DecodeIncoming(bdef *definition.BinderDef, code uint32, payload []byte) (*Transaction, error) {
	mdef := bdef.MethodByCode(code)
	if mdef == nil {
		return nil, fmt.Errorf("no method with transaction code %d in %s", code, bdef.QName)
	}

	tx := &Transaction{Interface: bdef.QName, Method: mdef.Name, Code: code}
	r := NewReader(payload)
	for _, arg := range mdef.Arguments {
		val, err := d.eval(r, arg.Call)
		if err != nil {
			tx.Leftover = r.Remaining()
			return tx, fmt.Errorf("decode %s.%s argument %q: %w", bdef.QName, mdef.Name, arg.Name, err)
		}
		tx.Values = append(tx.Values, Value{Name: arg.Name, Data: val})
	}
	tx.Leftover = r.Remaining()
	return tx, nil
}

// DecodeReply decodes the reply payload of a two-way transaction: the
// return value followed by every out argument.
func (d *Decoder) DecodeReply(bdef *definition.BinderDef, code uint32, payload []byte) (*Transaction, error) {
	mdef := bdef.MethodByCode(code)
	if mdef == nil {
		return nil, fmt.Errorf("no method with transaction code %d in %s", code, bdef.QName)
	}
	if mdef.Oneway {
		return nil, fmt.Errorf("%s.%s is oneway and has no reply", bdef.QName, mdef.Name)
	}

	tx := &Transaction{Interface: bdef.QName, Method: mdef.Name, Code: code}
	r := NewReader(payload)
	for _, rv := range mdef.Retval {
		var name, call string
		switch v := rv.(type) {
		case definition.ReturnDef:
			name, call = "_retval", v.Call
		case definition.ParameterDef:
			name, call = v.Name, v.Call
		default:
			return tx, fmt.Errorf("unsupported return value %T in %s.%s", rv, bdef.QName, mdef.Name)
		}
		val, err := d.eval(r, call)
		if err != nil {
			tx.Leftover = r.Remaining()
			return tx, fmt.Errorf("decode %s.%s reply %q: %w", bdef.QName, mdef.Name, name, err)
		}
		tx.Values = append(tx.Values, Value{Name: name, Data: val})
	}
	tx.Leftover = r.Remaining()
	return tx, nil
}

// DecodeObject decodes a parcelable body in place, without the
// status/name prelude readParcelable consumes.
func (d *Decoder) DecodeObject(r *Reader, pdef *definition.ParcelableDef) ([]Value, error) {
	return d.decodeFields(r, pdef.Fields)
}

func (d *Decoder) decodeFields(r *Reader, fields []definition.Field) ([]Value, error) {
	var values []Value
	for _, f := range fields {
		switch v := f.(type) {
		case definition.Stop:
			return values, nil
		case definition.FieldDef:
			val, err := d.eval(r, v.Call)
			if err != nil {
				return values, fmt.Errorf("field %q: %w", v.Name, err)
			}
			values = append(values, Value{Name: v.Name, Data: val})
		case *definition.ConditionDef:
			guard, err := d.eval(r, v.Call)
			if err != nil {
				return values, fmt.Errorf("condition %q: %w", v.Call, err)
			}
			branch := v.Alternative
			if truthy(guard) {
				branch = v.Consequence
			}
			nested, err := d.decodeFields(r, branch)
			values = append(values, nested...)
			if err != nil {
				return values, err
			}
		default:
			return values, fmt.Errorf("unsupported field %T", f)
		}
	}
	return values, nil
}

// eval runs a single Parcel call against the reader. Calls carry an
// optional type reference after a colon, as in
// "readParcelable:android.os.PatternMatcher".
func (d *Decoder) eval(r *Reader, call string) (any, error) {
	base, ref, _ := strings.Cut(call, ":")

	var val any
	switch base {
	case "readInt":
		val = r.Int32()
	case "readUInt":
		val = r.Uint32()
	case "readLong":
		val = r.Int64()
	case "readULong":
		val = r.Uint64()
	case "readFloat":
		val = r.Float32()
	case "readDouble":
		val = r.Float64()
	case "readShort":
		val = r.Int16()
	case "readChar":
		val = string(r.Char())
	case "readBoolean":
		val = r.Bool()
	case "readByte":
		val = r.Byte()
	case "readByteUnaligned":
		val = r.ByteUnaligned()
	case "readString":
		val = r.String16()
	case "readString8":
		val = r.String8()
	case "readStrongBinder":
		val = r.StrongBinder(d.version)
	case "readIntVector":
		val = readVector(r, func() any { return r.Int32() })
	case "readLongVector":
		val = readVector(r, func() any { return r.Int64() })
	case "readFloatVector":
		val = readVector(r, func() any { return r.Float32() })
	case "readDoubleVector":
		val = readVector(r, func() any { return r.Float64() })
	case "readBooleanVector":
		val = readVector(r, func() any { return r.Bool() })
	case "readCharVector":
		val = readVector(r, func() any { return string(r.Char()) })
	case "readStringVector":
		val = readVector(r, func() any { return r.String16() })
	case "readByteVector":
		val = readVector(r, func() any { return r.ByteUnaligned() })
	case "readParcelable":
		obj, err := d.readParcelable(r, ref)
		if err != nil {
			return nil, err
		}
		val = obj
	case "readParcelableVector", "readList", "readParceledListSlice":
		if ref == "" {
			return nil, fmt.Errorf("%s requires a type reference", base)
		}
		count := r.Count()
		objs := make([]any, 0, count)
		for i := 0; i < count && r.Err() == nil; i++ {
			obj, err := d.readParcelable(r, ref)
			if err != nil {
				return nil, err
			}
			objs = append(objs, obj)
		}
		val = objs
	default:
		return nil, fmt.Errorf("unknown parcel call %q", call)
	}

	if err := r.Err(); err != nil {
		return nil, err
	}
	return val, nil
}

// readParcelable consumes the status prefix and, when no type
// reference is given, the class name written before the object body.
func (d *Decoder) readParcelable(r *Reader, ref string) (any, error) {
	status := r.Int32()
	if err := r.Err(); err != nil {
		return nil, err
	}
	if status != 1 {
		return nil, nil
	}

	name := ref
	if name == "" {
		name = r.String16()
		if err := r.Err(); err != nil {
			return nil, err
		}
	}
	pdef, err := d.source.Parcelable(name)
	if err != nil {
		return nil, fmt.Errorf("resolve parcelable %q: %w", name, err)
	}
	values, err := d.decodeFields(r, pdef.Fields)
	if err != nil {
		return values, fmt.Errorf("%s: %w", name, err)
	}
	return values, nil
}

func readVector(r *Reader, elem func() any) []any {
	count := r.Count()
	vals := make([]any, 0, count)
	for i := 0; i < count && r.Err() == nil; i++ {
		vals = append(vals, elem())
	}
	return vals
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case []any:
		return len(t) > 0
	case []Value:
		return len(t) > 0
	case int16:
		return t != 0
	case int32:
		return t != 0
	case int64:
		return t != 0
	case uint32:
		return t != 0
	case uint64:
		return t != 0
	case float32:
		return t != 0
	case float64:
		return t != 0
	case byte:
		return t != 0
	case string:
		return t != ""
	}
	return true
}
