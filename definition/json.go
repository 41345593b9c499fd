package definition

import (
	"encoding/json"
	"fmt"
)

// The interchange documents mirror the shape the Python tooling emits:
// binder documents carry a "methods" array, parcelable documents a
// "fields" array. Inside a field list, an empty object is the stop
// marker and an object with a "check" key is a condition.

type fieldJSON struct {
	Name        string      `json:"name,omitempty"`
	Call        string      `json:"call,omitempty"`
	Check       *string     `json:"check,omitempty"`
	Op          string      `json:"op,omitempty"`
	Consequence []fieldJSON `json:"consequence,omitempty"`
	Alternative []fieldJSON `json:"alternative,omitempty"`
}

type returnValueJSON struct {
	Name      *string   `json:"name,omitempty"`
	Call      string    `json:"call"`
	Direction Direction `json:"direction,omitempty"`
}

type methodJSON struct {
	Name      string            `json:"name"`
	Code      uint32            `json:"tc"`
	Oneway    bool              `json:"oneway"`
	Retval    []returnValueJSON `json:"retval"`
	Arguments []returnValueJSON `json:"arguments"`
}

type definitionJSON struct {
	QName   QName        `json:"qname"`
	Kind    Kind         `json:"type"`
	Methods []methodJSON `json:"methods,omitempty"`
	Fields  []fieldJSON  `json:"fields,omitempty"`
}

// ToJSON renders a definition as an indented interchange document.
func ToJSON(def Definition) ([]byte, error) {
	doc, err := toDoc(def)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(doc, "", "  ")
}

// FromJSON parses an interchange document into a *BinderDef or a
// *ParcelableDef, depending on the document's "type".
func FromJSON(data []byte) (Definition, error) {
	var doc definitionJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse definition: %w", err)
	}
	return fromDoc(&doc)
}

func toDoc(def Definition) (*definitionJSON, error) {
	switch d := def.(type) {
	case *BinderDef:
		doc := &definitionJSON{QName: d.QName, Kind: d.Kind}
		for _, m := range d.Methods {
			mj := methodJSON{Name: m.Name, Code: m.Code, Oneway: m.Oneway}
			for _, rv := range m.Retval {
				switch v := rv.(type) {
				case ReturnDef:
					mj.Retval = append(mj.Retval, returnValueJSON{Call: v.Call})
				case ParameterDef:
					name := v.Name
					mj.Retval = append(mj.Retval, returnValueJSON{Name: &name, Call: v.Call, Direction: v.Direction})
				default:
					return nil, fmt.Errorf("unsupported return value %T in %s.%s", rv, d.QName, m.Name)
				}
			}
			for _, arg := range m.Arguments {
				name := arg.Name
				mj.Arguments = append(mj.Arguments, returnValueJSON{Name: &name, Call: arg.Call, Direction: arg.Direction})
			}
			doc.Methods = append(doc.Methods, mj)
		}
		return doc, nil
	case *ParcelableDef:
		fields, err := fieldsToDoc(d.Fields)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", d.QName, err)
		}
		return &definitionJSON{QName: d.QName, Kind: d.Kind, Fields: fields}, nil
	}
	return nil, fmt.Errorf("unsupported definition %T", def)
}

func fieldsToDoc(fields []Field) ([]fieldJSON, error) {
	docs := make([]fieldJSON, 0, len(fields))
	for _, f := range fields {
		switch v := f.(type) {
		case FieldDef:
			docs = append(docs, fieldJSON{Name: v.Name, Call: v.Call})
		case *ConditionDef:
			check := v.Check
			consequence, err := fieldsToDoc(v.Consequence)
			if err != nil {
				return nil, err
			}
			alternative, err := fieldsToDoc(v.Alternative)
			if err != nil {
				return nil, err
			}
			docs = append(docs, fieldJSON{
				Call:        v.Call,
				Check:       &check,
				Op:          v.Op,
				Consequence: consequence,
				Alternative: alternative,
			})
		case Stop:
			docs = append(docs, fieldJSON{})
		default:
			return nil, fmt.Errorf("unsupported field %T", f)
		}
	}
	return docs, nil
}

func fromDoc(doc *definitionJSON) (Definition, error) {
	switch doc.Kind {
	case KindBinder:
		bdef := &BinderDef{QName: doc.QName, Kind: doc.Kind}
		for _, mj := range doc.Methods {
			m := &MethodDef{Name: mj.Name, Code: mj.Code, Oneway: mj.Oneway}
			for _, rv := range mj.Retval {
				if rv.Name != nil {
					m.Retval = append(m.Retval, ParameterDef{Name: *rv.Name, Call: rv.Call, Direction: rv.Direction})
				} else {
					m.Retval = append(m.Retval, ReturnDef{Call: rv.Call})
				}
			}
			for _, arg := range mj.Arguments {
				name := ""
				if arg.Name != nil {
					name = *arg.Name
				}
				m.Arguments = append(m.Arguments, ParameterDef{Name: name, Call: arg.Call, Direction: arg.Direction})
			}
			bdef.Methods = append(bdef.Methods, m)
		}
		return bdef, nil
	case KindParcelable, KindParcelableJava:
		pdef := &ParcelableDef{QName: doc.QName, Kind: doc.Kind}
		pdef.Fields = fieldsFromDoc(doc.Fields)
		return pdef, nil
	case "":
		return nil, fmt.Errorf("definition %q: no type specified", doc.QName)
	}
	return nil, fmt.Errorf("definition %q: unsupported type %q", doc.QName, doc.Kind)
}

func fieldsFromDoc(docs []fieldJSON) []Field {
	fields := make([]Field, 0, len(docs))
	for _, fj := range docs {
		switch {
		case fj.Check != nil:
			fields = append(fields, &ConditionDef{
				Call:        fj.Call,
				Check:       *fj.Check,
				Op:          fj.Op,
				Consequence: fieldsFromDoc(fj.Consequence),
				Alternative: fieldsFromDoc(fj.Alternative),
			})
		case fj.Name == "" && fj.Call == "":
			fields = append(fields, Stop{})
		default:
			fields = append(fields, FieldDef{Name: fj.Name, Call: fj.Call})
		}
	}
	return fields
}
