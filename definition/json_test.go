package definition

import (
	"reflect"
	"testing"
)

func TestFromJSONBinder(t *testing.T) {
	doc := `{
		"qname": "android.app.IActivityManager",
		"type": "BINDER",
		"methods": [
			{
				"name": "openContentUri",
				"tc": 1,
				"oneway": false,
				"retval": [{"call": "readParcelable:android.os.ParcelFileDescriptor"}],
				"arguments": [{"name": "uriString", "call": "readString", "direction": 0}]
			},
			{
				"name": "registerUidObserver",
				"tc": 2,
				"oneway": true,
				"retval": null,
				"arguments": [
					{"name": "observer", "call": "readStrongBinder", "direction": 0},
					{"name": "which", "call": "readInt", "direction": 0}
				]
			}
		]
	}`

	def, err := FromJSON([]byte(doc))
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}

	bdef, ok := def.(*BinderDef)
	if !ok {
		t.Fatalf("FromJSON returned %T, want *BinderDef", def)
	}
	if bdef.QName != "android.app.IActivityManager" {
		t.Errorf("QName = %q, want %q", bdef.QName, "android.app.IActivityManager")
	}
	if len(bdef.Methods) != 2 {
		t.Fatalf("got %d methods, want 2", len(bdef.Methods))
	}

	t.Run("two-way method", func(t *testing.T) {
		m := bdef.MethodByCode(1)
		if m == nil {
			t.Fatal("MethodByCode(1) = nil")
		}
		if m.Name != "openContentUri" {
			t.Errorf("Name = %q, want %q", m.Name, "openContentUri")
		}
		if m.Oneway {
			t.Error("Oneway = true, want false")
		}
		if len(m.Retval) != 1 {
			t.Fatalf("got %d retval entries, want 1", len(m.Retval))
		}
		rdef, ok := m.Retval[0].(ReturnDef)
		if !ok {
			t.Fatalf("Retval[0] is %T, want ReturnDef", m.Retval[0])
		}
		if rdef.Call != "readParcelable:android.os.ParcelFileDescriptor" {
			t.Errorf("Call = %q", rdef.Call)
		}
	})

	t.Run("oneway method", func(t *testing.T) {
		m := bdef.MethodByName("registerUidObserver")
		if m == nil {
			t.Fatal("MethodByName = nil")
		}
		if !m.Oneway {
			t.Error("Oneway = false, want true")
		}
		if m.Retval != nil {
			t.Errorf("Retval = %v, want nil", m.Retval)
		}
		if len(m.Arguments) != 2 {
			t.Fatalf("got %d arguments, want 2", len(m.Arguments))
		}
		if m.Arguments[1].Call != "readInt" {
			t.Errorf("Arguments[1].Call = %q, want %q", m.Arguments[1].Call, "readInt")
		}
	})
}

func TestBinderRoundTrip(t *testing.T) {
	bdef := &BinderDef{
		QName: "android.app.IFilter",
		Kind:  KindBinder,
		Methods: []*MethodDef{
			{
				Name: "match",
				Code: 1,
				Retval: []ReturnValue{
					ReturnDef{Call: "readInt"},
					ParameterDef{
						Name:      "outMatcher",
						Call:      "readParcelable:android.os.PatternMatcher",
						Direction: DirectionOut,
					},
				},
				Arguments: []ParameterDef{
					{Name: "uri", Call: "readString"},
				},
			},
		},
	}

	data, err := ToJSON(bdef)
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	def, err := FromJSON(data)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	got, ok := def.(*BinderDef)
	if !ok {
		t.Fatalf("FromJSON returned %T, want *BinderDef", def)
	}
	if !reflect.DeepEqual(got, bdef) {
		t.Errorf("round trip mismatch:\ngot  %#v\nwant %#v", got, bdef)
	}

	// A retval entry carrying a name comes back as an out parameter.
	pdef, ok := got.Methods[0].Retval[1].(ParameterDef)
	if !ok {
		t.Fatalf("Retval[1] is %T, want ParameterDef", got.Methods[0].Retval[1])
	}
	if pdef.Name != "outMatcher" || pdef.Direction != DirectionOut {
		t.Errorf("Retval[1] = %+v", pdef)
	}
}

func TestFromJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"no type", `{"qname": "a.B"}`},
		{"unsupported type", `{"qname": "a.B", "type": "SPECIAL"}`},
		{"invalid json", `{"qname":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromJSON([]byte(tt.doc)); err == nil {
				t.Error("FromJSON succeeded, want error")
			}
		})
	}
}

func TestParcelableRoundTrip(t *testing.T) {
	pdef := &ParcelableDef{
		QName: "android.os.Sample",
		Kind:  KindParcelableJava,
		Fields: []Field{
			FieldDef{Name: "mFlags", Call: "readInt"},
			&ConditionDef{
				Call:  "readInt",
				Check: "1",
				Op:    "==",
				Consequence: []Field{
					FieldDef{Name: "mName", Call: "readString"},
				},
				Alternative: []Field{
					FieldDef{Name: "mId", Call: "readLong"},
				},
			},
			Stop{},
		},
	}

	data, err := ToJSON(pdef)
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	def, err := FromJSON(data)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	got, ok := def.(*ParcelableDef)
	if !ok {
		t.Fatalf("FromJSON returned %T, want *ParcelableDef", def)
	}
	if !reflect.DeepEqual(got, pdef) {
		t.Errorf("round trip mismatch:\ngot  %#v\nwant %#v", got, pdef)
	}
}
