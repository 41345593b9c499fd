package definition

// Field is one step in a parcelable read sequence: a plain FieldDef, a
// ConditionDef guarding two branches, or a Stop marker.
type Field interface {
	field()
}

// FieldDef names a parcelable member and the Parcel call that reads it.
type FieldDef struct {
	Name string
	Call string
}

func (FieldDef) field() {}

// ConditionDef is a boolean guard translated from an if-statement. Call
// reads the guard value; the decoder descends into Consequence when the
// value is truthy and into Alternative otherwise. Check and Op carry
// the source-level comparison for reference.
type ConditionDef struct {
	Call        string
	Check       string
	Op          string
	Consequence []Field
	Alternative []Field
}

func (*ConditionDef) field() {}

// Stop tells the decoder to end the read sequence early.
type Stop struct{}

func (Stop) field() {}

// ReturnValue is an entry in a method's reply payload: either a plain
// ReturnDef for the return value itself or a ParameterDef for an out
// argument.
type ReturnValue interface {
	returnValue()
}

// ReturnDef is a binder method return definition.
type ReturnDef struct {
	Call string
}

func (ReturnDef) returnValue() {}

// ParameterDef names a binder method parameter, the Parcel call that
// reads it, and the direction it travels.
type ParameterDef struct {
	Name      string
	Call      string
	Direction Direction
}

func (ParameterDef) returnValue() {}

// MethodDef is a single binder method. Code is the transaction code;
// it is inferred from declaration order and may differ from the code
// observed in intercepted transactions. Retval is nil for oneway
// methods.
type MethodDef struct {
	Name      string
	Code      uint32
	Oneway    bool
	Retval    []ReturnValue
	Arguments []ParameterDef
}

// Definition is either a *BinderDef or a *ParcelableDef.
type Definition interface {
	QualifiedName() QName
	DefinitionKind() Kind
}

// BinderDef describes a binder interface.
type BinderDef struct {
	QName   QName
	Kind    Kind
	Methods []*MethodDef
}

func (b *BinderDef) QualifiedName() QName { return b.QName }
func (b *BinderDef) DefinitionKind() Kind { return b.Kind }

// MethodByCode returns the method with the given transaction code, or
// nil if the interface does not define it.
func (b *BinderDef) MethodByCode(code uint32) *MethodDef {
	for _, m := range b.Methods {
		if m.Code == code {
			return m
		}
	}
	return nil
}

// MethodByName returns the named method, or nil.
func (b *BinderDef) MethodByName(name string) *MethodDef {
	for _, m := range b.Methods {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// ParcelableDef describes a parcelable class as an ordered read
// sequence.
type ParcelableDef struct {
	QName  QName
	Kind   Kind
	Fields []Field
}

func (p *ParcelableDef) QualifiedName() QName { return p.QName }
func (p *ParcelableDef) DefinitionKind() Kind { return p.Kind }
