package plan

import "github.com/zclconf/go-cty/cty"

// Kind identifies how an argument contributes tokens to a command line.
type Kind int

const (
	// KindFlag emits the flag string when the value is true, nothing otherwise.
	KindFlag Kind = iota
	// KindValue emits the flag string (if any) followed by the converted value.
	KindValue
	// KindOptional behaves like KindValue when a value is present, and emits
	// nothing when it is absent.
	KindOptional
	// KindRepeated behaves like KindValue once per element, in element order.
	KindRepeated
)

// String returns the keyword used for the kind in logs and error messages.
func (k Kind) String() string {
	switch k {
	case KindFlag:
		return "flag"
	case KindValue:
		return "value"
	case KindOptional:
		return "optional"
	case KindRepeated:
		return "repeated"
	default:
		return "unknown"
	}
}

// ArgSpec is one field's resolved argument role within a Plan.
type ArgSpec struct {
	Name string
	Kind Kind
	Flag string

	// Type is the declared value type. For KindRepeated it is the element
	// type of the declared collection.
	Type cty.Type
}

// Plan is the resolved, ordered argument layout for one command shape. It is
// immutable after Resolve returns it and therefore safe to share across any
// number of concurrent command builds.
type Plan struct {
	Command    string
	Executable string

	// Args preserves the declaration order of the annotated fields. Callers
	// must not mutate it.
	Args []ArgSpec
}

// Arg returns the spec for the named argument, if the plan contains one.
func (p *Plan) Arg(name string) (*ArgSpec, bool) {
	for i := range p.Args {
		if p.Args[i].Name == name {
			return &p.Args[i], true
		}
	}
	return nil, false
}
