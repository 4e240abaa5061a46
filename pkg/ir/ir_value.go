package ir

import (
	"github.com/wundergraph/graphql-ir-compiler/pkg/schema"
)

type Value interface {
	Node
	isValue()
}

// Literal holds a constant Go value: nil, bool, int64, float64, string, []string,
// []interface{} or map[string]interface{}. Enum values are stored as strings.
type Literal struct {
	Location Location
	Value    interface{}
}

func (*Literal) Kind() NodeKind  { return NodeKindLiteral }
func (l *Literal) Loc() Location { return l.Location }
func (*Literal) isNode()         {}
func (*Literal) isValue()        {}

type Variable struct {
	Location     Location
	VariableName string
	Type         *schema.Type
}

func (*Variable) Kind() NodeKind  { return NodeKindVariable }
func (v *Variable) Loc() Location { return v.Location }
func (*Variable) isNode()         {}
func (*Variable) isValue()        {}

type Argument struct {
	Location Location
	Name     string
	Type     *schema.Type
	Value    Value
}

func (*Argument) Kind() NodeKind  { return NodeKindArgument }
func (a *Argument) Loc() Location { return a.Location }
func (*Argument) isNode()         {}

type Directive struct {
	Location Location
	Name     string
	Args     []*Argument
}

func (*Directive) Kind() NodeKind  { return NodeKindDirective }
func (d *Directive) Loc() Location { return d.Location }
func (*Directive) isNode()         {}

// DirectiveByName returns the first directive with the given name.
func DirectiveByName(directives []*Directive, name string) (*Directive, bool) {
	for i := range directives {
		if directives[i].Name == name {
			return directives[i], true
		}
	}
	return nil, false
}

// WithoutDirective returns a new slice without the given directive. The input is not modified.
func WithoutDirective(directives []*Directive, directive *Directive) []*Directive {
	out := make([]*Directive, 0, len(directives))
	for i := range directives {
		if directives[i] == directive {
			continue
		}
		out = append(out, directives[i])
	}
	return out
}

func ArgumentByName(args []*Argument, name string) (*Argument, bool) {
	for i := range args {
		if args[i].Name == name {
			return args[i], true
		}
	}
	return nil, false
}

// LiteralArgumentValues maps argument names to their literal values.
// Arguments bound to variables are left out.
func LiteralArgumentValues(args []*Argument) map[string]interface{} {
	values := make(map[string]interface{}, len(args))
	for i := range args {
		literal, ok := args[i].Value.(*Literal)
		if !ok {
			continue
		}
		values[args[i].Name] = literal.Value
	}
	return values
}
