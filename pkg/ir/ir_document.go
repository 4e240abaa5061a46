package ir

import (
	"github.com/wundergraph/graphql-ir-compiler/pkg/schema"
)

type Operation string

const (
	OperationQuery        Operation = "query"
	OperationMutation     Operation = "mutation"
	OperationSubscription Operation = "subscription"
)

type VariableDefinition struct {
	Location     Location
	Name         string
	Type         *schema.Type
	DefaultValue Value
}

// Root is an operation definition.
type Root struct {
	Location            Location
	Operation           Operation
	Name                string
	VariableDefinitions []*VariableDefinition
	Type                *schema.Type
	Directives          []*Directive
	Selections          []Selection
}

func (*Root) Kind() NodeKind                 { return NodeKindRoot }
func (r *Root) Loc() Location                { return r.Location }
func (*Root) isNode()                        {}
func (*Root) isDefinition()                  {}
func (r *Root) DefinitionName() string       { return r.Name }
func (r *Root) DefinitionType() *schema.Type { return r.Type }
func (r *Root) SelectionSet() []Selection    { return r.Selections }

func (r *Root) WithSelections(selections []Selection) Definition {
	next := *r
	next.Selections = selections
	return &next
}

type Fragment struct {
	Location      Location
	Name          string
	TypeCondition *schema.Type
	Directives    []*Directive
	Selections    []Selection
}

func (*Fragment) Kind() NodeKind                 { return NodeKindFragment }
func (f *Fragment) Loc() Location                { return f.Location }
func (*Fragment) isNode()                        {}
func (*Fragment) isDefinition()                  {}
func (f *Fragment) DefinitionName() string       { return f.Name }
func (f *Fragment) DefinitionType() *schema.Type { return f.TypeCondition }
func (f *Fragment) SelectionSet() []Selection    { return f.Selections }

func (f *Fragment) WithSelections(selections []Selection) Definition {
	next := *f
	next.Selections = selections
	return &next
}
