package ir

import (
	"github.com/wundergraph/graphql-ir-compiler/pkg/schema"
)

type LinkedField struct {
	Location   Location
	Alias      string
	Name       string
	Type       *schema.Type
	Args       []*Argument
	Directives []*Directive
	Selections []Selection
	Metadata   Metadata
}

func (*LinkedField) Kind() NodeKind                  { return NodeKindLinkedField }
func (f *LinkedField) Loc() Location                 { return f.Location }
func (*LinkedField) isNode()                         {}
func (*LinkedField) isSelection()                    {}
func (f *LinkedField) FieldAlias() string            { return f.Alias }
func (f *LinkedField) FieldName() string             { return f.Name }
func (f *LinkedField) FieldType() *schema.Type       { return f.Type }
func (f *LinkedField) FieldArgs() []*Argument        { return f.Args }
func (f *LinkedField) FieldDirectives() []*Directive { return f.Directives }

func (f *LinkedField) WithSelections(selections []Selection) *LinkedField {
	next := *f
	next.Selections = selections
	return &next
}

type ScalarField struct {
	Location   Location
	Alias      string
	Name       string
	Type       *schema.Type
	Args       []*Argument
	Directives []*Directive
	Metadata   Metadata
}

func (*ScalarField) Kind() NodeKind                  { return NodeKindScalarField }
func (f *ScalarField) Loc() Location                 { return f.Location }
func (*ScalarField) isNode()                         {}
func (*ScalarField) isSelection()                    {}
func (f *ScalarField) FieldAlias() string            { return f.Alias }
func (f *ScalarField) FieldName() string             { return f.Name }
func (f *ScalarField) FieldType() *schema.Type       { return f.Type }
func (f *ScalarField) FieldArgs() []*Argument        { return f.Args }
func (f *ScalarField) FieldDirectives() []*Directive { return f.Directives }

type InlineFragment struct {
	Location      Location
	TypeCondition *schema.Type
	Directives    []*Directive
	Selections    []Selection
}

func (*InlineFragment) Kind() NodeKind  { return NodeKindInlineFragment }
func (f *InlineFragment) Loc() Location { return f.Location }
func (*InlineFragment) isNode()         {}
func (*InlineFragment) isSelection()    {}

func (f *InlineFragment) WithSelections(selections []Selection) *InlineFragment {
	next := *f
	next.Selections = selections
	return &next
}

// FragmentSpread references a named fragment. Args are fragment arguments, not directive arguments.
type FragmentSpread struct {
	Location   Location
	Name       string
	Args       []*Argument
	Directives []*Directive
}

func (*FragmentSpread) Kind() NodeKind  { return NodeKindFragmentSpread }
func (s *FragmentSpread) Loc() Location { return s.Location }
func (*FragmentSpread) isNode()         {}
func (*FragmentSpread) isSelection()    {}

// WithDirectives returns a copy of the spread with the given directives.
func (s *FragmentSpread) WithDirectives(directives []*Directive) *FragmentSpread {
	next := *s
	next.Directives = directives
	return &next
}

// ModuleImport is created by the match transform only. It describes a fragment that a runtime
// loader fetches on demand, keyed by ID. Selections are the stripped fragment spread followed
// by the operation and component resource fields.
type ModuleImport struct {
	Location     Location
	DocumentName string
	ID           string
	Module       string
	Name         string
	Selections   []Selection
}

func (*ModuleImport) Kind() NodeKind  { return NodeKindModuleImport }
func (m *ModuleImport) Loc() Location { return m.Location }
func (*ModuleImport) isNode()         {}
func (*ModuleImport) isSelection()    {}

func (m *ModuleImport) WithSelections(selections []Selection) *ModuleImport {
	next := *m
	next.Selections = selections
	return &next
}
