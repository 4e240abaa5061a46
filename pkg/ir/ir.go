// Package ir defines the intermediate representation of GraphQL documents used by compiler transforms.
//
// Nodes are treated as immutable values: a transform that wants to change a node creates a copy
// and returns it, the original stays untouched. The set of node kinds is closed, every type
// switch over Node, Selection or Value must handle all kinds.
package ir

import (
	"fmt"

	"github.com/wundergraph/graphql-ir-compiler/pkg/schema"
)

type NodeKind int

const (
	NodeKindUnknown NodeKind = iota
	NodeKindRoot
	NodeKindFragment
	NodeKindLinkedField
	NodeKindScalarField
	NodeKindInlineFragment
	NodeKindFragmentSpread
	NodeKindModuleImport
	NodeKindArgument
	NodeKindDirective
	NodeKindLiteral
	NodeKindVariable
)

func (k NodeKind) String() string {
	switch k {
	case NodeKindRoot:
		return "Root"
	case NodeKindFragment:
		return "Fragment"
	case NodeKindLinkedField:
		return "LinkedField"
	case NodeKindScalarField:
		return "ScalarField"
	case NodeKindInlineFragment:
		return "InlineFragment"
	case NodeKindFragmentSpread:
		return "FragmentSpread"
	case NodeKindModuleImport:
		return "ModuleImport"
	case NodeKindArgument:
		return "Argument"
	case NodeKindDirective:
		return "Directive"
	case NodeKindLiteral:
		return "Literal"
	case NodeKindVariable:
		return "Variable"
	default:
		return "Unknown"
	}
}

// Location points into the source text a node was built from.
// Synthetic nodes reuse the location of the node that caused them.
type Location struct {
	Source string
	Line   int
	Column int
}

func (l Location) String() string {
	if l.Source == "" {
		return fmt.Sprintf("%d:%d", l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d:%d", l.Source, l.Line, l.Column)
}

func (l Location) IsZero() bool {
	return l == Location{}
}

type Node interface {
	Kind() NodeKind
	Loc() Location
	isNode()
}

// Selection is a node that can appear in a selection set.
type Selection interface {
	Node
	isSelection()
}

// Definition is a root node of a document: an operation or a fragment.
type Definition interface {
	Node
	DefinitionName() string
	DefinitionType() *schema.Type
	SelectionSet() []Selection
	WithSelections(selections []Selection) Definition
	isDefinition()
}

// Field is implemented by LinkedField and ScalarField.
type Field interface {
	Selection
	FieldAlias() string
	FieldName() string
	FieldType() *schema.Type
	FieldArgs() []*Argument
	FieldDirectives() []*Directive
}

type Metadata map[string]interface{}

const (
	// MetadataSkipNormalizationNode marks fields that exist in the reader AST only
	// and must not be emitted into the normalization AST.
	MetadataSkipNormalizationNode = "skipNormalizationNode"
)

func (m Metadata) Bool(key string) bool {
	value, ok := m[key].(bool)
	return ok && value
}

// WithEntry returns a copy of m with key set to value.
func (m Metadata) WithEntry(key string, value interface{}) Metadata {
	out := make(Metadata, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	out[key] = value
	return out
}
