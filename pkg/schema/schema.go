// Package schema answers type questions about a GraphQL schema for IR transforms.
//
// A Schema is loaded from one or more server SDL sources plus optional client extension sources.
// Types introduced by client extensions are not server types, which matters for transforms that
// require a type to be resolvable by the server.
package schema

import (
	"fmt"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
)

type (
	Type               = ast.Type
	Definition         = ast.Definition
	FieldDefinition    = ast.FieldDefinition
	ArgumentDefinition = ast.ArgumentDefinition
	Source             = ast.Source
)

const (
	TypeNameString   = "String"
	TypeNameTypename = "__typename"
)

// Schema is read only after Load and safe for concurrent use.
type Schema struct {
	schema        *ast.Schema
	clientSources map[string]struct{}
}

// Load builds a schema from server sources and client extension sources.
// Extension sources may extend server types or define new client-only types.
func Load(server []*Source, extensions []*Source) (*Schema, error) {
	if len(server) == 0 {
		return nil, fmt.Errorf("schema: at least one server source is required")
	}

	clientSources := make(map[string]struct{}, len(extensions))
	sources := make([]*Source, 0, len(server)+len(extensions))
	sources = append(sources, server...)
	for i := range extensions {
		clientSources[extensions[i].Name] = struct{}{}
		sources = append(sources, extensions[i])
	}

	loaded, err := gqlparser.LoadSchema(sources...)
	if err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}

	return &Schema{
		schema:        loaded,
		clientSources: clientSources,
	}, nil
}

// MustLoad is Load for static schemas, it panics on error.
func MustLoad(server []*Source, extensions []*Source) *Schema {
	s, err := Load(server, extensions)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Schema) Definition() *ast.Schema {
	return s.schema
}

func (s *Schema) QueryType() *Definition {
	return s.schema.Query
}

func (s *Schema) MutationType() *Definition {
	return s.schema.Mutation
}

func (s *Schema) SubscriptionType() *Definition {
	return s.schema.Subscription
}

// NamedType returns a nullable type handle for the named type.
func (s *Schema) NamedType(name string) *Type {
	return ast.NamedType(name, nil)
}

// NonNullNamedType returns a non-null type handle for the named type.
func (s *Schema) NonNullNamedType(name string) *Type {
	return ast.NonNullNamedType(name, nil)
}

// TypeFromString looks up a named type definition.
func (s *Schema) TypeFromString(name string) (*Definition, bool) {
	def, ok := s.schema.Types[name]
	return def, ok
}

// NullableType strips the outermost non-null wrapper.
func (s *Schema) NullableType(t *Type) *Type {
	if t == nil || !t.NonNull {
		return t
	}
	nullable := *t
	nullable.NonNull = false
	return &nullable
}

func (s *Schema) IsList(t *Type) bool {
	return t != nil && t.Elem != nil
}

// ListItemType returns the element type of a list type or nil for non-list types.
func (s *Schema) ListItemType(t *Type) *Type {
	if !s.IsList(t) {
		return nil
	}
	return t.Elem
}

// IsString reports whether t is exactly the nullable String scalar.
func (s *Schema) IsString(t *Type) bool {
	return t != nil && t.Elem == nil && !t.NonNull && t.NamedType == TypeNameString
}

// RawType unwraps all list and non-null wrappers and returns the underlying definition.
func (s *Schema) RawType(t *Type) *Definition {
	if t == nil {
		return nil
	}
	return s.schema.Types[t.Name()]
}

func (s *Schema) IsObject(def *Definition) bool {
	return def != nil && def.Kind == ast.Object
}

func (s *Schema) IsInterface(def *Definition) bool {
	return def != nil && def.Kind == ast.Interface
}

func (s *Schema) IsUnion(def *Definition) bool {
	return def != nil && def.Kind == ast.Union
}

func (s *Schema) IsAbstractType(def *Definition) bool {
	return s.IsInterface(def) || s.IsUnion(def)
}

func (s *Schema) IsCompositeType(def *Definition) bool {
	return s.IsObject(def) || s.IsAbstractType(def)
}

func (s *Schema) IsScalar(def *Definition) bool {
	return def != nil && def.Kind == ast.Scalar
}

func (s *Schema) IsLeafType(def *Definition) bool {
	return def != nil && (def.Kind == ast.Scalar || def.Kind == ast.Enum)
}

// IsServerType reports whether def was defined by a server source rather than a client extension.
func (s *Schema) IsServerType(def *Definition) bool {
	if def == nil {
		return false
	}
	if def.Position == nil || def.Position.Src == nil {
		return true
	}
	_, isClient := s.clientSources[def.Position.Src.Name]
	return !isClient
}

// AreEqualTypes compares two type handles structurally, including wrappers.
func (s *Schema) AreEqualTypes(a, b *Type) bool {
	for a != nil && b != nil {
		if a.NonNull != b.NonNull || a.NamedType != b.NamedType {
			return false
		}
		a, b = a.Elem, b.Elem
	}
	return a == nil && b == nil
}

func (s *Schema) AreEqualDefinitions(a, b *Definition) bool {
	return a != nil && b != nil && a.Name == b.Name
}

// TypeString renders a type handle in SDL notation, e.g. [String!]!
func (s *Schema) TypeString(t *Type) string {
	if t == nil {
		return ""
	}
	return t.String()
}

func (s *Schema) DefinitionString(def *Definition) string {
	if def == nil {
		return ""
	}
	return def.Name
}

// FieldByName returns the field definition on a composite type. The __typename meta field is
// resolved for every composite type.
func (s *Schema) FieldByName(def *Definition, name string) (*FieldDefinition, bool) {
	if def == nil {
		return nil, false
	}
	if name == TypeNameTypename && s.IsCompositeType(def) {
		return &FieldDefinition{
			Name: TypeNameTypename,
			Type: s.NonNullNamedType(TypeNameString),
		}, true
	}
	field := def.Fields.ForName(name)
	return field, field != nil
}

// ExpectField is FieldByName for callers that already know the field exists,
// e.g. because the document was validated against the schema.
func (s *Schema) ExpectField(def *Definition, name string) (*FieldDefinition, error) {
	if !s.IsCompositeType(def) {
		return nil, fmt.Errorf("schema: expected composite type, got '%s'", s.DefinitionString(def))
	}
	field, ok := s.FieldByName(def, name)
	if !ok {
		return nil, fmt.Errorf("schema: expected type '%s' to define field '%s'", def.Name, name)
	}
	return field, nil
}

// FieldArgument returns the argument definition of a field.
func (s *Schema) FieldArgument(field *FieldDefinition, name string) (*ArgumentDefinition, bool) {
	if field == nil {
		return nil, false
	}
	arg := field.Arguments.ForName(name)
	return arg, arg != nil
}

// IsPossibleType reports whether the object type concrete can be returned for abstract.
func (s *Schema) IsPossibleType(abstract, concrete *Definition) bool {
	if s.AreEqualDefinitions(abstract, concrete) {
		return true
	}
	for _, possible := range s.schema.GetPossibleTypes(abstract) {
		if possible.Name == concrete.Name {
			return true
		}
	}
	return false
}

// DoTypesOverlap reports whether a value of type parent can be of type condition, i.e. whether an
// inline fragment on condition may be selected on parent.
func (s *Schema) DoTypesOverlap(parent, condition *Definition) bool {
	if s.AreEqualDefinitions(parent, condition) {
		return true
	}
	switch {
	case s.IsAbstractType(parent) && s.IsAbstractType(condition):
		for _, possible := range s.schema.GetPossibleTypes(parent) {
			if s.IsPossibleType(condition, possible) {
				return true
			}
		}
		return false
	case s.IsAbstractType(parent):
		return s.IsPossibleType(parent, condition)
	case s.IsAbstractType(condition):
		return s.IsPossibleType(condition, parent)
	default:
		return false
	}
}
