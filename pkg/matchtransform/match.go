package matchtransform

import (
	"fmt"

	"github.com/wundergraph/graphql-ir-compiler/pkg/ir"
	"github.com/wundergraph/graphql-ir-compiler/pkg/irvisitor"
	"github.com/wundergraph/graphql-ir-compiler/pkg/operationreport"
	"github.com/wundergraph/graphql-ir-compiler/pkg/schema"
)

// seenType records where a concrete type was first matched.
type seenType struct {
	typeName string
	location ir.Location
}

// seenTypes keeps matched types in the order they were first selected.
type seenTypes []seenType

func (s seenTypes) find(typeName string) (seenType, bool) {
	for i := range s {
		if s[i].typeName == typeName {
			return s[i], true
		}
	}
	return seenType{}, false
}

func (s seenTypes) typeNames() []string {
	names := make([]string, len(s))
	for i := range s {
		names[i] = s[i].typeName
	}
	return names
}

func (m *matchTransform) VisitLinkedField(w *irvisitor.Walk[state], field *ir.LinkedField, st state) (ir.Selection, error) {
	transformed, err := w.TraverseLinkedField(field, st.enterField(field.Alias, field.Type))
	if err != nil {
		return nil, err
	}

	matchDirective, ok := ir.DirectiveByName(transformed.Directives, MatchDirectiveName)
	if !ok {
		return transformed, nil
	}
	return rewriteMatchField(w.Context().Schema(), transformed, matchDirective, st.parentType)
}

// rewriteMatchField validates a @match field whose selections have already been transformed and
// replaces the directive with the computed "supported" argument.
func rewriteMatchField(s *schema.Schema, field *ir.LinkedField, matchDirective *ir.Directive, parentType *schema.Type) (*ir.LinkedField, error) {
	rawParentType := s.RawType(parentType)
	if !s.IsInterface(rawParentType) && !s.IsObject(rawParentType) {
		return nil, operationreport.ErrMatchIncompatibleParentType(field.Name, s.TypeString(parentType), field.Location)
	}

	fieldDefinition, err := s.ExpectField(rawParentType, field.Name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", passName, err)
	}

	supportedDefinition, ok := s.FieldArgument(fieldDefinition, SupportedArgumentName)
	if !ok || !isStringList(s, supportedDefinition.Type) {
		return nil, operationreport.ErrMatchMissingSupportedArgument(field.Name, SupportedArgumentName, field.Location)
	}

	rawFieldType := s.RawType(field.Type)
	if !s.IsAbstractType(rawFieldType) {
		return nil, operationreport.ErrMatchNonAbstractType(field.Name, field.Location)
	}

	var seen seenTypes
	selections := make([]ir.Selection, 0, len(field.Selections))
	for _, selection := range field.Selections {
		if scalar, ok := selection.(*ir.ScalarField); ok && scalar.Name == schema.TypeNameTypename {
			selections = append(selections, selection)
			continue
		}

		variant, ok := moduleVariant(selection)
		if !ok {
			return nil, operationreport.ErrMatchInvalidSelection(selection.Loc())
		}

		matchedType := s.TypeString(variant.TypeCondition)
		if previous, exists := seen.find(matchedType); exists {
			return nil, operationreport.ErrMatchDuplicateType(s.DefinitionString(rawFieldType), matchedType, variant.Location, previous.location)
		}
		seen = append(seen, seenType{typeName: matchedType, location: variant.Location})
		selections = append(selections, variant)
	}

	if len(seen) == 0 {
		return nil, operationreport.ErrMatchNoModuleSelection(matchDirective.Location)
	}

	if supplied, ok := ir.ArgumentByName(field.Args, SupportedArgumentName); ok {
		return nil, operationreport.ErrMatchExplicitSupportedArgument(SupportedArgumentName, supplied.Location)
	}

	args := make([]*ir.Argument, 0, len(field.Args)+1)
	args = append(args, field.Args...)
	args = append(args, &ir.Argument{
		Location: field.Location,
		Name:     SupportedArgumentName,
		Type:     supportedDefinition.Type,
		Value: &ir.Literal{
			Location: field.Location,
			Value:    seen.typeNames(),
		},
	})

	return &ir.LinkedField{
		Location:   field.Location,
		Alias:      field.Alias,
		Name:       field.Name,
		Type:       field.Type,
		Args:       args,
		Selections: selections,
	}, nil
}

// moduleVariant returns selection if it is an inline fragment wrapping exactly one module import.
func moduleVariant(selection ir.Selection) (*ir.InlineFragment, bool) {
	fragment, ok := selection.(*ir.InlineFragment)
	if !ok || len(fragment.Selections) != 1 || fragment.TypeCondition == nil {
		return nil, false
	}
	if _, ok := fragment.Selections[0].(*ir.ModuleImport); !ok {
		return nil, false
	}
	return fragment, true
}

// isStringList reports whether t is a list of strings, ignoring the nullability of the list and
// of its items.
func isStringList(s *schema.Schema, t *schema.Type) bool {
	list := s.NullableType(t)
	if !s.IsList(list) {
		return false
	}
	return s.IsString(s.NullableType(s.ListItemType(list)))
}
