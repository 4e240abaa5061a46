// Package irparser builds IR documents from GraphQL executable documents.
//
// Every field, argument and directive is resolved against the schema while building,
// so the resulting IR carries type handles for all nodes.
package irparser

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"github.com/vektah/gqlparser/v2/parser"

	"github.com/wundergraph/graphql-ir-compiler/pkg/ir"
	"github.com/wundergraph/graphql-ir-compiler/pkg/operationreport"
	"github.com/wundergraph/graphql-ir-compiler/pkg/schema"
)

// Parse builds the operations and fragments of all sources, in source order.
func Parse(s *schema.Schema, sources ...*ast.Source) ([]ir.Definition, error) {
	var definitions []ir.Definition
	for _, source := range sources {
		parsed, err := parseSource(s, source)
		if err != nil {
			return nil, err
		}
		definitions = append(definitions, parsed...)
	}
	return definitions, nil
}

func ParseString(s *schema.Schema, name, input string) ([]ir.Definition, error) {
	return Parse(s, &ast.Source{Name: name, Input: input})
}

func parseSource(s *schema.Schema, source *ast.Source) ([]ir.Definition, error) {
	document, err := parser.ParseQuery(source)
	if err != nil {
		return nil, parseError(err, source.Name)
	}

	b := &builder{schema: s, source: source.Name}
	definitions := make([]ir.Definition, 0, len(document.Operations)+len(document.Fragments))
	for _, operation := range document.Operations {
		root, err := b.buildRoot(operation)
		if err != nil {
			return nil, err
		}
		definitions = append(definitions, root)
	}
	for _, fragment := range document.Fragments {
		built, err := b.buildFragment(fragment)
		if err != nil {
			return nil, err
		}
		definitions = append(definitions, built)
	}
	return definitions, nil
}

func parseError(err error, sourceName string) error {
	var gqlErr *gqlerror.Error
	if !errors.As(err, &gqlErr) {
		return operationreport.ErrParse(err.Error(), ir.Location{Source: sourceName})
	}
	loc := ir.Location{Source: sourceName}
	if len(gqlErr.Locations) != 0 {
		loc.Line = gqlErr.Locations[0].Line
		loc.Column = gqlErr.Locations[0].Column
	}
	return operationreport.ErrParse(gqlErr.Message, loc)
}

type builder struct {
	schema    *schema.Schema
	source    string
	variables ast.VariableDefinitionList
	inRoot    bool
}

func (b *builder) location(position *ast.Position) ir.Location {
	if position == nil {
		return ir.Location{Source: b.source}
	}
	return ir.Location{
		Source: b.source,
		Line:   position.Line,
		Column: position.Column,
	}
}

func (b *builder) buildRoot(operation *ast.OperationDefinition) (*ir.Root, error) {
	loc := b.location(operation.Position)
	if operation.Name == "" {
		return nil, operationreport.ErrParse("operations must be named", loc)
	}

	var rootType *schema.Definition
	switch operation.Operation {
	case ast.Query:
		rootType = b.schema.QueryType()
	case ast.Mutation:
		rootType = b.schema.MutationType()
	case ast.Subscription:
		rootType = b.schema.SubscriptionType()
	}
	if rootType == nil {
		return nil, operationreport.ErrParse(fmt.Sprintf("schema does not support %s operations", operation.Operation), loc)
	}

	b.variables = operation.VariableDefinitions
	b.inRoot = true
	defer func() {
		b.variables = nil
		b.inRoot = false
	}()

	variableDefinitions := make([]*ir.VariableDefinition, 0, len(operation.VariableDefinitions))
	for _, variable := range operation.VariableDefinitions {
		if _, ok := b.schema.TypeFromString(variable.Type.Name()); !ok {
			return nil, operationreport.ErrUnknownType(variable.Type.Name(), b.location(variable.Position))
		}
		definition := &ir.VariableDefinition{
			Location: b.location(variable.Position),
			Name:     variable.Variable,
			Type:     variable.Type,
		}
		if variable.DefaultValue != nil {
			value, err := b.buildValue(variable.DefaultValue, variable.Type)
			if err != nil {
				return nil, err
			}
			definition.DefaultValue = value
		}
		variableDefinitions = append(variableDefinitions, definition)
	}

	directives, err := b.buildDirectives(operation.Directives)
	if err != nil {
		return nil, err
	}
	selections, err := b.buildSelections(operation.SelectionSet, rootType)
	if err != nil {
		return nil, err
	}

	return &ir.Root{
		Location:            loc,
		Operation:           ir.Operation(operation.Operation),
		Name:                operation.Name,
		VariableDefinitions: variableDefinitions,
		Type:                b.schema.NamedType(rootType.Name),
		Directives:          directives,
		Selections:          selections,
	}, nil
}

func (b *builder) buildFragment(fragment *ast.FragmentDefinition) (*ir.Fragment, error) {
	loc := b.location(fragment.Position)
	typeCondition, ok := b.schema.TypeFromString(fragment.TypeCondition)
	if !ok {
		return nil, operationreport.ErrUnknownType(fragment.TypeCondition, loc)
	}
	if !b.schema.IsCompositeType(typeCondition) {
		return nil, operationreport.ErrParse(fmt.Sprintf("fragment '%s' cannot condition on non composite type '%s'", fragment.Name, fragment.TypeCondition), loc)
	}

	directives, err := b.buildDirectives(fragment.Directives)
	if err != nil {
		return nil, err
	}
	selections, err := b.buildSelections(fragment.SelectionSet, typeCondition)
	if err != nil {
		return nil, err
	}

	return &ir.Fragment{
		Location:      loc,
		Name:          fragment.Name,
		TypeCondition: b.schema.NamedType(typeCondition.Name),
		Directives:    directives,
		Selections:    selections,
	}, nil
}

func (b *builder) buildSelections(set ast.SelectionSet, parent *schema.Definition) ([]ir.Selection, error) {
	selections := make([]ir.Selection, 0, len(set))
	for _, selection := range set {
		var (
			built ir.Selection
			err   error
		)
		switch selection := selection.(type) {
		case *ast.Field:
			built, err = b.buildField(selection, parent)
		case *ast.InlineFragment:
			built, err = b.buildInlineFragment(selection, parent)
		case *ast.FragmentSpread:
			built, err = b.buildFragmentSpread(selection)
		default:
			err = operationreport.ErrParse(fmt.Sprintf("unsupported selection %T", selection), ir.Location{Source: b.source})
		}
		if err != nil {
			return nil, err
		}
		selections = append(selections, built)
	}
	return selections, nil
}

func (b *builder) buildField(field *ast.Field, parent *schema.Definition) (ir.Selection, error) {
	loc := b.location(field.Position)
	definition, ok := b.schema.FieldByName(parent, field.Name)
	if !ok {
		return nil, operationreport.ErrFieldUndefinedOnType(field.Name, parent.Name, loc)
	}
	fieldType := b.schema.RawType(definition.Type)
	if fieldType == nil {
		return nil, operationreport.ErrUnknownType(definition.Type.Name(), loc)
	}

	args, err := b.buildArguments(field.Arguments, definition.Arguments, loc)
	if err != nil {
		return nil, err
	}
	directives, err := b.buildDirectives(field.Directives)
	if err != nil {
		return nil, err
	}

	alias := field.Alias
	if alias == "" {
		alias = field.Name
	}

	if b.schema.IsLeafType(fieldType) {
		if len(field.SelectionSet) != 0 {
			return nil, operationreport.ErrParse(fmt.Sprintf("field '%s' of type '%s' must not have a selection set", field.Name, b.schema.TypeString(definition.Type)), loc)
		}
		return &ir.ScalarField{
			Location:   loc,
			Alias:      alias,
			Name:       field.Name,
			Type:       definition.Type,
			Args:       args,
			Directives: directives,
		}, nil
	}

	if len(field.SelectionSet) == 0 {
		return nil, operationreport.ErrParse(fmt.Sprintf("field '%s' of type '%s' must have a selection of subfields", field.Name, b.schema.TypeString(definition.Type)), loc)
	}
	selections, err := b.buildSelections(field.SelectionSet, fieldType)
	if err != nil {
		return nil, err
	}
	return &ir.LinkedField{
		Location:   loc,
		Alias:      alias,
		Name:       field.Name,
		Type:       definition.Type,
		Args:       args,
		Directives: directives,
		Selections: selections,
	}, nil
}

func (b *builder) buildInlineFragment(fragment *ast.InlineFragment, parent *schema.Definition) (ir.Selection, error) {
	loc := b.location(fragment.Position)
	typeCondition := parent
	if fragment.TypeCondition != "" {
		var ok bool
		typeCondition, ok = b.schema.TypeFromString(fragment.TypeCondition)
		if !ok {
			return nil, operationreport.ErrUnknownType(fragment.TypeCondition, loc)
		}
		if !b.schema.IsCompositeType(typeCondition) {
			return nil, operationreport.ErrParse(fmt.Sprintf("inline fragment cannot condition on non composite type '%s'", fragment.TypeCondition), loc)
		}
		if !b.schema.DoTypesOverlap(parent, typeCondition) {
			return nil, operationreport.ErrParse(fmt.Sprintf("fragment cannot be spread here as objects of type '%s' can never be of type '%s'", parent.Name, fragment.TypeCondition), loc)
		}
	}

	directives, err := b.buildDirectives(fragment.Directives)
	if err != nil {
		return nil, err
	}
	selections, err := b.buildSelections(fragment.SelectionSet, typeCondition)
	if err != nil {
		return nil, err
	}
	return &ir.InlineFragment{
		Location:      loc,
		TypeCondition: b.schema.NamedType(typeCondition.Name),
		Directives:    directives,
		Selections:    selections,
	}, nil
}

func (b *builder) buildFragmentSpread(spread *ast.FragmentSpread) (ir.Selection, error) {
	directives, err := b.buildDirectives(spread.Directives)
	if err != nil {
		return nil, err
	}
	return &ir.FragmentSpread{
		Location:   b.location(spread.Position),
		Name:       spread.Name,
		Directives: directives,
	}, nil
}

func (b *builder) buildDirectives(directives ast.DirectiveList) ([]*ir.Directive, error) {
	if len(directives) == 0 {
		return nil, nil
	}
	out := make([]*ir.Directive, 0, len(directives))
	for _, directive := range directives {
		loc := b.location(directive.Position)
		definition, ok := b.schema.Definition().Directives[directive.Name]
		if !ok {
			return nil, operationreport.ErrParse(fmt.Sprintf("unknown directive '@%s'", directive.Name), loc)
		}
		args, err := b.buildArguments(directive.Arguments, definition.Arguments, loc)
		if err != nil {
			return nil, err
		}
		out = append(out, &ir.Directive{
			Location: loc,
			Name:     directive.Name,
			Args:     args,
		})
	}
	return out, nil
}

func (b *builder) buildArguments(args ast.ArgumentList, definitions ast.ArgumentDefinitionList, parentLoc ir.Location) ([]*ir.Argument, error) {
	if len(args) == 0 {
		return nil, nil
	}
	out := make([]*ir.Argument, 0, len(args))
	for _, arg := range args {
		loc := b.location(arg.Position)
		if loc.Line == 0 {
			loc = parentLoc
		}
		definition := definitions.ForName(arg.Name)
		if definition == nil {
			return nil, operationreport.ErrParse(fmt.Sprintf("unknown argument '%s'", arg.Name), loc)
		}
		value, err := b.buildValue(arg.Value, definition.Type)
		if err != nil {
			return nil, err
		}
		out = append(out, &ir.Argument{
			Location: loc,
			Name:     arg.Name,
			Type:     definition.Type,
			Value:    value,
		})
	}
	return out, nil
}

func (b *builder) buildValue(value *ast.Value, expectedType *schema.Type) (ir.Value, error) {
	loc := b.location(value.Position)
	if value.Kind == ast.Variable {
		variableType := expectedType
		if b.inRoot {
			definition := b.variables.ForName(value.Raw)
			if definition == nil {
				return nil, operationreport.ErrUndefinedVariable(value.Raw, loc)
			}
			variableType = definition.Type
		}
		return &ir.Variable{
			Location:     loc,
			VariableName: value.Raw,
			Type:         variableType,
		}, nil
	}

	constant, err := b.constantValue(value)
	if err != nil {
		return nil, err
	}
	return &ir.Literal{
		Location: loc,
		Value:    constant,
	}, nil
}

func (b *builder) constantValue(value *ast.Value) (interface{}, error) {
	loc := b.location(value.Position)
	switch value.Kind {
	case ast.IntValue:
		parsed, err := strconv.ParseInt(value.Raw, 10, 64)
		if err != nil {
			return nil, operationreport.ErrParse(fmt.Sprintf("invalid int value '%s'", value.Raw), loc)
		}
		return parsed, nil
	case ast.FloatValue:
		parsed, err := strconv.ParseFloat(value.Raw, 64)
		if err != nil {
			return nil, operationreport.ErrParse(fmt.Sprintf("invalid float value '%s'", value.Raw), loc)
		}
		return parsed, nil
	case ast.StringValue, ast.BlockValue, ast.EnumValue:
		return value.Raw, nil
	case ast.BooleanValue:
		return value.Raw == "true", nil
	case ast.NullValue:
		return nil, nil
	case ast.ListValue:
		list := make([]interface{}, 0, len(value.Children))
		for _, child := range value.Children {
			item, err := b.constantValue(child.Value)
			if err != nil {
				return nil, err
			}
			list = append(list, item)
		}
		return list, nil
	case ast.ObjectValue:
		object := make(map[string]interface{}, len(value.Children))
		for _, child := range value.Children {
			item, err := b.constantValue(child.Value)
			if err != nil {
				return nil, err
			}
			object[child.Name] = item
		}
		return object, nil
	case ast.Variable:
		return nil, operationreport.ErrParse(fmt.Sprintf("variable '$%s' is not supported inside list or object values", value.Raw), loc)
	default:
		return nil, operationreport.ErrParse(fmt.Sprintf("unsupported value '%s'", value.Raw), loc)
	}
}
