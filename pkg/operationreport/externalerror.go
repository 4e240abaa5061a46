package operationreport

import (
	"fmt"
	"strings"

	"github.com/wundergraph/graphql-ir-compiler/pkg/ir"
)

const (
	resourceFieldSignature = "'%s(%s: String! [%s: String]): %s' field (your schema may choose to omit the '%s' argument but if present it must accept a 'String')"
)

// ExternalError is a diagnostic for the author of a document.
// Locations are ordered by relevance, the first one is the offending node.
type ExternalError struct {
	Message   string     `json:"message"`
	Path      []string   `json:"path,omitempty"`
	Locations []Location `json:"locations,omitempty"`
}

type Location struct {
	Source string `json:"source,omitempty"`
	Line   uint32 `json:"line"`
	Column uint32 `json:"column"`
}

func (l Location) String() string {
	if l.Source == "" {
		return fmt.Sprintf("%d:%d", l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d:%d", l.Source, l.Line, l.Column)
}

func (e ExternalError) Error() string {
	if len(e.Locations) == 0 {
		return e.Message
	}
	locations := make([]string, 0, len(e.Locations))
	for i := range e.Locations {
		locations = append(locations, e.Locations[i].String())
	}
	return fmt.Sprintf("%s (%s)", e.Message, strings.Join(locations, ", "))
}

func LocationFrom(loc ir.Location) Location {
	return Location{
		Source: loc.Source,
		Line:   uint32(loc.Line),
		Column: uint32(loc.Column),
	}
}

func locations(locs ...ir.Location) []Location {
	out := make([]Location, 0, len(locs))
	for i := range locs {
		if locs[i].IsZero() {
			continue
		}
		out = append(out, LocationFrom(locs[i]))
	}
	return out
}

func ErrParse(message string, loc ir.Location) (err ExternalError) {
	err.Message = message
	err.Locations = locations(loc)
	return err
}

func ErrUnknownType(typeName string, loc ir.Location) (err ExternalError) {
	err.Message = fmt.Sprintf("unknown type '%s'", typeName)
	err.Locations = locations(loc)
	return err
}

func ErrFieldUndefinedOnType(fieldName, typeName string, loc ir.Location) (err ExternalError) {
	err.Message = fmt.Sprintf("field '%s' is not defined on type '%s'", fieldName, typeName)
	err.Locations = locations(loc)
	return err
}

func ErrUndefinedVariable(variableName string, loc ir.Location) (err ExternalError) {
	err.Message = fmt.Sprintf("variable '$%s' is not defined", variableName)
	err.Locations = locations(loc)
	return err
}

func ErrUnknownFragment(fragmentName string, loc ir.Location) (err ExternalError) {
	err.Message = fmt.Sprintf("unknown fragment '%s'", fragmentName)
	err.Locations = locations(loc)
	return err
}

func ErrDuplicateDocument(name string, current, previous ir.Location) (err ExternalError) {
	err.Message = fmt.Sprintf("duplicate document named '%s'", name)
	err.Locations = locations(current, previous)
	return err
}

func ErrMatchIncompatibleParentType(fieldName, parentType string, loc ir.Location) (err ExternalError) {
	err.Message = fmt.Sprintf("@match used on incompatible field '%s'. "+
		"@match may only be used with fields whose parent type is an interface or object, got invalid type '%s'.",
		fieldName, parentType)
	err.Locations = locations(loc)
	return err
}

func ErrMatchMissingSupportedArgument(fieldName, argumentName string, loc ir.Location) (err ExternalError) {
	err.Message = fmt.Sprintf("@match used on incompatible field '%s'. "+
		"@match may only be used with fields that accept a '%s: [String!]!' argument.",
		fieldName, argumentName)
	err.Locations = locations(loc)
	return err
}

func ErrMatchNonAbstractType(fieldName string, loc ir.Location) (err ExternalError) {
	err.Message = fmt.Sprintf("@match used on incompatible field '%s'. "+
		"@match may only be used with fields that return a union or interface.", fieldName)
	err.Locations = locations(loc)
	return err
}

func ErrMatchInvalidSelection(loc ir.Location) (err ExternalError) {
	err.Message = "invalid @match selection: all selections should be fragment spreads with @module."
	err.Locations = locations(loc)
	return err
}

func ErrMatchDuplicateType(abstractType, matchedType string, current, previous ir.Location) (err ExternalError) {
	err.Message = fmt.Sprintf("invalid @match selection: each concrete variant/implementor of '%s' "+
		"may be matched against at-most once, but '%s' was matched against multiple times.",
		abstractType, matchedType)
	err.Locations = locations(current, previous)
	return err
}

func ErrMatchNoModuleSelection(loc ir.Location) (err ExternalError) {
	err.Message = "invalid @match selection: expected at least one @module selection. " +
		"Remove @match or add a '...Fragment @module()' selection."
	err.Locations = locations(loc)
	return err
}

func ErrMatchExplicitSupportedArgument(argumentName string, loc ir.Location) (err ExternalError) {
	err.Message = fmt.Sprintf("invalid @match selection: the '%s' argument "+
		"is automatically added and cannot be supplied explicitly.", argumentName)
	err.Locations = locations(loc)
	return err
}

func ErrModuleWithArguments(loc ir.Location) (err ExternalError) {
	err.Message = "@module does not support fragment arguments."
	err.Locations = locations(loc)
	return err
}

func ErrModuleResourceTypeMissing(fieldName string, loc ir.Location) (err ExternalError) {
	err.Message = fmt.Sprintf("'%s' should be defined on the server schema.", fieldName)
	err.Locations = locations(loc)
	return err
}

func ErrModuleResourceTypeNotScalar(typeName string, loc ir.Location) (err ExternalError) {
	err.Message = fmt.Sprintf("using @module requires the schema to define a scalar '%s' type.", typeName)
	err.Locations = locations(loc)
	return err
}

func ErrModuleAdditionalDirectives(spreadName string, loc ir.Location) (err ExternalError) {
	err.Message = fmt.Sprintf("@module used on invalid fragment spread '...%s'. "+
		"@module may not have additional directives.", spreadName)
	err.Locations = locations(loc)
	return err
}

func ErrModuleAbstractFragment(spreadName, typeName string, spreadLoc, fragmentLoc ir.Location) (err ExternalError) {
	err.Message = fmt.Sprintf("@module used on invalid fragment spread '...%s'. "+
		"@module may only be used with fragments on a concrete (object) type, but the fragment has abstract type '%s'.",
		spreadName, typeName)
	err.Locations = locations(spreadLoc, fragmentLoc)
	return err
}

// ErrModuleInvalidResourceField covers a missing resource field as well as every mismatch in its
// arguments or result type.
func ErrModuleInvalidResourceField(spreadName, typeName, fieldName, moduleArg, idArg, resourceType string, loc ir.Location) (err ExternalError) {
	err.Message = fmt.Sprintf("@module used on invalid fragment spread '...%s'. @module requires the fragment type '%s' to have a ",
		spreadName, typeName) +
		fmt.Sprintf(resourceFieldSignature, fieldName, moduleArg, idArg, resourceType, idArg) + "."
	err.Locations = locations(loc)
	return err
}

func ErrModuleNameNotLiteral(loc ir.Location) (err ExternalError) {
	err.Message = "expected the 'name' argument of @module to be a literal string."
	err.Locations = locations(loc)
	return err
}

func ErrReservedFieldDirectUse(fieldName string, loc ir.Location) (err ExternalError) {
	err.Message = fmt.Sprintf("direct use of the '%s' field is not allowed, use @match/@module instead.", fieldName)
	err.Locations = locations(loc)
	return err
}
