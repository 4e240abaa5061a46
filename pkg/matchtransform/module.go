package matchtransform

import (
	"github.com/wundergraph/graphql-ir-compiler/pkg/compiler"
	"github.com/wundergraph/graphql-ir-compiler/pkg/ir"
	"github.com/wundergraph/graphql-ir-compiler/pkg/irvisitor"
	"github.com/wundergraph/graphql-ir-compiler/pkg/modulekeys"
	"github.com/wundergraph/graphql-ir-compiler/pkg/operationreport"
	"github.com/wundergraph/graphql-ir-compiler/pkg/schema"
)

func (m *matchTransform) VisitFragmentSpread(w *irvisitor.Walk[state], spread *ir.FragmentSpread, st state) (ir.Selection, error) {
	moduleDirective, ok := ir.DirectiveByName(spread.Directives, ModuleDirectiveName)
	if !ok {
		return spread, nil
	}
	return rewriteModuleSpread(w.Context(), spread, moduleDirective, st)
}

// resourceField is the validated signature of the reserved resource field on a fragment type.
type resourceField struct {
	resourceType *schema.Type
	moduleArg    *schema.ArgumentDefinition
	idArg        *schema.ArgumentDefinition
}

// rewriteModuleSpread replaces a @module spread with an inline fragment on the fragment type
// wrapping a module import.
func rewriteModuleSpread(compilerContext *compiler.Context, spread *ir.FragmentSpread, moduleDirective *ir.Directive, st state) (*ir.InlineFragment, error) {
	if len(spread.Args) != 0 {
		return nil, operationreport.ErrModuleWithArguments(spread.Args[0].Location)
	}

	s := compilerContext.Schema()
	resourceType, ok := s.TypeFromString(ResourceTypeName)
	if !ok || !s.IsServerType(resourceType) {
		return nil, operationreport.ErrModuleResourceTypeMissing(ResourceFieldName, spread.Location)
	}
	if !s.IsScalar(resourceType) {
		return nil, operationreport.ErrModuleResourceTypeNotScalar(ResourceTypeName, spread.Location)
	}

	if len(spread.Directives) != 1 {
		return nil, operationreport.ErrModuleAdditionalDirectives(spread.Name, spread.Location)
	}

	fragment, err := compilerContext.Fragment(spread.Name, spread.Location)
	if err != nil {
		return nil, err
	}
	fragmentType := s.RawType(fragment.TypeCondition)
	if !s.IsObject(fragmentType) {
		return nil, operationreport.ErrModuleAbstractFragment(spread.Name, s.TypeString(fragment.TypeCondition), spread.Location, fragment.Location)
	}

	resource, ok := lookupResourceField(s, fragmentType, resourceType)
	if !ok {
		return nil, operationreport.ErrModuleInvalidResourceField(spread.Name, s.TypeString(fragment.TypeCondition),
			ResourceFieldName, ResourceFieldModuleArgument, ResourceFieldIDArgument, ResourceTypeName, moduleDirective.Location)
	}

	nameArg, ok := ir.ArgumentByName(moduleDirective.Args, ModuleNameArgumentName)
	moduleName, isString := ir.LiteralArgumentValues(moduleDirective.Args)[ModuleNameArgumentName].(string)
	if !isString {
		loc := spread.Location
		if ok {
			loc = nameArg.Location
		}
		return nil, operationreport.ErrModuleNameNotLiteral(loc)
	}

	moduleID := modulekeys.ModuleID(st.documentName, st.path)
	operationField := resource.field(moduleDirective.Location, modulekeys.OperationKey(st.documentName),
		modulekeys.NormalizationArtifactName(spread.Name), moduleDirective.Location, moduleID, nameArg.Location)
	componentField := resource.field(moduleDirective.Location, modulekeys.ComponentKey(st.documentName),
		moduleName, nameArg.Location, moduleID, nameArg.Location)

	return &ir.InlineFragment{
		Location:      moduleDirective.Location,
		TypeCondition: fragment.TypeCondition,
		Selections: []ir.Selection{
			&ir.ModuleImport{
				Location:     moduleDirective.Location,
				DocumentName: st.documentName,
				ID:           moduleID,
				Module:       moduleName,
				Name:         spread.Name,
				Selections: []ir.Selection{
					spread.WithDirectives(ir.WithoutDirective(spread.Directives, moduleDirective)),
					operationField,
					componentField,
				},
			},
		},
	}, nil
}

// lookupResourceField checks that fragmentType declares
// js(module: String!, id: String): JSDependency. The id argument is optional.
func lookupResourceField(s *schema.Schema, fragmentType, resourceType *schema.Definition) (resourceField, bool) {
	field, ok := s.FieldByName(fragmentType, ResourceFieldName)
	if !ok {
		return resourceField{}, false
	}
	moduleArg, ok := s.FieldArgument(field, ResourceFieldModuleArgument)
	if !ok || !s.IsString(s.NullableType(moduleArg.Type)) {
		return resourceField{}, false
	}
	idArg, hasID := s.FieldArgument(field, ResourceFieldIDArgument)
	if hasID && !s.IsString(idArg.Type) {
		return resourceField{}, false
	}
	resource := s.NamedType(resourceType.Name)
	if !s.AreEqualTypes(field.Type, resource) {
		return resourceField{}, false
	}
	return resourceField{
		resourceType: resource,
		moduleArg:    moduleArg,
		idArg:        idArg,
	}, true
}

// field builds a resource field selection aliased to alias. The id argument is only passed if the
// schema declares it. The field exists in the reader AST only.
func (r resourceField) field(loc ir.Location, alias, module string, moduleLoc ir.Location, moduleID string, idLoc ir.Location) *ir.ScalarField {
	args := []*ir.Argument{
		{
			Location: loc,
			Name:     ResourceFieldModuleArgument,
			Type:     r.moduleArg.Type,
			Value:    &ir.Literal{Location: moduleLoc, Value: module},
		},
	}
	if r.idArg != nil {
		args = append(args, &ir.Argument{
			Location: loc,
			Name:     ResourceFieldIDArgument,
			Type:     r.idArg.Type,
			Value:    &ir.Literal{Location: idLoc, Value: moduleID},
		})
	}
	return &ir.ScalarField{
		Location: loc,
		Alias:    alias,
		Name:     ResourceFieldName,
		Type:     r.resourceType,
		Args:     args,
		Metadata: ir.Metadata{ir.MetadataSkipNormalizationNode: true},
	}
}
