// Package matchtransform rewrites @match fields and @module fragment spreads into the shape a
// runtime loader consumes.
//
// A fragment spread annotated with @module(name: "Component.js") becomes an inline fragment on the
// fragment's type holding a single ir.ModuleImport. The module import carries the stripped spread
// and two synthetic resource fields that resolve the normalization artifact and the component
// module of the fragment.
//
// A field annotated with @match must return a union or interface and may only select __typename
// and @module spreads, at most one per concrete type. The directive is replaced by a "supported"
// argument listing the matched types in source order.
//
// Fields are rewritten after their selections, so a @match field always sees the module imports
// produced for its spreads.
package matchtransform

import (
	"context"

	"github.com/wundergraph/graphql-ir-compiler/pkg/compiler"
	"github.com/wundergraph/graphql-ir-compiler/pkg/ir"
	"github.com/wundergraph/graphql-ir-compiler/pkg/irvisitor"
	"github.com/wundergraph/graphql-ir-compiler/pkg/operationreport"
	"github.com/wundergraph/graphql-ir-compiler/pkg/schema"
)

const (
	MatchDirectiveName     = "match"
	ModuleDirectiveName    = "module"
	ModuleNameArgumentName = "name"
	SupportedArgumentName  = "supported"

	// ResourceTypeName is the server scalar representing a loadable module.
	ResourceTypeName = "JSDependency"
	// ResourceFieldName is the reserved field resolving a ResourceTypeName value.
	ResourceFieldName           = "js"
	ResourceFieldModuleArgument = "module"
	ResourceFieldIDArgument     = "id"

	passName = "MatchTransform"
)

// SchemaExtension declares the directives handled by the transform.
// Load it together with the server schema before parsing documents.
const SchemaExtension = `
directive @match on FIELD

directive @module(
  name: String!
) on FRAGMENT_SPREAD
`

// SchemaSource returns SchemaExtension as a schema source.
func SchemaSource() *schema.Source {
	return &schema.Source{
		Name:  "match_transform_extension.graphql",
		Input: SchemaExtension,
	}
}

// Pass returns the transform as a compiler pass.
func Pass() compiler.Pass {
	t := &matchTransform{}
	transformer := irvisitor.NewTransformer(passName, initState)
	transformer.RegisterLinkedFieldVisitor(t)
	transformer.RegisterScalarFieldVisitor(t)
	transformer.RegisterInlineFragmentVisitor(t)
	transformer.RegisterFragmentSpreadVisitor(t)
	return transformer
}

// Transform runs the transform over every document of compilerContext.
func Transform(ctx context.Context, compilerContext *compiler.Context, opts ...compiler.Option) (*compiler.Context, error) {
	return compiler.Run(ctx, compilerContext, Pass(), opts...)
}

// state is passed by value. Child states are derived, never modified in place.
type state struct {
	documentName string
	path         []string
	parentType   *schema.Type
}

func initState(document ir.Definition) state {
	return state{
		documentName: document.DefinitionName(),
		parentType:   document.DefinitionType(),
	}
}

// enterField returns the state for the selections of a field.
func (s state) enterField(alias string, fieldType *schema.Type) state {
	path := make([]string, len(s.path), len(s.path)+1)
	copy(path, s.path)
	return state{
		documentName: s.documentName,
		path:         append(path, alias),
		parentType:   fieldType,
	}
}

func (s state) withParentType(parentType *schema.Type) state {
	s.parentType = parentType
	return s
}

type matchTransform struct{}

func (m *matchTransform) VisitInlineFragment(w *irvisitor.Walk[state], fragment *ir.InlineFragment, s state) (ir.Selection, error) {
	parentType := s.parentType
	if fragment.TypeCondition != nil {
		parentType = fragment.TypeCondition
	}
	return w.TraverseInlineFragment(fragment, s.withParentType(parentType))
}

// VisitScalarField rejects direct selections of the reserved resource field. Resource fields
// created by the module rewrite are marked to skip normalization and pass.
func (m *matchTransform) VisitScalarField(w *irvisitor.Walk[state], field *ir.ScalarField, _ state) (ir.Selection, error) {
	if field.Name != ResourceFieldName || field.Metadata.Bool(ir.MetadataSkipNormalizationNode) {
		return field, nil
	}

	s := w.Context().Schema()
	resourceType, ok := s.TypeFromString(ResourceTypeName)
	if !ok || !s.IsServerType(resourceType) {
		return nil, operationreport.ErrModuleResourceTypeMissing(ResourceFieldName, field.Location)
	}
	if s.IsScalar(resourceType) && s.AreEqualDefinitions(s.RawType(field.Type), resourceType) {
		return nil, operationreport.ErrReservedFieldDirectUse(ResourceFieldName, field.Location)
	}
	return field, nil
}
