package matchtransform

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jensneuse/diffview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wundergraph/graphql-ir-compiler/internal/pkg/unsafeprinter"
	"github.com/wundergraph/graphql-ir-compiler/pkg/compiler"
	"github.com/wundergraph/graphql-ir-compiler/pkg/internal/unsafeparser"
	"github.com/wundergraph/graphql-ir-compiler/pkg/ir"
	"github.com/wundergraph/graphql-ir-compiler/pkg/operationreport"
	"github.com/wundergraph/graphql-ir-compiler/pkg/schema"
	"github.com/wundergraph/graphql-ir-compiler/pkg/testing/goldie"
)

const testSchema = `
scalar JSDependency

schema {
  query: Query
}

type Query {
  me: User
  node(id: ID!): Node
  plainRenderer: PlainUserNameRenderer
  search: SearchResult
}

interface Node {
  id: ID!
}

type User implements Node {
  id: ID!
  name: String
  nameRenderer(supported: [String!]): UserNameRenderer
  strictNameRenderer(supported: [String!]!): UserNameRenderer
  singleNameRenderer(supported: String): UserNameRenderer
  bareNameRenderer: UserNameRenderer
  plainNameRenderer(supported: [String!]): PlainUserNameRenderer
  badRenderer(supported: [String]): BadRenderer
  js(module: String!, id: String): JSDependency
}

union UserNameRenderer = PlainUserNameRenderer | MarkdownUserNameRenderer

union BadRenderer = NoResourceRenderer | IntIDRenderer | IntModuleRenderer | StringResultRenderer

union SearchResult = User | PlainUserNameRenderer

type PlainUserNameRenderer {
  plaintext: String
  data: PlainUserNameData
  js(module: String!, id: String): JSDependency
}

type MarkdownUserNameRenderer {
  markdown: String
  data: MarkdownUserNameData
  js(module: String!): JSDependency
}

type PlainUserNameData {
  id: ID
  text: String
}

type MarkdownUserNameData {
  id: ID
  markup: String
}

type NoResourceRenderer {
  text: String
}

type IntIDRenderer {
  text: String
  js(module: String!, id: Int): JSDependency
}

type IntModuleRenderer {
  text: String
  js(module: Int!, id: String): JSDependency
}

type StringResultRenderer {
  text: String
  js(module: String!, id: String): String
}
`

const testFragments = `
fragment PlainUserNameRenderer_name on PlainUserNameRenderer {
  plaintext
  data {
    text
  }
}

fragment PlainUserNameRenderer_other on PlainUserNameRenderer {
  plaintext
}

fragment PlainUserNameRenderer_third on PlainUserNameRenderer {
  __typename
}

fragment MarkdownUserNameRenderer_name on MarkdownUserNameRenderer {
  __typename
  markdown
  data {
    markup
  }
}
`

func testSchemaWithExtension(t *testing.T, server string) *schema.Schema {
	t.Helper()
	return unsafeparser.LoadSchemaString(server, SchemaExtension)
}

func runTransform(t *testing.T, s *schema.Schema, documents string) (*compiler.Context, error) {
	t.Helper()
	return Transform(context.Background(), unsafeparser.ContextString(s, documents))
}

func transformDocument(t *testing.T, documents, name string) ir.Definition {
	t.Helper()
	result, err := runTransform(t, testSchemaWithExtension(t, testSchema), documents+testFragments)
	require.NoError(t, err)
	document, ok := result.Document(name)
	require.True(t, ok, "document %s not found", name)
	return document
}

func expectError(t *testing.T, s *schema.Schema, documents string) operationreport.ExternalError {
	t.Helper()
	_, err := runTransform(t, s, documents)
	require.Error(t, err)

	var report operationreport.Report
	require.True(t, errors.As(err, &report), "expected a report, got %v", err)
	require.Len(t, report.ExternalErrors, 1, report.Error())
	return report.ExternalErrors[0]
}

func lines(err operationreport.ExternalError) []uint32 {
	out := make([]uint32, 0, len(err.Locations))
	for _, location := range err.Locations {
		out = append(out, location.Line)
	}
	return out
}

func assertGolden(t *testing.T, name string, definition ir.Definition) {
	t.Helper()
	actual := []byte(unsafeprinter.Print(definition))

	goldie.Assert(t, name, actual)
	if t.Failed() {
		fixture, err := os.ReadFile("./fixtures/" + name + ".golden")
		if err != nil {
			t.Fatal(err)
		}

		diffview.NewGoland().DiffViewBytes(name, fixture, actual)
	}
}

func TestMatchTransform(t *testing.T) {
	t.Run("match field with two module variants", func(t *testing.T) {
		document := transformDocument(t, `
			query NameRendererQuery {
				me {
					nameRenderer @match {
						...PlainUserNameRenderer_name @module(name: "PlainUserNameRenderer.react")
						...MarkdownUserNameRenderer_name @module(name: "MarkdownUserNameRenderer.react")
					}
				}
			}`, "NameRendererQuery")

		assertGolden(t, "match_two_variants", document)

		me := document.SelectionSet()[0].(*ir.LinkedField)
		nameRenderer := me.Selections[0].(*ir.LinkedField)
		assert.Empty(t, nameRenderer.Directives)
		require.Len(t, nameRenderer.Selections, 2)

		supported, ok := ir.ArgumentByName(nameRenderer.Args, SupportedArgumentName)
		require.True(t, ok)
		assert.Equal(t, []string{"PlainUserNameRenderer", "MarkdownUserNameRenderer"}, supported.Value.(*ir.Literal).Value)
		assert.Equal(t, "[String!]", supported.Type.String())
	})

	t.Run("match field in fragment with alias and __typename", func(t *testing.T) {
		document := transformDocument(t, `
			fragment NameRendererFragment on User {
				id
				renderer: nameRenderer @match {
					__typename
					...PlainUserNameRenderer_name @module(name: "PlainUserNameRenderer.react")
				}
			}`, "NameRendererFragment")

		assertGolden(t, "match_fragment_alias", document)
	})

	t.Run("supported lists types in first seen order", func(t *testing.T) {
		document := transformDocument(t, `
			query OrderQuery {
				me {
					strictNameRenderer @match {
						...MarkdownUserNameRenderer_name @module(name: "Markdown.react")
						__typename
						...PlainUserNameRenderer_name @module(name: "Plain.react")
					}
				}
			}`, "OrderQuery")

		field := document.SelectionSet()[0].(*ir.LinkedField).Selections[0].(*ir.LinkedField)
		supported, ok := ir.ArgumentByName(field.Args, SupportedArgumentName)
		require.True(t, ok)
		assert.Equal(t, []string{"MarkdownUserNameRenderer", "PlainUserNameRenderer"}, supported.Value.(*ir.Literal).Value)
		assert.Equal(t, ir.NodeKindInlineFragment, field.Selections[0].Kind())
		assert.Equal(t, ir.NodeKindScalarField, field.Selections[1].Kind())
		assert.Equal(t, ir.NodeKindInlineFragment, field.Selections[2].Kind())
	})

	t.Run("other arguments are kept before supported", func(t *testing.T) {
		s := testSchemaWithExtension(t, testSchema+`
			extend type User {
				pagedRenderer(first: Int, supported: [String]): UserNameRenderer
			}`)
		result, err := runTransform(t, s, `
			query PagedQuery {
				me {
					pagedRenderer(first: 10) @match {
						...PlainUserNameRenderer_name @module(name: "Plain.react")
					}
				}
			}`+testFragments)
		require.NoError(t, err)
		document, _ := result.Document("PagedQuery")
		field := document.SelectionSet()[0].(*ir.LinkedField).Selections[0].(*ir.LinkedField)
		require.Len(t, field.Args, 2)
		assert.Equal(t, "first", field.Args[0].Name)
		assert.Equal(t, SupportedArgumentName, field.Args[1].Name)
	})

	t.Run("incompatible parent type", func(t *testing.T) {
		s := testSchemaWithExtension(t, testSchema)
		field := &ir.LinkedField{
			Location: ir.Location{Line: 3, Column: 5},
			Alias:    "nameRenderer",
			Name:     "nameRenderer",
			Type:     s.NamedType("UserNameRenderer"),
		}
		_, err := rewriteMatchField(s, field, &ir.Directive{Name: MatchDirectiveName}, s.NamedType("SearchResult"))
		require.Error(t, err)
		assert.Equal(t, operationreport.ErrMatchIncompatibleParentType("nameRenderer", "SearchResult", field.Location), err)
	})

	t.Run("missing supported argument", func(t *testing.T) {
		err := expectError(t, testSchemaWithExtension(t, testSchema), `
			query MissingSupportedQuery {
				me {
					bareNameRenderer @match {
						...PlainUserNameRenderer_name @module(name: "Plain.react")
					}
				}
			}`+testFragments)
		assert.Contains(t, err.Message, "'supported: [String!]!' argument")
		assert.Equal(t, []uint32{4}, lines(err))
		assert.Equal(t, []string{"MissingSupportedQuery", "me", "bareNameRenderer"}, err.Path)
	})

	t.Run("supported argument that is not a list", func(t *testing.T) {
		err := expectError(t, testSchemaWithExtension(t, testSchema), `
			query SingleSupportedQuery {
				me {
					singleNameRenderer @match {
						...PlainUserNameRenderer_name @module(name: "Plain.react")
					}
				}
			}`+testFragments)
		assert.Contains(t, err.Message, "'supported: [String!]!' argument")
	})

	t.Run("non abstract return type always fails", func(t *testing.T) {
		for _, selection := range []string{
			`...PlainUserNameRenderer_name @module(name: "Plain.react")`,
			`plaintext`,
		} {
			err := expectError(t, testSchemaWithExtension(t, testSchema), `
				query NonAbstractQuery {
					me {
						plainNameRenderer @match {
							`+selection+`
						}
					}
				}`+testFragments)
			assert.Equal(t, operationreport.ErrMatchNonAbstractType("plainNameRenderer", ir.Location{}).Message, err.Message)
		}
	})

	t.Run("selections other than module spreads", func(t *testing.T) {
		err := expectError(t, testSchemaWithExtension(t, testSchema), `
			query InvalidSelectionQuery {
				me {
					nameRenderer @match {
						... on PlainUserNameRenderer {
							plaintext
						}
					}
				}
			}`+testFragments)
		assert.Equal(t, operationreport.ErrMatchInvalidSelection(ir.Location{}).Message, err.Message)
		assert.Equal(t, []uint32{5}, lines(err))
	})

	t.Run("plain fragment spread is not a variant", func(t *testing.T) {
		err := expectError(t, testSchemaWithExtension(t, testSchema), `
			query PlainSpreadQuery {
				me {
					nameRenderer @match {
						...PlainUserNameRenderer_name
					}
				}
			}`+testFragments)
		assert.Equal(t, operationreport.ErrMatchInvalidSelection(ir.Location{}).Message, err.Message)
	})

	t.Run("duplicate matched type reports both locations", func(t *testing.T) {
		spreads := []string{
			`...PlainUserNameRenderer_name @module(name: "A.react")`,
			`...PlainUserNameRenderer_other @module(name: "B.react")`,
			`...PlainUserNameRenderer_third @module(name: "C.react")`,
		}
		for n := 2; n <= len(spreads); n++ {
			selections := ""
			for i := 0; i < n; i++ {
				selections += "\n" + spreads[i]
			}
			err := expectError(t, testSchemaWithExtension(t, testSchema), `query DuplicateQuery {
me {
nameRenderer @match {`+selections+`
}
}
}`+testFragments)
			assert.Equal(t, operationreport.ErrMatchDuplicateType("UserNameRenderer", "PlainUserNameRenderer", ir.Location{}, ir.Location{}).Message, err.Message)
			assert.Equal(t, []uint32{5, 4}, lines(err), "n=%d", n)
		}
	})

	t.Run("match without module selection", func(t *testing.T) {
		err := expectError(t, testSchemaWithExtension(t, testSchema), `
			query EmptyMatchQuery {
				me {
					nameRenderer @match {
						__typename
					}
				}
			}`)
		assert.Equal(t, operationreport.ErrMatchNoModuleSelection(ir.Location{}).Message, err.Message)
		assert.Equal(t, []uint32{4}, lines(err))
	})

	t.Run("explicit supported argument always fails", func(t *testing.T) {
		err := expectError(t, testSchemaWithExtension(t, testSchema), `
			query ExplicitSupportedQuery {
				me {
					nameRenderer(supported: ["PlainUserNameRenderer"]) @match {
						...PlainUserNameRenderer_name @module(name: "Plain.react")
					}
				}
			}`+testFragments)
		assert.Equal(t, operationreport.ErrMatchExplicitSupportedArgument(SupportedArgumentName, ir.Location{}).Message, err.Message)
	})

	t.Run("fields without match are kept", func(t *testing.T) {
		document := transformDocument(t, `
			query PlainQuery {
				me {
					nameRenderer(supported: ["PlainUserNameRenderer"]) @include(if: true) {
						__typename
					}
				}
			}`, "PlainQuery")
		field := document.SelectionSet()[0].(*ir.LinkedField).Selections[0].(*ir.LinkedField)
		require.Len(t, field.Directives, 1)
		assert.Equal(t, "include", field.Directives[0].Name)
		require.Len(t, field.Args, 1)
	})
}

func TestModuleTransform(t *testing.T) {
	t.Run("module spread outside of match", func(t *testing.T) {
		document := transformDocument(t, `
			query PlainRendererQuery {
				plainRenderer {
					...PlainUserNameRenderer_name @module(name: "FooComponent.js")
				}
			}`, "PlainRendererQuery")

		assertGolden(t, "module_spread", document)

		inline := document.SelectionSet()[0].(*ir.LinkedField).Selections[0].(*ir.InlineFragment)
		assert.Equal(t, "PlainUserNameRenderer", inline.TypeCondition.Name())
		require.Len(t, inline.Selections, 1)

		moduleImport := inline.Selections[0].(*ir.ModuleImport)
		assert.Equal(t, "PlainRendererQuery", moduleImport.DocumentName)
		assert.Equal(t, "PlainRendererQuery.plainRenderer", moduleImport.ID)
		assert.Equal(t, "FooComponent.js", moduleImport.Module)
		assert.Equal(t, "PlainUserNameRenderer_name", moduleImport.Name)
		require.Len(t, moduleImport.Selections, 3)

		spread := moduleImport.Selections[0].(*ir.FragmentSpread)
		assert.Equal(t, "PlainUserNameRenderer_name", spread.Name)
		assert.Empty(t, spread.Directives)

		operationField := moduleImport.Selections[1].(*ir.ScalarField)
		assert.Equal(t, "__module_operation_PlainRendererQuery", operationField.Alias)
		assert.Equal(t, ResourceFieldName, operationField.Name)
		assert.Equal(t, map[string]interface{}{
			"module": "PlainUserNameRenderer_name$normalization.graphql",
			"id":     "PlainRendererQuery.plainRenderer",
		}, ir.LiteralArgumentValues(operationField.Args))
		assert.True(t, operationField.Metadata.Bool(ir.MetadataSkipNormalizationNode))

		componentField := moduleImport.Selections[2].(*ir.ScalarField)
		assert.Equal(t, "__module_component_PlainRendererQuery", componentField.Alias)
		assert.Equal(t, map[string]interface{}{
			"module": "FooComponent.js",
			"id":     "PlainRendererQuery.plainRenderer",
		}, ir.LiteralArgumentValues(componentField.Args))
		assert.True(t, componentField.Metadata.Bool(ir.MetadataSkipNormalizationNode))
		assert.Equal(t, "JSDependency", componentField.Type.String())
	})

	t.Run("module id joins the document name and field aliases", func(t *testing.T) {
		s := testSchemaWithExtension(t, testSchema+`
			extend type User {
				friend: User
			}`)
		result, err := runTransform(t, s, `
			query Foo {
				bar: me {
					baz: friend {
						nameRenderer @match {
							...PlainUserNameRenderer_name @module(name: "Plain.react")
						}
					}
				}
			}`+testFragments)
		require.NoError(t, err)
		document, _ := result.Document("Foo")
		baz := document.SelectionSet()[0].(*ir.LinkedField).Selections[0].(*ir.LinkedField)
		inline := baz.Selections[0].(*ir.LinkedField).Selections[0].(*ir.InlineFragment)
		assert.Equal(t, "Foo.bar.baz.nameRenderer", inline.Selections[0].(*ir.ModuleImport).ID)
	})

	t.Run("id argument is omitted when the resource field has none", func(t *testing.T) {
		document := transformDocument(t, `
			query MarkdownQuery {
				me {
					nameRenderer @match {
						...MarkdownUserNameRenderer_name @module(name: "Markdown.react")
					}
				}
			}`, "MarkdownQuery")
		inline := document.SelectionSet()[0].(*ir.LinkedField).Selections[0].(*ir.LinkedField).Selections[0].(*ir.InlineFragment)
		moduleImport := inline.Selections[0].(*ir.ModuleImport)
		for _, selection := range moduleImport.Selections[1:] {
			field := selection.(*ir.ScalarField)
			require.Len(t, field.Args, 1)
			assert.Equal(t, ResourceFieldModuleArgument, field.Args[0].Name)
		}
	})

	t.Run("spread arguments are rejected", func(t *testing.T) {
		s := testSchemaWithExtension(t, testSchema)
		compilerContext := unsafeparser.ContextString(s, testFragments)
		moduleDirective := &ir.Directive{
			Name: ModuleDirectiveName,
			Args: []*ir.Argument{{Name: ModuleNameArgumentName, Value: &ir.Literal{Value: "Plain.react"}}},
		}
		argLocation := ir.Location{Line: 2, Column: 20}
		spread := &ir.FragmentSpread{
			Name:       "PlainUserNameRenderer_name",
			Args:       []*ir.Argument{{Location: argLocation, Name: "short", Value: &ir.Literal{Value: true}}},
			Directives: []*ir.Directive{moduleDirective},
		}
		_, err := rewriteModuleSpread(compilerContext, spread, moduleDirective, state{documentName: "Q"})
		assert.Equal(t, operationreport.ErrModuleWithArguments(argLocation), err)
	})

	t.Run("resource type must be defined by the server", func(t *testing.T) {
		withoutResource := `
			type Query { plainRenderer: PlainUserNameRenderer }
			type PlainUserNameRenderer { plaintext: String }
		`
		documents := `
			query Q {
				plainRenderer {
					...F @module(name: "Plain.react")
				}
			}
			fragment F on PlainUserNameRenderer { plaintext }`

		err := expectError(t, testSchemaWithExtension(t, withoutResource), documents)
		assert.Equal(t, operationreport.ErrModuleResourceTypeMissing(ResourceFieldName, ir.Location{}).Message, err.Message)

		clientOnly := unsafeparser.LoadSchemaString(withoutResource, SchemaExtension, `scalar JSDependency`)
		err = expectError(t, clientOnly, documents)
		assert.Equal(t, operationreport.ErrModuleResourceTypeMissing(ResourceFieldName, ir.Location{}).Message, err.Message)
	})

	t.Run("resource type must be a scalar", func(t *testing.T) {
		objectResource := `
			type JSDependency { url: String }
			type Query { plainRenderer: PlainUserNameRenderer }
			type PlainUserNameRenderer { plaintext: String }
		`
		err := expectError(t, testSchemaWithExtension(t, objectResource), `
			query Q {
				plainRenderer {
					...F @module(name: "Plain.react")
				}
			}
			fragment F on PlainUserNameRenderer { plaintext }`)
		assert.Equal(t, operationreport.ErrModuleResourceTypeNotScalar(ResourceTypeName, ir.Location{}).Message, err.Message)
	})

	t.Run("additional directives", func(t *testing.T) {
		err := expectError(t, testSchemaWithExtension(t, testSchema), `
			query AdditionalDirectivesQuery {
				plainRenderer {
					...PlainUserNameRenderer_name @module(name: "Plain.react") @include(if: true)
				}
			}`+testFragments)
		assert.Equal(t, operationreport.ErrModuleAdditionalDirectives("PlainUserNameRenderer_name", ir.Location{}).Message, err.Message)
	})

	t.Run("abstract fragment type always fails", func(t *testing.T) {
		for _, typeCondition := range []string{"UserNameRenderer", "Node"} {
			err := expectError(t, testSchemaWithExtension(t, testSchema), `
				query AbstractQuery {
					me {
						nameRenderer @match {
							...Abstract_name @module(name: "Abstract.react")
						}
					}
				}
				fragment Abstract_name on `+typeCondition+` {
					__typename
				}`)
			assert.Equal(t, operationreport.ErrModuleAbstractFragment("Abstract_name", typeCondition, ir.Location{}, ir.Location{}).Message, err.Message)
			assert.Equal(t, []uint32{5, 9}, lines(err))
		}
	})

	t.Run("invalid resource field", func(t *testing.T) {
		for _, typeName := range []string{"NoResourceRenderer", "IntIDRenderer", "IntModuleRenderer", "StringResultRenderer"} {
			err := expectError(t, testSchemaWithExtension(t, testSchema), `
				query BadResourceQuery {
					me {
						badRenderer @match {
							...Bad_name @module(name: "Bad.react")
						}
					}
				}
				fragment Bad_name on `+typeName+` {
					text
				}`)
			expected := operationreport.ErrModuleInvalidResourceField("Bad_name", typeName, ResourceFieldName,
				ResourceFieldModuleArgument, ResourceFieldIDArgument, ResourceTypeName, ir.Location{})
			assert.Equal(t, expected.Message, err.Message, typeName)
		}
	})

	t.Run("name must be a literal", func(t *testing.T) {
		err := expectError(t, testSchemaWithExtension(t, testSchema), `
			query VariableNameQuery($component: String!) {
				plainRenderer {
					...PlainUserNameRenderer_name @module(name: $component)
				}
			}`+testFragments)
		assert.Equal(t, operationreport.ErrModuleNameNotLiteral(ir.Location{}).Message, err.Message)
		assert.Equal(t, []uint32{4}, lines(err))
	})

	t.Run("unknown fragment", func(t *testing.T) {
		err := expectError(t, testSchemaWithExtension(t, testSchema), `
			query UnknownFragmentQuery {
				plainRenderer {
					...Missing_name @module(name: "Missing.react")
				}
			}`)
		assert.Equal(t, operationreport.ErrUnknownFragment("Missing_name", ir.Location{}).Message, err.Message)
	})
}

func TestReservedResourceField(t *testing.T) {
	t.Run("direct use is rejected", func(t *testing.T) {
		err := expectError(t, testSchemaWithExtension(t, testSchema), `
			query DirectQuery {
				me {
					id
					js(module: "Direct.react")
				}
			}`)
		assert.Equal(t, operationreport.ErrReservedFieldDirectUse(ResourceFieldName, ir.Location{}).Message, err.Message)
		assert.Equal(t, []string{"DirectQuery", "me", "js"}, err.Path)
	})

	t.Run("js field requires a server resource type", func(t *testing.T) {
		err := expectError(t, testSchemaWithExtension(t, `type Query { js: String }`), `
			query JSQuery {
				js
			}`)
		assert.Equal(t, operationreport.ErrModuleResourceTypeMissing(ResourceFieldName, ir.Location{}).Message, err.Message)
	})

	t.Run("js field of another type is allowed", func(t *testing.T) {
		s := testSchemaWithExtension(t, testSchema+`
			extend type User {
				script: Script
			}
			type Script {
				js: String
			}`)
		_, err := runTransform(t, s, `
			query ScriptQuery {
				me {
					script {
						js
					}
				}
			}`)
		assert.NoError(t, err)
	})
}

func TestIdempotence(t *testing.T) {
	s := testSchemaWithExtension(t, testSchema)

	t.Run("documents without directives are unchanged", func(t *testing.T) {
		compilerContext := unsafeparser.ContextString(s, `
			query PlainQuery($id: ID!) {
				node(id: $id) {
					id
					... on User {
						name
						nameRenderer(supported: ["PlainUserNameRenderer"]) {
							__typename
							...PlainUserNameRenderer_name
						}
					}
				}
			}`+testFragments)

		result, err := Transform(context.Background(), compilerContext)
		require.NoError(t, err)

		if diff := cmp.Diff(compilerContext.Documents(), result.Documents()); diff != "" {
			t.Fatalf("transform changed documents without directives (-want +got):\n%s", diff)
		}
		assert.Equal(t, unsafeprinter.Prettify(s, `
			query PlainQuery($id: ID!) {
				node(id: $id) {
					id
					... on User {
						name
						nameRenderer(supported: ["PlainUserNameRenderer"]) {
							__typename
							...PlainUserNameRenderer_name
						}
					}
				}
			}`+testFragments), unsafeprinter.PrintDocuments(result.Documents()))
		for i, document := range compilerContext.Documents() {
			assert.Same(t, document, result.Documents()[i])
		}
	})

	t.Run("transformed documents are stable", func(t *testing.T) {
		compilerContext := unsafeparser.ContextString(s, `
			query NameRendererQuery {
				me {
					nameRenderer @match {
						...PlainUserNameRenderer_name @module(name: "PlainUserNameRenderer.react")
						...MarkdownUserNameRenderer_name @module(name: "MarkdownUserNameRenderer.react")
					}
				}
			}`+testFragments)

		once, err := Transform(context.Background(), compilerContext)
		require.NoError(t, err)
		twice, err := Transform(context.Background(), once)
		require.NoError(t, err)

		if diff := cmp.Diff(once.Documents(), twice.Documents()); diff != "" {
			t.Fatalf("second transform changed documents (-want +got):\n%s", diff)
		}
	})
}

func TestTransformRunsDocumentsIndependently(t *testing.T) {
	compilerContext := unsafeparser.ContextString(testSchemaWithExtension(t, testSchema), `
		query ValidQuery {
			me {
				nameRenderer @match {
					...PlainUserNameRenderer_name @module(name: "Plain.react")
				}
			}
		}
		query FirstInvalidQuery {
			me {
				nameRenderer @match {
					__typename
				}
			}
		}
		query SecondInvalidQuery {
			me {
				js(module: "x")
			}
		}`+testFragments)

	_, err := Transform(context.Background(), compilerContext, compiler.WithConcurrency(4))
	require.Error(t, err)

	var report operationreport.Report
	require.True(t, errors.As(err, &report))
	require.Len(t, report.ExternalErrors, 2)
	assert.Equal(t, "FirstInvalidQuery", report.ExternalErrors[0].Path[0])
	assert.Equal(t, "SecondInvalidQuery", report.ExternalErrors[1].Path[0])
}

func TestTransformDocumentFiles(t *testing.T) {
	s := unsafeparser.LoadSchemaFile("testdata/schema.graphql", SchemaExtension)
	documents := unsafeparser.ParseDocumentsFile(s, "testdata/documents.graphql")
	compilerContext, err := compiler.NewContext(s).AddDocuments(documents...)
	require.NoError(t, err)

	result, err := Transform(context.Background(), compilerContext)
	require.NoError(t, err)

	printed := unsafeprinter.PrintDocuments(result.Documents())
	assert.Contains(t, printed, `renderer: nameRenderer(supported: ["PlainUserNameRenderer", "MarkdownUserNameRenderer"]) {`)
	assert.Contains(t, printed, `__module_component_ActorQuery: js(module: "PlainUserNameRenderer.react", id: "ActorQuery.viewer.actor.renderer")`)
	assert.Contains(t, printed, `__module_component_ActorQuery: js(module: "MarkdownUserNameRenderer.react")`)
	assert.Contains(t, printed, "fragment MarkdownUserNameRenderer_name on MarkdownUserNameRenderer {")

	resourceType, ok := s.TypeFromString(ResourceTypeName)
	require.True(t, ok)
	assert.True(t, s.IsServerType(resourceType))
	assert.Equal(t, "testdata/schema.graphql", resourceType.Position.Src.Name)
}
