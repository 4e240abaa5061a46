// Package unsafeparser is for testing purposes only when error handling is overhead and panics are ok
package unsafeparser

import (
	"fmt"
	"os"

	"github.com/wundergraph/graphql-ir-compiler/pkg/compiler"
	"github.com/wundergraph/graphql-ir-compiler/pkg/ir"
	"github.com/wundergraph/graphql-ir-compiler/pkg/irparser"
	"github.com/wundergraph/graphql-ir-compiler/pkg/schema"
)

// LoadSchemaString loads a server schema. Each extension becomes its own client source.
func LoadSchemaString(server string, extensions ...string) *schema.Schema {
	return loadSchema(&schema.Source{Name: "schema.graphql", Input: server}, extensions)
}

// LoadSchemaFile loads a server schema from filePath, locations refer to the file.
func LoadSchemaFile(filePath string, extensions ...string) *schema.Schema {
	fileBytes, err := os.ReadFile(filePath)
	if err != nil {
		panic(err)
	}
	return loadSchema(&schema.Source{Name: filePath, Input: string(fileBytes)}, extensions)
}

func loadSchema(server *schema.Source, extensions []string) *schema.Schema {
	extensionSources := make([]*schema.Source, 0, len(extensions))
	for i := range extensions {
		extensionSources = append(extensionSources, &schema.Source{
			Name:  fmt.Sprintf("client_extension_%d.graphql", i),
			Input: extensions[i],
		})
	}
	return schema.MustLoad([]*schema.Source{server}, extensionSources)
}

func ParseDocumentsString(s *schema.Schema, input string) []ir.Definition {
	return parseDocuments(s, "documents.graphql", input)
}

func ParseDocumentsFile(s *schema.Schema, filePath string) []ir.Definition {
	fileBytes, err := os.ReadFile(filePath)
	if err != nil {
		panic(err)
	}
	return parseDocuments(s, filePath, string(fileBytes))
}

func parseDocuments(s *schema.Schema, name, input string) []ir.Definition {
	definitions, err := irparser.ParseString(s, name, input)
	if err != nil {
		panic(err)
	}
	return definitions
}

// ContextString parses input and returns a compiler context holding all of its documents.
func ContextString(s *schema.Schema, input string) *compiler.Context {
	compilerContext, err := compiler.NewContext(s).AddDocuments(ParseDocumentsString(s, input)...)
	if err != nil {
		panic(err)
	}
	return compilerContext
}
