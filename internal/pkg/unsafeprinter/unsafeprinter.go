package unsafeprinter

import (
	"github.com/wundergraph/graphql-ir-compiler/pkg/ir"
	"github.com/wundergraph/graphql-ir-compiler/pkg/irparser"
	"github.com/wundergraph/graphql-ir-compiler/pkg/irprinter"
	"github.com/wundergraph/graphql-ir-compiler/pkg/schema"
)

func Print(definition ir.Definition) string {
	str, err := irprinter.PrintString(definition)
	if err != nil {
		panic(err)
	}
	return str
}

func PrintDocuments(definitions []ir.Definition) string {
	str, err := irprinter.PrintDocumentsString(definitions)
	if err != nil {
		panic(err)
	}
	return str
}

// Prettify parses documents against s and prints them in canonical form.
func Prettify(s *schema.Schema, documents string) string {
	definitions, err := irparser.ParseString(s, "prettify.graphql", documents)
	if err != nil {
		panic(err)
	}
	return PrintDocuments(definitions)
}
