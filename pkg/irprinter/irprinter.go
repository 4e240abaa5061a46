// Package irprinter renders IR documents as GraphQL text.
//
// The output is meant for humans and golden files. Module imports created by the match transform
// have no GraphQL syntax, they are printed as an inline fragment carrying a @__module directive.
package irprinter

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/wundergraph/graphql-ir-compiler/internal/pkg/quotes"
	"github.com/wundergraph/graphql-ir-compiler/pkg/ir"
)

const (
	defaultIndent = "  "

	// ModuleDirectiveName is the directive used to print a module import.
	ModuleDirectiveName = "__module"
	// ArgumentsDirectiveName is the directive used to print fragment spread arguments.
	ArgumentsDirectiveName = "arguments"
)

// Print writes definition indented with two spaces.
func Print(definition ir.Definition, out io.Writer) error {
	return PrintIndent(definition, defaultIndent, out)
}

func PrintString(definition ir.Definition) (string, error) {
	buff := &bytes.Buffer{}
	err := Print(definition, buff)
	return buff.String(), err
}

func PrintIndent(definition ir.Definition, indent string, out io.Writer) error {
	p := printer{out: out, indent: indent}
	p.printDefinition(definition)
	return p.err
}

// PrintDocuments prints all definitions separated by an empty line.
func PrintDocuments(definitions []ir.Definition, out io.Writer) error {
	p := printer{out: out, indent: defaultIndent}
	for i := range definitions {
		if i != 0 {
			p.write("\n")
		}
		p.printDefinition(definitions[i])
	}
	return p.err
}

func PrintDocumentsString(definitions []ir.Definition) (string, error) {
	buff := &bytes.Buffer{}
	err := PrintDocuments(definitions, buff)
	return buff.String(), err
}

type printer struct {
	out    io.Writer
	indent string
	depth  int
	err    error
}

func (p *printer) write(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.out, s)
}

func (p *printer) writeIndent() {
	for i := 0; i < p.depth; i++ {
		p.write(p.indent)
	}
}

func (p *printer) printDefinition(definition ir.Definition) {
	switch definition := definition.(type) {
	case *ir.Root:
		p.write(string(definition.Operation))
		p.write(" ")
		p.write(definition.Name)
		p.printVariableDefinitions(definition.VariableDefinitions)
		p.printDirectives(definition.Directives)
		p.printSelectionSet(definition.Selections)
	case *ir.Fragment:
		p.write("fragment ")
		p.write(definition.Name)
		p.write(" on ")
		p.write(definition.TypeCondition.Name())
		p.printDirectives(definition.Directives)
		p.printSelectionSet(definition.Selections)
	default:
		p.fail(fmt.Errorf("irprinter: unexpected definition %T", definition))
		return
	}
	p.write("\n")
}

func (p *printer) printVariableDefinitions(definitions []*ir.VariableDefinition) {
	if len(definitions) == 0 {
		return
	}
	p.write("(")
	for i, definition := range definitions {
		if i != 0 {
			p.write(", ")
		}
		p.write("$")
		p.write(definition.Name)
		p.write(": ")
		p.write(definition.Type.String())
		if definition.DefaultValue != nil {
			p.write(" = ")
			p.printValue(definition.DefaultValue)
		}
	}
	p.write(")")
}

func (p *printer) printSelectionSet(selections []ir.Selection) {
	p.write(" {\n")
	p.depth++
	for _, selection := range selections {
		p.writeIndent()
		p.printSelection(selection)
		p.write("\n")
	}
	p.depth--
	p.writeIndent()
	p.write("}")
}

func (p *printer) printSelection(selection ir.Selection) {
	switch selection := selection.(type) {
	case *ir.LinkedField:
		p.printFieldHead(selection.Alias, selection.Name, selection.Args, selection.Directives)
		p.printSelectionSet(selection.Selections)
	case *ir.ScalarField:
		p.printFieldHead(selection.Alias, selection.Name, selection.Args, selection.Directives)
	case *ir.InlineFragment:
		p.write("...")
		if selection.TypeCondition != nil {
			p.write(" on ")
			p.write(selection.TypeCondition.Name())
		}
		p.printDirectives(selection.Directives)
		p.printSelectionSet(selection.Selections)
	case *ir.FragmentSpread:
		p.write("...")
		p.write(selection.Name)
		if len(selection.Args) != 0 {
			p.write(" @")
			p.write(ArgumentsDirectiveName)
			p.printArguments(selection.Args)
		}
		p.printDirectives(selection.Directives)
	case *ir.ModuleImport:
		p.write("... @")
		p.write(ModuleDirectiveName)
		p.write("(documentName: ")
		p.write(quotes.QuoteString(selection.DocumentName))
		p.write(", id: ")
		p.write(quotes.QuoteString(selection.ID))
		p.write(", module: ")
		p.write(quotes.QuoteString(selection.Module))
		p.write(", name: ")
		p.write(quotes.QuoteString(selection.Name))
		p.write(")")
		p.printSelectionSet(selection.Selections)
	default:
		p.fail(fmt.Errorf("irprinter: unexpected selection %T", selection))
	}
}

func (p *printer) printFieldHead(alias, name string, args []*ir.Argument, directives []*ir.Directive) {
	if alias != "" && alias != name {
		p.write(alias)
		p.write(": ")
	}
	p.write(name)
	p.printArguments(args)
	p.printDirectives(directives)
}

func (p *printer) printDirectives(directives []*ir.Directive) {
	for _, directive := range directives {
		p.write(" @")
		p.write(directive.Name)
		p.printArguments(directive.Args)
	}
}

func (p *printer) printArguments(args []*ir.Argument) {
	if len(args) == 0 {
		return
	}
	p.write("(")
	for i, arg := range args {
		if i != 0 {
			p.write(", ")
		}
		p.write(arg.Name)
		p.write(": ")
		p.printValue(arg.Value)
	}
	p.write(")")
}

func (p *printer) printValue(value ir.Value) {
	switch value := value.(type) {
	case *ir.Variable:
		p.write("$")
		p.write(value.VariableName)
	case *ir.Literal:
		p.write(LiteralString(value.Value))
	default:
		p.fail(fmt.Errorf("irprinter: unexpected value %T", value))
	}
}

func (p *printer) fail(err error) {
	if p.err == nil {
		p.err = err
	}
}

// LiteralString renders a literal value in GraphQL notation. Enum values are stored as strings
// in the IR and therefore print as strings. Object keys are sorted.
func LiteralString(value interface{}) string {
	switch value := value.(type) {
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(value)
	case int:
		return strconv.Itoa(value)
	case int64:
		return strconv.FormatInt(value, 10)
	case float64:
		return strconv.FormatFloat(value, 'g', -1, 64)
	case string:
		return quotes.QuoteString(value)
	case []string:
		items := make([]string, len(value))
		for i := range value {
			items[i] = quotes.QuoteString(value[i])
		}
		return "[" + strings.Join(items, ", ") + "]"
	case []interface{}:
		items := make([]string, len(value))
		for i := range value {
			items[i] = LiteralString(value[i])
		}
		return "[" + strings.Join(items, ", ") + "]"
	case map[string]interface{}:
		keys := make([]string, 0, len(value))
		for key := range value {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		items := make([]string, len(keys))
		for i, key := range keys {
			items[i] = key + ": " + LiteralString(value[key])
		}
		return "{" + strings.Join(items, ", ") + "}"
	default:
		return fmt.Sprintf("%v", value)
	}
}
