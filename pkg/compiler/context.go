// Package compiler holds the documents of a compilation together with their schema and runs
// transform passes over them.
package compiler

import (
	"github.com/wundergraph/graphql-ir-compiler/pkg/ir"
	"github.com/wundergraph/graphql-ir-compiler/pkg/operationreport"
	"github.com/wundergraph/graphql-ir-compiler/pkg/schema"
)

// Context is an immutable set of named documents validated against one schema.
// Adding or replacing documents returns a new Context.
type Context struct {
	schema    *schema.Schema
	documents []ir.Definition
	index     map[string]int
}

func NewContext(s *schema.Schema) *Context {
	return &Context{
		schema: s,
		index:  map[string]int{},
	}
}

func (c *Context) Schema() *schema.Schema {
	return c.schema
}

// AddDocuments returns a new context containing the documents of c followed by documents.
// Document names must be unique across operations and fragments.
func (c *Context) AddDocuments(documents ...ir.Definition) (*Context, error) {
	next := &Context{
		schema:    c.schema,
		documents: make([]ir.Definition, 0, len(c.documents)+len(documents)),
		index:     make(map[string]int, len(c.documents)+len(documents)),
	}
	next.documents = append(next.documents, c.documents...)
	for name, i := range c.index {
		next.index[name] = i
	}

	for _, document := range documents {
		name := document.DefinitionName()
		if i, exists := next.index[name]; exists {
			return nil, operationreport.ErrDuplicateDocument(name, document.Loc(), next.documents[i].Loc())
		}
		next.index[name] = len(next.documents)
		next.documents = append(next.documents, document)
	}
	return next, nil
}

// Documents returns the documents in insertion order.
func (c *Context) Documents() []ir.Definition {
	out := make([]ir.Definition, len(c.documents))
	copy(out, c.documents)
	return out
}

func (c *Context) Len() int {
	return len(c.documents)
}

func (c *Context) Document(name string) (ir.Definition, bool) {
	i, ok := c.index[name]
	if !ok {
		return nil, false
	}
	return c.documents[i], true
}

// Fragment resolves a fragment definition by name. loc is the location of the reference and is
// used for the diagnostic if no fragment with that name exists.
func (c *Context) Fragment(name string, loc ir.Location) (*ir.Fragment, error) {
	document, ok := c.Document(name)
	if !ok {
		return nil, operationreport.ErrUnknownFragment(name, loc)
	}
	fragment, ok := document.(*ir.Fragment)
	if !ok {
		return nil, operationreport.ErrUnknownFragment(name, loc)
	}
	return fragment, nil
}

// Root resolves an operation by name.
func (c *Context) Root(name string) (*ir.Root, bool) {
	document, ok := c.Document(name)
	if !ok {
		return nil, false
	}
	root, ok := document.(*ir.Root)
	return root, ok
}

// withDocuments replaces all documents, dropping nil entries.
func (c *Context) withDocuments(documents []ir.Definition) *Context {
	next := &Context{
		schema:    c.schema,
		documents: make([]ir.Definition, 0, len(documents)),
		index:     make(map[string]int, len(documents)),
	}
	for _, document := range documents {
		if document == nil {
			continue
		}
		next.index[document.DefinitionName()] = len(next.documents)
		next.documents = append(next.documents, document)
	}
	return next
}
