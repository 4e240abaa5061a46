// Package irvisitor rewrites IR documents with visitors registered per node kind.
//
// The Transformer walks every document depth first. A visitor receives a node together with the
// state of its parent and decides what to return in its place. Visitors that need the rewritten
// children call the matching Traverse method first, which transforms all children before the
// visitor continues, so every visitor runs post-order with respect to its subtree. Nodes without
// a registered visitor are traversed with the state of their parent.
//
// State is passed by value. A visitor overrides the state of its subtree by passing a different
// value to Traverse; siblings never observe it.
package irvisitor

import (
	"fmt"

	"github.com/wundergraph/graphql-ir-compiler/pkg/compiler"
	"github.com/wundergraph/graphql-ir-compiler/pkg/ir"
	"github.com/wundergraph/graphql-ir-compiler/pkg/operationreport"
)

type (
	RootVisitor[S any] interface {
		VisitRoot(w *Walk[S], root *ir.Root, state S) (ir.Definition, error)
	}
	FragmentVisitor[S any] interface {
		VisitFragment(w *Walk[S], fragment *ir.Fragment, state S) (ir.Definition, error)
	}
	LinkedFieldVisitor[S any] interface {
		VisitLinkedField(w *Walk[S], field *ir.LinkedField, state S) (ir.Selection, error)
	}
	ScalarFieldVisitor[S any] interface {
		VisitScalarField(w *Walk[S], field *ir.ScalarField, state S) (ir.Selection, error)
	}
	InlineFragmentVisitor[S any] interface {
		VisitInlineFragment(w *Walk[S], fragment *ir.InlineFragment, state S) (ir.Selection, error)
	}
	FragmentSpreadVisitor[S any] interface {
		VisitFragmentSpread(w *Walk[S], spread *ir.FragmentSpread, state S) (ir.Selection, error)
	}
	ModuleImportVisitor[S any] interface {
		VisitModuleImport(w *Walk[S], moduleImport *ir.ModuleImport, state S) (ir.Selection, error)
	}
)

type visitors[S any] struct {
	root           RootVisitor[S]
	fragment       FragmentVisitor[S]
	linkedField    LinkedFieldVisitor[S]
	scalarField    ScalarFieldVisitor[S]
	inlineFragment InlineFragmentVisitor[S]
	fragmentSpread FragmentSpreadVisitor[S]
	moduleImport   ModuleImportVisitor[S]
}

// Transformer implements compiler.Pass. Register all visitors before the first Transform call,
// afterwards the Transformer is read only and may be used concurrently.
type Transformer[S any] struct {
	name      string
	initState func(document ir.Definition) S
	visitors  visitors[S]
}

// NewTransformer creates a transformer. initState creates the state for the root of each document.
func NewTransformer[S any](name string, initState func(document ir.Definition) S) *Transformer[S] {
	return &Transformer[S]{
		name:      name,
		initState: initState,
	}
}

func (t *Transformer[S]) RegisterRootVisitor(visitor RootVisitor[S]) {
	t.visitors.root = visitor
}

func (t *Transformer[S]) RegisterFragmentVisitor(visitor FragmentVisitor[S]) {
	t.visitors.fragment = visitor
}

func (t *Transformer[S]) RegisterLinkedFieldVisitor(visitor LinkedFieldVisitor[S]) {
	t.visitors.linkedField = visitor
}

func (t *Transformer[S]) RegisterScalarFieldVisitor(visitor ScalarFieldVisitor[S]) {
	t.visitors.scalarField = visitor
}

func (t *Transformer[S]) RegisterInlineFragmentVisitor(visitor InlineFragmentVisitor[S]) {
	t.visitors.inlineFragment = visitor
}

func (t *Transformer[S]) RegisterFragmentSpreadVisitor(visitor FragmentSpreadVisitor[S]) {
	t.visitors.fragmentSpread = visitor
}

func (t *Transformer[S]) RegisterModuleImportVisitor(visitor ModuleImportVisitor[S]) {
	t.visitors.moduleImport = visitor
}

func (t *Transformer[S]) Name() string {
	return t.name
}

// Transform rewrites a single document. The first error aborts the document.
func (t *Transformer[S]) Transform(compilerContext *compiler.Context, document ir.Definition) (ir.Definition, error) {
	w := &Walk[S]{
		transformer: t,
		context:     compilerContext,
		document:    document,
		path:        make([]string, 0, 16),
	}
	w.path = append(w.path, document.DefinitionName())

	var state S
	if t.initState != nil {
		state = t.initState(document)
	}

	var (
		result ir.Definition
		err    error
	)
	switch document := document.(type) {
	case *ir.Root:
		if t.visitors.root != nil {
			result, err = t.visitors.root.VisitRoot(w, document, state)
		} else {
			result, err = w.TraverseDefinition(document, state)
		}
	case *ir.Fragment:
		if t.visitors.fragment != nil {
			result, err = t.visitors.fragment.VisitFragment(w, document, state)
		} else {
			result, err = w.TraverseDefinition(document, state)
		}
	default:
		err = fmt.Errorf("irvisitor: unexpected document kind %s", document.Kind())
	}
	if err != nil {
		return nil, w.withPath(err)
	}
	return result, nil
}

// Walk is the per document traversal handle passed to visitors.
type Walk[S any] struct {
	transformer *Transformer[S]
	context     *compiler.Context
	document    ir.Definition
	path        []string
}

// Context returns the compiler context the document belongs to. It reflects the documents
// before the current pass.
func (w *Walk[S]) Context() *compiler.Context {
	return w.context
}

func (w *Walk[S]) Document() ir.Definition {
	return w.document
}

// Path returns a copy of the response keys from the document root to the current field.
func (w *Walk[S]) Path() []string {
	out := make([]string, len(w.path))
	copy(out, w.path)
	return out
}

// TraverseDefinition transforms the selections of a document.
func (w *Walk[S]) TraverseDefinition(definition ir.Definition, state S) (ir.Definition, error) {
	selections, changed, err := w.traverseSelections(definition.SelectionSet(), state)
	if err != nil {
		return nil, err
	}
	if !changed {
		return definition, nil
	}
	return definition.WithSelections(selections), nil
}

func (w *Walk[S]) TraverseLinkedField(field *ir.LinkedField, state S) (*ir.LinkedField, error) {
	selections, changed, err := w.traverseSelections(field.Selections, state)
	if err != nil {
		return nil, err
	}
	if !changed {
		return field, nil
	}
	return field.WithSelections(selections), nil
}

func (w *Walk[S]) TraverseInlineFragment(fragment *ir.InlineFragment, state S) (*ir.InlineFragment, error) {
	selections, changed, err := w.traverseSelections(fragment.Selections, state)
	if err != nil {
		return nil, err
	}
	if !changed {
		return fragment, nil
	}
	return fragment.WithSelections(selections), nil
}

func (w *Walk[S]) TraverseModuleImport(moduleImport *ir.ModuleImport, state S) (*ir.ModuleImport, error) {
	selections, changed, err := w.traverseSelections(moduleImport.Selections, state)
	if err != nil {
		return nil, err
	}
	if !changed {
		return moduleImport, nil
	}
	return moduleImport.WithSelections(selections), nil
}

// TraverseSelections transforms a selection set. The input slice is returned unchanged if no
// selection was replaced.
func (w *Walk[S]) TraverseSelections(selections []ir.Selection, state S) ([]ir.Selection, error) {
	out, _, err := w.traverseSelections(selections, state)
	return out, err
}

func (w *Walk[S]) traverseSelections(selections []ir.Selection, state S) (out []ir.Selection, changed bool, err error) {
	for i := range selections {
		next, err := w.visitSelection(selections[i], state)
		if err != nil {
			return nil, false, err
		}
		if !changed && next == selections[i] {
			continue
		}
		if !changed {
			changed = true
			out = make([]ir.Selection, 0, len(selections))
			out = append(out, selections[:i]...)
		}
		if next != nil {
			out = append(out, next)
		}
	}
	if !changed {
		return selections, false, nil
	}
	return out, true, nil
}

func (w *Walk[S]) visitSelection(selection ir.Selection, state S) (next ir.Selection, err error) {
	visitors := &w.transformer.visitors

	switch selection := selection.(type) {
	case *ir.LinkedField:
		w.pushPath(selection.Alias, selection.Name)
		defer w.popPath()
		if visitors.linkedField != nil {
			next, err = visitors.linkedField.VisitLinkedField(w, selection, state)
		} else {
			next, err = w.TraverseLinkedField(selection, state)
		}
	case *ir.ScalarField:
		w.pushPath(selection.Alias, selection.Name)
		defer w.popPath()
		if visitors.scalarField != nil {
			next, err = visitors.scalarField.VisitScalarField(w, selection, state)
		} else {
			next = selection
		}
	case *ir.InlineFragment:
		if visitors.inlineFragment != nil {
			next, err = visitors.inlineFragment.VisitInlineFragment(w, selection, state)
		} else {
			next, err = w.TraverseInlineFragment(selection, state)
		}
	case *ir.FragmentSpread:
		if visitors.fragmentSpread != nil {
			next, err = visitors.fragmentSpread.VisitFragmentSpread(w, selection, state)
		} else {
			next = selection
		}
	case *ir.ModuleImport:
		if visitors.moduleImport != nil {
			next, err = visitors.moduleImport.VisitModuleImport(w, selection, state)
		} else {
			next, err = w.TraverseModuleImport(selection, state)
		}
	default:
		return nil, fmt.Errorf("irvisitor: unexpected selection kind %s", selection.Kind())
	}

	if err != nil {
		return nil, w.withPath(err)
	}
	return next, nil
}

func (w *Walk[S]) pushPath(alias, name string) {
	if alias == "" {
		alias = name
	}
	w.path = append(w.path, alias)
}

func (w *Walk[S]) popPath() {
	w.path = w.path[:len(w.path)-1]
}

// withPath attaches the current path to external errors that don't carry one yet.
// It is called on the way up, so the deepest frame wins.
func (w *Walk[S]) withPath(err error) error {
	external, ok := err.(operationreport.ExternalError)
	if !ok || external.Path != nil {
		return err
	}
	external.Path = w.Path()
	return external
}
