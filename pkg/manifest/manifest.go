// Package manifest extracts the module and match metadata of transformed documents.
package manifest

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/cespare/xxhash/v2"
	"gopkg.in/yaml.v2"

	"github.com/wundergraph/graphql-ir-compiler/pkg/compiler"
	"github.com/wundergraph/graphql-ir-compiler/pkg/ir"
	"github.com/wundergraph/graphql-ir-compiler/pkg/irvisitor"
	"github.com/wundergraph/graphql-ir-compiler/pkg/matchtransform"
)

type Manifest struct {
	Hash    string   `json:"hash" yaml:"hash"`
	Modules []Module `json:"modules" yaml:"modules"`
	Matches []Match  `json:"matches" yaml:"matches"`
}

type Module struct {
	Document      string `json:"document" yaml:"document"`
	ID            string `json:"id" yaml:"id"`
	Module        string `json:"module" yaml:"module"`
	Fragment      string `json:"fragment" yaml:"fragment"`
	Normalization string `json:"normalization,omitempty" yaml:"normalization,omitempty"`
	OperationKey  string `json:"operationKey,omitempty" yaml:"operationKey,omitempty"`
	ComponentKey  string `json:"componentKey,omitempty" yaml:"componentKey,omitempty"`
}

type Match struct {
	Document  string   `json:"document" yaml:"document"`
	Path      string   `json:"path" yaml:"path"`
	Field     string   `json:"field" yaml:"field"`
	Supported []string `json:"supported" yaml:"supported"`
}

// Build collects the manifest of all documents of compilerContext. The documents are expected
// to have passed the match transform.
func Build(compilerContext *compiler.Context) (*Manifest, error) {
	c := &collector{
		manifest: &Manifest{
			Modules: []Module{},
			Matches: []Match{},
		},
	}
	transformer := irvisitor.NewTransformer[struct{}]("manifest", nil)
	transformer.RegisterLinkedFieldVisitor(c)
	transformer.RegisterModuleImportVisitor(c)

	for _, document := range compilerContext.Documents() {
		c.document = document.DefinitionName()
		if _, err := transformer.Transform(compilerContext, document); err != nil {
			return nil, fmt.Errorf("manifest: %w", err)
		}
	}

	hash, err := c.manifest.contentHash()
	if err != nil {
		return nil, err
	}
	c.manifest.Hash = hash
	return c.manifest, nil
}

func (m *Manifest) WriteJSON(out io.Writer) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	_, err = out.Write(append(data, '\n'))
	return err
}

func (m *Manifest) WriteYAML(out io.Writer) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}

// contentHash hashes the entries, the hash field itself is left out.
func (m *Manifest) contentHash() (string, error) {
	data, err := json.Marshal(struct {
		Modules []Module `json:"modules"`
		Matches []Match  `json:"matches"`
	}{
		Modules: m.Modules,
		Matches: m.Matches,
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%016x", xxhash.Sum64(data)), nil
}

type collector struct {
	manifest *Manifest
	document string
}

func (c *collector) VisitLinkedField(w *irvisitor.Walk[struct{}], field *ir.LinkedField, state struct{}) (ir.Selection, error) {
	if _, err := w.TraverseLinkedField(field, state); err != nil {
		return nil, err
	}
	if supported, ok := matchedTypes(field); ok {
		c.manifest.Matches = append(c.manifest.Matches, Match{
			Document:  c.document,
			Path:      strings.Join(w.Path(), "."),
			Field:     field.Name,
			Supported: supported,
		})
	}
	return field, nil
}

func (c *collector) VisitModuleImport(w *irvisitor.Walk[struct{}], moduleImport *ir.ModuleImport, state struct{}) (ir.Selection, error) {
	entry := Module{
		Document: moduleImport.DocumentName,
		ID:       moduleImport.ID,
		Module:   moduleImport.Module,
		Fragment: moduleImport.Name,
	}
	if len(moduleImport.Selections) == 3 {
		if operationField, ok := moduleImport.Selections[1].(*ir.ScalarField); ok {
			entry.OperationKey = operationField.Alias
			entry.Normalization, _ = ir.LiteralArgumentValues(operationField.Args)[matchtransform.ResourceFieldModuleArgument].(string)
		}
		if componentField, ok := moduleImport.Selections[2].(*ir.ScalarField); ok {
			entry.ComponentKey = componentField.Alias
		}
	}
	c.manifest.Modules = append(c.manifest.Modules, entry)

	if _, err := w.TraverseModuleImport(moduleImport, state); err != nil {
		return nil, err
	}
	return moduleImport, nil
}

// matchedTypes returns the supported types of a rewritten match field.
func matchedTypes(field *ir.LinkedField) ([]string, bool) {
	supported, ok := stringList(ir.LiteralArgumentValues(field.Args)[matchtransform.SupportedArgumentName])
	if !ok {
		return nil, false
	}
	for _, selection := range field.Selections {
		fragment, ok := selection.(*ir.InlineFragment)
		if !ok || len(fragment.Selections) != 1 {
			continue
		}
		if _, ok := fragment.Selections[0].(*ir.ModuleImport); ok {
			return supported, true
		}
	}
	return nil, false
}

// stringList accepts the []string built by the transform as well as the []interface{} a parser
// produces for list literals.
func stringList(value interface{}) ([]string, bool) {
	switch value := value.(type) {
	case []string:
		return value, true
	case []interface{}:
		out := make([]string, 0, len(value))
		for i := range value {
			item, ok := value[i].(string)
			if !ok {
				return nil, false
			}
			out = append(out, item)
		}
		return out, true
	default:
		return nil, false
	}
}
