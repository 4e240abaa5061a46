// Package modulekeys derives the aliases and artifact names a runtime loader uses to find the
// code and data of a @module fragment.
package modulekeys

import (
	"strings"
)

const (
	componentKeyPrefix    = "__module_component_"
	operationKeyPrefix    = "__module_operation_"
	normalizationSuffix   = "$normalization"
	artifactFileExtension = ".graphql"
)

// ComponentKey is the alias of the field resolving the component module of a document.
func ComponentKey(documentName string) string {
	return componentKeyPrefix + documentName
}

// OperationKey is the alias of the field resolving the normalization artifact of a document.
func OperationKey(documentName string) string {
	return operationKeyPrefix + documentName
}

// NormalizationOperationName is the name of the normalization operation generated for a fragment.
func NormalizationOperationName(fragmentName string) string {
	return fragmentName + normalizationSuffix
}

// NormalizationArtifactName is the file name of the compiled normalization operation of a fragment.
func NormalizationArtifactName(fragmentName string) string {
	return NormalizationOperationName(fragmentName) + artifactFileExtension
}

// ModuleID identifies a @module selection within its document: the document name followed by the
// aliases of all fields from the document root down to the selection, joined with ".".
func ModuleID(documentName string, path []string) string {
	return strings.Join(append([]string{documentName}, path...), ".")
}
