package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wundergraph/graphql-ir-compiler/pkg/irparser"
	"github.com/wundergraph/graphql-ir-compiler/pkg/irprinter"
	"github.com/wundergraph/graphql-ir-compiler/pkg/matchtransform"
	"github.com/wundergraph/graphql-ir-compiler/pkg/schema"
)

var fmtSchemaFiles []string

// fmtCmd represents the fmt command
var fmtCmd = &cobra.Command{
	Use:   "fmt",
	Short: "fmt formats graphql files",
}

// documentsCmd represents the fmt documents command
var documentsCmd = &cobra.Command{
	Use:     "documents",
	Short:   "documents formats graphql documents to std out",
	Example: "graphql-ir-compiler fmt documents --schema schema.graphql query.graphql > formatted.graphql",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return fmt.Errorf("documents: must provide at least 1 arg (fileName)")
		}

		serverSources, err := readSources(fmtSchemaFiles)
		if err != nil {
			return err
		}
		s, err := schema.Load(append(serverSources, matchtransform.SchemaSource()), nil)
		if err != nil {
			return err
		}

		documentSources, err := readSources(args)
		if err != nil {
			return err
		}
		documents, err := irparser.Parse(s, documentSources...)
		if err != nil {
			return err
		}

		return irprinter.PrintDocuments(documents, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(fmtCmd)
	fmtCmd.AddCommand(documentsCmd)

	documentsCmd.Flags().StringSliceVarP(&fmtSchemaFiles, "schema", "s", nil, "schema is a server schema file (required)")
	_ = documentsCmd.MarkFlagRequired("schema")
}
