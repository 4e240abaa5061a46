/*
Copyright © 2019 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/jensneuse/abstractlogger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wundergraph/graphql-ir-compiler/pkg/compiler"
	"github.com/wundergraph/graphql-ir-compiler/pkg/irparser"
	"github.com/wundergraph/graphql-ir-compiler/pkg/irprinter"
	"github.com/wundergraph/graphql-ir-compiler/pkg/manifest"
	"github.com/wundergraph/graphql-ir-compiler/pkg/matchtransform"
	"github.com/wundergraph/graphql-ir-compiler/pkg/schema"
)

var (
	schemaFiles    []string
	extensionFiles []string
)

// transformCmd represents the transform command
var transformCmd = &cobra.Command{
	Use:   "transform [documents...]",
	Short: "Rewrites @match fields and @module spreads",
	Long: `transform parses GraphQL documents against a schema and runs the match transform.

@module spreads become module imports carrying the ids a runtime loader needs,
@match fields get a "supported" argument listing their module variants.
The result is printed as GraphQL, as a yaml or json manifest of all modules and match fields,
or as a dump of the IR.

Projects are read from the config file unless --schema or documents are given on the command line.`,
	Example: `graphql-ir-compiler transform --schema schema.graphql --extension client.graphql --format yaml ./queries/*.graphql`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var flagProject *Project
		if len(schemaFiles) != 0 || len(args) != 0 {
			flagProject = &Project{
				Name:       "cli",
				Schema:     schemaFiles,
				Extensions: extensionFiles,
				Documents:  args,
			}
		}

		config, err := loadConfig(viper.GetViper(), flagProject)
		if err != nil {
			return err
		}

		logger, sync, err := newLogger(config.Debug)
		if err != nil {
			return err
		}
		defer sync()

		var out io.Writer
		if config.OutFile == "" {
			out = cmd.OutOrStdout()
		} else {
			o, err := os.Create(config.OutFile)
			if err != nil {
				return err
			}
			defer o.Close()
			out = o
		}

		return runTransform(context.Background(), config, out, logger)
	},
}

func init() {
	rootCmd.AddCommand(transformCmd)

	transformCmd.Flags().StringSliceVarP(&schemaFiles, "schema", "s", nil, "schema is a server schema file, repeat for schemas split into several files")
	transformCmd.Flags().StringSliceVarP(&extensionFiles, "extension", "e", nil, "extension is a client schema extension file (optional)")

	transformCmd.Flags().StringP("format", "f", FormatGraphQL, "format of the output: graphql, yaml, json or dump")
	_ = viper.BindPFlag("format", transformCmd.Flags().Lookup("format"))

	transformCmd.Flags().IntP("concurrency", "c", 1, "concurrency is the number of documents transformed at the same time")
	_ = viper.BindPFlag("concurrency", transformCmd.Flags().Lookup("concurrency"))

	transformCmd.Flags().StringP("outFile", "o", "", "outFile is a flag to redirect the output directly into a file (optional)")
	_ = viper.BindPFlag("out", transformCmd.Flags().Lookup("outFile"))
}

// runTransform compiles all projects in order. Projects with the same schema files share the
// parsed schema.
func runTransform(ctx context.Context, config Config, out io.Writer, logger abstractlogger.Logger) error {
	cache, err := schema.NewCache(config.CacheSize)
	if err != nil {
		return err
	}

	for _, project := range config.Projects {
		result, err := compileProject(ctx, cache, project, config.Concurrency, logger)
		if err != nil {
			return fmt.Errorf("%s: %w", project.Name, err)
		}
		logger.Debug("project compiled",
			abstractlogger.String("project", project.Name),
			abstractlogger.Int("documents", result.Len()),
		)
		if err := writeResult(out, config.Format, result); err != nil {
			return err
		}
	}
	return nil
}

func compileProject(ctx context.Context, cache *schema.Cache, project Project, concurrency int, logger abstractlogger.Logger) (*compiler.Context, error) {
	serverSources, err := readSources(project.Schema)
	if err != nil {
		return nil, err
	}
	extensionSources, err := readSources(project.Extensions)
	if err != nil {
		return nil, err
	}
	s, err := cache.Load(append(serverSources, matchtransform.SchemaSource()), extensionSources)
	if err != nil {
		return nil, err
	}

	documentSources, err := readSources(project.Documents)
	if err != nil {
		return nil, err
	}
	documents, err := irparser.Parse(s, documentSources...)
	if err != nil {
		return nil, err
	}
	compilerContext, err := compiler.NewContext(s).AddDocuments(documents...)
	if err != nil {
		return nil, err
	}

	return matchtransform.Transform(ctx, compilerContext,
		compiler.WithLogger(logger),
		compiler.WithConcurrency(concurrency),
	)
}

func writeResult(out io.Writer, format string, result *compiler.Context) error {
	switch format {
	case FormatGraphQL:
		return irprinter.PrintDocuments(result.Documents(), out)
	case FormatYAML, FormatJSON:
		m, err := manifest.Build(result)
		if err != nil {
			return err
		}
		if format == FormatYAML {
			return m.WriteYAML(out)
		}
		return m.WriteJSON(out)
	case FormatDump:
		dumper := spew.ConfigState{
			Indent:                  "  ",
			DisablePointerAddresses: true,
			DisableCapacities:       true,
			SortKeys:                true,
		}
		dumper.Fdump(out, result.Documents())
		return nil
	default:
		return fmt.Errorf("unsupported format '%s'", format)
	}
}
