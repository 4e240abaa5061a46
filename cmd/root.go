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
	"fmt"
	"os"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wundergraph/graphql-ir-compiler/pkg/operationreport"
)

const configName = ".graphql-ir-compiler"

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "graphql-ir-compiler",
	Short: "graphql-ir-compiler compiles GraphQL documents for on demand loaded modules",
	Long: `graphql-ir-compiler parses GraphQL documents against a schema and rewrites
@match fields and @module fragment spreads into the form a runtime module loader consumes.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorMessage(err))
		os.Exit(1)
	}
}

// errorMessage prints compiler diagnostics one per line, other errors as they are.
func errorMessage(err error) string {
	if message, ok := operationreport.ExternalErrorMessage(err, formatReport); ok {
		return message
	}
	return err.Error()
}

func formatReport(report *operationreport.Report) string {
	lines := make([]string, 0, len(report.ExternalErrors)+len(report.InternalErrors))
	for _, external := range report.ExternalErrors {
		line := external.Message
		if len(external.Locations) != 0 {
			line = external.Locations[0].String() + ": " + line
		}
		if len(external.Path) != 0 {
			line += " (" + strings.Join(external.Path, ".") + ")"
		}
		lines = append(lines, line)
	}
	for _, internal := range report.InternalErrors {
		lines = append(lines, "internal error: "+internal.Error())
	}
	return strings.Join(lines, "\n")
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/"+configName+".yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "debug enables debug logging")
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigName(configName)
	}

	viper.SetEnvPrefix("GRAPHQL_IR_COMPILER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
