package cmd

import (
	"fmt"
	"os"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/wundergraph/graphql-ir-compiler/pkg/schema"
)

const (
	FormatGraphQL = "graphql"
	FormatYAML    = "yaml"
	FormatJSON    = "json"
	FormatDump    = "dump"
)

// Project is a set of documents compiled against one schema.
type Project struct {
	Name       string   `mapstructure:"name"`
	Schema     []string `mapstructure:"schema" validate:"required,min=1,dive,required"`
	Extensions []string `mapstructure:"extensions" validate:"dive,required"`
	Documents  []string `mapstructure:"documents" validate:"required,min=1,dive,required"`
}

type Config struct {
	Format      string    `mapstructure:"format" validate:"oneof=graphql yaml json dump"`
	Concurrency int       `mapstructure:"concurrency" validate:"min=1,max=256"`
	CacheSize   int       `mapstructure:"cacheSize" validate:"min=1"`
	OutFile     string    `mapstructure:"out"`
	Debug       bool      `mapstructure:"debug"`
	Projects    []Project `mapstructure:"projects" validate:"required,min=1,dive"`
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func newValidate() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

// loadConfig decodes the viper configuration. A project given on the command line replaces the
// projects of the config file.
func loadConfig(v *viper.Viper, flagProject *Project) (Config, error) {
	config := Config{
		Format:      FormatGraphQL,
		Concurrency: 1,
		CacheSize:   16,
	}
	if err := v.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("config: %w", err)
	}
	if flagProject != nil {
		config.Projects = []Project{*flagProject}
	}
	for i := range config.Projects {
		if config.Projects[i].Name == "" {
			config.Projects[i].Name = fmt.Sprintf("project_%d", i)
		}
	}
	if err := newValidate().Struct(config); err != nil {
		return config, fmt.Errorf("config: %w", err)
	}
	return config, nil
}

// readSources reads every file into a schema source named after its path.
func readSources(paths []string) ([]*schema.Source, error) {
	sources := make([]*schema.Source, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		sources = append(sources, &schema.Source{Name: path, Input: string(data)})
	}
	return sources, nil
}
