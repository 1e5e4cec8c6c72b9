package commands

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/astridej/smithy4s/internal/codegen"
	"github.com/astridej/smithy4s/internal/output"
)

// DumpModelCmd creates and returns the 'dump-model' command
func DumpModelCmd() *cobra.Command {
	var (
		dependencies   []string
		repositories   []string
		localArchives  []string
		transformers   []string
		discoverModels bool
		format         string
	)

	cmd := &cobra.Command{
		Use:   "dump-model [spec...]",
		Short: "Load a model and print it as a single flattened document",
		Long: `Load a model from spec files and dependency archives, flatten mixins,
and print the resulting JSON AST document. Useful for inspecting what the
generation pipelines will actually see.`,
		Run: func(cmd *cobra.Command, argv []string) {
			args := codegen.Args{
				Specs:          argv,
				Dependencies:   dependencies,
				Repositories:   repositories,
				LocalArchives:  localArchives,
				Transformers:   transformers,
				DiscoverModels: discoverModels,
			}

			dump, err := codegen.DumpModel(args)
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}

			switch format {
			case "json":
				fmt.Println(dump)
			case "yaml":
				var doc any
				if err := json.Unmarshal([]byte(dump), &doc); err != nil {
					output.Error(err.Error())
					os.Exit(1)
				}
				data, err := yaml.Marshal(doc)
				if err != nil {
					output.Error(err.Error())
					os.Exit(1)
				}
				fmt.Print(string(data))
			default:
				output.Error(fmt.Sprintf("unknown format %q (valid: json, yaml)", format))
				os.Exit(1)
			}
		},
	}

	cmd.Flags().StringSliceVar(&dependencies, "dependencies", nil, "Dependency coordinates (group:artifact:version)")
	cmd.Flags().StringSliceVar(&repositories, "repositories", nil, "Artifact repository directories")
	cmd.Flags().StringSliceVar(&localArchives, "local-archives", nil, "Model archives referenced directly by path")
	cmd.Flags().StringSliceVar(&transformers, "transformers", nil, "Model transformers to apply, in order")
	cmd.Flags().BoolVar(&discoverModels, "discover-models", false, "Also load every archive found in the repositories")
	cmd.Flags().StringVar(&format, "format", "json", "Output format (json, yaml)")

	return cmd
}
