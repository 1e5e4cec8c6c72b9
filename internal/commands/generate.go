package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/astridej/smithy4s/internal/codegen"
	"github.com/astridej/smithy4s/internal/output"
	"github.com/astridej/smithy4s/internal/pipeline/extrender"
	"github.com/astridej/smithy4s/internal/pipeline/openapi"
	"github.com/astridej/smithy4s/internal/pipeline/schemabin"
)

// GenerateCmd creates and returns the 'generate' command
func GenerateCmd() *cobra.Command {
	var (
		dependencies   []string
		repositories   []string
		localArchives  []string
		transformers   []string
		allowedNS      []string
		excludedNS     []string
		skips          []string
		discoverModels bool

		outputDir         string
		resourceOutputDir string
		artifact          string

		rendererCommand   string
		rendererArgs      []string
		rendererExtension string
	)

	cmd := &cobra.Command{
		Use:   "generate [spec...]",
		Short: "Generate code and schema artifacts from Smithy models",
		Long: `Generate source code, OpenAPI documents and binary schema documents
from resolved Smithy models (JSON AST documents).

Namespaces already generated by upstream dependency artifacts are skipped
automatically; two artifacts claiming the same namespace abort the run.

Source rendering is delegated to an external renderer command that reads
one namespace of the model as JSON on stdin and writes its rendered units
as JSON on stdout. Configure it with --renderer or in smithy4s.yml:

  renderer:
    command: smithy4s-render-scala
    extension: scala

Examples:
  smithy4s generate service.json
  smithy4s generate service.json --skip openapi --allowed-ns com.example
  smithy4s generate --dependencies com.example:api-models:1.2.0 \
    --repositories ./artifacts --skip source`,
		Run: func(cmd *cobra.Command, argv []string) {
			ctx := context.Background()

			cfg, err := loadProjectConfig()
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}

			args := codegen.Args{
				Specs:          argv,
				Dependencies:   dependencies,
				Repositories:   repositories,
				LocalArchives:  localArchives,
				Transformers:   transformers,
				DiscoverModels: discoverModels,
				Allowed:        allowedNS,
				Excluded:       excludedNS,
				Output:         fallback(outputDir, fallback(cfg.Output, "generated")),
				ResourceOutput: fallback(resourceOutputDir, fallback(cfg.ResourceOutput, "generated-resources")),
				Artifact:       fallback(artifact, cfg.Artifact),
			}

			if !cmd.Flags().Changed("skip") {
				skips = cfg.Skip
			}
			if err := applySkips(&args, skips); err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}

			output.Verbose("resolved arguments:\n" + spew.Sdump(args))

			pipelines := codegen.Pipelines{
				OpenAPI: openapi.New(),
				Schema:  schemabin.New(),
			}
			command := fallback(rendererCommand, cfg.RendererCommand)
			if command != "" {
				extension := fallback(rendererExtension, fallback(cfg.RendererExtension, "scala"))
				rargs := rendererArgs
				if len(rargs) == 0 {
					rargs = cfg.RendererArgs
				}
				pipelines.Renderer = extrender.New(command, extension, rargs...)
				output.Verbose(fmt.Sprintf("using renderer: %s (.%s)", command, extension))
			}

			result, err := codegen.Generate(ctx, args, pipelines)
			if err != nil {
				var dup *codegen.DuplicateNamespaceError
				if errors.As(err, &dup) {
					output.Error(dup.Error())
					output.Info("Each namespace may be generated by at most one artifact; remove the duplicate dependency")
					os.Exit(1)
				}
				output.Error(err.Error())
				os.Exit(1)
			}

			written, err := codegen.Write(result)
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}

			paths := make([]string, 0, len(written))
			for path := range written {
				paths = append(paths, path)
			}
			sort.Strings(paths)
			for _, path := range paths {
				output.Step(path)
			}
			output.Success(fmt.Sprintf("Generated %d files (%d sources, %d resources)",
				len(written), len(result.Sources), len(result.Resources)))
		},
	}

	cmd.Flags().StringSliceVar(&dependencies, "dependencies", nil, "Dependency coordinates (group:artifact:version)")
	cmd.Flags().StringSliceVar(&repositories, "repositories", nil, "Artifact repository directories")
	cmd.Flags().StringSliceVar(&localArchives, "local-archives", nil, "Model archives referenced directly by path")
	cmd.Flags().StringSliceVar(&transformers, "transformers", nil, "Model transformers to apply, in order")
	cmd.Flags().StringSliceVar(&allowedNS, "allowed-ns", nil, "Only generate these namespaces")
	cmd.Flags().StringSliceVar(&excludedNS, "excluded-ns", nil, "Never generate these namespaces")
	cmd.Flags().StringSliceVar(&skips, "skip", nil, "Pipelines to skip (source, resource, openapi, schemabin)")
	cmd.Flags().BoolVar(&discoverModels, "discover-models", false, "Also load every archive found in the repositories")
	cmd.Flags().StringVar(&outputDir, "output", "", "Output directory for generated sources")
	cmd.Flags().StringVar(&resourceOutputDir, "resource-output", "", "Output directory for generated resources")
	cmd.Flags().StringVar(&artifact, "artifact", "", "Artifact name recorded in the generation manifest")
	cmd.Flags().StringVar(&rendererCommand, "renderer", "", "External renderer command")
	cmd.Flags().StringSliceVar(&rendererArgs, "renderer-args", nil, "Arguments passed to the renderer command")
	cmd.Flags().StringVar(&rendererExtension, "extension", "", "File extension of rendered sources")

	return cmd
}

func applySkips(args *codegen.Args, skips []string) error {
	for _, skip := range skips {
		switch skip {
		case "source":
			args.SkipSource = true
		case "resource":
			args.SkipResource = true
		case "openapi":
			args.SkipOpenAPI = true
		case "schemabin":
			args.SkipSchemaBin = true
		default:
			return fmt.Errorf("unknown pipeline %q (valid: source, resource, openapi, schemabin)", skip)
		}
	}
	return nil
}
