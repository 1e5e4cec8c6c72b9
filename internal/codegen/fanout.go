package codegen

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/astridej/smithy4s/internal/model"
)

const generatedMetadataName = "generated-metadata.json"

// fanOut runs the source pipeline per eligible namespace and the two
// side-format pipelines over the whole model, and collects their entries.
//
// Precondition: the duplicate-manifest scan has completed and succeeded.
// The per-namespace renders and the side pipelines run concurrently; entry
// ordering is restored after the join, so output order never depends on
// completion order. Resource entries are concatenated as resource-manifest,
// then API-description, then binary-schema entries.
func fanOut(ctx context.Context, m *model.Model, eligible NamespaceSet, args Args, p Pipelines) (sources, resources []CodegenEntry, err error) {
	namespaces := eligible.Sorted()

	if !args.SkipSource && p.Renderer == nil && len(namespaces) > 0 {
		return nil, nil, fmt.Errorf("source generation is enabled but no renderer is configured")
	}
	renderSources := !args.SkipSource && p.Renderer != nil

	var (
		perNamespace   = make([][]CodegenEntry, len(namespaces))
		openapiEntries []CodegenEntry
		schemaEntries  []CodegenEntry
	)

	g, gctx := errgroup.WithContext(ctx)

	if renderSources {
		for i, ns := range namespaces {
			i, ns := i, ns
			g.Go(func() error {
				units, err := p.Renderer.Render(gctx, m, ns)
				if err != nil {
					return fmt.Errorf("rendering %s: %w", ns, err)
				}
				entries := make([]CodegenEntry, 0, len(units))
				for _, unit := range units {
					dst := sourcePath(args.Output, unit, p.Renderer.Extension())
					entries = append(entries, FromMemory(dst, []byte(unit.Content)))
				}
				perNamespace[i] = entries
				return nil
			})
		}
	}

	if !args.SkipOpenAPI && p.OpenAPI != nil {
		g.Go(func() error {
			docs, err := p.OpenAPI.Convert(gctx, m, optionalSet(args.Allowed))
			if err != nil {
				return fmt.Errorf("converting to API descriptions: %w", err)
			}
			for _, doc := range docs {
				dst := filepath.Join(args.ResourceOutput, doc.Namespace+"."+doc.Service+".json")
				openapiEntries = append(openapiEntries, FromMemory(dst, doc.Contents))
			}
			return nil
		})
	}

	if !args.SkipSchemaBin && p.Schema != nil {
		g.Go(func() error {
			docs, err := p.Schema.Compile(gctx, m)
			if err != nil {
				return fmt.Errorf("compiling binary schemas: %w", err)
			}
			for _, doc := range docs {
				dst := filepath.Join(args.ResourceOutput, filepath.FromSlash(doc.Path))
				schemaEntries = append(schemaEntries, FromMemory(dst, doc.Contents))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	for _, entries := range perNamespace {
		sources = append(sources, entries...)
	}

	manifests, err := manifestEntries(args, namespaces, renderSources)
	if err != nil {
		return nil, nil, err
	}
	resources = append(resources, manifests...)
	resources = append(resources, openapiEntries...)
	resources = append(resources, schemaEntries...)
	return sources, resources, nil
}

// manifestEntries builds the resource-manifest side-artifact: a manifest
// file plus a metadata document recording this run's generated namespaces.
// It has no meaning without generated sources, so it is skipped along with
// the source pipeline. Exception: a run with no specs and no generated
// namespaces still emits both files near-empty, because downstream tooling
// expects them to exist.
func manifestEntries(args Args, generated []string, renderedSources bool) ([]CodegenEntry, error) {
	emptyRun := len(args.Specs) == 0 && len(generated) == 0
	if args.SkipResource || (args.SkipSource && !emptyRun) {
		return nil, nil
	}

	recorded := generated
	if !renderedSources || recorded == nil {
		recorded = []string{}
	}
	artifact := args.Artifact
	if artifact == "" {
		artifact = "smithy4s-generated"
	}
	doc, err := model.ManifestDocument([]model.GenerationManifest{
		{Artifact: artifact, Namespaces: recorded},
	})
	if err != nil {
		return nil, err
	}

	base := filepath.Join(args.ResourceOutput, "META-INF", "smithy")
	return []CodegenEntry{
		FromMemory(filepath.Join(base, "manifest"), []byte(generatedMetadataName+"\n")),
		FromMemory(filepath.Join(base, generatedMetadataName), doc),
	}, nil
}

func sourcePath(outputDir string, unit RenderedUnit, extension string) string {
	segments := strings.Split(unit.Namespace, ".")
	return filepath.Join(outputDir, filepath.Join(segments...), unit.Name+"."+extension)
}
