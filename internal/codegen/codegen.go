// Package codegen is the multi-target code-generation orchestrator: it
// decides which namespaces to generate, fans the model out over the source,
// API-description and binary-schema pipelines, and unifies their outputs
// into one conflict-free, write-once artifact set.
//
// The renderers themselves are external collaborators (see Pipelines);
// this package only coordinates them and merges results.
package codegen

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/astridej/smithy4s/internal/model"
)

// Generate loads the model described by args and produces the unified
// generation result. It does not touch the filesystem; pass the result to
// Write to commit it.
func Generate(ctx context.Context, args Args, p Pipelines) (*CodegenResult, error) {
	m, err := model.Load(args.loadOptions())
	if err != nil {
		return nil, err
	}
	return generateFromModel(ctx, m, args, p)
}

// generateFromModel is the post-load half of Generate. The manifest scan is
// a global precondition: it must complete and succeed before any rendering
// starts.
func generateFromModel(ctx context.Context, m *model.Model, args Args, p Pipelines) (*CodegenResult, error) {
	alreadyGenerated, err := ScanManifests(m)
	if err != nil {
		return nil, err
	}

	eligible := ResolveNamespaces(m, optionalSet(args.Allowed), optionalSet(args.Excluded), alreadyGenerated)

	sources, resources, err := fanOut(ctx, m, eligible, args, p)
	if err != nil {
		return nil, err
	}
	return Unify(sources, resources), nil
}

// DumpModel loads a model without manifest-based namespace discovery,
// flattens mixins and returns the pretty-printed JSON AST document. Used
// for diagnostics.
func DumpModel(args Args) (string, error) {
	m, err := model.Load(args.loadOptions())
	if err != nil {
		return "", err
	}
	if err := model.FlattenMixins(m); err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(m.Document(), "", "    ")
	if err != nil {
		return "", fmt.Errorf("serializing model: %w", err)
	}
	return string(data), nil
}
