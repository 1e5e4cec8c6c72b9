// Package openapi converts service shapes into minimal OpenAPI 3 documents,
// one per service found in the model.
package openapi

import (
	"context"
	"fmt"
	"sort"

	"github.com/goccy/go-json"

	"github.com/astridej/smithy4s/internal/codegen"
	"github.com/astridej/smithy4s/internal/model"
)

// Converter implements codegen.OpenAPIConverter.
type Converter struct{}

// New returns an OpenAPI converter.
func New() Converter {
	return Converter{}
}

// Convert produces one document per service shape whose namespace is
// allowed (a nil allowed set admits every namespace). Services are visited
// in sorted shape-id order so output is deterministic.
func (Converter) Convert(ctx context.Context, m *model.Model, allowed codegen.NamespaceSet) ([]codegen.OpenAPIDocument, error) {
	var docs []codegen.OpenAPIDocument
	for _, id := range m.Services() {
		if allowed != nil && !allowed.Contains(id.Namespace) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		contents, err := serviceDocument(m, id)
		if err != nil {
			return nil, fmt.Errorf("converting service %s: %w", id, err)
		}
		docs = append(docs, codegen.OpenAPIDocument{
			Namespace: id.Namespace,
			Service:   id.Name,
			Contents:  contents,
		})
	}
	return docs, nil
}

func serviceDocument(m *model.Model, id model.ShapeID) ([]byte, error) {
	service := m.Shapes[id]

	paths := make(map[string]any, len(service.Operations))
	operations := make([]string, 0, len(service.Operations))
	for _, op := range service.Operations {
		opID, err := model.ParseShapeID(op.Target)
		if err != nil {
			return nil, err
		}
		operations = append(operations, opID.Name)
	}
	sort.Strings(operations)
	for _, name := range operations {
		paths["/"+name] = map[string]any{
			"post": map[string]any{
				"operationId": name,
				"responses": map[string]any{
					"200": map[string]any{"description": name + " response"},
				},
			},
		}
	}

	doc := map[string]any{
		"openapi": "3.0.2",
		"info": map[string]any{
			"title":   id.Name,
			"version": serviceVersion(service),
		},
		"paths": paths,
	}
	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func serviceVersion(service *model.Shape) string {
	if v, ok := service.Traits["smithy.api#version"].(string); ok && v != "" {
		return v
	}
	return "1.0"
}
