package codegen

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astridej/smithy4s/internal/model"
)

// spyRenderer records invocations and renders one unit per namespace.
type spyRenderer struct {
	mu    sync.Mutex
	calls []string
	fail  error
}

func (s *spyRenderer) Extension() string { return "scala" }

func (s *spyRenderer) Render(ctx context.Context, m *model.Model, namespace string) ([]RenderedUnit, error) {
	s.mu.Lock()
	s.calls = append(s.calls, namespace)
	s.mu.Unlock()
	if s.fail != nil {
		return nil, s.fail
	}
	return []RenderedUnit{
		{Namespace: namespace, Name: "Package", Content: "package " + namespace},
	}, nil
}

type fakeConverter struct {
	docs []OpenAPIDocument
}

func (f fakeConverter) Convert(ctx context.Context, m *model.Model, allowed NamespaceSet) ([]OpenAPIDocument, error) {
	return f.docs, nil
}

type fakeCompiler struct {
	docs []CompiledDocument
}

func (f fakeCompiler) Compile(ctx context.Context, m *model.Model) ([]CompiledDocument, error) {
	return f.docs, nil
}

func destinations(entries []CodegenEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Destination())
	}
	return out
}

func TestFanOut_SourceDestinations(t *testing.T) {
	m := modelWithNamespaces("com.example.foo")
	args := Args{Specs: []string{"foo.json"}, Output: "out", ResourceOutput: "res"}

	sources, _, err := fanOut(context.Background(), m, NewNamespaceSet("com.example.foo"), args, Pipelines{Renderer: &spyRenderer{}})
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join("out", "com", "example", "foo", "Package.scala"),
	}, destinations(sources))
}

func TestFanOut_DeterministicResourceOrder(t *testing.T) {
	m := modelWithNamespaces("b.ns", "a.ns", "c.ns")
	eligible := NewNamespaceSet("b.ns", "a.ns", "c.ns")
	args := Args{Specs: []string{"specs.json"}, Output: "out", ResourceOutput: "res"}
	pipelines := Pipelines{
		Renderer: &spyRenderer{},
		OpenAPI: fakeConverter{docs: []OpenAPIDocument{
			{Namespace: "a.ns", Service: "First", Contents: []byte("{}")},
			{Namespace: "b.ns", Service: "Second", Contents: []byte("{}")},
		}},
		Schema: fakeCompiler{docs: []CompiledDocument{
			{Path: "a/ns/schema.bin", Contents: []byte{1}},
		}},
	}

	sources1, resources1, err := fanOut(context.Background(), m, eligible, args, pipelines)
	require.NoError(t, err)
	sources2, resources2, err := fanOut(context.Background(), m, eligible, args, pipelines)
	require.NoError(t, err)

	assert.Equal(t, destinations(sources1), destinations(sources2))
	assert.Equal(t, destinations(resources1), destinations(resources2))

	// Manifest entries first, then API descriptions, then binary schemas.
	assert.Equal(t, []string{
		filepath.Join("res", "META-INF", "smithy", "manifest"),
		filepath.Join("res", "META-INF", "smithy", "generated-metadata.json"),
		filepath.Join("res", "a.ns.First.json"),
		filepath.Join("res", "b.ns.Second.json"),
		filepath.Join("res", "a", "ns", "schema.bin"),
	}, destinations(resources1))

	// Sources follow lexicographic namespace order.
	assert.Equal(t, []string{
		filepath.Join("out", "a", "ns", "Package.scala"),
		filepath.Join("out", "b", "ns", "Package.scala"),
		filepath.Join("out", "c", "ns", "Package.scala"),
	}, destinations(sources1))
}

func TestFanOut_PlaceholdersWhenNothingToGenerate(t *testing.T) {
	// No specs, no eligible namespaces, source generation enabled and
	// resource generation not skipped: the two near-empty manifest files
	// are still produced for downstream tooling.
	args := Args{ResourceOutput: "res"}

	sources, resources, err := fanOut(context.Background(), model.New(), NewNamespaceSet(), args, Pipelines{Renderer: &spyRenderer{}})
	require.NoError(t, err)

	assert.Empty(t, sources)
	assert.Equal(t, []string{
		filepath.Join("res", "META-INF", "smithy", "manifest"),
		filepath.Join("res", "META-INF", "smithy", "generated-metadata.json"),
	}, destinations(resources))
}

func TestFanOut_SkipSourceKeepsOnlySideEntries(t *testing.T) {
	m := modelWithNamespaces("com.example")
	args := Args{Specs: []string{"specs.json"}, ResourceOutput: "res", SkipSource: true}
	pipelines := Pipelines{
		OpenAPI: fakeConverter{docs: []OpenAPIDocument{
			{Namespace: "com.example", Service: "Weather", Contents: []byte("{}")},
		}},
	}

	sources, resources, err := fanOut(context.Background(), m, NewNamespaceSet("com.example"), args, pipelines)
	require.NoError(t, err)

	assert.Empty(t, sources)
	// No manifest placeholders: sources are skipped and specs are present.
	assert.Equal(t, []string{
		filepath.Join("res", "com.example.Weather.json"),
	}, destinations(resources))
}

func TestFanOut_SkipResourceDropsManifest(t *testing.T) {
	m := modelWithNamespaces("a")
	args := Args{Specs: []string{"specs.json"}, Output: "out", ResourceOutput: "res", SkipResource: true}

	sources, resources, err := fanOut(context.Background(), m, NewNamespaceSet("a"), args, Pipelines{Renderer: &spyRenderer{}})
	require.NoError(t, err)

	assert.Len(t, sources, 1)
	assert.Empty(t, resources)
}

func TestFanOut_RendererFailurePropagates(t *testing.T) {
	m := modelWithNamespaces("a")
	renderFailure := errors.New("lowering failed")
	args := Args{Specs: []string{"specs.json"}, Output: "out", ResourceOutput: "res"}

	_, _, err := fanOut(context.Background(), m, NewNamespaceSet("a"), args, Pipelines{Renderer: &spyRenderer{fail: renderFailure}})
	require.Error(t, err)
	assert.ErrorIs(t, err, renderFailure)
}

func TestFanOut_MissingRendererIsConfigError(t *testing.T) {
	m := modelWithNamespaces("a")
	args := Args{Specs: []string{"specs.json"}}

	_, _, err := fanOut(context.Background(), m, NewNamespaceSet("a"), args, Pipelines{})
	assert.Error(t, err)
}
