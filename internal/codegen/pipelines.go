package codegen

import (
	"context"

	"github.com/astridej/smithy4s/internal/model"
)

// RenderedUnit is one per-namespace rendering output. Its namespace
// segments become the destination directory path and its name plus the
// renderer's extension become the file name.
type RenderedUnit struct {
	Namespace string
	Name      string
	Content   string
}

// Renderer is the external IR-lowering + rendering pipeline. This core
// never renders target-language syntax itself; it only coordinates calls
// and places the results.
type Renderer interface {
	// Extension is the file extension of rendered units, without the dot.
	Extension() string

	// Render lowers one namespace of the model and renders its units.
	// Errors are propagated unmodified: a partially-rendered namespace is
	// not a safe artifact to emit.
	Render(ctx context.Context, m *model.Model, namespace string) ([]RenderedUnit, error)
}

// OpenAPIDocument is one API-description output, named
// <namespace>.<service>.json in the resource output.
type OpenAPIDocument struct {
	Namespace string
	Service   string
	Contents  []byte
}

// OpenAPIConverter is the external API-description pipeline, invoked once
// over the whole model restricted to the allowed namespaces.
type OpenAPIConverter interface {
	Convert(ctx context.Context, m *model.Model, allowed NamespaceSet) ([]OpenAPIDocument, error)
}

// CompiledDocument is one binary-schema output at a compiler-chosen path
// relative to the resource output directory.
type CompiledDocument struct {
	Path     string
	Contents []byte
}

// SchemaCompiler is the external binary-schema pipeline, invoked once over
// the whole model.
type SchemaCompiler interface {
	Compile(ctx context.Context, m *model.Model) ([]CompiledDocument, error)
}

// Pipelines bundles the external collaborators of one generation run. A
// nil collaborator behaves like its toggle being off.
type Pipelines struct {
	Renderer Renderer
	OpenAPI  OpenAPIConverter
	Schema   SchemaCompiler
}
