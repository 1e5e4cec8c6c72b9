// Package model holds the in-memory representation of a resolved Smithy
// model: a shape index plus merged document metadata.
//
// Models are assembled by Load from JSON AST documents (spec files and
// dependency archives). The Smithy IDL itself is never parsed here; only
// the JSON AST serialization is understood.
package model

import (
	"fmt"
	"sort"
	"strings"
)

// ShapeID identifies a shape as namespace#name.
type ShapeID struct {
	Namespace string
	Name      string
}

// ParseShapeID parses the textual namespace#name form.
func ParseShapeID(s string) (ShapeID, error) {
	ns, name, ok := strings.Cut(s, "#")
	if !ok || ns == "" || name == "" {
		return ShapeID{}, fmt.Errorf("invalid shape id %q (want namespace#name)", s)
	}
	return ShapeID{Namespace: ns, Name: name}, nil
}

func (id ShapeID) String() string {
	return id.Namespace + "#" + id.Name
}

// Ref is a reference to another shape.
type Ref struct {
	Target string `json:"target"`
}

// Member is a named member of an aggregate shape.
type Member struct {
	Target string         `json:"target"`
	Traits map[string]any `json:"traits,omitempty"`
}

// Shape is the subset of the Smithy JSON AST shape representation that the
// generation pipelines need: its type, member targets, trait values and
// structural references (mixins, service operations, operation IO).
type Shape struct {
	Type       string             `json:"type"`
	Members    map[string]*Member `json:"members,omitempty"`
	Mixins     []Ref              `json:"mixins,omitempty"`
	Operations []Ref              `json:"operations,omitempty"`
	Input      *Ref               `json:"input,omitempty"`
	Output     *Ref               `json:"output,omitempty"`
	Traits     map[string]any     `json:"traits,omitempty"`
}

// Model is the full set of loaded shapes. It is owned by the caller and
// read-only to the codegen core.
type Model struct {
	Shapes   map[ShapeID]*Shape
	Metadata map[string]any
}

// New returns an empty model.
func New() *Model {
	return &Model{
		Shapes:   make(map[ShapeID]*Shape),
		Metadata: make(map[string]any),
	}
}

// Namespaces returns the sorted set of distinct namespaces contributed by
// the model's shapes.
func (m *Model) Namespaces() []string {
	seen := make(map[string]struct{})
	for id := range m.Shapes {
		seen[id.Namespace] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for ns := range seen {
		out = append(out, ns)
	}
	sort.Strings(out)
	return out
}

// NamespaceShapes returns the shapes living in one namespace, keyed by
// their full shape id.
func (m *Model) NamespaceShapes(namespace string) map[string]*Shape {
	out := make(map[string]*Shape)
	for id, shape := range m.Shapes {
		if id.Namespace == namespace {
			out[id.String()] = shape
		}
	}
	return out
}

// Services returns the ids of all service shapes, sorted for deterministic
// iteration.
func (m *Model) Services() []ShapeID {
	var out []ShapeID
	for id, shape := range m.Shapes {
		if shape.Type == "service" {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

// Document is the JSON AST document form of a model, used for merging
// loaded files and for pretty-printed dumps.
type Document struct {
	Smithy   string            `json:"smithy"`
	Metadata map[string]any    `json:"metadata,omitempty"`
	Shapes   map[string]*Shape `json:"shapes,omitempty"`
}

// Document renders the model back into a single JSON AST document.
func (m *Model) Document() *Document {
	doc := &Document{Smithy: smithyVersion, Shapes: make(map[string]*Shape, len(m.Shapes))}
	if len(m.Metadata) > 0 {
		doc.Metadata = m.Metadata
	}
	for id, shape := range m.Shapes {
		doc.Shapes[id.String()] = shape
	}
	return doc
}

const smithyVersion = "2.0"
