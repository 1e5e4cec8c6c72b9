// Package extrender bridges to an external renderer executable. The
// orchestrator never renders target-language syntax itself; the configured
// command receives one namespace of the model as JSON on stdin and answers
// with the rendered units as JSON on stdout.
package extrender

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/goccy/go-json"

	"github.com/astridej/smithy4s/internal/codegen"
	"github.com/astridej/smithy4s/internal/model"
)

// Renderer implements codegen.Renderer by invoking an external command
// once per namespace.
type Renderer struct {
	command   string
	args      []string
	extension string
}

// New builds a renderer around the given command. The extension names the
// file extension (without dot) of the units the command renders.
func New(command, extension string, args ...string) *Renderer {
	return &Renderer{command: command, args: args, extension: extension}
}

// Extension returns the configured source file extension.
func (r *Renderer) Extension() string {
	return r.extension
}

// request is the JSON payload written to the renderer's stdin.
type request struct {
	Namespace string                  `json:"namespace"`
	Shapes    map[string]*model.Shape `json:"shapes"`
}

// unit is one rendered output decoded from the renderer's stdout.
type unit struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// Render invokes the external command for one namespace. Renderer failures
// are propagated with the command's stderr attached; they are never
// downgraded, since a partially-rendered namespace is not a safe artifact.
func (r *Renderer) Render(ctx context.Context, m *model.Model, namespace string) ([]codegen.RenderedUnit, error) {
	payload, err := json.Marshal(request{
		Namespace: namespace,
		Shapes:    m.NamespaceShapes(namespace),
	})
	if err != nil {
		return nil, fmt.Errorf("encoding render request for %s: %w", namespace, err)
	}

	cmd := exec.CommandContext(ctx, r.command, r.args...)
	cmd.Stdin = bytes.NewReader(payload)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, fmt.Errorf("renderer %s failed for %s: %w: %s", r.command, namespace, err, msg)
		}
		return nil, fmt.Errorf("renderer %s failed for %s: %w", r.command, namespace, err)
	}

	var units []unit
	if err := json.Unmarshal(stdout.Bytes(), &units); err != nil {
		return nil, fmt.Errorf("decoding renderer output for %s: %w", namespace, err)
	}

	rendered := make([]codegen.RenderedUnit, 0, len(units))
	for _, u := range units {
		rendered = append(rendered, codegen.RenderedUnit{
			Namespace: namespace,
			Name:      u.Name,
			Content:   u.Content,
		})
	}
	return rendered, nil
}
