package codegen

import (
	"sort"

	"github.com/astridej/smithy4s/internal/model"
)

// Args is the configuration record for one generation run.
type Args struct {
	// Model inputs.
	Specs          []string // JSON AST documents on disk
	Dependencies   []string // group:artifact:version coordinates
	Repositories   []string // local artifact repository directories
	LocalArchives  []string // model archives referenced directly by path
	Transformers   []string // named model transformers, applied in order
	DiscoverModels bool     // also load every archive found in the repositories

	// Namespace filters. A nil Allowed means open mode (everything except
	// reserved and library-owned namespaces); an empty non-nil Allowed
	// means generate nothing.
	Allowed  []string
	Excluded []string

	// Pipeline toggles.
	SkipSource    bool
	SkipResource  bool
	SkipOpenAPI   bool
	SkipSchemaBin bool

	// Output locations.
	Output         string // generated sources
	ResourceOutput string // generated resources

	// Artifact is the name recorded in this run's generation manifest.
	Artifact string
}

func (a Args) loadOptions() model.LoadOptions {
	return model.LoadOptions{
		Specs:          a.Specs,
		Dependencies:   a.Dependencies,
		Repositories:   a.Repositories,
		LocalArchives:  a.LocalArchives,
		Transformers:   a.Transformers,
		DiscoverModels: a.DiscoverModels,
	}
}

// NamespaceSet is a set of namespace strings. A nil set carries "absent"
// semantics for optional filters.
type NamespaceSet map[string]struct{}

// NewNamespaceSet builds a set from the given namespaces.
func NewNamespaceSet(namespaces ...string) NamespaceSet {
	s := make(NamespaceSet, len(namespaces))
	for _, ns := range namespaces {
		s[ns] = struct{}{}
	}
	return s
}

// Contains reports set membership; a nil set contains nothing.
func (s NamespaceSet) Contains(ns string) bool {
	_, ok := s[ns]
	return ok
}

// Sorted returns the namespaces in lexicographic order.
func (s NamespaceSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for ns := range s {
		out = append(out, ns)
	}
	sort.Strings(out)
	return out
}

// optionalSet preserves the nil/absent distinction when converting the
// slice form used by Args into a set.
func optionalSet(namespaces []string) NamespaceSet {
	if namespaces == nil {
		return nil
	}
	return NewNamespaceSet(namespaces...)
}
