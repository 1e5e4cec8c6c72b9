package codegen

import (
	"strings"

	"github.com/astridej/smithy4s/internal/model"
)

// Namespaces with these prefixes hold built-in system shapes and are never
// eligible for generation in open mode.
var reservedPrefixes = []string{"smithy.", "aws."}

// Namespaces equal to or nested under these are owned by the generator's
// runtime libraries; generating into them would clash with shipped code.
var libraryNamespaces = []string{"smithy4s", "alloy"}

// ResolveNamespaces computes the set of namespaces eligible for generation.
//
// With a non-nil allowed set, eligibility is allowed ∩ model namespaces,
// minus excluded and alreadyGenerated. In open mode (nil allowed) every
// model namespace qualifies except reserved system namespaces, library-owned
// namespaces, excluded and alreadyGenerated. Returns an empty set rather
// than failing when nothing qualifies.
func ResolveNamespaces(m *model.Model, allowed, excluded, alreadyGenerated NamespaceSet) NamespaceSet {
	eligible := NewNamespaceSet()
	for _, ns := range m.Namespaces() {
		if allowed != nil {
			if !allowed.Contains(ns) {
				continue
			}
		} else if reservedNamespace(ns) || libraryNamespace(ns) {
			continue
		}
		if excluded.Contains(ns) || alreadyGenerated.Contains(ns) {
			continue
		}
		eligible[ns] = struct{}{}
	}
	return eligible
}

func reservedNamespace(ns string) bool {
	for _, prefix := range reservedPrefixes {
		if strings.HasPrefix(ns, prefix) {
			return true
		}
	}
	return false
}

func libraryNamespace(ns string) bool {
	for _, owned := range libraryNamespaces {
		if ns == owned || strings.HasPrefix(ns, owned+".") {
			return true
		}
	}
	return false
}
