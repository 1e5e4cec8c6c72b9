package codegen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/astridej/smithy4s/internal/model"
)

// DuplicateNamespaceError reports a namespace claimed by more than one
// generation manifest. It is fatal: proceeding would emit the same types in
// two compiled artifacts and break symbol resolution downstream.
type DuplicateNamespaceError struct {
	Namespace string
	Artifacts []string
}

func (e *DuplicateNamespaceError) Error() string {
	return fmt.Sprintf(
		"namespace %s is claimed as generated by multiple artifacts (%s); fix the dependency set",
		e.Namespace, strings.Join(e.Artifacts, ", "),
	)
}

// ScanManifests flattens the generation manifests recorded in the model's
// metadata into the set of namespaces that must be skipped because an
// upstream artifact already generated them.
//
// It runs once per invocation, strictly before any rendering starts, and
// fails with a DuplicateNamespaceError if two manifests claim the same
// namespace.
func ScanManifests(m *model.Model) (NamespaceSet, error) {
	manifests, err := model.ManifestsFromModel(m)
	if err != nil {
		return nil, err
	}

	claimants := make(map[string][]string)
	for _, manifest := range manifests {
		for _, ns := range manifest.Namespaces {
			claimants[ns] = append(claimants[ns], manifest.Artifact)
		}
	}

	var duplicated []string
	generated := NewNamespaceSet()
	for ns, artifacts := range claimants {
		if len(artifacts) > 1 {
			duplicated = append(duplicated, ns)
			continue
		}
		generated[ns] = struct{}{}
	}
	if len(duplicated) > 0 {
		sort.Strings(duplicated)
		ns := duplicated[0]
		artifacts := claimants[ns]
		sort.Strings(artifacts)
		return nil, &DuplicateNamespaceError{Namespace: ns, Artifacts: artifacts}
	}
	return generated, nil
}
