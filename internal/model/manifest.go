package model

import (
	"fmt"

	"github.com/goccy/go-json"
)

// ManifestMetadataKey is the metadata key under which generation manifests
// are recorded. Every dependency artifact that previously ran generation
// contributes one entry.
const ManifestMetadataKey = "generated-namespaces"

// GenerationManifest attributes a list of already-generated namespaces to
// one upstream artifact.
type GenerationManifest struct {
	Artifact   string   `json:"artifact"`
	Namespaces []string `json:"namespaces"`
}

// ManifestsFromModel extracts all generation manifests recorded in the
// model's metadata. A missing key means no dependency ran generation.
func ManifestsFromModel(m *Model) ([]GenerationManifest, error) {
	raw, ok := m.Metadata[ManifestMetadataKey]
	if !ok {
		return nil, nil
	}
	// Metadata arrives as decoded JSON (or as typed entries when the
	// manifest document was built in-process); round-trip through JSON to
	// normalize either form.
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("malformed %s metadata: %w", ManifestMetadataKey, err)
	}
	var manifests []GenerationManifest
	if err := json.Unmarshal(data, &manifests); err != nil {
		return nil, fmt.Errorf("malformed %s metadata: %w", ManifestMetadataKey, err)
	}
	return manifests, nil
}

// ManifestDocument renders a model document whose only content is the given
// generation manifests. It is written next to generated sources so that
// downstream builds loading this artifact skip the namespaces it covers.
func ManifestDocument(manifests []GenerationManifest) ([]byte, error) {
	if manifests == nil {
		manifests = []GenerationManifest{}
	}
	doc := Document{
		Smithy:   smithyVersion,
		Metadata: map[string]any{ManifestMetadataKey: manifests},
	}
	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("encoding generation manifest: %w", err)
	}
	return append(data, '\n'), nil
}
