package model

import (
	"archive/zip"
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goccy/go-json"
)

// LoadOptions configures model assembly.
//
// Specs are JSON AST documents on disk. Dependencies are
// group:artifact:version coordinates resolved against Repositories
// (directories laid out like a local artifact repository). LocalArchives
// are zip archives referenced directly by path. Transformers are applied
// in order after all documents have been merged.
type LoadOptions struct {
	Specs          []string
	Dependencies   []string
	Repositories   []string
	LocalArchives  []string
	Transformers   []string
	DiscoverModels bool
}

// manifestPath is where model archives list their embedded documents.
const manifestPath = "META-INF/smithy/manifest"

// Load assembles a model from spec files and dependency archives, then
// applies the named transformers.
func Load(opts LoadOptions) (*Model, error) {
	m := New()

	for _, spec := range opts.Specs {
		data, err := os.ReadFile(spec)
		if err != nil {
			return nil, fmt.Errorf("reading spec %s: %w", spec, err)
		}
		if err := m.mergeDocument(data, spec); err != nil {
			return nil, err
		}
	}

	archives := append([]string(nil), opts.LocalArchives...)
	for _, dep := range opts.Dependencies {
		path, err := resolveDependency(dep, opts.Repositories)
		if err != nil {
			return nil, err
		}
		archives = append(archives, path)
	}
	if opts.DiscoverModels {
		discovered, err := discoverArchives(opts.Repositories)
		if err != nil {
			return nil, err
		}
		archives = append(archives, discovered...)
	}

	seen := make(map[string]struct{}, len(archives))
	for _, archive := range archives {
		if _, dup := seen[archive]; dup {
			continue
		}
		seen[archive] = struct{}{}
		if err := m.loadArchive(archive); err != nil {
			return nil, err
		}
	}

	for _, name := range opts.Transformers {
		transform, err := TransformerByName(name)
		if err != nil {
			return nil, err
		}
		if err := transform(m); err != nil {
			return nil, fmt.Errorf("applying transformer %s: %w", name, err)
		}
	}

	return m, nil
}

// mergeDocument merges one JSON AST document into the model. Shape ids must
// be unique across all merged documents; metadata lists concatenate and
// scalar metadata is last-writer-wins.
func (m *Model) mergeDocument(data []byte, source string) error {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing model document %s: %w", source, err)
	}

	for raw, shape := range doc.Shapes {
		id, err := ParseShapeID(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", source, err)
		}
		if _, exists := m.Shapes[id]; exists {
			return fmt.Errorf("%s: shape %s already defined by another document", source, id)
		}
		m.Shapes[id] = shape
	}

	for key, value := range doc.Metadata {
		existing, ok := m.Metadata[key]
		if !ok {
			m.Metadata[key] = value
			continue
		}
		prev, prevList := existing.([]any)
		next, nextList := value.([]any)
		if prevList && nextList {
			m.Metadata[key] = append(prev, next...)
		} else {
			m.Metadata[key] = value
		}
	}

	return nil
}

// loadArchive merges every model document listed in the archive's manifest.
// Archives without a manifest carry no models and are skipped.
func (m *Model) loadArchive(path string) error {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return fmt.Errorf("opening archive %s: %w", path, err)
	}
	defer reader.Close()

	manifest, err := reader.Open(manifestPath)
	if err != nil {
		return nil
	}
	defer manifest.Close()

	scanner := bufio.NewScanner(manifest)
	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		if name == "" || strings.HasPrefix(name, "#") {
			continue
		}
		entry := "META-INF/smithy/" + name
		data, err := readArchiveFile(&reader.Reader, entry)
		if err != nil {
			return fmt.Errorf("archive %s: %w", path, err)
		}
		if err := m.mergeDocument(data, path+"!"+entry); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading manifest of %s: %w", path, err)
	}
	return nil
}

func readArchiveFile(r *zip.Reader, name string) ([]byte, error) {
	f, err := r.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// resolveDependency maps a group:artifact:version coordinate to an archive
// path under one of the repository directories.
func resolveDependency(coordinate string, repositories []string) (string, error) {
	parts := strings.Split(coordinate, ":")
	if len(parts) != 3 {
		return "", fmt.Errorf("invalid dependency %q (want group:artifact:version)", coordinate)
	}
	group, artifact, version := parts[0], parts[1], parts[2]
	rel := filepath.Join(
		filepath.Join(strings.Split(group, ".")...),
		artifact, version,
		fmt.Sprintf("%s-%s.zip", artifact, version),
	)
	for _, repo := range repositories {
		candidate := filepath.Join(repo, rel)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("dependency %s not found in repositories %v", coordinate, repositories)
}

// discoverArchives walks the repository directories and returns every zip
// archive found, sorted so discovery order never depends on the walk.
func discoverArchives(repositories []string) ([]string, error) {
	var found []string
	for _, repo := range repositories {
		err := filepath.WalkDir(repo, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(d.Name(), ".zip") {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("discovering models in %s: %w", repo, err)
		}
	}
	sort.Strings(found)
	return found, nil
}
