package codegen

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// CodegenEntry is one artifact destined for the filesystem: either content
// materialized in memory or a pointer to an externally-owned file to copy.
// The destination path is the entry's identity for downstream deduplication.
//
// The interface is sealed; the two variants are built with FromMemory and
// FromDisk.
type CodegenEntry interface {
	// Destination is the path the entry will be written to.
	Destination() string

	commit() error
}

// MemoryEntry is content fully materialized in memory.
type MemoryEntry struct {
	Path    string
	Content []byte
}

// FromMemory builds an entry whose content is owned by this run.
func FromMemory(path string, content []byte) CodegenEntry {
	return &MemoryEntry{Path: path, Content: content}
}

func (e *MemoryEntry) Destination() string { return e.Path }

func (e *MemoryEntry) commit() error {
	if err := os.MkdirAll(filepath.Dir(e.Path), 0755); err != nil {
		return err
	}
	return os.WriteFile(e.Path, e.Content, 0644)
}

// DiskEntry references a file owned externally, copied on commit.
type DiskEntry struct {
	Path   string
	Source string
}

// FromDisk builds an entry that copies an already-on-disk file to its
// destination.
func FromDisk(path, source string) CodegenEntry {
	return &DiskEntry{Path: path, Source: source}
}

func (e *DiskEntry) Destination() string { return e.Path }

func (e *DiskEntry) commit() error {
	if err := os.MkdirAll(filepath.Dir(e.Path), 0755); err != nil {
		return err
	}
	src, err := os.Open(e.Source)
	if err != nil {
		return fmt.Errorf("opening source %s: %w", e.Source, err)
	}
	defer src.Close()
	dst, err := os.Create(e.Path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return err
	}
	return dst.Close()
}
