// Package schemabin compiles a model into compact binary schema documents,
// one per namespace. The format is a magic header followed by
// length-prefixed shape records, suitable for embedding in artifacts that
// load schemas at runtime without a JSON parser.
package schemabin

import (
	"bytes"
	"context"
	"encoding/binary"
	"path"
	"sort"
	"strings"

	"github.com/astridej/smithy4s/internal/codegen"
	"github.com/astridej/smithy4s/internal/model"
)

// Format identification for readers.
var magic = []byte("S4SB")

const formatVersion = byte(1)

// Compiler implements codegen.SchemaCompiler.
type Compiler struct{}

// New returns a binary-schema compiler.
func New() Compiler {
	return Compiler{}
}

// Compile emits one document per namespace at
// <namespace segments>/schema.bin, namespaces and shapes in sorted order so
// the same model always compiles to identical bytes.
func (Compiler) Compile(ctx context.Context, m *model.Model) ([]codegen.CompiledDocument, error) {
	var docs []codegen.CompiledDocument
	for _, ns := range m.Namespaces() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		segments := append(strings.Split(ns, "."), "schema.bin")
		docs = append(docs, codegen.CompiledDocument{
			Path:     path.Join(segments...),
			Contents: encodeNamespace(m.NamespaceShapes(ns)),
		})
	}
	return docs, nil
}

func encodeNamespace(shapes map[string]*model.Shape) []byte {
	ids := make([]string, 0, len(shapes))
	for id := range shapes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var buf bytes.Buffer
	buf.Write(magic)
	buf.WriteByte(formatVersion)

	var count [4]byte
	binary.BigEndian.PutUint32(count[:], uint32(len(ids)))
	buf.Write(count[:])

	for _, id := range ids {
		writeString(&buf, id)
		writeString(&buf, shapes[id].Type)
	}
	return buf.Bytes()
}

func writeString(buf *bytes.Buffer, s string) {
	buf.Write(binary.AppendUvarint(nil, uint64(len(s))))
	buf.WriteString(s)
}
