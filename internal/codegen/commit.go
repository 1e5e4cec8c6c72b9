package codegen

import (
	"fmt"
)

// Write commits every entry of the result to its destination, creating
// intermediate directories and overwriting existing files, and returns the
// set of destination paths written. Writes are idempotent: committing the
// same result twice yields the same final file contents.
//
// Commit is all-or-nothing for a given invocation: the first write failure
// aborts with no partial-success bookkeeping. Concurrent invocations
// against overlapping output directories must be serialized by the caller.
func Write(result *CodegenResult) (map[string]struct{}, error) {
	written := make(map[string]struct{}, len(result.Sources)+len(result.Resources))
	for _, entries := range [][]CodegenEntry{result.Sources, result.Resources} {
		for _, entry := range entries {
			if err := entry.commit(); err != nil {
				return nil, fmt.Errorf("writing %s: %w", entry.Destination(), err)
			}
			written[entry.Destination()] = struct{}{}
		}
	}
	return written, nil
}
