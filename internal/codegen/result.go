package codegen

// CodegenResult is the unified output of one generation run: two ordered
// entry sequences, constructed once and consumed exactly once by Write.
type CodegenResult struct {
	Sources   []CodegenEntry
	Resources []CodegenEntry
}

// Unify aggregates the per-pipeline entry lists into one result. It
// performs no deduplication: callers must not configure overlapping
// pipelines that target the same destination path.
func Unify(sources, resources []CodegenEntry) *CodegenResult {
	return &CodegenResult{Sources: sources, Resources: resources}
}
