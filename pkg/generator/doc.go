// Package generator renders catalog templates and writes the results to disk.
//
// # Features
//
//   - Template rendering with case helpers and a parse cache
//   - Operations that validate before they execute
//   - Sequential execution (Execute) and fan-out/join execution
//     (ExecuteParallel) with fail-fast cancellation
//   - Structural checks on rendered JSON and YAML files
//
// # Parallel execution
//
// ExecuteParallel validates every operation, runs all of them concurrently,
// and waits for the whole set:
//
//	err := generator.ExecuteParallel(ctx, ops, generator.ExecuteOptions{
//	    Report: func(op generator.Operation) { printer.Created(op.Description()) },
//	})
//
// The first failing operation cancels the rest. Files that were already
// written stay on disk; there is no rollback. Report runs once per operation,
// in submission order, only after every operation succeeded.
package generator
