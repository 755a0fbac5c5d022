package generator

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sourcegraph/conc/pool"
)

// ExecuteOptions configures execution behavior
type ExecuteOptions struct {
	DryRun  bool
	Force   bool
	Workers int       // Max concurrent operations for ExecuteParallel (0 = one per operation)
	Writer  io.Writer // Where default reports go (defaults to os.Stdout)

	// Report is called once per operation, in submission order, after the
	// whole set succeeded. When nil, a "✓ <description>" line is written to
	// Writer.
	Report func(op Operation)
}

func (opts *ExecuteOptions) report(op Operation) {
	if opts.Report != nil {
		opts.Report(op)
		return
	}
	if opts.DryRun {
		fmt.Fprintf(opts.Writer, "✓ [DRY RUN] %s\n", op.Description())
		return
	}
	fmt.Fprintf(opts.Writer, "✓ %s\n", op.Description())
}

func validateAll(ctx context.Context, ops []Operation, force bool) error {
	for _, op := range ops {
		if err := op.Validate(ctx, force); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
	}
	return nil
}

// Execute runs operations one after another, validating all of them first.
func Execute(ctx context.Context, ops []Operation, opts ExecuteOptions) error {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}

	if !opts.DryRun {
		if err := validateAll(ctx, ops, opts.Force); err != nil {
			return err
		}
	}

	for _, op := range ops {
		if !opts.DryRun {
			if err := op.Execute(ctx); err != nil {
				return fmt.Errorf("execution failed: %w", err)
			}
		}
		opts.report(op)
	}

	return nil
}

// ExecuteParallel validates every operation, then runs all of them
// concurrently and waits for the whole set.
//
// The first failure cancels the context handed to the remaining operations
// and is returned once every started operation has finished. Nothing is
// rolled back. Reports are emitted in submission order after a successful
// join, never in completion order.
func ExecuteParallel(ctx context.Context, ops []Operation, opts ExecuteOptions) error {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}

	if !opts.DryRun {
		if err := validateAll(ctx, ops, opts.Force); err != nil {
			return err
		}

		p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
		if opts.Workers > 0 {
			p = p.WithMaxGoroutines(opts.Workers)
		}
		for _, op := range ops {
			p.Go(func(ctx context.Context) error {
				if err := op.Execute(ctx); err != nil {
					return fmt.Errorf("%s: %w", op.Description(), err)
				}
				return nil
			})
		}
		if err := p.Wait(); err != nil {
			return fmt.Errorf("execution failed: %w", err)
		}
	}

	for _, op := range ops {
		opts.report(op)
	}
	return nil
}
