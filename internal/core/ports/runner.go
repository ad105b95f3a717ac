package ports

import (
	"context"
	"io"

	"go.trai.ch/strata/internal/core/domain"
)

// Runner defines the interface for running external processes.
//
//go:generate mockgen -source=runner.go -destination=mocks/mock_runner.go -package=mocks
type Runner interface {
	// Run executes cmd and waits for it to exit. Combined output is written to output
	// and attached to the returned error on failure.
	Run(ctx context.Context, cmd domain.Command, output io.Writer) error
}

type verboseKey struct{}

// ContextWithVerbose returns a context in which runners stream process output to the logger.
func ContextWithVerbose(ctx context.Context, verbose bool) context.Context {
	return context.WithValue(ctx, verboseKey{}, verbose)
}

// VerboseFromContext reports whether process output should be streamed to the logger.
func VerboseFromContext(ctx context.Context) bool {
	v, _ := ctx.Value(verboseKey{}).(bool)
	return v
}
