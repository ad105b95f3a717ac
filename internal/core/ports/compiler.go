package ports

import (
	"context"

	"go.trai.ch/strata/internal/core/domain"
)

// TypeChecker defines the interface for the external type checker.
//
//go:generate mockgen -source=compiler.go -destination=mocks/mock_compiler.go -package=mocks
type TypeChecker interface {
	// Check type-checks the program rooted at the request's entry and emits declarations only.
	// A non-nil error means the checker could not run; diagnostics are reported in the result.
	Check(ctx context.Context, req domain.TypecheckRequest) (domain.TypecheckResult, error)
}

// Transpiler defines the interface for the external fast transpiler.
type Transpiler interface {
	// Transpile compiles the request's source directory into its output directory.
	// Failures carry the captured process output.
	Transpile(ctx context.Context, req domain.TranspileRequest) error
}
