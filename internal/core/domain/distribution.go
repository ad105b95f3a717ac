package domain

import "go.trai.ch/zerr"

// Distribution selects what an executor produces for a project.
type Distribution int

const (
	// DistributionInternal compiles ESM with source maps into the project's own dist directory.
	DistributionInternal Distribution = iota + 1
	// DistributionExternal packages the project from the build executor.
	DistributionExternal
	// DistributionLayer builds only the project's layer for a surrounding invocation.
	DistributionLayer
	// DistributionLib packages a library with vendored unpublished dependencies.
	DistributionLib
	// DistributionNPM packages a library for a registry and requires a typed exports map.
	DistributionNPM
	// DistributionApp packages an application.
	DistributionApp
)

var distributionNames = map[Distribution]string{
	DistributionInternal: "internal",
	DistributionExternal: "external",
	DistributionLayer:    "layer",
	DistributionLib:      "lib",
	DistributionNPM:      "npm",
	DistributionApp:      "app",
}

// Distributions returns every distribution.
func Distributions() []Distribution {
	return []Distribution{
		DistributionInternal,
		DistributionExternal,
		DistributionLayer,
		DistributionLib,
		DistributionNPM,
		DistributionApp,
	}
}

// ParseDistribution resolves a distribution by name.
func ParseDistribution(name string) (Distribution, error) {
	for d, n := range distributionNames {
		if n == name {
			return d, nil
		}
	}
	return 0, zerr.With(ErrInvalidDistribution, "distribution", name)
}

// String returns the distribution name.
func (d Distribution) String() string {
	if n, ok := distributionNames[d]; ok {
		return n
	}
	return "unknown"
}

// Packages reports whether the distribution runs the packaging pipeline.
func (d Distribution) Packages() bool {
	switch d {
	case DistributionExternal, DistributionLib, DistributionNPM, DistributionApp:
		return true
	default:
		return false
	}
}
