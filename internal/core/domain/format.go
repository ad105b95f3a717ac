package domain

import "go.trai.ch/zerr"

// Format is a JavaScript module format produced for every layer.
type Format int

const (
	// FormatESM is the ECMAScript module output.
	FormatESM Format = iota
	// FormatCJS is the CommonJS output.
	FormatCJS
)

// Formats returns every format in build order.
func Formats() []Format {
	return []Format{FormatESM, FormatCJS}
}

// String returns the short name of the format.
func (f Format) String() string {
	if f == FormatCJS {
		return "cjs"
	}
	return "esm"
}

// ModuleType returns the transpiler module type for the format.
func (f Format) ModuleType() string {
	if f == FormatCJS {
		return "commonjs"
	}
	return "es6"
}

// PackageType returns the package.json "type" declared by the format's directory.
func (f Format) PackageType() string {
	if f == FormatCJS {
		return "commonjs"
	}
	return "module"
}

// Other returns the sibling format.
func (f Format) Other() Format {
	if f == FormatCJS {
		return FormatESM
	}
	return FormatCJS
}

// OutputLayout names the per-format directories of a layer.
type OutputLayout struct {
	Name   string
	ESMDir string
	CJSDir string
}

var (
	// LayoutESM places outputs in esm/ and cjs/.
	LayoutESM = OutputLayout{Name: "esm", ESMDir: "esm", CJSDir: "cjs"}
	// LayoutDist places outputs in dist/ and dist-cjs/.
	LayoutDist = OutputLayout{Name: "dist", ESMDir: "dist", CJSDir: "dist-cjs"}
)

// ParseOutputLayout resolves a layout by name. An empty name selects LayoutESM.
func ParseOutputLayout(name string) (OutputLayout, error) {
	switch name {
	case "", LayoutESM.Name:
		return LayoutESM, nil
	case LayoutDist.Name:
		return LayoutDist, nil
	default:
		return OutputLayout{}, zerr.With(ErrInvalidOutputLayout, "layout", name)
	}
}

// Dir returns the directory name used for the given format.
func (l OutputLayout) Dir(f Format) string {
	if f == FormatCJS {
		return l.CJSDir
	}
	return l.ESMDir
}

// IsZero reports whether the layout is unset.
func (l OutputLayout) IsZero() bool {
	return l.ESMDir == "" && l.CJSDir == ""
}
