package domain

import (
	"path/filepath"
	"time"
)

// Layer is the compiled, dual-format output of one project.
type Layer struct {
	Project string
	Dir     string
	Layout  OutputLayout
	Cached  bool
}

// FormatDir returns the directory holding the given format's output.
func (l Layer) FormatDir(f Format) string {
	return filepath.Join(l.Dir, l.Layout.Dir(f))
}

// LayerInfo records how and when a cached layer was produced.
type LayerInfo struct {
	Project     string    `json:"project,omitzero"`
	ExecutionID string    `json:"execution_id,omitzero"`
	InputHash   string    `json:"input_hash,omitzero"`
	BuiltAt     time.Time `json:"built_at,omitzero"`
}
