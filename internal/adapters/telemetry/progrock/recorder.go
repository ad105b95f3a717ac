// Package progrock provides the Progrock implementation of the telemetry adapter.
package progrock

import (
	"context"
	"fmt"
	"sync"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/strata/internal/core/ports"
)

// Recorder implements the ports.Telemetry interface using the vito/progrock library.
type Recorder struct {
	w   progrock.Writer
	rec *progrock.Recorder

	mu   sync.Mutex
	seen map[string]int
	open map[*Vertex]struct{}
}

// New creates a new Recorder with a default tape.
func New() *Recorder {
	return NewRecorder(progrock.NewTape())
}

// NewRecorder creates a new Recorder with the given writer.
func NewRecorder(w progrock.Writer) *Recorder {
	return &Recorder{
		w:    w,
		rec:  progrock.NewRecorder(w),
		seen: make(map[string]int),
		open: make(map[*Vertex]struct{}),
	}
}

// Record starts recording a new vertex. Repeated names get distinct digests so that a
// project rebuilt within one session shows up as a separate vertex.
func (r *Recorder) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	r.mu.Lock()
	n := r.seen[name]
	r.seen[name] = n + 1
	r.mu.Unlock()

	key := name
	if n > 0 {
		key = fmt.Sprintf("%s#%d", name, n)
	}

	vertex := &Vertex{vertex: r.rec.Vertex(digest.FromString(key), name), owner: r}

	r.mu.Lock()
	r.open[vertex] = struct{}{}
	r.mu.Unlock()

	return ports.ContextWithVertex(ctx, vertex), vertex
}

// Close completes vertices that were never finished and closes the recording session.
func (r *Recorder) Close() error {
	r.mu.Lock()
	pending := make([]*Vertex, 0, len(r.open))
	for v := range r.open {
		pending = append(pending, v)
	}
	r.mu.Unlock()

	for _, v := range pending {
		v.Complete(nil)
	}

	if c, ok := r.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

func (r *Recorder) finish(v *Vertex) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.open[v]; !ok {
		return false
	}
	delete(r.open, v)
	return true
}

// Pending returns the number of vertices that have not completed yet.
func (r *Recorder) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.open)
}
