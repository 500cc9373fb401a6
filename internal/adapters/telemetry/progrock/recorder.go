// Package progrock provides the Progrock implementation of the telemetry adapter.
package progrock

import (
	"context"
	"os"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/tzmap/internal/core/ports"
)

// Recorder implements the ports.Telemetry interface using the vito/progrock library.
type Recorder struct {
	w        progrock.Writer
	rec      *progrock.Recorder
	reporter *Reporter
}

// New creates a new Recorder that reports to stderr once verbose output is enabled.
func New() *Recorder {
	return NewRecorder(NewReporter(os.Stderr))
}

// NewRecorder creates a new Recorder with the given writer. SetVerbose only
// has an effect when w is a *Reporter.
func NewRecorder(w progrock.Writer) *Recorder {
	r := &Recorder{
		w:   w,
		rec: progrock.NewRecorder(w),
	}
	if reporter, ok := w.(*Reporter); ok {
		r.reporter = reporter
	}
	return r
}

// Record starts recording a new vertex. Vertices are keyed by name, so
// recording the same name twice reports on the same vertex.
func (r *Recorder) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	v := r.rec.Vertex(digest.FromString(name), name)
	return ctx, &Vertex{vertex: v}
}

// SetVerbose enables or disables rendering of finished vertices.
func (r *Recorder) SetVerbose(enable bool) {
	if r.reporter != nil {
		r.reporter.SetEnabled(enable)
	}
}

// Close flushes and closes the recording session.
func (r *Recorder) Close() error {
	return r.w.Close()
}
