package progrock

import (
	"bytes"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/vito/progrock"
)

// Reporter is a progrock.Writer that renders finished vertices and their log
// lines as plain text. It stays silent until enabled.
type Reporter struct {
	mu       sync.Mutex
	out      io.Writer
	enabled  bool
	names    map[string]string
	reported map[string]time.Time
}

// NewReporter creates a disabled Reporter writing to out.
func NewReporter(out io.Writer) *Reporter {
	return &Reporter{
		out:      out,
		names:    make(map[string]string),
		reported: make(map[string]time.Time),
	}
}

// SetEnabled turns rendering on or off.
func (r *Reporter) SetEnabled(enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enabled = enabled
}

// WriteStatus implements progrock.Writer.
func (r *Reporter) WriteStatus(update *progrock.StatusUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, v := range update.GetVertexes() {
		r.names[v.GetId()] = v.GetName()
	}
	if !r.enabled {
		return nil
	}

	for _, l := range update.GetLogs() {
		for _, line := range bytes.Split(bytes.TrimRight(l.GetData(), "\n"), []byte("\n")) {
			if _, err := fmt.Fprintf(r.out, "%s: %s\n", r.names[l.GetVertex()], line); err != nil {
				return err
			}
		}
	}

	for _, v := range update.GetVertexes() {
		if v.GetCompleted() == nil {
			continue
		}
		completed := v.GetCompleted().AsTime()
		if last, ok := r.reported[v.GetId()]; ok && last.Equal(completed) {
			continue
		}
		r.reported[v.GetId()] = completed

		if _, err := fmt.Fprintln(r.out, render(v)); err != nil {
			return err
		}
	}
	return nil
}

// Close implements progrock.Writer.
func (r *Reporter) Close() error {
	return nil
}

func render(v *progrock.Vertex) string {
	switch {
	case v.GetCanceled():
		return "[canceled] " + v.GetName()
	case v.Error != nil:
		return "[failed] " + v.GetName() + ": " + v.GetError()
	case v.GetCached():
		return "[cached] " + v.GetName()
	}
	elapsed := v.GetCompleted().AsTime().Sub(v.GetStarted().AsTime())
	return fmt.Sprintf("[done %s] %s", elapsed.Round(time.Millisecond), v.GetName())
}
