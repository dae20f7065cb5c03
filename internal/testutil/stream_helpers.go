package testutil

import (
	"io"
	"sync"

	"github.com/Belphemur/SuperMusic/internal/models"
)

// ProgressRecorder collects transfer progress events.
// This is a test helper and should not be used in production code.
type ProgressRecorder struct {
	mu     sync.Mutex
	events []models.TransferProgress
}

// Record appends an event. It matches the transfer engine's progress callback signature.
func (r *ProgressRecorder) Record(p models.TransferProgress) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, p)
}

// Events returns a copy of the recorded events.
func (r *ProgressRecorder) Events() []models.TransferProgress {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.TransferProgress, len(r.events))
	copy(out, r.events)
	return out
}

// Last returns the most recent event and whether there was one.
func (r *ProgressRecorder) Last() (models.TransferProgress, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return models.TransferProgress{}, false
	}
	return r.events[len(r.events)-1], true
}

// FailingReader yields Data and then returns Err instead of io.EOF.
type FailingReader struct {
	Data []byte
	Err  error
	pos  int
}

func (r *FailingReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.Data) {
		return 0, r.Err
	}
	n := copy(p, r.Data[r.pos:])
	r.pos += n
	return n, nil
}

// Close implements io.Closer so the reader can stand in for a response body.
func (r *FailingReader) Close() error {
	return nil
}

var _ io.ReadCloser = (*FailingReader)(nil)

// FailingWriter accepts Limit bytes and then fails every write with Err.
type FailingWriter struct {
	Limit   int
	Err     error
	written int
}

func (w *FailingWriter) Write(p []byte) (int, error) {
	if w.written+len(p) > w.Limit {
		return 0, w.Err
	}
	w.written += len(p)
	return len(p), nil
}

// Close implements io.Closer.
func (w *FailingWriter) Close() error {
	return nil
}
