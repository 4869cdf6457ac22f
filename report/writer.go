package report

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/osmcheck/sinkscan/codec"
)

// WriterReporter streams findings to an io.Writer, one JSON document per
// line. Writes are serialized; flushing is the caller's job via Flush.
type WriterReporter struct {
	mu    sync.Mutex
	buf   *bufio.Writer
	codec codec.Codec
}

// NewWriterReporter wraps w. A nil codec falls back to the default.
func NewWriterReporter(w io.Writer, c codec.Codec) *WriterReporter {
	if c == nil {
		c = codec.Default
	}
	return &WriterReporter{buf: bufio.NewWriter(w), codec: c}
}

// Report encodes and writes one finding line.
func (r *WriterReporter) Report(_ context.Context, f Finding) error {
	data, err := r.codec.Marshal(f)
	if err != nil {
		return fmt.Errorf("encode finding: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.buf.Write(data); err != nil {
		return fmt.Errorf("write finding: %w", err)
	}
	if err := r.buf.WriteByte('\n'); err != nil {
		return fmt.Errorf("write finding: %w", err)
	}
	return nil
}

// Flush forces buffered lines out to the underlying writer.
func (r *WriterReporter) Flush() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.buf.Flush()
}
