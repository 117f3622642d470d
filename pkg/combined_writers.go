package pkg

import (
	"io"

	"go.uber.org/multierr"
)

// CombinedWriter writes to all of its writers, e.g. STDOUT and a log file.
// A failing writer does not stop the others.
type CombinedWriter struct {
	Writers []io.Writer
}

func NewCombinedWriter(writers ...io.Writer) *CombinedWriter {
	return &CombinedWriter{
		Writers: append([]io.Writer(nil), writers...),
	}
}

// Write returns the number of bytes written by the writer that wrote the
// least, and all the errors combined.
func (cw *CombinedWriter) Write(p []byte) (int, error) {
	var err error
	n := len(p)
	for _, w := range cw.Writers {
		written, werr := w.Write(p)
		if werr != nil {
			err = multierr.Append(err, werr)
		}
		if written < n {
			n = written
		}
	}
	return n, err
}
