package recorder

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"
	"os"

	"github.com/sanjayshukla-jarbits/skyroutex-client-sub001/pkg/model"
)

// JSONLWriter writes one JSON object per line. Output is buffered until Flush
// or Close.
type JSONLWriter struct {
	writer *bufio.Writer
	enc    *json.Encoder
	closer io.Closer
}

func NewJSONLWriter(w io.Writer) *JSONLWriter {
	bw := bufio.NewWriter(w)
	jw := &JSONLWriter{writer: bw, enc: json.NewEncoder(bw)}
	if c, ok := w.(io.Closer); ok {
		jw.closer = c
	}
	return jw
}

// OpenJSONLFile appends to path, creating it if needed.
func OpenJSONLFile(path string) (*JSONLWriter, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	return NewJSONLWriter(f), nil
}

func (a *JSONLWriter) Write(rec model.TelemetryRecord) error {
	return a.enc.Encode(rec)
}

func (a *JSONLWriter) Flush() error {
	return a.writer.Flush()
}

// Close flushes and closes the underlying writer when it is closable.
func (a *JSONLWriter) Close() error {
	err := a.Flush()
	if a.closer != nil {
		err = errors.Join(err, a.closer.Close())
		a.closer = nil
	}
	return err
}
