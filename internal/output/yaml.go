package output

import (
	"bufio"
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLWriter writes results as YAML documents separated by "---".
type YAMLWriter struct {
	w     *bufio.Writer
	count int
}

// NewYAMLWriter creates a YAML writer.
func NewYAMLWriter(w io.Writer) *YAMLWriter {
	return &YAMLWriter{w: bufio.NewWriter(w)}
}

// Write writes a single result as a YAML document.
func (w *YAMLWriter) Write(data any) error {
	if w.count > 0 {
		if _, err := w.w.WriteString("---\n"); err != nil {
			return err
		}
	}

	output, err := yaml.Marshal(data)
	if err != nil {
		return err
	}

	if _, err := w.w.Write(output); err != nil {
		return err
	}

	w.count++
	return w.w.Flush()
}

// Flush flushes the buffer.
func (w *YAMLWriter) Flush() error {
	return w.w.Flush()
}
