// Package output formats feature results as text, CSV or JSON records.
package output

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"PPD/pkg/models"
)

// ErrUnknownFormat is returned by NewWriter for unsupported formats.
var ErrUnknownFormat = errors.New("output: unknown format")

// Formats lists the supported record formats.
var Formats = []string{"text", "csv", "json"}

// Writer emits one record per result.
type Writer interface {
	Write(r *models.FeatureResult) error
	Flush() error
}

// NewWriter returns a Writer for format.
func NewWriter(w io.Writer, format string) (Writer, error) {
	switch format {
	case "text", "":
		return &textWriter{w: w}, nil
	case "csv":
		return &csvWriter{w: csv.NewWriter(w)}, nil
	case "json":
		return &jsonWriter{enc: json.NewEncoder(w)}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// textWriter prints every value with %f followed by a space, then the
// file's base name and a newline.
type textWriter struct {
	w io.Writer
}

func (t *textWriter) Write(r *models.FeatureResult) error {
	var sb strings.Builder
	for _, v := range r.Features {
		fmt.Fprintf(&sb, "%f ", v)
	}
	sb.WriteString(r.Filename)
	sb.WriteByte('\n')
	_, err := io.WriteString(t.w, sb.String())
	return err
}

func (t *textWriter) Flush() error { return nil }

// csvWriter writes the values followed by one trailing field: the label
// when set, otherwise the base name. Classifier input must be all numeric
// except the last column.
type csvWriter struct {
	w *csv.Writer
}

func (c *csvWriter) Write(r *models.FeatureResult) error {
	rec := make([]string, 0, len(r.Features)+1)
	for _, v := range r.Features {
		rec = append(rec, strconv.FormatFloat(v, 'f', 6, 64))
	}
	if r.Label != "" {
		rec = append(rec, r.Label)
	} else {
		rec = append(rec, r.Filename)
	}
	return c.w.Write(rec)
}

func (c *csvWriter) Flush() error {
	c.w.Flush()
	return c.w.Error()
}

type jsonWriter struct {
	enc *json.Encoder
}

func (j *jsonWriter) Write(r *models.FeatureResult) error {
	return j.enc.Encode(r)
}

func (j *jsonWriter) Flush() error { return nil }
