package diagnostics

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// DecodeError reports a diagnostic record that could not be decoded.
type DecodeError struct {
	// Record is the 1-based index of the failing record in the stream.
	Record int

	// Offset is the input byte offset reached when decoding failed.
	Offset int64

	// Err is the underlying decode error.
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode diagnostic record %d (offset %d): %v", e.Record, e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Decoder reads a stream of diagnostic records.
// Records are JSON values separated by whitespace, normally one per line.
type Decoder struct {
	dec    *json.Decoder
	record int
}

// NewDecoder returns a Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{dec: json.NewDecoder(r)}
}

// Next decodes the next record. It returns io.EOF when the stream is exhausted
// and a *DecodeError for a malformed record. After an error the stream cannot
// be resumed.
func (d *Decoder) Next() (Diagnostic, error) {
	var diag Diagnostic

	d.record++
	if err := d.dec.Decode(&diag); err != nil {
		if errors.Is(err, io.EOF) {
			return Diagnostic{}, io.EOF
		}
		return Diagnostic{}, &DecodeError{Record: d.record, Offset: d.dec.InputOffset(), Err: err}
	}

	return diag, nil
}

// Decode reads every record from r. It stops at the first malformed record and
// returns no partial results in that case.
func Decode(r io.Reader) ([]Diagnostic, error) {
	dec := NewDecoder(r)

	var out []Diagnostic
	for {
		diag, err := dec.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, diag)
	}
}
