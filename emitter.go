package csvcodec

import (
	"bufio"
	"io"
)

// StreamWriter writes CSV records to an underlying io.Writer in
// constant memory, one record at a time. Writes are buffered; callers
// must call Flush once done to guarantee delivery, and Error to check
// for a write failure that occurred at any point.
type StreamWriter struct {
	dialect Dialect
	escaper FieldEscaper
	w       *bufio.Writer
	err     error
	wrote   bool
}

// NewStreamWriter wraps w in a buffered CSV StreamWriter for dialect.
func NewStreamWriter(w io.Writer, dialect Dialect) *StreamWriter {
	return &StreamWriter{
		dialect: dialect,
		escaper: NewFieldEscaper(dialect.Delimiter),
		w:       bufio.NewWriter(w),
	}
}

// WriteRow writes one record's already-stringified fields, quoting
// each as needed. The line ending between records is written as a
// separator before this row (not after), so the final row written
// before Flush carries no trailing line terminator.
func (sw *StreamWriter) WriteRow(fields []string) error {
	if sw.err != nil {
		return sw.err
	}
	buf := make([]byte, 0, 64)
	if sw.wrote {
		buf = sw.appendLineEnding(buf)
	}
	for i, f := range fields {
		if i > 0 {
			buf = append(buf, sw.dialect.Delimiter)
		}
		buf = sw.escaper.AppendEscaped(buf, f)
	}
	if _, err := sw.w.Write(buf); err != nil {
		sw.err = err
		return err
	}
	sw.wrote = true
	return nil
}

func (sw *StreamWriter) appendLineEnding(buf []byte) []byte {
	if sw.dialect.LineEnding == CRLF {
		return append(buf, '\r', '\n')
	}
	return append(buf, '\n')
}

// WriteHeader writes the header row if the dialect requests headers.
func (sw *StreamWriter) WriteHeader(names []string) error {
	if !sw.dialect.HasHeaders {
		return nil
	}
	return sw.WriteRow(names)
}

// Flush writes any buffered data to the underlying io.Writer. Callers
// must call this before discarding the StreamWriter.
func (sw *StreamWriter) Flush() error {
	if err := sw.w.Flush(); err != nil {
		sw.err = err
	}
	return sw.err
}

// Error reports any error that occurred during a previous WriteRow or
// Flush call.
func (sw *StreamWriter) Error() error {
	return sw.err
}

// StreamingEmitter drives a RowCodec and StreamWriter together: each
// Encodable record is encoded into an EncodingStorage, its frozen key
// order becomes (and verifies) the header row, and each subsequent
// record's values are flushed as one CSV row.
type StreamingEmitter struct {
	codec   *RowCodec
	writer  *StreamWriter
	storage *EncodingStorage
	headerWritten bool
}

// NewStreamingEmitter builds a StreamingEmitter over w.
func NewStreamingEmitter(w io.Writer, dialect Dialect, strategies StrategySet) *StreamingEmitter {
	return &StreamingEmitter{
		codec:   NewRowCodec(dialect, strategies),
		writer:  NewStreamWriter(w, dialect),
		storage: NewEncodingStorage(),
	}
}

// Encode encodes one record and writes its row, writing the header
// row first if this is the first record and the dialect has headers.
func (se *StreamingEmitter) Encode(rec Encodable) error {
	se.storage.Reset()
	if err := se.codec.EncodeRow(rec, se.storage); err != nil {
		return err
	}
	if !se.headerWritten {
		if err := se.writer.WriteHeader(se.storage.Keys()); err != nil {
			return err
		}
		se.headerWritten = true
	}
	return se.writer.WriteRow(se.storage.Values())
}

// Flush flushes the underlying StreamWriter.
func (se *StreamingEmitter) Flush() error {
	return se.writer.Flush()
}

// Error reports any error from a previous Encode or Flush call.
func (se *StreamingEmitter) Error() error {
	return se.writer.Error()
}
