package csvcodec

import (
	"bytes"
	"io"
)

// EncodeOptions bundles the dialect and value strategies shared by
// every Encode* entry point.
type EncodeOptions struct {
	Dialect    Dialect
	Strategies StrategySet
}

// DefaultEncodeOptions returns the documented encode defaults: comma
// delimiter, headers present, UTF-8, LF line ending, numeric bool
// encoding, empty-string nil encoding, ISO-8601 date encoding, nested
// values rejected.
func DefaultEncodeOptions() EncodeOptions {
	return EncodeOptions{Dialect: DefaultEncodeDialect(), Strategies: DefaultStrategies()}
}

// Encode renders records as CSV bytes, matching spec's
// `encode([Record]) → bytes`.
func Encode(records []Encodable, opts EncodeOptions) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeTo(&buf, records, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeToString renders records as a CSV string, matching spec's
// `encode_to_string([Record]) → string`.
func EncodeToString(records []Encodable, opts EncodeOptions) (string, error) {
	b, err := Encode(records, opts)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// EncodeTo streams records to sink, matching spec's
// `encode([Record], to: sink)`.
func EncodeTo(sink io.Writer, records []Encodable, opts EncodeOptions) error {
	se := NewStreamingEmitter(sink, opts.Dialect, opts.Strategies)
	for _, rec := range records {
		if err := se.Encode(rec); err != nil {
			return err
		}
	}
	if err := se.Flush(); err != nil {
		return err
	}
	return se.Error()
}

// EncodeRow encodes a single record into one CSV row string (no
// header row, no trailing line terminator), matching spec's
// `encode_row(Record) → string`.
func EncodeRow(rec Encodable, opts EncodeOptions) (string, error) {
	codec := NewRowCodec(opts.Dialect, opts.Strategies)
	storage := NewEncodingStorage()
	if err := codec.EncodeRow(rec, storage); err != nil {
		return "", err
	}
	escaper := NewFieldEscaper(opts.Dialect.Delimiter)
	out := make([]byte, 0, 64)
	for i, v := range storage.Values() {
		if i > 0 {
			out = append(out, opts.Dialect.Delimiter)
		}
		out = escaper.AppendEscaped(out, v)
	}
	return string(out), nil
}

// EncodeToDict encodes a single record into its key/value field map,
// matching spec's `encode_to_dict(Record) → {String: String}`.
func EncodeToDict(rec Encodable, opts EncodeOptions) (map[string]string, error) {
	codec := NewRowCodec(opts.Dialect, opts.Strategies)
	storage := NewEncodingStorage()
	if err := codec.EncodeRow(rec, storage); err != nil {
		return nil, err
	}
	keys, values := storage.Keys(), storage.Values()
	out := make(map[string]string, len(keys))
	for i, k := range keys {
		out[k] = values[i]
	}
	return out, nil
}

// Headers encodes sample (without writing it anywhere) purely to
// observe the key order its EncodeCSV call declares, matching spec's
// `headers(Record sample) → [String]`.
func Headers(sample Encodable, opts EncodeOptions) ([]string, error) {
	codec := NewRowCodec(opts.Dialect, opts.Strategies)
	storage := NewEncodingStorage()
	if err := codec.EncodeRow(sample, storage); err != nil {
		return nil, err
	}
	return append([]string(nil), storage.Keys()...), nil
}
