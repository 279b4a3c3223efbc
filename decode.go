package csvcodec

import (
	"bufio"
	"context"
	"io"

	"github.com/pkg/errors"
)

// DecodeOptions bundles the configuration shared by every Decode* entry
// point: the wire dialect, the value strategies, and the optional
// header-name and column-index mappings. The column order for
// headerless input is not part of it; it comes from a record that
// implements ColumnOrderer.
type DecodeOptions struct {
	Dialect       Dialect
	Strategies    StrategySet
	ColumnMapping map[string]string
	IndexMapping  map[int]string
}

// DefaultDecodeOptions returns the documented decode defaults: comma
// delimiter, headers present, UTF-8, trimmed whitespace, lenient mode.
func DefaultDecodeOptions() DecodeOptions {
	return DecodeOptions{Dialect: DefaultDecodeDialect(), Strategies: DefaultStrategies()}
}

// newDecoder builds the shared scanner/codec pair for one decode call.
func newDecoder(opts DecodeOptions) (*Parser, *RowCodec) {
	return NewParser(opts.Dialect.Delimiter), NewRowCodec(opts.Dialect, opts.Strategies)
}

// resolveHeaderFor picks the header list for rows given opts and an
// optional sample record describing its own column order.
func resolveHeaderFor(opts DecodeOptions, rows []RowView, sample ColumnOrderer) (*HeaderMap, []RowView) {
	cfg := HeaderResolverConfig{
		HasHeaders:    opts.Dialect.HasHeaders,
		IndexMapping:  opts.IndexMapping,
		ColumnMapping: opts.ColumnMapping,
		KeyDecoding:   opts.Strategies.KeyDecoding,
	}
	if sample != nil {
		cfg.ColumnOrder = sample.ColumnOrder()
	}

	fieldCount := 0
	var rawFirstRow []string
	dataRows := rows
	if len(rows) > 0 {
		fieldCount = rows[0].FieldCount()
	}
	if cfg.HasHeaders && len(cfg.IndexMapping) == 0 && len(rows) > 0 {
		first := rows[0]
		rawFirstRow = make([]string, first.FieldCount())
		for i := range rawFirstRow {
			rawFirstRow[i] = first.String(i, opts.Dialect.TrimWhitespace)
		}
		dataRows = rows[1:]
	}
	names := ResolveHeader(cfg, rawFirstRow, fieldCount)
	return NewHeaderMap(names), dataRows
}

// DecodeFunc constructs one Decodable record per row; implementations
// typically close over a concrete *T and return it populated.
type DecodeFunc func() Decodable

// Decode parses buf and decodes every row into a fresh record produced
// by newRecord, returning the decoded records in source order.
func Decode(buf []byte, opts DecodeOptions, newRecord DecodeFunc) ([]Decodable, error) {
	parser, codec := newDecoder(opts)
	rows := parser.Parse(StripBOM(buf))
	if len(rows) == 0 {
		return nil, nil
	}

	var sample ColumnOrderer
	if co, ok := newRecord().(ColumnOrderer); ok {
		sample = co
	}
	headers, dataRows := resolveHeaderFor(opts, rows, sample)

	out := make([]Decodable, 0, len(dataRows))
	for i, row := range dataRows {
		rec := newRecord()
		if err := codec.DecodeRow(row, headers, i+1, rec); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// DecodeString is Decode over a string source.
func DecodeString(s string, opts DecodeOptions, newRecord DecodeFunc) ([]Decodable, error) {
	return Decode([]byte(s), opts, newRecord)
}

// DecodeDict decodes a single pre-split key/value record (bypassing
// the byte scanner entirely), matching spec's `decode(dict) → Record`.
func DecodeDict(fields map[string]string, opts DecodeOptions, rec Decodable) error {
	names := make([]string, 0, len(fields))
	values := make([]string, 0, len(fields))
	for k, v := range fields {
		names = append(names, k)
		values = append(values, v)
	}
	headers := NewHeaderMap(names)
	fieldSlices := make([]FieldSlice, len(values))
	var buf []byte
	for i, v := range values {
		fieldSlices[i] = FieldSlice{Start: len(buf), Length: len(v)}
		buf = append(buf, v...)
	}
	row := RowView{buf: buf, Fields: fieldSlices}
	codec := NewRowCodec(opts.Dialect, opts.Strategies)
	return codec.DecodeRow(row, headers, 1, rec)
}

// RowHandler receives one decoded record during a streaming decode;
// returning an error aborts the stream with that error.
type RowHandler func(rec Decodable) error

// DecodeStream reads all of r, then invokes handle once per decoded
// row as the scan produces it, never materializing the full decoded
// record list at once. It stops and returns the first error from
// either the scanner or handle.
func DecodeStream(ctx context.Context, r io.Reader, opts DecodeOptions, newRecord DecodeFunc, handle RowHandler) error {
	parser, codec := newDecoder(opts)
	br := bufio.NewReaderSize(r, 1<<16)

	var sample ColumnOrderer
	if co, ok := newRecord().(ColumnOrderer); ok {
		sample = co
	}

	var headers *HeaderMap
	rowIndex := 0
	first := true

	emit := func(rv RowView) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if first {
			first = false
			cfg := HeaderResolverConfig{
				HasHeaders:    opts.Dialect.HasHeaders,
				IndexMapping:  opts.IndexMapping,
				ColumnMapping: opts.ColumnMapping,
				KeyDecoding:   opts.Strategies.KeyDecoding,
			}
			if sample != nil {
				cfg.ColumnOrder = sample.ColumnOrder()
			}
			if cfg.HasHeaders && len(cfg.IndexMapping) == 0 {
				raw := make([]string, rv.FieldCount())
				for i := range raw {
					raw[i] = rv.String(i, opts.Dialect.TrimWhitespace)
				}
				headers = NewHeaderMap(ResolveHeader(cfg, raw, rv.FieldCount()))
				return nil
			}
			headers = NewHeaderMap(ResolveHeader(cfg, nil, rv.FieldCount()))
		}
		rowIndex++
		rec := newRecord()
		if err := codec.DecodeRow(rv, headers, rowIndex, rec); err != nil {
			return err
		}
		return handle(rec)
	}

	raw, err := io.ReadAll(br)
	if err != nil {
		return errors.Wrap(err, "decode stream read")
	}
	return parser.ParseFunc(StripBOM(raw), emit)
}

// ParallelDecodeOptions bundles DecodeOptions with the worker pool
// shape for DecodeParallel/DecodeParallelBatched.
type ParallelDecodeOptions struct {
	DecodeOptions
	Workers   int
	ChunkSize int
}

// DecodeParallel decodes buf using a ParallelDecoder and returns every
// record in original source order, matching spec's
// `decode_parallel(path, config) → [Record]` (path is read by the
// caller; this operates on the already-read bytes).
func DecodeParallel(ctx context.Context, buf []byte, opts ParallelDecodeOptions, newRecord DecodeFunc) ([]Decodable, error) {
	parser := NewParser(opts.Dialect.Delimiter)
	pd := NewParallelDecoder(parser)
	if opts.Workers > 0 {
		pd.Workers = opts.Workers
	}
	if opts.ChunkSize > 0 {
		pd.ChunkSize = opts.ChunkSize
	}

	batches, err := pd.Decode(ctx, buf)
	if err != nil {
		return nil, err
	}
	rows := Flatten(batches)
	if len(rows) == 0 {
		return nil, nil
	}

	var sample ColumnOrderer
	if co, ok := newRecord().(ColumnOrderer); ok {
		sample = co
	}
	headers, dataRows := resolveHeaderFor(opts.DecodeOptions, rows, sample)

	codec := NewRowCodec(opts.Dialect, opts.Strategies)
	out := make([]Decodable, 0, len(dataRows))
	for i, row := range dataRows {
		rec := newRecord()
		if err := codec.DecodeRow(row, headers, i+1, rec); err != nil {
			return nil, errors.Wrapf(err, "row %d", i+1)
		}
		out = append(out, rec)
	}
	return out, nil
}

// BatchHandler receives one RowBatch's fully decoded records during a
// DecodeParallelBatched call, in chunk order (ascending ChunkIndex).
type BatchHandler func(startRow int, recs []Decodable) error

// DecodeParallelBatched parses buf in parallel and then delivers one
// decoded batch at a time to handle, matching spec's
// `decode_parallel_batched(path, config) → async sequence<[Record]>`.
// Every chunk is parsed before the first batch is decoded; batches are
// then decoded and handed over one after another. Header resolution
// runs once against the first row of the whole input before any batch
// is decoded.
func DecodeParallelBatched(ctx context.Context, buf []byte, opts ParallelDecodeOptions, newRecord DecodeFunc, handle BatchHandler) error {
	buf = StripBOM(buf)
	parser := NewParser(opts.Dialect.Delimiter)
	pd := NewParallelDecoder(parser)
	if opts.Workers > 0 {
		pd.Workers = opts.Workers
	}
	if opts.ChunkSize > 0 {
		pd.ChunkSize = opts.ChunkSize
	}

	batches, err := pd.Decode(ctx, buf)
	if err != nil {
		return err
	}
	if len(batches) == 0 {
		return nil
	}

	var sample ColumnOrderer
	if co, ok := newRecord().(ColumnOrderer); ok {
		sample = co
	}
	allRows := Flatten(batches)
	headers, _ := resolveHeaderFor(opts.DecodeOptions, allRows, sample)
	skipFirst := opts.Dialect.HasHeaders && len(opts.IndexMapping) == 0

	codec := NewRowCodec(opts.Dialect, opts.Strategies)
	for _, b := range batches {
		rows := b.Rows
		startRow := b.StartRow
		if skipFirst && b.ChunkIndex == 0 && len(rows) > 0 {
			rows = rows[1:]
			startRow++
		}
		recs := make([]Decodable, 0, len(rows))
		for i, row := range rows {
			rec := newRecord()
			if err := codec.DecodeRow(row, headers, startRow+i+1, rec); err != nil {
				return errors.Wrapf(err, "batch %d row %d", b.ChunkIndex, startRow+i+1)
			}
			recs = append(recs, rec)
		}
		if err := handle(startRow, recs); err != nil {
			return err
		}
	}
	return nil
}
