package csvcodec

import (
	"context"
	"runtime"
	"sort"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// ParallelMode names ways of composing parallel worker output back into
// a single logical stream. ParallelDecoder has no field of this type and
// no function in this package reads it: ParallelDecoder.Decode always
// returns its batches in ChunkIndex order.
type ParallelMode int

const (
	// ParallelOrdered reconstructs rows in their original source order,
	// buffering completed chunks until earlier ones have drained.
	ParallelOrdered ParallelMode = iota
	// ParallelUnordered delivers rows as soon as any worker produces
	// them, with no ordering guarantee across chunk boundaries.
	ParallelUnordered
	// ParallelBatched delivers one RowBatch per chunk, each already in
	// order internally but batches themselves unordered across chunks.
	ParallelBatched
)

// RowBatch is one chunk's decoded rows, tagged with its position in the
// source for ordered reassembly or diagnostics.
type RowBatch struct {
	ChunkIndex int
	StartRow   int
	Rows       []RowView
}

// ParallelDecoder splits a byte buffer into worker-sized chunks at
// newline boundaries that are provably outside any quoted field, then
// parses each chunk concurrently.
//
// Chunk boundary safety follows the widow/orphan prefix-scan idea: a
// candidate split point is only used once a scan from the start of the
// buffer, replaying the scanner's own field-start/unquoted/quoted state
// machine, confirms the point falls outside any quoted field, so the
// following worker never starts mid-quoted-field.
type ParallelDecoder struct {
	Parser      *Parser
	Workers     int
	ChunkSize   int
	Logger      *logrus.Logger
}

// NewParallelDecoder builds a ParallelDecoder defaulting Workers to
// runtime.NumCPU and ChunkSize to 4 MiB.
func NewParallelDecoder(parser *Parser) *ParallelDecoder {
	return &ParallelDecoder{
		Parser:    parser,
		Workers:   runtime.NumCPU(),
		ChunkSize: 4 << 20,
		Logger:    logrus.StandardLogger(),
	}
}

// splitPoint describes one safe chunk boundary: byte offset into buf
// and a provisional row index for the chunk starting there (see
// chunksFor).
type splitPoint struct {
	offset int
	row    int
}

// inQuotedFieldAt runs the scanner's own field-start/unquoted/quoted
// state machine over buf[:upTo] and reports whether that point lies
// inside an open quoted field. This tracks real scanner state rather
// than counting raw quote bytes: a stray `"` encountered while already
// in stateUnquoted (scanner.go's QuoteInUnquotedField case, tolerated
// in Lenient mode) never flips this, since the scanner itself does not
// treat it as entering or leaving a quoted region.
func inQuotedFieldAt(buf []byte, delim byte, upTo int) bool {
	if upTo > len(buf) {
		upTo = len(buf)
	}
	state := stateFieldStart
	i := 0
	for i < upTo {
		b := buf[i]
		switch state {
		case stateFieldStart:
			switch {
			case b == '"':
				state = stateQuoted
			case b == delim, b == '\n', b == '\r':
				// stays at field start
			default:
				state = stateUnquoted
			}
			i++
		case stateUnquoted:
			if b == delim || b == '\n' || b == '\r' {
				state = stateFieldStart
			}
			i++
		case stateQuoted:
			if b != '"' {
				i++
				continue
			}
			if i+1 < len(buf) && buf[i+1] == '"' {
				i += 2
				continue
			}
			if i+1 >= len(buf) {
				state = stateFieldStart
				i++
				continue
			}
			next := buf[i+1]
			switch next {
			case delim, '\n', '\r':
				state = stateFieldStart
			default:
				// Same ambiguous case scanner.go treats as a
				// closing quote: the field continues unquoted.
				state = stateUnquoted
			}
			i++
		}
	}
	return state == stateQuoted
}

// planSplits walks buf from each naive chunk boundary forward to the
// next newline, then checks real scanner quote state at that point; if
// the newline falls inside a quoted field it keeps scanning forward to
// the next newline until one lands outside any quoted field. This
// never undershoots: every returned offset is a real, unquoted row
// boundary as the scanner itself would see it.
func planSplits(buf []byte, delim byte, chunkSize int) []int {
	if chunkSize <= 0 || len(buf) <= chunkSize {
		return []int{len(buf)}
	}
	var offsets []int
	pos := chunkSize
	for pos < len(buf) {
		nl := pos
		for nl < len(buf) && buf[nl] != '\n' {
			nl++
		}
		if nl >= len(buf) {
			break
		}
		split := nl + 1
		for inQuotedFieldAt(buf, delim, split) {
			next := split
			for next < len(buf) && buf[next] != '\n' {
				next++
			}
			if next >= len(buf) {
				split = len(buf)
				break
			}
			split = next + 1
		}
		offsets = append(offsets, split)
		pos = split + chunkSize
	}
	offsets = append(offsets, len(buf))
	return offsets
}

// chunksFor partitions buf into byte ranges using planSplits, pairing
// each with a provisional row index: the number of '\n' bytes before its
// start offset, newlines inside quoted fields included. Decode replaces
// it with the exact number of rows parsed in the preceding chunks.
func chunksFor(buf []byte, delim byte, chunkSize int) []splitPoint {
	offsets := planSplits(buf, delim, chunkSize)
	points := make([]splitPoint, 0, len(offsets))
	start := 0
	rowCounter := 0
	for _, end := range offsets {
		points = append(points, splitPoint{offset: start, row: rowCounter})
		for i := start; i < end; i++ {
			if buf[i] == '\n' {
				rowCounter++
			}
		}
		start = end
	}
	return points
}

// Decode parses buf concurrently and returns RowBatches ordered by
// ChunkIndex, each with StartRow set to the number of rows in the
// batches before it. An empty buf yields no batches.
func (d *ParallelDecoder) Decode(ctx context.Context, buf []byte) ([]RowBatch, error) {
	buf = StripBOM(buf)
	if len(buf) == 0 {
		return nil, nil
	}
	bounds := chunksFor(buf, d.Parser.Delimiter, d.ChunkSize)
	if len(bounds) == 0 {
		return nil, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	if d.Workers > 0 {
		g.SetLimit(d.Workers)
	}

	batches := make([]RowBatch, len(bounds))
	for i, sp := range bounds {
		i, sp := i, sp
		end := len(buf)
		if i+1 < len(bounds) {
			end = bounds[i+1].offset
		}
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			chunk := buf[sp.offset:end]
			rows := d.Parser.Parse(chunk)
			batches[i] = RowBatch{ChunkIndex: i, StartRow: sp.row, Rows: rows}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if errors.Is(err, context.Canceled) {
			d.Logger.Warn("parallel decode canceled before all chunks completed")
		}
		return nil, errors.Wrap(err, "parallel decode")
	}

	sort.Slice(batches, func(i, j int) bool { return batches[i].ChunkIndex < batches[j].ChunkIndex })
	rowsBefore := 0
	for i := range batches {
		batches[i].StartRow = rowsBefore
		rowsBefore += len(batches[i].Rows)
	}
	return batches, nil
}

// Flatten concatenates a set of RowBatches in ChunkIndex order into a
// single row sequence, restoring the logical decode order.
func Flatten(batches []RowBatch) []RowView {
	total := 0
	for _, b := range batches {
		total += len(b.Rows)
	}
	out := make([]RowView, 0, total)
	for _, b := range batches {
		out = append(out, b.Rows...)
	}
	return out
}
