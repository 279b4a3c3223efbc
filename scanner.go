package csvcodec

// Parser is a single-pass byte scanner that converts a contiguous
// buffer into a sequence of RowView values. The only allocation on the
// path from buffer to field boundaries is each row's FieldSlice array;
// field bytes are never copied. It only annotates anomalies
// and leaves policy decisions (lenient vs strict) to the caller.
//
// Parser mirrors the two-state quoted/unquoted machine used by the
// teacher's field_parser.go, generalized to an arbitrary delimiter and
// to CR/LF/CRLF line endings on input regardless of Dialect.LineEnding
// (which only governs encode-side output).
type Parser struct {
	Delimiter byte
}

// NewParser constructs a Parser bound to the given delimiter.
func NewParser(delimiter byte) *Parser {
	return &Parser{Delimiter: delimiter}
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// StripBOM removes a leading UTF-8 byte order mark, if present.
func StripBOM(buf []byte) []byte {
	if len(buf) >= 3 && buf[0] == utf8BOM[0] && buf[1] == utf8BOM[1] && buf[2] == utf8BOM[2] {
		return buf[3:]
	}
	return buf
}

// scanState is the per-byte state machine position.
type scanState int

const (
	stateFieldStart scanState = iota
	stateUnquoted
	stateQuoted
)

// Parse scans buf in a single pass and returns every row it contains.
// buf must outlive the returned RowViews. A trailing line terminator is
// optional; an empty buf yields a nil, empty slice.
func (p *Parser) Parse(buf []byte) []RowView {
	var rows []RowView
	p.ParseFunc(buf, func(r RowView) error {
		rows = append(rows, r)
		return nil
	})
	return rows
}

// ParseFunc scans buf, invoking fn once per row in order. fn's RowView
// argument and its field slices reference buf directly; fn must not
// retain them past its own return if buf's lifetime is about to end.
// ParseFunc never returns an error of its own; it exists so fn can
// short-circuit by returning a non-nil error, which aborts the scan and
// is propagated to the caller.
func (p *Parser) ParseFunc(buf []byte, fn func(RowView) error) error {
	buf = StripBOM(buf)
	if len(buf) == 0 {
		return nil
	}

	delim := p.Delimiter
	line := 1
	fields := make([]FieldSlice, 0, 8)
	state := stateFieldStart
	fieldStart := 0
	escaped := false
	wasQuoted := false
	unterminated := false
	quoteInUnquoted := false

	i := 0
	n := len(buf)

	emitField := func(end int) {
		fields = append(fields, FieldSlice{
			Start:     fieldStart,
			Length:    end - fieldStart,
			WasQuoted: wasQuoted,
			Escaped:   escaped,
		})
		wasQuoted = false
		escaped = false
	}

	emitRow := func(rowLine int) error {
		row := RowView{
			buf:                  buf,
			Fields:               fields,
			UnterminatedQuote:    unterminated,
			QuoteInUnquotedField: quoteInUnquoted,
			Line:                 rowLine,
		}
		err := fn(row)
		fields = make([]FieldSlice, 0, 8)
		unterminated = false
		quoteInUnquoted = false
		return err
	}

	rowStartLine := line

	for i < n {
		b := buf[i]

		switch state {
		case stateFieldStart:
			switch {
			case b == '"':
				wasQuoted = true
				fieldStart = i + 1
				state = stateQuoted
				i++
			case b == delim:
				fieldStart = i
				emitField(i)
				fieldStart = i + 1
				i++
			case b == '\n':
				fieldStart = i
				emitField(i)
				if err := emitRow(rowStartLine); err != nil {
					return err
				}
				line++
				rowStartLine = line
				i++
				fieldStart = i
			case b == '\r':
				fieldStart = i
				emitField(i)
				if err := emitRow(rowStartLine); err != nil {
					return err
				}
				line++
				rowStartLine = line
				i++
				if i < n && buf[i] == '\n' {
					i++
				}
				fieldStart = i
			default:
				fieldStart = i
				state = stateUnquoted
				i++
			}

		case stateUnquoted:
			switch {
			case b == delim:
				emitField(i)
				fieldStart = i + 1
				state = stateFieldStart
				i++
			case b == '\n':
				emitField(i)
				if err := emitRow(rowStartLine); err != nil {
					return err
				}
				line++
				rowStartLine = line
				i++
				fieldStart = i
				state = stateFieldStart
			case b == '\r':
				emitField(i)
				if err := emitRow(rowStartLine); err != nil {
					return err
				}
				line++
				rowStartLine = line
				i++
				if i < n && buf[i] == '\n' {
					i++
				}
				fieldStart = i
				state = stateFieldStart
			case b == '"':
				quoteInUnquoted = true
				i++
			default:
				i++
			}

		case stateQuoted:
			if b != '"' {
				if b == '\n' {
					line++
				}
				i++
				continue
			}
			// Look ahead one byte past the quote.
			if i+1 < n && buf[i+1] == '"' {
				escaped = true
				i += 2
				continue
			}
			if i+1 >= n {
				// Closing quote at EOF ends the last row.
				emitField(i)
				return emitRow(rowStartLine)
			}
			next := buf[i+1]
			switch {
			case next == delim:
				emitField(i)
				i += 2
				fieldStart = i
				state = stateFieldStart
			case next == '\n':
				emitField(i)
				i += 2
				if err := emitRow(rowStartLine); err != nil {
					return err
				}
				line++
				rowStartLine = line
				fieldStart = i
				state = stateFieldStart
			case next == '\r':
				emitField(i)
				i += 2
				if i < n && buf[i] == '\n' {
					i++
				}
				if err := emitRow(rowStartLine); err != nil {
					return err
				}
				line++
				rowStartLine = line
				fieldStart = i
				state = stateFieldStart
			default:
				// A quote followed by neither delimiter nor
				// newline nor EOF: still treated as closing,
				// but the violation is recorded the same way
				// an in-field quote would be.
				quoteInUnquoted = true
				i++
				state = stateUnquoted
			}
		}
	}

	// EOF handling.
	switch state {
	case stateQuoted:
		unterminated = true
		emitField(n)
		return emitRow(rowStartLine)
	case stateUnquoted:
		emitField(n)
		return emitRow(rowStartLine)
	case stateFieldStart:
		if fieldStart < n || len(fields) > 0 {
			emitField(n)
			return emitRow(rowStartLine)
		}
		// Trailing newline with nothing after it: no extra empty row.
		return nil
	}
	return nil
}
