package csvcodec

import "golang.org/x/text/language"

// LineEnding selects the line terminator used when emitting rows. The
// Parser accepts LF, CRLF and CR on input whatever this is set to.
type LineEnding int

const (
	// LF terminates rows with a single '\n'.
	LF LineEnding = iota
	// CRLF terminates rows with "\r\n".
	CRLF
)

// ParsingMode selects how strictly the parser enforces RFC 4180.
type ParsingMode int

const (
	// Lenient ignores stray quotes in unquoted fields and tolerates
	// rows whose field count differs from the first row's.
	Lenient ParsingMode = iota
	// Strict fails a row on any RFC 4180 violation, including a field
	// count mismatch against Dialect.ExpectedFieldCount.
	Strict
)

// NoExpectedFieldCount marks Dialect.ExpectedFieldCount as unset.
const NoExpectedFieldCount = -1

// Dialect is the immutable tuple of byte-level parsing and emission
// settings. The zero value is not directly useful; construct one with
// [DefaultDecodeDialect] or [DefaultEncodeDialect] and override fields
// with [DialectOption] values.
type Dialect struct {
	Delimiter          byte
	LineEnding         LineEnding
	HasHeaders         bool
	Encoding           string
	TrimWhitespace     bool
	Mode               ParsingMode
	ExpectedFieldCount int
	Locale             language.Tag
}

// DialectOption mutates a Dialect under construction.
type DialectOption func(*Dialect)

// DefaultDecodeDialect returns the decode-side defaults from the spec:
// comma delimiter, headers present, UTF-8, trimmed whitespace, lenient
// parsing.
func DefaultDecodeDialect(opts ...DialectOption) Dialect {
	d := Dialect{
		Delimiter:          ',',
		LineEnding:         LF,
		HasHeaders:         true,
		Encoding:           "UTF-8",
		TrimWhitespace:     true,
		Mode:               Lenient,
		ExpectedFieldCount: NoExpectedFieldCount,
		Locale:             language.AmericanEnglish,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

// DefaultEncodeDialect returns the encode-side defaults from the spec:
// comma delimiter, headers emitted, UTF-8, LF line endings.
func DefaultEncodeDialect(opts ...DialectOption) Dialect {
	d := Dialect{
		Delimiter:          ',',
		LineEnding:         LF,
		HasHeaders:         true,
		Encoding:           "UTF-8",
		TrimWhitespace:     false,
		Mode:               Lenient,
		ExpectedFieldCount: NoExpectedFieldCount,
		Locale:             language.AmericanEnglish,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

// WithDelimiter overrides the field delimiter.
func WithDelimiter(b byte) DialectOption {
	return func(d *Dialect) { d.Delimiter = b }
}

// WithLineEnding overrides the line terminator.
func WithLineEnding(le LineEnding) DialectOption {
	return func(d *Dialect) { d.LineEnding = le }
}

// WithHeaders toggles whether the first row is treated as a header row.
func WithHeaders(has bool) DialectOption {
	return func(d *Dialect) { d.HasHeaders = has }
}

// WithTrimWhitespace toggles ASCII space/tab trimming of unquoted fields.
func WithTrimWhitespace(trim bool) DialectOption {
	return func(d *Dialect) { d.TrimWhitespace = trim }
}

// WithParsingMode selects lenient or strict RFC 4180 enforcement.
func WithParsingMode(m ParsingMode) DialectOption {
	return func(d *Dialect) { d.Mode = m }
}

// WithExpectedFieldCount sets the field count enforced under Strict mode.
func WithExpectedFieldCount(n int) DialectOption {
	return func(d *Dialect) { d.ExpectedFieldCount = n }
}

// WithLocale sets the default locale used by locale-aware strategies.
func WithLocale(tag language.Tag) DialectOption {
	return func(d *Dialect) { d.Locale = tag }
}
