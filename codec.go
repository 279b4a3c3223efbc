package csvcodec

import (
	"strconv"
	"time"
)

// Decodable is implemented by record types that can bind themselves
// from a decoded CSV row. DecodeCSV is called once per row with a
// RowVisitor scoped to that row; it should pull every field the record
// needs through the visitor's typed accessors.
type Decodable interface {
	DecodeCSV(v *RowVisitor) error
}

// Encodable is implemented by record types that can emit themselves as
// a CSV row. EncodeCSV is called once per record with a RowEmitter
// scoped to that record; it should push every field the record has,
// in a stable declaration order, through the emitter's typed setters.
type Encodable interface {
	EncodeCSV(e *RowEmitter) error
}

// ColumnOrderer is an optional capability: a record type that knows
// its own positional column order supplies it so headerless input can
// be decoded, and so headerless output can be encoded in a stable
// column order before any record has been emitted.
type ColumnOrderer interface {
	ColumnOrder() []string
}

// RowVisitor exposes one decoded row to a Decodable's DecodeCSV method,
// requesting fields by (key, expected type) the way spec.md §9's
// "visitor" capability is described.
type RowVisitor struct {
	row        RowView
	headers    *HeaderMap
	translator *ValueTranslator
	dialect    Dialect
	rowIndex   int
	path       []string
}

func newRowVisitor(row RowView, headers *HeaderMap, translator *ValueTranslator, dialect Dialect, rowIndex int) *RowVisitor {
	return &RowVisitor{row: row, headers: headers, translator: translator, dialect: dialect, rowIndex: rowIndex}
}

// ColumnOrder exposes the frozen header list, for records that want to
// iterate columns generically.
func (v *RowVisitor) ColumnOrder() []string { return v.headers.Keys() }

func (v *RowVisitor) location(key string) Location {
	return Location{Row: v.rowIndex, Column: key, CodingPath: append(append([]string(nil), v.path...), key)}
}

func (v *RowVisitor) field(key string) (string, bool, *DecodeError) {
	idx, ok := v.headers.ColumnIndex(key)
	if !ok {
		loc := v.location(key)
		loc.AvailableKeys = v.headers.Keys()
		return "", false, newKeyNotFoundErr(key, v.headers.Keys()).WithLocation(loc)
	}
	if idx >= v.row.FieldCount() {
		return "", false, nil
	}
	raw := v.row.String(idx, v.dialect.TrimWhitespace)
	wasQuoted := v.row.Fields[idx].WasQuoted
	if v.translator.IsNil(raw, wasQuoted) {
		return "", true, nil
	}
	return raw, false, nil
}

// String returns the decoded string value for key.
func (v *RowVisitor) String(key string) (string, error) {
	raw, isNil, err := v.field(key)
	if err != nil {
		return "", err
	}
	if isNil {
		return "", nil
	}
	return v.translator.DecodeString(raw)
}

// OptionalString returns the decoded value for key and whether it was
// present (non-nil).
func (v *RowVisitor) OptionalString(key string) (string, bool, error) {
	raw, isNil, err := v.field(key)
	if err != nil {
		return "", false, err
	}
	if isNil {
		return "", false, nil
	}
	s, err := v.translator.DecodeString(raw)
	return s, true, err
}

// Bool returns the decoded boolean value for key.
func (v *RowVisitor) Bool(key string) (bool, error) {
	raw, isNil, err := v.field(key)
	if err != nil {
		return false, err
	}
	if isNil {
		return false, nil
	}
	b, derr := v.translator.DecodeBool(raw)
	if derr != nil {
		return false, derr.(*DecodeError).WithLocation(v.location(key))
	}
	return b, nil
}

// Int returns the decoded signed integer value for key.
func (v *RowVisitor) Int(key string) (int64, error) {
	raw, isNil, err := v.field(key)
	if err != nil {
		return 0, err
	}
	if isNil {
		return 0, nil
	}
	n, derr := v.translator.DecodeInt64(raw)
	if derr != nil {
		return 0, derr.(*DecodeError).WithLocation(v.location(key))
	}
	return n, nil
}

// Uint returns the decoded unsigned integer value for key.
func (v *RowVisitor) Uint(key string) (uint64, error) {
	raw, isNil, err := v.field(key)
	if err != nil {
		return 0, err
	}
	if isNil {
		return 0, nil
	}
	n, derr := v.translator.DecodeUint64(raw)
	if derr != nil {
		return 0, derr.(*DecodeError).WithLocation(v.location(key))
	}
	return n, nil
}

// Float returns the decoded floating point value for key.
func (v *RowVisitor) Float(key string) (float64, error) {
	raw, isNil, err := v.field(key)
	if err != nil {
		return 0, err
	}
	if isNil {
		return 0, nil
	}
	f, derr := v.translator.DecodeFloat64(raw)
	if derr != nil {
		return 0, derr.(*DecodeError).WithLocation(v.location(key))
	}
	return f, nil
}

// Time returns the decoded date/time value for key.
func (v *RowVisitor) Time(key string) (time.Time, error) {
	raw, isNil, err := v.field(key)
	if err != nil {
		return time.Time{}, err
	}
	if isNil {
		return time.Time{}, nil
	}
	t, derr := v.translator.DecodeDate(raw)
	if derr != nil {
		return time.Time{}, derr.(*DecodeError).WithLocation(v.location(key))
	}
	return t, nil
}

// Nested decodes a JSON-encoded nested value into dst (a pointer),
// under the NestedJSON strategy; other nested strategies are rejected
// with UnsupportedType since the core does not define their wire
// layout (codable) or column mapping (flatten is exposed via Flatten
// instead, since it needs multiple RowVisitor calls).
func (v *RowVisitor) Nested(key string, dst any) error {
	raw, isNil, err := v.field(key)
	if err != nil {
		return err
	}
	if isNil {
		return nil
	}
	switch v.translator.Strategies.Nested.Kind {
	case NestedJSON:
		if derr := v.translator.DecodeNestedJSON(raw, dst); derr != nil {
			return derr.(*DecodeError).WithLocation(v.location(key))
		}
		return nil
	case NestedError:
		return newUnsupportedTypeErr("nested values are disabled by NestedErrorStrategy").WithLocation(v.location(key))
	default:
		return newUnsupportedTypeErr("nested strategy not supported by RowVisitor.Nested; use Flatten or String with a sub-path for flatten/codable").WithLocation(v.location(key))
	}
}

// Flatten reads a child field addressed as "parent<sep>child" under
// the NestedFlatten strategy.
func (v *RowVisitor) Flatten(parent, child string) (string, error) {
	sep := v.translator.Strategies.Nested.Separator
	return v.String(parent + sep + child)
}

// RowEmitter exposes one record's field emission to an Encodable's
// EncodeCSV method, matching the "emitter" capability from spec.md §9.
type RowEmitter struct {
	storage    *EncodingStorage
	translator *ValueTranslator
	path       []string
}

func newRowEmitter(storage *EncodingStorage, translator *ValueTranslator) *RowEmitter {
	return &RowEmitter{storage: storage, translator: translator}
}

// SetString stores key=value verbatim.
func (e *RowEmitter) SetString(key, value string) error {
	return e.storage.Set(key, value)
}

// SetBool stores key=v rendered under BoolEncoding.
func (e *RowEmitter) SetBool(key string, v bool) error {
	return e.storage.Set(key, e.translator.EncodeBool(v))
}

// SetInt stores key=v rendered as a decimal integer.
func (e *RowEmitter) SetInt(key string, v int64) error {
	return e.storage.Set(key, e.translator.EncodeInt64(v))
}

// SetUint stores key=v rendered as a decimal unsigned integer.
func (e *RowEmitter) SetUint(key string, v uint64) error {
	return e.storage.Set(key, e.translator.EncodeUint64(v))
}

// SetFloat stores key=v rendered under NumberEncoding.
func (e *RowEmitter) SetFloat(key string, v float64) error {
	return e.storage.Set(key, e.translator.EncodeFloat64(v))
}

// SetTime stores key=v rendered under DateEncoding.
func (e *RowEmitter) SetTime(key string, v time.Time) error {
	return e.storage.Set(key, e.translator.EncodeDate(v))
}

// SetNil stores the nil sentinel for key under NilEncoding.
func (e *RowEmitter) SetNil(key string) error {
	return e.storage.Set(key, e.translator.EncodeNil())
}

// SetNested stores key=JSON(v) under the NestedJSON strategy; other
// nested strategies are rejected with EncodeUnsupportedType since the
// core does not define their layout.
func (e *RowEmitter) SetNested(key string, v any) error {
	switch e.translator.Strategies.Nested.Kind {
	case NestedJSON:
		s, err := e.translator.EncodeNestedJSON(v)
		if err != nil {
			return err
		}
		return e.storage.Set(key, s)
	case NestedError:
		return &EncodeError{Kind: EncodeUnsupportedType, Message: "nested values are disabled by NestedErrorStrategy for key " + key}
	default:
		return &EncodeError{Kind: EncodeUnsupportedType, Message: "nested strategy not supported by RowEmitter.SetNested; use SetFlatten for flatten"}
	}
}

// SetFlatten stores a child field addressed as "parent<sep>child" under
// the NestedFlatten strategy.
func (e *RowEmitter) SetFlatten(parent, child, value string) error {
	sep := e.translator.Strategies.Nested.Separator
	return e.storage.Set(parent+sep+child, value)
}

// RowCodec binds the parser and the value translator to a record
// description: it decodes one RowView into a Decodable, and encodes
// one Encodable into an EncodingStorage.
type RowCodec struct {
	Dialect    Dialect
	Strategies StrategySet
	translator *ValueTranslator
}

// NewRowCodec builds a RowCodec for the given dialect and strategies.
func NewRowCodec(dialect Dialect, strategies StrategySet) *RowCodec {
	return &RowCodec{Dialect: dialect, Strategies: strategies, translator: NewValueTranslator(strategies)}
}

// DecodeRow decodes row into rec using headers for key→column lookup.
// rowIndex is the 1-based row number used for error location.
func (c *RowCodec) DecodeRow(row RowView, headers *HeaderMap, rowIndex int, rec Decodable) error {
	if c.Dialect.Mode == Strict {
		if row.QuoteInUnquotedField {
			return newParsingErr("quote character in unquoted field", rowIndex).WithLocation(Location{Row: rowIndex})
		}
		if c.Dialect.ExpectedFieldCount != NoExpectedFieldCount && row.FieldCount() != c.Dialect.ExpectedFieldCount {
			msg := "expected " + strconv.Itoa(c.Dialect.ExpectedFieldCount) + " fields but found " + strconv.Itoa(row.FieldCount())
			return newParsingErr(msg, rowIndex).WithLocation(Location{Row: rowIndex})
		}
	}
	if row.UnterminatedQuote {
		return newParsingErr("unterminated quote", rowIndex).WithLocation(Location{Row: rowIndex})
	}

	v := newRowVisitor(row, headers, c.translator, c.Dialect, rowIndex)
	return rec.DecodeCSV(v)
}

// EncodeRow encodes rec's fields into storage, freezing storage's key
// order if this is the first record to populate it.
func (c *RowCodec) EncodeRow(rec Encodable, storage *EncodingStorage) error {
	alreadyHadKeys := len(storage.Keys()) > 0
	e := newRowEmitter(storage, c.translator)
	if err := rec.EncodeCSV(e); err != nil {
		return err
	}
	storage.FillUntouched(c.translator.EncodeNil())
	if !alreadyHadKeys {
		storage.Freeze()
	}
	return nil
}
