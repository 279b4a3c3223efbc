package csvcodec

import (
	"time"

	"golang.org/x/text/language"
)

// DateDecodeKind enumerates the date decoding strategy family.
type DateDecodeKind int

const (
	DateDecodeDeferred DateDecodeKind = iota
	DateDecodeSecondsSince1970
	DateDecodeMillisecondsSince1970
	DateDecodeISO8601
	DateDecodeFormatted
	DateDecodeCustom
	DateDecodeFlexible
	DateDecodeFlexibleWithHint
	DateDecodeLocaleAware
)

// DateStyle selects the formality of a locale-aware date rendering.
type DateStyle int

const (
	DateStyleNumeric DateStyle = iota
	DateStyleAbbreviated
	DateStyleLong
)

// DateDecodeFunc is a user-supplied date parser for DateDecodeCustom.
type DateDecodeFunc func(field string) (time.Time, error)

// DateDecodeStrategy is a tagged choice for decoding a date field.
type DateDecodeStrategy struct {
	Kind    DateDecodeKind
	Pattern string // Go reference-time layout, used by Formatted and as the preferred pattern for FlexibleWithHint
	Locale  language.Tag
	Style   DateStyle
	Custom  DateDecodeFunc
}

func DateDecodeDeferredStrategy() DateDecodeStrategy {
	return DateDecodeStrategy{Kind: DateDecodeDeferred}
}
func DateDecodeSecondsStrategy() DateDecodeStrategy {
	return DateDecodeStrategy{Kind: DateDecodeSecondsSince1970}
}
func DateDecodeMillisStrategy() DateDecodeStrategy {
	return DateDecodeStrategy{Kind: DateDecodeMillisecondsSince1970}
}
func DateDecodeISO8601Strategy() DateDecodeStrategy {
	return DateDecodeStrategy{Kind: DateDecodeISO8601}
}
func DateDecodeFormattedStrategy(pattern string) DateDecodeStrategy {
	return DateDecodeStrategy{Kind: DateDecodeFormatted, Pattern: pattern}
}
func DateDecodeFlexibleStrategy() DateDecodeStrategy {
	return DateDecodeStrategy{Kind: DateDecodeFlexible}
}
func DateDecodeFlexibleWithHintStrategy(preferred string) DateDecodeStrategy {
	return DateDecodeStrategy{Kind: DateDecodeFlexibleWithHint, Pattern: preferred}
}
func DateDecodeLocaleAwareStrategy(tag language.Tag, style DateStyle) DateDecodeStrategy {
	return DateDecodeStrategy{Kind: DateDecodeLocaleAware, Locale: tag, Style: style}
}
func DateDecodeCustomStrategy(fn DateDecodeFunc) DateDecodeStrategy {
	return DateDecodeStrategy{Kind: DateDecodeCustom, Custom: fn}
}

// DateEncodeKind enumerates the date encoding strategy family.
type DateEncodeKind int

const (
	DateEncodeSecondsSince1970 DateEncodeKind = iota
	DateEncodeMillisecondsSince1970
	DateEncodeISO8601
	DateEncodeFormatted
	DateEncodeLocaleAware
	DateEncodeCustom
)

// DateEncodeFunc renders a time.Time for DateEncodeCustom.
type DateEncodeFunc func(time.Time) string

// DateEncodeStrategy is a tagged choice for encoding a date field.
type DateEncodeStrategy struct {
	Kind    DateEncodeKind
	Pattern string
	Locale  language.Tag
	Style   DateStyle
	Custom  DateEncodeFunc
}

func DateEncodeISO8601Strategy() DateEncodeStrategy {
	return DateEncodeStrategy{Kind: DateEncodeISO8601}
}
func DateEncodeSecondsStrategy() DateEncodeStrategy {
	return DateEncodeStrategy{Kind: DateEncodeSecondsSince1970}
}
func DateEncodeMillisStrategy() DateEncodeStrategy {
	return DateEncodeStrategy{Kind: DateEncodeMillisecondsSince1970}
}
func DateEncodeFormattedStrategy(pattern string) DateEncodeStrategy {
	return DateEncodeStrategy{Kind: DateEncodeFormatted, Pattern: pattern}
}
func DateEncodeLocaleAwareStrategy(tag language.Tag, style DateStyle) DateEncodeStrategy {
	return DateEncodeStrategy{Kind: DateEncodeLocaleAware, Locale: tag, Style: style}
}
func DateEncodeCustomStrategy(fn DateEncodeFunc) DateEncodeStrategy {
	return DateEncodeStrategy{Kind: DateEncodeCustom, Custom: fn}
}

// NumberDecodeKind enumerates the numeric decoding strategy family.
type NumberDecodeKind int

const (
	NumberDecodeStandard NumberDecodeKind = iota
	NumberDecodeFlexible
	NumberDecodeLocale
	NumberDecodeParseStrategy
	NumberDecodeCurrency
)

// NumberDecodeStrategy is a tagged choice for decoding a numeric field.
type NumberDecodeStrategy struct {
	Kind         NumberDecodeKind
	Locale       language.Tag
	CurrencyCode string // ISO 4217 code for NumberDecodeCurrency; empty means infer from symbol
}

func NumberDecodeStandardStrategy() NumberDecodeStrategy {
	return NumberDecodeStrategy{Kind: NumberDecodeStandard}
}
func NumberDecodeFlexibleStrategy() NumberDecodeStrategy {
	return NumberDecodeStrategy{Kind: NumberDecodeFlexible}
}
func NumberDecodeLocaleStrategy(tag language.Tag) NumberDecodeStrategy {
	return NumberDecodeStrategy{Kind: NumberDecodeLocale, Locale: tag}
}
func NumberDecodeParseStrategyFor(tag language.Tag) NumberDecodeStrategy {
	return NumberDecodeStrategy{Kind: NumberDecodeParseStrategy, Locale: tag}
}
func NumberDecodeCurrencyStrategy(code string, tag language.Tag) NumberDecodeStrategy {
	return NumberDecodeStrategy{Kind: NumberDecodeCurrency, CurrencyCode: code, Locale: tag}
}

// NumberEncodeKind enumerates the numeric encoding strategy family.
type NumberEncodeKind int

const (
	NumberEncodeStandard NumberEncodeKind = iota
	NumberEncodeLocale
	NumberEncodeCustom
)

// NumberEncodeFunc renders a float64 for NumberEncodeCustom.
type NumberEncodeFunc func(float64) string

// NumberEncodeStrategy is a tagged choice for encoding a numeric field.
type NumberEncodeStrategy struct {
	Kind   NumberEncodeKind
	Locale language.Tag
	Custom NumberEncodeFunc
}

func NumberEncodeStandardStrategy() NumberEncodeStrategy {
	return NumberEncodeStrategy{Kind: NumberEncodeStandard}
}
func NumberEncodeLocaleStrategy(tag language.Tag) NumberEncodeStrategy {
	return NumberEncodeStrategy{Kind: NumberEncodeLocale, Locale: tag}
}
func NumberEncodeCustomStrategy(fn NumberEncodeFunc) NumberEncodeStrategy {
	return NumberEncodeStrategy{Kind: NumberEncodeCustom, Custom: fn}
}

// BoolDecodeKind enumerates the boolean decoding strategy family.
type BoolDecodeKind int

const (
	BoolDecodeStandard BoolDecodeKind = iota
	BoolDecodeFlexible
	BoolDecodeCustom
)

// BoolDecodeStrategy is a tagged choice for decoding a boolean field.
type BoolDecodeStrategy struct {
	Kind     BoolDecodeKind
	TrueSet  []string
	FalseSet []string
}

func BoolDecodeStandardStrategy() BoolDecodeStrategy {
	return BoolDecodeStrategy{Kind: BoolDecodeStandard}
}
func BoolDecodeFlexibleStrategy() BoolDecodeStrategy {
	return BoolDecodeStrategy{Kind: BoolDecodeFlexible}
}
func BoolDecodeCustomStrategy(trueSet, falseSet []string) BoolDecodeStrategy {
	return BoolDecodeStrategy{Kind: BoolDecodeCustom, TrueSet: trueSet, FalseSet: falseSet}
}

// BoolEncodeKind enumerates the boolean encoding strategy family.
type BoolEncodeKind int

const (
	BoolEncodeNumeric BoolEncodeKind = iota
	BoolEncodeTrueFalse
	BoolEncodeYesNo
	BoolEncodeCustom
)

// BoolEncodeStrategy is a tagged choice for encoding a boolean field.
type BoolEncodeStrategy struct {
	Kind  BoolEncodeKind
	True  string
	False string
}

func BoolEncodeNumericStrategy() BoolEncodeStrategy {
	return BoolEncodeStrategy{Kind: BoolEncodeNumeric}
}
func BoolEncodeTrueFalseStrategy() BoolEncodeStrategy {
	return BoolEncodeStrategy{Kind: BoolEncodeTrueFalse}
}
func BoolEncodeYesNoStrategy() BoolEncodeStrategy {
	return BoolEncodeStrategy{Kind: BoolEncodeYesNo}
}
func BoolEncodeCustomStrategy(t, f string) BoolEncodeStrategy {
	return BoolEncodeStrategy{Kind: BoolEncodeCustom, True: t, False: f}
}

// NilDecodeKind enumerates the nil decoding strategy family.
type NilDecodeKind int

const (
	NilDecodeEmptyString NilDecodeKind = iota
	NilDecodeNullLiteral
	NilDecodeCustom
)

// NilDecodeStrategy is a tagged choice for recognizing a nil field.
type NilDecodeStrategy struct {
	Kind   NilDecodeKind
	Custom []string
}

func NilDecodeEmptyStringStrategy() NilDecodeStrategy {
	return NilDecodeStrategy{Kind: NilDecodeEmptyString}
}
func NilDecodeNullLiteralStrategy() NilDecodeStrategy {
	return NilDecodeStrategy{Kind: NilDecodeNullLiteral}
}
func NilDecodeCustomStrategy(set []string) NilDecodeStrategy {
	return NilDecodeStrategy{Kind: NilDecodeCustom, Custom: set}
}

// NilEncodeKind enumerates the nil encoding strategy family.
type NilEncodeKind int

const (
	NilEncodeEmptyString NilEncodeKind = iota
	NilEncodeNullLiteral
	NilEncodeCustom
)

// NilEncodeStrategy is a tagged choice for rendering a nil field.
type NilEncodeStrategy struct {
	Kind   NilEncodeKind
	Custom string
}

func NilEncodeEmptyStringStrategy() NilEncodeStrategy {
	return NilEncodeStrategy{Kind: NilEncodeEmptyString}
}
func NilEncodeNullLiteralStrategy() NilEncodeStrategy {
	return NilEncodeStrategy{Kind: NilEncodeNullLiteral}
}
func NilEncodeCustomStrategy(s string) NilEncodeStrategy {
	return NilEncodeStrategy{Kind: NilEncodeCustom, Custom: s}
}

// KeyDecodeKind enumerates the header-key case-style decoding strategy family.
type KeyDecodeKind int

const (
	KeyDecodeDefault KeyDecodeKind = iota
	KeyDecodeSnake
	KeyDecodeKebab
	KeyDecodeScreaming
	KeyDecodePascal
	KeyDecodeCustom
)

// KeyDecodeFunc transforms a raw header name on the decode side.
type KeyDecodeFunc func(string) string

// KeyDecodeStrategy is a tagged choice for decode-side key transformation.
type KeyDecodeStrategy struct {
	Kind   KeyDecodeKind
	Custom KeyDecodeFunc
}

func KeyDecodeDefaultStrategy() KeyDecodeStrategy   { return KeyDecodeStrategy{Kind: KeyDecodeDefault} }
func KeyDecodeSnakeStrategy() KeyDecodeStrategy      { return KeyDecodeStrategy{Kind: KeyDecodeSnake} }
func KeyDecodeKebabStrategy() KeyDecodeStrategy      { return KeyDecodeStrategy{Kind: KeyDecodeKebab} }
func KeyDecodeScreamingStrategy() KeyDecodeStrategy  { return KeyDecodeStrategy{Kind: KeyDecodeScreaming} }
func KeyDecodePascalStrategy() KeyDecodeStrategy     { return KeyDecodeStrategy{Kind: KeyDecodePascal} }
func KeyDecodeCustomStrategy(fn KeyDecodeFunc) KeyDecodeStrategy {
	return KeyDecodeStrategy{Kind: KeyDecodeCustom, Custom: fn}
}

// KeyEncodeKind enumerates the header-key case-style encoding strategy family.
type KeyEncodeKind int

const (
	KeyEncodeDefault KeyEncodeKind = iota
	KeyEncodeSnake
	KeyEncodeKebab
	KeyEncodeScreaming
	KeyEncodeCustom
)

// KeyEncodeFunc transforms a record key into a header name on the encode side.
type KeyEncodeFunc func(string) string

// KeyEncodeStrategy is a tagged choice for encode-side key transformation.
type KeyEncodeStrategy struct {
	Kind   KeyEncodeKind
	Custom KeyEncodeFunc
}

func KeyEncodeDefaultStrategy() KeyEncodeStrategy { return KeyEncodeStrategy{Kind: KeyEncodeDefault} }
func KeyEncodeSnakeStrategy() KeyEncodeStrategy    { return KeyEncodeStrategy{Kind: KeyEncodeSnake} }
func KeyEncodeKebabStrategy() KeyEncodeStrategy     { return KeyEncodeStrategy{Kind: KeyEncodeKebab} }
func KeyEncodeScreamingStrategy() KeyEncodeStrategy { return KeyEncodeStrategy{Kind: KeyEncodeScreaming} }
func KeyEncodeCustomStrategy(fn KeyEncodeFunc) KeyEncodeStrategy {
	return KeyEncodeStrategy{Kind: KeyEncodeCustom, Custom: fn}
}

// NestedKind enumerates the nested-value strategy family, shared by
// encode and decode since both sides agree on the same representation.
type NestedKind int

const (
	NestedError NestedKind = iota
	NestedFlatten
	NestedJSON
	NestedCodable
)

// NestedStrategy is a tagged choice for handling nested record values.
type NestedStrategy struct {
	Kind      NestedKind
	Separator string // used by NestedFlatten
}

func NestedErrorStrategy() NestedStrategy    { return NestedStrategy{Kind: NestedError} }
func NestedFlattenStrategy(sep string) NestedStrategy {
	return NestedStrategy{Kind: NestedFlatten, Separator: sep}
}
func NestedJSONStrategy() NestedStrategy    { return NestedStrategy{Kind: NestedJSON} }
func NestedCodableStrategy() NestedStrategy { return NestedStrategy{Kind: NestedCodable} }

// StrategySet is the immutable bundle of conversion policies consumed
// by a ValueTranslator and, through it, a RowCodec.
type StrategySet struct {
	DateDecoding   DateDecodeStrategy
	DateEncoding   DateEncodeStrategy
	NumberDecoding NumberDecodeStrategy
	NumberEncoding NumberEncodeStrategy
	BoolDecoding   BoolDecodeStrategy
	BoolEncoding   BoolEncodeStrategy
	NilDecoding    NilDecodeStrategy
	NilEncoding    NilEncodeStrategy
	KeyDecoding    KeyDecodeStrategy
	KeyEncoding    KeyEncodeStrategy
	Nested         NestedStrategy
	Locale         LocaleProvider
}

// DefaultStrategies returns the spec's default strategy bundle:
// ISO-8601 dates, standard numbers/bools, empty-string nils, default
// keys, and an error on nested values.
func DefaultStrategies() StrategySet {
	return StrategySet{
		DateDecoding:   DateDecodeISO8601Strategy(),
		DateEncoding:   DateEncodeISO8601Strategy(),
		NumberDecoding: NumberDecodeStandardStrategy(),
		NumberEncoding: NumberEncodeStandardStrategy(),
		BoolDecoding:   BoolDecodeStandardStrategy(),
		BoolEncoding:   BoolEncodeNumericStrategy(),
		NilDecoding:    NilDecodeEmptyStringStrategy(),
		NilEncoding:    NilEncodeEmptyStringStrategy(),
		KeyDecoding:    KeyDecodeDefaultStrategy(),
		KeyEncoding:    KeyEncodeDefaultStrategy(),
		Nested:         NestedErrorStrategy(),
		Locale:         BuiltinLocales(),
	}
}
