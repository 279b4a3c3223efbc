package csvcodec

import "golang.org/x/text/language"

// LocaleFormat describes the grouping and decimal marks, and month/day
// name lists, needed to parse or render numbers and dates for one
// locale. It is intentionally small: enough to cover the documented
// locale-aware strategies, not a full CLDR implementation.
type LocaleFormat struct {
	Tag             language.Tag
	GroupingSep     byte
	DecimalSep      byte
	CurrencySymbols []string // symbols this locale commonly prefixes/suffixes onto numbers
	MonthsShort     [12]string
	MonthsLong      [12]string
}

// LocaleProvider resolves a BCP-47 tag to a LocaleFormat. Callers may
// substitute their own implementation (e.g. backed by full CLDR data)
// to keep the core testable without a hard dependency on any one
// locale database.
type LocaleProvider interface {
	Format(tag language.Tag) (LocaleFormat, bool)
}

type builtinLocales map[string]LocaleFormat

// Format implements LocaleProvider by matching the best available
// parent tag (e.g. "de-AT" falls back to "de").
func (b builtinLocales) Format(tag language.Tag) (LocaleFormat, bool) {
	for t := tag; ; {
		if lf, ok := b[t.String()]; ok {
			return lf, true
		}
		base, conf := t.Base()
		if conf == language.No {
			break
		}
		parent, err := language.Parse(base.String())
		if err != nil || parent == t {
			break
		}
		t = parent
	}
	return LocaleFormat{}, false
}

// BuiltinLocales returns the small locale table shipped with the
// package, covering the locales exercised by the documented
// flexible-number and flexible-date strategies.
func BuiltinLocales() LocaleProvider {
	return builtinLocales{
		"en-US": {
			Tag: language.AmericanEnglish, GroupingSep: ',', DecimalSep: '.',
			CurrencySymbols: []string{"$", "USD"},
			MonthsShort:     [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
			MonthsLong:      [12]string{"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"},
		},
		"en-GB": {
			Tag: language.BritishEnglish, GroupingSep: ',', DecimalSep: '.',
			CurrencySymbols: []string{"£", "GBP"},
			MonthsShort:     [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
			MonthsLong:      [12]string{"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"},
		},
		"de": {
			Tag: language.German, GroupingSep: '.', DecimalSep: ',',
			CurrencySymbols: []string{"€", "EUR"},
			MonthsShort:     [12]string{"Jan", "Feb", "Mär", "Apr", "Mai", "Jun", "Jul", "Aug", "Sep", "Okt", "Nov", "Dez"},
			MonthsLong:      [12]string{"Januar", "Februar", "März", "April", "Mai", "Juni", "Juli", "August", "September", "Oktober", "November", "Dezember"},
		},
		"fr": {
			Tag: language.French, GroupingSep: ' ', DecimalSep: ',',
			CurrencySymbols: []string{"€", "EUR"},
			MonthsShort:     [12]string{"janv.", "févr.", "mars", "avr.", "mai", "juin", "juil.", "août", "sept.", "oct.", "nov.", "déc."},
			MonthsLong:      [12]string{"janvier", "février", "mars", "avril", "mai", "juin", "juillet", "août", "septembre", "octobre", "novembre", "décembre"},
		},
		"it": {
			Tag: language.Italian, GroupingSep: '.', DecimalSep: ',',
			CurrencySymbols: []string{"€", "EUR"},
			MonthsShort:     [12]string{"gen", "feb", "mar", "apr", "mag", "giu", "lug", "ago", "set", "ott", "nov", "dic"},
			MonthsLong:      [12]string{"gennaio", "febbraio", "marzo", "aprile", "maggio", "giugno", "luglio", "agosto", "settembre", "ottobre", "novembre", "dicembre"},
		},
		"ja": {
			Tag: language.Japanese, GroupingSep: ',', DecimalSep: '.',
			CurrencySymbols: []string{"¥", "JPY"},
			MonthsShort:     [12]string{"1月", "2月", "3月", "4月", "5月", "6月", "7月", "8月", "9月", "10月", "11月", "12月"},
			MonthsLong:      [12]string{"1月", "2月", "3月", "4月", "5月", "6月", "7月", "8月", "9月", "10月", "11月", "12月"},
		},
		"hi": {
			Tag: language.Hindi, GroupingSep: ',', DecimalSep: '.',
			CurrencySymbols: []string{"₹", "INR"},
			MonthsShort:     [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
			MonthsLong:      [12]string{"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"},
		},
	}
}
