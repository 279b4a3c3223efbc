package csvcodec

import "strconv"

// HeaderMap is the frozen, ordered mapping from header name to
// zero-based column index, built once per decode and immutable
// thereafter.
type HeaderMap struct {
	Names []string
	index map[string]int
}

// NewHeaderMap builds a HeaderMap from an ordered header list. Later
// duplicate names win the index lookup (matching insertion order
// shadowing), while Names preserves every original entry.
func NewHeaderMap(names []string) *HeaderMap {
	idx := make(map[string]int, len(names))
	for i, n := range names {
		idx[n] = i
	}
	return &HeaderMap{Names: names, index: idx}
}

// ColumnIndex looks up the zero-based column index for name.
func (h *HeaderMap) ColumnIndex(name string) (int, bool) {
	i, ok := h.index[name]
	return i, ok
}

// Keys returns the header names in column order.
func (h *HeaderMap) Keys() []string { return h.Names }

// HeaderResolverConfig bundles the inputs to header resolution beyond
// the raw first row, per spec.md §4.4.
type HeaderResolverConfig struct {
	HasHeaders    bool
	IndexMapping  map[int]string // explicit column index -> header name
	ColumnOrder   []string       // descriptor supplied by the record type for headerless positional decoding
	ColumnMapping map[string]string
	KeyDecoding   KeyDecodeStrategy
}

// ResolveHeader picks the header list using the fixed precedence from
// spec.md §4.4:
//  1. IndexMapping, if non-empty, always wins (even when a raw header
//     row exists).
//  2. Else, if HasHeaders, the raw first row, each name replaced by its
//     ColumnMapping entry if it has one, else transformed by KeyDecoding.
//  3. Else, if ColumnOrder is present, it is emitted verbatim.
//  4. Else, generated "column0".."column{N-1}" names.
//
// fieldCount is used only to size the generated-name fallback (step 4);
// the IndexMapping header is always max(key)+1 names long.
func ResolveHeader(cfg HeaderResolverConfig, rawFirstRow []string, fieldCount int) []string {
	if len(cfg.IndexMapping) > 0 {
		maxKey := -1
		for k := range cfg.IndexMapping {
			if k > maxKey {
				maxKey = k
			}
		}
		m := maxKey + 1
		names := make([]string, m)
		for i := 0; i < m; i++ {
			if name, ok := cfg.IndexMapping[i]; ok {
				names[i] = name
			} else {
				names[i] = "column" + strconv.Itoa(i)
			}
		}
		return names
	}

	if cfg.HasHeaders {
		names := make([]string, len(rawFirstRow))
		for i, raw := range rawFirstRow {
			if mapped, ok := cfg.ColumnMapping[raw]; ok {
				names[i] = mapped
				continue
			}
			names[i] = ApplyKeyDecodeStrategy(raw, cfg.KeyDecoding)
		}
		return names
	}

	if len(cfg.ColumnOrder) > 0 {
		return append([]string(nil), cfg.ColumnOrder...)
	}

	names := make([]string, fieldCount)
	for i := range names {
		names[i] = "column" + strconv.Itoa(i)
	}
	return names
}
