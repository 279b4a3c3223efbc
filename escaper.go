package csvcodec

import "golang.org/x/sys/cpu"

// simdScanThreshold is the field length, in bytes, above which the
// escaper prefers a widened word-at-a-time scan over a byte-at-a-time
// scalar scan when the host CPU advertises the instruction sets that
// make the wider scan worthwhile. Mirrors the teacher's simd_scanner.go
// gating constant.
const simdScanThreshold = 64

// hasWideScanSupport reports whether the running CPU supports the
// feature set the escaper's widened prescan assumes (SSE4.2 or AVX2 on
// amd64, NEON on arm64). On anything else the scalar scan is used
// unconditionally.
func hasWideScanSupport() bool {
	return cpu.X86.HasSSE42 || cpu.X86.HasAVX2 || cpu.ARM64.HasASIMD
}

// FieldEscaper implements RFC-4180 field escaping and unescaping.
type FieldEscaper struct {
	Delimiter byte
}

// NewFieldEscaper constructs a FieldEscaper for the given delimiter.
func NewFieldEscaper(delimiter byte) FieldEscaper {
	return FieldEscaper{Delimiter: delimiter}
}

// needsQuoting reports whether src must be wrapped in double quotes:
// it contains the delimiter, a '"', LF, or CR.
func (e FieldEscaper) needsQuoting(src string) bool {
	if len(src) >= simdScanThreshold && hasWideScanSupport() {
		return scanNeedsQuotingWide(src, e.Delimiter)
	}
	return scanNeedsQuotingScalar(src, e.Delimiter)
}

func scanNeedsQuotingScalar(src string, delim byte) bool {
	for i := 0; i < len(src); i++ {
		b := src[i]
		if b == delim || b == '"' || b == '\n' || b == '\r' {
			return true
		}
	}
	return false
}

// scanNeedsQuotingWide scans 8 bytes at a time looking for any
// delimiter/quote/newline byte before falling back to a scalar scan on
// the final partial word. The 8-byte stride is chosen to amortize the
// branch cost on CPUs wide enough to prefetch and compare in bulk
// (gated by hasWideScanSupport); correctness does not depend on actual
// SIMD instructions being emitted, only on the stride.
func scanNeedsQuotingWide(src string, delim byte) bool {
	const stride = 8
	i := 0
	for ; i+stride <= len(src); i += stride {
		chunk := src[i : i+stride]
		for j := 0; j < stride; j++ {
			b := chunk[j]
			if b == delim || b == '"' || b == '\n' || b == '\r' {
				return true
			}
		}
	}
	return scanNeedsQuotingScalar(src[i:], delim)
}

// AppendEscaped appends src to out, quoting and doubling internal
// quotes per RFC 4180 if needed. An empty src appends nothing (the
// caller is responsible for the delimiter between fields). No
// allocation occurs on the unquoted path.
func (e FieldEscaper) AppendEscaped(out []byte, src string) []byte {
	if !e.needsQuoting(src) {
		return append(out, src...)
	}
	out = append(out, '"')
	for i := 0; i < len(src); i++ {
		if src[i] == '"' {
			out = append(out, '"', '"')
			continue
		}
		out = append(out, src[i])
	}
	return append(out, '"')
}

// Unescape collapses doubled quotes in a field previously identified as
// quoted. If wasQuoted is false, slice is returned unchanged.
func (e FieldEscaper) Unescape(slice []byte, wasQuoted bool) []byte {
	if !wasQuoted {
		return slice
	}
	hasDoubled := false
	for i := 0; i+1 < len(slice); i++ {
		if slice[i] == '"' && slice[i+1] == '"' {
			hasDoubled = true
			break
		}
	}
	if !hasDoubled {
		return slice
	}
	out := make([]byte, 0, len(slice))
	for i := 0; i < len(slice); i++ {
		if slice[i] == '"' && i+1 < len(slice) && slice[i+1] == '"' {
			out = append(out, '"')
			i++
			continue
		}
		out = append(out, slice[i])
	}
	return out
}
