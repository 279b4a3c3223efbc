// Package csvcodec is a type-directed CSV codec for Go.
//
// It maps typed record values to and from RFC-4180-shaped byte streams
// under configurable dialect and conversion policies. The package is
// organized around four collaborating pieces:
//
//   - a zero-copy streaming parser ([Parser]) that turns a byte buffer
//     into [RowView] values holding field slices into the original
//     buffer,
//   - a per-field [ValueTranslator] that applies locale- and
//     typo-aware strategies for dates, numbers, booleans, nils, and
//     nested structures,
//   - a type-directed [RowCodec] that binds the parser and translator
//     to a record type through the [Decodable]/[Encodable]
//     capabilities, and
//   - a chunked [ParallelDecoder]-style set of functions that split a
//     large input along safe row boundaries and decode partitions
//     concurrently.
//
// Record types participate by implementing [Decodable] and/or
// [Encodable] rather than through reflection; this mirrors the
// emitter/visitor split described for hand-written or generated CSV
// bindings.
package csvcodec
