// Package wire defines the CBOR wire format for instants and ranges.
//
// Values are encoded as CBOR (RFC 8949) maps with integer keys. The encoder
// is deterministic: keys are sorted canonically and indefinite lengths are
// never written, so equal values always produce equal bytes.
//
// # Payloads
//
//   - Instant: {1: milliseconds since the Unix epoch}
//   - Range: {1: start, 2: end, 3: unit name, 4: abbreviated text}
//
// A decoded Range is rebuilt from its bounds and unit. The text is carried
// for readers that do not run the engine; a text that disagrees with the
// rebuilt range is rejected.
//
// # Envelopes
//
// Streams carry envelopes {0: format version, 1: kind, 2: payload}.
// Envelopes written by a different major version are rejected; newer minor
// versions are read, ignoring unknown keys.
//
// # Files
//
// A period file is a plain concatenation of envelopes. File appends to one
// and FileReader streams it back, optionally through a Filter.
package wire
