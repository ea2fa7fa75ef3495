// Package value implements the dynamic tagged-union value model.
//
// A Value holds exactly one of a closed set of kinds (see format.Kind): fixed-width
// and arbitrary-precision integers, floats, text, booleans, raw blobs, opaque
// identifiers, optionals, numeric vectors, heterogeneous arrays, named-field records,
// and associative maps and sets. The zero Value is the Empty kind.
//
// # Mutability
//
// Bytes, Nats, Floats and Array collections carry a frozen/thawed tag. The tag is
// orthogonal to the payload: it is preserved by every transformation that keeps the
// same logical content, and it is ignored by Equal and Hash. A Value never aliases a
// thawed collection owned by the caller; constructors and accessors copy thawed data.
//
// # Encodings
//
// Every Value offers three renderings:
//
//   - ToBlob: the canonical byte encoding (big-endian integers, 4-byte code points for text).
//   - JSON: canonical JSON text, numbers never carry grouping separators.
//   - String: a human/debug rendering, arbitrary-precision integers grouped by underscores.
//
// Size estimates the encoded byte length of a value and serves as the cost function
// of workspace paging.
//
// # Thread Safety
//
// A Value is immutable once constructed and is safe for concurrent reads.
package value
