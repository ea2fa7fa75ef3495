// Package store persists candy values across process restarts.
//
// A Store wraps a bbolt database file. Values are stabilized before they are written
// and destabilized after they are read, so a value read after reopening the store is
// equal to the value written, frozen/thawed tags included.
//
// Every persisted record is framed as:
//
//	+----------------------+------------------------------+
//	| header (16 bytes)    | compressed MessagePack body  |
//	+----------------------+------------------------------+
//
// The header holds a magic number and flags, the format version, the compression
// type, the body length and the xxHash64 checksum of the body. See RecordHeader.
//
// Named values live in one bucket. Each workspace is a nested bucket keyed by the
// big-endian zone and chunk index of every chunk, so a workspace reloads in
// zone-major, chunk-minor order.
//
// # Thread Safety
//
// A Store is safe for concurrent use. bbolt serializes writers; readers run in
// parallel.
package store
