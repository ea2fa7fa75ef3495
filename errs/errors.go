// Package errs defines the sentinel errors returned by candy packages.
//
// Errors are wrapped with additional context using fmt.Errorf and the %w verb,
// so callers should always test for them with errors.Is.
package errs

import "errors"

// Value conversion errors.
var (
	// ErrNotRepresentable is returned when the source kind cannot produce the requested scalar.
	ErrNotRepresentable = errors.New("value not representable")
	// ErrOverflow is returned when a numeric value exists but does not fit the target width.
	ErrOverflow = errors.New("numeric overflow")
	// ErrUnsupported is returned when an operation is undefined for the value kind.
	ErrUnsupported = errors.New("unsupported operation for kind")
	// ErrImmutable is returned when mutating a frozen collection.
	ErrImmutable = errors.New("collection is frozen")
	// ErrIndexOutOfRange is returned by collection mutators given an invalid position.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrInvalidOpaqueID is returned when parsing a malformed opaque identifier text.
	ErrInvalidOpaqueID = errors.New("invalid opaque id")
)

// Workspace and paging errors.
var (
	// ErrMalformedAddress is returned when an addressed chunk carries an invalid address.
	ErrMalformedAddress = errors.New("malformed chunk address")
	// ErrPageOutOfRange is returned when a page id lies beyond the end-of-file page.
	ErrPageOutOfRange = errors.New("page id out of range")
	// ErrIncompletePageSet is returned when assembling a workspace before every page arrived.
	ErrIncompletePageSet = errors.New("incomplete page set")
	// ErrConflictingPage is returned when a page id is received twice with different content.
	ErrConflictingPage = errors.New("conflicting page")
)

// Stable representation errors.
var (
	// ErrUnmirroredKind is returned when a kind has no correspondent on the other side
	// of the stable/unstable mapping.
	ErrUnmirroredKind = errors.New("kind has no stable mirror")
	// ErrInvalidStableValue is returned when a decoded stable value is internally inconsistent.
	ErrInvalidStableValue = errors.New("invalid stable value")
)

// Frame errors.
var (
	// ErrInvalidHeaderSize is returned when a frame header is shorter than HeaderSize.
	ErrInvalidHeaderSize = errors.New("invalid header size")
	// ErrInvalidMagicNumber is returned when a frame does not start with the expected magic number.
	ErrInvalidMagicNumber = errors.New("invalid magic number")
	// ErrInvalidVersion is returned for frames written by an unknown format version.
	ErrInvalidVersion = errors.New("invalid frame version")
	// ErrInvalidCompression is returned for an unknown compression type.
	ErrInvalidCompression = errors.New("invalid compression type")
	// ErrInvalidChunkingType is returned for an unknown chunking type.
	ErrInvalidChunkingType = errors.New("invalid chunking type")
	// ErrChecksumMismatch is returned when the payload checksum does not match the header.
	ErrChecksumMismatch = errors.New("checksum mismatch")
	// ErrPayloadSizeMismatch is returned when the payload length differs from the header.
	ErrPayloadSizeMismatch = errors.New("payload size mismatch")
)

// Store errors.
var (
	// ErrNotFound is returned when a key does not exist in the store.
	ErrNotFound = errors.New("not found")
	// ErrInvalidKey is returned for empty keys.
	ErrInvalidKey = errors.New("invalid key")
	// ErrStoreClosed is returned when using a closed store.
	ErrStoreClosed = errors.New("store closed")
)
