// Package workspace organizes values into a two-level grid of zones and chunks and
// pages it into size-bounded units for transport.
//
// A Workspace is addressed implicitly by position. ToAddressedChunkArray flattens it
// into explicitly addressed (zone, chunk, value) triples in zone-major, chunk-minor
// order, and FromAddressedChunks rebuilds a dense Workspace from any such array,
// sorted or not, filling gaps with the empty Optional.
//
// # Paging
//
// Pages greedily partitions the flattened sequence without reordering. Each value is
// costed by value.Value.Size. When adding a value to a non-empty page would take the
// page total past the limit, the page is closed and the value starts the next one.
// A value larger than the limit occupies a page by itself. Every page except the last
// is tagged format.ChunkingChunk; the last is tagged format.ChunkingEOF.
//
// The receiving side feeds pages, in any order, to an Assembler which rebuilds the
// Workspace once every page up to the end-of-file page has arrived.
//
// All functions are pure and safe for concurrent use on independent inputs.
package workspace
