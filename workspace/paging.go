package workspace

import (
	"iter"

	"github.com/arloliu/candy/format"
)

// Page is one size-bounded unit of a paged workspace.
type Page struct {
	// ID is the 0-based page number.
	ID uint64
	// Type is format.ChunkingEOF for the last page and format.ChunkingChunk otherwise.
	Type format.ChunkingType
	// Chunks holds the addressed chunks of the page in workspace order.
	Chunks AddressedChunkArray
}

// IsEOF reports whether p is the last page.
func (p Page) IsEOF() bool {
	return p.Type == format.ChunkingEOF
}

// Pages returns an iterator over the pages of ws for the given maximum page size.
//
// The partition is greedy and single-pass. A value is added to the current page
// unless the page is non-empty and the value would take its total past maxPageSize;
// in that case the page is closed and the value starts the next page. An empty
// workspace yields a single empty EOF page.
//
// The partition is deterministic: repeated calls yield identical pages.
func (ws Workspace) Pages(maxPageSize uint64) iter.Seq[Page] {
	return func(yield func(Page) bool) {
		var (
			id    uint64
			total uint64
			cur   AddressedChunkArray
		)

		for zi, zone := range ws {
			for ci, chunk := range zone {
				size := chunk.Size()
				if len(cur) > 0 && (total > maxPageSize || size > maxPageSize-total) {
					if !yield(Page{ID: id, Type: format.ChunkingChunk, Chunks: cur}) {
						return
					}
					id++
					total = 0
					cur = nil
				}
				cur = append(cur, AddressedChunk{Zone: uint64(zi), Chunk: uint64(ci), Value: chunk}) //nolint:gosec
				total += size
			}
		}

		yield(Page{ID: id, Type: format.ChunkingEOF, Chunks: cur})
	}
}

// GetWorkspaceChunkSize returns the number of pages ws splits into for maxPageSize.
// It is always at least one.
func (ws Workspace) GetWorkspaceChunkSize(maxPageSize uint64) uint64 {
	var n uint64
	for range ws.Pages(maxPageSize) {
		n++
	}

	return n
}

// GetWorkspaceChunk returns the chunks of page pageID for maxPageSize, tagged
// format.ChunkingChunk if pages follow it or format.ChunkingEOF if it is the last.
//
// A pageID past the last page returns format.ChunkingEOF with no chunks.
func (ws Workspace) GetWorkspaceChunk(pageID, maxPageSize uint64) (format.ChunkingType, AddressedChunkArray) {
	for page := range ws.Pages(maxPageSize) {
		if page.ID == pageID {
			return page.Type, page.Chunks
		}
	}

	return format.ChunkingEOF, AddressedChunkArray{}
}
