package workspace

import (
	"fmt"
	"maps"
	"slices"

	"github.com/arloliu/candy/errs"
	"github.com/arloliu/candy/format"
)

// Assembler collects pages received in any order and rebuilds the Workspace.
//
// Note: an Assembler is NOT safe for concurrent use.
type Assembler struct {
	pages  map[uint64]Page
	eof    uint64
	hasEOF bool
}

// NewAssembler returns an empty Assembler.
func NewAssembler() *Assembler {
	return &Assembler{pages: make(map[uint64]Page)}
}

// Add records a page.
//
// Receiving the same page twice is a no-op. Returns errs.ErrInvalidChunkingType for
// an unknown chunking type, errs.ErrPageOutOfRange for a page past the EOF page, and
// errs.ErrConflictingPage when a page id arrives again with different content or a
// second EOF page is announced.
func (a *Assembler) Add(pageID uint64, typ format.ChunkingType, chunks AddressedChunkArray) error {
	if typ != format.ChunkingChunk && typ != format.ChunkingEOF {
		return fmt.Errorf("%w: %d", errs.ErrInvalidChunkingType, typ)
	}

	if prev, ok := a.pages[pageID]; ok {
		if prev.Type != typ || !prev.Chunks.Equal(chunks) {
			return fmt.Errorf("%w: page %d", errs.ErrConflictingPage, pageID)
		}

		return nil
	}

	if a.hasEOF && pageID > a.eof {
		return fmt.Errorf("%w: page %d past EOF page %d", errs.ErrPageOutOfRange, pageID, a.eof)
	}

	if typ == format.ChunkingEOF {
		if a.hasEOF {
			return fmt.Errorf("%w: EOF page %d, already have %d", errs.ErrConflictingPage, pageID, a.eof)
		}
		for id := range a.pages {
			if id > pageID {
				return fmt.Errorf("%w: page %d past EOF page %d", errs.ErrPageOutOfRange, id, pageID)
			}
		}
		a.eof = pageID
		a.hasEOF = true
	} else if a.hasEOF && pageID == a.eof {
		return fmt.Errorf("%w: page %d is the EOF page", errs.ErrConflictingPage, pageID)
	}

	a.pages[pageID] = Page{ID: pageID, Type: typ, Chunks: slices.Clone(chunks)}

	return nil
}

// AddPage records p, see Add.
func (a *Assembler) AddPage(p Page) error {
	return a.Add(p.ID, p.Type, p.Chunks)
}

// AddFrame decodes frame with framer and records the resulting page.
func (a *Assembler) AddFrame(framer PageFramer, frame []byte) error {
	p, err := framer.DecodePage(frame)
	if err != nil {
		return fmt.Errorf("decode page: %w", err)
	}

	return a.AddPage(p)
}

// Complete reports whether the EOF page and every page before it have arrived.
func (a *Assembler) Complete() bool {
	return a.hasEOF && uint64(len(a.pages)) == a.eof+1
}

// Missing returns the ids of pages not yet received, in ascending order.
// Before the EOF page arrives it reports gaps below the highest id seen.
func (a *Assembler) Missing() []uint64 {
	var upper uint64
	switch {
	case a.hasEOF:
		upper = a.eof + 1
	case len(a.pages) > 0:
		upper = slices.Max(slices.Collect(maps.Keys(a.pages))) + 1
	}

	var missing []uint64
	for id := range upper {
		if _, ok := a.pages[id]; !ok {
			missing = append(missing, id)
		}
	}

	return missing
}

// Workspace rebuilds the workspace from the collected pages.
//
// Returns errs.ErrIncompletePageSet until Complete reports true.
func (a *Assembler) Workspace() (Workspace, error) {
	if !a.Complete() {
		return nil, fmt.Errorf("%w: missing pages %v", errs.ErrIncompletePageSet, a.Missing())
	}

	var chunks AddressedChunkArray
	for id := range a.eof + 1 {
		chunks = append(chunks, a.pages[id].Chunks...)
	}

	return FromAddressedChunks(chunks)
}
