package workspace

import "fmt"

// PageFramer is the transport collaborator that turns pages into frames and back.
// The workspace package ships no implementation; framing belongs to the transport.
type PageFramer interface {
	// EncodePage produces the transport frame of p.
	EncodePage(p Page) ([]byte, error)
	// DecodePage parses a frame produced by EncodePage.
	DecodePage(frame []byte) (Page, error)
}

// FramePages pages ws for maxPageSize and encodes every page with framer, in page order.
func (ws Workspace) FramePages(framer PageFramer, maxPageSize uint64) ([][]byte, error) {
	var frames [][]byte
	for page := range ws.Pages(maxPageSize) {
		frame, err := framer.EncodePage(page)
		if err != nil {
			return nil, fmt.Errorf("encode page %d: %w", page.ID, err)
		}
		frames = append(frames, frame)
	}

	return frames, nil
}
