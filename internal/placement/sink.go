package placement

import (
	"sync"

	"github.com/ironsheep/image-blocks-mcp/internal/objstring"
)

// BulkInserter accepts a whole object string at once.
type BulkInserter interface {
	InsertObjects(objects string) error
}

// BulkInserterFunc adapts a plain function to BulkInserter.
type BulkInserterFunc func(objects string) error

// InsertObjects calls f(objects).
func (f BulkInserterFunc) InsertObjects(objects string) error {
	return f(objects)
}

// BulkSink adapts a BulkInserter to the Sink interface. Placements are
// encoded as they arrive and delivered together by Flush.
type BulkSink struct {
	inserter BulkInserter
	builder  objstring.Builder
}

// NewBulkSink returns a sink that flushes to inserter.
func NewBulkSink(inserter BulkInserter) *BulkSink {
	return &BulkSink{inserter: inserter}
}

// Place encodes p. Handles count up from zero in placement order.
func (s *BulkSink) Place(p Placement) (Handle, error) {
	if err := s.builder.Add(p.Object()); err != nil {
		return 0, err
	}
	return Handle(s.builder.Len() - 1), nil
}

// Pending returns the number of placements not yet flushed.
func (s *BulkSink) Pending() int {
	return s.builder.Len()
}

// Flush hands every pending placement to the inserter as one string. Nothing
// is sent when no placements are pending. The buffer is cleared only when
// the inserter succeeds.
func (s *BulkSink) Flush() error {
	if s.builder.Len() == 0 {
		return nil
	}
	if err := s.inserter.InsertObjects(s.builder.String()); err != nil {
		return err
	}
	s.builder.Reset()
	return nil
}

// Recorder is a Sink that keeps every placement in memory.
// It is safe for concurrent use.
type Recorder struct {
	mu         sync.Mutex
	placements []Placement
}

// Place records p.
func (r *Recorder) Place(p Placement) (Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.placements = append(r.placements, p)
	return Handle(len(r.placements) - 1), nil
}

// Placements returns a copy of everything recorded so far.
func (r *Recorder) Placements() []Placement {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Placement, len(r.placements))
	copy(out, r.placements)
	return out
}
