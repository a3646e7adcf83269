package importer

import (
	"fmt"
	"log"
	"sync/atomic"

	"github.com/ironsheep/image-blocks-mcp/internal/imaging"
)

const (
	stateIdle int32 = iota
	stateRunning
)

// Session runs at most one import at a time.
//
// A Start while an import is running is dropped rather than queued. There is
// no cancellation: a started import always runs to completion and reports.
type Session struct {
	state   atomic.Int32
	decoder imaging.Decoder
}

// NewSession returns an idle session. A nil decoder selects
// imaging.DefaultDecoder.
func NewSession(decoder imaging.Decoder) *Session {
	if decoder == nil {
		decoder = imaging.DefaultDecoder
	}
	return &Session{decoder: decoder}
}

// Start launches req on a background goroutine.
//
// The returned channel yields exactly one Result and is then closed. When an
// import is already running, Start returns nil and false and req is dropped.
// The session is idle again before the result is sent, so a receiver may
// start the next import immediately.
func (s *Session) Start(req Request) (<-chan Result, bool) {
	if !s.state.CompareAndSwap(stateIdle, stateRunning) {
		log.Printf("Import already running, ignoring request for %q", req.Path)
		return nil, false
	}

	done := make(chan Result, 1)
	log.Printf("Import started: %q", req.Path)
	go func() {
		defer close(done)
		result := s.run(req)
		log.Print(result.Message())
		s.state.Store(stateIdle)
		done <- result
	}()
	return done, true
}

// run is Process with panics reported as a failed import.
func (s *Session) run(req Request) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			result = Result{Err: fmt.Errorf("import aborted: %v", r)}
		}
	}()
	return Process(req, s.decoder)
}

// Running reports whether an import is in flight.
func (s *Session) Running() bool {
	return s.state.Load() == stateRunning
}
