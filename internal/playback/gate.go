// Package playback enforces mandatory viewing of training videos: a video
// cannot be dismissed until its simulated progress reaches 100.
package playback

import "sync"

const Complete = 100

type State string

const (
	StatePlaying   State = "playing"
	StateCompleted State = "completed"
)

// Error is a rejected playback action. Msg is shown to the user as is.
type Error struct {
	Msg string
}

func (e *Error) Error() string { return e.Msg }

var (
	ErrNotComplete = &Error{Msg: "Please finish watching the video before closing it."}
	ErrNoSession   = &Error{Msg: "No video is playing."}
)

// Gate is a monotonic progress counter. Completed is terminal.
type Gate struct {
	mu       sync.Mutex
	step     int
	progress int
}

func NewGate(step int) *Gate {
	if step <= 0 {
		step = 1
	}
	return &Gate{step: step}
}

// Advance moves progress one step, clamped at Complete, and reports whether
// the gate is now completed.
func (g *Gate) Advance() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.progress += g.step
	if g.progress > Complete {
		g.progress = Complete
	}
	return g.progress == Complete
}

func (g *Gate) Progress() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.progress
}

func (g *Gate) State() State {
	if g.Progress() >= Complete {
		return StateCompleted
	}
	return StatePlaying
}

// Close is allowed only once completed; a rejected close changes nothing.
func (g *Gate) Close() error {
	if g.State() != StateCompleted {
		return ErrNotComplete
	}
	return nil
}
