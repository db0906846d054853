package playback

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"local.dev/prepcircle-backend/internal/models"
)

// Snapshot is what clients see of a session.
type Snapshot struct {
	Video    models.Video `json:"video"`
	Progress int          `json:"progress"`
	State    State        `json:"state"`
	CanClose bool         `json:"canClose"`
}

type session struct {
	video  models.Video
	gate   *Gate
	cancel context.CancelFunc
	done   chan struct{}
}

func (s *session) snapshot() Snapshot {
	st := s.gate.State()
	return Snapshot{
		Video:    s.video,
		Progress: s.gate.Progress(),
		State:    st,
		CanClose: st == StateCompleted,
	}
}

// stop cancels the ticker and waits for its goroutine to exit.
func (s *session) stop() {
	s.cancel()
	<-s.done
}

// Manager keeps at most one open video per user, each advanced by its own
// ticker.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*session
	tick     time.Duration
	step     int
	logger   *zap.SugaredLogger
	closed   bool
}

func NewManager(tick time.Duration, step int, logger *zap.SugaredLogger) *Manager {
	if tick <= 0 {
		tick = 500 * time.Millisecond
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Manager{
		sessions: map[string]*session{},
		tick:     tick,
		step:     step,
		logger:   logger,
	}
}

// Open starts v for uid, tearing down whatever uid was watching before.
func (m *Manager) Open(uid string, v models.Video) Snapshot {
	ctx, cancel := context.WithCancel(context.Background())
	s := &session{video: v, gate: NewGate(m.step), cancel: cancel, done: make(chan struct{})}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		cancel()
		close(s.done)
		return s.snapshot()
	}
	prev := m.sessions[uid]
	m.sessions[uid] = s
	go m.run(ctx, uid, s)
	m.mu.Unlock()

	if prev != nil {
		prev.stop()
		m.logger.Debugw("playback replaced", "uid", uid, "previous", prev.video.ID, "video", v.ID)
	}
	m.logger.Infow("playback opened", "uid", uid, "video", v.ID)
	return s.snapshot()
}

func (m *Manager) run(ctx context.Context, uid string, s *session) {
	defer close(s.done)
	t := time.NewTicker(m.tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if s.gate.Advance() {
				m.logger.Infow("playback completed", "uid", uid, "video", s.video.ID)
				return
			}
		}
	}
}

// Status reports uid's open session.
func (m *Manager) Status(uid string) (Snapshot, error) {
	m.mu.Lock()
	s := m.sessions[uid]
	m.mu.Unlock()
	if s == nil {
		return Snapshot{}, ErrNoSession
	}
	return s.snapshot(), nil
}

// Close dismisses uid's video. Before completion it fails with
// ErrNotComplete and the session keeps playing.
func (m *Manager) Close(uid string) (Snapshot, error) {
	m.mu.Lock()
	s := m.sessions[uid]
	if s == nil {
		m.mu.Unlock()
		return Snapshot{}, ErrNoSession
	}
	if err := s.gate.Close(); err != nil {
		m.mu.Unlock()
		return s.snapshot(), err
	}
	delete(m.sessions, uid)
	m.mu.Unlock()

	s.stop()
	m.logger.Infow("playback closed", "uid", uid, "video", s.video.ID)
	return s.snapshot(), nil
}

// Shutdown stops every session and waits for the tickers to exit. Open after
// Shutdown returns a session that never advances.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	m.closed = true
	all := m.sessions
	m.sessions = map[string]*session{}
	m.mu.Unlock()

	for _, s := range all {
		s.stop()
	}
}
