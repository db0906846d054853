package playback

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"local.dev/prepcircle-backend/internal/models"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var drill = models.Video{ID: "v1", Title: "Drill"}

func TestGate_ClampsAndCompletes(t *testing.T) {
	g := NewGate(30)
	assert.Equal(t, 0, g.Progress())
	assert.Equal(t, StatePlaying, g.State())

	assert.False(t, g.Advance())
	assert.False(t, g.Advance())
	assert.False(t, g.Advance())
	assert.Equal(t, 90, g.Progress())

	assert.True(t, g.Advance())
	assert.Equal(t, Complete, g.Progress())
	assert.Equal(t, StateCompleted, g.State())

	// terminal
	assert.True(t, g.Advance())
	assert.Equal(t, Complete, g.Progress())
}

func TestGate_CloseBeforeComplete(t *testing.T) {
	g := NewGate(25)
	for i := 0; i < 3; i++ {
		g.Advance()
		before := g.Progress()
		assert.ErrorIs(t, g.Close(), ErrNotComplete)
		assert.Equal(t, before, g.Progress())
		assert.Equal(t, StatePlaying, g.State())
	}
	g.Advance()
	assert.NoError(t, g.Close())
}

func TestGate_CloseErrorCarriesUserMessage(t *testing.T) {
	err := NewGate(10).Close()
	var pe *Error
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "Please finish watching the video before closing it.", pe.Msg)
	assert.Equal(t, pe.Msg, err.Error())
}

func TestGate_NonPositiveStep(t *testing.T) {
	g := NewGate(0)
	g.Advance()
	assert.Equal(t, 1, g.Progress())
}

func TestManager_CloseRejectedWhilePlaying(t *testing.T) {
	m := NewManager(time.Hour, 10, nil)
	defer m.Shutdown()

	snap := m.Open("u1", drill)
	assert.Equal(t, 0, snap.Progress)
	assert.Equal(t, StatePlaying, snap.State)
	assert.False(t, snap.CanClose)

	snap, err := m.Close("u1")
	require.ErrorIs(t, err, ErrNotComplete)
	assert.Equal(t, 0, snap.Progress)

	st, err := m.Status("u1")
	require.NoError(t, err)
	assert.Equal(t, "v1", st.Video.ID)
	assert.Equal(t, 0, st.Progress)
}

func TestManager_CompletesThenCloses(t *testing.T) {
	m := NewManager(time.Millisecond, 50, nil)
	defer m.Shutdown()

	m.Open("u1", drill)
	require.Eventually(t, func() bool {
		st, err := m.Status("u1")
		return err == nil && st.State == StateCompleted
	}, 2*time.Second, 5*time.Millisecond)

	snap, err := m.Close("u1")
	require.NoError(t, err)
	assert.Equal(t, Complete, snap.Progress)

	_, err = m.Status("u1")
	assert.ErrorIs(t, err, ErrNoSession)
	_, err = m.Close("u1")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestManager_OpenReplacesPrevious(t *testing.T) {
	m := NewManager(time.Hour, 10, nil)
	defer m.Shutdown()

	m.Open("u1", drill)
	m.Open("u1", models.Video{ID: "v2"})

	st, err := m.Status("u1")
	require.NoError(t, err)
	assert.Equal(t, "v2", st.Video.ID)
	assert.Equal(t, 0, st.Progress)
}

func TestManager_SessionsPerUser(t *testing.T) {
	m := NewManager(time.Hour, 10, nil)
	defer m.Shutdown()

	m.Open("u1", drill)
	_, err := m.Status("u2")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestManager_ShutdownStopsTickers(t *testing.T) {
	m := NewManager(time.Millisecond, 1, nil)
	m.Open("u1", drill)
	m.Open("u2", drill)
	m.Shutdown()

	_, err := m.Status("u1")
	assert.ErrorIs(t, err, ErrNoSession)

	snap := m.Open("u3", drill)
	assert.Equal(t, 0, snap.Progress)
	_, err = m.Status("u3")
	assert.ErrorIs(t, err, ErrNoSession)
}
