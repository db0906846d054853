package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifications_MarkRead(t *testing.T) {
	s := newTestStore(t)
	require.Equal(t, 3, s.UnreadCount("demo_alex"))

	require.NoError(t, s.MarkRead("demo_alex", "n1"))
	assert.Equal(t, 2, s.UnreadCount("demo_alex"))

	// already read
	require.NoError(t, s.MarkRead("demo_alex", "n1"))
	require.NoError(t, s.MarkRead("demo_alex", "n4"))
	assert.Equal(t, 2, s.UnreadCount("demo_alex"))

	assert.ErrorIs(t, s.MarkRead("demo_alex", "n404"), ErrNotificationNotFound)
}

func TestNotifications_MarkAllRead(t *testing.T) {
	s := newTestStore(t)
	s.MarkAllRead("demo_alex")
	assert.Equal(t, 0, s.UnreadCount("demo_alex"))
	for _, n := range s.Notifications("demo_alex") {
		assert.True(t, n.Read, n.ID)
	}

	before := s.Notifications("demo_alex")
	require.NoError(t, s.MarkRead("demo_alex", "n2"))
	assert.Equal(t, before, s.Notifications("demo_alex"))
}

func TestNotifications_InboxesAreIndependent(t *testing.T) {
	s := newTestStore(t)
	s.MarkAllRead("demo_alex")
	assert.Equal(t, 3, s.UnreadCount("demo_priya"))

	// the seed itself is untouched
	s.Reset()
	assert.Equal(t, 3, s.UnreadCount("demo_alex"))
}

func TestNotifications_ReturnsCopy(t *testing.T) {
	s := newTestStore(t)
	list := s.Notifications("demo_alex")
	list[0].Read = true
	assert.Equal(t, 3, s.UnreadCount("demo_alex"))
}
