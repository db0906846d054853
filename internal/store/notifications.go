package store

import "local.dev/prepcircle-backend/internal/models"

// inbox returns uid's inbox, copying the seed on first access. Callers hold
// s.mu for writing.
func (s *Store) inbox(uid string) []models.Notification {
	box, ok := s.inboxes[uid]
	if !ok {
		box = append([]models.Notification{}, s.fixtures.Notifications...)
		s.inboxes[uid] = box
	}
	return box
}

// Notifications returns a copy of uid's inbox.
func (s *Store) Notifications(uid string) []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Notification{}, s.inbox(uid)...)
}

// UnreadCount is recomputed on every call.
func (s *Store) UnreadCount(uid string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return countUnread(s.inbox(uid))
}

func countUnread(box []models.Notification) int {
	n := 0
	for _, x := range box {
		if !x.Read {
			n++
		}
	}
	return n
}

// MarkRead flags one notification as read. Already-read ids are a no-op.
func (s *Store) MarkRead(uid, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	box := s.inbox(uid)
	for i := range box {
		if box[i].ID == id {
			box[i].Read = true
			return nil
		}
	}
	return ErrNotificationNotFound
}

// MarkAllRead flags every notification in uid's inbox as read.
func (s *Store) MarkAllRead(uid string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	box := s.inbox(uid)
	for i := range box {
		box[i].Read = true
	}
}
