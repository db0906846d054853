package store

import "local.dev/prepcircle-backend/internal/models"

// Overview summarizes the community for the admin dashboard.
func (s *Store) Overview() models.Overview {
	s.mu.RLock()
	ov := models.Overview{
		Posts:         len(s.posts),
		Reports:       len(s.reports),
		Inboxes:       len(s.inboxes),
		PostsByCircle: map[models.Circle]int{},
		PostsByModule: map[models.Module]int{},
	}
	for _, p := range s.posts {
		ov.Replies += len(p.Replies)
		ov.PostsByCircle[p.Circle]++
		ov.PostsByModule[p.Module]++
	}
	s.mu.RUnlock()

	ov.ReportQueue = s.Reports()
	return ov
}
