package store

import "local.dev/prepcircle-backend/internal/models"

// Videos lists the training catalog, filtered by module when set.
func (s *Store) Videos(module models.Module) []models.Video {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Video, 0, len(s.videos))
	for _, v := range s.videos {
		if module != "" && v.Module != module {
			continue
		}
		out = append(out, v)
	}
	return out
}

// Video looks up one catalog entry by id.
func (s *Store) Video(id string) (models.Video, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, v := range s.videos {
		if v.ID == id {
			return v, true
		}
	}
	return models.Video{}, false
}
