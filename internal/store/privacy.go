package store

import "local.dev/prepcircle-backend/internal/models"

// Privacy returns uid's settings; everything is off until toggled.
func (s *Store) Privacy(uid string) models.PrivacySettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.privacy[uid]
}

// UpdatePrivacy applies the provided toggles. Content created earlier keeps
// the label it was created with.
func (s *Store) UpdatePrivacy(uid string, patch models.PrivacyPatch) models.PrivacySettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur := s.privacy[uid]
	if patch.HideName != nil {
		cur.HideName = *patch.HideName
	}
	if patch.LimitReplies != nil {
		cur.LimitReplies = *patch.LimitReplies
	}
	if patch.RestrictDMs != nil {
		cur.RestrictDMs = *patch.RestrictDMs
	}
	if patch.ShowOnlineStatus != nil {
		cur.ShowOnlineStatus = *patch.ShowOnlineStatus
	}
	s.privacy[uid] = cur
	return cur
}
