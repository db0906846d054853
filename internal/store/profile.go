package store

import (
	"strings"
	"time"

	"local.dev/prepcircle-backend/internal/models"
)

const birthdayLayout = "2006-01-02"

// GetProfile returns the stored profile for uid.
func (s *Store) GetProfile(uid string) (models.Profile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[uid]
	return p, ok
}

// Actor returns the profile of the acting user. Unknown users get a bare
// profile with age 0, which keeps them behind the age gate.
func (s *Store) Actor(uid string) models.Profile {
	if p, ok := s.GetProfile(uid); ok {
		return p
	}
	return models.Profile{ID: uid, Name: uid}
}

// UpsertProfile adds a profile or merges the provided fields into the
// existing one. Age and birthday can be declared once; after that they are
// kept as recorded.
func (s *Store) UpsertProfile(p models.Profile) models.Profile {
	if p.ID == "" {
		return p
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	ex, ok := s.profiles[p.ID]
	if !ok {
		s.profiles[p.ID] = p
		return p
	}

	if p.Name != "" {
		ex.Name = p.Name
	}
	if p.Nickname != nil {
		ex.Nickname = p.Nickname
	}
	if p.Institution != "" {
		ex.Institution = p.Institution
	}
	if p.InstitutionType != "" {
		ex.InstitutionType = p.InstitutionType
	}
	if !hasDeclaredAge(ex) {
		if p.Age > 0 {
			ex.Age = p.Age
		}
		if ValidBirthday(p.Birthday) {
			ex.Birthday = p.Birthday
		}
	}
	// verification is granted by fixtures only

	s.profiles[p.ID] = ex
	return ex
}

// DisplayName prefers the nickname, then the name, then the id.
func (s *Store) DisplayName(uid string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return displayName(s.profiles[uid], uid)
}

func displayName(p models.Profile, uid string) string {
	if p.Nickname != nil && strings.TrimSpace(*p.Nickname) != "" {
		return *p.Nickname
	}
	if p.Name != "" {
		return p.Name
	}
	return uid
}

// ValidBirthday reports whether b is a yyyy-MM-dd date.
func ValidBirthday(b string) bool {
	_, err := time.Parse(birthdayLayout, b)
	return err == nil
}

func hasDeclaredAge(p models.Profile) bool {
	return p.Age > 0 || ValidBirthday(p.Birthday)
}

// AgeOn computes the age at now. A parseable birthday wins over Age.
func AgeOn(p models.Profile, now time.Time) int {
	if p.Birthday == "" {
		return p.Age
	}
	b, err := time.Parse(birthdayLayout, p.Birthday)
	if err != nil {
		return p.Age
	}
	years := now.Year() - b.Year()
	if now.Month() < b.Month() || (now.Month() == b.Month() && now.Day() < b.Day()) {
		years--
	}
	return years
}

func (s *Store) canParticipate(p models.Profile) bool {
	return AgeOn(p, s.now()) >= MinParticipationAge
}

// CanParticipate reports whether uid passes the age gate today.
func (s *Store) CanParticipate(uid string) bool {
	return s.canParticipate(s.Actor(uid))
}
