package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"local.dev/prepcircle-backend/internal/models"
)

func TestAgeOn(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		p    models.Profile
		want int
	}{
		{"age field", models.Profile{Age: 20}, 20},
		{"birthday before today", models.Profile{Birthday: "2003-02-28"}, 23},
		{"birthday on today", models.Profile{Birthday: "2009-03-01"}, 17},
		{"birthday tomorrow", models.Profile{Birthday: "2009-03-02"}, 16},
		{"birthday wins over age", models.Profile{Age: 40, Birthday: "2010-01-01"}, 16},
		{"bad birthday falls back", models.Profile{Age: 19, Birthday: "soon"}, 19},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AgeOn(tt.p, now))
		})
	}
}

func TestActor_UnknownUserIsGated(t *testing.T) {
	s := newTestStore(t)
	a := s.Actor("stranger")
	assert.Equal(t, "stranger", a.Name)
	_, err := s.SubmitPost(a, "hello", models.ModuleFire, models.PrivacySettings{})
	assert.ErrorIs(t, err, ErrAgeRestricted)
}

func TestUpsertProfile_Merges(t *testing.T) {
	s := newTestStore(t)
	nick := "Lex"
	got := s.UpsertProfile(models.Profile{ID: "demo_alex", Nickname: &nick, IsVerified: false})
	assert.Equal(t, "Alex Rivera", got.Name)
	assert.Equal(t, "Riverside Community College", got.Institution)
	assert.True(t, got.IsVerified)
	assert.Equal(t, "Lex", s.DisplayName("demo_alex"))

	created := s.UpsertProfile(models.Profile{ID: "newbie", Name: "New", Age: 18})
	assert.Equal(t, 18, created.Age)
	p, ok := s.GetProfile("newbie")
	require.True(t, ok)
	assert.Equal(t, "New", p.Name)
}

func TestUpsertProfile_KeepsRecordedAge(t *testing.T) {
	s := newTestStore(t)

	got := s.UpsertProfile(models.Profile{ID: "demo_sam", Age: 30, Birthday: "1990-01-01"})
	assert.Equal(t, 15, got.Age)
	assert.Empty(t, got.Birthday)
	_, err := s.SubmitPost(s.Actor("demo_sam"), "hello", models.ModuleFire, models.PrivacySettings{})
	assert.ErrorIs(t, err, ErrAgeRestricted)

	got = s.UpsertProfile(models.Profile{ID: "demo_priya", Birthday: "2012-01-01"})
	assert.Equal(t, "2003-04-12", got.Birthday)

	// a profile without an age may still declare one
	s.UpsertProfile(models.Profile{ID: "late", Name: "Late"})
	got = s.UpsertProfile(models.Profile{ID: "late", Age: 21})
	assert.Equal(t, 21, got.Age)
	got = s.UpsertProfile(models.Profile{ID: "late", Age: 12})
	assert.Equal(t, 21, got.Age)
}

func TestValidBirthday(t *testing.T) {
	assert.True(t, ValidBirthday("2003-04-12"))
	assert.False(t, ValidBirthday("not-a-date"))
	assert.False(t, ValidBirthday("12/04/2003"))
	assert.False(t, ValidBirthday(""))
}

func TestDisplayName_FallsBackToID(t *testing.T) {
	s := newTestStore(t)
	assert.Equal(t, "nobody", s.DisplayName("nobody"))
	assert.Equal(t, "Priya Nair", s.DisplayName("demo_priya"))
}
