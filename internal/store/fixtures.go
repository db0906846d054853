package store

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"local.dev/prepcircle-backend/internal/models"
)

//go:embed fixtures.yaml
var defaultFixtures []byte

// Fixtures is the seed every store starts from and returns to on Reset.
type Fixtures struct {
	Profiles      []models.Profile      `yaml:"profiles"`
	Posts         []PostFixture         `yaml:"posts"`
	Notifications []models.Notification `yaml:"notifications"`
	Videos        []models.Video        `yaml:"videos"`
}

// PostFixture seeds the vote and bookmark sets next to the post. When Upvotes
// exceeds len(UpvotedBy) the set is padded with placeholder members.
type PostFixture struct {
	models.Post  `yaml:",inline"`
	Upvotes      int      `yaml:"upvotes"`
	UpvotedBy    []string `yaml:"upvotedBy"`
	BookmarkedBy []string `yaml:"bookmarkedBy"`
}

// LoadFixtures reads path, or the embedded defaults when path is empty.
func LoadFixtures(path string) (*Fixtures, error) {
	if path == "" {
		return ParseFixtures(defaultFixtures)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixtures: %w", err)
	}
	return ParseFixtures(b)
}

// ParseFixtures decodes and normalizes a YAML seed.
func ParseFixtures(b []byte) (*Fixtures, error) {
	var fx Fixtures
	if err := yaml.Unmarshal(b, &fx); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	if err := fx.normalize(); err != nil {
		return nil, err
	}
	return &fx, nil
}

// normalize canonicalizes enum spellings and rejects broken seeds.
func (fx *Fixtures) normalize() error {
	seen := map[string]bool{}
	for i := range fx.Posts {
		p := &fx.Posts[i]
		if p.ID == "" {
			return fmt.Errorf("fixtures: post #%d has no id", i)
		}
		if seen[p.ID] {
			return fmt.Errorf("fixtures: duplicate post id %q", p.ID)
		}
		seen[p.ID] = true

		m, err := models.ParseModule(string(p.Module))
		if err != nil {
			return fmt.Errorf("fixtures: post %q: %w", p.ID, err)
		}
		p.Module = m
		c, err := models.ParseCircle(string(p.Circle))
		if err != nil {
			return fmt.Errorf("fixtures: post %q: %w", p.ID, err)
		}
		p.Circle = c
		if p.Upvotes < 0 {
			return fmt.Errorf("fixtures: post %q has negative upvotes", p.ID)
		}
		if p.Replies == nil {
			p.Replies = []models.Reply{}
		}
	}

	for i := range fx.Notifications {
		n := &fx.Notifications[i]
		t, err := models.ParseNotificationType(string(n.Type))
		if err != nil {
			return fmt.Errorf("fixtures: notification %q: %w", n.ID, err)
		}
		n.Type = t
	}

	for i := range fx.Videos {
		v := &fx.Videos[i]
		m, err := models.ParseModule(string(v.Module))
		if err != nil {
			return fmt.Errorf("fixtures: video %q: %w", v.ID, err)
		}
		v.Module = m
	}

	for _, p := range fx.Profiles {
		if p.ID == "" {
			return fmt.Errorf("fixtures: profile %q has no id", p.Name)
		}
	}
	return nil
}

// seedVoters builds a vote set of at least count members.
func seedVoters(ids []string, count int) map[string]struct{} {
	set := toSet(ids)
	for n := 1; len(set) < count; n++ {
		id := fmt.Sprintf("member-%03d", n)
		set[id] = struct{}{}
	}
	return set
}
