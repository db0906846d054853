package store

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"local.dev/prepcircle-backend/internal/models"
)

const (
	// MinParticipationAge is the age gate for community actions.
	MinParticipationAge = 17
	// TrendingThreshold is exclusive: a post trends with more upvotes than this.
	TrendingThreshold = 20
	// MaxContentRunes bounds post content.
	MaxContentRunes = 2000
	// Pseudonym replaces the author name when hideName is on.
	Pseudonym = "Anonymous Member"

	justNow = "Just now"
)

// Store holds all community state behind one lock.
type Store struct {
	mu       sync.RWMutex
	fixtures *Fixtures
	now      func() time.Time

	posts     []models.Post                  // newest first; Upvotes etc. left zero
	upvotes   map[string]map[string]struct{} // postId -> set(uid)
	bookmarks map[string]map[string]struct{} // postId -> set(uid)
	reports   []models.Report

	profiles map[string]models.Profile
	privacy  map[string]models.PrivacySettings
	inboxes  map[string][]models.Notification // uid -> private copy of the seed
	videos   []models.Video
}

// NewStore seeds a store from fx. A nil fx seeds nothing.
func NewStore(fx *Fixtures) *Store {
	if fx == nil {
		fx = &Fixtures{}
	}
	s := &Store{fixtures: fx, now: time.Now}
	s.Reset()
	return s
}

// Reset drops every mutation and reloads the fixtures.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.posts = make([]models.Post, 0, len(s.fixtures.Posts))
	s.upvotes = map[string]map[string]struct{}{}
	s.bookmarks = map[string]map[string]struct{}{}
	s.reports = nil
	s.profiles = map[string]models.Profile{}
	s.privacy = map[string]models.PrivacySettings{}
	s.inboxes = map[string][]models.Notification{}
	s.videos = append([]models.Video(nil), s.fixtures.Videos...)

	for _, pf := range s.fixtures.Posts {
		p := pf.Post
		p.Replies = append([]models.Reply{}, pf.Replies...)
		s.posts = append(s.posts, p)
		s.upvotes[p.ID] = seedVoters(pf.UpvotedBy, pf.Upvotes)
		s.bookmarks[p.ID] = toSet(pf.BookmarkedBy)
	}
	for _, p := range s.fixtures.Profiles {
		s.profiles[p.ID] = p
	}
}

func (s *Store) nowISO() string { return s.now().UTC().Format(time.RFC3339) }

func newID() string { return uuid.NewString() }

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id != "" {
			set[id] = struct{}{}
		}
	}
	return set
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// toggle flips uid in set and reports whether uid is now a member.
func toggle(set map[string]struct{}, uid string) bool {
	if _, ok := set[uid]; ok {
		delete(set, uid)
		return false
	}
	set[uid] = struct{}{}
	return true
}

// indexOf must be called with s.mu held.
func (s *Store) indexOf(postID string) int {
	for i, p := range s.posts {
		if p.ID == postID {
			return i
		}
	}
	return -1
}

// decorate fills the derived fields for viewerUID. Callers hold s.mu.
func (s *Store) decorate(p models.Post, viewerUID string) models.Post {
	cp := p
	cp.Replies = append([]models.Reply{}, p.Replies...)

	ups := s.upvotes[p.ID]
	marks := s.bookmarks[p.ID]
	cp.Upvotes = len(ups)
	cp.UpvotedBy = sortedKeys(ups)
	cp.BookmarkedBy = sortedKeys(marks)
	_, cp.UpvotedByMe = ups[viewerUID]
	_, cp.BookmarkedByMe = marks[viewerUID]
	return cp
}

// Post returns one decorated post.
func (s *Store) Post(postID, viewerUID string) (models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(postID)
	if i < 0 {
		return models.Post{}, ErrPostNotFound
	}
	return s.decorate(s.posts[i], viewerUID), nil
}
