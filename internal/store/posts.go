package store

import (
	"strings"
	"unicode/utf8"

	"local.dev/prepcircle-backend/internal/models"
)

// authorFor picks the label stored on new content. hideName applies at
// creation time only.
func authorFor(actor models.Profile, privacy models.PrivacySettings) string {
	if privacy.HideName {
		return Pseudonym
	}
	return displayName(actor, actor.ID)
}

// SubmitPost prepends a new post in the actor's home circle.
func (s *Store) SubmitPost(actor models.Profile, content string, module models.Module, privacy models.PrivacySettings) (models.Post, error) {
	text := strings.TrimSpace(content)
	if text == "" {
		return models.Post{}, ErrEmptyContent
	}
	if utf8.RuneCountInString(text) > MaxContentRunes {
		return models.Post{}, ErrContentTooLong
	}
	mod, err := models.ParseModule(string(module))
	if err != nil {
		return models.Post{}, ErrUnknownModule
	}
	if !s.canParticipate(actor) {
		return models.Post{}, ErrAgeRestricted
	}

	p := models.Post{
		ID:          newID(),
		AuthorID:    actor.ID,
		Author:      authorFor(actor, privacy),
		Institution: actor.Institution,
		Content:     text,
		Module:      mod,
		Replies:     []models.Reply{},
		Timestamp:   justNow,
		CreatedAt:   s.nowISO(),
		IsVerified:  actor.IsVerified,
		Circle:      models.CircleMyInstitution,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts = append([]models.Post{p}, s.posts...)
	s.upvotes[p.ID] = map[string]struct{}{}
	s.bookmarks[p.ID] = map[string]struct{}{}
	return s.decorate(p, actor.ID), nil
}

// ToggleUpvote adds or removes the actor's upvote.
func (s *Store) ToggleUpvote(postID string, actor models.Profile) (models.Post, error) {
	if !s.canParticipate(actor) {
		return models.Post{}, ErrAgeRestricted
	}
	return s.toggleMembership(postID, actor.ID, false)
}

// ToggleBookmark adds or removes the actor's bookmark. Bookmarks are
// private to the actor, so they are not age gated.
func (s *Store) ToggleBookmark(postID string, actor models.Profile) (models.Post, error) {
	return s.toggleMembership(postID, actor.ID, true)
}

func (s *Store) toggleMembership(postID, uid string, bookmark bool) (models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(postID)
	if i < 0 {
		return models.Post{}, ErrPostNotFound
	}
	sets := s.upvotes
	if bookmark {
		sets = s.bookmarks
	}
	set := sets[postID]
	if set == nil {
		set = map[string]struct{}{}
		sets[postID] = set
	}
	toggle(set, uid)
	return s.decorate(s.posts[i], uid), nil
}

// SubmitReply appends a reply to the post.
func (s *Store) SubmitReply(postID string, actor models.Profile, content string, privacy models.PrivacySettings) (models.Reply, error) {
	text := strings.TrimSpace(content)
	if text == "" {
		return models.Reply{}, ErrEmptyReply
	}
	if utf8.RuneCountInString(text) > MaxContentRunes {
		return models.Reply{}, ErrContentTooLong
	}
	if !s.canParticipate(actor) {
		return models.Reply{}, ErrAgeRestricted
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(postID)
	if i < 0 {
		return models.Reply{}, ErrPostNotFound
	}
	r := models.Reply{
		ID:         newID(),
		AuthorID:   actor.ID,
		Author:     authorFor(actor, privacy),
		Content:    text,
		Timestamp:  justNow,
		IsVerified: actor.IsVerified,
	}
	s.posts[i].Replies = append(s.posts[i].Replies, r)
	return r, nil
}

// UpvoteReply bumps a reply's counter. Reply upvotes are a plain count with
// no per-user tracking.
func (s *Store) UpvoteReply(postID, replyID string, actor models.Profile) (models.Reply, error) {
	if !s.canParticipate(actor) {
		return models.Reply{}, ErrAgeRestricted
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(postID)
	if i < 0 {
		return models.Reply{}, ErrPostNotFound
	}
	for j := range s.posts[i].Replies {
		if s.posts[i].Replies[j].ID == replyID {
			s.posts[i].Replies[j].Upvotes++
			return s.posts[i].Replies[j], nil
		}
	}
	return models.Reply{}, ErrReplyNotFound
}

// SubmitReport queues a report for moderators. The post is left untouched.
func (s *Store) SubmitReport(postID string, actor models.Profile, reason string) (models.Report, error) {
	why := strings.TrimSpace(reason)
	if why == "" {
		return models.Report{}, ErrEmptyReason
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexOf(postID) < 0 {
		return models.Report{}, ErrPostNotFound
	}
	r := models.Report{
		ID:         newID(),
		PostID:     postID,
		ReporterID: actor.ID,
		Reason:     why,
		CreatedAt:  s.nowISO(),
	}
	s.reports = append(s.reports, r)
	return r, nil
}

// VisiblePosts filters by circle (when set) and then by view, keeping
// insertion order.
func (s *Store) VisiblePosts(view models.View, circle models.Circle, viewerUID string) []models.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Post, 0, len(s.posts))
	for _, p := range s.posts {
		if circle != "" && p.Circle != circle {
			continue
		}
		switch view {
		case models.ViewTrending:
			if len(s.upvotes[p.ID]) <= TrendingThreshold {
				continue
			}
		case models.ViewBookmarks:
			if _, ok := s.bookmarks[p.ID][viewerUID]; !ok || viewerUID == "" {
				continue
			}
		}
		out = append(out, s.decorate(p, viewerUID))
	}
	return out
}

// Reports returns the report queue, newest first.
func (s *Store) Reports() []models.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Report, 0, len(s.reports))
	for i := len(s.reports) - 1; i >= 0; i-- {
		out = append(out, s.reports[i])
	}
	return out
}
