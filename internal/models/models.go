package models

type Post struct {
	ID          string  `json:"id" yaml:"id"`
	AuthorID    string  `json:"authorId" yaml:"authorId"`
	Author      string  `json:"author" yaml:"author"` // display name, may be the pseudonym
	Institution string  `json:"institution" yaml:"institution"`
	Content     string  `json:"content" yaml:"content"`
	Module      Module  `json:"module" yaml:"module"`
	Replies     []Reply `json:"replies" yaml:"replies"`
	Timestamp   string  `json:"timestamp" yaml:"timestamp"` // display string
	CreatedAt   string  `json:"createdAt" yaml:"-"`         // ISO 8601
	IsVerified  bool    `json:"isVerified" yaml:"isVerified"`
	IsOfficial  bool    `json:"isOfficial" yaml:"isOfficial"`
	Circle      Circle  `json:"circle" yaml:"circle"`

	// Derived from the vote/bookmark sets on every read; never stored.
	Upvotes        int      `json:"upvotes" yaml:"-"`
	UpvotedBy      []string `json:"upvotedBy" yaml:"-"`
	BookmarkedBy   []string `json:"bookmarkedBy" yaml:"-"`
	UpvotedByMe    bool     `json:"upvotedByMe" yaml:"-"`
	BookmarkedByMe bool     `json:"bookmarkedByMe" yaml:"-"`
}

type Reply struct {
	ID         string `json:"id" yaml:"id"`
	AuthorID   string `json:"authorId" yaml:"authorId"`
	Author     string `json:"author" yaml:"author"`
	Content    string `json:"content" yaml:"content"`
	Timestamp  string `json:"timestamp" yaml:"timestamp"`
	Upvotes    int    `json:"upvotes" yaml:"upvotes"`
	IsVerified bool   `json:"isVerified" yaml:"isVerified"`
}

type Notification struct {
	ID      string           `json:"id" yaml:"id"`
	Type    NotificationType `json:"type" yaml:"type"`
	User    string           `json:"user" yaml:"user"` // originating actor
	Content string           `json:"content" yaml:"content"`
	Time    string           `json:"time" yaml:"time"`
	Read    bool             `json:"read" yaml:"read"`
}

type PrivacySettings struct {
	HideName         bool `json:"hideName" yaml:"hideName"`
	LimitReplies     bool `json:"limitReplies" yaml:"limitReplies"`
	RestrictDMs      bool `json:"restrictDMs" yaml:"restrictDMs"`
	ShowOnlineStatus bool `json:"showOnlineStatus" yaml:"showOnlineStatus"`
}

// PrivacyPatch only changes the fields that are set.
type PrivacyPatch struct {
	HideName         *bool `json:"hideName"`
	LimitReplies     *bool `json:"limitReplies"`
	RestrictDMs      *bool `json:"restrictDMs"`
	ShowOnlineStatus *bool `json:"showOnlineStatus"`
}

type Video struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Duration    string `json:"duration" yaml:"duration"`
	Instructor  string `json:"instructor" yaml:"instructor"`
	Module      Module `json:"module" yaml:"module"`
	Thumbnail   string `json:"thumbnail" yaml:"thumbnail"`
	Description string `json:"description" yaml:"description"`
	Views       int    `json:"views" yaml:"views"`
}

type Profile struct {
	ID              string  `json:"id" yaml:"id"`
	Name            string  `json:"name" yaml:"name"`
	Nickname        *string `json:"nickname" yaml:"nickname"`
	Institution     string  `json:"institution" yaml:"institution"`
	InstitutionType string  `json:"institutionType" yaml:"institutionType"`
	Age             int     `json:"age" yaml:"age"`
	Birthday        string  `json:"birthday,omitempty" yaml:"birthday"` // yyyy-MM-dd
	IsVerified      bool    `json:"isVerified" yaml:"isVerified"`
}

type Report struct {
	ID         string `json:"id"`
	PostID     string `json:"postId"`
	ReporterID string `json:"reporterId"`
	Reason     string `json:"reason"`
	CreatedAt  string `json:"createdAt"`
}

type CircleInfo struct {
	ID    Circle `json:"id"`
	Label string `json:"label"`
}

// Overview is the admin dashboard snapshot.
type Overview struct {
	Posts         int            `json:"posts"`
	Replies       int            `json:"replies"`
	Reports       int            `json:"reports"`
	Inboxes       int            `json:"inboxes"`
	PostsByCircle map[Circle]int `json:"postsByCircle"`
	PostsByModule map[Module]int `json:"postsByModule"`
	ReportQueue   []Report       `json:"reportQueue"`
}
