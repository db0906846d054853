package models

import (
	"fmt"
	"strings"
)

type Circle string

const (
	CircleMyInstitution   Circle = "my-institution"
	CircleVerifiedSchools Circle = "verified-schools"
	CircleCollegeNetworks Circle = "college-networks"
	CircleGridCorps       Circle = "grid-corps"
	CircleGeneral         Circle = "general"
)

var circleLabels = []CircleInfo{
	{ID: CircleMyInstitution, Label: "My Institution"},
	{ID: CircleVerifiedSchools, Label: "Verified Schools"},
	{ID: CircleCollegeNetworks, Label: "College Networks"},
	{ID: CircleGridCorps, Label: "Grid Corps"},
	{ID: CircleGeneral, Label: "General"},
}

// Circles lists every circle in display order.
func Circles() []CircleInfo {
	return append([]CircleInfo(nil), circleLabels...)
}

func ParseCircle(s string) (Circle, error) {
	c := Circle(strings.ToLower(strings.TrimSpace(s)))
	for _, info := range circleLabels {
		if info.ID == c {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown circle %q", s)
}

type Module string

const (
	ModuleEarthquake    Module = "Earthquake Preparedness"
	ModuleFlood         Module = "Flood Response"
	ModuleFire          Module = "Fire Safety"
	ModuleFirstAid      Module = "First Aid"
	ModuleRisk          Module = "Risk Management"
	ModuleCommunication Module = "Emergency Communication"
)

var allModules = []Module{
	ModuleEarthquake, ModuleFlood, ModuleFire, ModuleFirstAid, ModuleRisk, ModuleCommunication,
}

func Modules() []Module { return append([]Module(nil), allModules...) }

// ParseModule matches case-insensitively and returns the canonical spelling.
func ParseModule(s string) (Module, error) {
	t := strings.TrimSpace(s)
	for _, m := range allModules {
		if strings.EqualFold(string(m), t) {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown module %q", s)
}

type NotificationType string

const (
	NotificationUpvote   NotificationType = "upvote"
	NotificationReply    NotificationType = "reply"
	NotificationOfficial NotificationType = "official"
	NotificationMention  NotificationType = "mention"
	NotificationBadge    NotificationType = "badge"
)

func ParseNotificationType(s string) (NotificationType, error) {
	switch t := NotificationType(strings.ToLower(strings.TrimSpace(s))); t {
	case NotificationUpvote, NotificationReply, NotificationOfficial, NotificationMention, NotificationBadge:
		return t, nil
	}
	return "", fmt.Errorf("unknown notification type %q", s)
}

// View selects which posts of the feed are visible.
type View string

const (
	ViewFeed      View = "feed"
	ViewTrending  View = "trending"
	ViewBookmarks View = "bookmarks"
)

// ParseView treats an empty string as the plain feed.
func ParseView(s string) (View, error) {
	switch v := View(strings.ToLower(strings.TrimSpace(s))); v {
	case "":
		return ViewFeed, nil
	case ViewFeed, ViewTrending, ViewBookmarks:
		return v, nil
	}
	return "", fmt.Errorf("unknown view %q", s)
}
