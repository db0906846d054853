package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"local.dev/prepcircle-backend/internal/models"
)

func TestLoadFixtures_Defaults(t *testing.T) {
	fx, err := LoadFixtures("")
	require.NoError(t, err)
	assert.Len(t, fx.Posts, 6)
	assert.Len(t, fx.Notifications, 5)
	assert.Len(t, fx.Videos, 4)
	assert.NotEmpty(t, fx.Profiles)
	for _, p := range fx.Posts {
		assert.NotNil(t, p.Replies, p.ID)
	}
}

func TestParseFixtures_CanonicalizesEnums(t *testing.T) {
	fx, err := ParseFixtures([]byte(`
posts:
  - id: a
    content: hi
    module: first aid
    circle: General
    upvotes: 3
    upvotedBy: [x]
`))
	require.NoError(t, err)
	assert.Equal(t, models.ModuleFirstAid, fx.Posts[0].Module)
	assert.Equal(t, models.CircleGeneral, fx.Posts[0].Circle)

	s := NewStore(fx)
	p, err := s.Post("a", "x")
	require.NoError(t, err)
	assert.Equal(t, 3, p.Upvotes)
	assert.True(t, p.UpvotedByMe)
}

func TestParseFixtures_Errors(t *testing.T) {
	tests := map[string]string{
		"unknown module":    "posts:\n  - {id: a, module: Cooking, circle: general}\n",
		"unknown circle":    "posts:\n  - {id: a, module: First Aid, circle: mars}\n",
		"missing id":        "posts:\n  - {module: First Aid, circle: general}\n",
		"duplicate id":      "posts:\n  - {id: a, module: First Aid, circle: general}\n  - {id: a, module: First Aid, circle: general}\n",
		"negative upvotes":  "posts:\n  - {id: a, module: First Aid, circle: general, upvotes: -1}\n",
		"notification type": "notifications:\n  - {id: n, type: poke}\n",
		"video module":      "videos:\n  - {id: v, module: Knitting}\n",
		"bad yaml":          "posts: [",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseFixtures([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadFixtures_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("videos:\n  - {id: v9, title: Drill, module: Fire Safety}\n"), 0o644))

	fx, err := LoadFixtures(path)
	require.NoError(t, err)
	require.Len(t, fx.Videos, 1)

	s := NewStore(fx)
	v, ok := s.Video("v9")
	require.True(t, ok)
	assert.Equal(t, "Drill", v.Title)
	assert.Len(t, s.Videos(models.ModuleFire), 1)
	assert.Empty(t, s.Videos(models.ModuleFlood))

	_, err = LoadFixtures(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestOverview(t *testing.T) {
	s := newTestStore(t)
	_, err := s.SubmitReport("2", adult, "duplicate")
	require.NoError(t, err)
	_, err = s.SubmitReport("6", adult, "off topic")
	require.NoError(t, err)
	s.MarkAllRead("demo_alex")

	ov := s.Overview()
	assert.Equal(t, 6, ov.Posts)
	assert.Equal(t, 2, ov.Replies)
	assert.Equal(t, 2, ov.Reports)
	assert.Equal(t, 1, ov.Inboxes)
	assert.Equal(t, 2, ov.PostsByCircle[models.CircleGridCorps])
	assert.Equal(t, 1, ov.PostsByModule[models.ModuleRisk])
	require.Len(t, ov.ReportQueue, 2)
	assert.Equal(t, "6", ov.ReportQueue[0].PostID)
}
