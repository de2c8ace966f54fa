package cache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/aranaskd/blogctl/internal/api"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestCache(t *testing.T, ttl time.Duration) *Cache {
	c, err := Open(Config{
		Path:   filepath.Join(t.TempDir(), "posts.db"),
		TTL:    ttl,
		Logger: zerolog.Nop(),
	})
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open(Config{})
	assert.Error(t, err)
}

func TestStoreAndListPosts(t *testing.T) {
	c := openTestCache(t, time.Minute)

	posts := []api.Post{
		{ID: "p1", Title: "First", Content: "Hello"},
		{ID: "p2", Title: "Second", Content: "World"},
	}
	require.NoError(t, c.StorePosts(posts))

	got, err := c.ListPosts()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "First", got[0].Title)
}

func TestStorePostsUpserts(t *testing.T) {
	c := openTestCache(t, time.Minute)

	require.NoError(t, c.StorePost(api.Post{ID: "p1", Title: "First"}))
	require.NoError(t, c.StorePost(api.Post{ID: "p1", Title: "First, edited"}))

	got, err := c.ListPosts()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "First, edited", got[0].Title)
}

func TestGetPost(t *testing.T) {
	c := openTestCache(t, time.Minute)

	post := api.Post{
		ID: "p1", Title: "First", Content: "Hello",
		Comments: []api.Comment{{ID: "c1", UserID: "u2", Username: "bob", Comment: "Nice"}},
	}
	require.NoError(t, c.StorePost(post))

	got, err := c.GetPost("p1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, post, *got)

	missing, err := c.GetPost("nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestStaleEntriesAreInvisible(t *testing.T) {
	// A zero-ish TTL makes everything stale immediately
	c := openTestCache(t, time.Nanosecond)

	require.NoError(t, c.StorePost(api.Post{ID: "p1", Title: "First"}))
	time.Sleep(time.Second + 100*time.Millisecond)

	got, err := c.ListPosts()
	require.NoError(t, err)
	assert.Empty(t, got)

	one, err := c.GetPost("p1")
	require.NoError(t, err)
	assert.Nil(t, one)
}

func TestDeleteAndPurge(t *testing.T) {
	c := openTestCache(t, time.Minute)

	require.NoError(t, c.StorePosts([]api.Post{{ID: "p1"}, {ID: "p2"}}))

	require.NoError(t, c.Delete("p1"))
	got, err := c.ListPosts()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "p2", got[0].ID)

	require.NoError(t, c.Purge())
	got, err = c.ListPosts()
	require.NoError(t, err)
	assert.Empty(t, got)
}
