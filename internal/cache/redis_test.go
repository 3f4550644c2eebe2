package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilCacheIsNoop(t *testing.T) {
	var c *Cache
	ctx := context.Background()

	var dest map[string]int
	hit, err := c.GetJSON(ctx, "k", &dest)
	require.NoError(t, err)
	assert.False(t, hit)

	assert.NoError(t, c.SetJSON(ctx, "k", map[string]int{"a": 1}))
	assert.NoError(t, c.Delete(ctx, "k"))
	assert.NoError(t, c.DeletePrefix(ctx, "k"))
	assert.NoError(t, c.Close())
}

func TestNewRejectsBadURL(t *testing.T) {
	_, err := New("not a url", time.Minute)
	assert.Error(t, err)
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "webtoons:list:2:5:romance:", WebtoonListKey(2, 5, "romance", ""))
	assert.Contains(t, WebtoonListKey(1, 10, "", ""), WebtoonListPrefix())
	assert.Equal(t, "chat:unread:42", UnreadCountKey(42))
}
