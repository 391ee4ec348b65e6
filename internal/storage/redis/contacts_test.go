package redis

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/sandevgo/deskbot/internal/config"
	"github.com/sandevgo/deskbot/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactStore(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}

	ctx := context.Background()
	client, err := NewClient(ctx, &config.RedisConfig{URL: url})
	require.NoError(t, err)
	defer client.Close()

	store := NewContactStore(client, "deskbot-test:"+uuid.NewString()+":", 0)

	rec, err := store.GetContact(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, rec)

	require.NoError(t, store.SaveContact(ctx, "u1", core.ContactRecord{Name: "Alex", Phone: "+1"}))

	rec, err = store.GetContact(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "Alex", rec.Name)
	assert.False(t, rec.UpdatedAt.IsZero())

	deleted, err := store.DeleteContact(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = store.DeleteContact(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestNewClient_BadURL(t *testing.T) {
	_, err := NewClient(context.Background(), &config.RedisConfig{URL: "not a url"})
	assert.Error(t, err)
}

func TestContactStore_Key(t *testing.T) {
	s := NewContactStore(nil, "deskbot:", 0)
	assert.Equal(t, "deskbot:contact:42", s.key("42"))
}
