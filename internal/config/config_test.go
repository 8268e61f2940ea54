package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptstock/gostock/internal/store"
)

func TestGetUnsetKeyReturnsEmpty(t *testing.T) {
	c := New(store.NewMemStore())

	v, err := c.Get("nope")
	require.NoError(t, err)
	assert.Empty(t, v)

	has, err := c.HasAPIToken()
	require.NoError(t, err)
	assert.False(t, has)
}

func TestSetAndGetRoundTrip(t *testing.T) {
	c := New(store.NewMemStore())

	require.NoError(t, c.SetAPIToken("tok-123"))
	token, err := c.APIToken()
	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)

	has, err := c.HasAPIToken()
	require.NoError(t, err)
	assert.True(t, has)

	require.NoError(t, c.SetSelectedStockPrompt("prompt-1"))
	id, err := c.SelectedStockPrompt()
	require.NoError(t, err)
	assert.Equal(t, "prompt-1", id)
}

func TestSetReplacesPreviousValue(t *testing.T) {
	c := New(store.NewMemStore())

	require.NoError(t, c.SetAPIToken("old"))
	require.NoError(t, c.SetAPIToken("new"))

	token, err := c.APIToken()
	require.NoError(t, err)
	assert.Equal(t, "new", token)
}

func TestBlankTokenDoesNotCountAsConfigured(t *testing.T) {
	c := New(store.NewMemStore())

	require.NoError(t, c.SetAPIToken("   "))
	has, err := c.HasAPIToken()
	require.NoError(t, err)
	assert.False(t, has)
}
