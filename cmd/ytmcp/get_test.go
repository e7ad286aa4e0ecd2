package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yt-mcp/internal/mcp"
)

func TestParseQuery(t *testing.T) {
	q, err := parseQuery([]string{"limit=5", "x=a=b"})
	require.NoError(t, err)
	assert.Equal(t, mcp.Query{"limit": "5", "x": "a=b"}, q)

	q, err = parseQuery(nil)
	require.NoError(t, err)
	assert.Nil(t, q)

	_, err = parseQuery([]string{"limit"})
	assert.Error(t, err)
	_, err = parseQuery([]string{"=5"})
	assert.Error(t, err)
}
