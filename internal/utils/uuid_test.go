package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDGenerator_Generate(t *testing.T) {
	g := NewUUIDGenerator()

	first, second := g.Generate(), g.Generate()

	parsed, err := uuid.Parse(first)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
	assert.NotEqual(t, first, second)
}

func TestIsUUID(t *testing.T) {
	assert.True(t, IsUUID("0190a5f2-6c1e-7c3a-9f4e-2b8d1c0e5a77"))
	assert.False(t, IsUUID(""))
	assert.False(t, IsUUID("not-a-uuid"))
	assert.False(t, IsUUID("{0190a5f2-6c1e-7c3a-9f4e-2b8d1c0e5a77}"))
	assert.False(t, IsUUID("0190a5f26c1e7c3a9f4e2b8d1c0e5a77"))
}
