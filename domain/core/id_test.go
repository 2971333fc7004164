package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewID_Unique(t *testing.T) {
	seen := make(map[ID]bool)
	for i := 0; i < 100; i++ {
		id := NewID()
		assert.False(t, id.IsEmpty())
		assert.False(t, seen[id], "duplicate ID generated")
		seen[id] = true
	}
}

func TestParseSweepID(t *testing.T) {
	id, err := ParseSweepID("sweep-123")
	assert.NoError(t, err)
	assert.Equal(t, "sweep-123", id.String())

	_, err = ParseSweepID("   ")
	assert.Error(t, err)
}

func TestParameterErrors(t *testing.T) {
	err := NewParameterError("n", 0, "must be at least 1")
	assert.True(t, IsParameterError(err))
	assert.False(t, IsNotFoundError(err))

	notFound := NewNotFoundError("sweep", "abc")
	assert.True(t, IsNotFoundError(notFound))
	assert.False(t, IsParameterError(notFound))
}
