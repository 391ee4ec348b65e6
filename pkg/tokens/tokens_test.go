package tokens

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCount_Empty(t *testing.T) {
	assert.Equal(t, 0, Count(""))
}

func TestCount_GrowsWithText(t *testing.T) {
	short := Count("hello")
	long := Count("hello there, I would like to order a telegram bot for my bakery")

	assert.Positive(t, short)
	assert.Greater(t, long, short)
}
