package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseIntOr(t *testing.T) {
	assert.Equal(t, 3, ParseIntOr("3", 1))
	assert.Equal(t, 1, ParseIntOr("", 1))
	assert.Equal(t, 1, ParseIntOr("abc", 1))
	assert.Equal(t, -2, ParseIntOr("-2", 1))
}
