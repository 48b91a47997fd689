package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "a@b.com", NormalizeEmail("a@b.com"))
	assert.Equal(t, "a@b.com", NormalizeEmail("A@B.COM"))
	assert.Equal(t, "a@b.com", NormalizeEmail("  a@b.com "))
	assert.Equal(t, "", NormalizeEmail("   "))
}
