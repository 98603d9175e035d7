package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_ClampsAndComputesPages(t *testing.T) {
	p := New(0, 500, 250)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 100, p.Limit)
	assert.Equal(t, 3, p.Pages)
	assert.True(t, p.HasNext)
	assert.False(t, p.HasPrev)
}

func TestBounds(t *testing.T) {
	start, end := New(2, 10, 15).Bounds()
	assert.Equal(t, 10, start)
	assert.Equal(t, 15, end)

	start, end = New(5, 10, 15).Bounds()
	assert.Equal(t, 15, start)
	assert.Equal(t, 15, end)
}

func TestFromRequest_Defaults(t *testing.T) {
	req := FromRequest("", "abc")
	assert.Equal(t, 1, req.Page)
	assert.Equal(t, 10, req.Limit)
}
