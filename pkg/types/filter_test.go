package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterNormalizeDefaults(t *testing.T) {
	f := Filter{}
	f.Normalize()

	assert.Equal(t, DefaultPage, f.Page)
	assert.Equal(t, DefaultPageSize, f.PageSize)
	assert.NotNil(t, f.Filter)
}

func TestFilterNormalizeCapsPageSize(t *testing.T) {
	f := Filter{Page: 2, PageSize: 1000}
	f.Normalize()

	assert.Equal(t, 2, f.Page)
	assert.Equal(t, MaxPageSize, f.PageSize)
}

func TestFilterOffset(t *testing.T) {
	f := Filter{Page: 4, PageSize: 10}
	assert.Equal(t, 30, f.Offset())

	f = NewFilter()
	assert.Equal(t, 0, f.Offset())
}
