package source

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPages(t *testing.T) {
	doc := Pages{{"Stand Table", "Tree"}, {}}

	n, err := doc.PageCount()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	lines, err := doc.Lines(1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Stand Table", "Tree"}, lines)

	lines[0] = "changed"
	again, _ := doc.Lines(1)
	assert.Equal(t, "Stand Table", again[0])

	lines, err = doc.Lines(2)
	require.NoError(t, err)
	assert.Empty(t, lines)

	for _, p := range []int{0, 3, -1} {
		_, err := doc.Lines(p)
		assert.ErrorIs(t, err, ErrPageOutOfRange)
	}
	assert.NoError(t, doc.Close())
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	errBoom := errors.New("boom")

	r.Register("mem", func(path string) (Document, error) {
		return Pages{{path}}, nil
	})
	r.Register("broken", func(string) (Document, error) {
		return nil, errBoom
	})

	assert.Equal(t, []string{"broken", "mem"}, r.List())
	assert.NotNil(t, r.Get("mem"))
	assert.Nil(t, r.Get("nope"))

	doc, err := r.Open("mem", "x.txt")
	require.NoError(t, err)
	lines, err := doc.Lines(1)
	require.NoError(t, err)
	assert.Equal(t, []string{"x.txt"}, lines)

	_, err = r.Open("broken", "x")
	assert.ErrorIs(t, err, errBoom)

	_, err = r.Open("nope", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown line source "nope"`)
}

func TestGlobalRegistry(t *testing.T) {
	Register("test-global", func(string) (Document, error) { return Pages{}, nil })
	assert.Contains(t, List(), "test-global")
	assert.NotNil(t, Get("test-global"))

	doc, err := Open("test-global", "")
	require.NoError(t, err)
	n, _ := doc.PageCount()
	assert.Equal(t, 0, n)
}
