package rope

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBasic(t *testing.T) {
	r := New("hello world")
	assert.Equal(t, 11, r.Len())
	assert.Equal(t, "hello world", r.String())
}

func TestInsertRemoveImmutable(t *testing.T) {
	r := New("hello")
	r2 := r.Insert(5, " world")
	assert.Equal(t, "hello", r.String(), "original rope must be unchanged")
	assert.Equal(t, "hello world", r2.String())

	r3 := r2.Remove(5, 11)
	assert.Equal(t, "hello world", r2.String(), "r2 must be unchanged by r3's mutation")
	assert.Equal(t, "hello", r3.String())
}

func TestSliceAndChar(t *testing.T) {
	r := New("abcdef")
	assert.Equal(t, "cde", r.Slice(2, 5))
	assert.Equal(t, 'c', r.Char(2))
}

func TestLineIndexing(t *testing.T) {
	r := New("one\ntwo\nthree\n")
	assert.Equal(t, 4, r.LineCount()) // trailing newline = extra line
	assert.Equal(t, 0, r.LineStart(0))
	assert.Equal(t, 4, r.LineStart(1))
	assert.Equal(t, 8, r.LineStart(2))
	assert.Equal(t, 14, r.LineStart(3))
	assert.Equal(t, 0, r.LineOf(0))
	assert.Equal(t, 0, r.LineOf(3))
	assert.Equal(t, 1, r.LineOf(4))
	assert.Equal(t, 2, r.LineOf(9))
}

func TestAppendAndEmpty(t *testing.T) {
	e := Empty()
	assert.Equal(t, 0, e.Len())
	r := e.Append("abc")
	assert.Equal(t, "abc", r.String())
}
