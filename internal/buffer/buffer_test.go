package buffer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertAndUndoRoundTrip(t *testing.T) {
	b := NewFromString("hello")
	b.InsertString(5, " world")
	assert.Equal(t, "hello world", b.Text())
	b.Undo()
	assert.Equal(t, "hello", b.Text())
	b.Redo()
	assert.Equal(t, "hello world", b.Text())
}

func TestUndoRedoNoOpOnEmptyStack(t *testing.T) {
	b := NewFromString("x")
	b.Undo() // no history yet
	assert.Equal(t, "x", b.Text())
	b.Redo()
	assert.Equal(t, "x", b.Text())
}

func TestRemoveCharZeroIsNoOp(t *testing.T) {
	b := NewFromString("abc")
	b.RemoveChar(0)
	assert.Equal(t, "abc", b.Text())
	assert.False(t, b.CanUndo())
}

func TestInsertStringReturnsSourceLength(t *testing.T) {
	b := NewFromString("")
	n := b.InsertString(0, "a\tb")
	assert.Equal(t, 3, n) // source rune length, not expanded length
	assert.Equal(t, "a    b", b.Text())
}

func TestJoinLine(t *testing.T) {
	b := NewFromString("one\ntwo\n")
	b.JoinLine(0)
	assert.Equal(t, "onetwo\n", b.Text())
}

func TestDeleteLineRange(t *testing.T) {
	b := NewFromString("one\ntwo\nthree\n")
	b.DeleteLineRange(0, 1)
	assert.Equal(t, "two\nthree\n", b.Text())
}

func TestSaveRequiresPath(t *testing.T) {
	b := NewFromString("x")
	err := b.Save()
	assert.ErrorIs(t, err, ErrNoPath)
}

func TestSaveWritesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.txt")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))
	b := NewFromPathOrEmpty(path)
	b.ReplaceBuffer("new contents")
	require.NoError(t, b.Save())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new contents", string(data))
}

func TestNewFromPathInvalidUnicode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.txt")
	require.NoError(t, os.WriteFile(path, []byte{0xff, 0xfe, 0x00}, 0o644))
	_, err := NewFromPath(path)
	assert.ErrorIs(t, err, ErrInvalidUnicode)
}

func TestBoundedUndoStack(t *testing.T) {
	b := NewFromString("")
	b.maxUndo = 3
	for i := 0; i < 10; i++ {
		b.InsertString(b.Len(), "x")
	}
	assert.LessOrEqual(t, len(b.behind), 3)
}
