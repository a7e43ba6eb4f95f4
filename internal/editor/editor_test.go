package editor

import (
	"testing"

	"vedit/internal/buffer"
	"vedit/internal/input"

	"github.com/stretchr/testify/assert"
)

func TestHandleKeyInsertsChar(t *testing.T) {
	b := buffer.NewFromString("\n")
	e := New(b, 80, 10)
	e.HandleKey(input.Char('i'))
	e.HandleKey(input.Char('x'))
	assert.Equal(t, "x\n", b.Text())
}

func TestHandleKeyQuitSetsFlag(t *testing.T) {
	b := buffer.NewFromString("abc\n")
	e := New(b, 80, 10)
	e.HandleKey(input.Control('q'))
	assert.True(t, e.Quit)
}

func TestHandleKeyDeleteWordPushesHistory(t *testing.T) {
	b := buffer.NewFromString("hello world\n")
	e := New(b, 80, 10)
	e.HandleKey(input.Char('d'))
	e.HandleKey(input.Char('w'))
	assert.Equal(t, "world\n", b.Text())
	assert.Equal(t, 1, e.Dispatch.History.Len())
}

func TestReplayMacroAppliesRecordedCommands(t *testing.T) {
	b := buffer.NewFromString("\n")
	e := New(b, 80, 10)
	e.HandleKey(input.Char('i'))
	e.Interp.State.StartRecording('q')
	e.HandleKey(input.Char('a'))
	e.Interp.State.StopRecording()
	e.ReplayMacro('q')
	assert.Equal(t, "aa\n", b.Text())
}
