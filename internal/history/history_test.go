package history

import (
	"testing"

	"vedit/internal/command"

	"github.com/stretchr/testify/assert"
)

func TestRegistersDefaultEmpty(t *testing.T) {
	r := NewRegisters()
	assert.Equal(t, "", r.Get(command.DefaultRegister))
	r.Set(command.DefaultRegister, "hello")
	assert.Equal(t, "hello", r.Get(command.DefaultRegister))
}

func TestMacrosRecordAppend(t *testing.T) {
	m := NewMacros()
	m.Append('q', command.MotionCmd(1, command.MotionDown))
	m.Append('q', command.Undo())
	assert.Len(t, m.Get('q'), 2)
	assert.Empty(t, m.Get('z'))
}

func TestHistoryPushFrontBounded(t *testing.T) {
	h := NewHistory()
	h.maxLen = 2
	h.Push([]command.Cmd{command.Undo()})
	h.Push([]command.Cmd{command.Redo()})
	h.Push([]command.Cmd{command.Save()})
	assert.Equal(t, 2, h.Len())
	assert.Equal(t, command.KindSave, h.Front()[0].Kind)
}

func TestRecorderStartEnd(t *testing.T) {
	var r Recorder
	assert.False(t, r.Recording())
	r.Start()
	assert.True(t, r.Recording())
	r.Tap(command.Undo())
	r.Tap(command.Redo())
	out := r.End()
	assert.False(t, r.Recording())
	assert.Len(t, out, 2)
}

func TestModeStateTapWhileRecording(t *testing.T) {
	s := NewModeState()
	assert.Nil(t, s.Record)
	s.StartRecording('q')
	s.Tap(command.Undo())
	assert.Len(t, s.Macros.Get('q'), 1)
	s.StopRecording()
	s.Tap(command.Undo())
	assert.Len(t, s.Macros.Get('q'), 1)
}
