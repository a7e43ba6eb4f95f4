package dispatch

import (
	"testing"

	"vedit/internal/buffer"
	"vedit/internal/command"

	"github.com/stretchr/testify/assert"
)

func TestApplyInsertAdvancesCursor(t *testing.T) {
	b := buffer.NewFromString("abc\n")
	d := New(b, 80, 10)
	d.Apply(command.Insert("XY"))
	assert.Equal(t, "XYabc\n", b.Text())
	assert.Equal(t, 2, d.block().Main.C)
}

func TestApplyMotionRight(t *testing.T) {
	b := buffer.NewFromString("abc\n")
	d := New(b, 80, 10)
	d.Apply(command.MotionCmd(2, command.MotionRight))
	assert.Equal(t, 2, d.block().Main.C)
}

func TestApplyDeleteWord(t *testing.T) {
	b := buffer.NewFromString("hello world\n")
	d := New(b, 80, 10)
	d.Apply(command.Delete(1, command.MotionForwardWord1))
	assert.Equal(t, "world\n", b.Text())
}

func TestApplyYankAndPasteLine(t *testing.T) {
	b := buffer.NewFromString("one\ntwo\n")
	d := New(b, 80, 10)
	d.Apply(command.Yank(command.DefaultRegister, 1, command.MotionLine))
	assert.Equal(t, "one\n", d.Registers.Get(command.DefaultRegister))
	d.Apply(command.Paste(1, command.DefaultRegister, command.MotionNextLine))
	assert.Equal(t, "one\none\ntwo\n", b.Text()) // pastes below the cursor's current line
}

func TestApplyYankTwoLinesWithReps(t *testing.T) {
	b := buffer.NewFromString("one\ntwo\nthree\n")
	d := New(b, 80, 10)
	d.Apply(command.Yank(command.DefaultRegister, 2, command.MotionLine))
	assert.Equal(t, "one\ntwo\n", d.Registers.Get(command.DefaultRegister))
}

func TestApplyUndoRedoRoundTrip(t *testing.T) {
	b := buffer.NewFromString("abc\n")
	d := New(b, 80, 10)
	d.Apply(command.Insert("X"))
	assert.Equal(t, "Xabc\n", b.Text())
	d.Apply(command.Undo())
	assert.Equal(t, "abc\n", b.Text())
	d.Apply(command.Redo())
	assert.Equal(t, "Xabc\n", b.Text())
}

func TestApplySaveEmitsSaveBuffer(t *testing.T) {
	b := buffer.NewFromString("abc\n")
	b.SetPath("/tmp/whatever.txt")
	d := New(b, 80, 10)
	follow := d.Apply(command.Save())
	assert.Len(t, follow, 1)
	assert.Equal(t, command.KindSaveBuffer, follow[0].Kind)
}

func TestParseCliColonCommands(t *testing.T) {
	assert.Equal(t, []command.Cmd{command.Quit()}, ParseCli(":q"))
	assert.Equal(t, []command.Cmd{command.Save(), command.Quit()}, ParseCli(":wq"))
	assert.Equal(t, []command.Cmd{command.SaveAs("foo.txt")}, ParseCli(":w foo.txt"))
	assert.Nil(t, ParseCli(":bogus"))
}

func TestApplyBufferNextWraps(t *testing.T) {
	b := buffer.NewFromString("one\n")
	d := New(b, 80, 10)
	d.Apply(command.Open("/does/not/exist.txt"))
	assert.Equal(t, 1, d.Focus)
	d.Apply(command.BufferNext())
	assert.Equal(t, 0, d.Focus)
}

func TestApplySearchForwardJumpsToMatch(t *testing.T) {
	b := buffer.NewFromString("hello world\n")
	d := New(b, 80, 10)
	d.Apply(command.VarSet("__search_forward", "world"))
	assert.Equal(t, 6, d.block().Main.C)
	assert.Len(t, d.block().Search.Matches(), 1)
}

func TestApplyResizeReprojectsAllBlocks(t *testing.T) {
	b := buffer.NewFromString("abc\n")
	d := New(b, 80, 10)
	d.Apply(command.Resize(40, 5))
	assert.Equal(t, 40, d.block().Width)
	assert.Equal(t, 5, d.block().Height)
}

func TestApplyDeleteLineShortcut(t *testing.T) {
	b := buffer.NewFromString("a\nb\nc\n")
	d := New(b, 80, 10)
	d.Apply(command.Delete(1, command.MotionLine))
	assert.Equal(t, "b\nc\n", b.Text())
}
