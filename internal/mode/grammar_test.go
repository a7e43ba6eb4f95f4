package mode

import (
	"testing"

	"vedit/internal/command"
	"vedit/internal/input"

	"github.com/stretchr/testify/assert"
)

func TestParseNormalSimpleMotion(t *testing.T) {
	res := ParseNormal([]input.Elem{input.Char('j')}, false)
	assert.Equal(t, Success, res.Status)
	assert.Equal(t, []command.Cmd{command.MotionCmd(1, command.MotionDown)}, res.Cmds)
}

func TestParseNormalCountedMotion(t *testing.T) {
	res := ParseNormal([]input.Elem{input.Char('3'), input.Char('w')}, false)
	assert.Equal(t, Success, res.Status)
	assert.Equal(t, []command.Cmd{command.MotionCmd(3, command.MotionForwardWord1)}, res.Cmds)
}

func TestParseNormalDeleteOperator(t *testing.T) {
	res := ParseNormal([]input.Elem{input.Char('d'), input.Char('w')}, false)
	assert.Equal(t, Success, res.Status)
	assert.Equal(t, []command.Cmd{
		command.ChangeStart(),
		command.Delete(1, command.MotionForwardWord1),
		command.ChangeEnd(),
	}, res.Cmds)
}

func TestParseNormalDD(t *testing.T) {
	res := ParseNormal([]input.Elem{input.Char('d'), input.Char('d')}, false)
	assert.Equal(t, Success, res.Status)
	assert.Equal(t, command.KindDelete, res.Cmds[1].Kind)
	assert.Equal(t, command.MotionLine, res.Cmds[1].M)
	assert.Equal(t, 1, res.Cmds[1].Reps)
}

func TestParseNormalCountedDD(t *testing.T) {
	res := ParseNormal([]input.Elem{input.Char('3'), input.Char('d'), input.Char('d')}, false)
	assert.Equal(t, Success, res.Status)
	assert.Equal(t, []command.Cmd{
		command.ChangeStart(),
		command.Delete(3, command.MotionLine),
		command.ChangeEnd(),
	}, res.Cmds)
}

func TestParseNormalXShortcut(t *testing.T) {
	res := ParseNormal([]input.Elem{input.Char('x')}, false)
	assert.Equal(t, Success, res.Status)
	assert.Equal(t, command.MotionRight, res.Cmds[1].M)
}

func TestParseNormalIncompleteOnBareD(t *testing.T) {
	res := ParseNormal([]input.Elem{input.Char('d')}, false)
	assert.Equal(t, Incomplete, res.Status)
}

func TestParseNormalLineJumpViaEnter(t *testing.T) {
	res := ParseNormal([]input.Elem{input.Char('4'), input.Char('2'), input.Enter}, false)
	assert.Equal(t, Success, res.Status)
	assert.Equal(t, command.Line(42), res.Cmds[0])
}

func TestParseNormalLineJumpViaG(t *testing.T) {
	res := ParseNormal([]input.Elem{input.Char('5'), input.Char('G')}, false)
	assert.Equal(t, Success, res.Status)
	assert.Equal(t, command.Line(5), res.Cmds[0])
}

func TestParseNormalGG(t *testing.T) {
	res := ParseNormal([]input.Elem{input.Char('g'), input.Char('g')}, false)
	assert.Equal(t, Success, res.Status)
	assert.Equal(t, command.Line(1), res.Cmds[0])
}

func TestParseNormalYankYY(t *testing.T) {
	res := ParseNormal([]input.Elem{input.Char('y'), input.Char('y')}, false)
	assert.Equal(t, Success, res.Status)
	assert.Equal(t, command.Yank(command.DefaultRegister, 1, command.MotionLine), res.Cmds[0])
}

func TestParseNormalCountedYY(t *testing.T) {
	res := ParseNormal([]input.Elem{input.Char('2'), input.Char('y'), input.Char('y')}, false)
	assert.Equal(t, Success, res.Status)
	assert.Equal(t, command.Yank(command.DefaultRegister, 2, command.MotionLine), res.Cmds[0])
}

func TestParseNormalRegisteredYank(t *testing.T) {
	res := ParseNormal([]input.Elem{input.Char('"'), input.Char('a'), input.Char('y'), input.Char('y')}, false)
	assert.Equal(t, Success, res.Status)
	assert.Equal(t, command.Register('a'), res.Cmds[0].Reg)
}

func TestParseNormalPaste(t *testing.T) {
	res := ParseNormal([]input.Elem{input.Char('p')}, false)
	assert.Equal(t, Success, res.Status)
	assert.Equal(t, command.MotionNextLine, res.Cmds[1].M)
}

func TestParseNormalTilInclusive(t *testing.T) {
	res := ParseNormal([]input.Elem{input.Char('t'), input.Char('x')}, false)
	assert.Equal(t, Success, res.Status)
	assert.Equal(t, command.MotionTil1, res.Cmds[0].M)
	assert.Equal(t, 'x', res.Cmds[0].Ch)
}

func TestParseNormalQuit(t *testing.T) {
	res := ParseNormal([]input.Elem{input.Control('q')}, false)
	assert.Equal(t, Success, res.Status)
	assert.Equal(t, command.Quit(), res.Cmds[0])
}

func TestParseNormalEnterCliMode(t *testing.T) {
	res := ParseNormal([]input.Elem{input.Char(':')}, false)
	assert.Equal(t, Success, res.Status)
	assert.Equal(t, command.ModeCli, res.Cmds[0].Mode)
}

func TestParseNormalOpensLineBelow(t *testing.T) {
	res := ParseNormal([]input.Elem{input.Char('o')}, false)
	assert.Equal(t, Success, res.Status)
	assert.Equal(t, []command.Cmd{
		command.MotionCmd(1, command.MotionNextLine),
		command.SetMode(command.ModeInsert),
		command.Insert("\n"),
		command.MotionCmd(1, command.MotionLeft),
	}, res.Cmds)
}

func TestParseNormalOpensLineAbove(t *testing.T) {
	res := ParseNormal([]input.Elem{input.Char('O')}, false)
	assert.Equal(t, Success, res.Status)
	assert.Equal(t, []command.Cmd{
		command.MotionCmd(1, command.MotionSOL),
		command.SetMode(command.ModeInsert),
		command.Insert("\n"),
		command.MotionCmd(1, command.MotionLeft),
	}, res.Cmds)
}

func TestParseNormalMacroStartNeedsRegister(t *testing.T) {
	res := ParseNormal([]input.Elem{input.Char('q')}, false)
	assert.Equal(t, Incomplete, res.Status)
}

func TestParseNormalMacroStart(t *testing.T) {
	res := ParseNormal([]input.Elem{input.Char('q'), input.Char('a')}, false)
	assert.Equal(t, Success, res.Status)
	assert.Equal(t, command.MacroStart('a'), res.Cmds[0])
}

func TestParseNormalMacroEndWhileRecording(t *testing.T) {
	res := ParseNormal([]input.Elem{input.Char('q')}, true)
	assert.Equal(t, Success, res.Status)
	assert.Equal(t, command.MacroEnd(), res.Cmds[0])
}

func TestParseInsertTypesChar(t *testing.T) {
	res := ParseInsert([]input.Elem{input.Char('a')})
	assert.Equal(t, Success, res.Status)
	assert.Equal(t, command.Insert("a"), res.Cmds[0])
}

func TestParseInsertEscExitsAndEndsChange(t *testing.T) {
	res := ParseInsert([]input.Elem{input.Esc})
	assert.Equal(t, Success, res.Status)
	assert.Equal(t, command.ModeNormal, res.Cmds[0].Mode)
	assert.Equal(t, command.KindChangeEnd, res.Cmds[1].Kind)
}

func TestParseCliInsertsChar(t *testing.T) {
	res := ParseCli([]input.Elem{input.Char('q')})
	assert.Equal(t, Success, res.Status)
	assert.Equal(t, command.KindCliEdit, res.Cmds[0].Kind)
}

func TestParseCliEnterExecutes(t *testing.T) {
	res := ParseCli([]input.Elem{input.Enter})
	assert.Equal(t, Success, res.Status)
	assert.Equal(t, command.KindCliExec, res.Cmds[1].Kind)
}

func TestInterpreterFeedMetaModeSwitch(t *testing.T) {
	it := NewInterpreter()
	emit, quit, closed := it.Feed(input.Char('i'))
	assert.False(t, quit)
	assert.Nil(t, closed)
	assert.Equal(t, command.ModeInsert, it.State.Mode)
	assert.Equal(t, command.ModeInsert, emit[0].Mode)
}

func TestInterpreterMacroRecordStartStop(t *testing.T) {
	it := NewInterpreter()

	emit, _, _ := it.Feed(input.Char('q'))
	assert.Nil(t, emit)
	assert.Nil(t, it.State.Record)

	emit, _, _ = it.Feed(input.Char('a'))
	assert.Nil(t, emit)
	if assert.NotNil(t, it.State.Record) {
		assert.Equal(t, command.MacroID('a'), *it.State.Record)
	}

	emit, _, _ = it.Feed(input.Char('i'))
	assert.Equal(t, command.ModeInsert, emit[0].Mode)

	emit, _, _ = it.Feed(input.Char('X'))
	assert.Equal(t, command.Insert("X"), emit[0])

	emit, _, _ = it.Feed(input.Esc)
	assert.Equal(t, command.ModeNormal, emit[0].Mode)

	emit, _, _ = it.Feed(input.Char('q'))
	assert.Nil(t, emit)
	assert.Nil(t, it.State.Record)

	recorded := it.State.Macros.Get('a')
	assert.Equal(t, []command.Cmd{
		command.SetMode(command.ModeInsert),
		command.Insert("X"),
		command.SetMode(command.ModeNormal),
	}, recorded)
}

func TestInterpreterChangeBracketPushesHistory(t *testing.T) {
	it := NewInterpreter()
	emit, _, closed := it.Feed(input.Char('x'))
	assert.NotEmpty(t, emit)
	assert.Len(t, closed, 1) // just the Delete between ChangeStart/ChangeEnd
	assert.Equal(t, command.KindDelete, closed[0].Kind)
}

func TestInterpreterIncompleteThenComplete(t *testing.T) {
	it := NewInterpreter()
	emit, quit, _ := it.Feed(input.Char('d'))
	assert.Nil(t, emit)
	assert.False(t, quit)
	emit2, _, _ := it.Feed(input.Char('w'))
	assert.NotEmpty(t, emit2)
}

func TestInterpreterQuit(t *testing.T) {
	it := NewInterpreter()
	emit, quit, _ := it.Feed(input.Control('q'))
	assert.True(t, quit)
	assert.Equal(t, command.Quit(), emit[0])
}
