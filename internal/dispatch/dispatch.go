// Package dispatch implements C10: applies a single Command to the
// focused BufferBlock, returning zero or more follow-up Commands.
// Grounded on the per-Kind contracts and the three state machines
// (Mode, history recorder, macro recorder) in spec.md §4.10, and on the
// dispatch-table idiom in dshills-keystorm's internal engine (a big
// switch over a Kind-plus-fields Cmd, not a trait-object visitor).
package dispatch

import (
	"strings"

	"vedit/internal/buffer"
	"vedit/internal/command"
	"vedit/internal/cursor"
	"vedit/internal/history"
	"vedit/internal/layout"
	"vedit/internal/rope"
	"vedit/internal/search"
)

// Dispatcher owns the editor-level state the spec assigns to the
// Display thread: the buffer list and the registers/history records
// (C11), plus per-buffer BufferBlocks (C7). Macros live in the
// interpreter's ModeState, not here.
type Dispatcher struct {
	Buffers   []*buffer.Buffer
	Blocks    []*layout.BufferBlock
	Focus     int
	Registers *history.Registers
	History   *history.History
	Vars      map[string]string
	cliText   string
}

func New(buf *buffer.Buffer, sx, sy int) *Dispatcher {
	return &Dispatcher{
		Buffers:   []*buffer.Buffer{buf},
		Blocks:    []*layout.BufferBlock{layout.NewBufferBlock(buf.Rope(), sx, sy, buf.Config())},
		Registers: history.NewRegisters(),
		History:   history.NewHistory(),
		Vars:      make(map[string]string),
	}
}

func (d *Dispatcher) buf() *buffer.Buffer        { return d.Buffers[d.Focus] }
func (d *Dispatcher) block() *layout.BufferBlock { return d.Blocks[d.Focus] }

// CliText returns the in-progress Cli mini-buffer text (cmd/vedit's View
// renders it as the prompt line).
func (d *Dispatcher) CliText() string { return d.cliText }

// Apply runs one Command against the focused buffer, returning follow-up
// Commands (e.g. SaveBuffer, which editor.Editor writes to disk, or
// CliExec's parsed command list).
func (d *Dispatcher) Apply(c command.Cmd) []command.Cmd {
	b := d.buf()
	blk := d.block()
	sx := blk.Width

	switch c.Kind {
	case command.KindMotion:
		blk.Main = d.motion(b, blk, c.M, c.Reps, c.Ch)
		blk.Reproject(b.Rope())

	case command.KindDelete:
		d.delete(b, blk, c.M, c.Reps, c.Ch)
		blk.Reproject(b.Rope())

	case command.KindYank:
		d.yank(b, blk, c.Reg, c.M, c.Ch, c.Reps)

	case command.KindPaste:
		d.paste(b, blk, c.Reps, c.Reg, c.M)
		blk.Reproject(b.Rope())

	case command.KindInsert:
		srcLen := b.InsertString(blk.Main.C, c.Text)
		blk.Main = cursor.FromChar(b.Rope(), sx, b.Config(), blk.Main.C+srcLen, 0)
		blk.Main.XHint = blk.Main.R
		blk.Reproject(b.Rope())

	case command.KindRemoveChar:
		d.removeChar(b, blk, c.Dx)
		blk.Reproject(b.Rope())

	case command.KindJoin:
		b.JoinLine(blk.Main.LineInx)
		blk.Main = cursor.Update(b.Rope(), sx, b.Config(), blk.Main)
		blk.Reproject(b.Rope())

	case command.KindLine:
		lineInx := c.N - 1
		if c.N <= 0 {
			lineInx = b.LineCount() - 1
		}
		blk.Main = cursor.FromLine(b.Rope(), sx, b.Config(), lineInx)
		blk.Reproject(b.Rope())

	case command.KindLineNav:
		blk.Main = cursor.MoveToLC(b.Rope(), sx, blk.Main, c.Dx)
		blk.Reproject(b.Rope())

	case command.KindScroll:
		blk.Start = cursor.MoveToY(b.Rope(), sx, blk.Start, c.Dx)
		blk.Reproject(b.Rope())

	case command.KindScrollPage:
		// Deliberately preserved quirk (spec.md §9): the page step is
		// viewport_width / ratio, not viewport_height / ratio.
		delta := 0
		if c.Dx != 0 {
			delta = (blk.Width / abs(c.Dx)) * sign(c.Dx)
		}
		blk.Start = cursor.MoveToY(b.Rope(), sx, blk.Start, delta)
		blk.Reproject(b.Rope())

	case command.KindBufferNext:
		d.Focus = (d.Focus + 1) % len(d.Buffers)

	case command.KindBufferPrev:
		d.Focus = (d.Focus - 1 + len(d.Buffers)) % len(d.Buffers)

	case command.KindUndo:
		b.Undo()
		blk.Main = cursor.Update(b.Rope(), sx, b.Config(), blk.Main)
		blk.Reproject(b.Rope())

	case command.KindRedo:
		b.Redo()
		blk.Main = cursor.Update(b.Rope(), sx, b.Config(), blk.Main)
		blk.Reproject(b.Rope())

	case command.KindSave:
		return []command.Cmd{command.SaveBuffer(b.Path(), b.Text())}

	case command.KindSaveAs:
		b.SetPath(c.Text)
		return []command.Cmd{command.SaveBuffer(b.Path(), b.Text())}

	case command.KindOpen:
		nb := buffer.NewFromPathOrEmpty(c.Text)
		d.Buffers = append(d.Buffers, nb)
		d.Blocks = append(d.Blocks, layout.NewBufferBlock(nb.Rope(), sx, blk.Height, nb.Config()))
		d.Focus = len(d.Buffers) - 1

	case command.KindChangeRepeat:
		return d.History.Front()

	case command.KindCliEdit:
		for _, sub := range c.Cli {
			switch sub.Kind {
			case command.KindInsert:
				d.cliText += sub.Text
			case command.KindRemoveChar:
				if sub.Dx < 0 && len(d.cliText) > 0 {
					d.cliText = d.cliText[:len(d.cliText)-1]
				}
			}
		}

	case command.KindCliExec:
		cmds := ParseCli(d.cliText)
		d.cliText = ""
		return cmds

	case command.KindCliCancel:
		d.cliText = ""

	case command.KindVarSet:
		switch c.Text {
		case "__search_forward":
			d.runSearch(b, blk, c.Value, false)
		case "__search_backward":
			d.runSearch(b, blk, c.Value, true)
		default:
			d.Vars[c.Text] = c.Value
		}

	case command.KindResize:
		for i, blk := range d.Blocks {
			blk.Width, blk.Height = c.W, c.H
			blk.Reproject(d.Buffers[i].Rope())
		}
	}

	return nil
}

// runSearch installs blk.Search over needle and jumps the cursor to the
// match NextFromPosition(cursor, 1) picks: one step past the first match
// starting at or after the cursor, wrapping (spec.md §6.3's `/`/`?`
// mini-buffer forms, resolved through C5's search.Results).
func (d *Dispatcher) runSearch(b *buffer.Buffer, blk *layout.BufferBlock, needle string, reverse bool) {
	if needle == "" {
		return
	}
	blk.Search = search.NewSearch(b.Rope(), needle, reverse)
	if m, ok := blk.Search.NextFromPosition(blk.Main.C, 1); ok {
		blk.Main = cursor.FromChar(b.Rope(), blk.Width, b.Config(), m.Start, 0)
	}
	blk.Reproject(b.Rope())
}

// PushHistory records a completed change vector (called by the caller
// once an Interpreter.Feed reports a non-nil closed vector).
func (d *Dispatcher) PushHistory(cmds []command.Cmd) {
	d.History.Push(cmds)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sign(n int) int {
	if n < 0 {
		return -1
	}
	return 1
}

// motion resolves Motion m, repeated reps times, from the block's main
// cursor (spec.md §4.10's cursor_motion).
func (d *Dispatcher) motion(b *buffer.Buffer, blk *layout.BufferBlock, m command.Motion, reps int, ch rune) cursor.Cursor {
	text := b.Rope()
	sx := blk.Width
	cur := blk.Main
	n := reps
	if n < 1 {
		n = 1
	}
	switch m {
	case command.MotionLeft:
		return cursor.CharBackward(text, sx, cur, n)
	case command.MotionRight:
		return cursor.CharForward(text, sx, cur, n)
	case command.MotionUp:
		return cursor.MoveToY(text, sx, cur, -n)
	case command.MotionDown:
		return cursor.MoveToY(text, sx, cur, n)
	case command.MotionForwardWord1:
		return cursor.MoveToWord(text, sx, cur, n, false)
	case command.MotionForwardWord2:
		return cursor.MoveToWord(text, sx, cur, n, true)
	case command.MotionBackWord1:
		return cursor.MoveToWord(text, sx, cur, -n, false)
	case command.MotionBackWord2:
		return cursor.MoveToWord(text, sx, cur, -n, true)
	case command.MotionForwardWordEnd1:
		return cursor.MoveToWordEnd(text, sx, cur, n, false)
	case command.MotionForwardWordEnd2:
		return cursor.MoveToWordEnd(text, sx, cur, n, true)
	case command.MotionNextSearch:
		return d.searchMotion(b, blk, n)
	case command.MotionPrevSearch:
		return d.searchMotion(b, blk, -n)
	case command.MotionEOL:
		return cursor.MoveToLC(text, sx, cur, -1)
	case command.MotionSOLT:
		return firstNonBlank(text, sx, cur)
	case command.MotionSOL:
		return cursor.MoveToLC(text, sx, cur, 0)
	case command.MotionTil1:
		return cursor.MoveToChar(text, sx, cur, n, ch, true)
	case command.MotionTil2:
		return cursor.MoveToChar(text, sx, cur, n, ch, false)
	case command.MotionNextLine:
		return nextLineStart(text, sx, b, cur)
	case command.MotionOnCursor:
		return cur
	default:
		return cur
	}
}

func (d *Dispatcher) searchMotion(b *buffer.Buffer, blk *layout.BufferBlock, reps int) cursor.Cursor {
	if len(blk.Search.Matches()) == 0 {
		return blk.Main
	}
	m, ok := blk.Search.NextFromPosition(blk.Main.C, reps)
	if !ok {
		return blk.Main
	}
	return cursor.FromChar(b.Rope(), blk.Width, b.Config(), m.Start, 0)
}

func firstNonBlank(text *rope.Rope, sx int, cur cursor.Cursor) cursor.Cursor {
	lineRunes := []rune(cur.Line)
	lc := 0
	for lc < len(lineRunes) && (lineRunes[lc] == ' ' || lineRunes[lc] == '\t') {
		lc++
	}
	next := cursor.FromChar(text, sx, cur.Config, cur.LC0+lc, 0)
	next.XHint = next.R
	return next
}

func nextLineStart(text *rope.Rope, sx int, b *buffer.Buffer, cur cursor.Cursor) cursor.Cursor {
	lineInx := cur.LineInx + 1
	if lineInx >= text.LineCount() {
		lineInx = text.LineCount() - 1
	}
	return cursor.FromLine(text, sx, b.Config(), lineInx)
}

// delete implements Delete(reps, m): Line removes whole lines; any other
// motion removes the signed range between the cursor and its destination.
func (d *Dispatcher) delete(b *buffer.Buffer, blk *layout.BufferBlock, m command.Motion, reps int, ch rune) {
	n := reps
	if n < 1 {
		n = 1
	}
	if m == command.MotionLine {
		b.DeleteLineRange(blk.Main.LineInx, blk.Main.LineInx+n)
		blk.Main = cursor.FromChar(b.Rope(), blk.Width, b.Config(), blk.Main.LC0, 0)
		return
	}
	dest := d.motion(b, blk, m, n, ch)
	start, end := blk.Main.C, dest.C
	if start > end {
		start, end = end, start
	}
	b.RemoveRange(start, end)
	blk.Main = cursor.FromChar(b.Rope(), blk.Width, b.Config(), start, 0)
}

// yank stores the motion's slice verbatim in registers[reg] without
// moving the cursor. reps lines are yanked for MotionLine (Yank(n, Line),
// mirroring delete's Delete(n, Line) range).
func (d *Dispatcher) yank(b *buffer.Buffer, blk *layout.BufferBlock, reg command.Register, m command.Motion, ch rune, reps int) {
	if m == command.MotionLine {
		n := reps
		if n < 1 {
			n = 1
		}
		start := blk.Main.LC0
		end := b.Rope().LineEnd(blk.Main.LineInx + n - 1)
		d.Registers.Set(reg, b.Rope().Slice(start, end))
		return
	}
	dest := d.motion(b, blk, m, 1, ch)
	start, end := blk.Main.C, dest.C
	if start > end {
		start, end = end, start
	}
	d.Registers.Set(reg, b.Rope().Slice(start, end))
}

// paste resolves the insertion point from m (NextLine, SOL, OnCursor),
// inserts registers[reg] reps times, and leaves the cursor at the start
// of the pasted text.
func (d *Dispatcher) paste(b *buffer.Buffer, blk *layout.BufferBlock, reps int, reg command.Register, m command.Motion) {
	text := d.Registers.Get(reg)
	if text == "" {
		return
	}
	n := reps
	if n < 1 {
		n = 1
	}
	var at int
	switch m {
	case command.MotionSOL:
		at = blk.Main.LC0
	case command.MotionNextLine:
		at = b.Rope().LineEnd(blk.Main.LineInx)
	default: // MotionOnCursor
		at = blk.Main.C
	}
	start := at
	for i := 0; i < n; i++ {
		srcLen := b.InsertString(at, text)
		at += srcLen
	}
	blk.Main = cursor.FromChar(b.Rope(), blk.Width, b.Config(), start, 0)
}

func (d *Dispatcher) removeChar(b *buffer.Buffer, blk *layout.BufferBlock, dx int) {
	c := blk.Main.C
	switch {
	case dx < 0:
		n := -dx
		start := c - n
		if start < 0 {
			start = 0
		}
		b.RemoveRange(start, c)
		blk.Main = cursor.FromChar(b.Rope(), blk.Width, b.Config(), start, 0)
	case dx > 0:
		end := c + dx
		if end > b.Rope().Len() {
			end = b.Rope().Len()
		}
		b.RemoveRange(c, end)
		blk.Main = cursor.FromChar(b.Rope(), blk.Width, b.Config(), c, 0)
	}
}

// ParseCli implements spec.md §6.3's mini-buffer grammar.
func ParseCli(line string) []command.Cmd {
	if line == "" {
		return nil
	}
	switch line[0] {
	case '/':
		return []command.Cmd{command.Cmd{Kind: command.KindVarSet, Text: "__search_forward", Value: line[1:]}}
	case '?':
		return []command.Cmd{command.Cmd{Kind: command.KindVarSet, Text: "__search_backward", Value: line[1:]}}
	case ':':
		return parseColonCommand(line[1:])
	default:
		return parseColonCommand(line)
	}
}

func parseColonCommand(s string) []command.Cmd {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil
	}
	verb := fields[0]
	switch verb {
	case "q", "quit":
		return []command.Cmd{command.Quit()}
	case "w", "write":
		if len(fields) >= 2 {
			return []command.Cmd{command.SaveAs(fields[1])}
		}
		return []command.Cmd{command.Save()}
	case "wq":
		return []command.Cmd{command.Save(), command.Quit()}
	case "e", "edit":
		if len(fields) >= 2 {
			return []command.Cmd{command.Open(fields[1])}
		}
		return nil
	case "set":
		if len(fields) >= 3 {
			return []command.Cmd{command.VarSet(fields[1], fields[2])}
		}
		if len(fields) == 2 {
			return []command.Cmd{command.VarGet(fields[1])}
		}
		return nil
	default:
		return nil // unknown verb: yields no commands; nothing reports it to the status line
	}
}
