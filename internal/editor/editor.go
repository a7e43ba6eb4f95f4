// Package editor ties the modal interpreter (C9), the command dispatcher
// (C10), and the registers/macros/history + multi-buffer layout records
// (C11/C12) into the single object the Display thread owns and mutates
// (spec.md §5: "the Display thread... single owner of the Editor").
// Grounded on the Editor struct's top-level field aggregation used by
// kungfusheep-glyph's cmd/minivim/main.go (an Editor holding a window
// tree, mode string, and macro/mark maps alongside the active App), here
// replaced with this module's own Cursor/BufferBlock/History types.
package editor

import (
	"vedit/internal/buffer"
	"vedit/internal/command"
	"vedit/internal/dispatch"
	"vedit/internal/input"
	"vedit/internal/mode"
)

// Editor is the Display thread's single mutable object.
type Editor struct {
	Interp     *mode.Interpreter
	Dispatch   *dispatch.Dispatcher
	StatusLine string
	Quit       bool
}

// New constructs an Editor over buf with the given viewport size.
func New(buf *buffer.Buffer, sx, sy int) *Editor {
	return &Editor{
		Interp:   mode.NewInterpreter(),
		Dispatch: dispatch.New(buf, sx, sy),
	}
}

// HandleKey is the Input thread's hand-off point (spec.md §5): feed one
// normalized key event through the modal interpreter, then apply every
// resulting Command to the dispatcher, draining any follow-up commands
// it returns (e.g. a parsed CliExec list, or a ChangeRepeat replay) to a
// fixed recursion depth to guard against a malformed macro looping
// forever.
func (e *Editor) HandleKey(elem input.Elem) {
	cmds, quit, closed := e.Interp.Feed(elem)
	if closed != nil {
		e.Dispatch.PushHistory(closed)
	}
	if quit {
		e.Quit = true
	}
	e.runAll(cmds, 0)
}

const maxFollowUpDepth = 8

func (e *Editor) runAll(cmds []command.Cmd, depth int) {
	if depth > maxFollowUpDepth {
		e.StatusLine = "command loop aborted: too many follow-up commands"
		return
	}
	for _, c := range cmds {
		if c.Kind == command.KindQuit {
			e.Quit = true
			continue
		}
		if c.Kind == command.KindMacroReplay {
			e.runAll(e.Interp.State.Macros.Get(c.MacroID), depth+1)
			continue
		}
		if c.Kind == command.KindSaveBuffer {
			// written synchronously here (buffer.Save: temp file + rename)
			if err := e.Dispatch.Buffers[e.Dispatch.Focus].Save(); err != nil {
				e.StatusLine = "save failed: " + err.Error()
			}
			continue
		}
		follow := e.Dispatch.Apply(c)
		if len(follow) > 0 {
			e.runAll(follow, depth+1)
		}
	}
}

// ReplayMacro re-feeds every recorded command of macro id through the
// dispatcher directly (a macro replay does not re-enter the modal
// interpreter: the commands were already fully resolved when recorded).
func (e *Editor) ReplayMacro(id command.MacroID) {
	cmds := e.Interp.State.Macros.Get(id)
	e.runAll(cmds, 0)
}
