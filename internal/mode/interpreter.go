package mode

import (
	"vedit/internal/command"
	"vedit/internal/history"
	"vedit/internal/input"
)

// Interpreter holds ModeState and the pending input queue q, and runs the
// incremental outcome protocol described in spec.md §4.9: each Feed
// appends one Elem to q, runs the active mode's grammar, and on Success
// processes meta-commands before handing the rest downstream.
type Interpreter struct {
	State    *history.ModeState
	Recorder history.Recorder
	q        []input.Elem
}

func NewInterpreter() *Interpreter {
	return &Interpreter{State: history.NewModeState()}
}

// Feed appends e to the pending queue, runs the active grammar, and
// returns the commands to emit downstream (already stripped of
// meta-commands), whether a Quit was requested, and a just-closed change
// vector (non-nil only the instant a ChangeEnd fires) for the caller to
// push onto its owned History.
func (it *Interpreter) Feed(e input.Elem) (emit []command.Cmd, quit bool, closed []command.Cmd) {
	it.q = append(it.q, e)
	res := ParseForMode(it.State.Mode, it.q, it.State.Record != nil)

	switch res.Status {
	case Incomplete:
		return nil, false, nil
	case Error:
		it.q = nil
		return nil, false, nil
	}

	it.q = nil
	for _, c := range res.Cmds {
		switch c.Kind {
		case command.KindQuit:
			emit = append(emit, c)
			return emit, true, closed
		case command.KindReset:
			it.q = nil
			it.State.Macros = history.NewMacros()
			it.State.StopRecording()
			it.Recorder = history.Recorder{}
		case command.KindMacroStart:
			it.State.StartRecording(c.MacroID)
		case command.KindMacroEnd:
			it.State.StopRecording()
		case command.KindChangeStart:
			it.Recorder.Start()
		case command.KindChangeEnd:
			closed = it.Recorder.End()
		case command.KindChangeRepeat:
			// re-emitting the most recent recorded change list is the
			// caller's job (it owns History); forward untouched.
			emit = append(emit, c)
		case command.KindMode:
			it.State.Mode = c.Mode
			it.tap(c)
			emit = append(emit, c)
		default:
			it.tap(c)
			emit = append(emit, c)
		}
	}
	return emit, false, closed
}

// tap records a non-meta (or Mode) command into both the active macro
// recording and the active change-history accumulator.
func (it *Interpreter) tap(c command.Cmd) {
	it.State.Tap(c)
	it.Recorder.Tap(c)
}

