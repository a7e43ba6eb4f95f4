// Package mode implements C9: the modal interpreter's per-mode grammars
// (Normal, Insert, Cli, and the Common subset shared by Normal/Easy) and
// the incremental prefix-parsing state machine that drives them. Grounded
// on the literal keybinding table in spec.md §4.9 and on the
// Rust parser/modestate split in
// _examples/original_source/bindings/src/{parser,modestate}.rs.
package mode

import (
	"vedit/internal/command"
	"vedit/internal/input"
)

// Status mirrors input.Status at the grammar level (Success/Incomplete/
// Error), since a full mode grammar is itself just a parser over []Elem.
type Status = input.Status

const (
	Success    = input.StatusSuccess
	Incomplete = input.StatusIncomplete
	Error      = input.StatusError
)

// Result is the outcome of running a mode's grammar over q.
type Result struct {
	Status Status
	Rest   []input.Elem
	Cmds   []command.Cmd
}

func ok(rest []input.Elem, cmds ...command.Cmd) Result {
	return Result{Status: Success, Rest: rest, Cmds: cmds}
}

var incompleteResult = Result{Status: Incomplete}
var errorResult = Result{Status: Error}

// motionKeys maps a single Char to its Motion, for the plain (no-argument)
// motion grammar entries of spec.md §4.9.
var motionKeys = map[rune]command.Motion{
	'h': command.MotionLeft,
	'j': command.MotionDown,
	'k': command.MotionUp,
	'l': command.MotionRight,
	'w': command.MotionForwardWord1,
	'W': command.MotionForwardWord2,
	'b': command.MotionBackWord1,
	'B': command.MotionBackWord2,
	'e': command.MotionForwardWordEnd1,
	'E': command.MotionForwardWordEnd2,
	'n': command.MotionNextSearch,
	'N': command.MotionPrevSearch,
	'$': command.MotionEOL,
	'^': command.MotionSOLT,
	'0': command.MotionSOL,
}

// ParseCommon recognizes the Ctrl-prefixed bindings available in both
// Normal and Easy mode.
func ParseCommon(q []input.Elem) Result {
	if len(q) == 0 {
		return incompleteResult
	}
	e := q[0]
	if e.Kind != input.KindControl {
		return errorResult
	}
	switch e.Ch {
	case 's':
		return ok(q[1:], command.Save())
	case 'a':
		return ok(q[1:], command.LineNav(0))
	case 'e':
		return ok(q[1:], command.LineNav(-1))
	case 'z':
		return ok(q[1:], command.Stop())
	case 'u':
		return ok(q[1:], command.ScrollPage(-1))
	case 'd':
		return ok(q[1:], command.ScrollPage(1))
	case 'f':
		return ok(q[1:], command.Scroll(-1))
	case 'b':
		return ok(q[1:], command.Scroll(1))
	default:
		return errorResult
	}
}

// parseOptionalReps consumes a leading Number, defaulting to 1 if absent.
// It never blocks waiting for "more digits" beyond what Number itself
// needs; a lone incomplete digit run propagates as Incomplete.
func parseOptionalReps(q []input.Elem) (rest []input.Elem, reps int, blocked bool) {
	if len(q) == 0 {
		return q, 1, false
	}
	if q[0].Kind != input.KindChar || q[0].Ch < '1' || q[0].Ch > '9' {
		return q, 1, false
	}
	res := input.Number(q)
	switch res.Status {
	case input.StatusSuccess:
		return res.Rest, res.Value.(int), false
	case input.StatusIncomplete:
		return nil, 0, true
	default:
		return q, 1, false
	}
}

// parseOptionalRegister consumes a leading `"<reg>` prefix, defaulting to
// DefaultRegister if absent.
func parseOptionalRegister(q []input.Elem) (rest []input.Elem, reg command.Register, blocked bool) {
	if len(q) == 0 {
		return q, command.DefaultRegister, false
	}
	if q[0].Kind != input.KindChar || q[0].Ch != '"' {
		return q, command.DefaultRegister, false
	}
	if len(q) < 2 {
		return nil, 0, true
	}
	if q[1].Kind != input.KindChar {
		return q, command.DefaultRegister, false
	}
	return q[2:], command.Register(q[1].Ch), false
}

// ParseNormal implements spec.md §4.9's Normal-mode grammar. recording is
// the interpreter's current macro-recording state (false when idle): it
// resolves the `q` key's start/stop ambiguity the same way
// _examples/original_source/bindings/src/parser.rs's p_macros(i, record)
// does -- a bare `q` ends an in-progress recording, otherwise `q<reg>`
// starts one.
func ParseNormal(q []input.Elem, recording bool) Result {
	if len(q) == 0 {
		return incompleteResult
	}

	if res := ParseCommon(q); res.Status != Error {
		return res
	}

	e := q[0]

	if e.Kind == input.KindControl && e.Ch == 'q' {
		return ok(q[1:], command.Quit())
	}
	if e.Kind == input.KindControl && e.Ch == 'r' {
		return ok(q[1:], command.Redo())
	}

	if e.Kind == input.KindChar {
		switch e.Ch {
		case 'i':
			return ok(q[1:], command.SetMode(command.ModeInsert))
		case 'G':
			// bare G, or <number>G handled below via the number-prefix path
			return ok(q[1:], command.Line(0))
		case 'J':
			return ok(q[1:], command.Join())
		case '.':
			return ok(q[1:], command.ChangeRepeat())
		case ']':
			return ok(q[1:], command.BufferNext())
		case '[':
			return ok(q[1:], command.BufferPrev())
		case 'u':
			return ok(q[1:], command.Undo())
		case ':', '/', '?':
			return ok(q[1:], command.SetMode(command.ModeCli), command.CliEdit(command.Insert(string(e.Ch))))
		case 'P':
			return ok(q[1:], command.ChangeStart(), command.Paste(1, command.DefaultRegister, command.MotionSOL), command.ChangeEnd())
		case 'o':
			return ok(q[1:],
				command.MotionCmd(1, command.MotionNextLine),
				command.SetMode(command.ModeInsert),
				command.Insert("\n"),
				command.MotionCmd(1, command.MotionLeft))
		case 'O':
			return ok(q[1:],
				command.MotionCmd(1, command.MotionSOL),
				command.SetMode(command.ModeInsert),
				command.Insert("\n"),
				command.MotionCmd(1, command.MotionLeft))
		case 'q':
			if recording {
				return ok(q[1:], command.MacroEnd())
			}
			if len(q) < 2 {
				return incompleteResult
			}
			if q[1].Kind != input.KindChar {
				return errorResult
			}
			return ok(q[2:], command.MacroStart(command.MacroID(q[1].Ch)))
		case '@':
			if len(q) < 2 {
				return incompleteResult
			}
			if q[1].Kind != input.KindChar {
				return errorResult
			}
			return ok(q[2:], command.MacroReplay(command.MacroID(q[1].Ch)))
		}
	}

	if e.Kind == input.KindAlt && (e.Ch == 'p' || e.Ch == 'v') {
		return ok(q[1:], command.ChangeStart(), command.Paste(1, command.DefaultRegister, command.MotionOnCursor), command.ChangeEnd())
	}

	if res, matched := parseDoubled(q, 'g', 'g', command.Line(1)); matched {
		return res
	}
	if res, matched := parseDoubled(q, 'R', 'R', command.Reset(), command.Refresh()); matched {
		return res
	}
	if res, matched := parseDoubled(q, 'T', 'T', command.Test()); matched {
		return res
	}
	// dd/yy (and their <n> prefixed forms) are handled further down by
	// parseOperatorMotion and parseRegisterYankPaste, which already thread
	// a parsed reps count -- see their 'd'/'y' doubling checks.

	if res := parseLineJump(q); res.Status != Error {
		return res
	}
	if res := parseRegisterYankPaste(q); res.Status != Error {
		return res
	}
	if res := parseOperatorMotion(q); res.Status != Error {
		return res
	}
	if res := parseMotionGrammar(q, 1); res.Status != Error {
		return res
	}

	return errorResult
}

// parseDoubled matches a literal two-char sequence (e.g. "gg", "RR") and
// emits cmds on match.
func parseDoubled(q []input.Elem, a, b rune, cmds ...command.Cmd) (Result, bool) {
	if len(q) == 0 || q[0].Kind != input.KindChar || q[0].Ch != a {
		return Result{}, false
	}
	if len(q) < 2 {
		return incompleteResult, true
	}
	if q[1].Kind != input.KindChar || q[1].Ch != b {
		return Result{}, false
	}
	return ok(q[2:], cmds...), true
}

// parseLineJump handles `<number><Enter>`, `<number>G`, and `<n>,<m><Enter>`.
func parseLineJump(q []input.Elem) Result {
	// a leading '0' is left to parseMotionGrammar: bare 0 is the SOL motion
	if len(q) == 0 || q[0].Kind != input.KindChar || q[0].Ch < '1' || q[0].Ch > '9' {
		return errorResult
	}
	nres := input.Number(q)
	if nres.Status != Success {
		return Result{Status: nres.Status}
	}
	n := nres.Value.(int)
	rest := nres.Rest

	if len(rest) == 0 {
		return incompleteResult
	}
	if rest[0].Kind == input.KindEnter {
		return ok(rest[1:], command.Line(n))
	}
	if rest[0].Kind == input.KindChar && rest[0].Ch == 'G' {
		return ok(rest[1:], command.Line(n))
	}
	if rest[0].Kind == input.KindChar && rest[0].Ch == ',' {
		mres := input.Number(rest[1:])
		switch mres.Status {
		case Success:
			mrest := mres.Rest
			if len(mrest) == 0 {
				return incompleteResult
			}
			if mrest[0].Kind == input.KindEnter {
				return ok(mrest[1:], command.Line(mres.Value.(int)))
			}
			return errorResult
		case Incomplete:
			return incompleteResult
		default:
			return errorResult
		}
	}
	return errorResult
}

// parseRegisterYankPaste handles the `"<reg>`- and `<n>`-prefixed
// yank/paste forms.
func parseRegisterYankPaste(q []input.Elem) Result {
	if len(q) == 0 || q[0].Kind != input.KindChar {
		return errorResult
	}
	first := q[0].Ch
	isDigit := first >= '1' && first <= '9'
	if first != '"' && first != 'y' && first != 'Y' && first != 'p' && !isDigit {
		return errorResult
	}
	rest, reg, blocked := parseOptionalRegister(q)
	if blocked {
		return incompleteResult
	}
	hadReg := rest != nil && len(rest) != len(q)

	rest2, reps, blocked2 := parseOptionalReps(rest)
	if blocked2 {
		return incompleteResult
	}
	if !hadReg {
		// the count may also come before the register (`<n>"<reg>p`)
		rest3, reg3, blocked3 := parseOptionalRegister(rest2)
		if blocked3 {
			return incompleteResult
		}
		if len(rest3) != len(rest2) {
			rest2, reg, hadReg = rest3, reg3, true
		}
	}

	if len(rest2) == 0 {
		if hadReg {
			return incompleteResult
		}
		return errorResult
	}

	switch rest2[0].Ch {
	case 'y':
		if len(rest2) < 2 {
			return incompleteResult
		}
		if rest2[1].Kind == input.KindChar && rest2[1].Ch == 'y' {
			return ok(rest2[2:], command.Yank(reg, reps, command.MotionLine))
		}
		return parseMotionOperand(rest2[1:], func(m command.Motion) Result {
			return ok(nil, command.Yank(reg, 1, m))
		})
	case 'Y':
		return parseMotionOperand(rest2[1:], func(m command.Motion) Result {
			return ok(nil, command.Yank(reg, 1, m))
		})
	case 'p':
		return ok(rest2[1:], command.ChangeStart(), command.Paste(reps, reg, command.MotionNextLine), command.ChangeEnd())
	}
	if !hadReg {
		return errorResult
	}
	return incompleteResult
}

// parseOperatorMotion handles `<n?><op><motion>` for d/c, and the `x`
// shortcut.
func parseOperatorMotion(q []input.Elem) Result {
	rest, reps, blocked := parseOptionalReps(q)
	if blocked {
		return incompleteResult
	}
	if len(rest) == 0 {
		return incompleteResult
	}
	if rest[0].Kind != input.KindChar {
		return errorResult
	}
	switch rest[0].Ch {
	case 'x':
		return ok(rest[1:], command.ChangeStart(), command.Delete(reps, command.MotionRight), command.ChangeEnd())
	case 'd':
		if len(rest) < 2 {
			return incompleteResult
		}
		if rest[1].Kind == input.KindChar && rest[1].Ch == 'd' {
			return ok(rest[2:], command.ChangeStart(), command.Delete(reps, command.MotionLine), command.ChangeEnd())
		}
		return parseMotionOperand(rest[1:], func(m command.Motion) Result {
			return ok(nil, command.ChangeStart(), command.Delete(reps, m), command.ChangeEnd())
		})
	case 'c':
		return parseMotionOperand(rest[1:], func(m command.Motion) Result {
			return ok(nil, command.ChangeStart(), command.Delete(reps, m), command.SetMode(command.ModeInsert), command.ChangeEnd())
		})
	}
	return errorResult
}

// parseMotionOperand parses a single motion key (with its Til-argument
// char if applicable) and hands the resolved Motion to build.
func parseMotionOperand(q []input.Elem, build func(command.Motion) Result) Result {
	if len(q) == 0 {
		return incompleteResult
	}
	if q[0].Kind != input.KindChar {
		return errorResult
	}
	switch q[0].Ch {
	case 't':
		if len(q) < 2 {
			return incompleteResult
		}
		if q[1].Kind != input.KindChar {
			return errorResult
		}
		return applyRest(build(command.MotionTil1), q[2:])
	case 'T':
		if len(q) < 2 {
			return incompleteResult
		}
		if q[1].Kind != input.KindChar {
			return errorResult
		}
		return applyRest(build(command.MotionTil2), q[2:])
	}
	if m, found := motionKeys[q[0].Ch]; found {
		return applyRest(build(m), q[1:])
	}
	return errorResult
}

func applyRest(res Result, rest []input.Elem) Result {
	res.Rest = rest
	return res
}

// parseMotionGrammar handles the bare `<n?><motion_key>` Motion(n, m) form.
func parseMotionGrammar(q []input.Elem, _ int) Result {
	rest, reps, blocked := parseOptionalReps(q)
	if blocked {
		return incompleteResult
	}
	if len(rest) == 0 {
		return incompleteResult
	}
	if rest[0].Kind != input.KindChar {
		return errorResult
	}
	switch rest[0].Ch {
	case 't':
		if len(rest) < 2 {
			return incompleteResult
		}
		if rest[1].Kind != input.KindChar {
			return errorResult
		}
		return ok(rest[2:], command.MotionChar(reps, command.MotionTil1, rest[1].Ch))
	case 'T':
		if len(rest) < 2 {
			return incompleteResult
		}
		if rest[1].Kind != input.KindChar {
			return errorResult
		}
		return ok(rest[2:], command.MotionChar(reps, command.MotionTil2, rest[1].Ch))
	}
	if m, found := motionKeys[rest[0].Ch]; found {
		return ok(rest[1:], command.MotionCmd(reps, m))
	}
	return errorResult
}

// ParseInsert implements spec.md §4.9's Insert-mode grammar.
func ParseInsert(q []input.Elem) Result {
	if len(q) == 0 {
		return incompleteResult
	}
	e := q[0]
	switch {
	case e.Kind == input.KindControl && e.Ch == 'c':
		return ok(q[1:], command.SetMode(command.ModeNormal), command.ChangeEnd())
	case e.Kind == input.KindEsc:
		return ok(q[1:], command.SetMode(command.ModeNormal), command.ChangeEnd())
	case e.Kind == input.KindControl && e.Ch == 's':
		return ok(q[1:], command.Save())
	case e.Kind == input.KindControl && e.Ch == 'q':
		return ok(q[1:], command.Quit())
	case e.Kind == input.KindUp:
		return ok(q[1:], command.MotionCmd(1, command.MotionUp))
	case e.Kind == input.KindDown:
		return ok(q[1:], command.MotionCmd(1, command.MotionDown))
	case e.Kind == input.KindLeft:
		return ok(q[1:], command.MotionCmd(1, command.MotionLeft))
	case e.Kind == input.KindRight:
		return ok(q[1:], command.MotionCmd(1, command.MotionRight))
	case e.Kind == input.KindBackspace:
		return ok(q[1:], command.RemoveChar(-1))
	case e.Kind == input.KindDelete:
		return ok(q[1:], command.RemoveChar(1))
	case e.Kind == input.KindEnter:
		return ok(q[1:], command.Insert("\n"))
	case e.Kind == input.KindTab:
		return ok(q[1:], command.Insert("\t"))
	case e.Kind == input.KindChar:
		return ok(q[1:], command.Insert(string(e.Ch)))
	default:
		return errorResult
	}
}

// ParseCli implements spec.md §4.9's Cli-mode (mini-buffer) grammar.
func ParseCli(q []input.Elem) Result {
	if len(q) == 0 {
		return incompleteResult
	}
	e := q[0]
	switch {
	case e.Kind == input.KindControl && e.Ch == 'q':
		return ok(q[1:], command.Quit())
	case e.Kind == input.KindEsc:
		return ok(q[1:], command.SetMode(command.ModeNormal), command.CliCancel())
	case e.Kind == input.KindControl && e.Ch == 'c':
		return ok(q[1:], command.SetMode(command.ModeNormal), command.CliCancel())
	case e.Kind == input.KindEnter:
		return ok(q[1:], command.SetMode(command.ModeNormal), command.CliExec())
	case e.Kind == input.KindBackspace:
		return ok(q[1:], command.CliEdit(command.RemoveChar(-1)))
	case e.Kind == input.KindDelete:
		return ok(q[1:], command.CliEdit(command.RemoveChar(1)))
	case e.Kind == input.KindChar:
		return ok(q[1:], command.CliEdit(command.Insert(string(e.Ch))))
	default:
		return errorResult
	}
}

// ParseForMode dispatches to the grammar for the given mode. recording is
// passed through to ParseNormal; it is ignored by the other grammars.
func ParseForMode(m command.Mode, q []input.Elem, recording bool) Result {
	switch m {
	case command.ModeInsert:
		return ParseInsert(q)
	case command.ModeCli:
		return ParseCli(q)
	default:
		return ParseNormal(q, recording)
	}
}
