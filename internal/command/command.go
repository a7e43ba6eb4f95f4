// Package command defines the Command/Motion/Mode vocabulary shared by the
// modal interpreter (C9), the dispatcher (C10), and the history/macro
// recorder (C11). Grounded on the enum shapes implied by
// _examples/original_source/bindings/src/{parser,command,modestate}.rs and
// core/src/buffer.rs, translated from Rust sum types into a Go
// Kind-plus-fields struct (the idiom used throughout the retrieval pack's
// Go repos for "one of several shapes" values, e.g. dshills-keystorm's
// Change/ChangeType pairing in internal-engine-engine.go.go).
package command

// Mode is the modal interpreter's current grammar selector.
type Mode int

const (
	ModeNormal Mode = iota
	ModeInsert
	ModeCli
	ModeEasy
)

func (m Mode) String() string {
	switch m {
	case ModeInsert:
		return "insert"
	case ModeCli:
		return "cli"
	case ModeEasy:
		return "easy"
	default:
		return "normal"
	}
}

// Register names a single-char clipboard slot; the zero value is not a
// valid register, use DefaultRegister ('x') when none was specified.
type Register rune

// DefaultRegister is "x", spec.md's documented default register.
const DefaultRegister Register = 'x'

// MacroID names a single-char macro slot.
type MacroID rune

// Motion is a named cursor-transform primitive (C6 consumes these).
type Motion int

const (
	MotionLeft Motion = iota
	MotionDown
	MotionUp
	MotionRight
	MotionForwardWord1 // w
	MotionForwardWord2 // W
	MotionBackWord1    // b
	MotionBackWord2    // B
	MotionForwardWordEnd1
	MotionForwardWordEnd2
	MotionNextSearch // n
	MotionPrevSearch // N
	MotionEOL        // $
	MotionSOLT       // ^ (first non-blank)
	MotionSOL        // 0
	MotionTil1       // t<ch>, inclusive
	MotionTil2       // T<ch>, exclusive
	MotionLine       // whole-line operator target
	MotionNextLine   // line below, used by o/p
	MotionOnCursor   // Alt+p paste target
)

// Kind enumerates every dispatchable Command shape.
type Kind int

const (
	KindQuit Kind = iota
	KindReset
	KindMacroStart
	KindMacroEnd
	KindMacroReplay
	KindChangeStart
	KindChangeEnd
	KindChangeRepeat
	KindMode
	KindMotion
	KindDelete
	KindYank
	KindPaste
	KindInsert
	KindRemoveChar
	KindJoin
	KindLine
	KindLineNav
	KindScroll
	KindScrollPage
	KindBufferNext
	KindBufferPrev
	KindUndo
	KindRedo
	KindSave
	KindSaveAs
	KindOpen
	KindRefresh
	KindResize
	KindMouse
	KindResume
	KindStop
	KindTest
	KindCliEdit
	KindCliExec
	KindCliCancel
	KindVarGet
	KindVarSet
	KindSaveBuffer // internal: Dispatcher -> editor.Editor write hand-off
)

// Cmd is a single dispatchable command. Only the fields relevant to Kind
// are meaningful; zero values elsewhere.
type Cmd struct {
	Kind Kind

	Reps int // Motion/Delete/Paste repeat count
	M    Motion
	Ch   rune // Til1/Til2 target char, carried on the Cmd that needs it

	Mode Mode

	Reg Register

	Text string // Insert text, SaveAs/Open path, VarGet/VarSet name

	Value string // VarSet value

	Dx int // RemoveChar signed count, LineNav delta
	N  int // Line(n) target (1-based; <=0 means "from end")

	W, H int // Resize
	X, Y int // Mouse

	MacroID MacroID

	Cli []Cmd // CliEdit payload

	SaveText string // KindSaveBuffer snapshot text
}

// Convenience constructors mirror the Rust-side `.into()` shortcuts used
// throughout the parser (T::from(Command) -> Vec<Command>{...}).

func Quit() Cmd         { return Cmd{Kind: KindQuit} }
func Reset() Cmd        { return Cmd{Kind: KindReset} }
func ChangeStart() Cmd  { return Cmd{Kind: KindChangeStart} }
func ChangeEnd() Cmd    { return Cmd{Kind: KindChangeEnd} }
func ChangeRepeat() Cmd { return Cmd{Kind: KindChangeRepeat} }
func Undo() Cmd         { return Cmd{Kind: KindUndo} }
func Redo() Cmd         { return Cmd{Kind: KindRedo} }
func Save() Cmd         { return Cmd{Kind: KindSave} }
func Join() Cmd         { return Cmd{Kind: KindJoin} }
func BufferNext() Cmd   { return Cmd{Kind: KindBufferNext} }
func BufferPrev() Cmd   { return Cmd{Kind: KindBufferPrev} }
func Refresh() Cmd      { return Cmd{Kind: KindRefresh} }
func Stop() Cmd         { return Cmd{Kind: KindStop} }
func Resume() Cmd       { return Cmd{Kind: KindResume} }
func Test() Cmd         { return Cmd{Kind: KindTest} }
func CliExec() Cmd      { return Cmd{Kind: KindCliExec} }
func CliCancel() Cmd    { return Cmd{Kind: KindCliCancel} }

func SetMode(m Mode) Cmd { return Cmd{Kind: KindMode, Mode: m} }

func MotionCmd(reps int, m Motion) Cmd { return Cmd{Kind: KindMotion, Reps: reps, M: m} }
func MotionChar(reps int, m Motion, ch rune) Cmd {
	return Cmd{Kind: KindMotion, Reps: reps, M: m, Ch: ch}
}

func Delete(reps int, m Motion) Cmd { return Cmd{Kind: KindDelete, Reps: reps, M: m} }
func Yank(reg Register, reps int, m Motion) Cmd {
	return Cmd{Kind: KindYank, Reg: reg, M: m, Reps: reps}
}
func Paste(reps int, reg Register, m Motion) Cmd {
	return Cmd{Kind: KindPaste, Reps: reps, Reg: reg, M: m}
}

func Insert(s string) Cmd       { return Cmd{Kind: KindInsert, Text: s} }
func RemoveChar(dx int) Cmd     { return Cmd{Kind: KindRemoveChar, Dx: dx} }
func Line(n int) Cmd            { return Cmd{Kind: KindLine, N: n} }
func LineNav(dx int) Cmd        { return Cmd{Kind: KindLineNav, Dx: dx} }
func Scroll(dy int) Cmd         { return Cmd{Kind: KindScroll, Dx: dy} }
func ScrollPage(k int) Cmd      { return Cmd{Kind: KindScrollPage, Dx: k} }
func SaveAs(path string) Cmd    { return Cmd{Kind: KindSaveAs, Text: path} }
func Open(path string) Cmd      { return Cmd{Kind: KindOpen, Text: path} }
func Resize(w, h int) Cmd       { return Cmd{Kind: KindResize, W: w, H: h} }
func Mouse(x, y int) Cmd        { return Cmd{Kind: KindMouse, X: x, Y: y} }
func MacroStart(id MacroID) Cmd { return Cmd{Kind: KindMacroStart, MacroID: id} }
func MacroEnd() Cmd             { return Cmd{Kind: KindMacroEnd} }
func MacroReplay(id MacroID) Cmd {
	return Cmd{Kind: KindMacroReplay, MacroID: id}
}
func CliEdit(cmds ...Cmd) Cmd { return Cmd{Kind: KindCliEdit, Cli: cmds} }
func VarGet(name string) Cmd  { return Cmd{Kind: KindVarGet, Text: name} }
func VarSet(name, value string) Cmd {
	return Cmd{Kind: KindVarSet, Text: name, Value: value}
}
func SaveBuffer(path, text string) Cmd {
	return Cmd{Kind: KindSaveBuffer, Text: path, SaveText: text}
}

// IsMeta reports whether a Command is handled entirely by the modal
// interpreter's own state machine (C9) rather than being forwarded to the
// dispatcher for external effect. Mode changes ARE forwarded (they still
// need the dispatcher/Editor to flip the active BufferBlock's mode) but are
// also recorded here as meta so the interpreter can special-case them per
// spec.md §4.9's processing order.
func (c Cmd) IsMeta() bool {
	switch c.Kind {
	case KindQuit, KindReset, KindMacroStart, KindMacroEnd,
		KindChangeStart, KindChangeEnd, KindChangeRepeat, KindMode:
		return true
	default:
		return false
	}
}
