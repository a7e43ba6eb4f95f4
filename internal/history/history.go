// Package history implements C11: registers, macros, and the bounded
// undo-adjacent change-repeat history, plus the C9 ModeState the modal
// interpreter threads through key processing. Grounded on the
// Registers/Macros/History records in spec.md §3 and on the
// macro-recording taps described in
// _examples/original_source/bindings/src/modestate.rs.
package history

import "vedit/internal/command"

// DefaultHistoryLen is the default bound on recorded change vectors.
const DefaultHistoryLen = 10

// Registers maps a single-char register key to its stored text. A missing
// key reads as the empty string (spec.md §3).
type Registers struct {
	m map[command.Register]string
}

func NewRegisters() *Registers {
	return &Registers{m: make(map[command.Register]string)}
}

func (r *Registers) Get(reg command.Register) string { return r.m[reg] }

func (r *Registers) Set(reg command.Register, text string) { r.m[reg] = text }

// Macros maps a macro id to its recorded command list.
type Macros struct {
	m map[command.MacroID][]command.Cmd
}

func NewMacros() *Macros {
	return &Macros{m: make(map[command.MacroID][]command.Cmd)}
}

func (m *Macros) Get(id command.MacroID) []command.Cmd { return m.m[id] }

func (m *Macros) Append(id command.MacroID, c command.Cmd) {
	m.m[id] = append(m.m[id], c)
}

func (m *Macros) Set(id command.MacroID, cmds []command.Cmd) { m.m[id] = cmds }

// History is a bounded FIFO of recorded command vectors, front-pushed so
// the most recent is always History.Front().
type History struct {
	entries [][]command.Cmd
	maxLen  int
}

func NewHistory() *History {
	return &History{maxLen: DefaultHistoryLen}
}

// Push records a completed change vector at the front, evicting the oldest
// entry once maxLen is exceeded.
func (h *History) Push(cmds []command.Cmd) {
	if len(cmds) == 0 {
		return
	}
	h.entries = append([][]command.Cmd{cmds}, h.entries...)
	if len(h.entries) > h.maxLen {
		h.entries = h.entries[:h.maxLen]
	}
}

// Front returns the most recently recorded change vector, or nil if empty.
func (h *History) Front() []command.Cmd {
	if len(h.entries) == 0 {
		return nil
	}
	return h.entries[0]
}

func (h *History) Len() int { return len(h.entries) }

// Recorder is the Idle <-> Recording state machine bracketed by
// ChangeStart/ChangeEnd (spec.md §4.10 state machines).
type Recorder struct {
	recording bool
	accum     []command.Cmd
}

func (r *Recorder) Start() {
	r.recording = true
	r.accum = nil
}

// Tap appends c to the in-progress accumulator if recording is active.
func (r *Recorder) Tap(c command.Cmd) {
	if r.recording {
		r.accum = append(r.accum, c)
	}
}

func (r *Recorder) Recording() bool { return r.recording }

// End stops recording and returns the accumulated vector (nil if nothing
// was recorded), clearing the accumulator.
func (r *Recorder) End() []command.Cmd {
	r.recording = false
	out := r.accum
	r.accum = nil
	return out
}

// ModeState is C9's (mode, maybe_recording_macro_id, macros) tuple.
type ModeState struct {
	Mode     command.Mode
	Record   *command.MacroID
	Macros   *Macros
}

func NewModeState() *ModeState {
	return &ModeState{Mode: command.ModeNormal, Macros: NewMacros()}
}

// StartRecording begins taping subsequent commands into macro id.
func (s *ModeState) StartRecording(id command.MacroID) {
	rec := id
	s.Record = &rec
}

// StopRecording ends taping.
func (s *ModeState) StopRecording() { s.Record = nil }

// Tap appends c to the macro currently being recorded, if any.
func (s *ModeState) Tap(c command.Cmd) {
	if s.Record != nil {
		s.Macros.Append(*s.Record, c)
	}
}
