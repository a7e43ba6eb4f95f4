// Package buffer implements C4: text + path + version + undo/redo change
// stacks over an internal/rope.Rope, behind a reader-preferring RWMutex.
// Grounded on the RWMutex + locked-accessor shape of
// _examples/other_examples/fafc2821_dshills-keystorm__...buffer.go.go (byte
// buffer.Buffer), adapted to char indices and to snapshot-stack undo per
// spec.md §3/§9 rather than that file's (and
// 18606206_dshills-keystorm__...engine.go.go's) command-pattern undo.
package buffer

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"vedit/internal/bufconfig"
	"vedit/internal/rope"
)

// DefaultMaxUndo bounds the behind/ahead snapshot stacks (spec.md §3).
const DefaultMaxUndo = 1024

// snapshot is one undo-stack entry: the full text immediately before a
// mutation. Ropes are immutable, so cloning one is O(1) structural sharing.
type snapshot struct {
	text *rope.Rope
}

// Buffer is the shared mutable text object (spec.md §9: "the only shared
// mutable object"). Zero value is not usable; construct via New*.
type Buffer struct {
	mu      sync.RWMutex
	text    *rope.Rope
	path    string
	config  bufconfig.Config
	version uint64

	behind []snapshot // older snapshots, push on mutate
	ahead  []snapshot // redoable snapshots, cleared on mutate
	maxUndo int

	savedVersion uint64 // version as of the last successful Save

}

// NewFromString builds an unpathed Buffer over s with default config.
func NewFromString(s string) *Buffer {
	return &Buffer{
		text:    rope.New(s),
		config:  bufconfig.Default(),
		maxUndo: DefaultMaxUndo,
	}
}

// NewFromPath reads path (whole-file, §6.2) and resolves its BufferConfig
// from path ancestry.
func NewFromPath(path string) (*Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if !isValidUTF8(data) {
		return nil, fmt.Errorf("open %s: %w", path, ErrInvalidUnicode)
	}
	b := &Buffer{
		text:    rope.New(string(data)),
		path:    path,
		config:  bufconfig.ForPath(path),
		maxUndo: DefaultMaxUndo,
	}
	return b, nil
}

// NewFromPathOrEmpty behaves like NewFromPath but returns an empty pathed
// Buffer instead of erroring when the file does not exist (new-file-edit
// workflow, matching Buffer::from_path_or_empty in the spec).
func NewFromPathOrEmpty(path string) *Buffer {
	b, err := NewFromPath(path)
	if err == nil {
		return b
	}
	return &Buffer{
		text:    rope.Empty(),
		path:    path,
		config:  bufconfig.ForPath(path),
		maxUndo: DefaultMaxUndo,
	}
}

func isValidUTF8(b []byte) bool {
	return strings.ToValidUTF8(string(b), "�") == string(b)
}

// ErrInvalidUnicode is returned by NewFromPath when the file's bytes are
// not valid UTF-8 (distinct from a missing-file error, per spec.md §6.2).
var ErrInvalidUnicode = fmt.Errorf("invalid unicode")

// --- read-only accessors (shared lock) ---

// Text returns the full buffer contents.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.text.String()
}

// Rope returns the underlying immutable rope (safe to retain across
// goroutines: ropes never mutate in place).
func (b *Buffer) Rope() *rope.Rope {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.text
}

// Path returns the buffer's current path ("" if unpathed).
func (b *Buffer) Path() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.path
}

// Config returns the resolved BufferConfig.
func (b *Buffer) Config() bufconfig.Config {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.config
}

// Version returns the monotonically increasing mutation counter.
func (b *Buffer) Version() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.version
}

// Len returns the char length of the text.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.text.Len()
}

// LineCount returns the rope's line count (trailing-newline convention,
// C1).
func (b *Buffer) LineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.text.LineCount()
}

// CanUndo / CanRedo report whether the respective stack is non-empty.
func (b *Buffer) CanUndo() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.behind) > 0
}

// Dirty reports whether the buffer has unsaved changes.
func (b *Buffer) Dirty() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.version != b.savedVersion
}

func (b *Buffer) CanRedo() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.ahead) > 0
}

// --- mutating operations (exclusive lock, push undo snapshot) ---

// SetPath updates the path without pushing undo (spec.md §4.4).
func (b *Buffer) SetPath(path string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.path = path
	b.config = bufconfig.ForPath(path)
}

// pushUndoLocked must be called with b.mu held for writing, before mutating
// b.text. It records the pre-mutation snapshot and truncates the ahead
// (redo) stack per spec.md §3's undo invariants.
func (b *Buffer) pushUndoLocked() {
	b.behind = append(b.behind, snapshot{text: b.text})
	if len(b.behind) > b.maxUndo {
		b.behind = b.behind[len(b.behind)-b.maxUndo:]
	}
	b.ahead = nil
	b.version++
}

// ReplaceBuffer replaces all contents with s; pushes undo.
func (b *Buffer) ReplaceBuffer(s string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pushUndoLocked()
	b.text = rope.New(s)
}

// InsertString inserts s at charIdx, expanding any '\t'/'\n' in s through
// the buffer's config (Indent()/LineSep()), and returns the rune length of
// the *source* s (not the expanded length), matching spec.md §4.4.
func (b *Buffer) InsertString(charIdx int, s string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	srcLen := len([]rune(s))
	expanded := expand(s, b.config)
	b.pushUndoLocked()
	b.text = b.text.Insert(charIdx, expanded)
	return srcLen
}

func expand(s string, cfg bufconfig.Config) string {
	if !strings.ContainsAny(s, "\t\n") {
		return s
	}
	var out strings.Builder
	for _, r := range s {
		switch r {
		case '\t':
			out.WriteString(cfg.Indent())
		case '\n':
			out.WriteString(cfg.LineSep())
		default:
			out.WriteRune(r)
		}
	}
	return out.String()
}

// RemoveRange removes chars [start, end), clamping end to Len(); a no-op if
// start >= end.
func (b *Buffer) RemoveRange(start, end int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if end > b.text.Len() {
		end = b.text.Len()
	}
	if start >= end {
		return
	}
	b.pushUndoLocked()
	b.text = b.text.Remove(start, end)
}

// RemoveChar removes [c-1, c); a no-op if c == 0.
func (b *Buffer) RemoveChar(c int) {
	if c == 0 {
		return
	}
	b.RemoveRange(c-1, c)
}

// JoinLine removes the trailing line terminator of lineInx ("\r\n", "\n",
// or nothing if the line has none).
func (b *Buffer) JoinLine(lineInx int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	end := b.text.LineEnd(lineInx)
	if end == 0 {
		return
	}
	termLen := 0
	if end >= 2 && b.text.Slice(end-2, end) == "\r\n" {
		termLen = 2
	} else if end >= 1 {
		last := b.text.Slice(end-1, end)
		if last == "\n" || last == "\r" {
			termLen = 1
		}
	}
	if termLen == 0 {
		return
	}
	b.pushUndoLocked()
	b.text = b.text.Remove(end-termLen, end)
}

// DeleteLineRange removes the chars spanning lines [startInx, endInx).
func (b *Buffer) DeleteLineRange(startInx, endInx int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	start := b.text.LineStart(startInx)
	end := b.text.LineStart(endInx)
	if start >= end {
		return
	}
	b.pushUndoLocked()
	b.text = b.text.Remove(start, end)
}

// Undo pops the most recent snapshot from behind, pushes the current text
// to ahead, and installs the popped text. No-op on an empty behind stack.
func (b *Buffer) Undo() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.behind) == 0 {
		return
	}
	last := b.behind[len(b.behind)-1]
	b.behind = b.behind[:len(b.behind)-1]
	b.ahead = append(b.ahead, snapshot{text: b.text})
	b.text = last.text
	b.version++
}

// Redo is the mirror of Undo. No-op on an empty ahead stack.
func (b *Buffer) Redo() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.ahead) == 0 {
		return
	}
	last := b.ahead[len(b.ahead)-1]
	b.ahead = b.ahead[:len(b.ahead)-1]
	b.behind = append(b.behind, snapshot{text: b.text})
	b.text = last.text
	b.version++
}

// Save atomically writes the buffer's current text to its path (write to a
// temp file in the same directory, then rename), per spec.md §6.2. Fails if
// no path is set.
func (b *Buffer) Save() error {
	b.mu.RLock()
	path := b.path
	text := b.text.String()
	b.mu.RUnlock()
	if path == "" {
		return ErrNoPath
	}
	if err := atomicWrite(path, text); err != nil {
		return err
	}
	b.mu.Lock()
	b.savedVersion = b.version
	b.mu.Unlock()
	return nil
}

// ErrNoPath is returned by Save when the buffer has no associated path.
var ErrNoPath = fmt.Errorf("buffer has no path")

func atomicWrite(path, text string) error {
	dir := dirOf(path)
	tmp, err := os.CreateTemp(dir, ".vedit-tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

func dirOf(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[:i]
		}
	}
	return "."
}
