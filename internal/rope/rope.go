// Package rope implements an immutable rope of Unicode scalars: a binary
// tree of leaves, grounded on the rope-backed buffer seen
// in _examples/other_examples/fafc2821_dshills-keystorm__...buffer.go.go
// (which wraps a github.com/dshills/keystorm/internal/engine/rope.Rope) and
// on _examples/original_source/core/src/buffer.rs's use of the ropey crate.
// Every mutation returns a new Rope; existing Ropes (and anything holding
// one, such as an undo snapshot) are never touched, so an undo snapshot
// (C4) is a pointer copy. Insert and Remove copy the text on each side of
// the edit into fresh leaves: they take time linear in the rope's length,
// and the new rope shares no subtrees with the old one.
package rope

import "strings"

// leafSize sets rebalanceIfNeeded's length threshold (4*leafSize runes);
// leaves themselves are never split by size.
const leafSize = 1024

// Rope is an immutable sequence of runes.
type Rope struct {
	// leaf holds runes directly when this node has no children.
	leaf []rune
	// left/right are nil for leaf nodes.
	left, right *Rope
	// length is the total rune count of this subtree (cached, since Ropes
	// are immutable this never goes stale).
	length int
	// newlines is the total '\n' count of this subtree, cached so line
	// lookups can skip whole subtrees.
	newlines int
}

// New builds a Rope from a string.
func New(s string) *Rope {
	return newLeaf([]rune(s))
}

// Empty returns the empty rope.
func Empty() *Rope {
	return newLeaf(nil)
}

func newLeaf(runes []rune) *Rope {
	return &Rope{leaf: runes, length: len(runes), newlines: countNewlines(runes)}
}

func countNewlines(runes []rune) int {
	n := 0
	for _, r := range runes {
		if r == '\n' {
			n++
		}
	}
	return n
}

func concat(a, b *Rope) *Rope {
	if a.length == 0 {
		return b
	}
	if b.length == 0 {
		return a
	}
	return &Rope{
		left: a, right: b,
		length:   a.length + b.length,
		newlines: a.newlines + b.newlines,
	}
}

// Len returns the length of the rope in runes (chars).
func (r *Rope) Len() int {
	if r == nil {
		return 0
	}
	return r.length
}

// LineCount returns the number of lines, where a trailing newline counts as
// a line separator (so LineCount can exceed the number of non-empty lines
// by one), matching C1's documented convention.
func (r *Rope) LineCount() int {
	if r == nil {
		return 1
	}
	return r.newlines + 1
}

// String renders the full rope as a string.
func (r *Rope) String() string {
	var b strings.Builder
	b.Grow(r.Len())
	r.writeTo(&b)
	return b.String()
}

func (r *Rope) writeTo(b *strings.Builder) {
	if r == nil || r.length == 0 {
		return
	}
	if r.left == nil && r.right == nil {
		b.WriteString(string(r.leaf))
		return
	}
	r.left.writeTo(b)
	r.right.writeTo(b)
}

// Slice returns the substring of chars [start, end).
func (r *Rope) Slice(start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > r.Len() {
		end = r.Len()
	}
	if start >= end {
		return ""
	}
	var b strings.Builder
	b.Grow(end - start)
	r.sliceTo(&b, start, end)
	return b.String()
}

func (r *Rope) sliceTo(b *strings.Builder, start, end int) {
	if r == nil || start >= end || start >= r.length || end <= 0 {
		return
	}
	if r.left == nil && r.right == nil {
		if start < 0 {
			start = 0
		}
		if end > len(r.leaf) {
			end = len(r.leaf)
		}
		b.WriteString(string(r.leaf[start:end]))
		return
	}
	ll := r.left.Len()
	r.left.sliceTo(b, start, end)
	r.right.sliceTo(b, start-ll, end-ll)
}

// Char returns the rune at char index idx.
func (r *Rope) Char(idx int) rune {
	if r.left == nil && r.right == nil {
		return r.leaf[idx]
	}
	ll := r.left.Len()
	if idx < ll {
		return r.left.Char(idx)
	}
	return r.right.Char(idx - ll)
}

// Insert returns a new Rope with s inserted at char index idx.
func (r *Rope) Insert(idx int, s string) *Rope {
	if s == "" {
		return r
	}
	if idx < 0 {
		idx = 0
	}
	if idx > r.Len() {
		idx = r.Len()
	}
	left := r.Slice(0, idx)
	right := r.Slice(idx, r.Len())
	return concat(concat(newLeaf([]rune(left)), New(s)), newLeaf([]rune(right))).rebalanceIfNeeded()
}

// Remove returns a new Rope with chars [start, end) removed.
func (r *Rope) Remove(start, end int) *Rope {
	if end > r.Len() {
		end = r.Len()
	}
	if start < 0 {
		start = 0
	}
	if start >= end {
		return r
	}
	left := r.Slice(0, start)
	right := r.Slice(end, r.Len())
	return concat(newLeaf([]rune(left)), newLeaf([]rune(right)))
}

// Append returns a new Rope with s appended.
func (r *Rope) Append(s string) *Rope {
	return r.Insert(r.Len(), s)
}

// rebalanceIfNeeded re-flattens a tree deeper than 32 levels into a single
// leaf once its length exceeds 4*leafSize. Insert and Remove already build
// trees of at most three leaves, so that depth is not reached through them.
func (r *Rope) rebalanceIfNeeded() *Rope {
	if r.Len() <= leafSize*4 {
		return r
	}
	depth := r.depth()
	if depth <= 32 {
		return r
	}
	return newLeaf([]rune(r.String()))
}

func (r *Rope) depth() int {
	if r == nil || (r.left == nil && r.right == nil) {
		return 1
	}
	ld, rd := r.left.depth(), r.right.depth()
	if ld > rd {
		return ld + 1
	}
	return rd + 1
}

// LineStart returns the char index of the first char of line lineInx
// (0-based). LineStart(LineCount()-1) returns Len() for a text ending in a
// trailing newline (an empty final line).
func (r *Rope) LineStart(lineInx int) int {
	if lineInx <= 0 {
		return 0
	}
	c, found := r.findLineStart(lineInx, 0)
	if !found {
		return r.Len()
	}
	return c
}

// findLineStart walks the rope counting newlines, returning the char index
// immediately after the lineInx-th newline.
func (r *Rope) findLineStart(remaining, offset int) (int, bool) {
	if r == nil {
		return 0, false
	}
	if r.left == nil && r.right == nil {
		for i, ch := range r.leaf {
			if ch == '\n' {
				remaining--
				if remaining == 0 {
					return offset + i + 1, true
				}
			}
		}
		return 0, false
	}
	if r.left.newlines >= remaining {
		return r.left.findLineStart(remaining, offset)
	}
	return r.right.findLineStart(remaining-r.left.newlines, offset+r.left.Len())
}

// LineEnd returns the char index just past the line's terminator (or text
// end for the last line), i.e. LineStart(lineInx+1) clamped to Len().
func (r *Rope) LineEnd(lineInx int) int {
	return r.LineStart(lineInx + 1)
}

// LineOf returns the 0-based line index containing char c.
func (r *Rope) LineOf(c int) int {
	if c <= 0 {
		return 0
	}
	if c > r.Len() {
		c = r.Len()
	}
	n := r.newlinesBefore(c)
	return n
}

func (r *Rope) newlinesBefore(c int) int {
	if r == nil {
		return 0
	}
	if r.left == nil && r.right == nil {
		n := 0
		limit := c
		if limit > len(r.leaf) {
			limit = len(r.leaf)
		}
		for i := 0; i < limit; i++ {
			if r.leaf[i] == '\n' {
				n++
			}
		}
		return n
	}
	ll := r.left.Len()
	if c <= ll {
		return r.left.newlinesBefore(c)
	}
	return r.left.newlines + r.right.newlinesBefore(c-ll)
}
