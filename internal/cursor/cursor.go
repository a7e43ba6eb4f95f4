// Package cursor implements C6: a derived (never stored) value mapping
// between char position, line, soft-wrapped visual row, and rendered
// column, with an x_hint for vertical-motion fidelity. Every function here
// takes (text, sx, config, ...) and returns a new Cursor; none mutate
// their inputs, matching spec.md §4.6's documented purity requirement and
// _examples/original_source/tui/src/cursor.rs's (Rope, usize, &BufferConfig)
// calling convention.
package cursor

import (
	"strings"

	"vedit/internal/bufconfig"
	"vedit/internal/grapheme"
	"vedit/internal/rope"
)

// Cursor is a derived snapshot of a position within text, never mutated in
// place (spec.md §3).
type Cursor struct {
	C        int
	LineInx  int
	LC0, LC1 int
	Wraps    int
	Wrap0    int
	R        int
	XHint    int
	Line     string
	Elements Elements
	Config   bufconfig.Config
}

// Less implements the total order on (LineInx, C).
func (c Cursor) Less(o Cursor) bool {
	if c.LineInx != o.LineInx {
		return c.LineInx < o.LineInx
	}
	return c.C < o.C
}

func (c Cursor) Equal(o Cursor) bool {
	return c.LineInx == o.LineInx && c.C == o.C
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return 1
	}
	return (a + b - 1) / b
}

// FromChar is the canonical constructor (spec.md's cursor_from_char):
// clamps c to [0, len_chars] and rebuilds every derived field.
func FromChar(text *rope.Rope, sx int, config bufconfig.Config, c, xHint int) Cursor {
	if sx < 1 {
		sx = 1
	}
	if c < 0 {
		c = 0
	}
	if c > text.Len() {
		c = text.Len()
	}
	lineInx := text.LineOf(c)
	lc0 := text.LineStart(lineInx)
	lc1 := text.LineEnd(lineInx)
	full := text.Slice(lc0, lc1)
	content, _ := splitTerminator(full)
	elements := BuildElements(content, config)

	local := c - lc0
	if local > elements.LineLen() {
		local = elements.LineLen()
	}
	r := elements.LCtoR(local)
	wraps := ceilDiv(elements.UnicodeWidth()+1, sx)
	wrap0 := r / sx

	return Cursor{
		C: c, LineInx: lineInx, LC0: lc0, LC1: lc1,
		Wraps: wraps, Wrap0: wrap0, R: r, XHint: xHint,
		Line: content, Elements: elements, Config: config,
	}
}

// splitTerminator separates a line's trailing terminator ("\r\n", "\n",
// "\r", or none for the final unterminated line) from its content.
func splitTerminator(line string) (content string, term string) {
	if strings.HasSuffix(line, "\r\n") {
		return line[:len(line)-2], "\r\n"
	}
	if strings.HasSuffix(line, "\n") || strings.HasSuffix(line, "\r") {
		return line[:len(line)-1], line[len(line)-1:]
	}
	return line, ""
}

// Start returns the cursor at char 0.
func Start(text *rope.Rope, sx int, config bufconfig.Config) Cursor {
	return FromChar(text, sx, config, 0, 0)
}

// EOF returns the cursor at the end of the text: char index Len(), just
// past the last char.
func EOF(text *rope.Rope, sx int, config bufconfig.Config) Cursor {
	cur := FromChar(text, sx, config, text.Len(), 0)
	cur.XHint = cur.R
	return cur
}

// FromLine returns the cursor at the start of lineInx, clamped to
// [0, LineCount).
func FromLine(text *rope.Rope, sx int, config bufconfig.Config, lineInx int) Cursor {
	if lineInx < 0 {
		lineInx = 0
	}
	if lc := text.LineCount(); lineInx >= lc {
		lineInx = lc - 1
	}
	c := text.LineStart(lineInx)
	return FromChar(text, sx, config, c, 0)
}

// FromLineWrapped is FromLine but negative lineInx counts from the end.
func FromLineWrapped(text *rope.Rope, sx int, config bufconfig.Config, lineInx int) Cursor {
	if lineInx < 0 {
		lineInx = text.LineCount() + lineInx
	}
	return FromLine(text, sx, config, lineInx)
}

// Resize rebuilds the cursor after a viewport width change, preserving C
// and XHint.
func Resize(text *rope.Rope, sx int, cur Cursor) Cursor {
	return FromChar(text, sx, cur.Config, cur.C, cur.XHint)
}

// Update rebuilds the cursor after a text mutation, preserving C and
// XHint. The config argument is used as given; cur.Config is ignored.
func Update(text *rope.Rope, sx int, config bufconfig.Config, cur Cursor) Cursor {
	return FromChar(text, sx, config, cur.C, cur.XHint)
}

// MoveToLC moves within the same line to lc, interpreted modulo the line's
// length (so -1 means end-of-line, 0 means start-of-line). Updates x_hint
// like other horizontal motions.
func MoveToLC(text *rope.Rope, sx int, cur Cursor, lc int) Cursor {
	lineLen := cur.Elements.LineLen()
	eff := 0
	if lineLen > 0 {
		eff = ((lc % lineLen) + lineLen) % lineLen
	}
	next := FromChar(text, sx, cur.Config, cur.LC0+eff, 0)
	next.XHint = next.R
	return next
}

// ToLineRelative moves to visual position (wrap, rx) within the same line,
// clamping to the line's last render column. XHint is preserved from the
// input cursor (this is the primitive vertical motion builds on; it must
// not save a new hint).
func ToLineRelative(text *rope.Rope, sx int, cur Cursor, wrap, rx int) Cursor {
	targetR := wrap*sx + rx
	if targetR < 0 {
		targetR = 0
	}
	if targetR > cur.Elements.UnicodeWidth() {
		targetR = cur.Elements.UnicodeWidth()
	}
	lc := cur.Elements.RtoLC(targetR)
	next := FromChar(text, sx, cur.Config, cur.LC0+lc, cur.XHint)
	return next
}

// CharBackward applies n grapheme-boundary steps backward. n greater than
// the available distance clamps at char 0.
func CharBackward(text *rope.Rope, sx int, cur Cursor, n int) Cursor {
	runes := []rune(text.String())
	newC := grapheme.NthPrevBoundary(runes, cur.C, n)
	next := FromChar(text, sx, cur.Config, newC, 0)
	next.XHint = next.R
	return next
}

// CharForward applies n grapheme-boundary steps forward, clamped to
// len_chars-1.
func CharForward(text *rope.Rope, sx int, cur Cursor, n int) Cursor {
	runes := []rune(text.String())
	newC := grapheme.NthNextBoundary(runes, cur.C, n)
	maxC := text.Len() - 1
	if maxC < 0 {
		maxC = 0
	}
	if newC > maxC {
		newC = maxC
	}
	next := FromChar(text, sx, cur.Config, newC, 0)
	next.XHint = next.R
	return next
}

// MoveToX moves horizontally by dx grapheme boundaries: positive forward,
// negative backward, zero identity.
func MoveToX(text *rope.Rope, sx int, cur Cursor, dx int) Cursor {
	switch {
	case dx > 0:
		return CharForward(text, sx, cur, dx)
	case dx < 0:
		return CharBackward(text, sx, cur, -dx)
	default:
		next := cur
		next.XHint = cur.R
		return next
	}
}

// VisualPrevLine moves up one soft-wrapped visual row, consulting (never
// mutating) XHint. ok is false only at the very first visual row of the
// text.
func VisualPrevLine(text *rope.Rope, sx int, cur Cursor) (Cursor, bool) {
	if cur.Wrap0 > 0 {
		return ToLineRelative(text, sx, cur, cur.Wrap0-1, cur.XHint), true
	}
	if cur.LineInx > 0 {
		prevStart := FromLine(text, sx, cur.Config, cur.LineInx-1)
		lastWrap := prevStart.Wraps - 1
		moved := ToLineRelative(text, sx, prevStart, lastWrap, cur.XHint)
		moved.XHint = cur.XHint
		return moved, true
	}
	return cur, false
}

// VisualNextLine is the mirror of VisualPrevLine.
func VisualNextLine(text *rope.Rope, sx int, cur Cursor) (Cursor, bool) {
	if cur.Wrap0 < cur.Wraps-1 {
		return ToLineRelative(text, sx, cur, cur.Wrap0+1, cur.XHint), true
	}
	if cur.LineInx < text.LineCount()-1 {
		nextStart := FromLine(text, sx, cur.Config, cur.LineInx+1)
		moved := ToLineRelative(text, sx, nextStart, 0, cur.XHint)
		moved.XHint = cur.XHint
		return moved, true
	}
	return cur, false
}

// MoveToY applies |dy| visual-row steps in the sign direction, clamping at
// the start/end of the text if it runs out of rows.
func MoveToY(text *rope.Rope, sx int, cur Cursor, dy int) Cursor {
	cur2 := cur
	if dy > 0 {
		for i := 0; i < dy; i++ {
			next, ok := VisualNextLine(text, sx, cur2)
			if !ok {
				break
			}
			cur2 = next
		}
	} else if dy < 0 {
		for i := 0; i < -dy; i++ {
			next, ok := VisualPrevLine(text, sx, cur2)
			if !ok {
				break
			}
			cur2 = next
		}
	}
	return cur2
}

// charClass classifies a rune for word-motion purposes: 0=space,
// 1=punctuation/special, 2=word (alnum or underscore). cap (WORD variant)
// merges classes 1 and 2.
func charClass(r rune, cap bool) int {
	if isSpaceRune(r) {
		return 0
	}
	if cap {
		return 1
	}
	if isWordRune(r) {
		return 2
	}
	return 1
}

func isSpaceRune(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f'
}

func isWordRune(r rune) bool {
	return r == '_' ||
		(r >= '0' && r <= '9') ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		r > 127 // treat other unicode letters as word chars
}

// MoveToWord implements w/W/b/B: for each unit of |d|, consume a class run
// then a boundary (whitespace) run forward, or a whitespace run then a
// class run backward. d == 0 is identity.
func MoveToWord(text *rope.Rope, sx int, cur Cursor, d int, cap bool) Cursor {
	if d == 0 {
		return cur
	}
	runes := []rune(text.String())
	c := cur.C
	n := len(runes)
	if d > 0 {
		for i := 0; i < d; i++ {
			if c >= n {
				break
			}
			cls := charClass(runes[c], cap)
			for c < n && charClass(runes[c], cap) == cls {
				c++
			}
			for c < n && charClass(runes[c], cap) == 0 {
				c++
			}
		}
	} else {
		for i := 0; i < -d; i++ {
			if c <= 0 {
				break
			}
			c--
			for c > 0 && charClass(runes[c], cap) == 0 {
				c--
			}
			if c > 0 || charClass(runes[c], cap) != 0 {
				cls := charClass(runes[c], cap)
				for c > 0 && charClass(runes[c-1], cap) == cls {
					c--
				}
			}
		}
	}
	next := FromChar(text, sx, cur.Config, c, 0)
	next.XHint = next.R
	return next
}

// MoveToWordEnd implements e/E: move forward to the end of the current or
// next word run.
func MoveToWordEnd(text *rope.Rope, sx int, cur Cursor, d int, cap bool) Cursor {
	if d == 0 {
		return cur
	}
	runes := []rune(text.String())
	c := cur.C
	n := len(runes)
	for i := 0; i < d; i++ {
		if c+1 >= n {
			c = n - 1
			if c < 0 {
				c = 0
			}
			break
		}
		c++
		for c < n && charClass(runes[c], cap) == 0 {
			c++
		}
		if c >= n {
			c = n - 1
			break
		}
		cls := charClass(runes[c], cap)
		for c+1 < n && charClass(runes[c+1], cap) == cls {
			c++
		}
	}
	next := FromChar(text, sx, cur.Config, c, 0)
	next.XHint = next.R
	return next
}

// MoveToChar implements t/T (Til1/Til2): within the same line, move to the
// d-th occurrence of ch after the cursor (or before, if d < 0). inclusive
// lands on ch; otherwise lands just before (forward) or just after
// (backward) it.
func MoveToChar(text *rope.Rope, sx int, cur Cursor, d int, ch rune, inclusive bool) Cursor {
	if d == 0 {
		return cur
	}
	lineRunes := []rune(cur.Line)
	local := cur.C - cur.LC0
	var target int = -1
	if d > 0 {
		count := 0
		for i := local + 1; i < len(lineRunes); i++ {
			if lineRunes[i] == ch {
				count++
				if count == d {
					target = i
					break
				}
			}
		}
		if target < 0 {
			return cur
		}
		if !inclusive {
			target--
		}
	} else {
		count := 0
		for i := local - 1; i >= 0; i-- {
			if lineRunes[i] == ch {
				count++
				if count == -d {
					target = i
					break
				}
			}
		}
		if target < 0 {
			return cur
		}
		if !inclusive {
			target++
		}
	}
	if target < 0 {
		target = 0
	}
	next := FromChar(text, sx, cur.Config, cur.LC0+target, 0)
	next.XHint = next.R
	return next
}

// IsSpecial reports whether r is one of the "specials" listed in spec.md
// §4.6's word-class definition.
func IsSpecial(r rune) bool {
	return strings.ContainsRune(":;'\"(){}[]", r)
}
