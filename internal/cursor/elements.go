package cursor

import (
	"fmt"
	"unicode"

	"vedit/internal/bufconfig"
	"vedit/internal/grapheme"
)

// viewElem is one expanded view-char: a grapheme cluster, a tab
// placeholder, or a control-char escape, carrying its rendered display
// width and the number of source chars it consumes.
type viewElem struct {
	width  int
	srcLen int
}

// Elements is the expanded view-char sequence for one line (spec.md §3's
// Cursor.elements), with an lc<->r index mapping.
type Elements struct {
	items   []viewElem
	lcStart []int // cumulative srcLen prefix: item i starts at lc lcStart[i]
	rStart  []int // cumulative width prefix: item i starts at render col rStart[i]
	lineLen int   // total source chars
	width   int   // total rendered width ("unicode_width")
}

// BuildElements expands line (a line's content; FromChar passes it with
// the trailing terminator already stripped) into an Elements sequence per
// config's tab width.
func BuildElements(line string, config bufconfig.Config) Elements {
	runes := []rune(line)
	clusters := grapheme.Clusters(runes)

	e := Elements{
		items:   make([]viewElem, 0, len(clusters)),
		lcStart: make([]int, 0, len(clusters)+1),
		rStart:  make([]int, 0, len(clusters)+1),
	}
	lc, r := 0, 0
	for _, cl := range clusters {
		var w, n int
		switch {
		case len(cl) == 1 && cl[0] == '\t':
			w, n = int(config.TabWidth), 1
		case len(cl) == 1 && cl[0] == '\n':
			w, n = 1, 1
		case len(cl) == 1 && unicode.IsControl(cl[0]):
			w, n = 1, 1
		default:
			w, n = grapheme.Width(cl), len(cl)
		}
		e.items = append(e.items, viewElem{width: w, srcLen: n})
		e.lcStart = append(e.lcStart, lc)
		e.rStart = append(e.rStart, r)
		lc += n
		r += w
	}
	e.lcStart = append(e.lcStart, lc)
	e.rStart = append(e.rStart, r)
	e.lineLen = lc
	e.width = r
	return e
}

// UnicodeWidth returns the total rendered width of the line.
func (e Elements) UnicodeWidth() int { return e.width }

// LineLen returns the total source-char length of the line.
func (e Elements) LineLen() int { return e.lineLen }

// LCtoR maps a local line-char offset (0..LineLen()) to its rendered
// column.
func (e Elements) LCtoR(lc int) int {
	if lc <= 0 {
		return 0
	}
	if lc >= e.lineLen {
		return e.width
	}
	i := e.itemAtLC(lc)
	return e.rStart[i]
}

// RtoLC maps a rendered column (0..UnicodeWidth()) to the line-char offset
// of the view-elem occupying that column.
func (e Elements) RtoLC(r int) int {
	if r <= 0 {
		return 0
	}
	if r >= e.width {
		return e.lineLen
	}
	i := e.itemAtR(r)
	return e.lcStart[i]
}

func (e Elements) itemAtLC(lc int) int {
	lo, hi := 0, len(e.items)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if e.lcStart[mid] <= lc {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

func (e Elements) itemAtR(r int) int {
	lo, hi := 0, len(e.items)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if e.rStart[mid] <= r {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

func (e Elements) String() string {
	return fmt.Sprintf("Elements{len=%d width=%d}", e.lineLen, e.width)
}
