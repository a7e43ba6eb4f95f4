// Package layout implements C7: the row projector that turns a cursor
// position and viewport size into the list of RowItems to render, plus
// the BufferBlock aggregate (C7's owning tuple) that caches the last
// projection. Grounded on the screen_from_start/screen_from_cursor walk
// described in spec.md §4.7 and on
// _examples/original_source/tui/src/cursor.rs's visual-line walkers that
// C6 already exposes via cursor.VisualNextLine/VisualPrevLine.
package layout

import (
	"vedit/internal/bufconfig"
	"vedit/internal/cursor"
	"vedit/internal/rope"
	"vedit/internal/search"
)

// RowItem is the data needed to render one visual row (spec.md §3).
type RowItem struct {
	LineInx  int
	Wrap     int
	LC0, LC1 int
	C0, C1   int
	Text     string
}

// rowFromCursor derives the RowItem a cursor's current visual row
// projects to: the slice of the line's content visible at this wrap
// offset.
func rowFromCursor(c cursor.Cursor, sx int) RowItem {
	rFrom := c.Wrap0 * sx
	rTo := rFrom + sx
	if rTo > c.Elements.UnicodeWidth() {
		rTo = c.Elements.UnicodeWidth()
	}
	lcFrom := c.Elements.RtoLC(rFrom)
	lcTo := c.Elements.RtoLC(rTo)
	return RowItem{
		LineInx: c.LineInx,
		Wrap:    c.Wrap0,
		LC0:     c.LC0, LC1: c.LC1,
		C0: c.LC0 + lcFrom, C1: c.LC0 + lcTo,
		Text: sliceRunes(c.Line, lcFrom, lcTo),
	}
}

func sliceRunes(s string, from, to int) string {
	runes := []rune(s)
	if from < 0 {
		from = 0
	}
	if to > len(runes) {
		to = len(runes)
	}
	if from > to {
		from = to
	}
	return string(runes[from:to])
}

// ScreenFromStart walks forward sy rows starting at startCursor's visual
// row (spec.md §4.7). Rows past EOF are simply omitted.
func ScreenFromStart(text *rope.Rope, sx, sy int, start cursor.Cursor) []RowItem {
	rows := make([]RowItem, 0, sy)
	cur := start
	rows = append(rows, rowFromCursor(cur, sx))
	for len(rows) < sy {
		next, ok := cursor.VisualNextLine(text, sx, cur)
		if !ok {
			break
		}
		cur = next
		rows = append(rows, rowFromCursor(cur, sx))
	}
	return rows
}

// ScreenResult is screen_from_cursor's return value.
type ScreenResult struct {
	CursorColumn int
	CursorRow    int
	Rows         []RowItem
	StartCursor  cursor.Cursor
}

// ScreenFromCursor seeds the row list at mainCursor, walks backward while
// still above startCursor's position (recentering the viewport if the
// cursor scrolled out of view), then walks forward to fill sy rows
// (spec.md §4.7).
func ScreenFromCursor(text *rope.Rope, sx, sy int, start, main cursor.Cursor) ScreenResult {
	type entry struct {
		cur cursor.Cursor
		row RowItem
	}
	entries := []entry{{cur: main, row: rowFromCursor(main, sx)}}
	cursorRow := 0

	cur := main
	for greater(cur, start) && len(entries) < sy {
		prev, ok := cursor.VisualPrevLine(text, sx, cur)
		if !ok {
			break
		}
		cur = prev
		entries = append([]entry{{cur: cur, row: rowFromCursor(cur, sx)}}, entries...)
		cursorRow++
	}

	fwd := main
	for len(entries) < sy {
		next, ok := cursor.VisualNextLine(text, sx, fwd)
		if !ok {
			break
		}
		fwd = next
		entries = append(entries, entry{cur: fwd, row: rowFromCursor(fwd, sx)})
	}

	rows := make([]RowItem, len(entries))
	for i, e := range entries {
		rows[i] = e.row
	}

	newStart := start
	if len(entries) > 0 {
		newStart = entries[0].cur
	}

	return ScreenResult{
		CursorColumn: main.R,
		CursorRow:    cursorRow,
		Rows:         rows,
		StartCursor:  newStart,
	}
}

// greater reports whether a's (lineInx, c) position is strictly after b's.
func greater(a, b cursor.Cursor) bool {
	if a.LineInx != b.LineInx {
		return a.LineInx > b.LineInx
	}
	return a.C > b.C
}

// BufferBlock is C7's (Buffer, start_cursor, main_cursor, viewport,
// search_results, cached_rows, focus_flag) aggregate.
type BufferBlock struct {
	Width, Height int
	Start         cursor.Cursor
	Main          cursor.Cursor
	Search        search.Results
	Rows          []RowItem
	Focused       bool
}

// NewBufferBlock builds a block at the text's start, sized sx by sy.
func NewBufferBlock(text *rope.Rope, sx, sy int, cfg bufconfig.Config) *BufferBlock {
	start := cursor.Start(text, sx, cfg)
	b := &BufferBlock{Width: sx, Height: sy, Start: start, Main: start}
	b.Reproject(text)
	return b
}

// Reproject recomputes Rows (and, if Main has scrolled out of view,
// Start) from the block's current cursors.
func (b *BufferBlock) Reproject(text *rope.Rope) {
	if withinView(text, b.Width, b.Height, b.Start, b.Main) {
		b.Rows = ScreenFromStart(text, b.Width, b.Height, b.Start)
		return
	}
	res := ScreenFromCursor(text, b.Width, b.Height, b.Start, b.Main)
	b.Start = res.StartCursor
	b.Rows = res.Rows
}

func withinView(text *rope.Rope, sx, sy int, start, main cursor.Cursor) bool {
	if greater(start, main) {
		return false
	}
	rows := ScreenFromStart(text, sx, sy, start)
	if len(rows) == 0 {
		return false
	}
	last := rows[len(rows)-1]
	return main.LineInx < last.LineInx || (main.LineInx == last.LineInx && main.C <= last.C1)
}
