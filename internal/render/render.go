// Package render turns a BufferBlock's projected RowItems into styled
// terminal spans and renders the status and Cli lines; it keeps no
// diagnostic log. The teacher ships its own hand-rolled Cell/Style engine
// (forme/tui's Style/Color types in theme.go) but its own go.mod already
// requires charmbracelet/lipgloss without ever importing it -- SPEC_FULL.md
// directs this module to complete that wiring rather than adapt the
// competing hand-rolled framework, so spans here are lipgloss.Style
// values applied to RowItem/search-match text (see DESIGN.md).
package render

import (
	"fmt"
	"strings"

	"vedit/internal/command"
	"vedit/internal/dispatch"
	"vedit/internal/layout"

	"github.com/charmbracelet/lipgloss"
)

// Theme mirrors the teacher's Theme grouping (theme.go) but as lipgloss
// styles instead of the hand-rolled Style/Color pair.
type Theme struct {
	Base      lipgloss.Style
	Muted     lipgloss.Style
	Accent    lipgloss.Style
	Error     lipgloss.Style
	Highlight lipgloss.Style
	Cursor    lipgloss.Style
}

// DarkTheme is the default theme: light text on the terminal's own
// background, cyan search highlights, reverse-video cursor cell.
func DarkTheme() Theme {
	return Theme{
		Base:      lipgloss.NewStyle(),
		Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Accent:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Highlight: lipgloss.NewStyle().Background(lipgloss.Color("3")).Foreground(lipgloss.Color("0")),
		Cursor:    lipgloss.NewStyle().Reverse(true),
	}
}

// Span is one styled run of text within a rendered row.
type Span struct {
	Text  string
	Style lipgloss.Style
}

// Row is a fully styled visual row, ready to be joined and written.
type Row struct {
	Spans []Span
}

// String concatenates a Row's spans through their styles.
func (r Row) String() string {
	var b strings.Builder
	for _, s := range r.Spans {
		b.WriteString(s.Style.Render(s.Text))
	}
	return b.String()
}

// Rows styles every RowItem in blk, applying search-match highlighting
// from blk.Search and a reverse-video cell at the cursor column when the
// block is focused.
func Rows(blk *layout.BufferBlock, th Theme) []Row {
	out := make([]Row, 0, len(blk.Rows))
	for _, item := range blk.Rows {
		out = append(out, styleRow(item, blk, th))
	}
	return out
}

func styleRow(item layout.RowItem, blk *layout.BufferBlock, th Theme) Row {
	if item.Text == "" {
		return Row{Spans: []Span{{Text: "", Style: th.Base}}}
	}
	runes := []rune(item.Text)
	marks := make([]bool, len(runes))
	for _, m := range blk.Search.Matches() {
		lo, hi := m.Start, m.End
		if lo < item.C0 {
			lo = item.C0
		}
		if hi > item.C1 {
			hi = item.C1
		}
		for c := lo; c < hi; c++ {
			marks[c-item.C0] = true
		}
	}
	cursorAt := -1
	if blk.Focused && item.LineInx == blk.Main.LineInx && item.Wrap == blk.Main.Wrap0 {
		if blk.Main.C >= item.C0 && blk.Main.C < item.C1 {
			cursorAt = blk.Main.C - item.C0
		}
	}

	// classOf is a comparable proxy for styleFor's result: lipgloss.Style
	// holds an internal rule map and is not comparable with ==, so runs
	// are split on this tag instead of the style value itself.
	classOf := func(i int) int {
		switch {
		case i == cursorAt:
			return 2
		case marks[i]:
			return 1
		default:
			return 0
		}
	}
	styleOf := func(class int) lipgloss.Style {
		switch class {
		case 2:
			return th.Cursor
		case 1:
			return th.Highlight
		default:
			return th.Base
		}
	}

	var spans []Span
	runStart := 0
	cur := classOf(0)
	for i := 1; i <= len(runes); i++ {
		if i == len(runes) || classOf(i) != cur {
			spans = append(spans, Span{Text: string(runes[runStart:i]), Style: styleOf(cur)})
			if i < len(runes) {
				runStart = i
				cur = classOf(i)
			}
		}
	}
	return Row{Spans: spans}
}

// StatusLine renders the bottom status bar: buffer name, mode, and
// cursor position, matching the teacher's two-row footer convention
// (footerRows = 2 in cmd/minivim/main.go: status bar + message line).
func StatusLine(d *dispatch.Dispatcher, mode command.Mode, width int, th Theme) string {
	b := d.Buffers[d.Focus]
	blk := d.Blocks[d.Focus]
	path := b.Path()
	if path == "" {
		path = "[No Name]"
	}
	dirty := " "
	if b.Dirty() {
		dirty = "+"
	}
	left := fmt.Sprintf(" %s%s", path, dirty)
	right := fmt.Sprintf("%s  %d:%d ", modeLabel(mode), blk.Main.LineInx+1, blk.Main.C-blk.Main.LC0+1)
	pad := width - len(left) - len(right)
	if pad < 1 {
		pad = 1
	}
	return th.Accent.Render(left + strings.Repeat(" ", pad) + right)
}

func modeLabel(m command.Mode) string {
	switch m {
	case command.ModeInsert:
		return "INSERT"
	case command.ModeCli:
		return "COMMAND"
	default:
		return "NORMAL"
	}
}

// CliLine renders the Cli mini-buffer line: the leading sigil the
// dispatcher's ParseCli recognizes, followed by the in-progress text.
func CliLine(text string, th Theme) string {
	if text == "" {
		return ""
	}
	return th.Base.Render(text)
}
