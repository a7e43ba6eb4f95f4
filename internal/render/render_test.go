package render

import (
	"testing"

	"vedit/internal/buffer"
	"vedit/internal/command"
	"vedit/internal/dispatch"
	"vedit/internal/search"

	"github.com/stretchr/testify/assert"
)

func TestRowsHighlightsSearchMatch(t *testing.T) {
	b := buffer.NewFromString("hello world\n")
	d := dispatch.New(b, 80, 10)
	blk := d.Blocks[0]
	blk.Search = search.NewSearch(b.Rope(), "world", false)
	blk.Reproject(b.Rope())

	rows := Rows(blk, DarkTheme())
	assert.NotEmpty(t, rows)
	joined := rows[0].String()
	assert.Contains(t, joined, "world")
}

func TestStatusLineShowsDirtyMarker(t *testing.T) {
	b := buffer.NewFromString("abc\n")
	b.SetPath("/tmp/foo.txt")
	d := dispatch.New(b, 80, 10)
	d.Apply(command.Insert("x"))

	line := StatusLine(d, command.ModeNormal, 40, DarkTheme())
	assert.Contains(t, line, "foo.txt+")
}
