package layout

import (
	"testing"

	"vedit/internal/bufconfig"
	"vedit/internal/cursor"
	"vedit/internal/rope"

	"github.com/stretchr/testify/assert"
)

func TestScreenFromStartBasic(t *testing.T) {
	text := rope.New("one\ntwo\nthree\n")
	cfg := bufconfig.Default()
	start := cursor.Start(text, 80, cfg)
	rows := ScreenFromStart(text, 80, 2, start)
	assert.Len(t, rows, 2)
	assert.Equal(t, "one", rows[0].Text)
	assert.Equal(t, "two", rows[1].Text)
}

func TestScreenFromStartStopsAtEOF(t *testing.T) {
	text := rope.New("only\n")
	cfg := bufconfig.Default()
	start := cursor.Start(text, 80, cfg)
	rows := ScreenFromStart(text, 80, 10, start)
	assert.Len(t, rows, 2) // "only" plus the empty line after the trailing newline
}

func TestNewBufferBlockProjectsFromStart(t *testing.T) {
	text := rope.New("a\nb\nc\n")
	cfg := bufconfig.Default()
	b := NewBufferBlock(text, 80, 2, cfg)
	assert.Len(t, b.Rows, 2)
	assert.Equal(t, "a", b.Rows[0].Text)
}

func TestReprojectFollowsCursorOutOfView(t *testing.T) {
	text := rope.New("a\nb\nc\nd\ne\n")
	cfg := bufconfig.Default()
	b := NewBufferBlock(text, 80, 2, cfg)
	b.Main = cursor.FromLine(text, 80, cfg, 4) // line "e", out of initial 2-row view
	b.Reproject(text)
	assert.Equal(t, 4, b.Main.LineInx)
	found := false
	for _, r := range b.Rows {
		if r.LineInx == 4 {
			found = true
		}
	}
	assert.True(t, found, "cursor's line must be represented in the re-projected rows")
}
