package cursor

import (
	"testing"

	"vedit/internal/bufconfig"
	"vedit/internal/rope"

	"github.com/stretchr/testify/assert"
)

func TestFromCharBasic(t *testing.T) {
	text := rope.New("abcdef\n")
	cfg := bufconfig.Default()
	c := FromChar(text, 80, cfg, 3, 0)
	assert.Equal(t, 3, c.C)
	assert.Equal(t, 0, c.LineInx)
	assert.Equal(t, 3, c.R)
}

func TestVisualDownPreservesColumn(t *testing.T) {
	// scenario 3 from spec.md §8
	text := rope.New("abcdef\nxy\nghijkl\n")
	cfg := bufconfig.Default()
	c := FromChar(text, 80, cfg, 3, 3)
	assert.Equal(t, 3, c.R)

	c2, ok := VisualNextLine(text, 80, c)
	assert.True(t, ok)
	assert.Equal(t, 1, c2.LineInx)
	assert.Equal(t, 9, c2.C) // clamped to end of "xy" line
	assert.Equal(t, 3, c2.XHint, "x_hint preserved across vertical motion")

	c3, ok := VisualNextLine(text, 80, c2)
	assert.True(t, ok)
	assert.Equal(t, 2, c3.LineInx)
	assert.Equal(t, 13, c3.C) // back to r=3 since line is long enough
	assert.Equal(t, 3, c3.R)
}

func TestCharBackwardForwardRoundTrip(t *testing.T) {
	text := rope.New("hello world")
	cfg := bufconfig.Default()
	k := FromChar(text, 80, cfg, 5, 0)
	back := CharBackward(text, 80, k, 2)
	fwd := CharForward(text, 80, back, 2)
	assert.GreaterOrEqual(t, fwd.C, k.C)
}

func TestMoveToWordForward(t *testing.T) {
	text := rope.New("hello world\n")
	cfg := bufconfig.Default()
	c := FromChar(text, 80, cfg, 0, 0)
	c2 := MoveToWord(text, 80, c, 1, false)
	assert.Equal(t, 6, c2.C) // start of "world"
}

func TestMoveToCharInclusiveExclusive(t *testing.T) {
	text := rope.New("abcdefg\n")
	cfg := bufconfig.Default()
	c := FromChar(text, 80, cfg, 0, 0)
	inc := MoveToChar(text, 80, c, 1, 'e', true)
	assert.Equal(t, 4, inc.C) // lands on 'e'
	exc := MoveToChar(text, 80, c, 1, 'e', false)
	assert.Equal(t, 3, exc.C) // lands just before 'e'
}

func TestMoveToLCModulo(t *testing.T) {
	text := rope.New("abcdef\n")
	cfg := bufconfig.Default()
	c := FromChar(text, 80, cfg, 0, 0)
	end := MoveToLC(text, 80, c, -1)
	assert.Equal(t, c.LC0+c.Elements.LineLen()-1, end.C) // -1 means end of line content (excludes terminator)
	start := MoveToLC(text, 80, c, 0)
	assert.Equal(t, c.LC0, start.C)
}

func TestWrapsAccountForViewportWidth(t *testing.T) {
	text := rope.New("abcdefghij\n")
	cfg := bufconfig.Default()
	c := FromChar(text, 4, cfg, 0, 0)
	assert.GreaterOrEqual(t, c.Wraps, 2)
}
