package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMetaClassifiesInterpreterOwnedCommands(t *testing.T) {
	assert.True(t, Quit().IsMeta())
	assert.True(t, Reset().IsMeta())
	assert.True(t, ChangeStart().IsMeta())
	assert.True(t, ChangeEnd().IsMeta())
	assert.True(t, ChangeRepeat().IsMeta())
	assert.True(t, SetMode(ModeInsert).IsMeta())
	assert.True(t, MacroStart('q').IsMeta())
	assert.True(t, MacroEnd().IsMeta())

	assert.False(t, Insert("x").IsMeta())
	assert.False(t, MotionCmd(1, MotionLeft).IsMeta())
	assert.False(t, MacroReplay('q').IsMeta())
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "normal", ModeNormal.String())
	assert.Equal(t, "insert", ModeInsert.String())
	assert.Equal(t, "cli", ModeCli.String())
	assert.Equal(t, "easy", ModeEasy.String())
}
