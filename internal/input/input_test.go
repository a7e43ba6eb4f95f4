package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTagAndTagString(t *testing.T) {
	q := []Elem{Char('g'), Char('g')}
	res := TagString(q, "gg")
	assert.Equal(t, StatusSuccess, res.Status)
	assert.Empty(t, res.Rest)
}

func TestTagStringIncomplete(t *testing.T) {
	q := []Elem{Char('g')}
	res := TagString(q, "gg")
	assert.Equal(t, StatusIncomplete, res.Status)
}

func TestTagStringError(t *testing.T) {
	q := []Elem{Char('x'), Char('g')}
	res := TagString(q, "gg")
	assert.Equal(t, StatusError, res.Status)
}

func TestNumberParsesDigits(t *testing.T) {
	q := []Elem{Char('1'), Char('2'), Char('w')}
	res := Number(q)
	assert.Equal(t, StatusSuccess, res.Status)
	assert.Equal(t, 12, res.Value)
	assert.Equal(t, []Elem{Char('w')}, res.Rest)
}

func TestNumberIncompleteAtEnd(t *testing.T) {
	q := []Elem{Char('1'), Char('2')}
	res := Number(q)
	assert.Equal(t, StatusIncomplete, res.Status)
}

func TestOneOfPicksFirstSuccess(t *testing.T) {
	q := []Elem{Enter}
	res := OneOf(q,
		func(q []Elem) Result { return Tag(q, Esc) },
		func(q []Elem) Result { return Tag(q, Enter) },
	)
	assert.Equal(t, StatusSuccess, res.Status)
}

func TestStringUntilStopsAtTarget(t *testing.T) {
	q := []Elem{Char('a'), Char('b'), Enter}
	res := StringUntil(q, func(e Elem) bool { return e.Kind == KindEnter })
	assert.Equal(t, StatusSuccess, res.Status)
	assert.Equal(t, "ab", res.Value)
	assert.Equal(t, []Elem{Enter}, res.Rest)
}

func TestElemStringer(t *testing.T) {
	assert.Equal(t, `Char('a')`, Char('a').String())
	assert.Equal(t, "Enter", Enter.String())
}
