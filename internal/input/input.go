// Package input implements C8: the normalized key-event token model and
// the prefix-parser combinators the modal interpreter runs over it.
// Grounded on the Elem sum type and parser-combinator outcomes documented
// in _examples/original_source/bindings/src/parser.rs, re-expressed as a
// Go Kind-plus-fields token and three-way Status rather than a Rust enum
// with a generic parser monad.
package input

import "fmt"

// Kind enumerates the normalized key-event shapes (spec.md §4.8).
type Kind int

const (
	KindChar Kind = iota
	KindAlt
	KindControl
	KindUp
	KindDown
	KindLeft
	KindRight
	KindEnter
	KindEsc
	KindBackspace
	KindDelete
	KindTab
	KindResize
)

// Elem is one normalized input event. Char/Alt/Control carry a rune in Ch;
// Resize carries W/H; the rest are bare.
type Elem struct {
	Kind Kind
	Ch   rune
	W, H int
}

func Char(c rune) Elem    { return Elem{Kind: KindChar, Ch: c} }
func Alt(c rune) Elem     { return Elem{Kind: KindAlt, Ch: c} }
func Control(c rune) Elem { return Elem{Kind: KindControl, Ch: c} }
func Resize(w, h int) Elem { return Elem{Kind: KindResize, W: w, H: h} }

var (
	Up        = Elem{Kind: KindUp}
	Down      = Elem{Kind: KindDown}
	Left      = Elem{Kind: KindLeft}
	Right     = Elem{Kind: KindRight}
	Enter     = Elem{Kind: KindEnter}
	Esc       = Elem{Kind: KindEsc}
	Backspace = Elem{Kind: KindBackspace}
	Delete    = Elem{Kind: KindDelete}
	Tab       = Elem{Kind: KindTab}
)

func (e Elem) String() string {
	switch e.Kind {
	case KindChar:
		return fmt.Sprintf("Char(%q)", e.Ch)
	case KindAlt:
		return fmt.Sprintf("Alt(%q)", e.Ch)
	case KindControl:
		return fmt.Sprintf("Control(%q)", e.Ch)
	case KindResize:
		return fmt.Sprintf("Resize(%d,%d)", e.W, e.H)
	default:
		return [...]string{
			"", "", "", "Up", "Down", "Left", "Right", "Enter", "Esc",
			"Backspace", "Delete", "Tab",
		}[e.Kind]
	}
}

// Status is the three-way combinator outcome (spec.md §4.8).
type Status int

const (
	StatusSuccess Status = iota
	StatusIncomplete
	StatusError
)

// Result is the outcome of running a parser over a prefix of q.
// On StatusSuccess, Rest is the unconsumed suffix and Value holds whatever
// the combinator produced (an Elem, a rune, a string, or an int, by
// convention of the combinator that produced it).
type Result struct {
	Status Status
	Rest   []Elem
	Value  any
}

func success(rest []Elem, value any) Result { return Result{Status: StatusSuccess, Rest: rest, Value: value} }
func incomplete() Result                    { return Result{Status: StatusIncomplete} }
func errResult() Result                     { return Result{Status: StatusError} }

// Take consumes exactly one element, whatever it is.
func Take(q []Elem) Result {
	if len(q) == 0 {
		return incomplete()
	}
	return success(q[1:], q[0])
}

// CharP matches a single Char(c) element against pred.
func CharP(q []Elem, pred func(rune) bool) Result {
	if len(q) == 0 {
		return incomplete()
	}
	if q[0].Kind != KindChar || !pred(q[0].Ch) {
		return errResult()
	}
	return success(q[1:], q[0].Ch)
}

// Tag matches exactly one element equal to want (ignoring W/H on Resize).
func Tag(q []Elem, want Elem) Result {
	if len(q) == 0 {
		return incomplete()
	}
	got := q[0]
	if got.Kind != want.Kind {
		return errResult()
	}
	if (want.Kind == KindChar || want.Kind == KindAlt || want.Kind == KindControl) && got.Ch != want.Ch {
		return errResult()
	}
	return success(q[1:], got)
}

// TagString matches a literal sequence of Char elements spelling s.
func TagString(q []Elem, s string) Result {
	runes := []rune(s)
	rest := q
	for _, r := range runes {
		res := Tag(rest, Char(r))
		switch res.Status {
		case StatusSuccess:
			rest = res.Rest
		case StatusIncomplete:
			return incomplete()
		default:
			return errResult()
		}
	}
	return success(rest, s)
}

// OneOf tries each parser in order and returns the first Success. If none
// succeeds it returns Incomplete when any alternative was Incomplete, and
// Error otherwise; an Error from one alternative does not stop the search.
func OneOf(q []Elem, parsers ...func([]Elem) Result) Result {
	sawIncomplete := false
	for _, p := range parsers {
		res := p(q)
		switch res.Status {
		case StatusSuccess:
			return res
		case StatusIncomplete:
			sawIncomplete = true
		}
	}
	if sawIncomplete {
		return incomplete()
	}
	return errResult()
}

// Number parses a run of one or more ASCII digits into an int. A leading
// '0' alone is a valid single-digit number (LineNav/Motion(0,...) rely on
// this), but "0" followed by more digits is still read as a literal prefix
// (vim convention: bare 0 is a motion, not a count prefix — callers that
// need that distinction inspect the consumed digit count themselves).
func Number(q []Elem) Result {
	n := 0
	count := 0
	rest := q
	for {
		if len(rest) == 0 {
			if count == 0 {
				return incomplete()
			}
			return incomplete() // still waiting to see if more digits follow
		}
		if rest[0].Kind != KindChar || rest[0].Ch < '0' || rest[0].Ch > '9' {
			break
		}
		n = n*10 + int(rest[0].Ch-'0')
		count++
		rest = rest[1:]
	}
	if count == 0 {
		return errResult()
	}
	return success(rest, n)
}

// StringUntil consumes Char elements until stop matches (stop itself is not
// consumed), collecting them into a string.
func StringUntil(q []Elem, stop func(Elem) bool) Result {
	var out []rune
	rest := q
	for {
		if len(rest) == 0 {
			return incomplete()
		}
		if stop(rest[0]) {
			return success(rest, string(out))
		}
		if rest[0].Kind != KindChar {
			return errResult()
		}
		out = append(out, rest[0].Ch)
		rest = rest[1:]
	}
}
