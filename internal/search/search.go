// Package search implements C5: a single-pass, reset-FSM needle scan over a
// rope, producing sorted, non-overlapping half-open char intervals, plus a
// reverse-aware "next occurrence" cursor. On a mismatch the FSM resets
// without re-testing the mismatching char, so an occurrence that begins
// inside a partial match is not found ("ab" in "aab").
// Grounded verbatim on the algorithm in
// _examples/original_source/tui/src/search.rs (SearchFsm/SearchResults).
package search

import "vedit/internal/rope"

// Match is a half-open char interval [Start, End).
type Match struct {
	Start, End int
}

type fsm struct {
	needle []rune
	n      int // index of the next expected char within needle
	count  int
	start  int
}

func newFSM(needle string) *fsm {
	return &fsm{needle: []rune(needle)}
}

func (f *fsm) reset() {
	f.n = 0
	f.count = 0
}

// add feeds one (position, char) pair; on a full needle match it returns the
// match (and resets to scan for the next, possibly overlapping-free,
// occurrence); otherwise it returns false.
func (f *fsm) add(c int, ch rune) (Match, bool) {
	if len(f.needle) == 0 {
		return Match{}, false
	}
	if ch != f.needle[f.n] {
		f.reset()
		return Match{}, false
	}
	if f.count == 0 {
		f.start = c
	}
	f.n++
	f.count++
	if f.n == len(f.needle) {
		f.reset()
		return Match{f.start, c + 1}, true
	}
	return Match{}, false
}

// Search finds the occurrences of needle in text that the reset-FSM scan
// recognizes, scanning left to right exactly once.
func Search(text *rope.Rope, needle string) []Match {
	return SearchRange(text, needle, 0, text.Len())
}

// SearchRange restricts the scan to chars [start, end).
func SearchRange(text *rope.Rope, needle string, start, end int) []Match {
	if needle == "" {
		return nil
	}
	f := newFSM(needle)
	var out []Match
	for c := start; c < end; c++ {
		if m, ok := f.add(c, text.Char(c)); ok {
			out = append(out, m)
		}
	}
	return out
}

// Results is an ordered, strictly-increasing-by-Start match list plus the
// direction "next" iteration should move in.
type Results struct {
	matches []Match
	reverse bool
}

// NewSearch scans text for needle and records the search direction.
func NewSearch(text *rope.Rope, needle string, reverse bool) Results {
	return Results{matches: Search(text, needle), reverse: reverse}
}

// Matches returns the underlying sorted match list.
func (r Results) Matches() []Match { return r.matches }

// NextFromPosition returns the match at index p+reps, where p is the index
// of the first match starting at or after char c (p-reps if the result is
// reverse-direction), wrapping modulo the match count. Returns false if
// there are no matches.
func (r Results) NextFromPosition(c int, reps int) (Match, bool) {
	n := len(r.matches)
	if n == 0 {
		return Match{}, false
	}
	d := reps
	if r.reverse {
		d = -reps
	}
	p := partitionPoint(r.matches, c)
	idx := euclidMod(p+d, n)
	return r.matches[idx], true
}

// partitionPoint returns the count of matches whose Start < c (the lowest
// index i such that matches[i].Start >= c).
func partitionPoint(matches []Match, c int) int {
	lo, hi := 0, len(matches)
	for lo < hi {
		mid := (lo + hi) / 2
		if matches[mid].Start < c {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// euclidMod is Go's %, adjusted to always return a non-negative result for
// a positive modulus (mirrors Rust's i32::rem_euclid used by the
// reference).
func euclidMod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}
