// Package grapheme provides grapheme-cluster boundary queries and display
// width computation over rune slices, grounded on
// _examples/original_source/core/src/grapheme_iter.rs and backed by
// github.com/rivo/uniseg (boundary segmentation) and
// github.com/mattn/go-runewidth (display width).
package grapheme

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Width returns the display width of a single grapheme cluster given as a
// rune slice. An ASCII-leading cluster (including ASCII control characters)
// always has width 1, so that it stays addressable/editable even though it
// is not normally printable; anything else is max(1, unicode display
// width) of the cluster, never zero (combining marks alone still occupy a
// column while editing).
func Width(cluster []rune) int {
	if len(cluster) == 0 {
		return 0
	}
	if cluster[0] < 0x80 {
		return 1
	}
	w := runewidth.StringWidth(string(cluster))
	if w < 1 {
		w = 1
	}
	return w
}

// NextBoundary returns the char index of the next grapheme boundary
// strictly after idx within runes, or len(runes) if idx is already at or
// past the last boundary.
func NextBoundary(runes []rune, idx int) int {
	if idx >= len(runes) {
		return len(runes)
	}
	if idx < 0 {
		idx = 0
	}
	s := string(runes[idx:])
	_, rest := firstCluster(s)
	consumed := len(runes[idx:]) - len([]rune(rest))
	return idx + consumed
}

// PrevBoundary returns the char index of the grapheme boundary immediately
// before idx, or 0 if idx is already at or before the first boundary.
func PrevBoundary(runes []rune, idx int) int {
	if idx <= 0 {
		return 0
	}
	if idx > len(runes) {
		idx = len(runes)
	}
	// Walk forward from 0 accumulating boundaries; the clusters are rarely
	// long enough for this to matter and it keeps the logic in terms of the
	// same segmentation the forward walk uses.
	bounds := boundaries(runes)
	prev := 0
	for _, b := range bounds {
		if b >= idx {
			break
		}
		prev = b
	}
	return prev
}

// NthNextBoundary advances n grapheme boundaries forward from idx, clamping
// at len(runes).
func NthNextBoundary(runes []rune, idx, n int) int {
	for i := 0; i < n && idx < len(runes); i++ {
		idx = NextBoundary(runes, idx)
	}
	if idx > len(runes) {
		idx = len(runes)
	}
	return idx
}

// NthPrevBoundary retreats n grapheme boundaries backward from idx,
// clamping at 0.
func NthPrevBoundary(runes []rune, idx, n int) int {
	bounds := boundaries(runes)
	for i := 0; i < n && idx > 0; i++ {
		idx = prevOf(bounds, idx)
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}

// Clusters splits runes into grapheme clusters, returning each cluster's
// rune slice in order.
func Clusters(runes []rune) [][]rune {
	bounds := boundaries(runes)
	out := make([][]rune, 0, len(bounds))
	prev := 0
	for _, b := range bounds {
		if b > prev {
			out = append(out, runes[prev:b])
		}
		prev = b
	}
	if prev < len(runes) {
		out = append(out, runes[prev:])
	}
	return out
}

// boundaries returns all grapheme-cluster boundary offsets in runes,
// excluding 0 and including len(runes).
func boundaries(runes []rune) []int {
	s := string(runes)
	var bounds []int
	pos := 0
	state := -1
	rest := s
	for len(rest) > 0 {
		cluster, r, _, newState := uniseg.FirstGraphemeClusterInString(rest, state)
		pos += len([]rune(cluster))
		bounds = append(bounds, pos)
		rest = r
		state = newState
	}
	return bounds
}

func prevOf(bounds []int, idx int) int {
	prev := 0
	for _, b := range bounds {
		if b >= idx {
			break
		}
		prev = b
	}
	return prev
}

func firstCluster(s string) (cluster, rest string) {
	cluster, rest, _, _ = uniseg.FirstGraphemeClusterInString(s, -1)
	return cluster, rest
}
