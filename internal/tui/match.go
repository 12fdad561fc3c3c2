// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/list"
	"github.com/sahilm/fuzzy"
)

// fuzzyFilter is the list.FilterFunc behind the picker. An empty term keeps
// every row in input order; otherwise rows are ranked by score, best first.
//
// fuzzy reports byte offsets while list.Rank carries rune positions, so the
// offsets are converted before they reach the delegate.
func fuzzyFilter(term string, targets []string) []list.Rank {
	if term == "" {
		all := make([]list.Rank, len(targets))
		for i := range targets {
			all[i] = list.Rank{Index: i}
		}
		return all
	}

	found := fuzzy.Find(term, targets)
	ranks := make([]list.Rank, len(found))
	for i, m := range found {
		ranks[i] = list.Rank{
			Index:          m.Index,
			MatchedIndexes: runePositions(targets[m.Index], m.MatchedIndexes),
		}
	}
	return ranks
}

// runePositions maps ascending byte offsets in s to rune positions.
func runePositions(s string, offsets []int) []int {
	if len(offsets) == 0 {
		return nil
	}
	positions := make([]int, 0, len(offsets))
	next := 0
	for pos, off := 0, 0; off < len(s) && next < len(offsets); pos++ {
		if off == offsets[next] {
			positions = append(positions, pos)
			next++
		}
		_, size := utf8.DecodeRuneInString(s[off:])
		off += size
	}
	return positions
}
