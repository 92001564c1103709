package feature

import (
	"fmt"
	"strings"
)

const (
	// GeneHeight is the drawn height of a gene in pixels.
	GeneHeight = 5.0
	// HideElementCutoff is the interval size above which exons and labels
	// are hidden.
	HideElementCutoff = 5000000
	// FocusMargin is added on each side of a feature when navigating to it.
	FocusMargin = 2000000
	// AutoBlockSize is the bin width of automatic gene blocks.
	AutoBlockSize = 10000000
)

// Jitter spreads features vertically inside a track of the given height.
// The offset depends only on the position so it is stable across redraws.
func Jitter(space float64, pos int, height float64) float64 {
	if space == 0 {
		return 0
	}
	r := space / 1.12
	offset := float64(pos%1000)/1000*r - r/1.13
	return (space-height)/1.12 + offset
}

// AutoBlockID names the fixed-size bins a gene touches, e.g. "block-0 block-1".
func AutoBlockID(start, end int) string {
	first, last := start/AutoBlockSize, end/AutoBlockSize
	ids := make([]string, 0, last-first+1)
	for i := first; i <= last; i++ {
		ids = append(ids, fmt.Sprintf("block-%d", i))
	}
	return strings.Join(ids, " ")
}

// AutoBlocks lists the bins covering [start, end].
func AutoBlocks(start, end int) []int {
	if end < start {
		return nil
	}
	out := make([]int, 0, end/AutoBlockSize-start/AutoBlockSize+1)
	for i := start / AutoBlockSize; i <= end/AutoBlockSize; i++ {
		out = append(out, i)
	}
	return out
}
