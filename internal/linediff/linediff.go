// Package linediff computes line-level differences between two texts. It is
// the diff oracle behind linelog: callers hand it split lines and get back the
// changed regions, leaving the history bookkeeping to the caller.
package linediff

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Block is one changed region between two line slices: lines [A1,A2) of the
// old side are replaced by lines [B1,B2) of the new side.
type Block struct {
	A1, A2 int
	B1, B2 int
}

// Blocks returns the changed regions between a and b, sorted ascending by A1
// and non-overlapping. Equal runs are omitted, so applying every block while
// keeping the gaps reconstructs b from a.
func Blocks(a, b []string) []Block {
	var blocks []Block
	for _, op := range difflib.NewMatcher(a, b).GetOpCodes() {
		if op.Tag == 'e' {
			continue
		}
		blocks = append(blocks, Block{A1: op.I1, A2: op.I2, B1: op.J1, B2: op.J2})
	}
	return blocks
}

// SplitLines splits text into lines, each keeping its trailing newline. A
// final fragment without a terminator is still one line, so concatenating the
// result restores text exactly. difflib's own SplitLines force-terminates the
// last line and cannot round-trip.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
