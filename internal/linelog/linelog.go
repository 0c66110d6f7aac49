// Package linelog records every revision of a text blob as a compact
// instruction program and reconstructs the text as of any revision, or any
// revision range, in time proportional to the number of visible lines rather
// than the number of revisions.
//
// Each edit appends a small block of instructions guarded by conditional
// jumps on the query's revision bounds, so earlier revisions stay exactly
// reconstructible and lines that existed only transiently inside a revision
// window can still be surfaced.
package linelog

import (
	"fmt"
	"strings"

	"github.com/thiagokokada/linelog-go/internal/linediff"
)

// DiffFunc computes the changed regions between two line slices. The blocks
// must be sorted ascending by A1, non-overlapping, and together with the
// unchanged gaps reconstruct b from a. linediff.Blocks satisfies this; tests
// substitute fakes.
type DiffFunc func(a, b []string) []linediff.Block

// Line is one materialized line of a checkout. PC identifies the owning
// instruction and stays stable across edits to other regions, unlike the
// line's index. Deleted is set only by range checkouts, on lines that were
// live somewhere inside the window but are gone from its end state.
type Line struct {
	Text    string
	Rev     int
	PC      int
	Deleted bool
}

// Log is the line-history log. It is append-mostly: edits grow the program
// and rewrite exactly one existing instruction, so instructions are never
// deleted, only made unreachable from later-revision queries.
//
// A Log has a single logical owner and no internal locking; wrap it in a
// mutex if it must cross goroutines.
type Log struct {
	diff DiffFunc

	code   []instruction
	maxRev int

	// Materialization of the last checkout. lines keeps a trailing sentinel
	// for the end instruction so edits can address the position one past the
	// last real line. checkoutKey caches which request lines answers.
	lines       []Line
	checkoutKey string
}

// New returns an empty log holding a single end instruction, checked out at
// revision 0. diff is the line-diff oracle used by RecordText.
func New(diff DiffFunc) *Log {
	if diff == nil {
		panic("linelog: nil DiffFunc")
	}
	l := &Log{
		diff: diff,
		code: []instruction{{op: opEnd}},
	}
	l.Checkout(0)
	return l
}

// NewFromText returns a log whose revision 0 already carries text, so the
// first RecordText call still produces revision 1. Useful when revision
// numbers should count edits against a base, not the base itself.
func NewFromText(diff DiffFunc, text string) *Log {
	l := New(diff)
	l.record(text, 0)
	return l
}

// MaxRev returns the highest revision recorded so far.
func (l *Log) MaxRev() int { return l.maxRev }

// Text returns the currently materialized lines joined back into one string.
// After a range checkout it includes the lines marked deleted.
func (l *Log) Text() string {
	var b strings.Builder
	for _, line := range l.lines {
		b.WriteString(line.Text)
	}
	return b.String()
}

// Lines returns a copy of the lines materialized by the last checkout,
// without the trailing end sentinel.
func (l *Log) Lines() []Line {
	return append([]Line(nil), l.lines[:len(l.lines)-1]...)
}

// LineRev returns the revision that introduced the i-th materialized line.
// ok is false when i addresses the end sentinel or beyond.
func (l *Log) LineRev(i int) (rev int, ok bool) {
	if i < 0 || i >= len(l.lines)-1 {
		return 0, false
	}
	return l.lines[i].Rev, true
}

// RecordText folds text into the log as one new revision and returns its
// number. Every changed region of the diff against the current content is
// stamped with the same revision, however many there are. Recording text
// identical to the current content is a true no-op that returns the current
// maximum revision: revision numbers count effective edits, not calls.
func (l *Log) RecordText(text string) int {
	l.Checkout(l.maxRev)
	return l.record(text, l.maxRev+1)
}

// record stamps rev on every changed region between the current content and
// text. The caller must have the log checked out exactly at maxRev.
func (l *Log) record(text string, rev int) int {
	aLines := linediff.SplitLines(l.Text())
	bLines := linediff.SplitLines(text)
	blocks := l.diff(aLines, bLines)
	if len(blocks) == 0 {
		return l.maxRev
	}

	// Back to front, so the indices of blocks not yet applied stay valid.
	for i := len(blocks) - 1; i >= 0; i-- {
		b := blocks[i]
		l.EditChunk(b.A1, b.A2, rev, bLines[b.B1:b.B2])
	}

	// EditChunk already spliced the line buffer into the target state, so the
	// program does not need to run again.
	l.checkoutKey = checkoutKey(l.maxRev, exactStart)
	return rev
}

func checkoutKey(rev, start int) string {
	return fmt.Sprintf("%d,%d", rev, start)
}

// exactStart is the start-bound marker for exact checkouts in cache keys.
// Range checkouts clamp their start to >= 0, so it cannot collide.
const exactStart = -1
