package linelog

import "fmt"

// EditChunk replaces lines [a1, a2) of the currently checked-out line list
// with lines, all stamped with revision rev, while keeping every earlier
// revision exactly reconstructible.
//
// The replacement is appended as a new instruction block and the chunk's
// entry instruction is relocated to its end, so the only in-place rewrite is
// patching that entry slot into a jump. The appended block reads:
//
//	start:   JL rev, after    (only when lines is non-empty)
//	         LINE rev, ...    one per replacement line
//	after:   JGE rev, a2pc    (only when a1 < a2: skip the replaced lines)
//	         <entry instruction relocated from a1pc>
//	         J a1pc+1         (only when the entry instruction falls through)
//	a1pc:    J start          in-place rewrite, the commit point
//
// Queries that end before rev jump over the new lines; queries that start at
// or after rev jump over the old ones; range queries take neither jump and
// see both, which is what surfaces transiently-live lines.
//
// The log must have been checked out at its maximum revision so a1 and a2
// address current lines. Violations panic: they are caller bugs, not runtime
// conditions. No mutation happens before the checks pass, so a panic leaves
// the last materialization intact.
func (l *Log) EditChunk(a1, a2, rev int, lines []string) {
	if a1 < 0 || a1 > a2 {
		panic(fmt.Sprintf("linelog: illegal chunk [%d,%d)", a1, a2))
	}
	if a2 >= len(l.lines) {
		panic(fmt.Sprintf("linelog: chunk end %d out of bounds (forgot Checkout?)", a2))
	}

	code := l.code
	start := len(code)
	a1PC := l.lines[a1].PC

	if len(lines) > 0 {
		after := start + len(lines) + 1
		code = append(code, instruction{op: opJumpLT, rev: rev, pc: after})
		for _, text := range lines {
			code = append(code, instruction{op: opLine, rev: rev, text: text})
		}
	}
	if a1 < a2 {
		code = append(code, instruction{op: opJumpGE, rev: rev, pc: l.lines[a2].PC})
	}

	// Relocate the entry instruction. Only a line instruction can fall
	// through (the entry is always a line or the end sentinel), and its
	// successor must stay the instruction after the old slot.
	moved := code[a1PC]
	movedPC := len(code)
	code = append(code, moved)
	if moved.op == opLine {
		code = append(code, instruction{op: opJump, pc: a1PC + 1})
	}
	code[a1PC] = instruction{op: opJump, pc: start}
	l.code = code

	// Splice the materialized lines to match the program.
	spliced := make([]Line, 0, len(lines)+1)
	for i, text := range lines {
		spliced = append(spliced, Line{Text: text, Rev: rev, PC: start + 1 + i})
	}
	if a1 == a2 {
		// Pure insertion: the line at a1 survives, owned by the relocated
		// instruction now.
		kept := l.lines[a1]
		kept.PC = movedPC
		spliced = append(spliced, kept)
		l.lines = append(l.lines[:a1], append(spliced, l.lines[a1+1:]...)...)
	} else {
		l.lines = append(l.lines[:a1], append(spliced, l.lines[a2:]...)...)
	}

	if rev > l.maxRev {
		l.maxRev = rev
	}
	// The spliced buffer is already the post-edit state, but only record
	// knows which request it answers; force everyone else to re-execute.
	l.checkoutKey = ""
}
