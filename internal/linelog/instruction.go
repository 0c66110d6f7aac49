package linelog

import "fmt"

// opcode identifies one instruction kind in the log's program.
type opcode uint8

const (
	// opJump transfers control to pc unconditionally.
	opJump opcode = iota
	// opJumpGE transfers control to pc when the query's start bound is at or
	// after rev: content edited away in rev never existed for such queries.
	opJumpGE
	// opJumpLT transfers control to pc when the query's end bound predates
	// rev: content introduced in rev is invisible to such queries.
	opJumpLT
	// opLine emits one line tagged with the revision that introduced it.
	opLine
	// opEnd terminates interpretation.
	opEnd
)

func (op opcode) String() string {
	switch op {
	case opJump:
		return "J"
	case opJumpGE:
		return "JGE"
	case opJumpLT:
		return "JL"
	case opLine:
		return "LINE"
	case opEnd:
		return "END"
	}
	return fmt.Sprintf("opcode(%d)", uint8(op))
}

// instruction is one cell of the log's program. Which fields are meaningful
// depends on op: jumps use pc (the conditional ones also rev), opLine uses rev
// and text, opEnd uses none.
type instruction struct {
	op   opcode
	rev  int
	pc   int
	text string
}
