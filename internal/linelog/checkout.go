package linelog

import "fmt"

// execute interprets the program with the revision bounds [start, end] and
// returns every line such a reader sees, terminated by the end sentinel.
func (l *Log) execute(start, end int) []Line {
	var lines []Line
	pc := 0
	// A well-formed program visits each pc at most once, so running twice as
	// many steps as there are instructions means the editor corrupted it.
	maxSteps := len(l.code) * 2
	for range maxSteps {
		inst := l.code[pc]
		switch inst.op {
		case opJump:
			pc = inst.pc
		case opJumpGE:
			if start >= inst.rev {
				pc = inst.pc
			} else {
				pc++
			}
		case opJumpLT:
			if end < inst.rev {
				pc = inst.pc
			} else {
				pc++
			}
		case opLine:
			lines = append(lines, Line{Text: inst.text, Rev: inst.rev, PC: pc})
			pc++
		case opEnd:
			lines = append(lines, Line{PC: pc})
			return lines
		default:
			panic(fmt.Sprintf("linelog: unknown opcode %v at pc %d", inst.op, pc))
		}
	}
	panic("linelog: program does not terminate")
}

// Checkout materializes the lines visible at exactly rev (clamped to the
// highest recorded revision). It is a no-op when the last checkout already
// answered the same request.
func (l *Log) Checkout(rev int) {
	rev = min(rev, l.maxRev)
	key := checkoutKey(rev, exactStart)
	if key == l.checkoutKey {
		return
	}
	l.install(l.execute(rev, rev), key)
}

// CheckoutRange materializes every line that was live at any point in the
// window [start, rev]. Lines absent from the exact materialization of rev
// existed only transiently in the window and come back with Deleted set.
func (l *Log) CheckoutRange(start, rev int) {
	rev = min(rev, l.maxRev)
	start = max(0, min(start, rev))
	key := checkoutKey(rev, start)
	if key == l.checkoutKey {
		return
	}

	// The present set: pcs live at exactly rev. The widened bounds below
	// additionally surface lines outside it.
	present := make(map[int]bool)
	for _, line := range l.execute(rev, rev) {
		present[line.PC] = true
	}
	lines := l.execute(start, rev)
	for i := range lines {
		lines[i].Deleted = !present[lines[i].PC]
	}
	l.install(lines, key)
}

func (l *Log) install(lines []Line, key string) {
	l.lines = lines
	l.checkoutKey = key
}
