package linelog

import "testing"

func TestOpcodeString(t *testing.T) {
	tests := []struct {
		op   opcode
		want string
	}{
		{op: opJump, want: "J"},
		{op: opJumpGE, want: "JGE"},
		{op: opJumpLT, want: "JL"},
		{op: opLine, want: "LINE"},
		{op: opEnd, want: "END"},
		{op: opcode(99), want: "opcode(99)"},
	}
	for _, tc := range tests {
		if got := tc.op.String(); got != tc.want {
			t.Fatalf("opcode(%d).String() = %q, want %q", uint8(tc.op), got, tc.want)
		}
	}
}
