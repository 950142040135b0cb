package instr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []Instruction{
		{Opcode: OpAdd, SrcMode: ModeNormal, SrcAddr: 0, DestMode: ModeNormal, DestAddr: 0},
		{Opcode: OpMove, SrcMode: ModeLiteral, SrcAddr: 100, DestMode: ModeLiteral, DestAddr: 500},
		{Opcode: OpJump, SrcMode: ModeAccumulator, SrcAddr: 0, DestMode: ModeAccumulator, DestAddr: 1023},
		{Opcode: OpLadar, SrcMode: ModeIndirect, SrcAddr: 1023, DestMode: ModeIndirect, DestAddr: 1023},
		{Opcode: 0xFF, SrcMode: ModeNormal, SrcAddr: 42, DestMode: ModeNormal, DestAddr: 7},
	}
	for _, want := range cases {
		word := want.Encode()
		got := Decode(word)
		assert.Equal(t, want, got)
	}
}

func TestDecodeWordRoundTrip(t *testing.T) {
	words := []uint32{0x00000000, 0xFFFFFFFF, 0x12345678, 0xDEADBEEF}
	for _, w := range words {
		assert.Equal(t, w, Decode(w).Encode())
	}
}

func TestUnrecognizedOpcodeIsNoop(t *testing.T) {
	assert.Equal(t, OpNoop, Normalize(0x20))
	assert.Equal(t, OpNoop, Normalize(0xFF))
	assert.Equal(t, uint64(0), Cost(0x20))
}

func TestCostTable(t *testing.T) {
	assert.Equal(t, uint64(0), Cost(OpNoop))
	assert.Equal(t, uint64(1), Cost(OpAdd))
	assert.Equal(t, uint64(5), Cost(OpLadar))
	assert.Equal(t, uint64(5), Cost(OpEtherRead))
	assert.Equal(t, uint64(5), Cost(OpEtherWrite))
	assert.Equal(t, uint64(5), Cost(OpNudge))
	assert.Equal(t, uint64(1), Cost(OpBask))
	assert.Equal(t, uint64(5), Cost(OpHandoff))
	assert.Equal(t, uint64(5), Cost(OpMove))
	assert.Equal(t, uint64(5), Cost(OpProcure))
	assert.Equal(t, uint64(5), Cost(OpBestow))
	assert.Equal(t, uint64(5), Cost(OpTeach))
	assert.Equal(t, uint64(1), Cost(OpCopy))
}
