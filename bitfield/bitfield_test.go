package bitfield

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLastFirst(t *testing.T) {
	assert.Equal(t, uint32(0b1111), Last(0xFFFFFFFF, 4))
	assert.Equal(t, uint32(0b0000), Last(0xFFFFFFF0, 4))
	assert.Equal(t, uint32(0xFF), First(0xFF000000, 8))
	assert.Equal(t, uint32(0), First(0x00FFFFFF, 8))
}

func TestRangeMatchesInstructionLayout(t *testing.T) {
	// opcode=0xAB (bits 1-8), srcMode=0b10 (bits 9-10), srcAddr=0x155
	// (bits 11-20, 10 bits), destMode=0b01 (bits 21-22), destAddr=0x2AA
	// (bits 23-32, 10 bits).
	word := uint32(0xAB)<<24 | uint32(0b10)<<22 | uint32(0x155)<<12 | uint32(0b01)<<10 | uint32(0x2AA)

	assert.Equal(t, uint32(0xAB), Range(word, 1, 8))
	assert.Equal(t, uint32(0b10), Range(word, 9, 10))
	assert.Equal(t, uint32(0x155), Range(word, 11, 20))
	assert.Equal(t, uint32(0b01), Range(word, 21, 22))
	assert.Equal(t, uint32(0x2AA), Range(word, 23, 32))
}

func TestIsSet(t *testing.T) {
	word := uint32(0b1000_0000_0000_0000_0000_0000_0000_0001)
	assert.True(t, IsSet(word, 1))
	assert.True(t, IsSet(word, 32))
	assert.False(t, IsSet(word, 2))
}

func TestRangePanicsOnInvalidBounds(t *testing.T) {
	assert.Panics(t, func() { Range(0, 5, 2) })
	assert.Panics(t, func() { Range(0, 0, 2) })
	assert.Panics(t, func() { Range(0, 2, 33) })
}
