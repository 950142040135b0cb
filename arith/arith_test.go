package arith

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBinaryWraparound(t *testing.T) {
	assert.Equal(t, uint32(3), Add(1, 2))
	assert.Equal(t, uint32(0), Add(1<<32-1, 1))
	assert.Equal(t, uint32(5), Sub(3, 8))
	assert.Equal(t, uint32(1<<32-1), Sub(1, 0))
	assert.Equal(t, uint32(6), Mul(2, 3))
}

func TestDivModByZero(t *testing.T) {
	assert.Equal(t, uint32(DivModByZero), Div(0, 10))
	assert.Equal(t, uint32(DivModByZero), Mod(0, 10))
	assert.Equal(t, uint32(2), Div(4, 8))
	assert.Equal(t, uint32(3), Mod(5, 8))
}

func TestBitwiseLaws(t *testing.T) {
	x := uint32(0xDEADBEEF)
	assert.Equal(t, Band(x, 0), uint32(0))
	assert.Equal(t, Bor(x, 0), x)
	assert.Equal(t, Bxor(x, x), uint32(0))
	assert.Equal(t, Band(0xF0, 0x0F), Band(0x0F, 0xF0)) // commutative
	assert.Equal(t, Bor(0xF0, 0x0F), Bor(0x0F, 0xF0))
}

func TestBinvertInvolution(t *testing.T) {
	x := uint32(0x12345678)
	assert.Equal(t, x, Binvert(Binvert(x)))
}

func TestShiftQuirks(t *testing.T) {
	// LSHIFT shifts dest by dest, not by src.
	assert.Equal(t, uint32(8), Lshift(99, 2)) // 2 << 2, src ignored
	assert.Equal(t, uint32(0), Lshift(1, 32))
	// RSHIFT shifts src by dest.
	assert.Equal(t, uint32(4), Rshift(8, 1))
	assert.Equal(t, uint32(0), Rshift(8, 32))
}
