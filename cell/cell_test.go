package cell

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAliveRequiresSoulAndNotInanimate(t *testing.T) {
	c := &Cell{}
	assert.False(t, c.Alive())

	c.Soul = Soul{Present: true, Value: 42}
	assert.True(t, c.Alive())

	sun := NewSun()
	sun.Soul = Soul{Present: true, Value: 1}
	assert.False(t, sun.Alive(), "an inanimate cell is never alive")
}

func TestCanAccess(t *testing.T) {
	a := &Cell{Soul: Soul{Present: true, Value: 1}}
	b := &Cell{Soul: Soul{Present: true, Value: 1}}
	c := &Cell{Soul: Soul{Present: true, Value: 2}}
	empty := &Cell{}

	assert.True(t, a.CanAccess(b), "same lineage")
	assert.False(t, a.CanAccess(c), "different lineage, other is alive")
	assert.True(t, a.CanAccess(empty), "other is not alive")
}

func TestChecksumIsSumOfWords(t *testing.T) {
	c := &Cell{}
	c.Memory[0] = 1
	c.Memory[1] = 2
	c.Memory[1023] = 0xFFFFFFFF
	assert.Equal(t, uint32(2), c.Checksum()) // 1 + 2 + 0xFFFFFFFF wraps modulo 2^32
}

func TestColourIsChecksumBytesExceptForSuns(t *testing.T) {
	c := &Cell{}
	c.Memory[0] = 0x01020304
	assert.Equal(t, [4]byte{0x01, 0x02, 0x03, 0x04}, c.Colour())

	sun := NewSun()
	assert.Equal(t, [4]byte{0xFF, 0xFF, 0xFF, 0xFF}, sun.Colour())
}

func TestKillClearsSoulAndEnergy(t *testing.T) {
	c := &Cell{Soul: Soul{Present: true, Value: 7}, Energy: 100}
	c.Kill()
	assert.False(t, c.Soul.Present)
	assert.Equal(t, uint64(0), c.Energy)
	assert.False(t, c.Alive())
}
