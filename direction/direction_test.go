package direction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromValueWrapsModEight(t *testing.T) {
	assert.Equal(t, West, FromValue(0))
	assert.Equal(t, East, FromValue(4))
	assert.Equal(t, East, FromValue(12))
	assert.Equal(t, Southwest, FromValue(7))
}

func TestOffsets(t *testing.T) {
	cases := []struct {
		d          Direction
		dx, dy     int
		isDiagonal bool
	}{
		{West, -1, 0, false},
		{Northwest, -1, -1, true},
		{North, 0, -1, false},
		{Northeast, 1, -1, true},
		{East, 1, 0, false},
		{Southeast, 1, 1, true},
		{South, 0, 1, false},
		{Southwest, -1, 1, true},
	}
	for _, c := range cases {
		dx, dy := c.d.Offset()
		assert.Equal(t, c.dx, dx)
		assert.Equal(t, c.dy, dy)
		assert.Equal(t, c.isDiagonal, c.d.Diagonal())
	}
}

func TestStepCostRoundsDiagonalUp(t *testing.T) {
	assert.Equal(t, uint64(100), StepCost(100, East))
	assert.Equal(t, uint64(142), StepCost(100, Northeast)) // ceil(100*sqrt2) = 142
}
