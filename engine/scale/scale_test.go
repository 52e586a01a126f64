package scale

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToUnitClamp(t *testing.T) {
	t.Parallel()

	f := ToUnitClamp(60, 200)
	assert.Equal(t, 0.0, f(60))
	assert.Equal(t, 1.0, f(200))
	assert.Equal(t, 0.5, f(130))
	assert.Equal(t, 0.0, f(30))
	assert.Equal(t, 1.0, f(300))
}

func TestLinear(t *testing.T) {
	t.Parallel()

	f := linear(0, 10, 100, 200)
	assert.Equal(t, 150.0, f(5))
	assert.Equal(t, 250.0, f(15))

	// a degenerate domain maps everything to the range start
	assert.Equal(t, 100.0, linear(3, 3, 100, 200)(42))
}
