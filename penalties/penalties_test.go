package penalties

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestL1(t *testing.T) {
	p := L1(0.1)

	// constant magnitude, following the sign of the weight
	assert.InDelta(t, 0.1, p.Penalize(3), 1e-12)
	assert.InDelta(t, -0.1, p.Penalize(-0.5), 1e-12)
}

func TestL2(t *testing.T) {
	p := L2(0.1)

	// proportional to the weight
	assert.InDelta(t, 0.6, p.Penalize(3), 1e-12)
	assert.InDelta(t, -0.1, p.Penalize(-0.5), 1e-12)
}

func TestElasticNet(t *testing.T) {
	// α = 1 matches L1, α = 0 matches L2
	assert.InDelta(t, L1(0.1).Penalize(2), ElasticNet(1, 0.1).Penalize(2), 1e-12)
	assert.InDelta(t, L2(0.1).Penalize(2), ElasticNet(0, 0.1).Penalize(2), 1e-12)

	// in between, a blend of the two
	mid := ElasticNet(0.5, 0.1).Penalize(2)
	assert.InDelta(t, 0.5*L1(0.1).Penalize(2)+0.5*L2(0.1).Penalize(2), mid, 1e-12)
}
