package gait

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReactionTransition(t *testing.T) {
	type eg struct {
		t   float64
		tds float64
		exp float64
	}

	examples := []eg{
		{0, 0.2, 1},
		{0.1, 0.2, math.Exp(-1)},
		{0.2, 0.2, math.Exp(-8)},
		{10, 0.2, 0},
		{-0.1, 0.2, 1}, // clipped
		{0, 0, 1},
		{0.01, 0, 0},
		{math.NaN(), 0.2, 0},
	}

	for i, x := range examples {
		assert.InDelta(t, x.exp, ReactionTransition(x.t, x.tds), 1e-12, "example %d", i+1)
	}
}

func TestReactionTransitionDecays(t *testing.T) {
	prev := ReactionTransition(0, 0.15)
	for s := 0.001; s < 1; s += 0.001 {
		v := ReactionTransition(s, 0.15)
		assert.True(t, v <= prev, "transition grew at t=%v", s)
		prev = v
	}
	assert.InDelta(t, 0, prev, 1e-12)
}

func TestCoPProgress(t *testing.T) {
	type eg struct {
		t   float64
		tss float64
		exp float64
	}

	examples := []eg{
		{0, 0.4, 0},
		{0.2, 0.4, 0.5},
		{0.4, 0.4, 1},
		{0.1, 0, 0},
	}

	for i, x := range examples {
		assert.InDelta(t, x.exp, CoPProgress(x.t, x.tss), 1e-12, "example %d", i+1)
	}
}

func TestCoPProgressBounded(t *testing.T) {
	for _, tss := range []float64{0.05, 0.3, 0.4, 1.2} {
		for s := 0.0; s < 3; s += 0.0037 {
			v := CoPProgress(s, tss)
			assert.True(t, v >= 0 && v <= 1, "progress %v out of range at t=%v tss=%v", v, s, tss)
		}
	}
}
