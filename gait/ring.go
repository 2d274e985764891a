package gait

import (
	"github.com/adammck/grfm/math3d"
	"gonum.org/v1/gonum/stat"
)

// ring is a fixed-capacity ring buffer of vectors. Once full, each push
// overwrites the oldest entry.
type ring struct {
	data []math3d.Vector3
	pos  int
	full bool
}

func newRing(cap int) *ring {
	return &ring{
		data: make([]math3d.Vector3, cap),
	}
}

func (r *ring) push(v math3d.Vector3) {
	r.data[r.pos] = v
	r.pos++
	if r.pos >= len(r.data) {
		r.pos = 0
		r.full = true
	}
}

func (r *ring) len() int {
	if r.full {
		return len(r.data)
	}
	return r.pos
}

// mean returns the component-wise mean of the filled slots, or the zero vector
// if nothing has been pushed yet.
func (r *ring) mean() math3d.Vector3 {
	n := r.len()
	if n == 0 {
		return math3d.ZeroVector3
	}

	xs := make([]float64, n)
	ys := make([]float64, n)
	zs := make([]float64, n)
	for i, v := range r.data[:n] {
		xs[i] = v.X
		ys[i] = v.Y
		zs[i] = v.Z
	}

	return math3d.Vector3{
		X: stat.Mean(xs, nil),
		Y: stat.Mean(ys, nil),
		Z: stat.Mean(zs, nil),
	}
}
