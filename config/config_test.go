package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adammck/grfm"
	"github.com/adammck/grfm/math3d"
	"github.com/adammck/grfm/model/segments"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const subject = `
method: ID
pelvis: pelvis
right:
  body: calcn_r
  heel: [0.0, -0.02, 0.0]
  toe: [0.18, -0.02, 0.0]
left:
  body: calcn_l
  heel: [0.0, -0.02, 0.0]
  toe: [0.18, -0.02, 0.0]
segments:
  - name: pelvis
    mass: 11.8
    inertia:
      moments: [0.1, 0.09, 0.06]
  - name: calcn_r
    mass: 1.25
    inertia:
      moments: [0.001, 0.004, 0.004]
      products: [0.0002, 0, 0]
  - name: calcn_l
    mass: 1.25
`

func TestParse(t *testing.T) {
	c, err := Parse([]byte(subject))
	require.NoError(t, err)

	assert.Equal(t, "ID", c.Method)
	assert.Equal(t, grfm.DefaultDirectionWindowSize, c.DirectionWindow)
	assert.Equal(t, segments.StandardGravity, c.Gravity.Vector3())
	assert.Len(t, c.Segments, 3)

	p := c.Parameters()
	assert.Equal(t, "calcn_l", p.LeftStationBodyName)
	assert.Equal(t, math3d.Vector3{X: 0.18, Y: -0.02}, p.RightToeStationLocation)

	_, err = grfm.SelectMethod(p.Method)
	assert.NoError(t, err)

	assert.Equal(t, math3d.MakeInertia(0.001, 0.004, 0.004, 0.0002, 0, 0), c.Segments[1].Inertia.Matrix33())
}

func TestParseOverridesDefaults(t *testing.T) {
	c, err := Parse([]byte(subject + "direction_window: 3\ngravity: [0, -1.62, 0]\n"))
	require.NoError(t, err)

	assert.Equal(t, 3, c.DirectionWindow)
	assert.Equal(t, math3d.Vector3{Y: -1.62}, c.Gravity.Vector3())

	m, err := c.Model()
	require.NoError(t, err)
	assert.Equal(t, math3d.Vector3{Y: -1.62}, m.Gravity())
	assert.Equal(t, 3, m.NumBodies())
}

func TestParseRejectsInvalidConfigs(t *testing.T) {
	type eg struct {
		name string
		yaml string
		msg  string
	}

	for _, tt := range []eg{
		{"bad method", strings.Replace(subject, "method: ID", "method: lagrange", 1), "Method"},
		{"bad window", subject + "direction_window: 0\n", "DirectionWindow"},
		{"no segments", "method: ne\npelvis: pelvis\n", "Segments"},
		{"zero mass", subject + "  - name: toes_r\n    mass: 0\n", "Mass"},
		{"unknown foot", strings.Replace(subject, "body: calcn_l", "body: toes_l", 1), "toes_l"},
		{"short vector", subject + "gravity: [0, -9.81]\n", "failed to parse"},
	} {
		_, err := Parse([]byte(tt.yaml))
		if assert.Error(t, err, tt.name) {
			assert.Contains(t, err.Error(), tt.msg, tt.name)
		}
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subject.yaml")
	require.NoError(t, os.WriteFile(path, []byte(subject), 0644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "pelvis", c.Pelvis)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestMethodTagIsRegistered(t *testing.T) {
	assert.NoError(t, validate.Var("inverse-dynamics", "method"))
	assert.Error(t, validate.Var("lagrange", "method"))
}
