// Package config loads the description of a subject (its segment model and
// the foot reference points) and the engine settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/adammck/grfm"
	"github.com/adammck/grfm/math3d"
	"github.com/adammck/grfm/model/segments"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

var log = logrus.WithFields(logrus.Fields{
	"pkg": "config",
})

var validate *validator.Validate

func init() {
	validate = validator.New()
	if err := validate.RegisterValidation("method", validateMethod); err != nil {
		panic(err)
	}
}

func validateMethod(fl validator.FieldLevel) bool {
	_, err := grfm.SelectMethod(fl.Field().String())
	return err == nil
}

// Vector is written as a three element sequence, e.g. [0, -9.81, 0].
type Vector [3]float64

func (v Vector) Vector3() math3d.Vector3 {
	return math3d.Vector3{X: v[0], Y: v[1], Z: v[2]}
}

// Foot names the body carrying the heel and toe stations of one foot, and
// their locations in that body's frame.
type Foot struct {
	Body string `yaml:"body" validate:"required"`
	Heel Vector `yaml:"heel"`
	Toe  Vector `yaml:"toe"`
}

// Inertia about the center of mass, in the segment frame. Products of inertia
// are optional.
type Inertia struct {
	Moments  Vector `yaml:"moments"`
	Products Vector `yaml:"products"`
}

func (i Inertia) Matrix33() math3d.Matrix33 {
	return math3d.MakeInertia(i.Moments[0], i.Moments[1], i.Moments[2], i.Products[0], i.Products[1], i.Products[2])
}

type Segment struct {
	Name    string  `yaml:"name" validate:"required"`
	Mass    float64 `yaml:"mass" validate:"gt=0"`
	Inertia Inertia `yaml:"inertia"`
}

type Config struct {
	// Reaction estimation method, see grfm.SelectMethod.
	Method string `yaml:"method" validate:"required,method"`

	// Number of samples the walking direction is averaged over.
	DirectionWindow int `yaml:"direction_window" validate:"gte=1"`

	// Defaults to standard gravity along -Y.
	Gravity *Vector `yaml:"gravity"`

	Pelvis string `yaml:"pelvis" validate:"required"`
	Right  Foot   `yaml:"right"`
	Left   Foot   `yaml:"left"`

	Segments []Segment `yaml:"segments" validate:"required,min=1,dive"`
}

// Default returns a config with every optional field set.
func Default() Config {
	g := Vector{
		segments.StandardGravity.X,
		segments.StandardGravity.Y,
		segments.StandardGravity.Z,
	}

	return Config{
		Method:          "newton-euler",
		DirectionWindow: grfm.DefaultDirectionWindowSize,
		Gravity:         &g,
	}
}

// Parse reads a config from YAML, filling unset fields from Default, and
// validates it.
func Parse(data []byte) (Config, error) {
	c := Default()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	if c.Gravity == nil {
		c.Gravity = Default().Gravity
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}

// Load reads and parses the config file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	c, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}

	log.Debugf("loaded %s: %d segments, method=%s", path, len(c.Segments), c.Method)
	return c, nil
}

// Validate checks the struct tags, then that the pelvis and foot bodies are
// segments of the model.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, len(verrs))
			for i, fe := range verrs {
				fields[i] = fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag())
			}
			return fmt.Errorf("invalid config: %s", strings.Join(fields, ", "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}

	names := make(map[string]bool, len(c.Segments))
	for _, s := range c.Segments {
		names[s.Name] = true
	}

	for _, b := range []string{c.Pelvis, c.Right.Body, c.Left.Body} {
		if !names[b] {
			return fmt.Errorf("invalid config: no segment named %q", b)
		}
	}

	return nil
}

// Parameters returns the engine parameters.
func (c Config) Parameters() grfm.Parameters {
	return grfm.Parameters{
		PelvisBodyName:           c.Pelvis,
		RightStationBodyName:     c.Right.Body,
		LeftStationBodyName:      c.Left.Body,
		RightHeelStationLocation: c.Right.Heel.Vector3(),
		RightToeStationLocation:  c.Right.Toe.Vector3(),
		LeftHeelStationLocation:  c.Left.Heel.Vector3(),
		LeftToeStationLocation:   c.Left.Toe.Vector3(),
		DirectionWindowSize:      c.DirectionWindow,
		Method:                   c.Method,
	}
}

// Model builds the segment model, rooted at the pelvis.
func (c Config) Model() (*segments.Model, error) {
	segs := make([]segments.Segment, len(c.Segments))
	for i, s := range c.Segments {
		segs[i] = segments.Segment{
			Name:    s.Name,
			Mass:    s.Mass,
			Inertia: s.Inertia.Matrix33(),
		}
	}

	g := segments.StandardGravity
	if c.Gravity != nil {
		g = c.Gravity.Vector3()
	}

	return segments.New(segs, c.Pelvis, g)
}
