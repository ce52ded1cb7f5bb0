package anypop

import (
	"errors"
	"fmt"

	gym "github.com/unixpickle/gym-socket-api/binding-go"
)

// Recognized space types.
const (
	Box      = "Box"
	Discrete = "Discrete"
)

// A Space describes an observation or action space.
type Space struct {
	// Type is the kind of space, e.g. Box or Discrete.
	Type string

	// Shape gives the dimensions of Box spaces.
	Shape []int

	// Low and High are per-dimension bounds for Box
	// spaces.
	Low  []float64
	High []float64

	// N is the number of values in a Discrete space.
	N int
}

// SpaceFromGym converts space info from a gym server into
// a Space.
func SpaceFromGym(s *gym.Space) (*Space, error) {
	switch s.Type {
	case "Box":
		return &Space{
			Type:  Box,
			Shape: s.Shape,
			Low:   s.Low,
			High:  s.High,
		}, nil
	case "Discrete":
		return &Space{Type: Discrete, N: s.N}, nil
	default:
		return nil, errors.New("unsupported space: " + s.Type)
	}
}

// FlatSize returns the width of a flattened observation
// from the space.
//
// Discrete spaces are one element wide, or N elements wide
// when one-hot encoding is requested.
func (s *Space) FlatSize(oneHot bool) int {
	if s.Type == Discrete {
		if oneHot {
			return s.N
		}
		return 1
	}
	size := 1
	for _, d := range s.Shape {
		size *= d
	}
	return size
}

// ActionSize returns the width of a network output which
// parameterizes actions in the space: N for Discrete
// spaces and the flattened shape for Box spaces.
func (s *Space) ActionSize() int {
	if s.Type == Discrete {
		return s.N
	}
	return s.FlatSize(false)
}

// A SpaceSpec is either a single *Space or a SpaceMap.
//
// Single-agent algorithms expect one space; multi-agent
// algorithms expect a SpaceMap keyed by agent ID.
type SpaceSpec interface {
	spaceSpec()
}

func (s *Space) spaceSpec() {}

// A SpaceMap assigns a space to each agent in a
// multi-agent environment.
type SpaceMap map[string]*Space

func (s SpaceMap) spaceSpec() {}

func singleSpace(spec SpaceSpec, name string) (*Space, error) {
	if s, ok := spec.(*Space); ok && s != nil {
		return s, nil
	}
	return nil, fmt.Errorf("%s: expected a single space, got %T", name, spec)
}

func spacesByAgent(spec SpaceSpec, name string) (SpaceMap, error) {
	if s, ok := spec.(SpaceMap); ok && len(s) > 0 {
		return s, nil
	}
	return nil, fmt.Errorf("%s: expected per-agent spaces, got %T", name, spec)
}
