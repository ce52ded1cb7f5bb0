package anypop

import (
	"errors"
	"fmt"

	"github.com/unixpickle/essentials"
	gym "github.com/unixpickle/gym-socket-api/binding-go"
)

// Env is an instance of an RL environment.
type Env interface {
	Reset() (observation []float64, err error)
	Step(action []float64) (observation []float64,
		reward float64, done bool, err error)
}

// A Wrapper transforms an environment, for example to
// teach it a skill or to preprocess observations.
type Wrapper func(e Env) Env

type gymEnv struct {
	env    gym.Env
	render bool

	actConv gymSpaceConverter
	obsConv gymSpaceConverter
}

// GymEnv creates an Env from a gym server instance.
//
// This will fail if the instance requires an unsupported
// space type or if it fails to fetch space info.
func GymEnv(client gym.Env, render bool) (env Env, err error) {
	defer essentials.AddCtxTo("create gym Env", &err)
	actionSpace, err := client.ActionSpace()
	if err != nil {
		return nil, err
	}
	obsSpace, err := client.ObservationSpace()
	if err != nil {
		return nil, err
	}
	actConv, err := converterForSpace(actionSpace)
	if err != nil {
		return nil, err
	}
	obsConv, err := converterForSpace(obsSpace)
	if err != nil {
		return nil, err
	}
	return &gymEnv{
		env:     client,
		render:  render,
		actConv: actConv,
		obsConv: obsConv,
	}, nil
}

func (g *gymEnv) Reset() (obs []float64, err error) {
	defer essentials.AddCtxTo("reset gym Env", &err)
	rawObs, err := g.env.Reset()
	if err != nil {
		return nil, err
	}
	if g.render {
		if err := g.env.Render(); err != nil {
			return nil, err
		}
	}
	return g.obsConv.FromGym(rawObs)
}

func (g *gymEnv) Step(action []float64) (obs []float64, reward float64,
	done bool, err error) {
	defer essentials.AddCtxTo("step gym Env", &err)
	rawObs, reward, done, _, err := g.env.Step(g.actConv.ToGym(action))
	if err != nil {
		return
	}
	if g.render {
		if err = g.env.Render(); err != nil {
			return
		}
	}
	obs, err = g.obsConv.FromGym(rawObs)
	return
}

type gymSpaceConverter interface {
	ToGym(in []float64) interface{}
	FromGym(in gym.Obs) ([]float64, error)
}

func converterForSpace(s *gym.Space) (gymSpaceConverter, error) {
	switch s.Type {
	case "Box":
		return &boxSpaceConverter{}, nil
	case "Discrete":
		return &discreteSpaceConverter{N: s.N}, nil
	default:
		return nil, errors.New("unsupported space: " + s.Type)
	}
}

type boxSpaceConverter struct{}

func (b *boxSpaceConverter) ToGym(in []float64) interface{} {
	return in
}

func (b *boxSpaceConverter) FromGym(in gym.Obs) ([]float64, error) {
	return gym.Flatten(in)
}

type discreteSpaceConverter struct {
	N int
}

func (d *discreteSpaceConverter) ToGym(in []float64) interface{} {
	return maxIndex(in)
}

func (d *discreteSpaceConverter) FromGym(in gym.Obs) ([]float64, error) {
	var value int
	if err := in.Unmarshal(&value); err != nil {
		return nil, err
	}
	if value < 0 || value >= d.N {
		return nil, fmt.Errorf("discrete observation out of bounds: %d", value)
	}
	out := make([]float64, d.N)
	out[value] = 1
	return out, nil
}

func maxIndex(vec []float64) int {
	var maxIdx int
	for i, x := range vec {
		if x > vec[maxIdx] {
			maxIdx = i
		}
	}
	return maxIdx
}
