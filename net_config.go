package anypop

import (
	"errors"
	"fmt"

	"github.com/unixpickle/anynet"
	"github.com/unixpickle/anynet/anyrnn"
	"github.com/unixpickle/anyvec"
)

// A NetConfig describes the fully-connected networks built
// for each agent in a population.
type NetConfig struct {
	// HiddenSizes gives the width of each hidden layer.
	HiddenSizes []int

	// Activation is the hidden-layer activation: "tanh",
	// "relu", or "sigmoid". An empty string means "tanh".
	Activation string
}

var defaultNetConfig = &NetConfig{HiddenSizes: []int{64, 64}}

// Build creates a network block with the given input and
// output widths.
func (n *NetConfig) Build(c anyvec.Creator, in, out int) (anyrnn.Block, error) {
	act, err := n.activation()
	if err != nil {
		return nil, err
	}
	var net anynet.Net
	cur := in
	for _, hidden := range n.HiddenSizes {
		net = append(net, anynet.NewFC(c, cur, hidden), act)
		cur = hidden
	}
	net = append(net, anynet.NewFC(c, cur, out))
	return &anyrnn.LayerBlock{Layer: net}, nil
}

func (n *NetConfig) activation() (anynet.Layer, error) {
	switch n.Activation {
	case "", "tanh":
		return anynet.Tanh, nil
	case "relu":
		return anynet.ReLU, nil
	case "sigmoid":
		return anynet.Sigmoid, nil
	default:
		return nil, fmt.Errorf("unsupported activation: %s", n.Activation)
	}
}

// buildActor returns custom if non-nil, and otherwise
// builds a policy/value network mapping observations to
// action parameters.
func buildActor(c anyvec.Creator, nc *NetConfig, custom anyrnn.Block,
	obs, act *Space, oneHot bool, outScale int) (anyrnn.Block, error) {
	if custom != nil {
		return custom, nil
	}
	if obs == nil || act == nil {
		return nil, errors.New("missing space descriptor")
	}
	if nc == nil {
		nc = defaultNetConfig
	}
	return nc.Build(c, obs.FlatSize(oneHot), act.ActionSize()*outScale)
}

// buildCritic builds a state-value network (stateOnly) or
// a Q-network over state-action pairs.
func buildCritic(c anyvec.Creator, nc *NetConfig, custom anyrnn.Block,
	obs, act *Space, oneHot, stateOnly bool) (anyrnn.Block, error) {
	if custom != nil {
		return custom, nil
	}
	if obs == nil || act == nil {
		return nil, errors.New("missing space descriptor")
	}
	if nc == nil {
		nc = defaultNetConfig
	}
	in := obs.FlatSize(oneHot)
	if !stateOnly {
		in += act.ActionSize()
	}
	return nc.Build(c, in, 1)
}
