package anypop

import (
	"github.com/unixpickle/anynet/anyrnn"
	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/essentials"
)

// BanditConfig configures a neural contextual bandit
// agent (NeuralUCB or NeuralTS).
type BanditConfig struct {
	ObservationSpace *Space
	ActionSpace      *Space
	Index            int
	NetConfig        *NetConfig

	Gamma     float64
	Lambda    float64
	Reg       float64
	BatchSize int
	LR        float64
	LearnStep int

	// Actor, if non-nil, overrides the reward network
	// built from NetConfig.
	Actor anyrnn.Block

	Creator anyvec.Creator
}

// NeuralUCB is a population member running the NeuralUCB
// contextual bandit algorithm.
type NeuralUCB struct {
	agentCore

	ObservationSpace *Space
	ActionSpace      *Space

	Gamma     float64
	Lambda    float64
	Reg       float64
	BatchSize int
	LR        float64
	LearnStep int

	// Actor estimates per-arm rewards.
	Actor anyrnn.Block
}

// NewNeuralUCB creates a NeuralUCB agent.
func NewNeuralUCB(cfg *BanditConfig) (agent *NeuralUCB, err error) {
	defer essentials.AddCtxTo("create NeuralUCB", &err)
	actor, err := buildActor(cfg.Creator, cfg.NetConfig, cfg.Actor,
		cfg.ObservationSpace, cfg.ActionSpace, false, 1)
	if err != nil {
		return nil, err
	}
	return &NeuralUCB{
		agentCore:        agentCore{algo: AlgoNeuralUCB, index: cfg.Index},
		ObservationSpace: cfg.ObservationSpace,
		ActionSpace:      cfg.ActionSpace,
		Gamma:            cfg.Gamma,
		Lambda:           cfg.Lambda,
		Reg:              cfg.Reg,
		BatchSize:        cfg.BatchSize,
		LR:               cfg.LR,
		LearnStep:        cfg.LearnStep,
		Actor:            actor,
	}, nil
}

// InspectAttributes summarizes the agent's current
// hyperparameters.
func (n *NeuralUCB) InspectAttributes() map[string]interface{} {
	return inspectAttributes(n)
}

// Networks returns the agent's networks for checkpointing.
func (n *NeuralUCB) Networks() []anyrnn.Block {
	return []anyrnn.Block{n.Actor}
}

// NeuralTS is a population member running the Neural
// Thompson Sampling contextual bandit algorithm.
type NeuralTS struct {
	agentCore

	ObservationSpace *Space
	ActionSpace      *Space

	Gamma     float64
	Lambda    float64
	Reg       float64
	BatchSize int
	LR        float64
	LearnStep int

	// Actor estimates per-arm rewards.
	Actor anyrnn.Block
}

// NewNeuralTS creates a NeuralTS agent.
func NewNeuralTS(cfg *BanditConfig) (agent *NeuralTS, err error) {
	defer essentials.AddCtxTo("create NeuralTS", &err)
	actor, err := buildActor(cfg.Creator, cfg.NetConfig, cfg.Actor,
		cfg.ObservationSpace, cfg.ActionSpace, false, 1)
	if err != nil {
		return nil, err
	}
	return &NeuralTS{
		agentCore:        agentCore{algo: AlgoNeuralTS, index: cfg.Index},
		ObservationSpace: cfg.ObservationSpace,
		ActionSpace:      cfg.ActionSpace,
		Gamma:            cfg.Gamma,
		Lambda:           cfg.Lambda,
		Reg:              cfg.Reg,
		BatchSize:        cfg.BatchSize,
		LR:               cfg.LR,
		LearnStep:        cfg.LearnStep,
		Actor:            actor,
	}, nil
}

// InspectAttributes summarizes the agent's current
// hyperparameters.
func (n *NeuralTS) InspectAttributes() map[string]interface{} {
	return inspectAttributes(n)
}

// Networks returns the agent's networks for checkpointing.
func (n *NeuralTS) Networks() []anyrnn.Block {
	return []anyrnn.Block{n.Actor}
}
